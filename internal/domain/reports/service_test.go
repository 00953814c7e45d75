package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo returns canned rows; only the fields a test populates matter.
type stubRepo struct {
	purchases      []PurchaseRow
	stockMovements []StockMovementRow
	periodTotals   []PeriodTotalRow
	ranking        []RankingRow
	monthlyPrices  []MonthlyPriceRow
	productPrices  []ProductPriceRow
	monthlyTotals  []MonthlyTotalRow
	top            []PurchaseRow

	rankingLimit uint64
	topLimit     uint64
}

func (s *stubRepo) ListPurchases(ctx context.Context, f Filter) ([]PurchaseRow, error) {
	return s.purchases, nil
}

func (s *stubRepo) ListStockMovements(ctx context.Context, f Filter) ([]StockMovementRow, error) {
	return s.stockMovements, nil
}

func (s *stubRepo) PurchaseTotalsByDate(ctx context.Context, f Filter) ([]PeriodTotalRow, error) {
	return s.periodTotals, nil
}

func (s *stubRepo) ProductRanking(ctx context.Context, f Filter, limit uint64) ([]RankingRow, error) {
	s.rankingLimit = limit
	return s.ranking, nil
}

func (s *stubRepo) AveragePriceByMonth(ctx context.Context, f Filter) ([]MonthlyPriceRow, error) {
	return s.monthlyPrices, nil
}

func (s *stubRepo) AveragePriceByProduct(ctx context.Context, f Filter, limit uint64) ([]ProductPriceRow, error) {
	return s.productPrices, nil
}

func (s *stubRepo) MonthlyTotals(ctx context.Context, f Filter) ([]MonthlyTotalRow, error) {
	return s.monthlyTotals, nil
}

func (s *stubRepo) TopPurchases(ctx context.Context, f Filter, limit uint64) ([]PurchaseRow, error) {
	s.topLimit = limit
	return s.top, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestService_Purchases(t *testing.T) {
	account := int64(7)
	repo := &stubRepo{purchases: []PurchaseRow{
		{
			ProductCode: 1001,
			Description: "Office paper A4",
			Quantity:    dec("50.1234"),
			UnitPrice:   dec("4.905"),
			Total:       dec("245.745"),
			Date:        datePtr(2025, 3, 7),
			AccountID:   &account,
		},
		{
			ProductCode: 1002,
			Description: "Toner cartridge",
			Quantity:    dec("6"),
			UnitPrice:   dec("89.50"),
			Total:       dec("537"),
		},
	}}

	items, err := NewService(repo).Purchases(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "07/03/2025", items[0].Date)
	assert.Equal(t, 50.123, items[0].Quantity)
	assert.Equal(t, 4.91, items[0].UnitPrice)
	assert.Equal(t, 245.75, items[0].Total)
	assert.Equal(t, "7", items[0].Account)

	// missing date and account render as "-"
	assert.Equal(t, "-", items[1].Date)
	assert.Equal(t, "-", items[1].Account)
}

func TestService_StockMovements_Balance(t *testing.T) {
	repo := &stubRepo{stockMovements: []StockMovementRow{
		{
			Description: "Office paper A4",
			InboundQty:  dec("80.5"),
			OutboundQty: dec("30.25"),
			PhysicalQty: dec("50.25"),
		},
		{
			Description: "Toner cartridge",
			InboundQty:  dec("2"),
			OutboundQty: dec("5"),
		},
	}}

	items, err := NewService(repo).StockMovements(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 50.25, items[0].Balance)
	assert.Equal(t, -3.0, items[1].Balance, "balance may go negative")
}

func TestService_PurchasesByPeriod(t *testing.T) {
	repo := &stubRepo{periodTotals: []PeriodTotalRow{
		{Date: datePtr(2025, 3, 7), Count: 3, Total: dec("100")},
		{Date: nil, Count: 2, Total: dec("50")}, // dateless group is dropped
		{Date: datePtr(2025, 3, 6), Count: 0, Total: dec("0")},
	}}

	items, err := NewService(repo).PurchasesByPeriod(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "07/03/2025", items[0].Date)
	assert.Equal(t, 33.33, items[0].TicketAverage)
	assert.Equal(t, 0.0, items[1].TicketAverage, "zero count must not divide")
}

func TestService_ProductRanking(t *testing.T) {
	repo := &stubRepo{ranking: []RankingRow{
		{ProductCode: 1001, Description: "Office paper A4", TotalQuantity: dec("190"), TotalValue: dec("931.5"), AveragePrice: dec("4.9025")},
	}}

	items, err := NewService(repo).ProductRanking(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, uint64(RankingLimit), repo.rankingLimit)
	assert.Equal(t, 190.0, items[0].TotalQuantity)
	assert.Equal(t, 4.9, items[0].AveragePrice)
}

func TestService_MonthlyAveragePrice(t *testing.T) {
	repo := &stubRepo{monthlyPrices: []MonthlyPriceRow{
		{Year: 2025, Month: 3, Count: 4, AveragePrice: dec("4.875"), TotalValue: dec("975")},
	}}

	items, err := NewService(repo).MonthlyAveragePrice(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "March 2025", items[0].Period)
	assert.Equal(t, 4.88, items[0].AveragePrice)
}

func TestService_MonthComparison_Growth(t *testing.T) {
	repo := &stubRepo{monthlyTotals: []MonthlyTotalRow{
		{Year: 2025, Month: 1, Count: 5, Total: dec("100")},
		{Year: 2025, Month: 2, Count: 6, Total: dec("150")},
		{Year: 2025, Month: 3, Count: 4, Total: dec("90")},
	}}

	items, err := NewService(repo).MonthComparison(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "January 2025", items[0].Month)
	assert.Equal(t, 0.0, items[0].Growth, "first month has no predecessor")
	assert.Equal(t, TrendUp, items[0].Trend)

	assert.Equal(t, 50.0, items[1].Growth)
	assert.Equal(t, TrendUp, items[1].Trend)

	assert.Equal(t, -40.0, items[2].Growth)
	assert.Equal(t, TrendDown, items[2].Trend)
}

func TestService_MonthComparison_ZeroPredecessor(t *testing.T) {
	repo := &stubRepo{monthlyTotals: []MonthlyTotalRow{
		{Year: 2025, Month: 1, Total: dec("0")},
		{Year: 2025, Month: 2, Total: dec("200")},
	}}

	items, err := NewService(repo).MonthComparison(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 0.0, items[1].Growth, "zero predecessor yields zero growth, not a division error")
}

func TestService_TopPurchases_Ranks(t *testing.T) {
	repo := &stubRepo{top: []PurchaseRow{
		{Description: "Desk chair", Total: dec("1788")},
		{Description: "Toner cartridge", Total: dec("537")},
		{Description: "Office paper A4", Total: dec("306")},
	}}

	items, err := NewService(repo).TopPurchases(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, uint64(TopPurchasesLimit), repo.topLimit)
	for i, item := range items {
		assert.Equal(t, i+1, item.Rank)
	}
}
