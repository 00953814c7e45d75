package reports

import (
	"context"
	"fmt"
)

// Row limits fixed per report shape.
const (
	RankingLimit        = 20
	PriceByProductLimit = 15
	TopPurchasesLimit   = 10
)

// Service turns canonical filters into display-ready reports.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Purchases returns the purchase listing, newest first.
func (s *Service) Purchases(ctx context.Context, f Filter) ([]PurchaseItem, error) {
	rows, err := s.repo.ListPurchases(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	items := make([]PurchaseItem, len(rows))
	for i, r := range rows {
		items[i] = PurchaseItem{
			Date:        FormatDate(r.Date),
			ProductCode: r.ProductCode,
			Description: r.Description,
			Quantity:    FormatDecimal(r.Quantity, QuantityScale),
			UnitPrice:   FormatDecimal(r.UnitPrice, MoneyScale),
			Total:       FormatDecimal(r.Total, MoneyScale),
			Account:     FormatAccount(r.AccountID),
		}
	}
	return items, nil
}

// StockMovements returns the stock movement listing with derived balances.
func (s *Service) StockMovements(ctx context.Context, f Filter) ([]StockMovementItem, error) {
	rows, err := s.repo.ListStockMovements(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}

	items := make([]StockMovementItem, len(rows))
	for i, r := range rows {
		items[i] = StockMovementItem{
			Date:        FormatDate(r.Date),
			ProductCode: r.ProductCode,
			Description: r.Description,
			Quantity:    FormatDecimal(r.Quantity, QuantityScale),
			UnitPrice:   FormatDecimal(r.UnitPrice, MoneyScale),
			Total:       FormatDecimal(r.Total, MoneyScale),
			PhysicalQty: FormatDecimal(r.PhysicalQty, QuantityScale),
			Inbound:     FormatDecimal(r.InboundQty, QuantityScale),
			Outbound:    FormatDecimal(r.OutboundQty, QuantityScale),
			Balance:     FormatDecimal(r.InboundQty.Sub(r.OutboundQty), QuantityScale),
			Account:     FormatAccount(r.AccountID),
		}
	}
	return items, nil
}

// PurchasesByPeriod groups purchases by date with count, total and ticket
// average, newest date first.
func (s *Service) PurchasesByPeriod(ctx context.Context, f Filter) ([]PeriodTotalItem, error) {
	rows, err := s.repo.PurchaseTotalsByDate(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("purchase totals by date: %w", err)
	}

	items := make([]PeriodTotalItem, 0, len(rows))
	for _, r := range rows {
		if r.Date == nil {
			continue
		}
		items = append(items, PeriodTotalItem{
			Date:          FormatDate(r.Date),
			Count:         r.Count,
			Total:         FormatDecimal(r.Total, MoneyScale),
			TicketAverage: ticketAverage(r.Total, r.Count),
		})
	}
	return items, nil
}

// ProductRanking ranks products by purchased quantity, top 20.
func (s *Service) ProductRanking(ctx context.Context, f Filter) ([]RankingItem, error) {
	rows, err := s.repo.ProductRanking(ctx, f, RankingLimit)
	if err != nil {
		return nil, fmt.Errorf("product ranking: %w", err)
	}

	items := make([]RankingItem, len(rows))
	for i, r := range rows {
		items[i] = RankingItem{
			ProductCode:   r.ProductCode,
			Description:   r.Description,
			TotalQuantity: FormatDecimal(r.TotalQuantity, QuantityScale),
			TotalValue:    FormatDecimal(r.TotalValue, MoneyScale),
			AveragePrice:  FormatDecimal(r.AveragePrice, MoneyScale),
		}
	}
	return items, nil
}

// MonthlyAveragePrice reports price evolution per month, newest first.
func (s *Service) MonthlyAveragePrice(ctx context.Context, f Filter) ([]MonthlyPriceItem, error) {
	rows, err := s.repo.AveragePriceByMonth(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("average price by month: %w", err)
	}

	items := make([]MonthlyPriceItem, len(rows))
	for i, r := range rows {
		items[i] = MonthlyPriceItem{
			Period:       MonthLabel(r.Year, r.Month),
			Count:        r.Count,
			AveragePrice: FormatDecimal(r.AveragePrice, MoneyScale),
			TotalValue:   FormatDecimal(r.TotalValue, MoneyScale),
		}
	}
	return items, nil
}

// ProductAveragePrice compares average prices across products, top 15.
func (s *Service) ProductAveragePrice(ctx context.Context, f Filter) ([]ProductPriceItem, error) {
	rows, err := s.repo.AveragePriceByProduct(ctx, f, PriceByProductLimit)
	if err != nil {
		return nil, fmt.Errorf("average price by product: %w", err)
	}

	items := make([]ProductPriceItem, len(rows))
	for i, r := range rows {
		items[i] = ProductPriceItem{
			ProductCode:  r.ProductCode,
			Description:  r.Description,
			AveragePrice: FormatDecimal(r.AveragePrice, MoneyScale),
			TotalValue:   FormatDecimal(r.TotalValue, MoneyScale),
			Count:        r.Count,
		}
	}
	return items, nil
}

// MonthComparison reports monthly totals in chronological order with the
// growth percentage against the previous month. The first month, and any
// month following a non-positive total, reports zero growth.
func (s *Service) MonthComparison(ctx context.Context, f Filter) ([]MonthComparisonItem, error) {
	rows, err := s.repo.MonthlyTotals(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}

	items := make([]MonthComparisonItem, len(rows))
	var previous MonthlyTotalRow
	for i, r := range rows {
		growth := 0.0
		if i > 0 {
			growth = growthPercent(r.Total, previous.Total)
		}
		items[i] = MonthComparisonItem{
			Month:  MonthLabel(r.Year, r.Month),
			Total:  FormatDecimal(r.Total, MoneyScale),
			Count:  r.Count,
			Growth: growth,
			Trend:  trendOf(growth),
		}
		previous = r
	}
	return items, nil
}

// TopPurchases returns the largest purchases by total value, ranked 1..N.
func (s *Service) TopPurchases(ctx context.Context, f Filter) ([]TopPurchaseItem, error) {
	rows, err := s.repo.TopPurchases(ctx, f, TopPurchasesLimit)
	if err != nil {
		return nil, fmt.Errorf("top purchases: %w", err)
	}

	items := make([]TopPurchaseItem, len(rows))
	for i, r := range rows {
		items[i] = TopPurchaseItem{
			Rank:        i + 1,
			Date:        FormatDate(r.Date),
			Description: r.Description,
			Quantity:    FormatDecimal(r.Quantity, QuantityScale),
			UnitPrice:   FormatDecimal(r.UnitPrice, MoneyScale),
			Total:       FormatDecimal(r.Total, MoneyScale),
			Account:     FormatAccount(r.AccountID),
		}
	}
	return items, nil
}
