package reports

import (
	"context"
)

// Repository defines report data access. All methods are scoped to the
// filter's date range; absence of matching rows yields an empty slice,
// never an error.
type Repository interface {
	// Listings
	ListPurchases(ctx context.Context, f Filter) ([]PurchaseRow, error)
	ListStockMovements(ctx context.Context, f Filter) ([]StockMovementRow, error)

	// Aggregations over purchases
	PurchaseTotalsByDate(ctx context.Context, f Filter) ([]PeriodTotalRow, error)
	ProductRanking(ctx context.Context, f Filter, limit uint64) ([]RankingRow, error)
	AveragePriceByMonth(ctx context.Context, f Filter) ([]MonthlyPriceRow, error)
	AveragePriceByProduct(ctx context.Context, f Filter, limit uint64) ([]ProductPriceRow, error)
	MonthlyTotals(ctx context.Context, f Filter) ([]MonthlyTotalRow, error)
	TopPurchases(ctx context.Context, f Filter, limit uint64) ([]PurchaseRow, error)
}
