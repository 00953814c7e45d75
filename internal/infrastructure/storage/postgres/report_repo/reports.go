// Package report_repo provides the PostgreSQL implementation of the report
// repository. Every report shape is a single parameterized query built with
// squirrel; no SQL is composed from raw strings.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"valora/internal/domain/reports"
	"valora/internal/infrastructure/storage/postgres"
)

var tracer = otel.Tracer("valora/report_repo")

const (
	purchasesTable = "purchases"
	stockTable     = "stock_movements"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	pool    *postgres.Pool
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(pool *postgres.Pool) *ReportRepo {
	return &ReportRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListPurchases returns purchases in the filter range, newest first.
func (r *ReportRepo) ListPurchases(ctx context.Context, f reports.Filter) ([]reports.PurchaseRow, error) {
	var rows []reports.PurchaseRow
	if err := r.selectRows(ctx, "reports.list_purchases", &rows, r.listPurchasesQuery(f)); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return rows, nil
}

// ListStockMovements returns stock movements in the filter range, newest first.
func (r *ReportRepo) ListStockMovements(ctx context.Context, f reports.Filter) ([]reports.StockMovementRow, error) {
	var rows []reports.StockMovementRow
	if err := r.selectRows(ctx, "reports.list_stock_movements", &rows, r.listStockMovementsQuery(f)); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return rows, nil
}

// PurchaseTotalsByDate groups purchases by date, newest date first.
func (r *ReportRepo) PurchaseTotalsByDate(ctx context.Context, f reports.Filter) ([]reports.PeriodTotalRow, error) {
	var rows []reports.PeriodTotalRow
	if err := r.selectRows(ctx, "reports.totals_by_date", &rows, r.totalsByDateQuery(f)); err != nil {
		return nil, fmt.Errorf("purchase totals by date: %w", err)
	}
	return rows, nil
}

// ProductRanking groups purchases by product ordered by purchased quantity.
func (r *ReportRepo) ProductRanking(ctx context.Context, f reports.Filter, limit uint64) ([]reports.RankingRow, error) {
	var rows []reports.RankingRow
	if err := r.selectRows(ctx, "reports.product_ranking", &rows, r.productRankingQuery(f, limit)); err != nil {
		return nil, fmt.Errorf("product ranking: %w", err)
	}
	return rows, nil
}

// AveragePriceByMonth groups purchases by (year, month), newest first.
func (r *ReportRepo) AveragePriceByMonth(ctx context.Context, f reports.Filter) ([]reports.MonthlyPriceRow, error) {
	var rows []reports.MonthlyPriceRow
	if err := r.selectRows(ctx, "reports.price_by_month", &rows, r.priceByMonthQuery(f)); err != nil {
		return nil, fmt.Errorf("average price by month: %w", err)
	}
	return rows, nil
}

// AveragePriceByProduct groups purchases by product ordered by average price.
func (r *ReportRepo) AveragePriceByProduct(ctx context.Context, f reports.Filter, limit uint64) ([]reports.ProductPriceRow, error) {
	var rows []reports.ProductPriceRow
	if err := r.selectRows(ctx, "reports.price_by_product", &rows, r.priceByProductQuery(f, limit)); err != nil {
		return nil, fmt.Errorf("average price by product: %w", err)
	}
	return rows, nil
}

// MonthlyTotals groups purchases by (year, month) in chronological order.
func (r *ReportRepo) MonthlyTotals(ctx context.Context, f reports.Filter) ([]reports.MonthlyTotalRow, error) {
	var rows []reports.MonthlyTotalRow
	if err := r.selectRows(ctx, "reports.monthly_totals", &rows, r.monthlyTotalsQuery(f)); err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	return rows, nil
}

// TopPurchases returns the largest purchases by total value.
func (r *ReportRepo) TopPurchases(ctx context.Context, f reports.Filter, limit uint64) ([]reports.PurchaseRow, error) {
	var rows []reports.PurchaseRow
	if err := r.selectRows(ctx, "reports.top_purchases", &rows, r.topPurchasesQuery(f, limit)); err != nil {
		return nil, fmt.Errorf("top purchases: %w", err)
	}
	return rows, nil
}

// --- Query builders ---
// Building is separated from execution so the generated SQL is testable
// without a database.

func (r *ReportRepo) listPurchasesQuery(f reports.Filter) squirrel.SelectBuilder {
	q := r.builder.
		Select("id", "product_code", "description", "quantity", "unit_price", "total", "date", "account_id").
		From(purchasesTable)
	q = dateRange(q, f)
	q = accountAndProductFilters(q, f)
	return q.OrderBy("date DESC")
}

func (r *ReportRepo) listStockMovementsQuery(f reports.Filter) squirrel.SelectBuilder {
	q := r.builder.
		Select("id", "product_code", "description", "quantity", "unit_price", "total",
			"physical_qty", "inbound_qty", "outbound_qty", "date", "account_id").
		From(stockTable)
	q = dateRange(q, f)
	q = accountAndProductFilters(q, f)
	switch f.Movement {
	case reports.MovementInbound:
		q = q.Where(squirrel.Gt{"inbound_qty": 0})
	case reports.MovementOutbound:
		q = q.Where(squirrel.Gt{"outbound_qty": 0})
	}
	return q.OrderBy("date DESC")
}

func (r *ReportRepo) totalsByDateQuery(f reports.Filter) squirrel.SelectBuilder {
	q := r.builder.
		Select("date", "COUNT(id) AS count", "SUM(total) AS total").
		From(purchasesTable)
	q = dateRange(q, f)
	return q.GroupBy("date").OrderBy("date DESC")
}

func (r *ReportRepo) productRankingQuery(f reports.Filter, limit uint64) squirrel.SelectBuilder {
	q := r.builder.
		Select("product_code", "description",
			"SUM(quantity) AS total_quantity",
			"SUM(total) AS total_value",
			"AVG(unit_price) AS average_price").
		From(purchasesTable)
	q = dateRange(q, f)
	q = productFilter(q, f)
	return q.
		GroupBy("product_code", "description").
		OrderBy("SUM(quantity) DESC").
		Limit(limit)
}

func (r *ReportRepo) priceByMonthQuery(f reports.Filter) squirrel.SelectBuilder {
	q := r.builder.
		Select("EXTRACT(YEAR FROM date)::int AS year",
			"EXTRACT(MONTH FROM date)::int AS month",
			"COUNT(id) AS count",
			"AVG(unit_price) AS average_price",
			"SUM(total) AS total_value").
		From(purchasesTable)
	q = dateRange(q, f)
	return q.
		GroupBy("EXTRACT(YEAR FROM date)", "EXTRACT(MONTH FROM date)").
		OrderBy("year DESC", "month DESC")
}

func (r *ReportRepo) priceByProductQuery(f reports.Filter, limit uint64) squirrel.SelectBuilder {
	q := r.builder.
		Select("product_code", "description",
			"AVG(unit_price) AS average_price",
			"SUM(total) AS total_value",
			"COUNT(id) AS count").
		From(purchasesTable)
	q = dateRange(q, f)
	return q.
		GroupBy("product_code", "description").
		OrderBy("AVG(unit_price) DESC").
		Limit(limit)
}

func (r *ReportRepo) monthlyTotalsQuery(f reports.Filter) squirrel.SelectBuilder {
	q := r.builder.
		Select("EXTRACT(YEAR FROM date)::int AS year",
			"EXTRACT(MONTH FROM date)::int AS month",
			"COUNT(id) AS count",
			"SUM(total) AS total").
		From(purchasesTable)
	q = dateRange(q, f)
	return q.
		GroupBy("EXTRACT(YEAR FROM date)", "EXTRACT(MONTH FROM date)").
		OrderBy("year ASC", "month ASC")
}

func (r *ReportRepo) topPurchasesQuery(f reports.Filter, limit uint64) squirrel.SelectBuilder {
	q := r.builder.
		Select("id", "product_code", "description", "quantity", "unit_price", "total", "date", "account_id").
		From(purchasesTable)
	q = dateRange(q, f)
	return q.OrderBy("total DESC").Limit(limit)
}

// dateRange scopes a query to the filter's inclusive date range. Rows with
// a NULL date never match.
func dateRange(q squirrel.SelectBuilder, f reports.Filter) squirrel.SelectBuilder {
	return q.
		Where(squirrel.GtOrEq{"date": f.StartDate}).
		Where(squirrel.LtOrEq{"date": f.EndDate})
}

// accountAndProductFilters applies the optional account and product
// predicates. A non-numeric account value drops the account predicate.
func accountAndProductFilters(q squirrel.SelectBuilder, f reports.Filter) squirrel.SelectBuilder {
	if id, ok := f.AccountID(); ok {
		q = q.Where(squirrel.Eq{"account_id": id})
	}
	return productFilter(q, f)
}

// productFilter matches the search term against the description or the
// textual form of the product code, case-insensitively.
func productFilter(q squirrel.SelectBuilder, f reports.Filter) squirrel.SelectBuilder {
	if !f.HasProduct() {
		return q
	}
	pattern := f.ProductPattern()
	return q.Where(squirrel.Or{
		squirrel.ILike{"description": pattern},
		squirrel.Expr("product_code::text ILIKE ?", pattern),
	})
}

// selectRows builds and executes a query, scanning all rows into dst.
func (r *ReportRepo) selectRows(ctx context.Context, name string, dst any, q squirrel.SelectBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", name),
	))
	defer span.End()

	if err := pgxscan.Select(ctx, r.pool, dst, sql, args...); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
