package report_repo

import (
	"testing"
	"time"

	"valora/internal/domain/reports"
)

var (
	rangeStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
)

func testFilter() reports.Filter {
	return reports.Filter{StartDate: rangeStart, EndDate: rangeEnd}
}

func TestListPurchasesQuery(t *testing.T) {
	repo := NewReportRepo(nil)

	tests := []struct {
		name     string
		filter   reports.Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:   "date range only",
			filter: testFilter(),
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, date, account_id " +
				"FROM purchases WHERE date >= $1 AND date <= $2 ORDER BY date DESC",
			wantArgs: []any{rangeStart, rangeEnd},
		},
		{
			name: "numeric account becomes a predicate",
			filter: reports.Filter{
				StartDate: rangeStart, EndDate: rangeEnd, Account: "42",
			},
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, date, account_id " +
				"FROM purchases WHERE date >= $1 AND date <= $2 AND account_id = $3 ORDER BY date DESC",
			wantArgs: []any{rangeStart, rangeEnd, int64(42)},
		},
		{
			name: "non-numeric account is dropped",
			filter: reports.Filter{
				StartDate: rangeStart, EndDate: rangeEnd, Account: "acme",
			},
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, date, account_id " +
				"FROM purchases WHERE date >= $1 AND date <= $2 ORDER BY date DESC",
			wantArgs: []any{rangeStart, rangeEnd},
		},
		{
			name: "product term matches description or code",
			filter: reports.Filter{
				StartDate: rangeStart, EndDate: rangeEnd, Product: "paper",
			},
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, date, account_id " +
				"FROM purchases WHERE date >= $1 AND date <= $2 AND " +
				"(description ILIKE $3 OR product_code::text ILIKE $4) ORDER BY date DESC",
			wantArgs: []any{rangeStart, rangeEnd, "%paper%", "%paper%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.listPurchasesQuery(tt.filter).ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("Arg %d mismatch\nwant: %v\ngot:  %v", i, tt.wantArgs[i], args[i])
				}
			}
		})
	}
}

func TestListStockMovementsQuery_MovementSelector(t *testing.T) {
	repo := NewReportRepo(nil)

	tests := []struct {
		name     string
		movement reports.MovementType
		wantSQL  string
	}{
		{
			name:     "all movements",
			movement: reports.MovementAll,
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, " +
				"physical_qty, inbound_qty, outbound_qty, date, account_id " +
				"FROM stock_movements WHERE date >= $1 AND date <= $2 ORDER BY date DESC",
		},
		{
			name:     "inbound only",
			movement: reports.MovementInbound,
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, " +
				"physical_qty, inbound_qty, outbound_qty, date, account_id " +
				"FROM stock_movements WHERE date >= $1 AND date <= $2 AND inbound_qty > $3 ORDER BY date DESC",
		},
		{
			name:     "outbound only",
			movement: reports.MovementOutbound,
			wantSQL: "SELECT id, product_code, description, quantity, unit_price, total, " +
				"physical_qty, inbound_qty, outbound_qty, date, account_id " +
				"FROM stock_movements WHERE date >= $1 AND date <= $2 AND outbound_qty > $3 ORDER BY date DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFilter()
			f.Movement = tt.movement

			sql, _, err := repo.listStockMovementsQuery(f).ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
		})
	}
}

func TestTotalsByDateQuery(t *testing.T) {
	repo := NewReportRepo(nil)

	sql, args, err := repo.totalsByDateQuery(testFilter()).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT date, COUNT(id) AS count, SUM(total) AS total " +
		"FROM purchases WHERE date >= $1 AND date <= $2 GROUP BY date ORDER BY date DESC"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestProductRankingQuery(t *testing.T) {
	repo := NewReportRepo(nil)

	sql, _, err := repo.productRankingQuery(testFilter(), 20).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT product_code, description, SUM(quantity) AS total_quantity, " +
		"SUM(total) AS total_value, AVG(unit_price) AS average_price " +
		"FROM purchases WHERE date >= $1 AND date <= $2 " +
		"GROUP BY product_code, description ORDER BY SUM(quantity) DESC LIMIT 20"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}

func TestPriceByMonthQuery(t *testing.T) {
	repo := NewReportRepo(nil)

	sql, _, err := repo.priceByMonthQuery(testFilter()).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT EXTRACT(YEAR FROM date)::int AS year, EXTRACT(MONTH FROM date)::int AS month, " +
		"COUNT(id) AS count, AVG(unit_price) AS average_price, SUM(total) AS total_value " +
		"FROM purchases WHERE date >= $1 AND date <= $2 " +
		"GROUP BY EXTRACT(YEAR FROM date), EXTRACT(MONTH FROM date) ORDER BY year DESC, month DESC"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}

func TestMonthlyTotalsQuery_ChronologicalOrder(t *testing.T) {
	repo := NewReportRepo(nil)

	sql, _, err := repo.monthlyTotalsQuery(testFilter()).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT EXTRACT(YEAR FROM date)::int AS year, EXTRACT(MONTH FROM date)::int AS month, " +
		"COUNT(id) AS count, SUM(total) AS total " +
		"FROM purchases WHERE date >= $1 AND date <= $2 " +
		"GROUP BY EXTRACT(YEAR FROM date), EXTRACT(MONTH FROM date) ORDER BY year ASC, month ASC"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}

func TestTopPurchasesQuery(t *testing.T) {
	repo := NewReportRepo(nil)

	sql, _, err := repo.topPurchasesQuery(testFilter(), 10).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id, product_code, description, quantity, unit_price, total, date, account_id " +
		"FROM purchases WHERE date >= $1 AND date <= $2 ORDER BY total DESC LIMIT 10"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}
