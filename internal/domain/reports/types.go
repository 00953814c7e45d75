// Package reports provides the purchase and stock reporting pipeline:
// filter normalization, the six report shapes, and display formatting.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType selects which stock movements a report covers.
type MovementType string

const (
	MovementAll      MovementType = "all"
	MovementInbound  MovementType = "inbound"
	MovementOutbound MovementType = "outbound"
)

// RawFilter carries report parameters exactly as submitted by the client.
type RawFilter struct {
	StartDate    string
	EndDate      string
	Account      string
	Product      string
	MovementType string
}

// Filter is the canonical, fully-defaulted report filter. It is built once
// per request by NormalizeFilter and never fails to be usable.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time

	// Account is kept as submitted for echoing back; it only becomes a
	// query predicate when AccountID parses it successfully.
	Account string

	// Product is matched case-insensitively against description and the
	// textual form of the product code.
	Product string

	Movement MovementType

	// Defaulted names the submitted inputs that were malformed and fell
	// back to defaults. Absent inputs are not listed.
	Defaulted []string
}

// --- Raw rows (decimals preserved until formatting) ---

// PurchaseRow is a purchase record as stored.
type PurchaseRow struct {
	ID          int64           `db:"id"`
	ProductCode int64           `db:"product_code"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Total       decimal.Decimal `db:"total"`
	Date        *time.Time      `db:"date"`
	AccountID   *int64          `db:"account_id"`
}

// StockMovementRow is a stock movement record as stored.
type StockMovementRow struct {
	ID          int64           `db:"id"`
	ProductCode int64           `db:"product_code"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Total       decimal.Decimal `db:"total"`
	PhysicalQty decimal.Decimal `db:"physical_qty"`
	InboundQty  decimal.Decimal `db:"inbound_qty"`
	OutboundQty decimal.Decimal `db:"outbound_qty"`
	Date        *time.Time      `db:"date"`
	AccountID   *int64          `db:"account_id"`
}

// PeriodTotalRow is one date group of the by-period report.
type PeriodTotalRow struct {
	Date  *time.Time      `db:"date"`
	Count int64           `db:"count"`
	Total decimal.Decimal `db:"total"`
}

// RankingRow is one product group of the ranking report.
type RankingRow struct {
	ProductCode   int64           `db:"product_code"`
	Description   string          `db:"description"`
	TotalQuantity decimal.Decimal `db:"total_quantity"`
	TotalValue    decimal.Decimal `db:"total_value"`
	AveragePrice  decimal.Decimal `db:"average_price"`
}

// MonthlyPriceRow is one (year, month) group of the monthly price report.
type MonthlyPriceRow struct {
	Year         int             `db:"year"`
	Month        int             `db:"month"`
	Count        int64           `db:"count"`
	AveragePrice decimal.Decimal `db:"average_price"`
	TotalValue   decimal.Decimal `db:"total_value"`
}

// ProductPriceRow is one product group of the by-product price report.
type ProductPriceRow struct {
	ProductCode  int64           `db:"product_code"`
	Description  string          `db:"description"`
	AveragePrice decimal.Decimal `db:"average_price"`
	TotalValue   decimal.Decimal `db:"total_value"`
	Count        int64           `db:"count"`
}

// MonthlyTotalRow is one (year, month) group of the comparison report,
// in chronological order.
type MonthlyTotalRow struct {
	Year  int             `db:"year"`
	Month int             `db:"month"`
	Count int64           `db:"count"`
	Total decimal.Decimal `db:"total"`
}

// --- Display items (formatted, ready for templates or JSON) ---

// PurchaseItem is a display-ready purchase record.
type PurchaseItem struct {
	Date        string  `json:"date"`
	ProductCode int64   `json:"productCode"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
	Account     string  `json:"account"`
}

// StockMovementItem is a display-ready stock movement with derived balance.
type StockMovementItem struct {
	Date        string  `json:"date"`
	ProductCode int64   `json:"productCode"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
	PhysicalQty float64 `json:"physicalQty"`
	Inbound     float64 `json:"inbound"`
	Outbound    float64 `json:"outbound"`
	Balance     float64 `json:"balance"`
	Account     string  `json:"account"`
}

// PeriodTotalItem is one row of the by-period report.
type PeriodTotalItem struct {
	Date          string  `json:"date"`
	Count         int64   `json:"count"`
	Total         float64 `json:"total"`
	TicketAverage float64 `json:"ticketAverage"`
}

// RankingItem is one row of the product ranking report.
type RankingItem struct {
	ProductCode   int64   `json:"productCode"`
	Description   string  `json:"description"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
	AveragePrice  float64 `json:"averagePrice"`
}

// MonthlyPriceItem is one row of the monthly average price report.
type MonthlyPriceItem struct {
	Period       string  `json:"period"`
	Count        int64   `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
	TotalValue   float64 `json:"totalValue"`
}

// ProductPriceItem is one row of the by-product average price report.
type ProductPriceItem struct {
	ProductCode  int64   `json:"productCode"`
	Description  string  `json:"description"`
	AveragePrice float64 `json:"averagePrice"`
	TotalValue   float64 `json:"totalValue"`
	Count        int64   `json:"count"`
}

// Trend tags a growth value for presentation coloring.
type Trend string

const (
	TrendUp   Trend = "up"   // growth >= 0
	TrendDown Trend = "down" // growth < 0
)

// MonthComparisonItem is one row of the month-over-month report.
type MonthComparisonItem struct {
	Month  string  `json:"month"`
	Total  float64 `json:"total"`
	Count  int64   `json:"count"`
	Growth float64 `json:"growth"`
	Trend  Trend   `json:"trend"`
}

// TopPurchaseItem is one row of the top purchases report, ranked from 1.
type TopPurchaseItem struct {
	Rank        int     `json:"rank"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
	Account     string  `json:"account"`
}

// PriceMode selects the average price report variant.
type PriceMode string

const (
	PriceModeMonthly PriceMode = "monthly"
	PriceModeProduct PriceMode = "product"
)

// NormalizePriceMode maps unknown values to the monthly default.
func NormalizePriceMode(raw string) PriceMode {
	if PriceMode(raw) == PriceModeProduct {
		return PriceModeProduct
	}
	return PriceModeMonthly
}
