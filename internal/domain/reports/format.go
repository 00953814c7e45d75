package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Display scales used across reports.
const (
	MoneyScale    int32 = 2
	QuantityScale int32 = 3
)

// FormatDecimal rounds d to the given number of decimal digits and converts
// it to a float for display. Rounding is half-up (0.005 at scale 2 becomes
// 0.01); decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts these reports carry. Pure function.
func FormatDecimal(d decimal.Decimal, scale int32) float64 {
	f, _ := d.Round(scale).Float64()
	return f
}

// FormatNullDecimal formats a nullable decimal; absent values display as 0.0.
func FormatNullDecimal(d decimal.NullDecimal, scale int32) float64 {
	if !d.Valid {
		return 0.0
	}
	return FormatDecimal(d.Decimal, scale)
}

// FormatDate renders a stored date as DD/MM/YYYY, or "-" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

// MonthLabel renders a (year, month) group as "January 2006".
func MonthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

// FormatAccount renders a nullable account id, or "-" when absent.
func FormatAccount(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

// ticketAverage computes total/count guarded against division by zero.
func ticketAverage(total decimal.Decimal, count int64) float64 {
	if count <= 0 {
		return 0.0
	}
	return FormatDecimal(total.Div(decimal.NewFromInt(count)), MoneyScale)
}

// growthPercent computes the month-over-month growth against the previous
// total. A missing or non-positive predecessor yields 0.
func growthPercent(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0.0
	}
	pct := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	return FormatDecimal(pct, MoneyScale)
}

// trendOf tags a growth value for presentation coloring.
func trendOf(growth float64) Trend {
	if growth < 0 {
		return TrendDown
	}
	return TrendUp
}
