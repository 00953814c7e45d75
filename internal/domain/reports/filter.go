package reports

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the accepted calendar date format for filter inputs.
const DateLayout = "2006-01-02"

// DefaultLookback is how far back the start date defaults when absent
// or malformed.
const DefaultLookback = 365 * 24 * time.Hour

// NormalizeFilter turns raw request parameters into a canonical Filter.
// It is total: every input, however malformed, yields a usable filter.
// Malformed dates fall back independently (a bad start does not affect a
// valid end); the names of malformed inputs are recorded in Defaulted so
// callers can surface a warning without failing the request.
func NormalizeFilter(raw RawFilter, now time.Time) Filter {
	f := Filter{
		Account:  strings.TrimSpace(raw.Account),
		Product:  strings.TrimSpace(raw.Product),
		Movement: MovementAll,
	}

	today := truncateToDate(now)

	f.StartDate = today.Add(-DefaultLookback)
	if raw.StartDate != "" {
		if d, err := time.Parse(DateLayout, raw.StartDate); err == nil {
			f.StartDate = d
		} else {
			f.Defaulted = append(f.Defaulted, "start_date")
		}
	}

	f.EndDate = today
	if raw.EndDate != "" {
		if d, err := time.Parse(DateLayout, raw.EndDate); err == nil {
			f.EndDate = d
		} else {
			f.Defaulted = append(f.Defaulted, "end_date")
		}
	}

	switch MovementType(raw.MovementType) {
	case MovementInbound:
		f.Movement = MovementInbound
	case MovementOutbound:
		f.Movement = MovementOutbound
	case MovementAll, "":
		// default already set
	default:
		f.Defaulted = append(f.Defaulted, "movement_type")
	}

	return f
}

// AccountID parses the account filter at query time. A non-numeric value
// returns ok=false and the account predicate is silently dropped.
func (f Filter) AccountID() (int64, bool) {
	if f.Account == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(f.Account, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// HasProduct reports whether a product search term is present.
func (f Filter) HasProduct() bool {
	return f.Product != ""
}

// ProductPattern returns the ILIKE pattern for the product search term.
func (f Filter) ProductPattern() string {
	return "%" + f.Product + "%"
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
