package dto

import (
	"strconv"

	"valora/internal/domain/reports"
)

// --- Requests ---

// ReportFilterRequest carries the raw filter query parameters. All fields
// are free-form strings; normalization with lenient defaults happens in the
// domain layer.
type ReportFilterRequest struct {
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	Account      string `form:"account"`
	Product      string `form:"product"`
	MovementType string `form:"movementType"`
}

// ToRawFilter converts to the domain raw filter.
func (r *ReportFilterRequest) ToRawFilter() reports.RawFilter {
	return reports.RawFilter{
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Account:      r.Account,
		Product:      r.Product,
		MovementType: r.MovementType,
	}
}

// --- Responses ---

// FilterResponse echoes the normalized filter a report was produced with,
// so clients can see which values were actually applied.
type FilterResponse struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Account      string `json:"account,omitempty"`
	Product      string `json:"product,omitempty"`
	MovementType string `json:"movementType,omitempty"`
}

// FromFilter creates a filter echo from a normalized filter. The account is
// included only when it survived normalization as a numeric id.
func FromFilter(f reports.Filter) FilterResponse {
	resp := FilterResponse{
		StartDate: f.StartDate.Format(reports.DateLayout),
		EndDate:   f.EndDate.Format(reports.DateLayout),
		Product:   f.Product,
	}
	if id, ok := f.AccountID(); ok {
		resp.Account = strconv.FormatInt(id, 10)
	}
	if f.Movement != reports.MovementAll {
		resp.MovementType = string(f.Movement)
	}
	return resp
}

// ReportResponse wraps report items with the applied filter.
type ReportResponse[T any] struct {
	Filter FilterResponse `json:"filter"`
	Items  []T            `json:"items"`
	Count  int            `json:"count"`
}

// NewReportResponse creates a report response.
func NewReportResponse[T any](f reports.Filter, items []T) ReportResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ReportResponse[T]{
		Filter: FromFilter(f),
		Items:  items,
		Count:  len(items),
	}
}

// AveragePriceMonthlyResponse is the monthly shape of the average price report.
type AveragePriceMonthlyResponse struct {
	Mode string `json:"mode"`
	ReportResponse[reports.MonthlyPriceItem]
}

// AveragePriceByProductResponse is the per-product shape of the average price report.
type AveragePriceByProductResponse struct {
	Mode string `json:"mode"`
	ReportResponse[reports.ProductPriceItem]
}
