package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"valora/internal/domain/reports"
	"valora/internal/infrastructure/http/v1/dto"
	"valora/pkg/logger"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// filter binds the query parameters and normalizes them. Normalization is
// total, so this never fails; malformed inputs fall back to defaults and
// are logged for operators.
func (h *ReportsHandler) filter(c *gin.Context) reports.Filter {
	var req dto.ReportFilterRequest
	_ = c.ShouldBindQuery(&req)

	f := reports.NormalizeFilter(req.ToRawFilter(), time.Now())
	if len(f.Defaulted) > 0 {
		logger.Warn(c.Request.Context(), "report filter inputs defaulted",
			"fields", f.Defaulted,
			"path", c.FullPath(),
		)
	}
	return f
}

// Purchases handles GET /reports/purchases
func (h *ReportsHandler) Purchases(c *gin.Context) {
	f := h.filter(c)

	items, err := h.service.Purchases(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewReportResponse(f, items))
}

// StockMovements handles GET /reports/stock
func (h *ReportsHandler) StockMovements(c *gin.Context) {
	f := h.filter(c)

	items, err := h.service.StockMovements(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewReportResponse(f, items))
}

// PurchasesByPeriod handles GET /reports/purchases/by-period
func (h *ReportsHandler) PurchasesByPeriod(c *gin.Context) {
	f := h.filter(c)

	items, err := h.service.PurchasesByPeriod(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewReportResponse(f, items))
}

// Ranking handles GET /reports/purchases/ranking
func (h *ReportsHandler) Ranking(c *gin.Context) {
	f := h.filter(c)

	items, err := h.service.ProductRanking(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewReportResponse(f, items))
}

// AveragePrice handles GET /reports/purchases/average-price
// The mode query parameter selects the monthly or per-product variant;
// unknown values fall back to monthly.
func (h *ReportsHandler) AveragePrice(c *gin.Context) {
	f := h.filter(c)
	ctx := c.Request.Context()

	switch reports.NormalizePriceMode(c.Query("mode")) {
	case reports.PriceModeProduct:
		items, err := h.service.ProductAveragePrice(ctx, f)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, dto.AveragePriceByProductResponse{
			Mode:           string(reports.PriceModeProduct),
			ReportResponse: dto.NewReportResponse(f, items),
		})
	default:
		items, err := h.service.MonthlyAveragePrice(ctx, f)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, dto.AveragePriceMonthlyResponse{
			Mode:           string(reports.PriceModeMonthly),
			ReportResponse: dto.NewReportResponse(f, items),
		})
	}
}

// MonthComparison handles GET /reports/purchases/month-comparison
func (h *ReportsHandler) MonthComparison(c *gin.Context) {
	f := h.filter(c)

	items, err := h.service.MonthComparison(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewReportResponse(f, items))
}

// TopPurchases handles GET /reports/purchases/top
func (h *ReportsHandler) TopPurchases(c *gin.Context) {
	f := h.filter(c)

	items, err := h.service.TopPurchases(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewReportResponse(f, items))
}

// RegisterRoutes registers report routes on an authenticated group.
func (h *ReportsHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/purchases", h.Purchases)
	protected.GET("/stock", h.StockMovements)
	protected.GET("/purchases/by-period", h.PurchasesByPeriod)
	protected.GET("/purchases/ranking", h.Ranking)
	protected.GET("/purchases/average-price", h.AveragePrice)
	protected.GET("/purchases/month-comparison", h.MonthComparison)
	protected.GET("/purchases/top", h.TopPurchases)
}
