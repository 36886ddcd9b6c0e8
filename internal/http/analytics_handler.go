package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/service"
)

// AnalyticsHandler handles admin reporting endpoints.
type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) register(admin *gin.RouterGroup) {
	admin.GET("/analytics/dashboard", h.Dashboard)
	admin.GET("/analytics/sales", h.Sales)
	admin.GET("/analytics/orders", h.Orders)
	admin.GET("/analytics/products/top", h.TopProducts)
	admin.GET("/analytics/products/low-stock", h.LowStock)
	admin.GET("/analytics/sales/by-category", h.SalesByCategory)
	admin.GET("/analytics/revenue/comparison", h.RevenueComparison)
}

// Dashboard returns catalog and order totals for the admin dashboard.
// @Summary     Dashboard statistics
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	resp := NewResponseBuilder(c)
	stats, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("dashboard stats retrieved", stats)
}

// Sales returns revenue and order counts grouped by period.
// @Summary     Sales time series
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Param       period     query string false "daily, weekly, monthly, or yearly"
// @Param       start_date query string false "RFC 3339 date"
// @Param       end_date   query string false "RFC 3339 date"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/sales [get]
func (h *AnalyticsHandler) Sales(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.TimeSeriesQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	series, err := h.analytics.SalesSeries(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("sales series retrieved", series)
}

// Orders returns order counts grouped by period with a per-status
// breakdown.
// @Summary     Order time series
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Param       period     query string false "daily, weekly, monthly, or yearly"
// @Param       start_date query string false "RFC 3339 date"
// @Param       end_date   query string false "RFC 3339 date"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/orders [get]
func (h *AnalyticsHandler) Orders(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.TimeSeriesQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	series, err := h.analytics.OrderSeries(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order series retrieved", series)
}

// TopProducts returns the best selling products in the date range.
// @Summary     Top selling products
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Param       start_date query string false "RFC 3339 date"
// @Param       end_date   query string false "RFC 3339 date"
// @Param       limit      query int    false "Result size, default 10"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/products/top [get]
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.TopProductsQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	rows, err := h.analytics.TopProducts(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("top products retrieved", rows)
}

// LowStock returns active products at or below the stock threshold.
// @Summary     Low stock products
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Param       threshold query int false "Stock threshold, default 10"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/products/low-stock [get]
func (h *AnalyticsHandler) LowStock(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.LowStockQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	rows, err := h.analytics.LowStock(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("low stock products retrieved", rows)
}

// SalesByCategory returns units and revenue totals per category.
// @Summary     Sales by category
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Param       start_date query string false "RFC 3339 date"
// @Param       end_date   query string false "RFC 3339 date"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/sales/by-category [get]
func (h *AnalyticsHandler) SalesByCategory(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.DateRangeQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	rows, err := h.analytics.SalesByCategory(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("category sales retrieved", rows)
}

// RevenueComparison contrasts current and previous month and week
// revenue.
// @Summary     Revenue comparison
// @Tags        Analytics
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/analytics/revenue/comparison [get]
func (h *AnalyticsHandler) RevenueComparison(c *gin.Context) {
	resp := NewResponseBuilder(c)
	cmp, err := h.analytics.RevenueComparison(c.Request.Context())
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("revenue comparison retrieved", cmp)
}
