package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/middleware"
	"github.com/guttosm/commerce-service/internal/service"
)

// OrderHandler handles order endpoints. Customers create and view
// their own orders; fulfilment operations are admin-only.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) register(protected, admin *gin.RouterGroup) {
	protected.POST("/orders", h.Create)
	protected.GET("/orders/my", h.ListMine)
	protected.GET("/orders/:id", h.GetByID)
	protected.POST("/orders/:id/cancel", h.Cancel)
	protected.POST("/orders/:id/return", h.Return)

	admin.GET("/orders", h.List)
	admin.GET("/orders/stats", h.Stats)
	admin.GET("/orders/tracking/:trackingNumber", h.GetByTracking)
	admin.PUT("/orders/:id", h.Update)
	admin.PATCH("/orders/:id/status", h.UpdateStatus)
	admin.POST("/orders/:id/refund", h.Refund)
	admin.PUT("/orders/:id/tracking", h.UpdateTracking)
	admin.DELETE("/orders/:id", h.Delete)
}

// loadOwned fetches an order and verifies the caller owns it.
// Admins bypass the ownership check.
func (h *OrderHandler) loadOwned(c *gin.Context, id string) (*model.Order, error) {
	order, err := h.orders.GetByID(c.Request.Context(), id, &dto.GetQuery{})
	if err != nil {
		return nil, err
	}
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return nil, service.ForbiddenError("authentication required")
	}
	if !claims.IsAdmin() && order.UserID.Hex() != claims.UserID {
		return nil, service.ForbiddenError("order belongs to another user")
	}
	return order, nil
}

// Create places a new order for the authenticated user.
// @Summary     Place an order
// @Tags        Orders
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body dto.CreateOrderRequest true "Order data"
// @Success     201 {object} dto.SuccessResponse
// @Failure     400 {object} dto.ErrorResponse
// @Failure     409 {object} dto.ErrorResponse
// @Router      /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.CreateOrderRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	order, err := h.orders.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.Created("order created", order)
}

// ListMine lists the authenticated user's orders.
// @Summary     List my orders
// @Tags        Orders
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/orders/my [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.OrderListQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	result, err := h.orders.ListForUser(c.Request.Context(), middleware.GetUserID(c), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("orders retrieved", result)
}

// List lists all orders.
// @Summary     List orders
// @Tags        Orders
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.OrderListQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	result, err := h.orders.List(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("orders retrieved", result)
}

// GetByID returns a single order. Non-admins only see their own.
func (h *OrderHandler) GetByID(c *gin.Context) {
	resp := NewResponseBuilder(c)
	order, err := h.loadOwned(c, c.Param("id"))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order retrieved", order)
}

// Update updates an order's mutable fields.
func (h *OrderHandler) Update(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.UpdateOrderRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order updated", order)
}

// UpdateStatus moves an order through the fulfilment flow.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.UpdateOrderStatusRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order status updated", order)
}

// Cancel cancels an order. Non-admins only cancel their own.
func (h *OrderHandler) Cancel(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.CancelOrderRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	if _, err := h.loadOwned(c, c.Param("id")); err != nil {
		resp.FromError(err)
		return
	}
	order, err := h.orders.Cancel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order cancelled", order)
}

// Return marks a delivered order as returned. Non-admins only return
// their own.
func (h *OrderHandler) Return(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.ReturnOrderRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	if _, err := h.loadOwned(c, c.Param("id")); err != nil {
		resp.FromError(err)
		return
	}
	order, err := h.orders.Return(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order returned", order)
}

// Refund records a refund on a cancelled or returned order.
func (h *OrderHandler) Refund(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.RefundOrderRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	order, err := h.orders.Refund(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order refunded", order)
}

// UpdateTracking sets carrier tracking details.
func (h *OrderHandler) UpdateTracking(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.UpdateTrackingRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	order, err := h.orders.UpdateTracking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("tracking updated", order)
}

// GetByTracking looks an order up by its tracking number.
// @Summary     Find order by tracking number
// @Tags        Orders
// @Security    BearerAuth
// @Produce     json
// @Param       trackingNumber path string true "Carrier tracking number"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/orders/tracking/{trackingNumber} [get]
func (h *OrderHandler) GetByTracking(c *gin.Context) {
	resp := NewResponseBuilder(c)
	order, err := h.orders.GetByTracking(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order retrieved", order)
}

// Stats returns aggregate order counts and revenue.
// @Summary     Order statistics
// @Tags        Orders
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/orders/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	resp := NewResponseBuilder(c)
	q, err := BindQuery[dto.OrderStatsQuery](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	stats, err := h.orders.Stats(c.Request.Context(), q)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order stats retrieved", stats)
}

// Delete removes an order.
func (h *OrderHandler) Delete(c *gin.Context) {
	resp := NewResponseBuilder(c)
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("order deleted", nil)
}
