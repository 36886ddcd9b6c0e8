package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/middleware"
	"github.com/guttosm/commerce-service/internal/service"
)

// CartHandler handles the authenticated user's shopping cart.
type CartHandler struct {
	cart service.CartService
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(cart service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) register(protected *gin.RouterGroup) {
	protected.GET("/cart", h.Get)
	protected.POST("/cart/items", h.AddItem)
	protected.PUT("/cart/items/:productId", h.UpdateItem)
	protected.DELETE("/cart/items/:productId", h.RemoveItem)
	protected.DELETE("/cart", h.Clear)
}

// Get returns the current user's cart.
// @Summary     Get my cart
// @Tags        Cart
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	resp := NewResponseBuilder(c)
	cart, err := h.cart.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("cart retrieved", cart)
}

// AddItem adds a product to the cart, incrementing quantity when the
// product is already present.
func (h *CartHandler) AddItem(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.AddCartItemRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	cart, err := h.cart.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("item added to cart", cart)
}

// UpdateItem sets the quantity of a cart line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.UpdateCartItemRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	cart, err := h.cart.UpdateItem(c.Request.Context(), middleware.GetUserID(c), c.Param("productId"), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("cart item updated", cart)
}

// RemoveItem removes a product from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	resp := NewResponseBuilder(c)
	cart, err := h.cart.RemoveItem(c.Request.Context(), middleware.GetUserID(c), c.Param("productId"))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("item removed from cart", cart)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	resp := NewResponseBuilder(c)
	cart, err := h.cart.Clear(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("cart cleared", cart)
}
