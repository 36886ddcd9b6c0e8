package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/middleware"
	"github.com/guttosm/commerce-service/internal/service"
)

// WishlistHandler handles the authenticated user's wishlist.
type WishlistHandler struct {
	wishlist service.WishlistService
}

// NewWishlistHandler creates a WishlistHandler.
func NewWishlistHandler(wishlist service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

func (h *WishlistHandler) register(protected *gin.RouterGroup) {
	protected.GET("/wishlist", h.Get)
	protected.POST("/wishlist/items", h.AddItem)
	protected.DELETE("/wishlist/items/:itemId", h.RemoveItem)
	protected.DELETE("/wishlist", h.Clear)
}

// Get returns the current user's wishlist.
// @Summary     Get my wishlist
// @Tags        Wishlist
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/wishlist [get]
func (h *WishlistHandler) Get(c *gin.Context) {
	resp := NewResponseBuilder(c)
	wishlist, err := h.wishlist.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("wishlist retrieved", wishlist)
}

// AddItem adds a product to the wishlist. Adding a product that is
// already present is a no-op.
func (h *WishlistHandler) AddItem(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.AddWishlistItemRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	wishlist, err := h.wishlist.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("item added to wishlist", wishlist)
}

// RemoveItem removes a wishlist entry by its item id.
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	resp := NewResponseBuilder(c)
	wishlist, err := h.wishlist.RemoveItem(c.Request.Context(), middleware.GetUserID(c), c.Param("itemId"))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("item removed from wishlist", wishlist)
}

// Clear empties the wishlist.
func (h *WishlistHandler) Clear(c *gin.Context) {
	resp := NewResponseBuilder(c)
	wishlist, err := h.wishlist.Clear(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("wishlist cleared", wishlist)
}
