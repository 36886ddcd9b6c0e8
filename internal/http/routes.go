package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/middleware"
	"github.com/guttosm/commerce-service/internal/service"
)

// Services bundles the service layer for route registration.
type Services struct {
	Tokens     service.TokenService
	Auth       service.AuthService
	Brands     service.BrandService
	Categories service.CategoryService
	Products   service.ProductService
	Banners    service.BannerService
	Stores     service.StoreService
	Coupons    service.CouponService
	Campaigns  service.CampaignService
	Offers     service.OfferService
	Orders     service.OrderService
	Wishlist   service.WishlistService
	Cart       service.CartService
	Users      service.UserService
	Analytics  service.AnalyticsService
}

// registerRoutes wires every business route under the api group.
// Reads on catalog, promotion, and content resources are public;
// everything else requires a token, and management requires an admin
// role.
func registerRoutes(api *gin.RouterGroup, svc *Services, userLimit gin.HandlerFunc) {
	public := api
	protected := api.Group("", middleware.JWTAuth(svc.Tokens))
	if userLimit != nil {
		protected.Use(userLimit)
	}
	admin := protected.Group("", middleware.RequireAdmin())

	// Catalog
	newCRUDHandler[model.Brand, dto.BrandListQuery, dto.CreateBrandRequest, dto.UpdateBrandRequest](
		svc.Brands, "brand", "brands").register(public, admin, "brands")
	newCRUDHandler[model.Category, dto.CategoryListQuery, dto.CreateCategoryRequest, dto.UpdateCategoryRequest](
		svc.Categories, "category", "categories").register(public, admin, "categories")
	newCRUDHandler[model.Product, dto.ProductListQuery, dto.CreateProductRequest, dto.UpdateProductRequest](
		svc.Products, "product", "products").register(public, admin, "products")
	public.GET("/categories/tree", categoryTreeHandler(svc.Categories))

	// Content
	newCRUDHandler[model.Banner, dto.BannerListQuery, dto.CreateBannerRequest, dto.UpdateBannerRequest](
		svc.Banners, "banner", "banners").register(public, admin, "banners")
	newCRUDHandler[model.Store, dto.StoreListQuery, dto.CreateStoreRequest, dto.UpdateStoreRequest](
		svc.Stores, "store", "stores").register(public, admin, "stores")

	// Promotions
	newCRUDHandler[model.Coupon, dto.CouponListQuery, dto.CreateCouponRequest, dto.UpdateCouponRequest](
		svc.Coupons, "coupon", "coupons").register(admin, admin, "coupons")
	newCRUDHandler[model.Campaign, dto.CampaignListQuery, dto.CreateCampaignRequest, dto.UpdateCampaignRequest](
		svc.Campaigns, "campaign", "campaigns").register(public, admin, "campaigns")
	newCRUDHandler[model.Offer, dto.OfferListQuery, dto.CreateOfferRequest, dto.UpdateOfferRequest](
		svc.Offers, "offer", "offers").register(public, admin, "offers")
	protected.POST("/coupons/validate", couponValidateHandler(svc.Coupons))

	// Commerce
	NewOrderHandler(svc.Orders).register(protected, admin)
	NewCartHandler(svc.Cart).register(protected)
	NewWishlistHandler(svc.Wishlist).register(protected)

	// Accounts
	NewAuthHandler(svc.Auth).register(public, protected)
	NewUserHandler(svc.Users).register(admin)

	// Reporting
	NewAnalyticsHandler(svc.Analytics).register(admin)
}

// categoryTreeHandler returns the full category hierarchy.
// @Summary     Category tree
// @Tags        Categories
// @Produce     json
// @Param       is_active query bool false "Filter by active flag"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/categories/tree [get]
func categoryTreeHandler(categories service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := NewResponseBuilder(c)
		q, err := BindQuery[dto.CategoryTreeQuery](c)
		if err != nil {
			resp.BadRequest(err)
			return
		}
		tree, err := categories.Tree(c.Request.Context(), q)
		if err != nil {
			resp.FromError(err)
			return
		}
		resp.OK("category tree retrieved", tree)
	}
}

// couponValidateHandler checks a coupon against an order amount.
// @Summary     Validate a coupon
// @Tags        Coupons
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body dto.ValidateCouponRequest true "Code and order amount"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/coupons/validate [post]
func couponValidateHandler(coupons service.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := NewResponseBuilder(c)
		req, err := BindJSON[dto.ValidateCouponRequest](c)
		if err != nil {
			resp.BadRequest(err)
			return
		}
		validity, err := coupons.Validate(c.Request.Context(), req)
		if err != nil {
			resp.FromError(err)
			return
		}
		resp.OK("coupon validated", validity)
	}
}
