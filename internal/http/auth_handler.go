package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/middleware"
	"github.com/guttosm/commerce-service/internal/service"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// register wires auth routes. Register, login, and refresh are public;
// the rest require a valid access token.
func (h *AuthHandler) register(public, protected *gin.RouterGroup) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/refresh", h.Refresh)
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
	protected.PUT("/auth/profile", h.UpdateProfile)
	protected.POST("/auth/change-password", h.ChangePassword)
}

// Register handles account creation.
// @Summary     Register a new account
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request body dto.RegisterRequest true "Registration data"
// @Success     201 {object} dto.SuccessResponse
// @Failure     400 {object} dto.ErrorResponse
// @Failure     409 {object} dto.ErrorResponse
// @Router      /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.RegisterRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.Created("account created", result)
}

// Login handles credential authentication.
// @Summary     Log in with email and password
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request body dto.LoginRequest true "Credentials"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.ErrorResponse
// @Router      /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.LoginRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("login successful", result)
}

// Refresh exchanges a refresh token for a new token pair.
// @Summary     Refresh the access token
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request body dto.RefreshRequest true "Refresh token"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.ErrorResponse
// @Router      /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.RefreshRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("token refreshed", pair)
}

// Logout invalidates the current session's refresh token.
// @Summary     Log out
// @Tags        Auth
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	resp := NewResponseBuilder(c)
	if err := h.auth.Logout(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("logged out", nil)
}

// Me returns the authenticated user's profile.
// @Summary     Get the current user
// @Tags        Auth
// @Security    BearerAuth
// @Produce     json
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp := NewResponseBuilder(c)
	user, err := h.auth.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("profile retrieved", user)
}

// UpdateProfile updates the authenticated user's profile.
// @Summary     Update the current user's profile
// @Tags        Auth
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body dto.UpdateProfileRequest true "Profile fields"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.UpdateProfileRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("profile updated", user)
}

// ChangePassword changes the authenticated user's password.
// @Summary     Change the current user's password
// @Tags        Auth
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body dto.ChangePasswordRequest true "Old and new password"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.ErrorResponse
// @Router      /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	resp := NewResponseBuilder(c)
	req, err := BindJSON[dto.ChangePasswordRequest](c)
	if err != nil {
		resp.BadRequest(err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req); err != nil {
		resp.FromError(err)
		return
	}
	resp.OK("password changed", nil)
}
