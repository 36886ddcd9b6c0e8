package dto

import (
	"time"

	"github.com/guttosm/commerce-service/internal/domain/model"
)

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest is the self-service profile update.
type UpdateProfileRequest struct {
	Name            *string                `json:"name"`
	Phone           *string                `json:"phone"`
	Avatar          *string                `json:"avatar"`
	ShippingAddress *model.ShippingAddress `json:"shipping_address"`
}

// TokenPair carries the issued access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Claims is the authenticated identity carried in JWT tokens and the
// request context. LoginCode ties refresh tokens to one login session.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LoginCode string `json:"login_code,omitempty"`
}

// IsAdmin reports whether the claims carry an admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == model.RoleAdmin || c.Role == model.RoleSuperAdmin
}

// LoginResult is the login payload: tokens plus a user summary.
type LoginResult struct {
	TokenPair
	User UserSummary `json:"user"`
}

// UserSummary is the minimal user shape embedded in auth payloads.
type UserSummary struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}
