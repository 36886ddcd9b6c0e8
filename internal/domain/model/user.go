package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// User represents an account. Password and RefreshToken are never
// serialized to JSON and are excluded from default projections.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email           string             `bson:"email" json:"email"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Password        string             `bson:"password" json:"-"`
	Role            string             `bson:"role" json:"role"`
	RefreshToken    string             `bson:"refresh_token,omitempty" json:"-"`
	ShippingAddress *ShippingAddress   `bson:"shipping_address,omitempty" json:"shipping_address,omitempty"`
	IsVerified      bool               `bson:"is_verified" json:"is_verified"`
	LastLogin       *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserFields is the projection whitelist for users. The credential
// fields are deliberately absent so they can never be requested.
var UserFields = NewFieldSet(
	"email", "name", "phone", "avatar", "role", "shipping_address",
	"is_verified", "last_login", "created_at", "updated_at",
)

// IsAdmin reports whether the user holds an admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
