package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand represents a product brand.
type Brand struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Logo        string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	Featured    bool               `bson:"featured" json:"featured"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// BrandFields is the projection whitelist for brands.
var BrandFields = NewFieldSet(
	"name", "slug", "description", "logo", "website",
	"featured", "order", "is_active", "created_at", "updated_at",
)

// Category represents a product category. Categories nest one level
// deep through ParentID.
type Category struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name        string              `bson:"name" json:"name"`
	Slug        string              `bson:"slug" json:"slug"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	ParentID    *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Parent      *ParentRef          `bson:"-" json:"parent,omitempty"`
	Featured    bool                `bson:"featured" json:"featured"`
	Order       int                 `bson:"order" json:"order"`
	IsActive    bool                `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

// ParentRef is the parent summary joined into child categories when
// the list asks for it. Never persisted.
type ParentRef struct {
	ID   primitive.ObjectID `bson:"-" json:"_id"`
	Name string             `bson:"-" json:"name"`
	Slug string             `bson:"-" json:"slug"`
}

// CategoryFields is the projection whitelist for categories.
var CategoryFields = NewFieldSet(
	"name", "slug", "description", "image", "parent_id",
	"featured", "order", "is_active", "created_at", "updated_at",
)

// CategoryWithChildren is a top-level category with its direct children.
// Only one level of nesting is materialized.
type CategoryWithChildren struct {
	Category `bson:",inline"`
	Children []Category `json:"children"`
}

// Product represents a catalog product.
type Product struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name          string              `bson:"name" json:"name"`
	Slug          string              `bson:"slug" json:"slug"`
	SKU           string              `bson:"sku" json:"sku"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	Images        []string            `bson:"images,omitempty" json:"images,omitempty"`
	Price         float64             `bson:"price" json:"price"`
	DiscountPrice float64             `bson:"discount_price,omitempty" json:"discount_price,omitempty"`
	Stock         int                 `bson:"stock" json:"stock"`
	BrandID       *primitive.ObjectID `bson:"brand_id,omitempty" json:"brand_id,omitempty"`
	CategoryID    *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	Featured      bool                `bson:"featured" json:"featured"`
	IsActive      bool                `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// ProductFields is the projection whitelist for products.
var ProductFields = NewFieldSet(
	"name", "slug", "sku", "description", "images", "price",
	"discount_price", "stock", "brand_id", "category_id",
	"featured", "is_active", "created_at", "updated_at",
)
