package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount types shared by coupons, campaigns, and offers.
const (
	DiscountPercentage  = "percentage"
	DiscountFixedAmount = "fixed_amount"
)

// Coupon represents a redeemable discount code.
type Coupon struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Code              string             `bson:"code" json:"code"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	DiscountType      string             `bson:"discount_type" json:"discount_type"`
	DiscountValue     float64            `bson:"discount_value" json:"discount_value"`
	MinPurchaseAmount float64            `bson:"minimum_purchase_amount" json:"minimum_purchase_amount"`
	UsageLimit        int                `bson:"usage_limit" json:"usage_limit"`
	UsedCount         int                `bson:"used_count" json:"used_count"`
	StartDate         time.Time          `bson:"start_date" json:"start_date"`
	EndDate           time.Time          `bson:"end_date" json:"end_date"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// CouponFields is the projection whitelist for coupons.
var CouponFields = NewFieldSet(
	"code", "description", "discount_type", "discount_value",
	"minimum_purchase_amount", "usage_limit", "used_count",
	"start_date", "end_date", "is_active", "created_at", "updated_at",
)

// CampaignTargets describes what a campaign applies to.
type CampaignTargets struct {
	AllProducts bool     `bson:"all_products" json:"all_products"`
	ProductIDs  []string `bson:"product_ids" json:"product_ids"`
	CategoryIDs []string `bson:"category_ids" json:"category_ids"`
	BrandIDs    []string `bson:"brand_ids" json:"brand_ids"`
}

// Campaign represents a store-wide promotional campaign.
type Campaign struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description" json:"description"`
	Image             string             `bson:"image" json:"image"`
	StartDate         time.Time          `bson:"start_date" json:"start_date"`
	EndDate           time.Time          `bson:"end_date" json:"end_date"`
	DiscountType      string             `bson:"discount_type" json:"discount_type"`
	DiscountValue     float64            `bson:"discount_value" json:"discount_value"`
	AppliesTo         CampaignTargets    `bson:"applies_to" json:"applies_to"`
	MinPurchaseAmount float64            `bson:"minimum_purchase_amount" json:"minimum_purchase_amount"`
	FreeShipping      bool               `bson:"free_shipping" json:"free_shipping"`
	UsageLimit        int                `bson:"usage_limit" json:"usage_limit"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// CampaignFields is the projection whitelist for campaigns.
var CampaignFields = NewFieldSet(
	"name", "description", "image", "start_date", "end_date",
	"discount_type", "discount_value", "applies_to",
	"minimum_purchase_amount", "free_shipping", "usage_limit",
	"is_active", "created_at", "updated_at",
)

// Offer represents a product-scoped promotional offer.
type Offer struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description" json:"description"`
	Image              string             `bson:"image" json:"image"`
	StartDate          time.Time          `bson:"start_date" json:"start_date"`
	EndDate            time.Time          `bson:"end_date" json:"end_date"`
	DiscountType       string             `bson:"discount_type" json:"discount_type"`
	DiscountValue      float64            `bson:"discount_value" json:"discount_value"`
	ApplicableProducts []string           `bson:"applicable_products" json:"applicable_products"`
	FreeShipping       bool               `bson:"free_shipping" json:"free_shipping"`
	IsActive           bool               `bson:"is_active" json:"is_active"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// OfferFields is the projection whitelist for offers.
var OfferFields = NewFieldSet(
	"name", "description", "image", "start_date", "end_date",
	"discount_type", "discount_value", "applicable_products",
	"free_shipping", "is_active", "created_at", "updated_at",
)
