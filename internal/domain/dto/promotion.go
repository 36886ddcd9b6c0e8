package dto

import (
	"time"

	"github.com/guttosm/commerce-service/internal/domain/model"
)

// validateDiscountType checks the shared discount type enum.
func validateDiscountType(t string) *FieldError {
	if t != model.DiscountPercentage && t != model.DiscountFixedAmount {
		return &FieldError{Path: "discount_type", Message: "must be percentage or fixed_amount"}
	}
	return nil
}

func validateDateWindow(start, end time.Time) *FieldError {
	if !end.IsZero() && !start.IsZero() && end.Before(start) {
		return &FieldError{Path: "end_date", Message: "must not be before start_date"}
	}
	return nil
}

// CouponListQuery holds coupon list filters.
type CouponListQuery struct {
	ListQuery
	DiscountType string `form:"discount_type"`
}

// CreateCouponRequest creates a coupon.
type CreateCouponRequest struct {
	Code              string    `json:"code" binding:"required"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discount_type" binding:"required"`
	DiscountValue     float64   `json:"discount_value" binding:"required,gt=0"`
	MinPurchaseAmount float64   `json:"minimum_purchase_amount"`
	UsageLimit        int       `json:"usage_limit"`
	StartDate         time.Time `json:"start_date" binding:"required"`
	EndDate           time.Time `json:"end_date" binding:"required"`
	IsActive          *bool     `json:"is_active"`
}

// Validate checks enum and date constraints.
func (r *CreateCouponRequest) Validate() error {
	var errs []FieldError
	if err := validateDiscountType(r.DiscountType); err != nil {
		errs = append(errs, *err)
	}
	if err := validateDateWindow(r.StartDate, r.EndDate); err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// UpdateCouponRequest updates a coupon; nil fields are left unchanged.
type UpdateCouponRequest struct {
	Code              *string    `json:"code"`
	Description       *string    `json:"description"`
	DiscountType      *string    `json:"discount_type"`
	DiscountValue     *float64   `json:"discount_value"`
	MinPurchaseAmount *float64   `json:"minimum_purchase_amount"`
	UsageLimit        *int       `json:"usage_limit"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          *bool      `json:"is_active"`
}

// Validate checks the enum when present.
func (r *UpdateCouponRequest) Validate() error {
	if r.DiscountType != nil {
		if err := validateDiscountType(*r.DiscountType); err != nil {
			return &ValidationError{Fields: []FieldError{*err}}
		}
	}
	return nil
}

// ValidateCouponRequest checks a code against a purchase amount.
type ValidateCouponRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount"`
}

// CouponValidity is the outcome of a coupon validation.
type CouponValidity struct {
	Valid          bool    `json:"valid"`
	DiscountType   string  `json:"discount_type,omitempty"`
	DiscountValue  float64 `json:"discount_value,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

// CampaignListQuery holds campaign list filters.
type CampaignListQuery struct {
	ListQuery
	DiscountType string `form:"discount_type"`
}

// CreateCampaignRequest creates a campaign.
type CreateCampaignRequest struct {
	Name              string                `json:"name" binding:"required"`
	Description       string                `json:"description" binding:"required"`
	Image             string                `json:"image" binding:"required"`
	StartDate         time.Time             `json:"start_date" binding:"required"`
	EndDate           time.Time             `json:"end_date" binding:"required"`
	DiscountType      string                `json:"discount_type" binding:"required"`
	DiscountValue     float64               `json:"discount_value" binding:"required,gte=0"`
	AppliesTo         model.CampaignTargets `json:"applies_to"`
	MinPurchaseAmount float64               `json:"minimum_purchase_amount"`
	FreeShipping      bool                  `json:"free_shipping"`
	UsageLimit        int                   `json:"usage_limit"`
	IsActive          *bool                 `json:"is_active"`
}

// Validate checks enum and date constraints.
func (r *CreateCampaignRequest) Validate() error {
	var errs []FieldError
	if err := validateDiscountType(r.DiscountType); err != nil {
		errs = append(errs, *err)
	}
	if err := validateDateWindow(r.StartDate, r.EndDate); err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// UpdateCampaignRequest updates a campaign; nil fields are left unchanged.
type UpdateCampaignRequest struct {
	Name              *string                `json:"name"`
	Description       *string                `json:"description"`
	Image             *string                `json:"image"`
	StartDate         *time.Time             `json:"start_date"`
	EndDate           *time.Time             `json:"end_date"`
	DiscountType      *string                `json:"discount_type"`
	DiscountValue     *float64               `json:"discount_value"`
	AppliesTo         *model.CampaignTargets `json:"applies_to"`
	MinPurchaseAmount *float64               `json:"minimum_purchase_amount"`
	FreeShipping      *bool                  `json:"free_shipping"`
	UsageLimit        *int                   `json:"usage_limit"`
	IsActive          *bool                  `json:"is_active"`
}

// Validate checks the enum when present.
func (r *UpdateCampaignRequest) Validate() error {
	if r.DiscountType != nil {
		if err := validateDiscountType(*r.DiscountType); err != nil {
			return &ValidationError{Fields: []FieldError{*err}}
		}
	}
	return nil
}

// OfferListQuery holds offer list filters.
type OfferListQuery struct {
	ListQuery
	DiscountType string `form:"discount_type"`
}

// CreateOfferRequest creates an offer.
type CreateOfferRequest struct {
	Name               string    `json:"name" binding:"required"`
	Description        string    `json:"description" binding:"required"`
	Image              string    `json:"image" binding:"required"`
	StartDate          time.Time `json:"start_date" binding:"required"`
	EndDate            time.Time `json:"end_date" binding:"required"`
	DiscountType       string    `json:"discount_type" binding:"required"`
	DiscountValue      float64   `json:"discount_value" binding:"required,gte=0"`
	ApplicableProducts []string  `json:"applicable_products"`
	FreeShipping       bool      `json:"free_shipping"`
	IsActive           *bool     `json:"is_active"`
}

// Validate checks enum and date constraints.
func (r *CreateOfferRequest) Validate() error {
	var errs []FieldError
	if err := validateDiscountType(r.DiscountType); err != nil {
		errs = append(errs, *err)
	}
	if err := validateDateWindow(r.StartDate, r.EndDate); err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// UpdateOfferRequest updates an offer; nil fields are left unchanged.
type UpdateOfferRequest struct {
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	Image              *string    `json:"image"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	DiscountType       *string    `json:"discount_type"`
	DiscountValue      *float64   `json:"discount_value"`
	ApplicableProducts *[]string  `json:"applicable_products"`
	FreeShipping       *bool      `json:"free_shipping"`
	IsActive           *bool      `json:"is_active"`
}

// Validate checks the enum when present.
func (r *UpdateOfferRequest) Validate() error {
	if r.DiscountType != nil {
		if err := validateDiscountType(*r.DiscountType); err != nil {
			return &ValidationError{Fields: []FieldError{*err}}
		}
	}
	return nil
}
