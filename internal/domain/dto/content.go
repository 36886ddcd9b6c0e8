package dto

import (
	"time"

	"github.com/guttosm/commerce-service/internal/domain/model"
)

// BannerListQuery holds banner list filters.
type BannerListQuery struct {
	ListQuery
	Type string `form:"type"`
}

// Validate checks the banner type when present.
func (q *BannerListQuery) Validate(fields model.FieldSet) error {
	if err := q.ListQuery.Validate(fields); err != nil {
		return err
	}
	if q.Type != "" && !validBannerType(q.Type) {
		return &ValidationError{Fields: []FieldError{
			{Path: "type", Message: "must be popup, slider or static"},
		}}
	}
	return nil
}

func validBannerType(t string) bool {
	return t == model.BannerPopup || t == model.BannerSlider || t == model.BannerStatic
}

// CreateBannerRequest creates a banner.
type CreateBannerRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Image       string     `json:"image" binding:"required"`
	Link        string     `json:"link" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

// Validate checks the banner type enum.
func (r *CreateBannerRequest) Validate() error {
	if !validBannerType(r.Type) {
		return &ValidationError{Fields: []FieldError{
			{Path: "type", Message: "must be popup, slider or static"},
		}}
	}
	return nil
}

// UpdateBannerRequest updates a banner; nil fields are left unchanged.
type UpdateBannerRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	Link        *string    `json:"link"`
	Type        *string    `json:"type"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

// Validate checks the banner type when present.
func (r *UpdateBannerRequest) Validate() error {
	if r.Type != nil && !validBannerType(*r.Type) {
		return &ValidationError{Fields: []FieldError{
			{Path: "type", Message: "must be popup, slider or static"},
		}}
	}
	return nil
}

// StoreListQuery holds store list filters.
type StoreListQuery struct {
	ListQuery
	City    string `form:"city"`
	Country string `form:"country"`
}

// CreateStoreRequest creates a store location.
type CreateStoreRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Image        string `json:"image" binding:"required"`
	City         string `json:"city" binding:"required"`
	Country      string `json:"country" binding:"required"`
	Division     string `json:"division" binding:"required"`
	ZipCode      string `json:"zip_code" binding:"required"`
	MapLocation  string `json:"map_location" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	WorkingHours string `json:"working_hours" binding:"required"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateStoreRequest updates a store; nil fields are left unchanged.
type UpdateStoreRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	Division     *string `json:"division"`
	ZipCode      *string `json:"zip_code"`
	MapLocation  *string `json:"map_location"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	WorkingHours *string `json:"working_hours"`
	IsActive     *bool   `json:"is_active"`
}
