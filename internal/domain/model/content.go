package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner placement types.
const (
	BannerPopup  = "popup"
	BannerSlider = "slider"
	BannerStatic = "static"
)

// Banner represents a site banner.
type Banner struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Link        string             `bson:"link" json:"link"`
	Type        string             `bson:"type" json:"type"`
	StartDate   *time.Time         `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// BannerFields is the projection whitelist for banners.
var BannerFields = NewFieldSet(
	"title", "description", "image", "link", "type",
	"start_date", "end_date", "is_active", "created_at", "updated_at",
)

// Store represents a physical store location.
type Store struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Image        string             `bson:"image" json:"image"`
	City         string             `bson:"city" json:"city"`
	Country      string             `bson:"country" json:"country"`
	Division     string             `bson:"division" json:"division"`
	ZipCode      string             `bson:"zip_code" json:"zip_code"`
	MapLocation  string             `bson:"map_location" json:"map_location"`
	Phone        string             `bson:"phone" json:"phone"`
	Email        string             `bson:"email" json:"email"`
	WorkingHours string             `bson:"working_hours" json:"working_hours"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// StoreFields is the projection whitelist for stores.
var StoreFields = NewFieldSet(
	"name", "description", "image", "city", "country", "division",
	"zip_code", "map_location", "phone", "email", "working_hours",
	"is_active", "created_at", "updated_at",
)
