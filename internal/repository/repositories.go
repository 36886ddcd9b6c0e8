package repository

import "github.com/guttosm/commerce-service/internal/domain/model"

// Repositories bundles the typed resource repositories over one
// database connection.
type Repositories struct {
	Brands     ResourceRepository[model.Brand]
	Categories ResourceRepository[model.Category]
	Products   ResourceRepository[model.Product]
	Coupons    ResourceRepository[model.Coupon]
	Campaigns  ResourceRepository[model.Campaign]
	Offers     ResourceRepository[model.Offer]
	Banners    ResourceRepository[model.Banner]
	Stores     ResourceRepository[model.Store]
	Orders     ResourceRepository[model.Order]
	Wishlists  ResourceRepository[model.Wishlist]
	Carts      ResourceRepository[model.Cart]
	Users      ResourceRepository[model.User]
}

// NewRepositories creates the resource repositories for a database.
func NewRepositories(db *MongoDB) *Repositories {
	return &Repositories{
		Brands:     NewMongoResource[model.Brand](db.Brands),
		Categories: NewMongoResource[model.Category](db.Categories),
		Products:   NewMongoResource[model.Product](db.Products),
		Coupons:    NewMongoResource[model.Coupon](db.Coupons),
		Campaigns:  NewMongoResource[model.Campaign](db.Campaigns),
		Offers:     NewMongoResource[model.Offer](db.Offers),
		Banners:    NewMongoResource[model.Banner](db.Banners),
		Stores:     NewMongoResource[model.Store](db.Stores),
		Orders:     NewMongoResource[model.Order](db.Orders),
		Wishlists:  NewMongoResource[model.Wishlist](db.Wishlists),
		Carts:      NewMongoResource[model.Cart](db.Carts),
		Users:      NewMongoResource[model.User](db.Users),
	}
}
