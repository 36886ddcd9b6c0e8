// Package model defines the commerce domain documents stored in MongoDB.
package model

// FieldSet is the set of field names a resource allows in projections.
// Requests naming a field outside the set are rejected at validation.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from field names.
func NewFieldSet(names ...string) FieldSet {
	set := make(FieldSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether name is a known field.
func (s FieldSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Resource labels used in cache keys and route paths.
const (
	ResourceBrands     = "brands"
	ResourceCategories = "categories"
	ResourceProducts   = "products"
	ResourceOrders     = "orders"
	ResourceBanners    = "banners"
	ResourceCoupons    = "coupons"
	ResourceCampaigns  = "campaigns"
	ResourceOffers     = "offers"
	ResourceStores     = "stores"
	ResourceWishlists  = "wishlist"
	ResourceCarts      = "cart"
	ResourceUsers      = "users"
)
