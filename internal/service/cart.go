package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

// CartService provides per-user shopping cart operations. Each user
// has at most one cart document, created on first write.
type CartService interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	AddItem(ctx context.Context, userID string, req *dto.AddCartItemRequest) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, req *dto.UpdateCartItemRequest) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error)
	Clear(ctx context.Context, userID string) (*model.Cart, error)
}

type cartService struct {
	repo  repository.ResourceRepository[model.Cart]
	store cache.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewCartService creates a cart service.
func NewCartService(repo repository.ResourceRepository[model.Cart], store cache.Store, ttl time.Duration) CartService {
	return &cartService{repo: repo, store: store, ttl: ttl, now: time.Now}
}

func (s *cartService) cacheKey(userID string) string {
	return cache.BuildKey(model.ResourceCarts+":"+userID, nil)
}

func (s *cartService) invalidate(ctx context.Context, userID string) {
	cache.Invalidate(ctx, s.store, model.ResourceCarts+":"+userID+cache.KeySeparator+"*")
}

func (s *cartService) load(ctx context.Context, userID string) (primitive.ObjectID, *model.Cart, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, nil, InvalidIDError("user")
	}
	cart, err := s.repo.FindOne(ctx, bson.M{"user": userOID})
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	return userOID, cart, nil
}

// Get returns the user's cart, or an empty unpersisted cart when none
// exists yet.
func (s *cartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	key := s.cacheKey(userID)
	if hit, ok := cache.GetJSON[model.Cart](ctx, s.store, key); ok {
		return hit, nil
	}

	userOID, cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &model.Cart{UserID: userOID, Items: []model.CartItem{}}, nil
	}
	cache.SetJSON(ctx, s.store, key, cart, s.ttl)
	return cart, nil
}

// AddItem adds a product line. Adding a product already in the cart
// increments its quantity.
func (s *cartService) AddItem(ctx context.Context, userID string, req *dto.AddCartItemRequest) (*model.Cart, error) {
	productOID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, InvalidIDError("product")
	}

	userOID, cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if cart == nil {
		cart = &model.Cart{
			ID:     primitive.NewObjectID(),
			UserID: userOID,
			Items: []model.CartItem{{
				ProductID: productOID,
				Quantity:  req.Quantity,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, cart); err != nil {
			return nil, err
		}
		s.invalidate(ctx, userID)
		return cart, nil
	}

	var update bson.M
	if cartContains(cart, productOID) {
		items := make([]model.CartItem, len(cart.Items))
		copy(items, cart.Items)
		for i := range items {
			if items[i].ProductID == productOID {
				items[i].Quantity += req.Quantity
			}
		}
		update = bson.M{"$set": bson.M{"items": items, "updated_at": now}}
	} else {
		update = bson.M{
			"$push": bson.M{"items": model.CartItem{
				ProductID: productOID,
				Quantity:  req.Quantity,
			}},
			"$set": bson.M{"updated_at": now},
		}
	}

	updated, err := s.repo.UpdateByID(ctx, cart.ID, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFoundError("cart")
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

// UpdateItem sets the quantity of an existing cart line.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID string, req *dto.UpdateCartItemRequest) (*model.Cart, error) {
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, InvalidIDError("product")
	}

	_, cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, NotFoundError("cart")
	}
	if !cartContains(cart, productOID) {
		return nil, NotFoundError("cart item")
	}

	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	for i := range items {
		if items[i].ProductID == productOID {
			items[i].Quantity = req.Quantity
		}
	}
	updated, err := s.repo.UpdateByID(ctx, cart.ID, bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": s.now(),
	}})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFoundError("cart")
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

// RemoveItem deletes a cart line by product id.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	productOID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, InvalidIDError("product")
	}

	_, cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, NotFoundError("cart")
	}
	if !cartContains(cart, productOID) {
		return nil, NotFoundError("cart item")
	}

	updated, err := s.repo.UpdateByID(ctx, cart.ID, bson.M{
		"$pull": bson.M{"items": bson.M{"product": productOID}},
		"$set":  bson.M{"updated_at": s.now()},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFoundError("cart")
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

// Clear removes every cart line.
func (s *cartService) Clear(ctx context.Context, userID string) (*model.Cart, error) {
	userOID, cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &model.Cart{UserID: userOID, Items: []model.CartItem{}}, nil
	}

	updated, err := s.repo.UpdateByID(ctx, cart.ID, bson.M{"$set": bson.M{
		"items":      []model.CartItem{},
		"updated_at": s.now(),
	}})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

func cartContains(cart *model.Cart, productOID primitive.ObjectID) bool {
	for _, line := range cart.Items {
		if line.ProductID == productOID {
			return true
		}
	}
	return false
}
