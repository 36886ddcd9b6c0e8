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

// WishlistService provides per-user wishlist operations. Each user has
// at most one wishlist document, created on first write.
type WishlistService interface {
	Get(ctx context.Context, userID string) (*model.Wishlist, error)
	AddItem(ctx context.Context, userID string, req *dto.AddWishlistItemRequest) (*model.Wishlist, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*model.Wishlist, error)
	Clear(ctx context.Context, userID string) (*model.Wishlist, error)
}

type wishlistService struct {
	repo  repository.ResourceRepository[model.Wishlist]
	store cache.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(repo repository.ResourceRepository[model.Wishlist], store cache.Store, ttl time.Duration) WishlistService {
	return &wishlistService{repo: repo, store: store, ttl: ttl, now: time.Now}
}

func (s *wishlistService) cacheKey(userID string) string {
	return cache.BuildKey(model.ResourceWishlists+":"+userID, nil)
}

func (s *wishlistService) invalidate(ctx context.Context, userID string) {
	cache.Invalidate(ctx, s.store, model.ResourceWishlists+":"+userID+cache.KeySeparator+"*")
}

// Get returns the user's wishlist. A user without one gets an empty,
// unpersisted wishlist; the document is only created on first write.
func (s *wishlistService) Get(ctx context.Context, userID string) (*model.Wishlist, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}

	key := s.cacheKey(userID)
	if hit, ok := cache.GetJSON[model.Wishlist](ctx, s.store, key); ok {
		return hit, nil
	}

	wishlist, err := s.repo.FindOne(ctx, bson.M{"user": userOID})
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return &model.Wishlist{UserID: userOID, Items: []model.WishlistItem{}}, nil
	}
	cache.SetJSON(ctx, s.store, key, wishlist, s.ttl)
	return wishlist, nil
}

// AddItem saves a product to the wishlist. Adding a product that is
// already saved returns the wishlist unchanged.
func (s *wishlistService) AddItem(ctx context.Context, userID string, req *dto.AddWishlistItemRequest) (*model.Wishlist, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}
	productOID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, InvalidIDError("product")
	}

	wishlist, err := s.repo.FindOne(ctx, bson.M{"user": userOID})
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := model.WishlistItem{
		ID:        primitive.NewObjectID(),
		ProductID: productOID,
		AddedAt:   now,
	}

	if wishlist == nil {
		wishlist = &model.Wishlist{
			ID:        primitive.NewObjectID(),
			UserID:    userOID,
			Items:     []model.WishlistItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, wishlist); err != nil {
			return nil, err
		}
		s.invalidate(ctx, userID)
		return wishlist, nil
	}

	for _, existing := range wishlist.Items {
		if existing.ProductID == productOID {
			return wishlist, nil
		}
	}

	updated, err := s.repo.UpdateByID(ctx, wishlist.ID, bson.M{
		"$push": bson.M{"items": item},
		"$set":  bson.M{"updated_at": now},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFoundError("wishlist")
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

// RemoveItem deletes one saved item by its item id.
func (s *wishlistService) RemoveItem(ctx context.Context, userID, itemID string) (*model.Wishlist, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}
	itemOID, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, InvalidIDError("wishlist item")
	}

	wishlist, err := s.repo.FindOne(ctx, bson.M{"user": userOID})
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, NotFoundError("wishlist")
	}

	found := false
	for _, existing := range wishlist.Items {
		if existing.ID == itemOID {
			found = true
			break
		}
	}
	if !found {
		return nil, NotFoundError("wishlist item")
	}

	updated, err := s.repo.UpdateByID(ctx, wishlist.ID, bson.M{
		"$pull": bson.M{"items": bson.M{"_id": itemOID}},
		"$set":  bson.M{"updated_at": s.now()},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, NotFoundError("wishlist")
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

// Clear removes every saved item.
func (s *wishlistService) Clear(ctx context.Context, userID string) (*model.Wishlist, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, InvalidIDError("user")
	}

	wishlist, err := s.repo.FindOne(ctx, bson.M{"user": userOID})
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return &model.Wishlist{UserID: userOID, Items: []model.WishlistItem{}}, nil
	}

	updated, err := s.repo.UpdateByID(ctx, wishlist.ID, bson.M{"$set": bson.M{
		"items":      []model.WishlistItem{},
		"updated_at": s.now(),
	}})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return updated, nil
}
