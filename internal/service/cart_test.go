package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
)

// cartRepoWith keeps one cart document in memory and applies the
// update operators the service actually issues.
func cartRepoWith(cart *model.Cart) *fakeRepo[model.Cart] {
	repo := &fakeRepo[model.Cart]{}
	repo.findOneFn = func(_ context.Context, filter bson.M) (*model.Cart, error) {
		if cart != nil && filter["user"] == cart.UserID {
			return cart, nil
		}
		return nil, nil
	}
	repo.insertFn = func(_ context.Context, doc *model.Cart) error {
		cart = doc
		return nil
	}
	repo.updateFn = func(_ context.Context, id primitive.ObjectID, update bson.M) (*model.Cart, error) {
		if cart == nil || id != cart.ID {
			return nil, nil
		}
		if set, ok := update["$set"].(bson.M); ok {
			if items, ok := set["items"].([]model.CartItem); ok {
				cart.Items = items
			}
		}
		if push, ok := update["$push"].(bson.M); ok {
			cart.Items = append(cart.Items, push["items"].(model.CartItem))
		}
		if pull, ok := update["$pull"].(bson.M); ok {
			cond := pull["items"].(bson.M)
			productOID := cond["product"].(primitive.ObjectID)
			kept := cart.Items[:0]
			for _, line := range cart.Items {
				if line.ProductID != productOID {
					kept = append(kept, line)
				}
			}
			cart.Items = kept
		}
		return cart, nil
	}
	return repo
}

func newCartTestService(repo *fakeRepo[model.Cart]) CartService {
	return NewCartService(repo, cache.NewMemoryStore(100), time.Minute)
}

func TestCartService_Get_EmptyCart(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	svc := newCartTestService(cartRepoWith(nil))

	cart, err := svc.Get(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)

	_, err = svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	repo := cartRepoWith(nil)
	svc := newCartTestService(repo)

	cart, err := svc.AddItem(ctx, userID.Hex(), &dto.AddCartItemRequest{
		ProductID: productID.Hex(),
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1, repo.insertCalls)

	// Same product again merges into the existing line.
	cart, err = svc.AddItem(ctx, userID.Hex(), &dto.AddCartItemRequest{
		ProductID: productID.Hex(),
		Quantity:  3,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 1, repo.insertCalls)

	// A different product gets its own line.
	cart, err = svc.AddItem(ctx, userID.Hex(), &dto.AddCartItemRequest{
		ProductID: primitive.NewObjectID().Hex(),
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	repo := cartRepoWith(&model.Cart{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items:  []model.CartItem{{ProductID: productID, Quantity: 1}},
	})
	svc := newCartTestService(repo)

	cart, err := svc.UpdateItem(ctx, userID.Hex(), productID.Hex(), &dto.UpdateCartItemRequest{Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, userID.Hex(), primitive.NewObjectID().Hex(), &dto.UpdateCartItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	repo := cartRepoWith(&model.Cart{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items: []model.CartItem{
			{ProductID: productID, Quantity: 1},
			{ProductID: other, Quantity: 2},
		},
	})
	svc := newCartTestService(repo)

	cart, err := svc.RemoveItem(ctx, userID.Hex(), productID.Hex())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, other, cart.Items[0].ProductID)

	_, err = svc.RemoveItem(ctx, userID.Hex(), productID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RemoveItem(ctx, primitive.NewObjectID().Hex(), productID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	repo := cartRepoWith(&model.Cart{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items:  []model.CartItem{{ProductID: primitive.NewObjectID(), Quantity: 4}},
	})
	svc := newCartTestService(repo)

	cart, err := svc.Clear(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a user without a cart is a no-op.
	cart, err = svc.Clear(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_Get_Caches(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	repo := cartRepoWith(&model.Cart{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items:  []model.CartItem{{ProductID: primitive.NewObjectID(), Quantity: 1}},
	})
	findOnes := 0
	inner := repo.findOneFn
	repo.findOneFn = func(ctx context.Context, filter bson.M) (*model.Cart, error) {
		findOnes++
		return inner(ctx, filter)
	}
	svc := newCartTestService(repo)

	_, err := svc.Get(ctx, userID.Hex())
	require.NoError(t, err)
	_, err = svc.Get(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, findOnes)

	// A write drops the cached cart.
	_, err = svc.Clear(ctx, userID.Hex())
	require.NoError(t, err)
	_, err = svc.Get(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3, findOnes)
}
