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
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

func newTestResource(repo *fakeRepo[model.Brand]) *Resource[model.Brand] {
	return NewResource("brands", "brand", repo, cache.NewMemoryStore(100), time.Minute)
}

func brandFixture(name string) model.Brand {
	return model.Brand{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Slug:     GenerateSlug(name),
		IsActive: true,
	}
}

func TestResource_List_CachesResult(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Brand]{
		findFn: func(context.Context, repository.FindOptions) ([]model.Brand, error) {
			return []model.Brand{brandFixture("Acme")}, nil
		},
		countFn: func(context.Context, bson.M) (int64, error) { return 1, nil },
	}
	resource := newTestResource(repo)

	query := map[string]any{"page": 1, "limit": 10}
	opts := repository.FindOptions{Page: 1, Limit: 10}

	first, err := resource.List(ctx, query, opts)
	require.NoError(t, err)
	assert.Len(t, first.Items, 1)
	assert.Equal(t, int64(1), first.Pagination.Items)
	assert.Equal(t, 1, repo.findCalls)

	second, err := resource.List(ctx, query, opts)
	require.NoError(t, err)
	assert.Equal(t, first.Items[0].Name, second.Items[0].Name)
	assert.Equal(t, 1, repo.findCalls, "second read must come from cache")
}

func TestResource_List_DistinctQueriesDistinctKeys(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Brand]{}
	resource := newTestResource(repo)

	_, err := resource.List(ctx, map[string]any{"page": 1}, repository.FindOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	_, err = resource.List(ctx, map[string]any{"page": 2}, repository.FindOptions{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.findCalls)
}

func TestResource_GetByID(t *testing.T) {
	ctx := context.Background()
	brand := brandFixture("Acme")
	repo := &fakeRepo[model.Brand]{
		findByIDFn: func(_ context.Context, id primitive.ObjectID, _ []string) (*model.Brand, error) {
			if id == brand.ID {
				return &brand, nil
			}
			return nil, nil
		},
	}
	resource := newTestResource(repo)

	t.Run("caches the document", func(t *testing.T) {
		got, err := resource.GetByID(ctx, brand.ID.Hex(), nil)
		require.NoError(t, err)
		assert.Equal(t, brand.Name, got.Name)

		calls := repo.findCalls
		got, err = resource.GetByID(ctx, brand.ID.Hex(), nil)
		require.NoError(t, err)
		assert.Equal(t, brand.Name, got.Name)
		assert.Equal(t, calls, repo.findCalls)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		missing := primitive.NewObjectID().Hex()

		_, err := resource.GetByID(ctx, missing, nil)
		assert.ErrorIs(t, err, ErrNotFound)

		calls := repo.findCalls
		_, err = resource.GetByID(ctx, missing, nil)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, calls+1, repo.findCalls, "misses must reach the database every time")
	})

	t.Run("malformed id rejected before any access", func(t *testing.T) {
		calls := repo.findCalls
		_, err := resource.GetByID(ctx, "not-an-id", nil)
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.Equal(t, calls, repo.findCalls)
	})

	t.Run("projections cache separately", func(t *testing.T) {
		fresh := &fakeRepo[model.Brand]{
			findByIDFn: func(context.Context, primitive.ObjectID, []string) (*model.Brand, error) {
				return &brand, nil
			},
		}
		res := newTestResource(fresh)

		_, err := res.GetByID(ctx, brand.ID.Hex(), nil)
		require.NoError(t, err)
		_, err = res.GetByID(ctx, brand.ID.Hex(), []string{"name"})
		require.NoError(t, err)
		assert.Equal(t, 2, fresh.findCalls)
	})
}

func TestResource_Create_InvalidatesLists(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Brand]{
		findFn: func(context.Context, repository.FindOptions) ([]model.Brand, error) {
			return []model.Brand{brandFixture("Acme")}, nil
		},
		countFn: func(context.Context, bson.M) (int64, error) { return 1, nil },
	}
	resource := newTestResource(repo)

	query := map[string]any{"page": 1}
	opts := repository.FindOptions{Page: 1, Limit: 10}

	_, err := resource.List(ctx, query, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)

	doc := brandFixture("Globex")
	require.NoError(t, resource.Create(ctx, &doc))

	_, err = resource.List(ctx, query, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findCalls, "create must drop cached lists")
}

func TestResource_Update_InvalidatesDocumentAndLists(t *testing.T) {
	ctx := context.Background()
	brand := brandFixture("Acme")
	repo := &fakeRepo[model.Brand]{
		findByIDFn: func(context.Context, primitive.ObjectID, []string) (*model.Brand, error) {
			return &brand, nil
		},
		updateFn: func(context.Context, primitive.ObjectID, bson.M) (*model.Brand, error) {
			updated := brand
			updated.Name = "Acme Corp"
			return &updated, nil
		},
	}
	resource := newTestResource(repo)

	_, err := resource.GetByID(ctx, brand.ID.Hex(), nil)
	require.NoError(t, err)
	calls := repo.findCalls

	_, err = resource.Update(ctx, brand.ID.Hex(), bson.M{"$set": bson.M{"name": "Acme Corp"}})
	require.NoError(t, err)

	_, err = resource.GetByID(ctx, brand.ID.Hex(), nil)
	require.NoError(t, err)
	assert.Equal(t, calls+1, repo.findCalls, "update must drop the cached document")
}

func TestResource_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Brand]{}
	resource := newTestResource(repo)

	_, err := resource.Update(ctx, primitive.NewObjectID().Hex(), bson.M{"$set": bson.M{"name": "x"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResource_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Brand]{
		deleteFn: func(context.Context, primitive.ObjectID) (bool, error) { return true, nil },
	}
	resource := newTestResource(repo)

	assert.NoError(t, resource.Delete(ctx, primitive.NewObjectID().Hex()))

	repo.deleteFn = func(context.Context, primitive.ObjectID) (bool, error) { return false, nil }
	assert.ErrorIs(t, resource.Delete(ctx, primitive.NewObjectID().Hex()), ErrNotFound)
}
