//go:build integration
// +build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func newTestDB(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func seedBrands(t *testing.T, repo ResourceRepository[model.Brand], n int) []model.Brand {
	t.Helper()
	ctx := context.Background()
	brands := make([]model.Brand, 0, n)
	for i := 0; i < n; i++ {
		brand := model.Brand{
			ID:       primitive.NewObjectID(),
			Name:     fmt.Sprintf("Brand %02d", i),
			Slug:     fmt.Sprintf("brand-%02d", i),
			Order:    i,
			IsActive: i%2 == 0,
		}
		require.NoError(t, repo.Insert(ctx, &brand))
		brands = append(brands, brand)
	}
	return brands
}

func TestMongoResource_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMongoResource[model.Brand](db.Brands)

	brand := model.Brand{
		ID:       primitive.NewObjectID(),
		Name:     "Acme",
		Slug:     "acme",
		Website:  "https://acme.example.com",
		IsActive: true,
	}
	require.NoError(t, repo.Insert(ctx, &brand))

	found, err := repo.FindByID(ctx, brand.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Acme", found.Name)

	missing, err := repo.FindByID(ctx, primitive.NewObjectID(), nil)
	require.NoError(t, err)
	assert.Nil(t, missing)

	updated, err := repo.UpdateByID(ctx, brand.ID, bson.M{"$set": bson.M{"name": "Acme Corp"}})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Acme Corp", updated.Name)

	exists, err := repo.Exists(ctx, bson.M{"slug": "acme"})
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := repo.DeleteByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMongoResource_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMongoResource[model.Brand](db.Brands)

	first := model.Brand{ID: primitive.NewObjectID(), Name: "Acme", Slug: "acme"}
	require.NoError(t, repo.Insert(ctx, &first))

	dup := model.Brand{ID: primitive.NewObjectID(), Name: "Other", Slug: "acme"}
	err := repo.Insert(ctx, &dup)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestMongoResource_Projection(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMongoResource[model.Brand](db.Brands)

	brand := model.Brand{
		ID:          primitive.NewObjectID(),
		Name:        "Acme",
		Slug:        "acme",
		Description: "tools and anvils",
		IsActive:    true,
	}
	require.NoError(t, repo.Insert(ctx, &brand))

	found, err := repo.FindByID(ctx, brand.ID, []string{"name"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, brand.ID, found.ID)
	assert.Equal(t, "Acme", found.Name)
	assert.Empty(t, found.Slug)
	assert.Empty(t, found.Description)
}

func TestMongoResource_FindPage(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMongoResource[model.Brand](db.Brands)
	seedBrands(t, repo, 7)

	items, total, err := repo.FindPage(ctx, FindOptions{
		Sort:  bson.D{{Key: "order", Value: 1}},
		Page:  2,
		Limit: 3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	require.Len(t, items, 3)
	assert.Equal(t, "Brand 03", items[0].Name)

	// The last page is short.
	items, total, err = repo.FindPage(ctx, FindOptions{
		Sort:  bson.D{{Key: "order", Value: 1}},
		Page:  3,
		Limit: 3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	assert.Len(t, items, 1)

	// Filters constrain both items and the total.
	items, total, err = repo.FindPage(ctx, FindOptions{
		Filter: bson.M{"is_active": true},
		Sort:   bson.D{{Key: "order", Value: 1}},
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, items, 4)
}

func TestMongoResource_Find_Unpaginated(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMongoResource[model.Brand](db.Brands)
	seedBrands(t, repo, 5)

	items, err := repo.Find(ctx, FindOptions{Sort: bson.D{{Key: "order", Value: 1}}})
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestMongoResource_Aggregate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMongoResource[model.Brand](db.Brands)
	seedBrands(t, repo, 6)

	var results []struct {
		ID    bool  `bson:"_id"`
		Count int64 `bson:"count"`
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$is_active",
			"count": bson.M{"$sum": 1},
		}}},
	}
	require.NoError(t, repo.Aggregate(ctx, pipeline, &results))
	require.Len(t, results, 2)

	counts := map[bool]int64{}
	for _, r := range results {
		counts[r.ID] = r.Count
	}
	assert.EqualValues(t, 3, counts[true])
	assert.EqualValues(t, 3, counts[false])
}
