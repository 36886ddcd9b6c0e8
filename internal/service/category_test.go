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
	"github.com/guttosm/commerce-service/internal/repository"
)

func newCategoryTestService(repo *fakeRepo[model.Category]) CategoryService {
	return NewCategoryService(repo, cache.NewMemoryStore(100), time.Minute)
}

func TestCategoryService_Tree(t *testing.T) {
	ctx := context.Background()
	electronics := model.Category{ID: primitive.NewObjectID(), Name: "Electronics", Order: 1}
	clothing := model.Category{ID: primitive.NewObjectID(), Name: "Clothing", Order: 2}
	phones := model.Category{ID: primitive.NewObjectID(), Name: "Phones", ParentID: &electronics.ID}
	laptops := model.Category{ID: primitive.NewObjectID(), Name: "Laptops", ParentID: &electronics.ID}

	repo := &fakeRepo[model.Category]{
		findFn: func(context.Context, repository.FindOptions) ([]model.Category, error) {
			return []model.Category{electronics, clothing, phones, laptops}, nil
		},
	}
	svc := newCategoryTestService(repo)

	tree, err := svc.Tree(ctx, &dto.CategoryTreeQuery{})
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Electronics", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Phones", tree[0].Children[0].Name)
	assert.Equal(t, "Clothing", tree[1].Name)
	assert.Empty(t, tree[1].Children)
	assert.NotNil(t, tree[1].Children)

	// Second call is served from cache.
	_, err = svc.Tree(ctx, &dto.CategoryTreeQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)
}

func TestCategoryService_List_IncludeParent(t *testing.T) {
	ctx := context.Background()
	electronics := model.Category{ID: primitive.NewObjectID(), Name: "Electronics", Slug: "electronics"}
	phones := model.Category{ID: primitive.NewObjectID(), Name: "Phones", Slug: "phones", ParentID: &electronics.ID}
	laptops := model.Category{ID: primitive.NewObjectID(), Name: "Laptops", Slug: "laptops", ParentID: &electronics.ID}

	repo := &fakeRepo[model.Category]{
		findFn: func(_ context.Context, opts repository.FindOptions) ([]model.Category, error) {
			if _, byID := opts.Filter["_id"]; byID {
				assert.Equal(t, []string{"name", "slug"}, opts.Fields)
				return []model.Category{{ID: electronics.ID, Name: electronics.Name, Slug: electronics.Slug}}, nil
			}
			return []model.Category{phones, laptops}, nil
		},
	}
	svc := newCategoryTestService(repo)

	result, err := svc.List(ctx, &dto.CategoryListQuery{
		ParentID:      electronics.ID.Hex(),
		IncludeParent: "true",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	for _, c := range result.Items {
		require.NotNil(t, c.Parent)
		assert.Equal(t, electronics.ID, c.Parent.ID)
		assert.Equal(t, "electronics", c.Parent.Slug)
	}

	// One page fetch plus one parent lookup.
	assert.Equal(t, 2, repo.findCalls)

	// A cached page still gets its parents joined in.
	result, err = svc.List(ctx, &dto.CategoryListQuery{
		ParentID:      electronics.ID.Hex(),
		IncludeParent: "true",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Items[0].Parent)
	assert.Equal(t, "Electronics", result.Items[0].Parent.Name)
	assert.Equal(t, 3, repo.findCalls)
}

func TestCategoryService_Create_RejectsDeepNesting(t *testing.T) {
	ctx := context.Background()
	grandparent := primitive.NewObjectID()
	parent := model.Category{ID: primitive.NewObjectID(), Name: "Phones", ParentID: &grandparent}

	repo := &fakeRepo[model.Category]{
		findByIDFn: func(_ context.Context, id primitive.ObjectID, _ []string) (*model.Category, error) {
			if id == parent.ID {
				return &parent, nil
			}
			return nil, nil
		},
	}
	svc := newCategoryTestService(repo)

	_, err := svc.Create(ctx, &dto.CreateCategoryRequest{
		Name:     "Android Phones",
		ParentID: parent.ID.Hex(),
	})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Create(ctx, &dto.CreateCategoryRequest{
		Name:     "Orphans",
		ParentID: primitive.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Create_GeneratesSlug(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Category]{}
	svc := newCategoryTestService(repo)

	category, err := svc.Create(ctx, &dto.CreateCategoryRequest{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-garden", category.Slug)
	assert.True(t, category.IsActive)
}

func TestCategoryService_Create_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Category]{
		existsFn: func(context.Context, bson.M) (bool, error) { return true, nil },
	}
	svc := newCategoryTestService(repo)

	_, err := svc.Create(ctx, &dto.CreateCategoryRequest{Name: "Electronics"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCategoryService_Update_RejectsSelfParent(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	svc := newCategoryTestService(&fakeRepo[model.Category]{})

	parent := id.Hex()
	_, err := svc.Update(ctx, id.Hex(), &dto.UpdateCategoryRequest{ParentID: &parent})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCategoryService_Delete_BlockedByChildren(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo[model.Category]{
		existsFn: func(_ context.Context, filter bson.M) (bool, error) {
			_, isChildQuery := filter["parent_id"]
			return isChildQuery, nil
		},
	}
	svc := newCategoryTestService(repo)

	err := svc.Delete(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCategoryService_Write_InvalidatesTree(t *testing.T) {
	ctx := context.Background()
	root := model.Category{ID: primitive.NewObjectID(), Name: "Electronics"}
	repo := &fakeRepo[model.Category]{
		findFn: func(context.Context, repository.FindOptions) ([]model.Category, error) {
			return []model.Category{root}, nil
		},
		deleteFn: func(context.Context, primitive.ObjectID) (bool, error) { return true, nil },
	}
	svc := newCategoryTestService(repo)

	_, err := svc.Tree(ctx, &dto.CategoryTreeQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.findCalls)

	require.NoError(t, svc.Delete(ctx, root.ID.Hex()))

	_, err = svc.Tree(ctx, &dto.CategoryTreeQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findCalls)
}
