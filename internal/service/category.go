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

// CategoryService provides category catalog operations, including the
// nested tree view.
type CategoryService interface {
	List(ctx context.Context, q *dto.CategoryListQuery) (*dto.ListResult[model.Category], error)
	Tree(ctx context.Context, q *dto.CategoryTreeQuery) ([]model.CategoryWithChildren, error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Category, error)
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*model.Category, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	resource *Resource[model.Category]
	repo     repository.ResourceRepository[model.Category]
	store    cache.Store
	ttl      time.Duration
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.ResourceRepository[model.Category], store cache.Store, ttl time.Duration) CategoryService {
	return &categoryService{
		resource: NewResource(model.ResourceCategories, "category", repo, store, ttl),
		repo:     repo,
		store:    store,
		ttl:      ttl,
	}
}

func (s *categoryService) List(ctx context.Context, q *dto.CategoryListQuery) (*dto.ListResult[model.Category], error) {
	q.Normalize("order")
	if err := q.Validate(model.CategoryFields); err != nil {
		return nil, err
	}
	if err := q.Featured.Validate("featured"); err != nil {
		return nil, &dto.ValidationError{Fields: []dto.FieldError{*err}}
	}

	filter := bson.M{}
	searchFilter(filter, "name", q.Search)
	boolFilter(filter, "is_active", q.IsActive)
	boolFilter(filter, "featured", q.Featured)
	if q.ParentID != "" {
		parentOID, err := primitive.ObjectIDFromHex(q.ParentID)
		if err != nil {
			return nil, InvalidIDError("category")
		}
		filter["parent_id"] = parentOID
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["featured"] = string(q.Featured)
	cacheQuery["parent_id"] = q.ParentID

	result, err := s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}
	if include := q.IncludeParent.Value(); include != nil && *include {
		if err := s.attachParents(ctx, result.Items); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// attachParents joins the parent's name and slug into each child. The
// parent summaries are fetched per call and never cached with the list.
func (s *categoryService) attachParents(ctx context.Context, categories []model.Category) error {
	ids := make([]primitive.ObjectID, 0, len(categories))
	seen := make(map[primitive.ObjectID]bool)
	for _, c := range categories {
		if c.ParentID != nil && !seen[*c.ParentID] {
			seen[*c.ParentID] = true
			ids = append(ids, *c.ParentID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	parents, err := s.repo.Find(ctx, repository.FindOptions{
		Filter: bson.M{"_id": bson.M{"$in": ids}},
		Fields: []string{"name", "slug"},
	})
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]model.Category, len(parents))
	for _, p := range parents {
		byID[p.ID] = p
	}
	for i := range categories {
		if categories[i].ParentID == nil {
			continue
		}
		if p, ok := byID[*categories[i].ParentID]; ok {
			categories[i].Parent = &model.ParentRef{ID: p.ID, Name: p.Name, Slug: p.Slug}
		}
	}
	return nil
}

// Tree returns the top-level categories with their direct children.
// Only one level of nesting is materialized.
func (s *categoryService) Tree(ctx context.Context, q *dto.CategoryTreeQuery) ([]model.CategoryWithChildren, error) {
	if err := q.IsActive.Validate("is_active"); err != nil {
		return nil, &dto.ValidationError{Fields: []dto.FieldError{*err}}
	}

	key := cache.BuildKey(model.ResourceCategories+":tree", map[string]any{
		"is_active": string(q.IsActive),
	})
	if hit, ok := cache.GetJSON[[]model.CategoryWithChildren](ctx, s.store, key); ok {
		return *hit, nil
	}

	filter := bson.M{}
	boolFilter(filter, "is_active", q.IsActive)
	all, err := s.repo.Find(ctx, repository.FindOptions{
		Filter: filter,
		Sort:   bson.D{{Key: "order", Value: 1}},
	})
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[primitive.ObjectID][]model.Category)
	roots := make([]model.Category, 0, len(all))
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
	}

	tree := make([]model.CategoryWithChildren, 0, len(roots))
	for _, root := range roots {
		children := childrenOf[root.ID]
		if children == nil {
			children = []model.Category{}
		}
		tree = append(tree, model.CategoryWithChildren{
			Category: root,
			Children: children,
		})
	}

	cache.SetJSON(ctx, s.store, key, tree, s.ttl)
	return tree, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Category, error) {
	if err := q.Validate(model.CategoryFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*model.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Name)
	}

	taken, err := s.repo.Exists(ctx, bson.M{"slug": slug})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ConflictError("category", "slug")
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		oid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return nil, InvalidIDError("category")
		}
		parent, err := s.repo.FindByID(ctx, oid, nil)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, NotFoundError("parent category")
		}
		if parent.ParentID != nil {
			return nil, BadRequestError("categories nest one level deep")
		}
		parentID = &oid
	}

	now := time.Now()
	category := &model.Category{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    parentID,
		Featured:    req.Featured,
		Order:       req.Order,
		IsActive:    req.IsActive == nil || *req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.resource.Create(ctx, category); err != nil {
		return nil, s.resource.MapWriteError(err, "slug")
	}
	s.invalidateTree(ctx)
	return category, nil
}

// invalidateTree drops the cached tree view. The generic resource
// invalidation covers lists and documents but not this derived key.
func (s *categoryService) invalidateTree(ctx context.Context) {
	cache.Invalidate(ctx, s.store, model.ResourceCategories+":tree"+cache.KeySeparator+"*")
}

func (s *categoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	oid, err := s.resource.ParseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	unset := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "description", req.Description)
	setField(set, "image", req.Image)
	setField(set, "featured", req.Featured)
	setField(set, "order", req.Order)
	setField(set, "is_active", req.IsActive)

	switch {
	case req.Slug != nil:
		set["slug"] = *req.Slug
	case req.Name != nil:
		set["slug"] = GenerateSlug(*req.Name)
	}

	if req.ParentID != nil {
		if *req.ParentID == "" {
			unset["parent_id"] = ""
		} else {
			parentOID, err := primitive.ObjectIDFromHex(*req.ParentID)
			if err != nil {
				return nil, InvalidIDError("category")
			}
			if parentOID == oid {
				return nil, BadRequestError("a category cannot be its own parent")
			}
			set["parent_id"] = parentOID
		}
	}

	if slug, ok := set["slug"].(string); ok {
		taken, err := s.repo.Exists(ctx, bson.M{
			"slug": slug,
			"_id":  bson.M{"$ne": oid},
		})
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ConflictError("category", "slug")
		}
	}

	update := bson.M{"$set": touchUpdated(set)}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	category, err := s.resource.Update(ctx, id, update)
	if err != nil {
		return nil, s.resource.MapWriteError(err, "slug")
	}
	s.invalidateTree(ctx)
	return category, nil
}

func (s *categoryService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Category, error) {
	category, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
	if err != nil {
		return nil, err
	}
	s.invalidateTree(ctx)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	oid, err := s.resource.ParseID(id)
	if err != nil {
		return err
	}
	hasChildren, err := s.repo.Exists(ctx, bson.M{"parent_id": oid})
	if err != nil {
		return err
	}
	if hasChildren {
		return InvalidStateError("category has child categories")
	}
	if err := s.resource.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTree(ctx)
	return nil
}
