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

// BrandService provides brand catalog operations.
type BrandService interface {
	List(ctx context.Context, q *dto.BrandListQuery) (*dto.ListResult[model.Brand], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Brand, error)
	Create(ctx context.Context, req *dto.CreateBrandRequest) (*model.Brand, error)
	Update(ctx context.Context, id string, req *dto.UpdateBrandRequest) (*model.Brand, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Brand, error)
	Delete(ctx context.Context, id string) error
}

type brandService struct {
	resource *Resource[model.Brand]
	repo     repository.ResourceRepository[model.Brand]
}

// NewBrandService creates a brand service backed by the repository and
// cache store.
func NewBrandService(repo repository.ResourceRepository[model.Brand], store cache.Store, ttl time.Duration) BrandService {
	return &brandService{
		resource: NewResource(model.ResourceBrands, "brand", repo, store, ttl),
		repo:     repo,
	}
}

func (s *brandService) List(ctx context.Context, q *dto.BrandListQuery) (*dto.ListResult[model.Brand], error) {
	q.Normalize("order")
	if err := q.Validate(model.BrandFields); err != nil {
		return nil, err
	}
	if err := q.Featured.Validate("featured"); err != nil {
		return nil, &dto.ValidationError{Fields: []dto.FieldError{*err}}
	}

	filter := bson.M{}
	searchFilter(filter, "name", q.Search)
	boolFilter(filter, "is_active", q.IsActive)
	boolFilter(filter, "featured", q.Featured)

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["featured"] = string(q.Featured)

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *brandService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Brand, error) {
	if err := q.Validate(model.BrandFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *brandService) Create(ctx context.Context, req *dto.CreateBrandRequest) (*model.Brand, error) {
	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Name)
	}

	taken, err := s.repo.Exists(ctx, bson.M{"$or": bson.A{
		bson.M{"slug": slug},
		bson.M{"name": req.Name},
	}})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ConflictError("brand", "name or slug")
	}

	now := time.Now()
	brand := &model.Brand{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Logo:        req.Logo,
		Website:     req.Website,
		Featured:    req.Featured,
		Order:       req.Order,
		IsActive:    req.IsActive == nil || *req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.resource.Create(ctx, brand); err != nil {
		return nil, s.resource.MapWriteError(err, "name or slug")
	}
	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id string, req *dto.UpdateBrandRequest) (*model.Brand, error) {
	oid, err := s.resource.ParseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "description", req.Description)
	setField(set, "logo", req.Logo)
	setField(set, "website", req.Website)
	setField(set, "featured", req.Featured)
	setField(set, "order", req.Order)
	setField(set, "is_active", req.IsActive)

	// A rename re-derives the slug unless the caller sets one.
	switch {
	case req.Slug != nil:
		set["slug"] = *req.Slug
	case req.Name != nil:
		set["slug"] = GenerateSlug(*req.Name)
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
			return nil, ConflictError("brand", "slug")
		}
	}

	brand, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, s.resource.MapWriteError(err, "name or slug")
	}
	return brand, nil
}

func (s *brandService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Brand, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *brandService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
