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

// BannerService provides banner content operations.
type BannerService interface {
	List(ctx context.Context, q *dto.BannerListQuery) (*dto.ListResult[model.Banner], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Banner, error)
	Create(ctx context.Context, req *dto.CreateBannerRequest) (*model.Banner, error)
	Update(ctx context.Context, id string, req *dto.UpdateBannerRequest) (*model.Banner, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
}

type bannerService struct {
	resource *Resource[model.Banner]
}

// NewBannerService creates a banner service.
func NewBannerService(repo repository.ResourceRepository[model.Banner], store cache.Store, ttl time.Duration) BannerService {
	return &bannerService{
		resource: NewResource(model.ResourceBanners, "banner", repo, store, ttl),
	}
}

func (s *bannerService) List(ctx context.Context, q *dto.BannerListQuery) (*dto.ListResult[model.Banner], error) {
	q.Normalize("created_at")
	if err := q.Validate(model.BannerFields); err != nil {
		return nil, err
	}

	filter := bson.M{}
	searchFilter(filter, "title", q.Search)
	boolFilter(filter, "is_active", q.IsActive)
	if q.Type != "" {
		filter["type"] = q.Type
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["type"] = q.Type

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *bannerService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Banner, error) {
	if err := q.Validate(model.BannerFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *bannerService) Create(ctx context.Context, req *dto.CreateBannerRequest) (*model.Banner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, BadRequestError("end date must not precede start date")
	}

	now := time.Now()
	banner := &model.Banner{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive == nil || *req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.resource.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, id string, req *dto.UpdateBannerRequest) (*model.Banner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, BadRequestError("end date must not precede start date")
	}

	set := bson.M{}
	setField(set, "title", req.Title)
	setField(set, "description", req.Description)
	setField(set, "image", req.Image)
	setField(set, "link", req.Link)
	setField(set, "type", req.Type)
	setField(set, "start_date", req.StartDate)
	setField(set, "end_date", req.EndDate)
	setField(set, "is_active", req.IsActive)

	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

func (s *bannerService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Banner, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
