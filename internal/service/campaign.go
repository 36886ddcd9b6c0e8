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

// CampaignService provides promotional campaign operations.
type CampaignService interface {
	List(ctx context.Context, q *dto.CampaignListQuery) (*dto.ListResult[model.Campaign], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Campaign, error)
	Create(ctx context.Context, req *dto.CreateCampaignRequest) (*model.Campaign, error)
	Update(ctx context.Context, id string, req *dto.UpdateCampaignRequest) (*model.Campaign, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Campaign, error)
	Delete(ctx context.Context, id string) error
}

type campaignService struct {
	resource *Resource[model.Campaign]
}

// NewCampaignService creates a campaign service.
func NewCampaignService(repo repository.ResourceRepository[model.Campaign], store cache.Store, ttl time.Duration) CampaignService {
	return &campaignService{
		resource: NewResource(model.ResourceCampaigns, "campaign", repo, store, ttl),
	}
}

func (s *campaignService) List(ctx context.Context, q *dto.CampaignListQuery) (*dto.ListResult[model.Campaign], error) {
	q.Normalize("start_date")
	if err := q.Validate(model.CampaignFields); err != nil {
		return nil, err
	}

	filter := bson.M{}
	searchFilter(filter, "name", q.Search)
	boolFilter(filter, "is_active", q.IsActive)
	if q.DiscountType != "" {
		filter["discount_type"] = q.DiscountType
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["discount_type"] = q.DiscountType

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *campaignService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Campaign, error) {
	if err := q.Validate(model.CampaignFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *campaignService) Create(ctx context.Context, req *dto.CreateCampaignRequest) (*model.Campaign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	campaign := &model.Campaign{
		ID:                primitive.NewObjectID(),
		Name:              req.Name,
		Description:       req.Description,
		Image:             req.Image,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		AppliesTo:         req.AppliesTo,
		MinPurchaseAmount: req.MinPurchaseAmount,
		FreeShipping:      req.FreeShipping,
		UsageLimit:        req.UsageLimit,
		IsActive:          req.IsActive == nil || *req.IsActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.resource.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) Update(ctx context.Context, id string, req *dto.UpdateCampaignRequest) (*model.Campaign, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "description", req.Description)
	setField(set, "image", req.Image)
	setField(set, "start_date", req.StartDate)
	setField(set, "end_date", req.EndDate)
	setField(set, "discount_type", req.DiscountType)
	setField(set, "discount_value", req.DiscountValue)
	setField(set, "applies_to", req.AppliesTo)
	setField(set, "minimum_purchase_amount", req.MinPurchaseAmount)
	setField(set, "free_shipping", req.FreeShipping)
	setField(set, "usage_limit", req.UsageLimit)
	setField(set, "is_active", req.IsActive)

	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

func (s *campaignService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Campaign, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *campaignService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
