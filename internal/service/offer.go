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

// OfferService provides product-scoped offer operations.
type OfferService interface {
	List(ctx context.Context, q *dto.OfferListQuery) (*dto.ListResult[model.Offer], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Offer, error)
	Create(ctx context.Context, req *dto.CreateOfferRequest) (*model.Offer, error)
	Update(ctx context.Context, id string, req *dto.UpdateOfferRequest) (*model.Offer, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Offer, error)
	Delete(ctx context.Context, id string) error
}

type offerService struct {
	resource *Resource[model.Offer]
}

// NewOfferService creates an offer service.
func NewOfferService(repo repository.ResourceRepository[model.Offer], store cache.Store, ttl time.Duration) OfferService {
	return &offerService{
		resource: NewResource(model.ResourceOffers, "offer", repo, store, ttl),
	}
}

func (s *offerService) List(ctx context.Context, q *dto.OfferListQuery) (*dto.ListResult[model.Offer], error) {
	q.Normalize("start_date")
	if err := q.Validate(model.OfferFields); err != nil {
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

func (s *offerService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Offer, error) {
	if err := q.Validate(model.OfferFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *offerService) Create(ctx context.Context, req *dto.CreateOfferRequest) (*model.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	for _, p := range req.ApplicableProducts {
		if _, err := primitive.ObjectIDFromHex(p); err != nil {
			return nil, InvalidIDError("product")
		}
	}

	now := time.Now()
	offer := &model.Offer{
		ID:                 primitive.NewObjectID(),
		Name:               req.Name,
		Description:        req.Description,
		Image:              req.Image,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		ApplicableProducts: req.ApplicableProducts,
		FreeShipping:       req.FreeShipping,
		IsActive:           req.IsActive == nil || *req.IsActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.resource.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *offerService) Update(ctx context.Context, id string, req *dto.UpdateOfferRequest) (*model.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ApplicableProducts != nil {
		for _, p := range *req.ApplicableProducts {
			if _, err := primitive.ObjectIDFromHex(p); err != nil {
				return nil, InvalidIDError("product")
			}
		}
	}

	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "description", req.Description)
	setField(set, "image", req.Image)
	setField(set, "start_date", req.StartDate)
	setField(set, "end_date", req.EndDate)
	setField(set, "discount_type", req.DiscountType)
	setField(set, "discount_value", req.DiscountValue)
	setField(set, "applicable_products", req.ApplicableProducts)
	setField(set, "free_shipping", req.FreeShipping)
	setField(set, "is_active", req.IsActive)

	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

func (s *offerService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Offer, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *offerService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
