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

// StoreService provides physical store location operations.
type StoreService interface {
	List(ctx context.Context, q *dto.StoreListQuery) (*dto.ListResult[model.Store], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Store, error)
	Create(ctx context.Context, req *dto.CreateStoreRequest) (*model.Store, error)
	Update(ctx context.Context, id string, req *dto.UpdateStoreRequest) (*model.Store, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Store, error)
	Delete(ctx context.Context, id string) error
}

type storeService struct {
	resource *Resource[model.Store]
}

// NewStoreService creates a store location service.
func NewStoreService(repo repository.ResourceRepository[model.Store], store cache.Store, ttl time.Duration) StoreService {
	return &storeService{
		resource: NewResource(model.ResourceStores, "store", repo, store, ttl),
	}
}

func (s *storeService) List(ctx context.Context, q *dto.StoreListQuery) (*dto.ListResult[model.Store], error) {
	q.Normalize("name")
	if err := q.Validate(model.StoreFields); err != nil {
		return nil, err
	}

	filter := bson.M{}
	searchFilter(filter, "name", q.Search)
	boolFilter(filter, "is_active", q.IsActive)
	if q.City != "" {
		filter["city"] = bson.M{"$regex": q.City, "$options": "i"}
	}
	if q.Country != "" {
		filter["country"] = bson.M{"$regex": q.Country, "$options": "i"}
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["city"] = q.City
	cacheQuery["country"] = q.Country

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *storeService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Store, error) {
	if err := q.Validate(model.StoreFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *storeService) Create(ctx context.Context, req *dto.CreateStoreRequest) (*model.Store, error) {
	now := time.Now()
	store := &model.Store{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		City:         req.City,
		Country:      req.Country,
		Division:     req.Division,
		ZipCode:      req.ZipCode,
		MapLocation:  req.MapLocation,
		Phone:        req.Phone,
		Email:        req.Email,
		WorkingHours: req.WorkingHours,
		IsActive:     req.IsActive == nil || *req.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.resource.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, id string, req *dto.UpdateStoreRequest) (*model.Store, error) {
	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "description", req.Description)
	setField(set, "image", req.Image)
	setField(set, "city", req.City)
	setField(set, "country", req.Country)
	setField(set, "division", req.Division)
	setField(set, "zip_code", req.ZipCode)
	setField(set, "map_location", req.MapLocation)
	setField(set, "phone", req.Phone)
	setField(set, "email", req.Email)
	setField(set, "working_hours", req.WorkingHours)
	setField(set, "is_active", req.IsActive)

	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

func (s *storeService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Store, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *storeService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
