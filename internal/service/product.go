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

// ProductService provides product catalog operations.
type ProductService interface {
	List(ctx context.Context, q *dto.ProductListQuery) (*dto.ListResult[model.Product], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Product, error)
	Create(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id string, req *dto.UpdateProductRequest) (*model.Product, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	resource *Resource[model.Product]
	repo     repository.ResourceRepository[model.Product]
}

// NewProductService creates a product service.
func NewProductService(repo repository.ResourceRepository[model.Product], store cache.Store, ttl time.Duration) ProductService {
	return &productService{
		resource: NewResource(model.ResourceProducts, "product", repo, store, ttl),
		repo:     repo,
	}
}

func (s *productService) List(ctx context.Context, q *dto.ProductListQuery) (*dto.ListResult[model.Product], error) {
	q.Normalize("created_at")
	if err := q.Validate(model.ProductFields); err != nil {
		return nil, err
	}
	if err := q.Featured.Validate("featured"); err != nil {
		return nil, &dto.ValidationError{Fields: []dto.FieldError{*err}}
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, &dto.ValidationError{Fields: []dto.FieldError{
			{Path: "min_price", Message: "must not exceed max_price"},
		}}
	}

	filter := bson.M{}
	searchFilter(filter, "name", q.Search)
	boolFilter(filter, "is_active", q.IsActive)
	boolFilter(filter, "featured", q.Featured)
	if err := idFilter(filter, "brand_id", q.BrandID, "brand"); err != nil {
		return nil, err
	}
	if err := idFilter(filter, "category_id", q.CategoryID, "category"); err != nil {
		return nil, err
	}
	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["featured"] = string(q.Featured)
	cacheQuery["brand_id"] = q.BrandID
	cacheQuery["category_id"] = q.CategoryID
	if q.MinPrice != nil {
		cacheQuery["min_price"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		cacheQuery["max_price"] = *q.MaxPrice
	}

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: q.FieldList(),
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *productService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Product, error) {
	if err := q.Validate(model.ProductFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *productService) Create(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Name)
	}

	taken, err := s.repo.Exists(ctx, bson.M{"$or": bson.A{
		bson.M{"slug": slug},
		bson.M{"sku": req.SKU},
	}})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ConflictError("product", "slug or sku")
	}

	var brandID, categoryID *primitive.ObjectID
	if req.BrandID != "" {
		oid, err := primitive.ObjectIDFromHex(req.BrandID)
		if err != nil {
			return nil, InvalidIDError("brand")
		}
		brandID = &oid
	}
	if req.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			return nil, InvalidIDError("category")
		}
		categoryID = &oid
	}
	if req.DiscountPrice > 0 && req.DiscountPrice >= req.Price {
		return nil, BadRequestError("discount price must be below price")
	}

	now := time.Now()
	product := &model.Product{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		Slug:          slug,
		SKU:           req.SKU,
		Description:   req.Description,
		Images:        req.Images,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		BrandID:       brandID,
		CategoryID:    categoryID,
		Featured:      req.Featured,
		IsActive:      req.IsActive == nil || *req.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.resource.Create(ctx, product); err != nil {
		return nil, s.resource.MapWriteError(err, "slug or sku")
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, req *dto.UpdateProductRequest) (*model.Product, error) {
	oid, err := s.resource.ParseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "sku", req.SKU)
	setField(set, "price", req.Price)
	setField(set, "description", req.Description)
	setField(set, "images", req.Images)
	setField(set, "discount_price", req.DiscountPrice)
	setField(set, "stock", req.Stock)
	setField(set, "featured", req.Featured)
	setField(set, "is_active", req.IsActive)

	switch {
	case req.Slug != nil:
		set["slug"] = *req.Slug
	case req.Name != nil:
		set["slug"] = GenerateSlug(*req.Name)
	}

	if req.BrandID != nil && *req.BrandID != "" {
		brandOID, err := primitive.ObjectIDFromHex(*req.BrandID)
		if err != nil {
			return nil, InvalidIDError("brand")
		}
		set["brand_id"] = brandOID
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryOID, err := primitive.ObjectIDFromHex(*req.CategoryID)
		if err != nil {
			return nil, InvalidIDError("category")
		}
		set["category_id"] = categoryOID
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
			return nil, ConflictError("product", "slug")
		}
	}

	product, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, s.resource.MapWriteError(err, "slug or sku")
	}
	return product, nil
}

func (s *productService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Product, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *productService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
