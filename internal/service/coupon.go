package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

// CouponService provides coupon operations, including redemption
// validation against a purchase amount.
type CouponService interface {
	List(ctx context.Context, q *dto.CouponListQuery) (*dto.ListResult[model.Coupon], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Coupon, error)
	Create(ctx context.Context, req *dto.CreateCouponRequest) (*model.Coupon, error)
	Update(ctx context.Context, id string, req *dto.UpdateCouponRequest) (*model.Coupon, error)
	ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Coupon, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, req *dto.ValidateCouponRequest) (*dto.CouponValidity, error)
}

type couponService struct {
	resource *Resource[model.Coupon]
	repo     repository.ResourceRepository[model.Coupon]
	now      func() time.Time
}

// NewCouponService creates a coupon service.
func NewCouponService(repo repository.ResourceRepository[model.Coupon], store cache.Store, ttl time.Duration) CouponService {
	return &couponService{
		resource: NewResource(model.ResourceCoupons, "coupon", repo, store, ttl),
		repo:     repo,
		now:      time.Now,
	}
}

func (s *couponService) List(ctx context.Context, q *dto.CouponListQuery) (*dto.ListResult[model.Coupon], error) {
	q.Normalize("created_at")
	if err := q.Validate(model.CouponFields); err != nil {
		return nil, err
	}

	filter := bson.M{}
	searchFilter(filter, "code", q.Search)
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

func (s *couponService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.Coupon, error) {
	if err := q.Validate(model.CouponFields); err != nil {
		return nil, err
	}
	return s.resource.GetByID(ctx, id, q.FieldList())
}

func (s *couponService) Create(ctx context.Context, req *dto.CreateCouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	taken, err := s.repo.Exists(ctx, bson.M{"code": code})
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ConflictError("coupon", "code")
	}

	now := s.now()
	coupon := &model.Coupon{
		ID:                primitive.NewObjectID(),
		Code:              code,
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinPurchaseAmount: req.MinPurchaseAmount,
		UsageLimit:        req.UsageLimit,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          req.IsActive == nil || *req.IsActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.resource.Create(ctx, coupon); err != nil {
		return nil, s.resource.MapWriteError(err, "code")
	}
	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id string, req *dto.UpdateCouponRequest) (*model.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	oid, err := s.resource.ParseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	setField(set, "description", req.Description)
	setField(set, "discount_type", req.DiscountType)
	setField(set, "discount_value", req.DiscountValue)
	setField(set, "minimum_purchase_amount", req.MinPurchaseAmount)
	setField(set, "usage_limit", req.UsageLimit)
	setField(set, "start_date", req.StartDate)
	setField(set, "end_date", req.EndDate)
	setField(set, "is_active", req.IsActive)

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		taken, err := s.repo.Exists(ctx, bson.M{
			"code": code,
			"_id":  bson.M{"$ne": oid},
		})
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ConflictError("coupon", "code")
		}
		set["code"] = code
	}

	coupon, err := s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
	if err != nil {
		return nil, s.resource.MapWriteError(err, "code")
	}
	return coupon, nil
}

func (s *couponService) ChangeStatus(ctx context.Context, id string, isActive bool) (*model.Coupon, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_active": isActive})})
}

func (s *couponService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}

// Validate checks a coupon code against a purchase amount. An
// unusable coupon yields Valid=false with a reason, not an error.
// Validation reads are not cached: used_count must be current.
func (s *couponService) Validate(ctx context.Context, req *dto.ValidateCouponRequest) (*dto.CouponValidity, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	coupon, err := s.repo.FindOne(ctx, bson.M{"code": code})
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return &dto.CouponValidity{Valid: false, Reason: "coupon not found"}, nil
	}

	now := s.now()
	switch {
	case !coupon.IsActive:
		return &dto.CouponValidity{Valid: false, Reason: "coupon is inactive"}, nil
	case now.Before(coupon.StartDate):
		return &dto.CouponValidity{Valid: false, Reason: "coupon is not yet active"}, nil
	case now.After(coupon.EndDate):
		return &dto.CouponValidity{Valid: false, Reason: "coupon has expired"}, nil
	case coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit:
		return &dto.CouponValidity{Valid: false, Reason: "coupon usage limit reached"}, nil
	case req.Amount < coupon.MinPurchaseAmount:
		return &dto.CouponValidity{Valid: false, Reason: "purchase amount below coupon minimum"}, nil
	}

	discount := coupon.DiscountValue
	if coupon.DiscountType == model.DiscountPercentage {
		discount = math.Round(req.Amount*coupon.DiscountValue) / 100
	}
	if discount > req.Amount {
		discount = req.Amount
	}

	return &dto.CouponValidity{
		Valid:          true,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discount,
	}, nil
}
