package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/domain/model"
	"github.com/guttosm/commerce-service/internal/repository"
)

// UserService provides admin-side account management. Credential
// fields never appear in list or get projections.
type UserService interface {
	List(ctx context.Context, q *dto.UserListQuery) (*dto.ListResult[model.User], error)
	GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.User, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*model.User, error)
	ChangeStatus(ctx context.Context, id string, isVerified bool) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	resource *Resource[model.User]
}

// defaultUserFields is the sorted default projection. Sorted so that
// equivalent requests build identical cache keys.
var defaultUserFields = func() []string {
	fields := make([]string, 0, len(model.UserFields))
	for f := range model.UserFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}()

// NewUserService creates a user management service.
func NewUserService(repo repository.ResourceRepository[model.User], store cache.Store, ttl time.Duration) UserService {
	return &userService{
		resource: NewResource(model.ResourceUsers, "user", repo, store, ttl),
	}
}

func (s *userService) List(ctx context.Context, q *dto.UserListQuery) (*dto.ListResult[model.User], error) {
	q.Normalize("created_at")
	if err := q.Validate(model.UserFields); err != nil {
		return nil, err
	}
	if err := q.Verified.Validate("is_verified"); err != nil {
		return nil, &dto.ValidationError{Fields: []dto.FieldError{*err}}
	}

	filter := bson.M{}
	searchFilter(filter, "email", q.Search)
	boolFilter(filter, "is_verified", q.Verified)
	if q.Role != "" {
		filter["role"] = q.Role
	}

	cacheQuery := baseCacheQuery(q.ListQuery)
	cacheQuery["role"] = q.Role
	cacheQuery["is_verified"] = string(q.Verified)

	fields := q.FieldList()
	if len(fields) == 0 {
		// Default projection: everything but the credential fields.
		fields = defaultUserFields
	}

	return s.resource.List(ctx, cacheQuery, repository.FindOptions{
		Filter: filter,
		Sort:   sortFor(q.ListQuery),
		Fields: fields,
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *userService) GetByID(ctx context.Context, id string, q *dto.GetQuery) (*model.User, error) {
	if err := q.Validate(model.UserFields); err != nil {
		return nil, err
	}
	fields := q.FieldList()
	if len(fields) == 0 {
		fields = defaultUserFields
	}
	return s.resource.GetByID(ctx, id, fields)
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	set := bson.M{}
	setField(set, "name", req.Name)
	setField(set, "phone", req.Phone)
	setField(set, "avatar", req.Avatar)
	setField(set, "role", req.Role)
	setField(set, "is_verified", req.IsVerified)

	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(set)})
}

func (s *userService) ChangeStatus(ctx context.Context, id string, isVerified bool) (*model.User, error) {
	return s.resource.Update(ctx, id, bson.M{"$set": touchUpdated(bson.M{"is_verified": isVerified})})
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.resource.Delete(ctx, id)
}
