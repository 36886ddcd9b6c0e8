package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/domain/dto"
	"github.com/guttosm/commerce-service/internal/repository"
)

// Resource wraps a repository with cache-aside reads and write-through
// invalidation for one resource. Reads consult the cache first and
// fall back to the database on a miss; every mutation persists first
// and then invalidates the resource's cache namespace. Cache failures
// never fail a request.
type Resource[T any] struct {
	name     string // cache namespace, e.g. "products"
	singular string // for error messages, e.g. "product"
	repo     repository.ResourceRepository[T]
	store    cache.Store
	ttl      time.Duration
}

// NewResource creates the cache-aside wrapper for one resource.
func NewResource[T any](name, singular string, repo repository.ResourceRepository[T], store cache.Store, ttl time.Duration) *Resource[T] {
	return &Resource[T]{
		name:     name,
		singular: singular,
		repo:     repo,
		store:    store,
		ttl:      ttl,
	}
}

// ParseID converts a path parameter into an ObjectID. It runs before
// any cache or database access so malformed ids are rejected cheaply.
func (r *Resource[T]) ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, InvalidIDError(r.singular)
	}
	return oid, nil
}

// List returns one page of the resource. query must contain every
// request parameter that affects the result, so that distinct requests
// map to distinct cache keys.
func (r *Resource[T]) List(ctx context.Context, query map[string]any, opts repository.FindOptions) (*dto.ListResult[T], error) {
	key := cache.BuildKey(r.name, query)
	if hit, ok := cache.GetJSON[dto.ListResult[T]](ctx, r.store, key); ok {
		return hit, nil
	}

	items, total, err := r.repo.FindPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &dto.ListResult[T]{
		Items:      items,
		Pagination: dto.NewPagination(total, opts.Page, opts.Limit),
	}
	cache.SetJSON(ctx, r.store, key, result, r.ttl)
	return result, nil
}

// GetByID returns one document, optionally projected to fields.
// Not-found is never cached.
func (r *Resource[T]) GetByID(ctx context.Context, id string, fields []string) (*T, error) {
	oid, err := r.ParseID(id)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(r.name+":"+id, map[string]any{"fields": strings.Join(fields, ",")})
	if hit, ok := cache.GetJSON[T](ctx, r.store, key); ok {
		return hit, nil
	}

	doc, err := r.repo.FindByID(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, NotFoundError(r.singular)
	}
	cache.SetJSON(ctx, r.store, key, doc, r.ttl)
	return doc, nil
}

// Create persists a new document and invalidates the list namespace.
func (r *Resource[T]) Create(ctx context.Context, doc *T) error {
	if err := r.repo.Insert(ctx, doc); err != nil {
		return err
	}
	cache.Invalidate(ctx, r.store, r.name+cache.KeySeparator+"*")
	return nil
}

// Update applies the update and invalidates both the document's keys
// and the list namespace. Returns NotFound when the id does not exist.
func (r *Resource[T]) Update(ctx context.Context, id string, update bson.M) (*T, error) {
	oid, err := r.ParseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := r.repo.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, NotFoundError(r.singular)
	}
	r.InvalidateID(ctx, id)
	return doc, nil
}

// Delete removes the document and invalidates its cache keys.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	oid, err := r.ParseID(id)
	if err != nil {
		return err
	}
	deleted, err := r.repo.DeleteByID(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return NotFoundError(r.singular)
	}
	r.InvalidateID(ctx, id)
	return nil
}

// InvalidateAll drops every cached entry for the resource, lists and
// documents alike.
func (r *Resource[T]) InvalidateAll(ctx context.Context) {
	cache.Invalidate(ctx, r.store,
		r.name+cache.KeySeparator+"*",
		r.name+":*",
	)
}

// InvalidateID drops the cached document and the list namespace.
func (r *Resource[T]) InvalidateID(ctx context.Context, id string) {
	cache.Invalidate(ctx, r.store,
		r.name+cache.KeySeparator+"*",
		r.name+":"+id+cache.KeySeparator+"*",
	)
}

// MapWriteError translates a duplicate key failure on a unique index
// into a conflict for the named field. Other errors pass through.
func (r *Resource[T]) MapWriteError(err error, field string) error {
	if repository.IsDuplicateKey(err) {
		return ConflictError(r.singular, field)
	}
	return err
}
