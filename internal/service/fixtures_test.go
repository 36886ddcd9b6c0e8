package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guttosm/commerce-service/internal/repository"
)

// fakeRepo implements repository.ResourceRepository with per-method
// hooks. Unset hooks return zero values.
type fakeRepo[T any] struct {
	findFn      func(ctx context.Context, opts repository.FindOptions) ([]T, error)
	countFn     func(ctx context.Context, filter bson.M) (int64, error)
	findByIDFn  func(ctx context.Context, id primitive.ObjectID, fields []string) (*T, error)
	findOneFn   func(ctx context.Context, filter bson.M) (*T, error)
	insertFn    func(ctx context.Context, doc *T) error
	updateFn    func(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error)
	deleteFn    func(ctx context.Context, id primitive.ObjectID) (bool, error)
	existsFn    func(ctx context.Context, filter bson.M) (bool, error)
	aggregateFn func(ctx context.Context, pipeline mongo.Pipeline, results any) error

	findCalls   int
	insertCalls int
	updateCalls int
}

func (f *fakeRepo[T]) Find(ctx context.Context, opts repository.FindOptions) ([]T, error) {
	f.findCalls++
	if f.findFn == nil {
		return nil, nil
	}
	return f.findFn(ctx, opts)
}

func (f *fakeRepo[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(ctx, filter)
}

func (f *fakeRepo[T]) FindPage(ctx context.Context, opts repository.FindOptions) ([]T, int64, error) {
	items, err := f.Find(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := f.Count(ctx, opts.Filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (f *fakeRepo[T]) FindByID(ctx context.Context, id primitive.ObjectID, fields []string) (*T, error) {
	f.findCalls++
	if f.findByIDFn == nil {
		return nil, nil
	}
	return f.findByIDFn(ctx, id, fields)
}

func (f *fakeRepo[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	if f.findOneFn == nil {
		return nil, nil
	}
	return f.findOneFn(ctx, filter)
}

func (f *fakeRepo[T]) Insert(ctx context.Context, doc *T) error {
	f.insertCalls++
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(ctx, doc)
}

func (f *fakeRepo[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error) {
	f.updateCalls++
	if f.updateFn == nil {
		return nil, nil
	}
	return f.updateFn(ctx, id, update)
}

func (f *fakeRepo[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if f.deleteFn == nil {
		return false, nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	if f.existsFn == nil {
		return false, nil
	}
	return f.existsFn(ctx, filter)
}

func (f *fakeRepo[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results any) error {
	if f.aggregateFn == nil {
		return nil
	}
	return f.aggregateFn(ctx, pipeline, results)
}
