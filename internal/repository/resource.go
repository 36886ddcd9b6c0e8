package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// FindOptions controls a paginated query.
type FindOptions struct {
	Filter bson.M
	// Sort is applied in order; an _id tiebreaker keeps pages stable
	// when the sort key is not unique.
	Sort bson.D
	// Fields narrows the projection. Empty means all fields. The _id
	// field is always returned.
	Fields []string
	Page   int
	// Limit of zero or less disables pagination and returns all
	// matching documents.
	Limit int
}

// ResourceRepository is the generic data access contract shared by all
// resource collections.
type ResourceRepository[T any] interface {
	Find(ctx context.Context, opts FindOptions) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindPage(ctx context.Context, opts FindOptions) ([]T, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID, fields []string) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Insert(ctx context.Context, doc *T) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	Exists(ctx context.Context, filter bson.M) (bool, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, results any) error
}

// MongoResource implements ResourceRepository for one collection.
type MongoResource[T any] struct {
	collection *mongo.Collection
}

// NewMongoResource creates a resource repository over a collection.
func NewMongoResource[T any](collection *mongo.Collection) *MongoResource[T] {
	return &MongoResource[T]{collection: collection}
}

// Collection exposes the backing collection for custom queries.
func (r *MongoResource[T]) Collection() *mongo.Collection {
	return r.collection
}

func projectionFor(fields []string) bson.M {
	if len(fields) == 0 {
		return nil
	}
	projection := bson.M{"_id": 1}
	for _, f := range fields {
		projection[f] = 1
	}
	return projection
}

// Find returns the documents for one page of a query.
func (r *MongoResource[T]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		sort := make(bson.D, 0, len(opts.Sort)+1)
		sort = append(sort, opts.Sort...)
		sort = append(sort, bson.E{Key: "_id", Value: 1})
		findOpts.SetSort(sort)
	}
	if projection := projectionFor(opts.Fields); projection != nil {
		findOpts.SetProjection(projection)
	}
	if opts.Limit > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		findOpts.SetSkip(int64((page - 1) * opts.Limit))
		findOpts.SetLimit(int64(opts.Limit))
	}

	filter := opts.Filter
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of documents matching the filter.
func (r *MongoResource[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

// FindPage runs Find and Count concurrently and returns both results.
func (r *MongoResource[T]) FindPage(ctx context.Context, opts FindOptions) ([]T, int64, error) {
	var (
		items []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = r.Find(gctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = r.Count(gctx, opts.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID returns the document with the given id, or nil when absent.
func (r *MongoResource[T]) FindByID(ctx context.Context, id primitive.ObjectID, fields []string) (*T, error) {
	findOpts := options.FindOne()
	if projection := projectionFor(fields); projection != nil {
		findOpts.SetProjection(projection)
	}
	var doc T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, findOpts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindOne returns the first document matching the filter, or nil when
// none matches.
func (r *MongoResource[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Insert stores a new document.
func (r *MongoResource[T]) Insert(ctx context.Context, doc *T) error {
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// UpdateByID applies the update and returns the updated document, or
// nil when the id does not exist.
func (r *MongoResource[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteByID removes the document and reports whether it existed.
func (r *MongoResource[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// Exists reports whether any document matches the filter.
func (r *MongoResource[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Aggregate runs a pipeline and decodes all results.
func (r *MongoResource[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results any) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}
