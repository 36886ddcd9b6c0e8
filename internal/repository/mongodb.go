// Package repository provides the MongoDB data access layer.
package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns production-optimized MongoDB configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides the MongoDB client and the per-resource collections.
type MongoDB struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Brands     *mongo.Collection
	Categories *mongo.Collection
	Products   *mongo.Collection
	Coupons    *mongo.Collection
	Campaigns  *mongo.Collection
	Offers     *mongo.Collection
	Banners    *mongo.Collection
	Stores     *mongo.Collection
	Orders     *mongo.Collection
	Wishlists  *mongo.Collection
	Carts      *mongo.Collection
	Users      *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:     client,
		Database:   db,
		Brands:     db.Collection("brands"),
		Categories: db.Collection("categories"),
		Products:   db.Collection("products"),
		Coupons:    db.Collection("coupons"),
		Campaigns:  db.Collection("campaigns"),
		Offers:     db.Collection("offers"),
		Banners:    db.Collection("banners"),
		Stores:     db.Collection("stores"),
		Orders:     db.Collection("orders"),
		Wishlists:  db.Collection("wishlists"),
		Carts:      db.Collection("carts"),
		Users:      db.Collection("users"),
	}

	if err := mongoDB.createIndexes(ctx); err != nil {
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates the indexes the service layer relies on.
// Unique indexes back the check-then-write uniqueness validation: a
// concurrent duplicate that slips past the read check fails the insert
// with a duplicate key error, which the service maps to a conflict.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	create := func(coll *mongo.Collection, index mongo.IndexModel) {
		if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
			log.Warn().Err(err).
				Str("collection", coll.Name()).
				Interface("keys", index.Keys).
				Msg("Failed to create index")
		}
	}
	unique := func(coll *mongo.Collection, keys bson.D) {
		create(coll, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetUnique(true),
		})
	}
	plain := func(coll *mongo.Collection, keys bson.D) {
		create(coll, mongo.IndexModel{Keys: keys})
	}

	unique(m.Brands, bson.D{{Key: "slug", Value: 1}})
	unique(m.Brands, bson.D{{Key: "name", Value: 1}})
	unique(m.Categories, bson.D{{Key: "slug", Value: 1}})
	plain(m.Categories, bson.D{{Key: "parent_id", Value: 1}})
	unique(m.Products, bson.D{{Key: "slug", Value: 1}})
	unique(m.Products, bson.D{{Key: "sku", Value: 1}})
	plain(m.Products, bson.D{{Key: "brand_id", Value: 1}})
	plain(m.Products, bson.D{{Key: "category_id", Value: 1}})
	unique(m.Coupons, bson.D{{Key: "code", Value: 1}})
	unique(m.Orders, bson.D{{Key: "transaction_id", Value: 1}})
	plain(m.Orders, bson.D{{Key: "user_id", Value: 1}})
	plain(m.Orders, bson.D{{Key: "order_status", Value: 1}})
	unique(m.Wishlists, bson.D{{Key: "user", Value: 1}})
	unique(m.Carts, bson.D{{Key: "user", Value: 1}})
	unique(m.Users, bson.D{{Key: "email", Value: 1}})

	return nil
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

// IsDuplicateKey reports whether err is a MongoDB duplicate key error
// raised by a unique index.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
