package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/commerce-service/config"
	"github.com/guttosm/commerce-service/internal/metrics"
)

// RedisStore implements Store against a Redis server.
//
// Reads fail soft: any backend error is reported as a miss so the
// caller proceeds to the document store. Wildcard deletes walk the full
// keyspace with SCAN rather than a single bounded KEYS call.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. The connection is
// established lazily by go-redis; use Ping to verify it at startup.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client, prefix: cfg.KeyPrefix}
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client's connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation("get", "miss")
		return nil, nil
	}
	if err != nil {
		metrics.RecordCacheOperation("get", "error")
		return nil, err
	}
	metrics.RecordCacheOperation("get", "hit")
	return raw, nil
}

// Set implements Store. A zero ttl stores the key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		metrics.RecordCacheOperation("set", "error")
		return err
	}
	metrics.RecordCacheOperation("set", "ok")
	return nil
}

// Delete implements Store. It scans the whole keyspace for the pattern
// so invalidations are not capped by a single SCAN page.
func (s *RedisStore) Delete(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+pattern, 512).Result()
		if err != nil {
			metrics.RecordCacheOperation("delete", "error")
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				metrics.RecordCacheOperation("delete", "error")
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	metrics.RecordCacheOperation("delete", "ok")
	return nil
}
