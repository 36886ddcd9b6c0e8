package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Store is a key-value cache with TTL and glob-pattern invalidation.
//
// Get returns (nil, nil) on a clean miss and an error on backend
// failure; callers treat both as a miss because the cache is never
// authoritative. Delete is idempotent — removing keys that do not
// exist is not an error.
type Store interface {
	// Get returns the payload for key, or nil if absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the payload under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes every key matching the glob pattern (e.g. "brands|*").
	Delete(ctx context.Context, pattern string) error
}

// GetJSON reads key and unmarshals the payload into a fresh T.
// Backend errors and corrupt payloads are logged and reported as a
// miss so the caller falls through to the document store.
func GetJSON[T any](ctx context.Context, s Store, key string) (*T, bool) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("Cache read failed, treating as miss")
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("Discarding undecodable cache entry")
		return nil, false
	}
	return &v, true
}

// SetJSON marshals v and stores it under key. Failures are logged and
// swallowed: a cache write must never fail the request that produced v.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("Failed to marshal cache payload")
		return
	}
	if err := s.Set(ctx, key, raw, ttl); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("Failed to populate cache")
	}
}

// Invalidate deletes the patterns and logs failures. A missed
// invalidation after a successful write is accepted staleness, bounded
// by TTL, but it must be visible in the logs.
func Invalidate(ctx context.Context, s Store, patterns ...string) {
	for _, p := range patterns {
		if err := s.Delete(ctx, p); err != nil {
			log.Warn().Str("pattern", p).Err(err).Msg("Cache invalidation failed")
		}
	}
}
