package cache

import (
	"context"
	"time"

	"github.com/guttosm/commerce-service/internal/circuitbreaker"
)

// BreakerStore wraps a Store with a circuit breaker so a dead cache
// backend is short-circuited instead of paying a network timeout on
// every request. Rejected reads surface as misses, which is the same
// fail-soft contract the underlying store already has.
type BreakerStore struct {
	store   Store
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerStore wraps store with a circuit breaker.
func NewBreakerStore(store Store, cfg circuitbreaker.Config) *BreakerStore {
	return &BreakerStore{
		store:   store,
		breaker: circuitbreaker.New(cfg),
	}
}

// Get implements Store. An open circuit reports the rejection as an
// error, which callers already treat as a miss.
func (s *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.breaker.Execute(ctx, func() error {
		var getErr error
		value, getErr = s.store.Get(ctx, key)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set implements Store.
func (s *BreakerStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.breaker.Execute(ctx, func() error {
		return s.store.Set(ctx, key, value, ttl)
	})
}

// Delete implements Store.
func (s *BreakerStore) Delete(ctx context.Context, pattern string) error {
	return s.breaker.Execute(ctx, func() error {
		return s.store.Delete(ctx, pattern)
	})
}

// State exposes the breaker state for health reporting.
func (s *BreakerStore) State() circuitbreaker.State {
	return s.breaker.State()
}

// Breaker exposes the underlying circuit breaker so it can be
// registered with the readiness probe.
func (s *BreakerStore) Breaker() *circuitbreaker.CircuitBreaker {
	return s.breaker
}
