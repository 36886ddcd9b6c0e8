package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/commerce-service/internal/circuitbreaker"
)

type failingStore struct {
	calls int
	err   error
}

func (s *failingStore) Get(context.Context, string) ([]byte, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) Set(context.Context, string, []byte, time.Duration) error {
	s.calls++
	return s.err
}

func (s *failingStore) Delete(context.Context, string) error {
	s.calls++
	return s.err
}

func TestBreakerStore_PassesThroughHealthyStore(t *testing.T) {
	ctx := context.Background()
	store := NewBreakerStore(NewMemoryStore(10), circuitbreaker.DefaultConfig())

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	require.NoError(t, store.Delete(ctx, "k"))

	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, value)

	assert.Equal(t, circuitbreaker.StateClosed, store.State())
}

func TestBreakerStore_OpensAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	backend := &failingStore{err: errors.New("connection refused")}
	store := NewBreakerStore(backend, circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "test-cache",
	})

	_, err := store.Get(ctx, "k")
	assert.Error(t, err)
	_, err = store.Get(ctx, "k")
	assert.Error(t, err)

	assert.Equal(t, circuitbreaker.StateOpen, store.State())

	// The open circuit rejects without reaching the backend.
	before := backend.calls
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, before, backend.calls)
}

func TestBreakerStore_RecoversAfterTimeout(t *testing.T) {
	ctx := context.Background()
	backend := &failingStore{err: errors.New("connection refused")}
	store := NewBreakerStore(backend, circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          10 * time.Millisecond,
		Name:             "test-cache",
	})

	_, _ = store.Get(ctx, "k")
	assert.Equal(t, circuitbreaker.StateOpen, store.State())

	backend.err = nil
	time.Sleep(20 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, circuitbreaker.StateClosed, store.State())
}
