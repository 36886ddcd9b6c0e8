package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/commerce-service/internal/cache"
	"github.com/guttosm/commerce-service/internal/circuitbreaker"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := cache.NewMemoryStore(16)
	defer store.Stop()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "brands|page=1", []byte(`{"items":1}`), 0))

	got, err := store.Get(ctx, "brands|page=1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":1}`), got)
}

func TestMemoryStore_MissReturnsNil(t *testing.T) {
	store := cache.NewMemoryStore(16)
	defer store.Stop()

	got, err := store.Get(context.Background(), "absent")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := cache.NewMemoryStore(16)
	defer store.Stop()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "orders|page=1", []byte("v"), 10*time.Millisecond))

	got, err := store.Get(ctx, "orders|page=1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	time.Sleep(20 * time.Millisecond)

	got, err = store.Get(ctx, "orders|page=1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_LRUEviction(t *testing.T) {
	store := cache.NewMemoryStore(2)
	defer store.Stop()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), 0))

	// Touch "a" so "b" becomes the eviction candidate.
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "c", []byte("3"), 0))

	got, _ := store.Get(ctx, "b")
	assert.Nil(t, got)
	got, _ = store.Get(ctx, "a")
	assert.NotNil(t, got)
	got, _ = store.Get(ctx, "c")
	assert.NotNil(t, got)
}

func TestMemoryStore_WildcardDeleteIsExhaustive(t *testing.T) {
	store := cache.NewMemoryStore(2048)
	defer store.Stop()
	ctx := context.Background()

	// Seed many keys under one resource prefix plus bystanders.
	for i := 0; i < 1000; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("brands|page=%d", i), []byte("x"), 0))
	}
	require.NoError(t, store.Set(ctx, "banners|page=1", []byte("y"), 0))

	require.NoError(t, store.Delete(ctx, "brands|*"))

	for i := 0; i < 1000; i++ {
		got, err := store.Get(ctx, fmt.Sprintf("brands|page=%d", i))
		require.NoError(t, err)
		assert.Nil(t, got, "key %d survived wildcard invalidation", i)
	}
	got, _ := store.Get(ctx, "banners|page=1")
	assert.NotNil(t, got, "unrelated resource must survive")
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := cache.NewMemoryStore(8)
	defer store.Stop()

	assert.NoError(t, store.Delete(context.Background(), "nothing|*"))
	assert.NoError(t, store.Delete(context.Background(), "nothing|*"))
}

func TestSetJSONGetJSON_RoundTrip(t *testing.T) {
	store := cache.NewMemoryStore(8)
	defer store.Stop()
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	cache.SetJSON(ctx, store, "k", payload{Name: "acme", N: 3}, 0)

	got, ok := cache.GetJSON[payload](ctx, store, "k")
	require.True(t, ok)
	assert.Equal(t, "acme", got.Name)
	assert.Equal(t, 3, got.N)
}

func TestGetJSON_CorruptPayloadIsMiss(t *testing.T) {
	store := cache.NewMemoryStore(8)
	defer store.Stop()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), 0))

	_, ok := cache.GetJSON[map[string]any](ctx, store, "k")
	assert.False(t, ok)
}

// failingStore always errors, standing in for an unreachable Redis.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func TestGetJSON_BackendErrorIsMiss(t *testing.T) {
	_, ok := cache.GetJSON[map[string]any](context.Background(), failingStore{}, "k")
	assert.False(t, ok)
}

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	store := cache.NewBreakerStore(failingStore{}, circuitbreaker.Config{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "cache-test",
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Get(ctx, "k")
		assert.Error(t, err)
	}
	assert.Equal(t, circuitbreaker.StateOpen, store.State())

	// Open circuit rejects without touching the backend; still a miss.
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestBreakerStore_PassesThroughHealthyStore(t *testing.T) {
	mem := cache.NewMemoryStore(8)
	defer mem.Stop()
	store := cache.NewBreakerStore(mem, circuitbreaker.DefaultConfig())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Delete(ctx, "k"))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, circuitbreaker.StateClosed, store.State())
}
