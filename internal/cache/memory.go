package cache

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/guttosm/commerce-service/internal/metrics"
)

// memoryEntry is a single cached payload with expiration tracking.
type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiry
	prev      *memoryEntry
	next      *memoryEntry
}

// MemoryStore is an in-process Store with LRU eviction and per-entry
// TTL. It backs the service when Redis is not configured and serves as
// the deterministic store in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	items    map[string]*memoryEntry
	head     *memoryEntry
	tail     *memoryEntry
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a memory store bounded to capacity entries.
// A background goroutine sweeps expired entries until Stop is called.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	s := &MemoryStore{
		capacity: capacity,
		items:    make(map[string]*memoryEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[key]
	if !ok {
		metrics.RecordCacheOperation("get", "miss")
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.unlink(entry)
		delete(s.items, key)
		metrics.RecordCacheOperation("get", "expired")
		return nil, nil
	}
	s.moveToFront(entry)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, nil
}

// Set implements Store. Existing entries are overwritten.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		s.moveToFront(entry)
		metrics.RecordCacheOperation("set", "ok")
		return nil
	}

	if len(s.items) >= s.capacity {
		s.evictOldest()
	}

	entry := &memoryEntry{key: key, value: value, expiresAt: expiresAt}
	s.items[key] = entry
	s.pushFront(entry)
	metrics.RecordCacheOperation("set", "ok")
	metrics.UpdateCacheMetrics(len(s.items), s.capacity)
	return nil
}

// Delete implements Store. A trailing "*" matches by prefix, the way
// Redis MATCH treats it; other patterns use path.Match glob syntax.
func (s *MemoryStore) Delete(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var match func(key string) (bool, error)
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok && !strings.ContainsAny(prefix, "*?[") {
		match = func(key string) (bool, error) {
			return strings.HasPrefix(key, prefix), nil
		}
	} else {
		match = func(key string) (bool, error) {
			return path.Match(pattern, key)
		}
	}

	for key, entry := range s.items {
		matched, err := match(key)
		if err != nil {
			return err
		}
		if matched {
			s.unlink(entry)
			delete(s.items, key)
		}
	}
	metrics.RecordCacheOperation("delete", "ok")
	return nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stop shuts down the background sweeper.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.items {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			s.unlink(entry)
			delete(s.items, key)
		}
	}
}

func (s *MemoryStore) evictOldest() {
	if s.tail == nil {
		return
	}
	oldest := s.tail
	s.unlink(oldest)
	delete(s.items, oldest.key)
	metrics.RecordCacheOperation("evict", "ok")
}

func (s *MemoryStore) pushFront(entry *memoryEntry) {
	entry.prev = nil
	entry.next = s.head
	if s.head != nil {
		s.head.prev = entry
	}
	s.head = entry
	if s.tail == nil {
		s.tail = entry
	}
}

func (s *MemoryStore) moveToFront(entry *memoryEntry) {
	if s.head == entry {
		return
	}
	s.unlink(entry)
	s.pushFront(entry)
}

func (s *MemoryStore) unlink(entry *memoryEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else if s.head == entry {
		s.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else if s.tail == entry {
		s.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}
