package cache

import (
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

const memoryCacheSize = 1024

type memoryEntry struct {
	value    []byte
	deadline time.Time
}

// MemoryService implements CacheService with an in-process LRU.
// It exists so local runs do not need a memcached instance.
type MemoryService struct {
	entries *lru.Cache[string, memoryEntry]
}

// NewMemoryService creates a new in-memory cache service
func NewMemoryService() (*MemoryService, error) {
	entries, err := lru.New[string, memoryEntry](memoryCacheSize)
	if err != nil {
		return nil, err
	}
	return &MemoryService{entries: entries}, nil
}

// Get retrieves a value, treating expired entries as misses
func (m *MemoryService) Get(key string) ([]byte, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.deadline.IsZero() && time.Now().After(entry.deadline) {
		m.entries.Remove(key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value with an expiration time (zero means no expiry)
func (m *MemoryService) Set(key string, value []byte, expiration time.Duration) error {
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.deadline = time.Now().Add(expiration)
	}
	m.entries.Add(key, entry)
	return nil
}

// Delete removes a value from the cache
func (m *MemoryService) Delete(key string) error {
	m.entries.Remove(key)
	return nil
}
