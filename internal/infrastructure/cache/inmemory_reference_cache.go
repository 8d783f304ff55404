package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryReferenceCache caches serialized reference data in process memory.
// Suitable for single-instance deployments and testing.
type InMemoryReferenceCache struct {
	entries sync.Map // map[string]*cacheEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// cacheEntry wraps a serialized value with expiration time
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// InMemoryReferenceCacheOption is a functional option for configuring the cache
type InMemoryReferenceCacheOption func(*InMemoryReferenceCache)

// WithInMemoryCacheLogger sets the logger for the cache
func WithInMemoryCacheLogger(logger *zap.Logger) InMemoryReferenceCacheOption {
	return func(c *InMemoryReferenceCache) {
		c.logger = logger
	}
}

// NewInMemoryReferenceCache creates a new in-memory reference cache
func NewInMemoryReferenceCache(opts ...InMemoryReferenceCacheOption) *InMemoryReferenceCache {
	cache := &InMemoryReferenceCache{
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached value into dest, returning false on a miss
func (c *InMemoryReferenceCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			if err := json.Unmarshal(entry.data, dest); err != nil {
				c.entries.Delete(key)
				return false, err
			}
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit", zap.String("key", key))
			return true, nil
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss", zap.String("key", key))
	return false, nil
}

// Set stores a value in cache with the given TTL
func (c *InMemoryReferenceCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := &cacheEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.entries.Store(key, entry)
	c.logger.Debug("Cached value",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the given keys from cache
func (c *InMemoryReferenceCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.entries.Delete(key)
	}
	c.logger.Debug("Invalidated cache keys", zap.Strings("keys", keys))
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemoryReferenceCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache hit and miss counters
func (c *InMemoryReferenceCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries in the cache
func (c *InMemoryReferenceCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func (c *InMemoryReferenceCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemoryReferenceCache) doCleanup() {
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if value.(*cacheEntry).isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int("removed", removed))
	}
}
