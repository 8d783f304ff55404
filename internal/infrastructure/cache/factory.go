package cache

import (
	"fmt"

	"github.com/tienda/backend/internal/application/geography"
	"github.com/tienda/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReferenceCacheFactory creates reference caches based on configuration
type ReferenceCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReferenceCacheFactoryOption is a functional option for configuring the factory
type ReferenceCacheFactoryOption func(*ReferenceCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReferenceCacheFactoryOption {
	return func(f *ReferenceCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ReferenceCacheFactoryOption {
	return func(f *ReferenceCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReferenceCacheFactory creates a new factory
func NewReferenceCacheFactory(cfg config.RedisConfig, opts ...ReferenceCacheFactoryOption) *ReferenceCacheFactory {
	f := &ReferenceCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed reference cache
func (f *ReferenceCacheFactory) CreateRedisCache() (geography.ReferenceCache, error) {
	cache, err := NewRedisReferenceCache(f.redisConfig, WithRedisCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis reference cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory reference cache.
// In-memory caches do not share state across process instances,
// so each instance re-reads reference data after its own misses.
func (f *ReferenceCacheFactory) CreateInMemoryCache() geography.ReferenceCache {
	return NewInMemoryReferenceCache(WithInMemoryCacheLogger(f.logger))
}

// CreateCache creates a reference cache, trying Redis first and falling
// back to in-memory when Redis is unavailable and fallback is allowed
func (f *ReferenceCacheFactory) CreateCache() (geography.ReferenceCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis reference cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for reference cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory reference cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
