package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tienda/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisReferenceCache caches serialized reference data in Redis
type RedisReferenceCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisReferenceCacheOption is a functional option for configuring the cache
type RedisReferenceCacheOption func(*RedisReferenceCache)

// WithRedisCacheLogger sets the logger for the cache
func WithRedisCacheLogger(logger *zap.Logger) RedisReferenceCacheOption {
	return func(c *RedisReferenceCache) {
		c.logger = logger
	}
}

// NewRedisReferenceCache creates a new Redis-backed reference cache
func NewRedisReferenceCache(cfg config.RedisConfig, opts ...RedisReferenceCacheOption) (*RedisReferenceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisReferenceCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisReferenceCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisReferenceCacheWithClient(client *redis.Client, opts ...RedisReferenceCacheOption) *RedisReferenceCache {
	cache := &RedisReferenceCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves a cached value into dest, returning false on a miss
func (c *RedisReferenceCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get value from cache",
			zap.String("key", key),
			zap.Error(err))
		return false, fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("Failed to unmarshal cached value",
			zap.String("key", key),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, key)
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

// Set stores a value in cache with the given TTL
func (c *RedisReferenceCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("Failed to marshal value for cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set value in cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set in cache: %w", err)
	}

	c.logger.Debug("Cached value",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the given keys from cache
func (c *RedisReferenceCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("Failed to invalidate cache keys",
			zap.Strings("keys", keys),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate cache keys: %w", err)
	}

	c.logger.Debug("Invalidated cache keys", zap.Strings("keys", keys))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisReferenceCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisReferenceCache) GetClient() *redis.Client {
	return c.client
}
