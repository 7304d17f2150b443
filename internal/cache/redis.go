package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache is a Cache backed by a shared Redis instance.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a client for addr. The connection is established
// lazily on first use.
func NewRedisCache(logger *zap.Logger, addr string, ttl time.Duration) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
	return &RedisCache{client: rdb, ttl: ttl, logger: logger}
}

// Ping checks that Redis is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

// Get returns the value for key. Redis failures are logged and reported as
// a miss so the caller recomputes.
func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis get failed",
				zap.String("op", "cache.RedisCache.Get"),
				zap.Error(err),
			)
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the configured lifetime.
func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

// Close releases the client's connections.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
