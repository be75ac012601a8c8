// Package cache implements the analytics cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

const scanBatchSize = 100

// RedisAnalyticsCache stores analytics views as JSON strings with a TTL.
type RedisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAnalyticsCache creates a Redis backed analytics cache.
func NewRedisAnalyticsCache(client *redis.Client, ttl time.Duration) *RedisAnalyticsCache {
	return &RedisAnalyticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get loads a cached value into dest and reports whether it was found.
func (c *RedisAnalyticsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

// Set stores a value under key.
func (c *RedisAnalyticsCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops every cached view of the user in the given scope.
func (c *RedisAnalyticsCache) Invalidate(ctx context.Context, userID uuid.UUID, scope adapter.AnalyticsScope) error {
	pattern := adapter.AnalyticsKey(userID, scope, "*", "*")

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// NoopAnalyticsCache never stores anything. It is used when Redis is disabled.
type NoopAnalyticsCache struct{}

// Get always misses.
func (NoopAnalyticsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

// Set does nothing.
func (NoopAnalyticsCache) Set(ctx context.Context, key string, value any) error {
	return nil
}

// Invalidate does nothing.
func (NoopAnalyticsCache) Invalidate(ctx context.Context, userID uuid.UUID, scope adapter.AnalyticsScope) error {
	return nil
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.AnalyticsCache = (*RedisAnalyticsCache)(nil)
	_ adapter.AnalyticsCache = NoopAnalyticsCache{}
)
