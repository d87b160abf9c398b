package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	platformredis "raffle-tool-backend/internal/platform/redis"
)

// CacheService is a short-TTL read-through cache over Redis. The chain stays
// the source of truth; a nil CacheService is valid and makes every GetOrSet
// call its setter directly.
type CacheService struct {
	redisClient *platformredis.Client
}

func NewCacheService(redisClient *platformredis.Client) *CacheService {
	return &CacheService{
		redisClient: redisClient,
	}
}

// Get fetches a value from the cache into dest.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in the cache.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

// DeletePattern removes all keys matching a pattern.
func (c *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := c.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.redisClient.Del(ctx, keys...).Err()
	}

	return nil
}

// GetOrSet reads a value from the cache, falling back to setter on a miss
// or when no Redis client is configured.
func (c *CacheService) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if c == nil || c.redisClient == nil {
		value, err := setter()
		if err != nil {
			return err
		}
		return copyValue(value, dest)
	}

	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	return copyValue(value, dest)
}

// InvalidateRaffleCache drops all cached raffle projections. Called after
// the post-mutation settle delay.
func (c *CacheService) InvalidateRaffleCache(ctx context.Context) error {
	if c == nil || c.redisClient == nil {
		return nil
	}

	patterns := []string{"raffle:*", "raffle_ids", "whitelist_registry"}
	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}

	return nil
}

func copyValue(value, dest interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
