package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cryptochat-backend/internal/platform/redis"
)

// Service is a JSON read-through cache over Redis. A nil *Service is valid
// and behaves as if every lookup missed, so callers never need to branch on
// whether caching is enabled.
type Service struct {
	redisClient *redis.Client
}

func NewService(redisClient *redis.Client) *Service {
	return &Service{redisClient: redisClient}
}

// Get fetches and unmarshals a cached value into dest.
func (c *Service) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil || c.redisClient == nil {
		return fmt.Errorf("cache disabled")
	}

	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// Set marshals and stores a value with a TTL.
func (c *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.redisClient == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

// Delete removes a single key.
func (c *Service) Delete(ctx context.Context, key string) error {
	if c == nil || c.redisClient == nil {
		return nil
	}
	return c.redisClient.Del(ctx, key).Err()
}

// DeletePattern removes every key matching the pattern.
func (c *Service) DeletePattern(ctx context.Context, pattern string) error {
	if c == nil || c.redisClient == nil {
		return nil
	}

	keys, err := c.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.redisClient.Del(ctx, keys...).Err()
	}

	return nil
}

// GetOrSet returns the cached value for key, or computes it with setter,
// stores it, and returns it. Setter errors are returned as-is; cache write
// failures are not (the computed value still reaches dest).
func (c *Service) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	_ = c.Set(ctx, key, value, ttl)

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
