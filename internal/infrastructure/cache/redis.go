package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/monostack/internal/domain/model"
	"github.com/hszk-dev/monostack/internal/infrastructure/metrics"
)

// userListKey is the Redis key holding the users listing.
const userListKey = "users:all"

// RedisUserListCache implements UserListCache using Redis as the backing store.
type RedisUserListCache struct {
	client *redis.Client
}

// NewRedisUserListCache creates a new Redis-backed users listing cache.
func NewRedisUserListCache(client *redis.Client) *RedisUserListCache {
	return &RedisUserListCache{
		client: client,
	}
}

// Get retrieves the users listing from Redis.
// Returns nil, nil on cache miss.
func (c *RedisUserListCache) Get(ctx context.Context) ([]model.User, error) {
	data, err := c.client.Get(ctx, userListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			record(metrics.CacheOpGet, metrics.CacheStatusMiss)
			return nil, nil
		}
		record(metrics.CacheOpGet, metrics.CacheStatusError)
		return nil, fmt.Errorf("redis get: %w", err)
	}

	users, err := deserialize(data)
	if err != nil {
		record(metrics.CacheOpGet, metrics.CacheStatusError)
		return nil, fmt.Errorf("deserialize users: %w", err)
	}

	record(metrics.CacheOpGet, metrics.CacheStatusHit)
	return users, nil
}

// Set stores the users listing in Redis with the specified TTL.
func (c *RedisUserListCache) Set(ctx context.Context, users []model.User, ttl time.Duration) error {
	data, err := json.Marshal(users)
	if err != nil {
		record(metrics.CacheOpSet, metrics.CacheStatusError)
		return fmt.Errorf("serialize users: %w", err)
	}

	if err := c.client.Set(ctx, userListKey, data, ttl).Err(); err != nil {
		record(metrics.CacheOpSet, metrics.CacheStatusError)
		return fmt.Errorf("redis set: %w", err)
	}

	record(metrics.CacheOpSet, metrics.CacheStatusSuccess)
	return nil
}

// deserialize decodes a cached listing, keeping numbers as json.Number so
// integer columns are not widened to float64.
func deserialize(data []byte) ([]model.User, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	users := make([]model.User, 0)
	if err := dec.Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

func record(op, status string) {
	metrics.CacheOperationsTotal.WithLabelValues(op, status, metrics.CacheTypeRedis).Inc()
}

// Compile-time verification that RedisUserListCache implements UserListCache.
var _ UserListCache = (*RedisUserListCache)(nil)
