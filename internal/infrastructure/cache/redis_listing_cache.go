package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisListingCache implements shared.ListingCache on Redis.
// Invalidation is generation-based: each entity kind has a generation counter
// baked into its data keys, so invalidating increments one counter instead of
// scanning for keys. Stale generations simply expire with their TTL.
type RedisListingCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisListingCache creates a new RedisListingCache
func NewRedisListingCache(client *redis.Client, logger *zap.Logger) *RedisListingCache {
	return &RedisListingCache{client: client, logger: logger}
}

func (c *RedisListingCache) generationKey(entity string) string {
	return "listing:" + entity + ":gen"
}

func (c *RedisListingCache) dataKey(entity string, generation int64, fingerprint string) string {
	return fmt.Sprintf("listing:%s:%d:%s", entity, generation, fingerprint)
}

func (c *RedisListingCache) generation(ctx context.Context, entity string) (int64, error) {
	generation, err := c.client.Get(ctx, c.generationKey(entity)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return generation, err
}

// Get returns the cached payload for the key, or false when absent.
// Redis errors degrade to a miss so a cache outage never fails a read.
func (c *RedisListingCache) Get(ctx context.Context, entity, fingerprint string) ([]byte, bool) {
	generation, err := c.generation(ctx, entity)
	if err != nil {
		c.logger.Warn("listing cache generation read failed", zap.String("entity", entity), zap.Error(err))
		return nil, false
	}

	payload, err := c.client.Get(ctx, c.dataKey(entity, generation, fingerprint)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("listing cache read failed", zap.String("entity", entity), zap.Error(err))
		return nil, false
	}
	return payload, true
}

// Set stores a payload under the key for the given TTL
func (c *RedisListingCache) Set(ctx context.Context, entity, fingerprint string, payload []byte, ttl time.Duration) error {
	generation, err := c.generation(ctx, entity)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.dataKey(entity, generation, fingerprint), payload, ttl).Err()
}

// Invalidate drops every cached page of the entity kind by bumping its
// generation counter
func (c *RedisListingCache) Invalidate(ctx context.Context, entity string) error {
	return c.client.Incr(ctx, c.generationKey(entity)).Err()
}

// Ensure RedisListingCache implements ListingCache
var _ shared.ListingCache = (*RedisListingCache)(nil)
