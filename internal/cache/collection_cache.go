package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CollectionCache keeps serialized content collections in Redis so that
// repeated list reads skip the database. Writes invalidate the whole key.
type CollectionCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCollectionCache creates a new CollectionCache.
func NewCollectionCache(redis *RedisClient, ttl time.Duration) *CollectionCache {
	return &CollectionCache{redis: redis, ttl: ttl}
}

func (c *CollectionCache) key(name string) string {
	return "led:collection:" + name
}

// Get returns the cached collection. A miss or a Redis failure both report
// ok=false; failures are logged and treated as a miss.
func (c *CollectionCache) Get(ctx context.Context, name string) ([]byte, bool) {
	val, err := c.redis.Get(ctx, c.key(name))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("collection", name).Msg("Collection cache read failed")
		}
		return nil, false
	}
	return []byte(val), true
}

// Set stores a serialized collection with the configured TTL.
func (c *CollectionCache) Set(ctx context.Context, name string, data []byte) {
	if err := c.redis.Set(ctx, c.key(name), string(data), c.ttl); err != nil {
		log.Warn().Err(err).Str("collection", name).Msg("Collection cache write failed")
	}
}

// Invalidate drops a cached collection.
func (c *CollectionCache) Invalidate(ctx context.Context, name string) {
	if err := c.redis.Delete(ctx, c.key(name)); err != nil {
		log.Warn().Err(err).Str("collection", name).Msg("Collection cache invalidation failed")
	}
}
