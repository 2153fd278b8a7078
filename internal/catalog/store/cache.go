package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"udyam/internal/catalog/metrics"
	"udyam/internal/catalog/models"
)

const cacheKeyPrefix = "catalog:entry:"

// Resolver is the read side of a catalog store.
type Resolver interface {
	Resolve(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error)
}

// RedisCache is a read-through cache over a backing catalog store. The
// catalog is read-heavy and effectively immutable, so entries sit in Redis
// under a TTL. Cache failures degrade to the backing store; a broken Redis
// never blocks requirement resolution.
type RedisCache struct {
	client  *redis.Client
	backing Resolver
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRedisCache wraps the backing resolver with a Redis read-through cache.
func NewRedisCache(client *redis.Client, backing Resolver, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *RedisCache {
	return &RedisCache{
		client:  client,
		backing: backing,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// Resolve serves from cache when possible, falling through to the backing
// store and populating the cache on miss. Not-found is NOT cached: absent
// catalog configuration is an operator error that should surface as soon as
// the entry is published.
func (c *RedisCache) Resolve(ctx context.Context, sector, applicationType string) (*models.CatalogEntry, error) {
	key := cacheKeyPrefix + sector + ":" + applicationType

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry models.CatalogEntry
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			c.metrics.RecordCache("hit")
			return &entry, nil
		}
		// Corrupt payload: treat as miss and repopulate below.
		c.metrics.RecordCache("miss")
	case errors.Is(err, redis.Nil):
		c.metrics.RecordCache("miss")
	default:
		c.metrics.RecordCache("bypass")
		c.logger.WarnContext(ctx, "catalog cache read failed, bypassing",
			"sector", sector,
			"application_type", applicationType,
			"error", err,
		)
	}

	entry, err := c.backing.Resolve(ctx, sector, applicationType)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(entry); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "catalog cache write failed",
				"sector", sector,
				"application_type", applicationType,
				"error", setErr,
			)
		}
	}
	return entry, nil
}

// Invalidate drops a cached entry after an administrative upsert.
func (c *RedisCache) Invalidate(ctx context.Context, sector, applicationType string) error {
	key := cacheKeyPrefix + sector + ":" + applicationType
	if err := c.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

var _ Resolver = (*RedisCache)(nil)
