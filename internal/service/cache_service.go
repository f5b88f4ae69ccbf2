package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"padel-api/pkg/logger"
	"padel-api/pkg/redis"
)

// CacheService is a thin cache-aside helper over Redis. All methods are
// nil-safe: with no Redis configured every read is a miss and every write
// is a no-op, so services degrade to the database transparently.
type CacheService struct {
	redis  *redis.Client
	logger *logger.Logger
}

// NewCacheService creates a cache service; client may be nil to disable caching
func NewCacheService(client *redis.Client, log *logger.Logger) *CacheService {
	return &CacheService{redis: client, logger: log}
}

// Enabled reports whether a Redis backend is configured
func (c *CacheService) Enabled() bool {
	return c != nil && c.redis != nil
}

// Keys exposes the environment-prefixed key builder
func (c *CacheService) Keys() *redis.KeyBuilder {
	return c.redis.KeyBuilder
}

// GetJSON loads a cached JSON value into dest, reporting whether it was a hit
func (c *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.redis.Get(ctx, key)
	if err == goredis.Nil {
		return false
	}
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache entry corrupt, dropping")
		_ = c.redis.Delete(ctx, key)
		return false
	}

	return true
}

// SetJSON stores a JSON value with a TTL; failures are logged, never fatal
func (c *CacheService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache marshal failed")
		return
	}
	if err := c.redis.Set(ctx, key, raw, ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// Invalidate removes cache keys
func (c *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.redis.Delete(ctx, keys...); err != nil {
		c.logger.WithError(err).Warn("Cache invalidation failed")
	}
}

// InvalidateMatch drops every cached view of a match after a write
func (c *CacheService) InvalidateMatch(ctx context.Context, matchID int64) {
	if !c.Enabled() {
		return
	}

	kb := c.redis.KeyBuilder
	c.Invalidate(ctx,
		kb.KeyMatchByID(matchID),
		kb.KeyMatchScore(matchID),
		kb.KeyMatchPlayers(matchID),
	)

	// Nearby results embed occupancy, so they go too.
	pattern := kb.BuildKey(fmt.Sprintf(redis.KeyMatchesNearby, "*"))
	if err := c.redis.InvalidatePattern(ctx, pattern); err != nil {
		c.logger.WithError(err).Warn("Nearby cache invalidation failed")
	}
}

// InvalidateCourts drops cached court views after a court write
func (c *CacheService) InvalidateCourts(ctx context.Context, courtID int64) {
	if !c.Enabled() {
		return
	}

	kb := c.redis.KeyBuilder
	c.Invalidate(ctx, kb.KeyCourtByID(courtID))

	pattern := kb.BuildKey(fmt.Sprintf(redis.KeyCourtsNearby, "*"))
	if err := c.redis.InvalidatePattern(ctx, pattern); err != nil {
		c.logger.WithError(err).Warn("Nearby cache invalidation failed")
	}
}

// QueryHash derives a stable short hash for caching parameterized queries
func QueryHash(parts ...interface{}) string {
	sum := sha256.Sum256([]byte(fmt.Sprintln(parts...)))
	return hex.EncodeToString(sum[:8])
}
