package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fanilo/ariary-rates/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const snapshotCacheKey = "rates:snapshot"

// SnapshotCache is a Redis look-aside cache for the rate snapshot row. Every
// failure is a cache miss: entries are best-effort and Postgres stays the
// source of truth, so a broken or absent Redis never surfaces upstream.
type SnapshotCache struct {
	redis redis.Cmdable
	ttl   time.Duration
}

// NewSnapshotCache builds a cache with the given entry TTL. The TTL should
// match the resolution policy's freshness threshold: entries older than that
// would be re-resolved anyway.
func NewSnapshotCache(redis redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{redis: redis, ttl: ttl}
}

// Get returns the cached snapshot or nil on miss/failure.
func (c *SnapshotCache) Get(ctx context.Context) *models.RateSnapshot {
	val, err := c.redis.Get(ctx, snapshotCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("redis snapshot lookup failed", zap.Error(err))
		}
		return nil
	}

	var snapshot models.RateSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		zap.L().Warn("redis snapshot entry undecodable", zap.Error(err))
		return nil
	}
	return &snapshot
}

// Put caches a snapshot, best-effort.
func (c *SnapshotCache) Put(ctx context.Context, snapshot *models.RateSnapshot) {
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		zap.L().Warn("encode snapshot for redis failed", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, snapshotCacheKey, encoded, c.ttl).Err(); err != nil {
		zap.L().Warn("redis snapshot store failed", zap.Error(err))
	}
}
