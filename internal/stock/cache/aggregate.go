// Package cache provides the Redis-backed aggregate cache for the stock
// service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/pkg/logger"
)

// AggregateCache stores assigned-by-technician folds in Redis. A nil
// client disables caching; every method degrades to a no-op miss so the
// read path falls back to folding the ledger.
type AggregateCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewAggregateCache creates a new aggregate cache
func NewAggregateCache(client *redis.Client) *AggregateCache {
	return &AggregateCache{redis: client, ttl: 5 * time.Minute}
}

func key(resourceType domain.ResourceType, resourceID uint) string {
	return fmt.Sprintf("assigned:%s:%d", resourceType, resourceID)
}

// Get returns the cached fold for a resource, if present
func (c *AggregateCache) Get(ctx context.Context, resourceType domain.ResourceType, resourceID uint) (map[uint]float64, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, key(resourceType, resourceID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx).Err(err).Msg("Aggregate cache read failed")
		}
		return nil, false
	}

	var encoded map[string]float64
	if err := json.Unmarshal(data, &encoded); err != nil {
		logger.Warn(ctx).Err(err).Msg("Aggregate cache entry corrupt, discarding")
		c.Invalidate(ctx, resourceType, resourceID)
		return nil, false
	}

	totals := make(map[uint]float64, len(encoded))
	for k, v := range encoded {
		id, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			continue
		}
		totals[uint(id)] = v
	}
	return totals, true
}

// Set stores the fold for a resource
func (c *AggregateCache) Set(ctx context.Context, resourceType domain.ResourceType, resourceID uint, totals map[uint]float64) {
	if c.redis == nil {
		return
	}

	encoded := make(map[string]float64, len(totals))
	for id, qty := range totals {
		encoded[strconv.FormatUint(uint64(id), 10)] = qty
	}

	data, err := json.Marshal(encoded)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key(resourceType, resourceID), data, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Aggregate cache write failed")
	}
}

// Invalidate drops the cached fold for a resource. Called after every
// ledger append.
func (c *AggregateCache) Invalidate(ctx context.Context, resourceType domain.ResourceType, resourceID uint) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, key(resourceType, resourceID)).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Aggregate cache invalidation failed")
	}
}
