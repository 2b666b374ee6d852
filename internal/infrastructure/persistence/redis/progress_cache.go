package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/application/query"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS SNAPSHOT CACHE
// ══════════════════════════════════════════════════════════════════════════════

// ProgressCache caches learner progress snapshots in Redis. It implements
// query.ProgressCache for the read path and is also used by event handlers
// to invalidate snapshots after writes.
type ProgressCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewProgressCache creates a new ProgressCache with the default snapshot TTL.
func NewProgressCache(cache *Cache) *ProgressCache {
	return &ProgressCache{
		cache: cache,
		ttl:   TTLProgressSnapshot,
	}
}

// GetSnapshot returns a cached progress snapshot.
// Returns shared.ErrNotFound on cache miss.
func (c *ProgressCache) GetSnapshot(ctx context.Context, userID string) (*query.GetProgressResult, error) {
	var snapshot query.GetProgressResult

	err := c.cache.Get(ctx, ProgressKey(userID), &snapshot)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get progress snapshot: %w", err)
	}

	return &snapshot, nil
}

// SetSnapshot stores a progress snapshot with the configured TTL.
func (c *ProgressCache) SetSnapshot(ctx context.Context, userID string, result *query.GetProgressResult) error {
	if result == nil {
		return ErrCacheNilValue
	}

	return c.cache.Set(ctx, ProgressKey(userID), result, c.ttl)
}

// Invalidate removes the learner's snapshot from the cache.
func (c *ProgressCache) Invalidate(ctx context.Context, userID string) error {
	return c.cache.Delete(ctx, ProgressKey(userID))
}
