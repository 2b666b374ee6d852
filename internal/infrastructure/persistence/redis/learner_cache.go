package redis

import (
	"context"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER PROFILE CACHE
// ══════════════════════════════════════════════════════════════════════════════

// CachedLearnerRepository is a read-through cache decorator over a
// learner.Repository. Profiles are read on every feed request, so a short
// TTL takes that load off PostgreSQL.
type CachedLearnerRepository struct {
	inner learner.Repository
	cache *Cache
	ttl   time.Duration
}

// NewCachedLearnerRepository wraps a learner.Repository with Redis caching.
func NewCachedLearnerRepository(inner learner.Repository, cache *Cache) *CachedLearnerRepository {
	return &CachedLearnerRepository{
		inner: inner,
		cache: cache,
		ttl:   TTLProfileCache,
	}
}

// cachedProfile is the Redis representation of a learner profile.
type cachedProfile struct {
	UserID         string    `json:"user_id"`
	TargetLanguage string    `json:"target_language"`
	Level          string    `json:"level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Upsert writes the profile through to the inner repository and refreshes
// the cached copy.
func (r *CachedLearnerRepository) Upsert(ctx context.Context, profile *learner.Profile) error {
	if err := r.inner.Upsert(ctx, profile); err != nil {
		return err
	}

	// Write errors only degrade freshness, the TTL covers them.
	_ = r.cache.Set(ctx, ProfileKey(profile.UserID), toCachedProfile(profile), r.ttl)

	return nil
}

// GetByUserID returns the profile from cache, falling back to the inner
// repository on a miss.
func (r *CachedLearnerRepository) GetByUserID(ctx context.Context, userID string) (*learner.Profile, error) {
	// Cache misses and Redis errors both degrade to the database.
	var cached cachedProfile
	if err := r.cache.Get(ctx, ProfileKey(userID), &cached); err == nil {
		return fromCachedProfile(&cached), nil
	}

	profile, err := r.inner.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, ProfileKey(userID), toCachedProfile(profile), r.ttl)

	return profile, nil
}

func toCachedProfile(p *learner.Profile) *cachedProfile {
	return &cachedProfile{
		UserID:         p.UserID,
		TargetLanguage: p.TargetLanguage.String(),
		Level:          p.Level.String(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromCachedProfile(c *cachedProfile) *learner.Profile {
	return &learner.Profile{
		UserID:         c.UserID,
		TargetLanguage: shared.Language(c.TargetLanguage),
		Level:          shared.CEFRLevel(c.Level),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
