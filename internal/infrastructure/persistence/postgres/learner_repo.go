// Package postgres implements PostgreSQL persistence layer for LinguaClip.
package postgres

import (
	"context"
	"fmt"

	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// LearnerRepository implements learner.Repository for PostgreSQL.
type LearnerRepository struct {
	conn *Connection
}

// NewLearnerRepository creates a new LearnerRepository.
func NewLearnerRepository(conn *Connection) *LearnerRepository {
	return &LearnerRepository{conn: conn}
}

// Upsert creates or updates a learner profile.
func (r *LearnerRepository) Upsert(ctx context.Context, profile *learner.Profile) error {
	query := `
		INSERT INTO learner_profiles (user_id, target_language, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			target_language = EXCLUDED.target_language,
			level = EXCLUDED.level,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.conn.Exec(ctx, query,
		profile.UserID,
		string(profile.TargetLanguage),
		string(profile.Level),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert learner profile: %w", err)
	}

	return nil
}

// GetByUserID returns a learner profile by user ID.
func (r *LearnerRepository) GetByUserID(ctx context.Context, userID string) (*learner.Profile, error) {
	query := `
		SELECT user_id, target_language, level, created_at, updated_at
		FROM learner_profiles
		WHERE user_id = $1
	`

	var profile learner.Profile
	var targetLanguage, level string

	err := r.conn.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&targetLanguage,
		&level,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan learner profile: %w", err)
	}

	profile.TargetLanguage = shared.Language(targetLanguage)
	profile.Level = shared.CEFRLevel(level)

	return &profile, nil
}
