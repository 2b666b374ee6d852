// Package postgres implements PostgreSQL persistence layer for LinguaClip.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/progress"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY IMPLEMENTATION
// Леджер XP, попытки и серии. Идемпотентность начислений обеспечивается
// уникальным индексом xp_events(user_id, content_id, awarded_date_utc).
// ══════════════════════════════════════════════════════════════════════════════

// ProgressRepository implements progress.Repository for PostgreSQL.
type ProgressRepository struct {
	conn *Connection
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(conn *Connection) *ProgressRepository {
	return &ProgressRepository{conn: conn}
}

// CreateAttempt records a quiz attempt.
func (r *ProgressRepository) CreateAttempt(ctx context.Context, attempt *progress.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (
			id, user_id, content_id, score_percent, correct_count,
			total_questions, xp_awarded, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.conn.Exec(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.ContentID,
		attempt.ScorePercent,
		attempt.CorrectCount,
		attempt.TotalQuestions,
		attempt.XPAwarded,
		attempt.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}

	return nil
}

// queryRecordXPEvent deduplicates through the unique index without raising
// a constraint error: a 23505 would abort the surrounding transaction and
// take the attempt and streak writes down with it.
const queryRecordXPEvent = `
	INSERT INTO xp_events (id, user_id, content_id, amount, reason, awarded_date_utc, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id, content_id, awarded_date_utc) DO NOTHING
`

// RecordXPEvent appends an entry to the XP ledger. Returns
// shared.ErrXPAlreadyAwarded when the (user, content, UTC day) entry
// already exists. The transaction stays usable either way.
func (r *ProgressRepository) RecordXPEvent(ctx context.Context, event *progress.XPEvent) error {
	awardedDate, err := timeutil.ParseDate(event.AwardedDateUTC)
	if err != nil {
		return fmt.Errorf("invalid awarded date: %w", err)
	}

	tag, err := r.conn.Exec(ctx, queryRecordXPEvent,
		event.ID,
		event.UserID,
		event.ContentID,
		event.Amount,
		string(event.Reason),
		awardedDate,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record xp event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrXPAlreadyAwarded
	}

	return nil
}

// GetStreak returns the learner's streak state, or (nil, nil) if the
// learner has no progress row yet.
func (r *ProgressRepository) GetStreak(ctx context.Context, userID string) (*progress.Streak, error) {
	query := `
		SELECT user_id, current_streak, best_streak, last_active_date
		FROM learner_progress
		WHERE user_id = $1
	`

	var streak progress.Streak
	var lastActive *time.Time

	err := r.conn.QueryRow(ctx, query, userID).Scan(
		&streak.UserID,
		&streak.CurrentStreakDays,
		&streak.BestStreakDays,
		&lastActive,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan streak: %w", err)
	}

	if lastActive != nil {
		normalized := timeutil.DateOf(*lastActive)
		streak.LastActiveDate = &normalized
	}

	return &streak, nil
}

// SaveStreak persists the learner's streak state.
func (r *ProgressRepository) SaveStreak(ctx context.Context, streak *progress.Streak) error {
	query := `
		INSERT INTO learner_progress (user_id, current_streak, best_streak, last_active_date, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			best_streak = EXCLUDED.best_streak,
			last_active_date = EXCLUDED.last_active_date,
			updated_at = NOW()
	`

	_, err := r.conn.Exec(ctx, query,
		streak.UserID,
		streak.CurrentStreakDays,
		streak.BestStreakDays,
		streak.LastActiveDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}

	return nil
}

// GetRecentAttempts returns the learner's most recent attempts, newest first.
func (r *ProgressRepository) GetRecentAttempts(ctx context.Context, userID string, limit int) ([]*progress.QuizAttempt, error) {
	query := `
		SELECT id, user_id, content_id, score_percent, correct_count,
			   total_questions, xp_awarded, completed_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.conn.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*progress.QuizAttempt
	for rows.Next() {
		var attempt progress.QuizAttempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.ContentID,
			&attempt.ScorePercent,
			&attempt.CorrectCount,
			&attempt.TotalQuestions,
			&attempt.XPAwarded,
			&attempt.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, &attempt)
	}

	return attempts, rows.Err()
}

// AddTotalXP atomically increments the learner's accumulated XP and
// returns the new total.
func (r *ProgressRepository) AddTotalXP(ctx context.Context, userID string, amount int) (int, error) {
	query := `
		INSERT INTO learner_progress (user_id, total_xp, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			total_xp = learner_progress.total_xp + EXCLUDED.total_xp,
			updated_at = NOW()
		RETURNING total_xp
	`

	var total int
	if err := r.conn.QueryRow(ctx, query, userID, amount).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to add total xp: %w", err)
	}

	return total, nil
}

// GetTotalXP returns the learner's accumulated XP (0 if no progress row).
func (r *ProgressRepository) GetTotalXP(ctx context.Context, userID string) (int, error) {
	query := `SELECT total_xp FROM learner_progress WHERE user_id = $1`

	var total int
	if err := r.conn.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		if IsNoRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get total xp: %w", err)
	}

	return total, nil
}
