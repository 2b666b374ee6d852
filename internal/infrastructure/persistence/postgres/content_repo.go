// Package postgres implements PostgreSQL persistence layer for LinguaClip.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ContentRepository implements content.Repository for PostgreSQL.
type ContentRepository struct {
	conn *Connection
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(conn *Connection) *ContentRepository {
	return &ContentRepository{conn: conn}
}

const videoContentColumns = `id, creator_id, language, level, title, caption,
	   video_url, thumbnail_url, status, published_at, created_at, updated_at`

// Create creates a new video content row.
func (r *ContentRepository) Create(ctx context.Context, vc *content.VideoContent) error {
	query := `
		INSERT INTO video_contents (
			id, creator_id, language, level, title, caption,
			video_url, thumbnail_url, status, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.conn.Exec(ctx, query,
		vc.ID,
		vc.CreatorID,
		string(vc.Language),
		string(vc.Level),
		vc.Title,
		vc.Caption,
		vc.VideoURL,
		vc.ThumbnailURL,
		string(vc.Status),
		vc.PublishedAt,
		vc.CreatedAt,
		vc.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.NewDomainError("content", "Create", shared.ErrAlreadyExists, "content already exists")
		}
		return fmt.Errorf("failed to create content: %w", err)
	}

	return nil
}

// GetByID returns video content by ID.
func (r *ContentRepository) GetByID(ctx context.Context, id string) (*content.VideoContent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM video_contents
		WHERE id = $1
	`, videoContentColumns)

	row := r.conn.QueryRow(ctx, query, id)
	return r.scanContent(row)
}

// Update updates video content.
func (r *ContentRepository) Update(ctx context.Context, vc *content.VideoContent) error {
	query := `
		UPDATE video_contents SET
			language = $1,
			level = $2,
			title = $3,
			caption = $4,
			video_url = $5,
			thumbnail_url = $6,
			status = $7,
			published_at = $8,
			updated_at = $9
		WHERE id = $10
	`

	result, err := r.conn.Exec(ctx, query,
		string(vc.Language),
		string(vc.Level),
		vc.Title,
		vc.Caption,
		vc.VideoURL,
		vc.ThumbnailURL,
		string(vc.Status),
		vc.PublishedAt,
		vc.UpdatedAt,
		vc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrContentNotFound
	}

	return nil
}

// ListByCreator returns all content of a creator, newest first.
func (r *ContentRepository) ListByCreator(ctx context.Context, creatorID string) ([]*content.VideoContent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM video_contents
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`, videoContentColumns)

	rows, err := r.conn.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator content: %w", err)
	}
	defer rows.Close()

	return r.scanContentRows(rows)
}

// ListFeedPage returns a page of published content in feed order
// (published_at DESC, id DESC), strictly after the given key.
func (r *ContentRepository) ListFeedPage(ctx context.Context, filter content.FeedFilter, after *content.FeedKey, limit int) ([]*content.VideoContent, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if after == nil {
		query := fmt.Sprintf(`
			SELECT %s
			FROM video_contents
			WHERE language = $1 AND level = $2 AND status = 'published'
			ORDER BY published_at DESC, id DESC
			LIMIT $3
		`, videoContentColumns)
		rows, err = r.conn.Query(ctx, query, string(filter.Language), string(filter.Level), limit)
	} else {
		// Row comparison keeps the keyset stable under concurrent publishes.
		query := fmt.Sprintf(`
			SELECT %s
			FROM video_contents
			WHERE language = $1 AND level = $2 AND status = 'published'
			  AND (published_at, id) < ($3, $4)
			ORDER BY published_at DESC, id DESC
			LIMIT $5
		`, videoContentColumns)
		rows, err = r.conn.Query(ctx, query, string(filter.Language), string(filter.Level), after.PublishedAt, after.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list feed page: %w", err)
	}
	defer rows.Close()

	return r.scanContentRows(rows)
}

func (r *ContentRepository) scanContent(row pgx.Row) (*content.VideoContent, error) {
	var vc content.VideoContent
	var language, level, status string

	err := row.Scan(
		&vc.ID,
		&vc.CreatorID,
		&language,
		&level,
		&vc.Title,
		&vc.Caption,
		&vc.VideoURL,
		&vc.ThumbnailURL,
		&status,
		&vc.PublishedAt,
		&vc.CreatedAt,
		&vc.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to scan content: %w", err)
	}

	vc.Language = shared.Language(language)
	vc.Level = shared.CEFRLevel(level)
	vc.Status = content.Status(status)

	return &vc, nil
}

func (r *ContentRepository) scanContentRows(rows pgx.Rows) ([]*content.VideoContent, error) {
	var items []*content.VideoContent
	for rows.Next() {
		vc, err := r.scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, vc)
	}
	return items, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// QuizRepository implements content.QuizRepository for PostgreSQL.
type QuizRepository struct {
	conn *Connection
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(conn *Connection) *QuizRepository {
	return &QuizRepository{conn: conn}
}

// Upsert replaces the quiz attached to a video. The old quiz and its
// questions are removed atomically.
func (r *QuizRepository) Upsert(ctx context.Context, quiz *content.Quiz) error {
	return r.conn.WithinTx(ctx, func(ctx context.Context) error {
		// Cascade removes the previous questions.
		if _, err := r.conn.Exec(ctx, `DELETE FROM quizzes WHERE content_id = $1`, quiz.ContentID); err != nil {
			return fmt.Errorf("failed to delete previous quiz: %w", err)
		}

		insertQuiz := `
			INSERT INTO quizzes (id, content_id, created_at)
			VALUES ($1, $2, $3)
		`
		if _, err := r.conn.Exec(ctx, insertQuiz, quiz.ID, quiz.ContentID, quiz.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert quiz: %w", err)
		}

		insertQuestion := `
			INSERT INTO quiz_questions (id, quiz_id, prompt, options, correct_option_index, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for _, question := range quiz.Questions {
			optionsJSON, err := json.Marshal(question.Options)
			if err != nil {
				return fmt.Errorf("failed to marshal options: %w", err)
			}

			_, err = r.conn.Exec(ctx, insertQuestion,
				question.ID,
				quiz.ID,
				question.Prompt,
				optionsJSON,
				question.CorrectOptionIndex,
				question.Position,
			)
			if err != nil {
				return fmt.Errorf("failed to insert question: %w", err)
			}
		}

		return nil
	})
}

// GetByContentID returns the quiz attached to a video.
func (r *QuizRepository) GetByContentID(ctx context.Context, contentID string) (*content.Quiz, error) {
	var quiz content.Quiz

	row := r.conn.QueryRow(ctx, `
		SELECT id, content_id, created_at
		FROM quizzes
		WHERE content_id = $1
	`, contentID)

	if err := row.Scan(&quiz.ID, &quiz.ContentID, &quiz.CreatedAt); err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to scan quiz: %w", err)
	}

	rows, err := r.conn.Query(ctx, `
		SELECT id, prompt, options, correct_option_index, position
		FROM quiz_questions
		WHERE quiz_id = $1
		ORDER BY position
	`, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var question content.Question
		var optionsJSON []byte

		err := rows.Scan(
			&question.ID,
			&question.Prompt,
			&optionsJSON,
			&question.CorrectOptionIndex,
			&question.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		if err := json.Unmarshal(optionsJSON, &question.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}

		quiz.Questions = append(quiz.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &quiz, nil
}

// ExistsByContentID reports whether a quiz is attached to a video.
func (r *QuizRepository) ExistsByContentID(ctx context.Context, contentID string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM quizzes WHERE content_id = $1)`,
		contentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check quiz existence: %w", err)
	}
	return exists, nil
}
