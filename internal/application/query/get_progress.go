package query

import (
	"context"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/progress"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROGRESS QUERY
// Возвращает снимок прогресса ученика: накопленный XP, серию и последние
// попытки. Работает и до онбординга - тогда все значения нулевые.
// ══════════════════════════════════════════════════════════════════════════════

// RecentAttemptsLimit - максимум последних попыток в снимке прогресса.
const RecentAttemptsLimit = 10

// GetProgressQuery содержит параметры запроса прогресса.
type GetProgressQuery struct {
	// UserID - идентификатор ученика.
	UserID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetProgressQuery) Validate() error {
	if q.UserID == "" {
		return shared.NewDomainError("progress", "GetProgress", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// AttemptDTO - DTO одной попытки в снимке прогресса.
type AttemptDTO struct {
	// AttemptID - идентификатор попытки.
	AttemptID string `json:"attempt_id"`

	// ContentID - идентификатор видео.
	ContentID string `json:"content_id"`

	// ScorePercent - процент правильных ответов.
	ScorePercent int `json:"score_percent"`

	// CorrectCount - количество правильных ответов.
	CorrectCount int `json:"correct_count"`

	// TotalQuestions - общее количество вопросов.
	TotalQuestions int `json:"total_questions"`

	// XPAwarded - начислено XP за попытку.
	XPAwarded int `json:"xp_awarded"`

	// CompletedAt - момент завершения.
	CompletedAt time.Time `json:"completed_at"`
}

// GetProgressResult содержит снимок прогресса ученика.
type GetProgressResult struct {
	// TotalXP - накопленный XP.
	TotalXP int `json:"total_xp"`

	// CurrentStreakDays - текущая серия активных дней.
	CurrentStreakDays int `json:"current_streak_days"`

	// LastActiveDate - дата последней активности (YYYY-MM-DD, UTC).
	// Пустая строка, если активности не было.
	LastActiveDate string `json:"last_active_date,omitempty"`

	// RecentAttempts - последние попытки, новые первыми (максимум 10).
	RecentAttempts []AttemptDTO `json:"recent_attempts"`
}

// ProgressCache кеширует снимки прогресса (реализация - Redis).
// Промах кеша сигнализируется ошибкой shared.ErrNotFound.
type ProgressCache interface {
	// GetSnapshot возвращает закешированный снимок прогресса.
	GetSnapshot(ctx context.Context, userID string) (*GetProgressResult, error)

	// SetSnapshot сохраняет снимок прогресса.
	SetSnapshot(ctx context.Context, userID string, result *GetProgressResult) error

	// Invalidate удаляет снимок из кеша.
	Invalidate(ctx context.Context, userID string) error
}

// GetProgressHandler обрабатывает запросы снимка прогресса.
type GetProgressHandler struct {
	progressRepo progress.Repository
	cache        ProgressCache // может быть nil
}

// NewGetProgressHandler создаёт новый обработчик запроса прогресса.
func NewGetProgressHandler(progressRepo progress.Repository, cache ProgressCache) *GetProgressHandler {
	return &GetProgressHandler{
		progressRepo: progressRepo,
		cache:        cache,
	}
}

// Handle выполняет запрос снимка прогресса.
func (h *GetProgressHandler) Handle(ctx context.Context, q GetProgressQuery) (*GetProgressResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	// Деградация кеша никогда не является ошибкой пути чтения.
	if h.cache != nil {
		if cached, err := h.cache.GetSnapshot(ctx, q.UserID); err == nil && cached != nil {
			return cached, nil
		}
	}

	totalXP, err := h.progressRepo.GetTotalXP(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	streak, err := h.progressRepo.GetStreak(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	attempts, err := h.progressRepo.GetRecentAttempts(ctx, q.UserID, RecentAttemptsLimit)
	if err != nil {
		return nil, err
	}

	result := &GetProgressResult{
		TotalXP:        totalXP,
		RecentAttempts: make([]AttemptDTO, 0, len(attempts)),
	}
	if streak != nil {
		result.CurrentStreakDays = streak.CurrentStreakDays
		if streak.LastActiveDate != nil {
			result.LastActiveDate = timeutil.FormatDateStr(*streak.LastActiveDate)
		}
	}
	for _, a := range attempts {
		result.RecentAttempts = append(result.RecentAttempts, AttemptDTO{
			AttemptID:      a.ID,
			ContentID:      a.ContentID,
			ScorePercent:   a.ScorePercent,
			CorrectCount:   a.CorrectCount,
			TotalQuestions: a.TotalQuestions,
			XPAwarded:      a.XPAwarded,
			CompletedAt:    a.CompletedAt,
		})
	}

	if h.cache != nil {
		_ = h.cache.SetSnapshot(ctx, q.UserID, result)
	}

	return result, nil
}
