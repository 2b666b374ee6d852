package query

import (
	"context"

	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROFILE QUERY
// Возвращает профиль ученика.
// ══════════════════════════════════════════════════════════════════════════════

// GetProfileQuery содержит параметры запроса профиля.
type GetProfileQuery struct {
	// UserID - идентификатор ученика.
	UserID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetProfileQuery) Validate() error {
	if q.UserID == "" {
		return shared.NewDomainError("learner", "GetProfile", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// GetProfileResult содержит профиль ученика.
type GetProfileResult struct {
	UserID         string `json:"user_id"`
	TargetLanguage string `json:"target_language"`
	Level          string `json:"level"`
}

// GetProfileHandler обрабатывает запросы профиля.
type GetProfileHandler struct {
	learnerRepo learner.Repository
}

// NewGetProfileHandler создаёт новый обработчик запроса профиля.
func NewGetProfileHandler(learnerRepo learner.Repository) *GetProfileHandler {
	return &GetProfileHandler{learnerRepo: learnerRepo}
}

// Handle выполняет запрос профиля.
func (h *GetProfileHandler) Handle(ctx context.Context, q GetProfileQuery) (*GetProfileResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.learnerRepo.GetByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	return &GetProfileResult{
		UserID:         profile.UserID,
		TargetLanguage: profile.TargetLanguage.String(),
		Level:          profile.Level.String(),
	}, nil
}
