// Package learner содержит доменную модель профиля ученика LinguaClip.
package learner

import (
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER PROFILE (Профиль ученика)
// ══════════════════════════════════════════════════════════════════════════════

// Profile представляет профиль ученика: что он учит и его прогресс.
// Профиль создаётся при онбординге и обязателен для доступа к ленте.
type Profile struct {
	// UserID - идентификатор пользователя.
	UserID string

	// TargetLanguage - изучаемый язык.
	TargetLanguage shared.Language

	// Level - текущий уровень CEFR.
	Level shared.CEFRLevel

	// CreatedAt - момент создания профиля.
	CreatedAt time.Time

	// UpdatedAt - момент последнего изменения.
	UpdatedAt time.Time
}

// NewProfile создаёт профиль ученика с валидацией.
func NewProfile(userID string, targetLanguage shared.Language, level shared.CEFRLevel, now time.Time) (*Profile, error) {
	if !targetLanguage.IsValid() {
		return nil, shared.ErrInvalidLanguage
	}
	if !level.IsValid() {
		return nil, shared.ErrInvalidCEFRLevel
	}

	return &Profile{
		UserID:         userID,
		TargetLanguage: targetLanguage,
		Level:          level,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// UpdatePreferences меняет изучаемый язык и уровень.
func (p *Profile) UpdatePreferences(targetLanguage shared.Language, level shared.CEFRLevel, now time.Time) error {
	if !targetLanguage.IsValid() {
		return shared.ErrInvalidLanguage
	}
	if !level.IsValid() {
		return shared.ErrInvalidCEFRLevel
	}

	p.TargetLanguage = targetLanguage
	p.Level = level
	p.UpdatedAt = now
	return nil
}
