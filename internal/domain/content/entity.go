// Package content содержит доменную модель видео-контента LinguaClip.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package content

import (
	"strings"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status определяет статус публикации видео.
type Status string

const (
	// StatusDraft - черновик, виден только автору.
	StatusDraft Status = "draft"
	// StatusPublished - опубликован, доступен в ленте.
	StatusPublished Status = "published"
)

// IsValid проверяет, что статус корректен.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// ══════════════════════════════════════════════════════════════════════════════
// VIDEO CONTENT ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// VideoContent представляет короткое обучающее видео с прикреплённым квизом.
type VideoContent struct {
	// ID - уникальный идентификатор (UUID).
	ID string

	// CreatorID - идентификатор автора.
	CreatorID string

	// Language - язык, который изучается через это видео.
	Language shared.Language

	// Level - уровень CEFR, на который рассчитано видео.
	Level shared.CEFRLevel

	// Title - название видео.
	Title string

	// Caption - подпись/описание (опционально).
	Caption string

	// VideoURL - ссылка на видеофайл. Обязательна для публикации.
	VideoURL string

	// ThumbnailURL - ссылка на превью (опционально).
	ThumbnailURL string

	// Status - текущий статус публикации.
	Status Status

	// PublishedAt - момент первой публикации. Устанавливается ровно один раз.
	PublishedAt *time.Time

	// CreatedAt - момент создания черновика.
	CreatedAt time.Time

	// UpdatedAt - момент последнего изменения.
	UpdatedAt time.Time
}

// NewVideoContent создаёт новый черновик видео.
func NewVideoContent(id, creatorID string, language shared.Language, level shared.CEFRLevel, title string, now time.Time) (*VideoContent, error) {
	if !language.IsValid() {
		return nil, shared.ErrInvalidLanguage
	}
	if !level.IsValid() {
		return nil, shared.ErrInvalidCEFRLevel
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("content", "Create", shared.ErrEmptyValue, "title cannot be empty")
	}

	return &VideoContent{
		ID:        id,
		CreatorID: creatorID,
		Language:  language,
		Level:     level,
		Title:     title,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsPublished возвращает true, если видео опубликовано.
func (v *VideoContent) IsPublished() bool {
	return v.Status == StatusPublished
}

// IsOwnedBy проверяет, принадлежит ли видео указанному автору.
func (v *VideoContent) IsOwnedBy(creatorID string) bool {
	return v.CreatorID == creatorID
}

// CanPublish проверяет предусловия публикации: видео-файл загружен
// и прикреплён валидный квиз. Квиз проверяется отдельно (hasQuiz).
func (v *VideoContent) CanPublish(hasQuiz bool) error {
	if strings.TrimSpace(v.VideoURL) == "" {
		return shared.ErrVideoURLMissing
	}
	if !hasQuiz {
		return shared.ErrQuizMissing
	}
	return nil
}

// Publish переводит видео в статус published. Повторная публикация
// идемпотентна: PublishedAt не меняется.
func (v *VideoContent) Publish(hasQuiz bool, now time.Time) error {
	if v.IsPublished() {
		return nil
	}
	if err := v.CanPublish(hasQuiz); err != nil {
		return err
	}

	publishedAt := now.UTC()
	v.Status = StatusPublished
	v.PublishedAt = &publishedAt
	v.UpdatedAt = publishedAt
	return nil
}
