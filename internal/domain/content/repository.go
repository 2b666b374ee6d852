package content

import (
	"context"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции для работы с видео-контентом.
type Repository interface {
	// Create создаёт новый черновик видео.
	Create(ctx context.Context, content *VideoContent) error

	// GetByID возвращает видео по ID.
	// Возвращает ErrContentNotFound, если видео не найдено.
	GetByID(ctx context.Context, id string) (*VideoContent, error)

	// Update обновляет данные видео (статус, published_at, метаданные).
	// Возвращает ErrContentNotFound, если видео не найдено.
	Update(ctx context.Context, content *VideoContent) error

	// ListByCreator возвращает видео автора, новые первыми.
	ListByCreator(ctx context.Context, creatorID string) ([]*VideoContent, error)

	// ListFeedPage возвращает страницу опубликованных видео по фильтру,
	// упорядоченных по (published_at DESC, id DESC). Если after != nil,
	// возвращаются только записи строго после этого ключа в порядке ленты.
	// Запрашивается limit записей.
	ListFeedPage(ctx context.Context, filter FeedFilter, after *FeedKey, limit int) ([]*VideoContent, error)
}

// QuizRepository определяет операции для работы с квизами.
type QuizRepository interface {
	// Upsert создаёт или полностью заменяет квиз видео.
	Upsert(ctx context.Context, quiz *Quiz) error

	// GetByContentID возвращает квиз видео.
	// Возвращает ErrQuizNotFound, если квиз не найден.
	GetByContentID(ctx context.Context, contentID string) (*Quiz, error)

	// ExistsByContentID проверяет, прикреплён ли квиз к видео.
	ExistsByContentID(ctx context.Context, contentID string) (bool, error)
}

// FeedFilter задаёт фильтрацию ленты по профилю ученика.
type FeedFilter struct {
	// Language - изучаемый язык.
	Language shared.Language

	// Level - уровень CEFR.
	Level shared.CEFRLevel
}

// FeedKey - ключ позиции в ленте для keyset-пагинации.
// Однозначно определяет позицию в общем порядке (published_at DESC, id DESC).
type FeedKey struct {
	// PublishedAt - момент публикации последнего увиденного видео.
	PublishedAt time.Time

	// ID - идентификатор последнего увиденного видео (tiebreak).
	ID string
}
