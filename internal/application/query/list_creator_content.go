package query

import (
	"context"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST CREATOR CONTENT QUERY
// Возвращает все видео автора (включая черновики), новые первыми.
// ══════════════════════════════════════════════════════════════════════════════

// ListCreatorContentQuery содержит параметры запроса.
type ListCreatorContentQuery struct {
	// CreatorID - идентификатор автора.
	CreatorID string
}

// Validate проверяет корректность параметров запроса.
func (q *ListCreatorContentQuery) Validate() error {
	if q.CreatorID == "" {
		return shared.NewDomainError("content", "ListByCreator", shared.ErrInvalidInput, "creator_id is required")
	}
	return nil
}

// CreatorContentDTO - DTO видео в списке автора.
type CreatorContentDTO struct {
	ID           string     `json:"id"`
	Language     string     `json:"language"`
	Level        string     `json:"level"`
	Title        string     `json:"title"`
	Caption      string     `json:"caption,omitempty"`
	VideoURL     string     `json:"video_url,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Status       string     `json:"status"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ListCreatorContentResult содержит список видео автора.
type ListCreatorContentResult struct {
	Items []CreatorContentDTO `json:"items"`
}

// ListCreatorContentHandler обрабатывает запросы списка видео автора.
type ListCreatorContentHandler struct {
	contentRepo content.Repository
}

// NewListCreatorContentHandler создаёт новый обработчик.
func NewListCreatorContentHandler(contentRepo content.Repository) *ListCreatorContentHandler {
	return &ListCreatorContentHandler{contentRepo: contentRepo}
}

// Handle выполняет запрос списка видео автора.
func (h *ListCreatorContentHandler) Handle(ctx context.Context, q ListCreatorContentQuery) (*ListCreatorContentResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	items, err := h.contentRepo.ListByCreator(ctx, q.CreatorID)
	if err != nil {
		return nil, err
	}

	result := &ListCreatorContentResult{Items: make([]CreatorContentDTO, 0, len(items))}
	for _, vc := range items {
		result.Items = append(result.Items, CreatorContentDTO{
			ID:           vc.ID,
			Language:     vc.Language.String(),
			Level:        vc.Level.String(),
			Title:        vc.Title,
			Caption:      vc.Caption,
			VideoURL:     vc.VideoURL,
			ThumbnailURL: vc.ThumbnailURL,
			Status:       string(vc.Status),
			PublishedAt:  vc.PublishedAt,
			CreatedAt:    vc.CreatedAt,
		})
	}

	return result, nil
}
