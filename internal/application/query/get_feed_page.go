// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET FEED PAGE QUERY
// Возвращает страницу ленты опубликованных видео под профиль ученика.
// Keyset-пагинация по (published_at DESC, id DESC) с непрозрачным курсором:
// вставки новых видео между запросами не сдвигают и не дублируют записи.
// ══════════════════════════════════════════════════════════════════════════════

// Лимиты страницы ленты.
const (
	// DefaultFeedLimit - размер страницы по умолчанию.
	DefaultFeedLimit = 10
	// MaxFeedLimit - максимальный размер страницы.
	MaxFeedLimit = 50
)

// GetFeedPageQuery содержит параметры запроса ленты.
type GetFeedPageQuery struct {
	// UserID - идентификатор ученика. Лента строится по его профилю.
	UserID string

	// Limit - размер страницы (0 = по умолчанию).
	Limit int

	// Cursor - непрозрачный курсор предыдущей страницы (пусто = сначала).
	Cursor string
}

// Validate проверяет корректность параметров запроса.
func (q *GetFeedPageQuery) Validate() error {
	if q.UserID == "" {
		return shared.NewDomainError("feed", "GetPage", shared.ErrInvalidInput, "user_id is required")
	}
	if q.Limit == 0 {
		q.Limit = DefaultFeedLimit
	}
	if q.Limit < 0 || q.Limit > MaxFeedLimit {
		return shared.ErrInvalidLimit
	}
	return nil
}

// FeedItemDTO - DTO одного видео в ленте.
type FeedItemDTO struct {
	// ID - идентификатор видео.
	ID string `json:"id"`

	// CreatorID - идентификатор автора.
	CreatorID string `json:"creator_id"`

	// Language - язык видео.
	Language string `json:"language"`

	// Level - уровень CEFR.
	Level string `json:"level"`

	// Title - название.
	Title string `json:"title"`

	// Caption - подпись (может быть пустой).
	Caption string `json:"caption,omitempty"`

	// VideoURL - ссылка на видео.
	VideoURL string `json:"video_url"`

	// ThumbnailURL - ссылка на превью (может быть пустой).
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// Status - статус публикации (всегда published в ленте).
	Status string `json:"status"`

	// PublishedAt - момент публикации.
	PublishedAt time.Time `json:"published_at"`
}

// GetFeedPageResult содержит страницу ленты.
type GetFeedPageResult struct {
	// Items - видео страницы в порядке ленты.
	Items []FeedItemDTO `json:"items"`

	// NextCursor - курсор следующей страницы.
	// Пустая строка означает конец ленты.
	NextCursor string `json:"next_cursor,omitempty"`
}

// GetFeedPageHandler обрабатывает запросы страницы ленты.
type GetFeedPageHandler struct {
	learnerRepo learner.Repository
	contentRepo content.Repository
}

// NewGetFeedPageHandler создаёт новый обработчик запроса ленты.
func NewGetFeedPageHandler(learnerRepo learner.Repository, contentRepo content.Repository) *GetFeedPageHandler {
	return &GetFeedPageHandler{
		learnerRepo: learnerRepo,
		contentRepo: contentRepo,
	}
}

// Handle выполняет запрос страницы ленты.
// Требует заполненного профиля ученика (иначе ErrProfileNotFound).
func (h *GetFeedPageHandler) Handle(ctx context.Context, q GetFeedPageQuery) (*GetFeedPageResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.learnerRepo.GetByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	var after *content.FeedKey
	if q.Cursor != "" {
		key, decodeErr := DecodeFeedCursor(q.Cursor)
		if decodeErr != nil {
			return nil, decodeErr
		}
		after = key
	}

	// Запрашиваем на одну запись больше, чтобы узнать, есть ли следующая
	// страница, не считая общее количество.
	items, err := h.contentRepo.ListFeedPage(ctx, content.FeedFilter{
		Language: profile.TargetLanguage,
		Level:    profile.Level,
	}, after, q.Limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > q.Limit
	if hasMore {
		items = items[:q.Limit]
	}

	result := &GetFeedPageResult{Items: make([]FeedItemDTO, 0, len(items))}
	for _, vc := range items {
		result.Items = append(result.Items, FeedItemDTO{
			ID:           vc.ID,
			CreatorID:    vc.CreatorID,
			Language:     vc.Language.String(),
			Level:        vc.Level.String(),
			Title:        vc.Title,
			Caption:      vc.Caption,
			VideoURL:     vc.VideoURL,
			ThumbnailURL: vc.ThumbnailURL,
			Status:       string(vc.Status),
			PublishedAt:  *vc.PublishedAt,
		})
	}

	if hasMore {
		last := items[len(items)-1]
		result.NextCursor = EncodeFeedCursor(content.FeedKey{
			PublishedAt: *last.PublishedAt,
			ID:          last.ID,
		})
	}

	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// FEED CURSOR
// Курсор - base64url от JSON с ключом последней увиденной записи.
// Формат непрозрачен для клиента и не является стабильным API.
// ══════════════════════════════════════════════════════════════════════════════

type feedCursorPayload struct {
	PublishedAt string `json:"p"`
	ID          string `json:"i"`
}

// EncodeFeedCursor кодирует ключ позиции в непрозрачный курсор.
func EncodeFeedCursor(key content.FeedKey) string {
	payload := feedCursorPayload{
		PublishedAt: key.PublishedAt.UTC().Format(time.RFC3339Nano),
		ID:          key.ID,
	}
	raw, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeFeedCursor декодирует курсор обратно в ключ позиции.
// Любой некорректный курсор - ошибка валидации.
func DecodeFeedCursor(cursor string) (*content.FeedKey, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, shared.ErrInvalidCursor
	}

	var payload feedCursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, shared.ErrInvalidCursor
	}
	if payload.ID == "" || payload.PublishedAt == "" {
		return nil, shared.ErrInvalidCursor
	}

	publishedAt, err := time.Parse(time.RFC3339Nano, payload.PublishedAt)
	if err != nil {
		return nil, shared.ErrInvalidCursor
	}

	return &content.FeedKey{PublishedAt: publishedAt, ID: payload.ID}, nil
}
