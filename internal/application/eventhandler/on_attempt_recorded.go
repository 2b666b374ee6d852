// Package eventhandler содержит обработчики доменных событий.
package eventhandler

import (
	"context"
	"log/slog"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON ATTEMPT RECORDED HANDLER
// Обрабатывает событие записи попытки прохождения квиза.
//
// Снимок прогресса ученика кешируется на стороне чтения. Любая новая
// попытка делает кеш устаревшим: список последних попыток изменился,
// даже если XP не начислялся. Обработчик инвалидирует кеш.
// ═══════════════════════════════════════════════════════════════════════════

// ProgressCacheInvalidator инвалидирует закешированный снимок прогресса.
// Реализуется Redis-кешем прогресса.
type ProgressCacheInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// OnAttemptRecordedHandler обрабатывает событие записи попытки.
type OnAttemptRecordedHandler struct {
	cache  ProgressCacheInvalidator
	logger *slog.Logger
}

// NewOnAttemptRecordedHandler создаёт новый обработчик события попытки.
func NewOnAttemptRecordedHandler(cache ProgressCacheInvalidator, logger *slog.Logger) *OnAttemptRecordedHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &OnAttemptRecordedHandler{
		cache:  cache,
		logger: logger.With("handler", "on_attempt_recorded"),
	}
}

// Handle обрабатывает событие записи попытки.
// Реализует интерфейс shared.EventHandler.
func (h *OnAttemptRecordedHandler) Handle(event shared.Event) error {
	ctx := context.Background()

	attemptEvent, ok := event.(shared.AttemptRecordedEvent)
	if !ok {
		h.logger.Warn("received non-AttemptRecordedEvent",
			"event_type", event.EventType(),
		)
		return nil
	}

	h.logger.Info("processing attempt recorded event",
		"user_id", attemptEvent.UserID,
		"content_id", attemptEvent.ContentID,
		"score_percent", attemptEvent.ScorePercent,
	)

	if h.cache == nil {
		return nil
	}

	if err := h.cache.Invalidate(ctx, attemptEvent.UserID); err != nil {
		// Кеш не критичен: снимок протухнет по TTL.
		h.logger.Warn("failed to invalidate progress cache",
			"user_id", attemptEvent.UserID,
			"error", err,
		)
	}

	return nil
}

// EventType возвращает тип события, который обрабатывает этот handler.
func (h *OnAttemptRecordedHandler) EventType() shared.EventType {
	return shared.EventAttemptRecorded
}
