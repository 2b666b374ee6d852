package eventhandler

import (
	"context"
	"log/slog"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON STREAK UPDATED HANDLER
//
// Ключевые функции:
// 1. Инвалидация кеша прогресса — серия изменилась
// 2. Отметка рубежей серии и её обрывов в логах
// ═══════════════════════════════════════════════════════════════════════════

// StreakUpdatedConfig содержит конфигурацию обработчика.
type StreakUpdatedConfig struct {
	// StreakMilestones — рубежи серии в днях, которые отмечаются в логах.
	StreakMilestones []int
}

// DefaultStreakUpdatedConfig возвращает конфигурацию по умолчанию.
func DefaultStreakUpdatedConfig() StreakUpdatedConfig {
	return StreakUpdatedConfig{
		StreakMilestones: []int{7, 14, 30, 100, 365},
	}
}

// OnStreakUpdatedHandler обрабатывает событие изменения серии.
type OnStreakUpdatedHandler struct {
	cache  ProgressCacheInvalidator
	logger *slog.Logger
	config StreakUpdatedConfig
}

// NewOnStreakUpdatedHandler создаёт новый обработчик события серии.
func NewOnStreakUpdatedHandler(cache ProgressCacheInvalidator, logger *slog.Logger, config StreakUpdatedConfig) *OnStreakUpdatedHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &OnStreakUpdatedHandler{
		cache:  cache,
		logger: logger.With("handler", "on_streak_updated"),
		config: config,
	}
}

// Handle обрабатывает событие изменения серии.
// Реализует интерфейс shared.EventHandler.
func (h *OnStreakUpdatedHandler) Handle(event shared.Event) error {
	ctx := context.Background()

	streakEvent, ok := event.(shared.StreakUpdatedEvent)
	if !ok {
		h.logger.Warn("received non-StreakUpdatedEvent",
			"event_type", event.EventType(),
		)
		return nil
	}

	h.logger.Info("processing streak updated event",
		"user_id", streakEvent.UserID,
		"streak_days", streakEvent.StreakDays,
		"previous_streak", streakEvent.PreviousStreak,
		"active_date", streakEvent.ActiveDate,
	)

	// Обрыв серии: было больше одного дня, стало один.
	if streakEvent.StreakDays == 1 && streakEvent.PreviousStreak > 1 {
		h.logger.Info("streak reset",
			"user_id", streakEvent.UserID,
			"previous_streak", streakEvent.PreviousStreak,
		)
	}

	for _, milestone := range h.config.StreakMilestones {
		if streakEvent.StreakDays == milestone {
			h.logger.Info("streak milestone reached",
				"user_id", streakEvent.UserID,
				"milestone", milestone,
			)
		}
	}

	if h.cache == nil {
		return nil
	}

	if err := h.cache.Invalidate(ctx, streakEvent.UserID); err != nil {
		h.logger.Warn("failed to invalidate progress cache",
			"user_id", streakEvent.UserID,
			"error", err,
		)
	}

	return nil
}

// EventType возвращает тип события, который обрабатывает этот handler.
func (h *OnStreakUpdatedHandler) EventType() shared.EventType {
	return shared.EventStreakUpdated
}
