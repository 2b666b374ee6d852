package eventhandler

import (
	"context"
	"log/slog"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON XP AWARDED HANDLER
//
// Ключевые функции:
// 1. Инвалидация кеша прогресса — total_xp изменился
// 2. Отметка рубежей XP в логах — сырьё для будущих достижений
// ═══════════════════════════════════════════════════════════════════════════

// XPAwardedConfig содержит конфигурацию обработчика.
type XPAwardedConfig struct {
	// XPMilestones — рубежи накопленного XP, которые отмечаются в логах.
	XPMilestones []int
}

// DefaultXPAwardedConfig возвращает конфигурацию по умолчанию.
func DefaultXPAwardedConfig() XPAwardedConfig {
	return XPAwardedConfig{
		XPMilestones: []int{100, 500, 1000, 5000, 10000},
	}
}

// OnXPAwardedHandler обрабатывает событие начисления XP.
type OnXPAwardedHandler struct {
	cache  ProgressCacheInvalidator
	logger *slog.Logger
	config XPAwardedConfig
}

// NewOnXPAwardedHandler создаёт новый обработчик события начисления XP.
func NewOnXPAwardedHandler(cache ProgressCacheInvalidator, logger *slog.Logger, config XPAwardedConfig) *OnXPAwardedHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &OnXPAwardedHandler{
		cache:  cache,
		logger: logger.With("handler", "on_xp_awarded"),
		config: config,
	}
}

// Handle обрабатывает событие начисления XP.
// Реализует интерфейс shared.EventHandler.
func (h *OnXPAwardedHandler) Handle(event shared.Event) error {
	ctx := context.Background()

	xpEvent, ok := event.(shared.XPAwardedEvent)
	if !ok {
		h.logger.Warn("received non-XPAwardedEvent",
			"event_type", event.EventType(),
		)
		return nil
	}

	h.logger.Info("processing xp awarded event",
		"user_id", xpEvent.UserID,
		"content_id", xpEvent.ContentID,
		"amount", xpEvent.Amount,
		"new_total", xpEvent.NewTotal,
	)

	h.checkMilestones(xpEvent)

	if h.cache == nil {
		return nil
	}

	if err := h.cache.Invalidate(ctx, xpEvent.UserID); err != nil {
		h.logger.Warn("failed to invalidate progress cache",
			"user_id", xpEvent.UserID,
			"error", err,
		)
	}

	return nil
}

// checkMilestones отмечает пересечение рубежей накопленного XP.
func (h *OnXPAwardedHandler) checkMilestones(event shared.XPAwardedEvent) {
	previousTotal := event.NewTotal - event.Amount

	for _, milestone := range h.config.XPMilestones {
		if previousTotal < milestone && event.NewTotal >= milestone {
			h.logger.Info("xp milestone reached",
				"user_id", event.UserID,
				"milestone", milestone,
				"total_xp", event.NewTotal,
			)
		}
	}
}

// EventType возвращает тип события, который обрабатывает этот handler.
func (h *OnXPAwardedHandler) EventType() shared.EventType {
	return shared.EventXPAwarded
}
