package learner

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции для работы с профилями учеников.
type Repository interface {
	// Upsert создаёт или обновляет профиль ученика.
	Upsert(ctx context.Context, profile *Profile) error

	// GetByUserID возвращает профиль ученика.
	// Возвращает ErrProfileNotFound, если профиля нет.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}
