package progress

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции для работы с прогрессом ученика.
// Методы записи вызываются внутри транзакции Attempt Coordinator'а.
type Repository interface {
	// CreateAttempt сохраняет попытку прохождения квиза.
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error

	// RecordXPEvent вставляет запись в леджер XP.
	// Возвращает ErrXPAlreadyAwarded, если запись за эту
	// (user, content, дата UTC) уже существует.
	RecordXPEvent(ctx context.Context, event *XPEvent) error

	// GetStreak возвращает серию ученика.
	// Возвращает nil (без ошибки), если серии ещё нет.
	GetStreak(ctx context.Context, userID string) (*Streak, error)

	// SaveStreak создаёт или обновляет серию ученика.
	SaveStreak(ctx context.Context, streak *Streak) error

	// GetRecentAttempts возвращает последние попытки ученика, новые первыми.
	GetRecentAttempts(ctx context.Context, userID string, limit int) ([]*QuizAttempt, error)

	// AddTotalXP атомарно увеличивает накопленный XP ученика.
	// Возвращает новое значение.
	AddTotalXP(ctx context.Context, userID string, amount int) (int, error)

	// GetTotalXP возвращает накопленный XP ученика (0, если записей нет).
	GetTotalXP(ctx context.Context, userID string) (int, error)
}
