package progress

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ ATTEMPT (Попытка прохождения квиза)
// ══════════════════════════════════════════════════════════════════════════════

// QuizAttempt - неизменяемый факт прохождения квиза учеником.
// Каждая попытка записывается, независимо от начисления XP.
type QuizAttempt struct {
	// ID - уникальный идентификатор попытки (UUID).
	ID string

	// UserID - идентификатор ученика.
	UserID string

	// ContentID - идентификатор видео.
	ContentID string

	// ScorePercent - процент правильных ответов (0-100).
	ScorePercent int

	// CorrectCount - количество правильных ответов.
	CorrectCount int

	// TotalQuestions - общее количество вопросов.
	TotalQuestions int

	// XPAwarded - начислено XP за эту попытку (0 при повторе в тот же день).
	XPAwarded int

	// CompletedAt - момент завершения попытки.
	CompletedAt time.Time
}

// NewQuizAttempt создаёт запись попытки из результата оценки.
func NewQuizAttempt(id, userID, contentID string, score ScoreResult, xpAwarded int, completedAt time.Time) *QuizAttempt {
	return &QuizAttempt{
		ID:             id,
		UserID:         userID,
		ContentID:      contentID,
		ScorePercent:   score.ScorePercent,
		CorrectCount:   score.CorrectCount,
		TotalQuestions: score.TotalQuestions,
		XPAwarded:      xpAwarded,
		CompletedAt:    completedAt.UTC(),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// XP EVENT (Запись в леджере XP)
// ══════════════════════════════════════════════════════════════════════════════

// XPEvent - неизменяемая запись о начислении XP. Уникальность по
// (UserID, ContentID, AwardedDateUTC) обеспечивает идемпотентность:
// за одно видео в один UTC-день XP начисляется не более одного раза.
type XPEvent struct {
	// ID - уникальный идентификатор записи (UUID).
	ID string

	// UserID - идентификатор ученика.
	UserID string

	// ContentID - идентификатор видео.
	ContentID string

	// Amount - размер начисления.
	Amount int

	// Reason - причина начисления.
	Reason XPReason

	// AwardedDateUTC - календарная дата начисления (YYYY-MM-DD, UTC).
	AwardedDateUTC string

	// CreatedAt - момент создания записи.
	CreatedAt time.Time
}
