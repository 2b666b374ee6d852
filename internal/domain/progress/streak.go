package progress

import (
	"time"

	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK (Серия активных дней)
// ══════════════════════════════════════════════════════════════════════════════

// Streak представляет серию активных дней ученика.
// Все переходы вычисляются по календарным дням UTC.
type Streak struct {
	// UserID - идентификатор ученика.
	UserID string

	// CurrentStreakDays - текущая длина серии в днях.
	CurrentStreakDays int

	// BestStreakDays - лучшая серия за всё время.
	BestStreakDays int

	// LastActiveDate - дата последней активности (полночь UTC).
	// nil, если активности ещё не было.
	LastActiveDate *time.Time
}

// NewStreak создаёт пустой трекер серии для ученика.
func NewStreak(userID string) *Streak {
	return &Streak{
		UserID:            userID,
		CurrentStreakDays: 0,
		BestStreakDays:    0,
		LastActiveDate:    nil,
	}
}

// Advance записывает активность в момент now и возвращает true,
// если состояние серии изменилось. Переходы:
//   - активности не было      -> серия = 1
//   - тот же день             -> без изменений
//   - следующий день          -> серия + 1
//   - пропуск >= 2 дней       -> серия = 1
//
// Дата в будущем относительно now (рассинхронизация часов) трактуется
// как повторная активность в тот же день.
func (s *Streak) Advance(now time.Time) bool {
	today := timeutil.DateOf(now)

	if s.LastActiveDate == nil {
		s.start(today)
		return true
	}

	daysDiff := timeutil.DaysBetween(*s.LastActiveDate, today)

	switch {
	case daysDiff <= 0:
		// Тот же день (или дата из будущего) - ничего не меняем.
		return false
	case daysDiff == 1:
		s.CurrentStreakDays++
		if s.CurrentStreakDays > s.BestStreakDays {
			s.BestStreakDays = s.CurrentStreakDays
		}
	default:
		s.CurrentStreakDays = 1
	}

	s.LastActiveDate = &today
	return true
}

func (s *Streak) start(today time.Time) {
	s.CurrentStreakDays = 1
	if s.BestStreakDays < 1 {
		s.BestStreakDays = 1
	}
	s.LastActiveDate = &today
}

// IsBroken проверяет, прервана ли серия относительно момента now
// (последняя активность была позавчера или раньше).
func (s *Streak) IsBroken(now time.Time) bool {
	if s.LastActiveDate == nil {
		return false
	}
	return timeutil.DaysBetween(*s.LastActiveDate, timeutil.DateOf(now)) > 1
}
