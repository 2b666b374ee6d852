// Package progress содержит доменную модель прогресса ученика LinguaClip:
// оценку попыток, начисление XP и серию активных дней.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package progress

import (
	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTEMPT SCORER (Оценка попытки)
// ══════════════════════════════════════════════════════════════════════════════

// ScoreResult представляет результат оценки попытки.
type ScoreResult struct {
	// CorrectCount - количество правильных ответов.
	CorrectCount int

	// TotalQuestions - общее количество вопросов.
	TotalQuestions int

	// ScorePercent - процент правильных ответов (0-100), округление half-up.
	ScorePercent int
}

// IsPerfect возвращает true при 100% результате.
func (r ScoreResult) IsPerfect() bool {
	return r.ScorePercent == 100
}

// Answer - ответ ученика на один вопрос квиза.
type Answer struct {
	// QuestionID - идентификатор вопроса.
	QuestionID string

	// SelectedIndex - выбранный индекс варианта ответа.
	SelectedIndex int
}

// Score оценивает набор ответов на квиз. Ответы привязаны к вопросам по
// QuestionID: требуется ровно один ответ на каждый вопрос квиза. Ссылка на
// чужой вопрос, повтор или пропуск вопроса - ошибка валидации, как и индекс
// варианта вне диапазона своего вопроса.
func Score(quiz *content.Quiz, answers []Answer) (ScoreResult, error) {
	total := quiz.QuestionCount()
	if len(answers) != total {
		return ScoreResult{}, shared.ErrAnswerCountMismatch
	}

	byID := make(map[string]*content.Question, total)
	for i := range quiz.Questions {
		byID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	selected := make(map[string]int, len(answers))
	for _, a := range answers {
		if _, known := byID[a.QuestionID]; !known {
			return ScoreResult{}, shared.ErrUnknownQuestion
		}
		if _, dup := selected[a.QuestionID]; dup {
			return ScoreResult{}, shared.ErrDuplicateAnswer
		}
		selected[a.QuestionID] = a.SelectedIndex
	}

	// Количества совпали, все ответы по делу и без дублей - покрытие полное.
	correct := 0
	for _, q := range quiz.Questions {
		idx := selected[q.ID]
		if idx < 0 || idx >= len(q.Options) {
			return ScoreResult{}, shared.ErrAnswerOutOfRange
		}
		if idx == q.CorrectOptionIndex {
			correct++
		}
	}

	return ScoreResult{
		CorrectCount:   correct,
		TotalQuestions: total,
		ScorePercent:   percentOf(correct, total),
	}, nil
}

// percentOf вычисляет процент с округлением half-up в целых числах.
func percentOf(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*100*2 + total) / (total * 2)
}
