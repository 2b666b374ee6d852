package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ (Квиз, прикреплённый к видео 1:1)
// ══════════════════════════════════════════════════════════════════════════════

// Ограничения на структуру квиза.
const (
	// MinQuestions - минимальное количество вопросов в квизе.
	MinQuestions = 3
	// MaxQuestions - максимальное количество вопросов в квизе.
	MaxQuestions = 5
	// MinOptions - минимальное количество вариантов ответа.
	MinOptions = 2
	// MaxOptions - максимальное количество вариантов ответа.
	MaxOptions = 6
)

// Question представляет один вопрос квиза с вариантами ответа.
type Question struct {
	// ID - уникальный идентификатор вопроса (UUID).
	ID string

	// Prompt - текст вопроса.
	Prompt string

	// Options - варианты ответа (от 2 до 6).
	Options []string

	// CorrectOptionIndex - индекс правильного варианта.
	CorrectOptionIndex int

	// Position - позиция вопроса в квизе (0-based).
	Position int
}

// Validate проверяет корректность вопроса.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return shared.NewDomainError("content", "ValidateQuestion", shared.ErrEmptyValue, "question prompt cannot be empty")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return shared.NewDomainError("content", "ValidateQuestion", shared.ErrValueOutOfRange,
			fmt.Sprintf("question must have between %d and %d options", MinOptions, MaxOptions))
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return shared.NewDomainError("content", "ValidateQuestion", shared.ErrEmptyValue, "option text cannot be empty")
		}
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return shared.NewDomainError("content", "ValidateQuestion", shared.ErrValueOutOfRange, "correct option index out of range")
	}
	return nil
}

// Quiz представляет квиз, прикреплённый к видео. Отношение 1:1.
type Quiz struct {
	// ID - уникальный идентификатор квиза (UUID).
	ID string

	// ContentID - идентификатор видео, к которому прикреплён квиз.
	ContentID string

	// Questions - вопросы квиза (от 3 до 5), в порядке Position.
	Questions []Question

	// CreatedAt - момент создания.
	CreatedAt time.Time
}

// NewQuiz создаёт квиз с валидацией структуры.
func NewQuiz(id, contentID string, questions []Question, now time.Time) (*Quiz, error) {
	q := &Quiz{
		ID:        id,
		ContentID: contentID,
		Questions: questions,
		CreatedAt: now,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate проверяет корректность квиза целиком.
func (q *Quiz) Validate() error {
	if len(q.Questions) < MinQuestions || len(q.Questions) > MaxQuestions {
		return shared.NewDomainError("content", "ValidateQuiz", shared.ErrValueOutOfRange,
			fmt.Sprintf("quiz must have between %d and %d questions", MinQuestions, MaxQuestions))
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuestionCount возвращает количество вопросов.
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}
