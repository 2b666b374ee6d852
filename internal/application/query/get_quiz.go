package query

import (
	"context"
	"errors"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET QUIZ QUERY
// Возвращает квиз видео для прохождения учеником. Правильные ответы
// в ответ не попадают. Черновики ученикам недоступны.
// ══════════════════════════════════════════════════════════════════════════════

// GetQuizQuery содержит параметры запроса квиза.
type GetQuizQuery struct {
	// ContentID - идентификатор видео.
	ContentID string
}

// Validate проверяет корректность параметров запроса.
func (q *GetQuizQuery) Validate() error {
	if q.ContentID == "" {
		return shared.NewDomainError("content", "GetQuiz", shared.ErrInvalidInput, "content_id is required")
	}
	return nil
}

// QuestionDTO - DTO вопроса без правильного ответа.
type QuestionDTO struct {
	// ID - идентификатор вопроса.
	ID string `json:"id"`

	// Prompt - текст вопроса.
	Prompt string `json:"prompt"`

	// Options - варианты ответа.
	Options []string `json:"options"`

	// Position - позиция вопроса.
	Position int `json:"position"`
}

// GetQuizResult содержит квиз для прохождения.
type GetQuizResult struct {
	// QuizID - идентификатор квиза.
	QuizID string `json:"quiz_id"`

	// ContentID - идентификатор видео.
	ContentID string `json:"content_id"`

	// Questions - вопросы в порядке Position.
	Questions []QuestionDTO `json:"questions"`
}

// GetQuizHandler обрабатывает запросы квиза.
type GetQuizHandler struct {
	contentRepo content.Repository
	quizRepo    content.QuizRepository
}

// NewGetQuizHandler создаёт новый обработчик запроса квиза.
func NewGetQuizHandler(contentRepo content.Repository, quizRepo content.QuizRepository) *GetQuizHandler {
	return &GetQuizHandler{
		contentRepo: contentRepo,
		quizRepo:    quizRepo,
	}
}

// Handle выполняет запрос квиза.
func (h *GetQuizHandler) Handle(ctx context.Context, q GetQuizQuery) (*GetQuizResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	vc, err := h.contentRepo.GetByID(ctx, q.ContentID)
	if err != nil {
		return nil, err
	}
	if !vc.IsPublished() {
		return nil, shared.ErrContentNotPublished
	}

	quiz, err := h.quizRepo.GetByContentID(ctx, q.ContentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrQuizMissing
		}
		return nil, err
	}

	result := &GetQuizResult{
		QuizID:    quiz.ID,
		ContentID: quiz.ContentID,
		Questions: make([]QuestionDTO, 0, len(quiz.Questions)),
	}
	for _, question := range quiz.Questions {
		result.Questions = append(result.Questions, QuestionDTO{
			ID:       question.ID,
			Prompt:   question.Prompt,
			Options:  question.Options,
			Position: question.Position,
		})
	}

	return result, nil
}
