package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHOR QUIZ COMMAND
// Creates or fully replaces the quiz on an owned draft. Once the video is
// published its quiz is frozen.
// ══════════════════════════════════════════════════════════════════════════════

// QuestionInput describes one question as submitted by the creator.
type QuestionInput struct {
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

// AuthorQuizCommand contains the quiz to attach to a draft.
type AuthorQuizCommand struct {
	CreatorID string
	ContentID string
	Questions []QuestionInput
}

// Validate validates the command.
func (c AuthorQuizCommand) Validate() error {
	if c.CreatorID == "" {
		return shared.NewDomainError("content", "AuthorQuiz", shared.ErrInvalidInput, "creator_id is required")
	}
	if c.ContentID == "" {
		return shared.NewDomainError("content", "AuthorQuiz", shared.ErrInvalidInput, "content_id is required")
	}
	return nil
}

// AuthorQuizResult contains the stored quiz.
type AuthorQuizResult struct {
	Quiz *content.Quiz
}

// AuthorQuizHandler handles the AuthorQuizCommand.
type AuthorQuizHandler struct {
	contentRepo    content.Repository
	quizRepo       content.QuizRepository
	eventPublisher shared.EventPublisher
	clock          timeutil.Clock
}

// NewAuthorQuizHandler creates a new AuthorQuizHandler.
func NewAuthorQuizHandler(
	contentRepo content.Repository,
	quizRepo content.QuizRepository,
	eventPublisher shared.EventPublisher,
	clock timeutil.Clock,
) *AuthorQuizHandler {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &AuthorQuizHandler{
		contentRepo:    contentRepo,
		quizRepo:       quizRepo,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// Handle executes the author quiz command.
func (h *AuthorQuizHandler) Handle(ctx context.Context, cmd AuthorQuizCommand) (*AuthorQuizResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	vc, err := h.contentRepo.GetByID(ctx, cmd.ContentID)
	if err != nil {
		return nil, err
	}
	if !vc.IsOwnedBy(cmd.CreatorID) {
		return nil, shared.ErrContentNotOwned
	}
	if vc.IsPublished() {
		return nil, shared.ErrContentPublished
	}

	questions := make([]content.Question, 0, len(cmd.Questions))
	for i, in := range cmd.Questions {
		questions = append(questions, content.Question{
			ID:                 uuid.NewString(),
			Prompt:             in.Prompt,
			Options:            in.Options,
			CorrectOptionIndex: in.CorrectOptionIndex,
			Position:           i,
		})
	}

	quiz, err := content.NewQuiz(uuid.NewString(), cmd.ContentID, questions, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := h.quizRepo.Upsert(ctx, quiz); err != nil {
		return nil, err
	}

	if h.eventPublisher != nil {
		_ = h.eventPublisher.Publish(shared.NewQuizReplacedEvent(cmd.ContentID, quiz.ID, quiz.QuestionCount()))
	}

	return &AuthorQuizResult{Quiz: quiz}, nil
}
