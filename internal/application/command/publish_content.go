package command

import (
	"context"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PUBLISH CONTENT COMMAND
// Publishes an owned draft once its preconditions hold: a video file and a
// valid quiz. Re-publishing is idempotent and keeps the original timestamp.
// ══════════════════════════════════════════════════════════════════════════════

// PublishContentCommand identifies the draft to publish.
type PublishContentCommand struct {
	CreatorID string
	ContentID string
}

// Validate validates the command.
func (c PublishContentCommand) Validate() error {
	if c.CreatorID == "" {
		return shared.NewDomainError("content", "Publish", shared.ErrInvalidInput, "creator_id is required")
	}
	if c.ContentID == "" {
		return shared.NewDomainError("content", "Publish", shared.ErrInvalidInput, "content_id is required")
	}
	return nil
}

// PublishContentResult contains the published content.
type PublishContentResult struct {
	Content *content.VideoContent

	// AlreadyPublished is true when this call was an idempotent repeat.
	AlreadyPublished bool
}

// PublishContentHandler handles the PublishContentCommand.
type PublishContentHandler struct {
	contentRepo    content.Repository
	quizRepo       content.QuizRepository
	eventPublisher shared.EventPublisher
	clock          timeutil.Clock
}

// NewPublishContentHandler creates a new PublishContentHandler.
func NewPublishContentHandler(
	contentRepo content.Repository,
	quizRepo content.QuizRepository,
	eventPublisher shared.EventPublisher,
	clock timeutil.Clock,
) *PublishContentHandler {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &PublishContentHandler{
		contentRepo:    contentRepo,
		quizRepo:       quizRepo,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// Handle executes the publish content command.
func (h *PublishContentHandler) Handle(ctx context.Context, cmd PublishContentCommand) (*PublishContentResult, error) {
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
		return &PublishContentResult{Content: vc, AlreadyPublished: true}, nil
	}

	hasQuiz, err := h.quizRepo.ExistsByContentID(ctx, cmd.ContentID)
	if err != nil {
		return nil, err
	}

	if err := vc.Publish(hasQuiz, h.clock.Now()); err != nil {
		return nil, err
	}

	if err := h.contentRepo.Update(ctx, vc); err != nil {
		return nil, err
	}

	if h.eventPublisher != nil {
		_ = h.eventPublisher.Publish(shared.NewContentPublishedEvent(
			vc.ID, vc.CreatorID, vc.Language.String(), vc.Level.String(), *vc.PublishedAt,
		))
	}

	return &PublishContentResult{Content: vc}, nil
}
