package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE CONTENT COMMAND
// Creates a draft video for a creator. Drafts are invisible to learners
// until published.
// ══════════════════════════════════════════════════════════════════════════════

// CreateContentCommand contains the data for a new draft video.
type CreateContentCommand struct {
	CreatorID    string
	Language     string
	Level        string
	Title        string
	Caption      string
	VideoURL     string
	ThumbnailURL string
}

// Validate validates the command.
func (c CreateContentCommand) Validate() error {
	if c.CreatorID == "" {
		return shared.NewDomainError("content", "Create", shared.ErrInvalidInput, "creator_id is required")
	}
	return nil
}

// CreateContentResult contains the created draft.
type CreateContentResult struct {
	Content *content.VideoContent
}

// CreateContentHandler handles the CreateContentCommand.
type CreateContentHandler struct {
	contentRepo    content.Repository
	eventPublisher shared.EventPublisher
	clock          timeutil.Clock
}

// NewCreateContentHandler creates a new CreateContentHandler.
func NewCreateContentHandler(contentRepo content.Repository, eventPublisher shared.EventPublisher, clock timeutil.Clock) *CreateContentHandler {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &CreateContentHandler{
		contentRepo:    contentRepo,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// Handle executes the create content command.
func (h *CreateContentHandler) Handle(ctx context.Context, cmd CreateContentCommand) (*CreateContentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	language, err := shared.NewLanguage(cmd.Language)
	if err != nil {
		return nil, err
	}
	level, err := shared.NewCEFRLevel(cmd.Level)
	if err != nil {
		return nil, err
	}

	vc, err := content.NewVideoContent(uuid.NewString(), cmd.CreatorID, language, level, cmd.Title, h.clock.Now())
	if err != nil {
		return nil, err
	}
	vc.Caption = cmd.Caption
	vc.VideoURL = cmd.VideoURL
	vc.ThumbnailURL = cmd.ThumbnailURL

	if err := h.contentRepo.Create(ctx, vc); err != nil {
		return nil, err
	}

	if h.eventPublisher != nil {
		_ = h.eventPublisher.Publish(shared.NewContentCreatedEvent(vc.ID, vc.CreatorID))
	}

	return &CreateContentResult{Content: vc}, nil
}
