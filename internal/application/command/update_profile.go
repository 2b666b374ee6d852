package command

import (
	"context"
	"errors"

	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE COMMAND
// Learner onboarding: creates the profile on first call, updates the
// target language and level on subsequent calls.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileCommand contains the learner's preferences.
type UpdateProfileCommand struct {
	UserID         string
	TargetLanguage string
	Level          string
}

// Validate validates the command.
func (c UpdateProfileCommand) Validate() error {
	if c.UserID == "" {
		return shared.NewDomainError("learner", "UpdateProfile", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// UpdateProfileResult contains the stored profile.
type UpdateProfileResult struct {
	Profile *learner.Profile

	// Created is true when the profile did not exist before.
	Created bool
}

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	learnerRepo    learner.Repository
	eventPublisher shared.EventPublisher
	clock          timeutil.Clock
}

// NewUpdateProfileHandler creates a new UpdateProfileHandler.
func NewUpdateProfileHandler(learnerRepo learner.Repository, eventPublisher shared.EventPublisher, clock timeutil.Clock) *UpdateProfileHandler {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &UpdateProfileHandler{
		learnerRepo:    learnerRepo,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// Handle executes the update profile command.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	language, err := shared.NewLanguage(cmd.TargetLanguage)
	if err != nil {
		return nil, err
	}
	level, err := shared.NewCEFRLevel(cmd.Level)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	created := false

	profile, err := h.learnerRepo.GetByUserID(ctx, cmd.UserID)
	switch {
	case err == nil:
		if updErr := profile.UpdatePreferences(language, level, now); updErr != nil {
			return nil, updErr
		}
	case errors.Is(err, shared.ErrNotFound):
		profile, err = learner.NewProfile(cmd.UserID, language, level, now)
		if err != nil {
			return nil, err
		}
		created = true
	default:
		return nil, err
	}

	if err := h.learnerRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	if h.eventPublisher != nil {
		_ = h.eventPublisher.Publish(shared.NewProfileUpdatedEvent(cmd.UserID, language.String(), level.String()))
	}

	return &UpdateProfileResult{Profile: profile, Created: created}, nil
}
