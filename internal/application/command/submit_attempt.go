// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/progress"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

// UnitOfWork executes fn atomically. Repository calls made with the
// context passed to fn join the same transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT ATTEMPT COMMAND
// The core write path: score a quiz attempt, record it, decide the XP award
// through the idempotent ledger and advance the daily streak - all in one
// transaction.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitAttemptCommand contains the data for a quiz attempt submission.
type SubmitAttemptCommand struct {
	// UserID is the learner submitting the attempt.
	UserID string

	// ContentID is the video whose quiz is being attempted.
	ContentID string

	// Answers holds one selected option index per quiz question, keyed by
	// question id. Coverage must be exact: no missing, duplicate or unknown
	// question ids.
	Answers []progress.Answer

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c SubmitAttemptCommand) Validate() error {
	if c.UserID == "" {
		return shared.NewDomainError("progress", "SubmitAttempt", shared.ErrInvalidInput, "user_id is required")
	}
	if c.ContentID == "" {
		return shared.NewDomainError("progress", "SubmitAttempt", shared.ErrInvalidInput, "content_id is required")
	}
	if len(c.Answers) == 0 {
		return shared.NewDomainError("progress", "SubmitAttempt", shared.ErrInvalidInput, "answers are required")
	}
	for _, a := range c.Answers {
		if a.QuestionID == "" {
			return shared.NewDomainError("progress", "SubmitAttempt", shared.ErrInvalidInput, "answer question_id is required")
		}
	}
	return nil
}

// StreakSnapshot describes the streak state after the attempt.
type StreakSnapshot struct {
	CurrentStreakDays int    `json:"current_streak_days"`
	LastActiveDate    string `json:"last_active_date"` // YYYY-MM-DD, UTC
}

// SubmitAttemptResult contains the outcome of an attempt submission.
type SubmitAttemptResult struct {
	AttemptID      string         `json:"attempt_id"`
	ScorePercent   int            `json:"score_percent"`
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	XPAwarded      int            `json:"xp_awarded"`
	Streak         StreakSnapshot `json:"streak"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// SubmitAttemptHandler handles the SubmitAttemptCommand.
type SubmitAttemptHandler struct {
	contentRepo    content.Repository
	quizRepo       content.QuizRepository
	progressRepo   progress.Repository
	uow            UnitOfWork
	eventPublisher shared.EventPublisher
	clock          timeutil.Clock
}

// NewSubmitAttemptHandler creates a new SubmitAttemptHandler.
func NewSubmitAttemptHandler(
	contentRepo content.Repository,
	quizRepo content.QuizRepository,
	progressRepo progress.Repository,
	uow UnitOfWork,
	eventPublisher shared.EventPublisher,
	clock timeutil.Clock,
) *SubmitAttemptHandler {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}
	return &SubmitAttemptHandler{
		contentRepo:    contentRepo,
		quizRepo:       quizRepo,
		progressRepo:   progressRepo,
		uow:            uow,
		eventPublisher: eventPublisher,
		clock:          clock,
	}
}

// Handle executes the submit attempt command.
func (h *SubmitAttemptHandler) Handle(ctx context.Context, cmd SubmitAttemptCommand) (*SubmitAttemptResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	vc, err := h.contentRepo.GetByID(ctx, cmd.ContentID)
	if err != nil {
		return nil, err
	}
	if !vc.IsPublished() {
		return nil, shared.ErrContentNotPublished
	}

	quiz, err := h.quizRepo.GetByContentID(ctx, cmd.ContentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Published content always carries a quiz; a missing one is a
			// state conflict, not a lookup failure.
			return nil, shared.ErrQuizMissing
		}
		return nil, err
	}

	score, err := progress.Score(quiz, cmd.Answers)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	awardAmount := progress.ComputeAward(score.ScorePercent)

	var (
		attempt       *progress.QuizAttempt
		xpAwarded     int
		newTotalXP    int
		streak        *progress.Streak
		prevStreak    int
		streakChanged bool
	)

	err = h.uow.WithinTx(ctx, func(txCtx context.Context) error {
		// Ledger decision: one award per (user, content, UTC day). The
		// unique index is the idempotency anchor; a repeat submission
		// degrades the award to zero without erroring the transaction.
		event := &progress.XPEvent{
			ID:             uuid.NewString(),
			UserID:         cmd.UserID,
			ContentID:      cmd.ContentID,
			Amount:         awardAmount,
			Reason:         progress.ReasonQuizCompleted,
			AwardedDateUTC: timeutil.FormatDateStr(now),
			CreatedAt:      now,
		}

		switch ledgerErr := h.progressRepo.RecordXPEvent(txCtx, event); {
		case ledgerErr == nil:
			xpAwarded = awardAmount
			total, addErr := h.progressRepo.AddTotalXP(txCtx, cmd.UserID, awardAmount)
			if addErr != nil {
				return fmt.Errorf("submit_attempt: failed to add XP: %w", addErr)
			}
			newTotalXP = total
		case errors.Is(ledgerErr, shared.ErrXPAlreadyAwarded):
			xpAwarded = 0
		default:
			return fmt.Errorf("submit_attempt: ledger insert failed: %w", ledgerErr)
		}

		// The attempt itself is always recorded, awarded or not.
		attempt = progress.NewQuizAttempt(uuid.NewString(), cmd.UserID, cmd.ContentID, score, xpAwarded, now)
		if createErr := h.progressRepo.CreateAttempt(txCtx, attempt); createErr != nil {
			return fmt.Errorf("submit_attempt: failed to record attempt: %w", createErr)
		}

		// The streak advances on attempt completion regardless of the award.
		streak, err = h.progressRepo.GetStreak(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("submit_attempt: failed to load streak: %w", err)
		}
		if streak == nil {
			streak = progress.NewStreak(cmd.UserID)
		}
		prevStreak = streak.CurrentStreakDays
		streakChanged = streak.Advance(now)
		if streakChanged {
			if saveErr := h.progressRepo.SaveStreak(txCtx, streak); saveErr != nil {
				return fmt.Errorf("submit_attempt: failed to save streak: %w", saveErr)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	h.publishEvents(cmd, attempt, score, xpAwarded, newTotalXP, streak, prevStreak, streakChanged)

	return &SubmitAttemptResult{
		AttemptID:      attempt.ID,
		ScorePercent:   score.ScorePercent,
		CorrectCount:   score.CorrectCount,
		TotalQuestions: score.TotalQuestions,
		XPAwarded:      xpAwarded,
		Streak: StreakSnapshot{
			CurrentStreakDays: streak.CurrentStreakDays,
			LastActiveDate:    timeutil.FormatDateStr(*streak.LastActiveDate),
		},
	}, nil
}

// publishEvents emits domain events after the transaction commits.
// Event delivery is best-effort and never fails the submission.
func (h *SubmitAttemptHandler) publishEvents(
	cmd SubmitAttemptCommand,
	attempt *progress.QuizAttempt,
	score progress.ScoreResult,
	xpAwarded, newTotalXP int,
	streak *progress.Streak,
	prevStreak int,
	streakChanged bool,
) {
	if h.eventPublisher == nil {
		return
	}

	recorded := shared.NewAttemptRecordedEvent(
		attempt.ID, cmd.UserID, cmd.ContentID,
		score.ScorePercent, score.CorrectCount, score.TotalQuestions,
	)
	if cmd.CorrelationID != "" {
		recorded.BaseEvent = recorded.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(recorded)

	if xpAwarded > 0 {
		awarded := shared.NewXPAwardedEvent(cmd.UserID, cmd.ContentID, xpAwarded, newTotalXP, string(progress.ReasonQuizCompleted))
		if cmd.CorrelationID != "" {
			awarded.BaseEvent = awarded.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.eventPublisher.Publish(awarded)
	}

	if streakChanged {
		updated := shared.NewStreakUpdatedEvent(
			cmd.UserID, streak.CurrentStreakDays, prevStreak,
			timeutil.FormatDateStr(*streak.LastActiveDate),
		)
		if cmd.CorrelationID != "" {
			updated.BaseEvent = updated.BaseEvent.WithCorrelationID(cmd.CorrelationID)
		}
		_ = h.eventPublisher.Publish(updated)
	}
}
