// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"encoding/json"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
// Each event represents something significant that happened in the domain.
const (
	// Content events
	EventContentCreated   EventType = "content.created"
	EventContentPublished EventType = "content.published"
	EventQuizReplaced     EventType = "content.quiz_replaced"

	// Learner events
	EventProfileUpdated EventType = "learner.profile_updated"

	// Progress events
	EventAttemptRecorded EventType = "progress.attempt_recorded"
	EventXPAwarded       EventType = "progress.xp_awarded"
	EventStreakUpdated   EventType = "progress.streak_updated"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ═══════════════════════════════════════════════════════════════════════════
// Content Events
// ═══════════════════════════════════════════════════════════════════════════

// ContentCreatedEvent is emitted when a creator saves a new draft.
type ContentCreatedEvent struct {
	BaseEvent
	ContentID string `json:"content_id"`
	CreatorID string `json:"creator_id"`
}

// Payload implements Event interface.
func (e ContentCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"content_id": e.ContentID,
		"creator_id": e.CreatorID,
	}
}

// NewContentCreatedEvent creates a new ContentCreatedEvent.
func NewContentCreatedEvent(contentID, creatorID string) ContentCreatedEvent {
	return ContentCreatedEvent{
		BaseEvent: NewBaseEvent(EventContentCreated, contentID),
		ContentID: contentID,
		CreatorID: creatorID,
	}
}

// ContentPublishedEvent is emitted when a creator publishes a video.
type ContentPublishedEvent struct {
	BaseEvent
	ContentID   string    `json:"content_id"`
	CreatorID   string    `json:"creator_id"`
	Language    string    `json:"language"`
	Level       string    `json:"level"`
	PublishedAt time.Time `json:"published_at"`
}

// Payload implements Event interface.
func (e ContentPublishedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"content_id":   e.ContentID,
		"creator_id":   e.CreatorID,
		"language":     e.Language,
		"level":        e.Level,
		"published_at": e.PublishedAt.Format(time.RFC3339),
	}
}

// NewContentPublishedEvent creates a new ContentPublishedEvent.
func NewContentPublishedEvent(contentID, creatorID, language, level string, publishedAt time.Time) ContentPublishedEvent {
	return ContentPublishedEvent{
		BaseEvent:   NewBaseEvent(EventContentPublished, contentID),
		ContentID:   contentID,
		CreatorID:   creatorID,
		Language:    language,
		Level:       level,
		PublishedAt: publishedAt,
	}
}

// QuizReplacedEvent is emitted when the quiz on a draft is created or replaced.
type QuizReplacedEvent struct {
	BaseEvent
	ContentID     string `json:"content_id"`
	QuizID        string `json:"quiz_id"`
	QuestionCount int    `json:"question_count"`
}

// Payload implements Event interface.
func (e QuizReplacedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"content_id":     e.ContentID,
		"quiz_id":        e.QuizID,
		"question_count": e.QuestionCount,
	}
}

// NewQuizReplacedEvent creates a new QuizReplacedEvent.
func NewQuizReplacedEvent(contentID, quizID string, questionCount int) QuizReplacedEvent {
	return QuizReplacedEvent{
		BaseEvent:     NewBaseEvent(EventQuizReplaced, contentID),
		ContentID:     contentID,
		QuizID:        quizID,
		QuestionCount: questionCount,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Learner Events
// ═══════════════════════════════════════════════════════════════════════════

// ProfileUpdatedEvent is emitted when a learner creates or updates their profile.
type ProfileUpdatedEvent struct {
	BaseEvent
	UserID         string `json:"user_id"`
	TargetLanguage string `json:"target_language"`
	Level          string `json:"level"`
}

// Payload implements Event interface.
func (e ProfileUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":         e.UserID,
		"target_language": e.TargetLanguage,
		"level":           e.Level,
	}
}

// NewProfileUpdatedEvent creates a new ProfileUpdatedEvent.
func NewProfileUpdatedEvent(userID, targetLanguage, level string) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		BaseEvent:      NewBaseEvent(EventProfileUpdated, userID),
		UserID:         userID,
		TargetLanguage: targetLanguage,
		Level:          level,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// AttemptRecordedEvent is emitted when a quiz attempt is persisted.
type AttemptRecordedEvent struct {
	BaseEvent
	AttemptID    string `json:"attempt_id"`
	UserID       string `json:"user_id"`
	ContentID    string `json:"content_id"`
	ScorePercent int    `json:"score_percent"`
	CorrectCount int    `json:"correct_count"`
	TotalCount   int    `json:"total_count"`
}

// Payload implements Event interface.
func (e AttemptRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"attempt_id":    e.AttemptID,
		"user_id":       e.UserID,
		"content_id":    e.ContentID,
		"score_percent": e.ScorePercent,
		"correct_count": e.CorrectCount,
		"total_count":   e.TotalCount,
	}
}

// NewAttemptRecordedEvent creates a new AttemptRecordedEvent.
func NewAttemptRecordedEvent(attemptID, userID, contentID string, scorePercent, correctCount, totalCount int) AttemptRecordedEvent {
	return AttemptRecordedEvent{
		BaseEvent:    NewBaseEvent(EventAttemptRecorded, attemptID),
		AttemptID:    attemptID,
		UserID:       userID,
		ContentID:    contentID,
		ScorePercent: scorePercent,
		CorrectCount: correctCount,
		TotalCount:   totalCount,
	}
}

// XPAwardedEvent is emitted when the ledger grants XP for an attempt.
// Not emitted for same-day repeats that earn zero.
type XPAwardedEvent struct {
	BaseEvent
	UserID    string `json:"user_id"`
	ContentID string `json:"content_id"`
	Amount    int    `json:"amount"`
	NewTotal  int    `json:"new_total"`
	Reason    string `json:"reason"` // e.g., "quiz_completed"
}

// Payload implements Event interface.
func (e XPAwardedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":    e.UserID,
		"content_id": e.ContentID,
		"amount":     e.Amount,
		"new_total":  e.NewTotal,
		"reason":     e.Reason,
	}
}

// NewXPAwardedEvent creates a new XPAwardedEvent.
func NewXPAwardedEvent(userID, contentID string, amount, newTotal int, reason string) XPAwardedEvent {
	return XPAwardedEvent{
		BaseEvent: NewBaseEvent(EventXPAwarded, userID),
		UserID:    userID,
		ContentID: contentID,
		Amount:    amount,
		NewTotal:  newTotal,
		Reason:    reason,
	}
}

// StreakUpdatedEvent is emitted when the streak state machine changes state.
// Same-day no-ops do not emit this event.
type StreakUpdatedEvent struct {
	BaseEvent
	UserID         string `json:"user_id"`
	StreakDays     int    `json:"streak_days"`
	PreviousStreak int    `json:"previous_streak"`
	ActiveDate     string `json:"active_date"` // YYYY-MM-DD, UTC
}

// Payload implements Event interface.
func (e StreakUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":         e.UserID,
		"streak_days":     e.StreakDays,
		"previous_streak": e.PreviousStreak,
		"active_date":     e.ActiveDate,
	}
}

// NewStreakUpdatedEvent creates a new StreakUpdatedEvent.
func NewStreakUpdatedEvent(userID string, streakDays, previousStreak int, activeDate string) StreakUpdatedEvent {
	return StreakUpdatedEvent{
		BaseEvent:      NewBaseEvent(EventStreakUpdated, userID),
		UserID:         userID,
		StreakDays:     streakDays,
		PreviousStreak: previousStreak,
		ActiveDate:     activeDate,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Envelope (for serialization and transport)
// ═══════════════════════════════════════════════════════════════════════════

// EventEnvelope wraps an event for transport/storage.
type EventEnvelope struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	AggregateID   string          `json:"aggregate_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
