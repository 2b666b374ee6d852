// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrConflict         = errors.New("conflict with current state")
	ErrInvalidState     = errors.New("invalid state")
	ErrStateTransition  = errors.New("invalid state transition")
	ErrAlreadyProcessed = errors.New("already processed")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Infrastructure errors
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "content", "progress", "learner"
	Op      string // Operation that failed, e.g., "Create", "Publish"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Content domain errors
var (
	ErrContentNotFound     = NewDomainError("content", "Find", ErrNotFound, "content not found")
	ErrContentNotPublished = NewDomainError("content", "CheckStatus", ErrConflict, "content is not published")
	ErrContentNotOwned     = NewDomainError("content", "CheckOwner", ErrForbidden, "content belongs to another creator")
	ErrQuizNotFound        = NewDomainError("content", "FindQuiz", ErrNotFound, "quiz not found")
	ErrQuizMissing         = NewDomainError("content", "Publish", ErrConflict, "content has no quiz attached")
	ErrVideoURLMissing     = NewDomainError("content", "Publish", ErrConflict, "content has no video URL")
	ErrContentPublished    = NewDomainError("content", "ReplaceQuiz", ErrConflict, "quiz cannot change after publication")
)

// Learner domain errors
var (
	ErrProfileNotFound  = NewDomainError("learner", "FindProfile", ErrNotFound, "learner profile not found")
	ErrInvalidLanguage  = NewDomainError("learner", "Validate", ErrInvalidInput, "unsupported target language")
	ErrInvalidCEFRLevel = NewDomainError("learner", "Validate", ErrInvalidInput, "invalid CEFR level")
)

// Progress domain errors
var (
	ErrAttemptNotFound     = NewDomainError("progress", "FindAttempt", ErrNotFound, "attempt not found")
	ErrAnswerCountMismatch = NewDomainError("progress", "Score", ErrValidation, "answer count does not match question count")
	ErrAnswerOutOfRange    = NewDomainError("progress", "Score", ErrValueOutOfRange, "answer index out of range")
	ErrUnknownQuestion     = NewDomainError("progress", "Score", ErrValidation, "answer references an unknown question")
	ErrDuplicateAnswer     = NewDomainError("progress", "Score", ErrValidation, "duplicate answer for a question")
	ErrXPAlreadyAwarded    = NewDomainError("progress", "AwardXP", ErrAlreadyProcessed, "XP already awarded today for this content")
)

// Feed domain errors
var (
	ErrInvalidCursor = NewDomainError("feed", "DecodeCursor", ErrValidation, "malformed feed cursor")
	ErrInvalidLimit  = NewDomainError("feed", "Validate", ErrValueOutOfRange, "page limit out of range")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsConflict checks if the error is a state conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrStateTransition)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsRetryable checks if the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout)
}
