// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// UUID validation regex (simple version).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// UserID represents a unique user identifier (UUID format).
type UserID string

// IsValid checks if the user ID is a valid UUID.
func (u UserID) IsValid() bool {
	return uuidRegex.MatchString(string(u))
}

// String returns the string representation.
func (u UserID) String() string {
	return string(u)
}

// IsEmpty checks if the ID is empty.
func (u UserID) IsEmpty() bool {
	return u == ""
}

// NewUserID creates a new UserID with validation.
func NewUserID(id string) (UserID, error) {
	uid := UserID(strings.ToLower(strings.TrimSpace(id)))
	if !uid.IsValid() {
		return "", NewDomainError("shared", "NewUserID", ErrInvalidID, "invalid user ID format")
	}
	return uid, nil
}

// ContentID represents a unique video content identifier (UUID format).
type ContentID string

// IsValid checks if the content ID is a valid UUID.
func (c ContentID) IsValid() bool {
	return uuidRegex.MatchString(string(c))
}

// String returns the string representation.
func (c ContentID) String() string {
	return string(c)
}

// IsEmpty checks if the ID is empty.
func (c ContentID) IsEmpty() bool {
	return c == ""
}

// NewContentID creates a new ContentID with validation.
func NewContentID(id string) (ContentID, error) {
	cid := ContentID(strings.ToLower(strings.TrimSpace(id)))
	if !cid.IsValid() {
		return "", NewDomainError("shared", "NewContentID", ErrInvalidID, "invalid content ID format")
	}
	return cid, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Language Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Language represents a target language available on the platform.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageFrench  Language = "fr"
)

// SupportedLanguages lists the languages content can be authored in.
var SupportedLanguages = []Language{LanguageEnglish, LanguageSpanish, LanguageFrench}

// IsValid checks if the language is supported.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageFrench:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// NewLanguage creates a new Language with validation.
func NewLanguage(value string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(value)))
	if !l.IsValid() {
		return "", ErrInvalidLanguage
	}
	return l, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// CEFR Level Value Object
// ═══════════════════════════════════════════════════════════════════════════

// CEFRLevel represents a proficiency level on the CEFR scale.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// CEFRLevels lists all levels in ascending order of proficiency.
var CEFRLevels = []CEFRLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// IsValid checks if the level is a known CEFR level.
func (l CEFRLevel) IsValid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l CEFRLevel) String() string {
	return string(l)
}

// NewCEFRLevel creates a new CEFRLevel with validation.
func NewCEFRLevel(value string) (CEFRLevel, error) {
	l := CEFRLevel(strings.ToUpper(strings.TrimSpace(value)))
	if !l.IsValid() {
		return "", ErrInvalidCEFRLevel
	}
	return l, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Role Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Role represents what a user can do on the platform.
type Role string

const (
	RoleLearner Role = "learner"
	RoleCreator Role = "creator"
)

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return r == RoleLearner || r == RoleCreator
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// ═══════════════════════════════════════════════════════════════════════════
// XP Value Object (Experience Points)
// ═══════════════════════════════════════════════════════════════════════════

// XP represents accumulated experience points.
type XP int

const (
	MinXP XP = 0
)

// IsValid checks if the XP value is non-negative.
func (x XP) IsValid() bool {
	return x >= MinXP
}

// Int returns the underlying int value.
func (x XP) Int() int {
	return int(x)
}

// Add adds XP and returns the result, floored at MinXP.
func (x XP) Add(amount int) XP {
	result := XP(int(x) + amount)
	if result < MinXP {
		return MinXP
	}
	return result
}

// NewXP creates a new XP value with validation.
func NewXP(amount int) (XP, error) {
	if amount < int(MinXP) {
		return 0, NewDomainError("shared", "NewXP", ErrNegativeValue, "XP cannot be negative")
	}
	return XP(amount), nil
}
