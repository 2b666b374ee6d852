// Package timeutil provides UTC calendar-day utilities for LinguaClip.
// Streak transitions and XP idempotency are decided on UTC calendar days,
// independent of the learner's local timezone, so this package is the single
// place where an instant is collapsed into a date.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// FormatDate is the canonical date format (YYYY-MM-DD) used for UTC dates
// in persistence and API payloads.
const FormatDate = "2006-01-02"

// DateOf truncates an instant to the UTC calendar day it falls on.
// The result is always midnight UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Date creates a UTC calendar date (midnight UTC).
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SameDay checks if two instants fall on the same UTC calendar day.
func SameDay(t1, t2 time.Time) bool {
	u1, u2 := t1.UTC(), t2.UTC()
	return u1.Year() == u2.Year() && u1.YearDay() == u2.YearDay()
}

// DaysBetween returns the signed number of UTC calendar days from t1 to t2.
// Positive when t2 falls on a later day than t1.
func DaysBetween(t1, t2 time.Time) int {
	d1 := DateOf(t1)
	d2 := DateOf(t2)
	return int(d2.Sub(d1).Hours() / 24)
}

// IsNextDay checks if t2 is on the UTC calendar day immediately after t1.
func IsNextDay(t1, t2 time.Time) bool {
	return DaysBetween(t1, t2) == 1
}

// FormatDateStr formats an instant as a UTC date string (YYYY-MM-DD).
func FormatDateStr(t time.Time) string {
	return t.UTC().Format(FormatDate)
}

// ParseDate parses a UTC date string (YYYY-MM-DD) into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, time.UTC)
}

// ══════════════════════════════════════════════════════════════════════════════
// CLOCK
// ══════════════════════════════════════════════════════════════════════════════

// Clock abstracts the current time so that day-boundary logic can be tested
// deterministically. Decision code receives time through a Clock (or an
// explicit parameter), never via time.Now.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
}

// SystemClock reads the real wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Used by tests that simulate
// day transitions.
type FixedClock struct {
	Instant time.Time
}

// NewFixedClock creates a FixedClock pinned to the given instant.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{Instant: t}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	return c.Instant
}

// Advance moves the pinned instant forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.Instant = c.Instant.Add(d)
}

// AdvanceDays moves the pinned instant forward by whole days.
func (c *FixedClock) AdvanceDays(days int) {
	c.Instant = c.Instant.AddDate(0, 0, days)
}
