package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOf_TruncatesToMidnightUTC(t *testing.T) {
	instant := time.Date(2025, 3, 14, 23, 59, 59, 999999999, time.UTC)
	d := DateOf(instant)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)
}

func TestDateOf_ConvertsToUTCFirst(t *testing.T) {
	// 23:30 on March 14 in UTC-5 is 04:30 on March 15 UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2025, 3, 14, 23, 30, 0, 0, loc)

	assert.Equal(t, Date(2025, 3, 15), DateOf(instant))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 3, 14, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		t1   time.Time
		t2   time.Time
		want int
	}{
		{"same day", Date(2025, 3, 14), time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC), 0},
		{"next day across midnight", time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC), time.Date(2025, 3, 15, 0, 1, 0, 0, time.UTC), 1},
		{"two day gap", Date(2025, 3, 14), Date(2025, 3, 16), 2},
		{"negative when t2 earlier", Date(2025, 3, 16), Date(2025, 3, 14), -2},
		{"month boundary", Date(2025, 2, 28), Date(2025, 3, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.t1, tt.t2))
		})
	}
}

func TestIsNextDay(t *testing.T) {
	assert.True(t, IsNextDay(Date(2025, 12, 31), Date(2026, 1, 1)))
	assert.False(t, IsNextDay(Date(2025, 12, 31), Date(2026, 1, 2)))
	assert.False(t, IsNextDay(Date(2025, 12, 31), Date(2025, 12, 31)))
}

func TestFormatAndParseDate(t *testing.T) {
	d := Date(2025, 3, 14)
	assert.Equal(t, "2025-03-14", FormatDateStr(d))

	parsed, err := ParseDate("2025-03-14")
	assert.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseDate("14.03.2025")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())

	clock.AdvanceDays(1)
	assert.Equal(t, Date(2025, 3, 15), DateOf(clock.Now()))

	clock.Advance(13 * time.Hour)
	assert.Equal(t, Date(2025, 3, 16), DateOf(clock.Now()))
}
