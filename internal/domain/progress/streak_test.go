package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

func TestStreak_FirstActivity(t *testing.T) {
	s := NewStreak("user-1")

	changed := s.Advance(timeutil.Date(2025, 6, 1))

	assert.True(t, changed)
	assert.Equal(t, 1, s.CurrentStreakDays)
	assert.Equal(t, 1, s.BestStreakDays)
	require.NotNil(t, s.LastActiveDate)
	assert.Equal(t, timeutil.Date(2025, 6, 1), *s.LastActiveDate)
}

func TestStreak_SameDayIsNoOp(t *testing.T) {
	s := NewStreak("user-1")
	s.Advance(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	changed := s.Advance(time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC))

	assert.False(t, changed)
	assert.Equal(t, 1, s.CurrentStreakDays)
}

func TestStreak_ConsecutiveDaysIncrement(t *testing.T) {
	s := NewStreak("user-1")

	s.Advance(timeutil.Date(2025, 6, 1))
	s.Advance(timeutil.Date(2025, 6, 2))
	s.Advance(timeutil.Date(2025, 6, 3))

	assert.Equal(t, 3, s.CurrentStreakDays)
	assert.Equal(t, 3, s.BestStreakDays)
	assert.Equal(t, timeutil.Date(2025, 6, 3), *s.LastActiveDate)
}

func TestStreak_GapResetsToOne(t *testing.T) {
	s := NewStreak("user-1")
	s.Advance(timeutil.Date(2025, 6, 1))
	s.Advance(timeutil.Date(2025, 6, 2))

	// Skip June 3; the streak resets to 1 on June 4.
	changed := s.Advance(timeutil.Date(2025, 6, 4))

	assert.True(t, changed)
	assert.Equal(t, 1, s.CurrentStreakDays)
	assert.Equal(t, 2, s.BestStreakDays)
	assert.Equal(t, timeutil.Date(2025, 6, 4), *s.LastActiveDate)
}

func TestStreak_CrossesUTCMidnight(t *testing.T) {
	s := NewStreak("user-1")

	s.Advance(time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC))
	changed := s.Advance(time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC))

	assert.True(t, changed)
	assert.Equal(t, 2, s.CurrentStreakDays)
}

func TestStreak_FutureLastActiveDateIsNoOp(t *testing.T) {
	s := NewStreak("user-1")
	future := timeutil.Date(2025, 6, 10)
	s.LastActiveDate = &future
	s.CurrentStreakDays = 4
	s.BestStreakDays = 4

	changed := s.Advance(timeutil.Date(2025, 6, 8))

	assert.False(t, changed)
	assert.Equal(t, 4, s.CurrentStreakDays)
	assert.Equal(t, future, *s.LastActiveDate)
}

func TestStreak_IsBroken(t *testing.T) {
	s := NewStreak("user-1")
	assert.False(t, s.IsBroken(timeutil.Date(2025, 6, 5)))

	s.Advance(timeutil.Date(2025, 6, 1))
	assert.False(t, s.IsBroken(timeutil.Date(2025, 6, 1)))
	assert.False(t, s.IsBroken(timeutil.Date(2025, 6, 2)))
	assert.True(t, s.IsBroken(timeutil.Date(2025, 6, 3)))
}

func TestStreak_BestStreakSurvivesReset(t *testing.T) {
	s := NewStreak("user-1")
	for day := 1; day <= 5; day++ {
		s.Advance(timeutil.Date(2025, 6, day))
	}
	require.Equal(t, 5, s.BestStreakDays)

	s.Advance(timeutil.Date(2025, 6, 10))
	assert.Equal(t, 1, s.CurrentStreakDays)
	assert.Equal(t, 5, s.BestStreakDays)
}
