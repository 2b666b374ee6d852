package learner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

func TestNewProfile(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p, err := NewProfile("user-1", shared.LanguageFrench, shared.LevelA2, now)
	require.NoError(t, err)
	assert.Equal(t, shared.LanguageFrench, p.TargetLanguage)
	assert.Equal(t, shared.LevelA2, p.Level)

	_, err = NewProfile("user-1", "jp", shared.LevelA2, now)
	assert.ErrorIs(t, err, shared.ErrInvalidLanguage)

	_, err = NewProfile("user-1", shared.LanguageFrench, "Z9", now)
	assert.ErrorIs(t, err, shared.ErrInvalidCEFRLevel)
}

func TestProfile_UpdatePreferences(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p, err := NewProfile("user-1", shared.LanguageEnglish, shared.LevelA1, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, p.UpdatePreferences(shared.LanguageSpanish, shared.LevelB2, later))
	assert.Equal(t, shared.LanguageSpanish, p.TargetLanguage)
	assert.Equal(t, shared.LevelB2, p.Level)
	assert.Equal(t, later, p.UpdatedAt)

	err = p.UpdatePreferences("xx", shared.LevelB2, later)
	assert.ErrorIs(t, err, shared.ErrInvalidLanguage)
	assert.Equal(t, shared.LanguageSpanish, p.TargetLanguage)
}
