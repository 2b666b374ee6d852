package content

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

func newDraft(t *testing.T) *VideoContent {
	t.Helper()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	v, err := NewVideoContent(
		"4f7c2d9e-0000-4000-8000-000000000001",
		"4f7c2d9e-0000-4000-8000-000000000002",
		shared.LanguageSpanish,
		shared.LevelB1,
		"Ordering coffee",
		now,
	)
	require.NoError(t, err)
	return v
}

func TestNewVideoContent_Validation(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewVideoContent("id", "creator", "de", shared.LevelA1, "Title", now)
	assert.ErrorIs(t, err, shared.ErrInvalidLanguage)

	_, err = NewVideoContent("id", "creator", shared.LanguageEnglish, "D1", "Title", now)
	assert.ErrorIs(t, err, shared.ErrInvalidCEFRLevel)

	_, err = NewVideoContent("id", "creator", shared.LanguageEnglish, shared.LevelA1, "   ", now)
	assert.ErrorIs(t, err, shared.ErrEmptyValue)
}

func TestPublish_RequiresVideoURL(t *testing.T) {
	v := newDraft(t)

	err := v.Publish(true, time.Now().UTC())
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.True(t, errors.Is(err, shared.ErrVideoURLMissing))
	assert.Equal(t, StatusDraft, v.Status)
	assert.Nil(t, v.PublishedAt)
}

func TestPublish_RequiresQuiz(t *testing.T) {
	v := newDraft(t)
	v.VideoURL = "https://cdn.example.com/v1.mp4"

	err := v.Publish(false, time.Now().UTC())
	assert.True(t, errors.Is(err, shared.ErrQuizMissing))
	assert.Equal(t, StatusDraft, v.Status)
}

func TestPublish_SetsPublishedAtOnce(t *testing.T) {
	v := newDraft(t)
	v.VideoURL = "https://cdn.example.com/v1.mp4"

	first := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, v.Publish(true, first))
	assert.Equal(t, StatusPublished, v.Status)
	require.NotNil(t, v.PublishedAt)
	assert.Equal(t, first, *v.PublishedAt)

	// Repeated publication is idempotent and keeps the original timestamp.
	second := first.Add(48 * time.Hour)
	require.NoError(t, v.Publish(true, second))
	assert.Equal(t, first, *v.PublishedAt)
}

func TestIsOwnedBy(t *testing.T) {
	v := newDraft(t)

	assert.True(t, v.IsOwnedBy(v.CreatorID))
	assert.False(t, v.IsOwnedBy("someone-else"))
}
