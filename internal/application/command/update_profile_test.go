package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
	"github.com/linguaclip/linguaclip-backend/pkg/timeutil"
)

func TestUpdateProfile_CreatesThenUpdates(t *testing.T) {
	clock := timeutil.NewFixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	repo := newFakeLearnerRepo()
	publisher := &capturingPublisher{}
	handler := NewUpdateProfileHandler(repo, publisher, clock)

	first, err := handler.Handle(context.Background(), UpdateProfileCommand{
		UserID: testUserID, TargetLanguage: "fr", Level: "a2",
	})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, shared.LanguageFrench, first.Profile.TargetLanguage)
	assert.Equal(t, shared.LevelA2, first.Profile.Level)

	clock.AdvanceDays(1)
	second, err := handler.Handle(context.Background(), UpdateProfileCommand{
		UserID: testUserID, TargetLanguage: "es", Level: "B1",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, shared.LanguageSpanish, second.Profile.TargetLanguage)
	assert.Equal(t, first.Profile.CreatedAt, second.Profile.CreatedAt)

	assert.Len(t, publisher.byType(shared.EventProfileUpdated), 2)
}

func TestUpdateProfile_Validation(t *testing.T) {
	handler := NewUpdateProfileHandler(newFakeLearnerRepo(), nil, nil)

	_, err := handler.Handle(context.Background(), UpdateProfileCommand{TargetLanguage: "fr", Level: "A2"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = handler.Handle(context.Background(), UpdateProfileCommand{UserID: testUserID, TargetLanguage: "ru", Level: "A2"})
	assert.ErrorIs(t, err, shared.ErrInvalidLanguage)

	_, err = handler.Handle(context.Background(), UpdateProfileCommand{UserID: testUserID, TargetLanguage: "fr", Level: "D1"})
	assert.ErrorIs(t, err, shared.ErrInvalidCEFRLevel)
}
