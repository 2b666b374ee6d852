package query

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/learner"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

const (
	feedUserID    = "9f1c7a4e-3b2d-4e8f-9a6b-1c2d3e4f5a6b"
	feedCreatorID = "7d8e9f0a-1b2c-4d3e-8f4a-5b6c7d8e9f0a"
)

var feedBaseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// feedFixture строит обработчик ленты с профилем ученика es/B1.
func feedFixture(t *testing.T) (*GetFeedPageHandler, *fakeContentRepo) {
	t.Helper()

	learnerRepo := newFakeLearnerRepo()
	profile, err := learner.NewProfile(feedUserID, shared.LanguageSpanish, shared.LevelB1, feedBaseTime)
	require.NoError(t, err)
	require.NoError(t, learnerRepo.Upsert(context.Background(), profile))

	contentRepo := newFakeContentRepo()
	return NewGetFeedPageHandler(learnerRepo, contentRepo), contentRepo
}

// publishedVideo кладёт в репозиторий опубликованное видео es/B1.
func publishedVideo(t *testing.T, repo *fakeContentRepo, id string, publishedAt time.Time) {
	t.Helper()
	storeVideo(t, repo, id, shared.LanguageSpanish, shared.LevelB1, content.StatusPublished, &publishedAt)
}

func storeVideo(t *testing.T, repo *fakeContentRepo, id string, language shared.Language, level shared.CEFRLevel, status content.Status, publishedAt *time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &content.VideoContent{
		ID:          id,
		CreatorID:   feedCreatorID,
		Language:    language,
		Level:       level,
		Title:       "Clip " + id,
		VideoURL:    "https://cdn.linguaclip.dev/" + id + ".mp4",
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   feedBaseTime,
		UpdatedAt:   feedBaseTime,
	})
	require.NoError(t, err)
}

func feedItemID(i int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", i)
}

func TestGetFeedPage_PaginationCycle(t *testing.T) {
	handler, repo := feedFixture(t)

	// 12 видео с разными моментами публикации: item 12 самый новый.
	for i := 1; i <= 12; i++ {
		publishedVideo(t, repo, feedItemID(i), feedBaseTime.Add(time.Duration(i)*time.Minute))
	}

	page1, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID})
	require.NoError(t, err)
	require.Len(t, page1.Items, DefaultFeedLimit)
	assert.NotEmpty(t, page1.NextCursor)
	assert.Equal(t, feedItemID(12), page1.Items[0].ID)
	assert.Equal(t, feedItemID(3), page1.Items[9].ID)

	page2, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.Empty(t, page2.NextCursor)
	assert.Equal(t, feedItemID(2), page2.Items[0].ID)
	assert.Equal(t, feedItemID(1), page2.Items[1].ID)

	// Страницы не пересекаются и вместе покрывают всё.
	seen := make(map[string]bool)
	for _, item := range append(page1.Items, page2.Items...) {
		assert.False(t, seen[item.ID], "duplicate item %s", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, seen, 12)
}

func TestGetFeedPage_ExactPageSizeHasNoCursor(t *testing.T) {
	handler, repo := feedFixture(t)

	for i := 1; i <= DefaultFeedLimit; i++ {
		publishedVideo(t, repo, feedItemID(i), feedBaseTime.Add(time.Duration(i)*time.Minute))
	}

	result, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID})
	require.NoError(t, err)
	assert.Len(t, result.Items, DefaultFeedLimit)
	assert.Empty(t, result.NextCursor)
}

func TestGetFeedPage_TieBreakByIDDescending(t *testing.T) {
	handler, repo := feedFixture(t)

	// Три видео с одинаковым моментом публикации: порядок по id DESC.
	publishedAt := feedBaseTime.Add(time.Hour)
	for i := 1; i <= 3; i++ {
		publishedVideo(t, repo, feedItemID(i), publishedAt)
	}

	page1, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, feedItemID(3), page1.Items[0].ID)
	assert.Equal(t, feedItemID(2), page1.Items[1].ID)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, feedItemID(1), page2.Items[0].ID)
	assert.Empty(t, page2.NextCursor)
}

func TestGetFeedPage_NewPublishesDoNotShiftPages(t *testing.T) {
	handler, repo := feedFixture(t)

	for i := 1; i <= 4; i++ {
		publishedVideo(t, repo, feedItemID(i), feedBaseTime.Add(time.Duration(i)*time.Minute))
	}

	page1, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)

	// Между страницами публикуется новое видео - самое свежее в ленте.
	publishedVideo(t, repo, feedItemID(99), feedBaseTime.Add(time.Hour))

	page2, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.Equal(t, feedItemID(2), page2.Items[0].ID)
	assert.Equal(t, feedItemID(1), page2.Items[1].ID)
}

func TestGetFeedPage_FiltersByProfileAndStatus(t *testing.T) {
	handler, repo := feedFixture(t)

	match := feedBaseTime.Add(time.Minute)
	publishedVideo(t, repo, feedItemID(1), match)
	// Черновик, чужой язык и чужой уровень в ленту не попадают.
	storeVideo(t, repo, feedItemID(2), shared.LanguageSpanish, shared.LevelB1, content.StatusDraft, nil)
	storeVideo(t, repo, feedItemID(3), shared.LanguageFrench, shared.LevelB1, content.StatusPublished, &match)
	storeVideo(t, repo, feedItemID(4), shared.LanguageSpanish, shared.LevelC1, content.StatusPublished, &match)

	result, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, feedItemID(1), result.Items[0].ID)
	assert.Equal(t, "es", result.Items[0].Language)
	assert.Equal(t, "B1", result.Items[0].Level)
	assert.Equal(t, string(content.StatusPublished), result.Items[0].Status)
}

func TestGetFeedPage_RequiresProfile(t *testing.T) {
	handler := NewGetFeedPageHandler(newFakeLearnerRepo(), newFakeContentRepo())

	_, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetFeedPage_InvalidCursor(t *testing.T) {
	handler, repo := feedFixture(t)
	publishedVideo(t, repo, feedItemID(1), feedBaseTime)

	badJSON := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	missingFields := base64.RawURLEncoding.EncodeToString([]byte(`{"p":""}`))
	badTimestamp := base64.RawURLEncoding.EncodeToString([]byte(`{"p":"yesterday","i":"x"}`))

	cases := map[string]string{
		"not base64":     "%%%not-base64%%%",
		"not json":       badJSON,
		"missing fields": missingFields,
		"bad timestamp":  badTimestamp,
	}
	for name, cursor := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Cursor: cursor})
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestGetFeedPage_LimitValidation(t *testing.T) {
	handler, repo := feedFixture(t)
	for i := 1; i <= 7; i++ {
		publishedVideo(t, repo, feedItemID(i), feedBaseTime.Add(time.Duration(i)*time.Minute))
	}

	_, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: -1})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)

	_, err = handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: MaxFeedLimit + 1})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)

	result, err := handler.Handle(context.Background(), GetFeedPageQuery{UserID: feedUserID, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, result.Items, 5)
	assert.NotEmpty(t, result.NextCursor)
}

func TestFeedCursor_Roundtrip(t *testing.T) {
	key := content.FeedKey{
		PublishedAt: time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC),
		ID:          feedItemID(42),
	}

	decoded, err := DecodeFeedCursor(EncodeFeedCursor(key))
	require.NoError(t, err)
	assert.True(t, decoded.PublishedAt.Equal(key.PublishedAt))
	assert.Equal(t, key.ID, decoded.ID)
}
