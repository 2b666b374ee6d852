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

type creatorFixture struct {
	create    *CreateContentHandler
	author    *AuthorQuizHandler
	publish   *PublishContentHandler
	publisher *capturingPublisher
	clock     *timeutil.FixedClock
}

func newCreatorFixture() *creatorFixture {
	clock := timeutil.NewFixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	contentRepo := newFakeContentRepo()
	quizRepo := newFakeQuizRepo()
	publisher := &capturingPublisher{}

	return &creatorFixture{
		create:    NewCreateContentHandler(contentRepo, publisher, clock),
		author:    NewAuthorQuizHandler(contentRepo, quizRepo, publisher, clock),
		publish:   NewPublishContentHandler(contentRepo, quizRepo, publisher, clock),
		publisher: publisher,
		clock:     clock,
	}
}

func (f *creatorFixture) newDraft(t *testing.T, videoURL string) string {
	t.Helper()
	result, err := f.create.Handle(context.Background(), CreateContentCommand{
		CreatorID: testCreatorID,
		Language:  "es",
		Level:     "B1",
		Title:     "En el mercado",
		VideoURL:  videoURL,
	})
	require.NoError(t, err)
	return result.Content.ID
}

func (f *creatorFixture) attachQuiz(t *testing.T, contentID string) {
	t.Helper()
	questions := []QuestionInput{
		{Prompt: "Uno?", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
		{Prompt: "Dos?", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
		{Prompt: "Tres?", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 2},
	}
	_, err := f.author.Handle(context.Background(), AuthorQuizCommand{
		CreatorID: testCreatorID,
		ContentID: contentID,
		Questions: questions,
	})
	require.NoError(t, err)
}

func TestPublishContent_HappyPath(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "https://cdn.example.com/v.mp4")
	f.attachQuiz(t, contentID)

	result, err := f.publish.Handle(context.Background(), PublishContentCommand{
		CreatorID: testCreatorID,
		ContentID: contentID,
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyPublished)
	require.NotNil(t, result.Content.PublishedAt)
	assert.Equal(t, f.clock.Now(), *result.Content.PublishedAt)
	assert.Len(t, f.publisher.byType(shared.EventContentPublished), 1)
}

func TestPublishContent_WithoutQuizIsConflict(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "https://cdn.example.com/v.mp4")

	_, err := f.publish.Handle(context.Background(), PublishContentCommand{
		CreatorID: testCreatorID,
		ContentID: contentID,
	})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestPublishContent_WithoutVideoURLIsConflict(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "")
	f.attachQuiz(t, contentID)

	_, err := f.publish.Handle(context.Background(), PublishContentCommand{
		CreatorID: testCreatorID,
		ContentID: contentID,
	})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestPublishContent_RepublishIsIdempotent(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "https://cdn.example.com/v.mp4")
	f.attachQuiz(t, contentID)

	first, err := f.publish.Handle(context.Background(), PublishContentCommand{CreatorID: testCreatorID, ContentID: contentID})
	require.NoError(t, err)
	publishedAt := *first.Content.PublishedAt

	f.clock.AdvanceDays(3)
	second, err := f.publish.Handle(context.Background(), PublishContentCommand{CreatorID: testCreatorID, ContentID: contentID})
	require.NoError(t, err)

	assert.True(t, second.AlreadyPublished)
	assert.Equal(t, publishedAt, *second.Content.PublishedAt)
	assert.Len(t, f.publisher.byType(shared.EventContentPublished), 1)
}

func TestPublishContent_ForeignContentIsForbidden(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "https://cdn.example.com/v.mp4")
	f.attachQuiz(t, contentID)

	_, err := f.publish.Handle(context.Background(), PublishContentCommand{
		CreatorID: testUserID,
		ContentID: contentID,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestAuthorQuiz_RejectedAfterPublish(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "https://cdn.example.com/v.mp4")
	f.attachQuiz(t, contentID)

	_, err := f.publish.Handle(context.Background(), PublishContentCommand{CreatorID: testCreatorID, ContentID: contentID})
	require.NoError(t, err)

	_, err = f.author.Handle(context.Background(), AuthorQuizCommand{
		CreatorID: testCreatorID,
		ContentID: contentID,
		Questions: []QuestionInput{
			{Prompt: "Nuevo?", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
			{Prompt: "Otro?", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
			{Prompt: "Mas?", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
		},
	})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestAuthorQuiz_ValidatesStructure(t *testing.T) {
	f := newCreatorFixture()
	contentID := f.newDraft(t, "https://cdn.example.com/v.mp4")

	// Two questions is below the minimum.
	_, err := f.author.Handle(context.Background(), AuthorQuizCommand{
		CreatorID: testCreatorID,
		ContentID: contentID,
		Questions: []QuestionInput{
			{Prompt: "Uno?", Options: []string{"a", "b"}, CorrectOptionIndex: 0},
			{Prompt: "Dos?", Options: []string{"a", "b"}, CorrectOptionIndex: 1},
		},
	})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
}

func TestCreateContent_ValidatesLanguageAndLevel(t *testing.T) {
	f := newCreatorFixture()

	_, err := f.create.Handle(context.Background(), CreateContentCommand{
		CreatorID: testCreatorID, Language: "de", Level: "B1", Title: "x",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidLanguage)

	_, err = f.create.Handle(context.Background(), CreateContentCommand{
		CreatorID: testCreatorID, Language: "es", Level: "X3", Title: "x",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidCEFRLevel)
}
