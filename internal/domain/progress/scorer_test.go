package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguaclip/linguaclip-backend/internal/domain/content"
	"github.com/linguaclip/linguaclip-backend/internal/domain/shared"
)

func threeQuestionQuiz(t *testing.T) *content.Quiz {
	t.Helper()
	questions := []content.Question{
		{ID: "q1", Prompt: "Uno?", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 0, Position: 0},
		{ID: "q2", Prompt: "Dos?", Options: []string{"a", "b"}, CorrectOptionIndex: 1, Position: 1},
		{ID: "q3", Prompt: "Tres?", Options: []string{"a", "b", "c", "d"}, CorrectOptionIndex: 2, Position: 2},
	}
	quiz, err := content.NewQuiz("quiz-1", "content-1", questions, time.Now().UTC())
	require.NoError(t, err)
	return quiz
}

// answersFor строит полный набор ответов на threeQuestionQuiz:
// индексы соответствуют вопросам q1, q2, q3.
func answersFor(idx1, idx2, idx3 int) []Answer {
	return []Answer{
		{QuestionID: "q1", SelectedIndex: idx1},
		{QuestionID: "q2", SelectedIndex: idx2},
		{QuestionID: "q3", SelectedIndex: idx3},
	}
}

func TestScore_AllCorrect(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	result, err := Score(quiz, answersFor(0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 100, result.ScorePercent)
	assert.True(t, result.IsPerfect())
}

func TestScore_AnswerOrderDoesNotMatter(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	result, err := Score(quiz, []Answer{
		{QuestionID: "q3", SelectedIndex: 2},
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q2", SelectedIndex: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, result.ScorePercent)
}

func TestScore_RoundsHalfUp(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	// 2 of 3 correct: 66.67% rounds to 67.
	result, err := Score(quiz, answersFor(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, 67, result.ScorePercent)

	// 1 of 3 correct: 33.33% rounds to 33.
	result, err = Score(quiz, answersFor(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 33, result.ScorePercent)
}

func TestScore_ZeroCorrect(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	result, err := Score(quiz, answersFor(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0, result.ScorePercent)
	assert.False(t, result.IsPerfect())
}

func TestScore_AnswerCountMismatch(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	_, err := Score(quiz, answersFor(0, 1, 2)[:2])
	assert.ErrorIs(t, err, shared.ErrAnswerCountMismatch)

	extra := append(answersFor(0, 1, 2), Answer{QuestionID: "q1", SelectedIndex: 1})
	_, err = Score(quiz, extra)
	assert.ErrorIs(t, err, shared.ErrAnswerCountMismatch)

	_, err = Score(quiz, nil)
	assert.ErrorIs(t, err, shared.ErrAnswerCountMismatch)
}

func TestScore_UnknownQuestionID(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	answers := answersFor(0, 1, 2)
	answers[2].QuestionID = "q99"
	_, err := Score(quiz, answers)
	assert.ErrorIs(t, err, shared.ErrUnknownQuestion)
}

func TestScore_DuplicateQuestionID(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	// Один вопрос отвечен дважды, другой пропущен.
	_, err := Score(quiz, []Answer{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q1", SelectedIndex: 1},
		{QuestionID: "q2", SelectedIndex: 1},
	})
	assert.ErrorIs(t, err, shared.ErrDuplicateAnswer)
}

func TestScore_AnswerIndexOutOfRange(t *testing.T) {
	quiz := threeQuestionQuiz(t)

	// Second question has only two options.
	_, err := Score(quiz, answersFor(0, 2, 2))
	assert.ErrorIs(t, err, shared.ErrAnswerOutOfRange)

	_, err = Score(quiz, answersFor(-1, 1, 2))
	assert.ErrorIs(t, err, shared.ErrAnswerOutOfRange)
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{2, 4, 50},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 5, 60},
		{1, 6, 17},
		{5, 6, 83},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, percentOf(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}
