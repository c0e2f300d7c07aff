package learning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codelearn_backend/internal/model"
)

func localGrader(quiz *model.Quiz, answers []Answer) (*QuizResult, error) {
	return Grade(quiz, answers, FullRewardOnPass), nil
}

func startedSession(t *testing.T) *QuizSession {
	t.Helper()
	s := NewQuizSession(fourQuestionQuiz(), ModeAuthenticated, 42)
	require.NoError(t, s.Start())
	return s
}

func answerAll(t *testing.T, s *QuizSession, answers ...int) {
	t.Helper()
	for i, a := range answers {
		require.NoError(t, s.SelectAnswer(questionID(i), a))
		if i < len(answers)-1 {
			require.NoError(t, s.Next())
		}
	}
}

func TestSession_StartRequiresUser(t *testing.T) {
	s := NewQuizSession(fourQuestionQuiz(), ModeAuthenticated, 0)
	err := s.Start()
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, StateStart, s.State())

	guest := NewQuizSession(fourQuestionQuiz(), ModeGuest, 0)
	assert.NoError(t, guest.Start())
	assert.Equal(t, StateQuestion, guest.State())
}

func TestSession_StartOnlyOnce(t *testing.T) {
	s := startedSession(t)
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
}

func TestSession_NoSkippingForward(t *testing.T) {
	s := startedSession(t)

	assert.ErrorIs(t, s.Next(), ErrUnansweredQuestion)

	require.NoError(t, s.SelectAnswer(questionID(0), 0))
	assert.NoError(t, s.Next())

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.CurrentQuestion)
}

func TestSession_PrevAlwaysAllowedAndRestoresAnswer(t *testing.T) {
	s := startedSession(t)

	// at the first question Prev stays put
	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.Snapshot().CurrentQuestion)

	require.NoError(t, s.SelectAnswer(questionID(0), 2))
	require.NoError(t, s.Next())

	// second question unanswered: no selection to restore
	_, ok := s.CurrentAnswer()
	assert.False(t, ok)

	require.NoError(t, s.Prev())
	a, ok := s.CurrentAnswer()
	require.True(t, ok)
	assert.Equal(t, 2, a)
}

func TestSession_SelectAnswerOverwrites(t *testing.T) {
	s := startedSession(t)

	require.NoError(t, s.SelectAnswer(questionID(0), 1))
	require.NoError(t, s.SelectAnswer(questionID(0), 3))

	a, ok := s.CurrentAnswer()
	require.True(t, ok)
	assert.Equal(t, 3, a)
}

func TestSession_SelectAnswerUnknownQuestion(t *testing.T) {
	s := startedSession(t)
	assert.ErrorIs(t, s.SelectAnswer("not-a-question", 0), ErrUnknownQuestion)
}

func TestSession_LastQuestionHasNoNext(t *testing.T) {
	s := startedSession(t)
	answerAll(t, s, 0, 1, 2, 3)

	assert.ErrorIs(t, s.Next(), ErrNoNextQuestion)
}

func TestSession_SubmitRequiresAllAnswers(t *testing.T) {
	s := startedSession(t)
	require.NoError(t, s.SelectAnswer(questionID(0), 0))

	_, err := s.Submit(localGrader)
	assert.ErrorIs(t, err, ErrIncompleteSubmission)
	assert.Equal(t, StateQuestion, s.State())
}

func TestSession_SubmitGradesAndEntersResults(t *testing.T) {
	s := startedSession(t)
	answerAll(t, s, 0, 1, 2, 0)

	result, err := s.Submit(localGrader)
	require.NoError(t, err)
	assert.Equal(t, StateResults, s.State())
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, result, s.Result())
}

func TestSession_GradingFailureKeepsAnswers(t *testing.T) {
	s := startedSession(t)
	answerAll(t, s, 0, 1, 2, 3)

	transportErr := errors.New("submission failed")
	_, err := s.Submit(func(*model.Quiz, []Answer) (*QuizResult, error) {
		return nil, transportErr
	})
	require.ErrorIs(t, err, transportErr)

	// stays answerable with answers intact, ready for retry
	assert.Equal(t, StateQuestion, s.State())
	assert.Nil(t, s.Result())
	assert.Len(t, s.Answers(), 4)

	result, err := s.Submit(localGrader)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
}

func TestSession_GuestSubmitForcesZeroXP(t *testing.T) {
	s := NewQuizSession(fourQuestionQuiz(), ModeGuest, 0)
	require.NoError(t, s.Start())
	answerAll(t, s, 0, 1, 2, 3)

	result, err := s.Submit(localGrader)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.XPEarned)
}

func TestSession_RetakeClearsEverything(t *testing.T) {
	s := startedSession(t)
	answerAll(t, s, 0, 1, 2, 3)
	_, err := s.Submit(localGrader)
	require.NoError(t, err)

	require.NoError(t, s.Retake())
	assert.Equal(t, StateQuestion, s.State())
	assert.Nil(t, s.Result())
	assert.Equal(t, 0, s.Snapshot().CurrentQuestion)
	assert.Empty(t, s.Answers())
}

func TestSession_ReviewWalk(t *testing.T) {
	s := startedSession(t)
	answerAll(t, s, 0, 1, 1, 3)
	_, err := s.Submit(localGrader)
	require.NoError(t, err)

	require.NoError(t, s.Review())
	assert.Equal(t, StateReview, s.State())

	item := s.ReviewItem()
	require.NotNil(t, item)
	assert.Equal(t, questionID(0), item.QuestionID)

	// bounded stepping: cannot walk off either end
	require.NoError(t, s.ReviewPrev())
	assert.Equal(t, 0, s.Snapshot().ReviewCursor)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.ReviewNext())
	}
	assert.Equal(t, 3, s.Snapshot().ReviewCursor)
	assert.Equal(t, questionID(3), s.ReviewItem().QuestionID)

	require.NoError(t, s.ExitReview())
	assert.Equal(t, StateResults, s.State())
	assert.NotNil(t, s.Result())
}

func TestSession_ReviewCursorResetsOnReentry(t *testing.T) {
	s := startedSession(t)
	answerAll(t, s, 0, 1, 2, 3)
	_, err := s.Submit(localGrader)
	require.NoError(t, err)

	require.NoError(t, s.Review())
	require.NoError(t, s.ReviewNext())
	require.NoError(t, s.ReviewNext())
	require.NoError(t, s.ExitReview())

	require.NoError(t, s.Review())
	assert.Equal(t, 0, s.Snapshot().ReviewCursor)
}

func TestSession_IllegalTransitions(t *testing.T) {
	s := NewQuizSession(fourQuestionQuiz(), ModeAuthenticated, 42)

	// before start nothing else is legal
	assert.ErrorIs(t, s.SelectAnswer(questionID(0), 0), ErrInvalidTransition)
	assert.ErrorIs(t, s.Next(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Review(), ErrInvalidTransition)
	_, err := s.Submit(localGrader)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Start())

	// reviewing before any submission is unreachable
	assert.ErrorIs(t, s.Review(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Retake(), ErrInvalidTransition)
	assert.ErrorIs(t, s.ExitReview(), ErrInvalidTransition)
}
