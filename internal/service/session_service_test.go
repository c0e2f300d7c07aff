package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/util"
)

type stubQuizLoader struct {
	quiz *model.Quiz
}

func (s *stubQuizLoader) FindByID(id string) (*model.Quiz, error) {
	if s.quiz != nil && s.quiz.ID == id {
		return s.quiz, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func sessionTestQuiz() *model.Quiz {
	return &model.Quiz{
		UUIDBase:     model.UUIDBase{ID: "quiz-1"},
		CourseID:     "course-1",
		Title:        "Go 基础测验",
		PassingScore: 70,
		XPReward:     50,
		IsPublished:  true,
		Questions: []model.Question{
			{
				UUIDBase:      model.UUIDBase{ID: "q-1"},
				QuizID:        "quiz-1",
				Order:         1,
				Type:          "mcq",
				Prompt:        "哪个关键字声明变量？",
				Options:       `["var","let","def","dim"]`,
				CorrectAnswer: 0,
			},
			{
				UUIDBase:      model.UUIDBase{ID: "q-2"},
				QuizID:        "quiz-1",
				Order:         2,
				Type:          "true-false",
				Prompt:        "Go 有异常机制。",
				Options:       `["True","False"]`,
				CorrectAnswer: 1,
			},
		},
	}
}

func newTestSessionService() *SessionService {
	return NewSessionService(&stubQuizLoader{quiz: sessionTestQuiz()}, nil)
}

func TestCreateSessionGuestWalkThrough(t *testing.T) {
	svc := newTestSessionService()
	defer svc.Close()

	snap, err := svc.CreateSession(0, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, learning.StateStart, snap.State)
	assert.Equal(t, learning.ModeGuest, snap.Mode)
	assert.Equal(t, 2, snap.QuestionCount)
	assert.Equal(t, 0, snap.AnsweredCount)

	snap, err = svc.Start(snap.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, learning.StateQuestion, snap.State)

	snap, err = svc.SelectAnswer(snap.ID, 0, "q-1", 0)
	require.NoError(t, err)
	snap, err = svc.Next(snap.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentQuestion)

	snap, err = svc.SelectAnswer(snap.ID, 0, "q-2", 0)
	require.NoError(t, err)

	snap, err = svc.Submit(snap.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, learning.StateResults, snap.State)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 1, snap.Result.CorrectAnswers)
	assert.False(t, snap.Result.Passed)
	// 游客不发 XP
	assert.Equal(t, 0, snap.Result.XPEarned)

	snap, err = svc.Review(snap.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, learning.StateReview, snap.State)

	item, err := svc.ReviewItem(snap.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "q-1", item.QuestionID)
	assert.True(t, item.IsCorrect)

	snap, err = svc.ExitReview(snap.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, learning.StateResults, snap.State)
}

func TestCreateSessionUnknownQuiz(t *testing.T) {
	svc := newTestSessionService()
	defer svc.Close()

	_, err := svc.CreateSession(0, "no-such-quiz")
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	svc := newTestSessionService()
	defer svc.Close()

	snap, err := svc.CreateSession(5, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, learning.ModeAuthenticated, snap.Mode)

	_, err = svc.GetSession(snap.ID, 6)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = svc.GetSession(snap.ID, 5)
	assert.NoError(t, err)
}

func TestEndSessionRemovesSession(t *testing.T) {
	svc := newTestSessionService()
	defer svc.Close()

	snap, err := svc.CreateSession(0, "quiz-1")
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(snap.ID, 0))
	_, err = svc.GetSession(snap.ID, 0)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
