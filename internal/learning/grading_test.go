package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codelearn_backend/internal/model"
)

// fourQuestionQuiz 构造 4 道 mcq 题的测验，正确答案下标为 0,1,2,3。
func fourQuestionQuiz() *model.Quiz {
	quiz := &model.Quiz{
		UUIDBase:     model.UUIDBase{ID: "qz-1"},
		Title:        "Pointers",
		PassingScore: 70,
		XPReward:     50,
	}
	for i := 0; i < 4; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			UUIDBase:      model.UUIDBase{ID: questionID(i)},
			QuizID:        quiz.ID,
			Order:         i,
			Type:          model.QuestionTypeMCQ,
			Prompt:        "?",
			CorrectAnswer: i,
			Explanation:   "because",
		})
	}
	return quiz
}

func questionID(i int) string {
	return string(rune('a'+i)) + "-question"
}

func answersFor(indices ...int) []Answer {
	out := make([]Answer, len(indices))
	for i, a := range indices {
		out[i] = Answer{QuestionID: questionID(i), Answer: a}
	}
	return out
}

func TestGrade_ThreeOfFourPasses(t *testing.T) {
	quiz := fourQuestionQuiz()

	result := Grade(quiz, answersFor(0, 1, 2, 0), FullRewardOnPass)
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, 50, result.XPEarned)
}

func TestGrade_OneOfFourFails(t *testing.T) {
	quiz := fourQuestionQuiz()

	result := Grade(quiz, answersFor(1, 1, 1, 1), FullRewardOnPass)
	assert.Equal(t, 25, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.CorrectAnswers)
	// 未通过的尝试绝不拿到满额奖励
	assert.Equal(t, 0, result.XPEarned)
}

func TestGrade_GuestNeverEarnsXP(t *testing.T) {
	quiz := fourQuestionQuiz()

	result := Grade(quiz, answersFor(0, 1, 2, 3), NoXP)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.XPEarned)
}

func TestGrade_PartialCreditPolicyInjected(t *testing.T) {
	quiz := fourQuestionQuiz()
	halfOnFail := func(passed bool, score, xpReward int) int {
		if passed {
			return xpReward
		}
		return xpReward * score / 200
	}

	result := Grade(quiz, answersFor(0, 1, 1, 1), halfOnFail)
	assert.Equal(t, 50, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 12, result.XPEarned)
}

func TestGrade_MissingAnswersAreIncorrect(t *testing.T) {
	quiz := fourQuestionQuiz()

	result := Grade(quiz, []Answer{{QuestionID: questionID(0), Answer: 0}}, FullRewardOnPass)
	assert.Equal(t, 25, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
	require.Len(t, result.Results, 4)
	assert.Equal(t, NoAnswer, result.Results[1].UserAnswer)
	assert.False(t, result.Results[1].IsCorrect)
}

func TestGrade_ResultsPreserveQuestionOrder(t *testing.T) {
	quiz := fourQuestionQuiz()
	// shuffle the stored slice; grading must follow the order column
	quiz.Questions[0], quiz.Questions[3] = quiz.Questions[3], quiz.Questions[0]

	result := Grade(quiz, answersFor(0, 1, 2, 3), FullRewardOnPass)
	require.Len(t, result.Results, 4)
	for i, qr := range result.Results {
		assert.Equal(t, questionID(i), qr.QuestionID)
		assert.Equal(t, i, qr.CorrectAnswer)
		assert.Equal(t, "because", qr.Explanation)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	quiz := fourQuestionQuiz()
	answers := answersFor(0, 1, 2, 0)

	first := Grade(quiz, answers, FullRewardOnPass)
	second := Grade(quiz, answers, FullRewardOnPass)
	assert.Equal(t, first, second)
}

func TestGrade_RederivedAnswersReproduceScore(t *testing.T) {
	quiz := fourQuestionQuiz()

	first := Grade(quiz, answersFor(0, 1, 1, 3), FullRewardOnPass)

	rederived := make([]Answer, 0, len(first.Results))
	for _, qr := range first.Results {
		rederived = append(rederived, Answer{QuestionID: qr.QuestionID, Answer: qr.UserAnswer})
	}
	second := Grade(quiz, rederived, FullRewardOnPass)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.CorrectAnswers, second.CorrectAnswers)
}

func TestGrade_TrueFalseEncoding(t *testing.T) {
	quiz := &model.Quiz{
		UUIDBase:     model.UUIDBase{ID: "qz-tf"},
		PassingScore: 100,
		XPReward:     10,
		Questions: []model.Question{
			{
				UUIDBase:      model.UUIDBase{ID: "tf-1"},
				Type:          model.QuestionTypeTrueFalse,
				CorrectAnswer: model.AnswerTrue,
			},
			{
				UUIDBase:      model.UUIDBase{ID: "tf-2"},
				Type:          model.QuestionTypeTrueFalse,
				CorrectAnswer: model.AnswerFalse,
			},
		},
	}

	result := Grade(quiz, []Answer{
		{QuestionID: "tf-1", Answer: model.AnswerTrue},
		{QuestionID: "tf-2", Answer: model.AnswerFalse},
	}, FullRewardOnPass)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
}

func TestGrade_EmptyQuiz(t *testing.T) {
	quiz := &model.Quiz{UUIDBase: model.UUIDBase{ID: "qz-empty"}, PassingScore: 70}

	result := Grade(quiz, nil, FullRewardOnPass)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.False(t, result.Passed)
}
