package learning

import (
	"math"
	"sort"

	"codelearn_backend/internal/model"
)

// NoAnswer marks a question the learner never answered.
const NoAnswer = -1

// Answer is one submitted answer, index-encoded to mirror the question key
// (mcq: option position, true-false: 0=true, 1=false).
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     int    `json:"answer"`
}

// QuestionResult carries enough per-question information to render a full
// review without re-fetching the quiz's answer key.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	IsCorrect     bool   `json:"isCorrect"`
	UserAnswer    int    `json:"userAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// QuizResult 一次评分的完整结果。评分为纯函数，结果可随时重新推导。
type QuizResult struct {
	Score          int              `json:"score"` // 0-100, rounded
	Passed         bool             `json:"passed"`
	CorrectAnswers int              `json:"correctAnswers"`
	TotalQuestions int              `json:"totalQuestions"`
	XPEarned       int              `json:"xpEarned"`
	Results        []QuestionResult `json:"results"`
}

// XPPolicy 决定一次评分获得的 XP。未通过时的部分奖励政策是可配置项，
// 不在引擎内写死。
type XPPolicy func(passed bool, score, xpReward int) int

// FullRewardOnPass 默认服务端政策：通过得满额奖励，未通过得 0。
func FullRewardOnPass(passed bool, score, xpReward int) int {
	if passed {
		return xpReward
	}
	return 0
}

// NoXP 游客政策：游客 XP 从不落库，无论得分恒为 0。
func NoXP(passed bool, score, xpReward int) int {
	return 0
}

// Grade 按题目原始顺序对一次提交评分。缺失的答案按答错计，
// 部分提交同样可评分，不会出错。
func Grade(quiz *model.Quiz, answers []Answer, policy XPPolicy) *QuizResult {
	if policy == nil {
		policy = FullRewardOnPass
	}

	byQuestion := make(map[string]int, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	questions := make([]model.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	result := &QuizResult{
		TotalQuestions: len(questions),
		Results:        make([]QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		userAnswer, answered := byQuestion[q.ID]
		if !answered {
			userAnswer = NoAnswer
		}
		correct := answered && userAnswer == q.CorrectAnswer
		if correct {
			result.CorrectAnswers++
		}
		result.Results = append(result.Results, QuestionResult{
			QuestionID:    q.ID,
			IsCorrect:     correct,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	if result.TotalQuestions > 0 {
		result.Score = int(math.Round(float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100))
	}
	result.Passed = result.Score >= quiz.PassingScore
	result.XPEarned = policy(result.Passed, result.Score, quiz.XPReward)
	return result
}
