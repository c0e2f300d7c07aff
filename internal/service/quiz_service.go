package service

import (
	"codelearn_backend/internal/config"
	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/repository"
	"codelearn_backend/internal/util"
	"codelearn_backend/pkg/logger"
	"codelearn_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	UserService *UserService
	Config      *config.Config
}

func NewQuizService(quizRepo *repository.QuizRepository, userService *UserService, cfg *config.Config) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		UserService: userService,
		Config:      cfg,
	}
}

type SubmitQuizRequest struct {
	Answers []learning.Answer `json:"answers" binding:"required,dive"`
}

// xpPolicy 读取配置里的未通过部分奖励比例。
func (s *QuizService) xpPolicy() learning.XPPolicy {
	percent := s.Config.Learning.FailedAttemptXPPercent
	if percent <= 0 {
		return learning.FullRewardOnPass
	}
	return func(passed bool, score, xpReward int) int {
		if passed {
			return xpReward
		}
		return xpReward * percent / 100
	}
}

func (s *QuizService) loadPublished(quizID string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}
	return quiz, nil
}

// Submit 评分并落库一次登录用户的提交。XP 只在首次通过时发放，
// 重考通过不重复加经验，但结果记录始终保留。
func (s *QuizService) Submit(userID uint, quizID string, answers []learning.Answer) (*learning.QuizResult, error) {
	quiz, err := s.loadPublished(quizID)
	if err != nil {
		return nil, err
	}

	result := learning.Grade(quiz, answers, s.xpPolicy())

	passedBefore, err := s.QuizRepo.HasPassed(userID, quizID)
	if err != nil {
		return nil, err
	}
	if passedBefore {
		result.XPEarned = 0
	}

	details, err := json.Marshal(result.Results)
	if err != nil {
		return nil, err
	}

	record := &model.QuizResult{
		UserID:         userID,
		QuizID:         quizID,
		CourseID:       quiz.CourseID,
		Score:          result.Score,
		Passed:         result.Passed,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		XPEarned:       result.XPEarned,
		Details:        string(details),
		SubmittedAt:    time.Now(),
	}
	if err := s.QuizRepo.SaveResult(record); err != nil {
		return nil, err
	}

	if err := s.UserService.AwardXP(userID, result.XPEarned); err != nil {
		// 提交已落库，经验发放失败只记日志
		logger.Log.Error("xp award failed",
			zap.Uint("userId", userID),
			zap.String("quizId", quizID),
			zap.Error(err))
	}
	// 只有通过的尝试算有效学习日
	if result.Passed {
		if err := s.UserService.TouchStreak(userID); err != nil {
			logger.Log.Error("streak update failed",
				zap.Uint("userId", userID),
				zap.String("quizId", quizID),
				zap.Error(err))
		}
	}

	monitoring.QuizSubmissions.WithLabelValues("authenticated", outcomeLabel(result.Passed)).Inc()
	return result, nil
}

// SubmitGuest 游客提交：只评分，不落库，XP 恒为 0。
func (s *QuizService) SubmitGuest(quizID string, answers []learning.Answer) (*learning.QuizResult, error) {
	quiz, err := s.loadPublished(quizID)
	if err != nil {
		return nil, err
	}

	result := learning.Grade(quiz, answers, learning.NoXP)
	monitoring.QuizSubmissions.WithLabelValues("guest", outcomeLabel(result.Passed)).Inc()
	return result, nil
}

func (s *QuizService) ResultsByUser(userID uint) ([]model.QuizResult, error) {
	return s.QuizRepo.FindResultsByUser(userID)
}

func outcomeLabel(passed bool) string {
	if passed {
		return "passed"
	}
	return "failed"
}
