package service

import (
	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/repository"
	"codelearn_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// UserProfile 用户档案视图：账号信息加等级进度
type UserProfile struct {
	User  *model.User        `json:"user"`
	Level learning.LevelInfo `json:"level"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
	Streak int    `json:"streak"`
}

func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return &UserProfile{
		User:  user,
		Level: learning.LevelOf(user.XP),
	}, nil
}

type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=100"`
	Avatar string `json:"avatar" binding:"omitempty,max=255"`
}

func (s *UserService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			Name:   u.Name,
			Avatar: u.Avatar,
			XP:     u.XP,
			Level:  learning.LevelOf(u.XP).Level,
			Streak: u.Streak,
		})
	}
	return entries, nil
}

// AwardXP 给用户加经验值。连续天数单独由 TouchStreak 维护，
// 因为未通过的尝试可能按政策获得部分 XP 但不算有效学习日。
func (s *UserService) AwardXP(userID uint, xp int) error {
	if xp <= 0 {
		return nil
	}
	return s.UserRepo.UpdateXP(userID, xp)
}

// TouchStreak 记录一次有效学习活动（完成章节或通过测验）。
// 同一天内的重复活动不重复计数。
func (s *UserService) TouchStreak(userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	next, changed := nextStreak(user.Streak, user.LastStreakAt, time.Now())
	if !changed {
		return nil
	}
	return s.UserRepo.UpdateStreak(userID, next, time.Now())
}

// nextStreak 连续学习天数推进规则：同日不变，连续日 +1，中断重置为 1。
func nextStreak(current int, last, now time.Time) (int, bool) {
	today := dateOnly(now)
	lastDay := dateOnly(last)

	switch {
	case lastDay.Equal(today):
		return current, false
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return current + 1, true
	default:
		return 1, true
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ---- 管理端 ----

func (s *UserService) ListUsers(page, pageSize int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.FindAll(page, pageSize)
}

func (s *UserService) SetUserDisabled(userID uint, disabled bool) error {
	_, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.UserRepo.SetDisabled(userID, disabled)
}
