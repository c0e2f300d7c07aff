package repository

import (
	"codelearn_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate 获取用户在指定课程的进度记录，不存在则创建。
func (r *ProgressRepository) GetOrCreate(userID uint, courseID string, totalItems int) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.CourseProgress{
			UserID:     userID,
			CourseID:   courseID,
			TotalItems: totalItems,
		}
		if err := r.DB.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}

	// 路径结构变化后同步总数
	if progress.TotalItems != totalItems {
		progress.TotalItems = totalItems
		if err := r.DB.Model(&progress).Update("total_items", totalItems).Error; err != nil {
			return nil, err
		}
	}
	return &progress, nil
}

func (r *ProgressRepository) AddTime(userID uint, courseID string, minutes int) error {
	return r.DB.Model(&model.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("time_spent_minutes", gorm.Expr("time_spent_minutes + ?", minutes)).
		Error
}

func (r *ProgressRepository) FindCompletions(userID uint, courseID string) ([]model.ChapterCompletion, error) {
	var completions []model.ChapterCompletion
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&completions).Error
	return completions, err
}

func (r *ProgressRepository) HasCompletedChapter(userID uint, chapterID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ChapterCompletion{}).
		Where("user_id = ? AND chapter_id = ?", userID, chapterID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CreateCompletion(userID uint, courseID, chapterID string, xp int) error {
	completion := model.ChapterCompletion{
		UserID:      userID,
		CourseID:    courseID,
		ChapterID:   chapterID,
		XPEarned:    xp,
		CompletedAt: time.Now(),
	}
	return r.DB.Create(&completion).Error
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.CourseProgress, error) {
	var records []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}
