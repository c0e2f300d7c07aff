package repository

import (
	"codelearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

// Delete 连带删除题目和引用该测验的路径项。
func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.LearningPathEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

// FindByID 加载测验及题目，题目按 question_order 排序。
func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order ASC")
		}).
		First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByCourse(courseID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("course_id = ?", courseID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order ASC")
		}).
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) SaveResult(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizRepository) FindResultsByUser(userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

func (r *QuizRepository) FindResultsByUserAndCourse(userID uint, courseID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("submitted_at ASC").
		Find(&results).Error
	return results, err
}

// HasPassed 判断该用户此前是否已通过该测验，用于防止重复发放经验值。
func (r *QuizRepository) HasPassed(userID uint, quizID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ? AND quiz_id = ? AND passed = ?", userID, quizID, true).
		Count(&count).Error
	return count > 0, err
}
