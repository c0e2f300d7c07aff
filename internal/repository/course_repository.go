package repository

import (
	"codelearn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete 连带删除路径、章节、测验与题目。
func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.LearningPathEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Chapter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)",
			tx.Model(&model.Quiz{}).Select("id").Where("course_id = ?", id),
		).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

// FindByIDFull 加载课程及其学习路径、章节和测验，路径条目按 position 排序。
func (r *CourseRepository) FindByIDFull(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Entries.Chapter").
		Preload("Entries.Quiz").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapter_order ASC")
		}).
		Preload("Quizzes").
		First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) FindAll(publishedOnly bool) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Order("created_at ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Find(&courses).Error
	return courses, err
}

// ReplacePath 重建课程学习路径，整体替换旧条目。
func (r *CourseRepository) ReplacePath(courseID string, entries []model.LearningPathEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&model.LearningPathEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *CourseRepository) CountPathItems(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningPathEntry{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
