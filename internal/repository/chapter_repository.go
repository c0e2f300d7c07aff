package repository

import (
	"codelearn_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

// Delete 连带删除引用该章节的路径项，避免残留悬空引用。
func (r *ChapterRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", id).Delete(&model.LearningPathEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chapter{}, "id = ?", id).Error
	})
}

func (r *ChapterRepository) FindByID(id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.First(&chapter, "id = ?", id).Error
	return &chapter, err
}

func (r *ChapterRepository) FindByCourse(courseID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("course_id = ?", courseID).
		Order("chapter_order ASC").
		Find(&chapters).Error
	return chapters, err
}
