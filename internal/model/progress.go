package model

import (
	"time"
)

// CourseProgress 每个 (user, course) 一行，首个完成事件时创建，
// 之后增量更新；除显式重置外不会删除。
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID string `gorm:"uniqueIndex:idx_user_course;type:varchar(36);not null" json:"courseId"`
	// TotalItems counts chapters and quizzes together; maintained when the
	// course structure changes, not recomputed by readers.
	TotalItems       int `gorm:"default:0" json:"totalItems"`
	TimeSpentMinutes int `gorm:"default:0" json:"timeSpentMinutes"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// ChapterCompletion 章节完成记录；(user, chapter) 唯一，重复完成为幂等。
// swagger:model ChapterCompletion
type ChapterCompletion struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_user_chapter;not null" json:"userId"`
	CourseID    string    `gorm:"index;type:varchar(36);not null" json:"courseId"`
	ChapterID   string    `gorm:"uniqueIndex:idx_user_chapter;type:varchar(36);not null" json:"chapterId"`
	XPEarned    int       `gorm:"default:0" json:"xpEarned"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (ChapterCompletion) TableName() string {
	return "chapter_completions"
}
