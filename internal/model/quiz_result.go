package model

import (
	"time"
)

// QuizResult 记录一次测验提交的评分结果。创建后不可变：
// 分数可以随时由 Quiz + Answers 重新推导。
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	UserID         uint   `gorm:"index;not null" json:"userId"`
	QuizID         string `gorm:"index;type:varchar(36);not null" json:"quizId"`
	CourseID       string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Score          int    `gorm:"not null" json:"score"` // 0-100, rounded
	Passed         bool   `gorm:"default:false" json:"passed"`
	CorrectAnswers int    `gorm:"not null" json:"correctAnswers"`
	TotalQuestions int    `gorm:"not null" json:"totalQuestions"`
	XPEarned       int    `gorm:"default:0" json:"xpEarned"`
	// Details holds the per-question results as JSON so review screens never
	// need to re-fetch the answer key.
	Details     string    `gorm:"type:text" json:"details"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
