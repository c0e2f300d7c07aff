package model

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeTrueFalse = "true-false"
)

// True/false answers share the option-index encoding used by mcq questions.
const (
	AnswerTrue  = 0
	AnswerFalse = 1
)

// Quiz 测验：带通过线与 XP 奖励的评估单元
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	CourseID     string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PassingScore int    `gorm:"default:70" json:"passingScore"` // percentage 0-100
	XPReward     int    `gorm:"default:0" json:"xpReward"`
	IsPublished  bool   `gorm:"default:false" json:"isPublished"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question 测验题目。Options 为 JSON 数组，CorrectAnswer 为选项下标
// (true-false: 0=true, 1=false)。
// swagger:model Question
type Question struct {
	UUIDBase
	QuizID        string `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Order         int    `gorm:"column:question_order;default:0" json:"order"`
	Type          string `gorm:"size:20;not null" json:"type"` // mcq | true-false
	Prompt        string `gorm:"type:text;not null" json:"prompt"`
	Options       string `gorm:"type:text" json:"options"` // JSON array of option texts
	CorrectAnswer int    `gorm:"not null" json:"correctAnswer"`
	Explanation   string `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}
