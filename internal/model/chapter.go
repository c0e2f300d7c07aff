package model

// Chapter 阅读章节
// swagger:model Chapter
type Chapter struct {
	UUIDBase
	CourseID         string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title            string `gorm:"size:255;not null" json:"title"`
	Order            int    `gorm:"column:chapter_order;default:0" json:"order"`
	Content          string `gorm:"type:longtext" json:"content"`
	EstimatedMinutes int    `gorm:"default:0" json:"estimatedMinutes"`
	XPReward         int    `gorm:"default:0" json:"xpReward"`
}

func (Chapter) TableName() string {
	return "chapters"
}
