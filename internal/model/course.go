package model

const (
	ItemTypeChapter = "chapter"
	ItemTypeQuiz    = "quiz"
)

// Course 课程（domain）：章节与测验的有序集合
// swagger:model Course
type Course struct {
	UUIDBase
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	CreatorID   uint   `gorm:"index;type:bigint unsigned" json:"creatorId"`

	// Entries is the authored learning path. Position defines traversal
	// order. Courses created before path authoring existed have no entries
	// and fall back to chapter order.
	Entries  []LearningPathEntry `gorm:"foreignKey:CourseID" json:"learningPath,omitempty"`
	Chapters []Chapter           `gorm:"foreignKey:CourseID" json:"chapters,omitempty"`
	Quizzes  []Quiz              `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// LearningPathEntry 学习路径中的一项：章节或测验引用
// The referenced item may be preloaded (Chapter/Quiz non-nil) or carried as
// a bare id; both shapes resolve through learning.EntryItemID.
// swagger:model LearningPathEntry
type LearningPathEntry struct {
	BaseModel
	CourseID  string  `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Position  int     `gorm:"not null" json:"position"`
	ItemType  string  `gorm:"size:20;not null" json:"itemType"` // chapter | quiz
	ChapterID *string `gorm:"type:varchar(36)" json:"chapterId,omitempty"`
	QuizID    *string `gorm:"type:varchar(36)" json:"quizId,omitempty"`

	Chapter *Chapter `gorm:"foreignKey:ChapterID" json:"chapter,omitempty"`
	Quiz    *Quiz    `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
}

func (LearningPathEntry) TableName() string {
	return "learning_path_entries"
}
