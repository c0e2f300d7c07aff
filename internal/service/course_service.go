package service

import (
	"codelearn_backend/internal/config"
	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/repository"
	"codelearn_backend/internal/util"
	"codelearn_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheKey      = "catalog:list"
	coursePathKeyPrefix  = "catalog:path:"
	courseCacheKeyPrefix = "catalog:course:"
)

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	ChapterRepo *repository.ChapterRepository
	QuizRepo    *repository.QuizRepository
	Redis       *redis.Client
	Config      *config.Config
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	chapterRepo *repository.ChapterRepository,
	quizRepo *repository.QuizRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		ChapterRepo: chapterRepo,
		QuizRepo:    quizRepo,
		Redis:       rdb,
		Config:      cfg,
	}
}

func (s *CourseService) cacheTTL() time.Duration {
	return time.Duration(s.Config.Learning.CatalogCacheTTLMinutes) * time.Minute
}

// ---- 学员端视图 ----

// CourseSummary 目录列表项
type CourseSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ItemCount   int    `json:"itemCount"`
}

// PathItemView 学习路径条目的学员视图
type PathItemView struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType"`
	Position int    `json:"position"`
	Title    string `json:"title"`
}

// NavigationView 当前条目及其前后邻居
type NavigationView struct {
	Index int           `json:"index"`
	Prev  *PathItemView `json:"prev"`
	Next  *PathItemView `json:"next"`
}

// QuestionView 不含答案的题目视图，下发给答题端
type QuestionView struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Prompt  string          `json:"prompt"`
	Options json.RawMessage `json:"options"`
}

// QuizView 学员可见的测验信息
type QuizView struct {
	ID           string         `json:"id"`
	CourseID     string         `json:"courseId"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PassingScore int            `json:"passingScore"`
	XPReward     int            `json:"xpReward"`
	Questions    []QuestionView `json:"questions"`
}

func (s *CourseService) ListCourses(ctx context.Context) ([]CourseSummary, error) {
	if val, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
		var cached []CourseSummary
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		logger.Log.Warn("catalog cache read failed", zap.Error(err))
	}

	courses, err := s.CourseRepo.FindAll(true)
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		count, err := s.CourseRepo.CountPathItems(c.ID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			// 老课程没有结构化路径，按章节数回退
			chapters, err := s.ChapterRepo.FindByCourse(c.ID)
			if err != nil {
				return nil, err
			}
			count = int64(len(chapters))
		}
		summaries = append(summaries, CourseSummary{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Icon:        c.Icon,
			ItemCount:   int(count),
		})
	}

	if data, err := json.Marshal(summaries); err == nil {
		s.Redis.Set(ctx, catalogCacheKey, data, s.cacheTTL())
	}
	return summaries, nil
}

// GetCourse 返回完整课程（含路径、章节、测验），管理端专用。
func (s *CourseService) GetCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// GetLearningPath 返回课程的有序学习路径。无手工路径时回退到按
// 章节顺序生成的路径，跳过无法解析的条目。
func (s *CourseService) GetLearningPath(ctx context.Context, courseID string) ([]PathItemView, error) {
	cacheKey := coursePathKeyPrefix + courseID
	if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var cached []PathItemView
		if json.Unmarshal([]byte(val), &cached) == nil {
			return cached, nil
		}
	}

	entries, err := s.resolvedEntries(courseID)
	if err != nil {
		return nil, err
	}

	items := make([]PathItemView, 0, len(entries))
	for i, e := range entries {
		items = append(items, PathItemView{
			ItemID:   learning.EntryItemID(&entries[i]),
			ItemType: e.ItemType,
			Position: i,
			Title:    entryTitle(&entries[i]),
		})
	}

	if data, err := json.Marshal(items); err == nil {
		s.Redis.Set(ctx, cacheKey, data, s.cacheTTL())
	}
	return items, nil
}

// Navigate 定位 currentItemID 在路径中的位置，返回前后条目。
func (s *CourseService) Navigate(courseID, currentItemID string) (*NavigationView, error) {
	entries, err := s.resolvedEntries(courseID)
	if err != nil {
		return nil, err
	}

	loc := learning.Locate(entries, currentItemID)
	view := &NavigationView{Index: loc.Index}
	if loc.Prev != nil {
		view.Prev = &PathItemView{
			ItemID:   learning.EntryItemID(loc.Prev),
			ItemType: loc.Prev.ItemType,
			Title:    entryTitle(loc.Prev),
		}
	}
	if loc.Next != nil {
		view.Next = &PathItemView{
			ItemID:   learning.EntryItemID(loc.Next),
			ItemType: loc.Next.ItemType,
			Title:    entryTitle(loc.Next),
		}
	}
	return view, nil
}

// resolvedEntries 加载课程路径。引用已删除内容的项先被剔除；
// 剔除后路径为空时按章节顺序合成回退路径。
func (s *CourseService) resolvedEntries(courseID string) ([]model.LearningPathEntry, error) {
	course, err := s.CourseRepo.FindByIDFull(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	entries := learning.PrunePath(course.Entries)
	if len(entries) == 0 {
		return learning.ChapterFallbackPath(course.Chapters), nil
	}
	return entries, nil
}

func entryTitle(e *model.LearningPathEntry) string {
	switch {
	case e.Chapter != nil:
		return e.Chapter.Title
	case e.Quiz != nil:
		return e.Quiz.Title
	}
	return ""
}

func (s *CourseService) GetChapter(id string) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}

// GetQuizForTaking 返回剥掉答案和解析的测验视图。
func (s *CourseService) GetQuizForTaking(id string) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !quiz.IsPublished {
		return nil, util.ErrQuizNotPublished
	}

	view := &QuizView{
		ID:           quiz.ID,
		CourseID:     quiz.CourseID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		PassingScore: quiz.PassingScore,
		XPReward:     quiz.XPReward,
		Questions:    make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		options := json.RawMessage(q.Options)
		if len(options) == 0 {
			options = json.RawMessage("[]")
		}
		view.Questions = append(view.Questions, QuestionView{
			ID:      q.ID,
			Type:    q.Type,
			Prompt:  q.Prompt,
			Options: options,
		})
	}
	return view, nil
}

// ---- 管理端 ----

type CourseRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Icon        string `json:"icon" binding:"omitempty,max=255"`
	IsPublished bool   `json:"isPublished"`
}

type ChapterRequest struct {
	Title            string `json:"title" binding:"required,max=255"`
	Order            int    `json:"order" binding:"gte=0"`
	Content          string `json:"content"`
	EstimatedMinutes int    `json:"estimatedMinutes" binding:"gte=0"`
	XPReward         int    `json:"xpReward" binding:"gte=0"`
}

type QuestionRequest struct {
	Type          string   `json:"type" binding:"required,oneof=mcq true-false"`
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer" binding:"gte=0"`
	Explanation   string   `json:"explanation"`
}

type QuizRequest struct {
	Title        string            `json:"title" binding:"required,max=255"`
	Description  string            `json:"description"`
	PassingScore int               `json:"passingScore" binding:"gte=0,lte=100"`
	XPReward     int               `json:"xpReward" binding:"gte=0"`
	IsPublished  bool              `json:"isPublished"`
	Questions    []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type PathEntryRequest struct {
	ItemType string `json:"itemType" binding:"required,oneof=chapter quiz"`
	ItemID   string `json:"itemId" binding:"required,uuid"`
}

func (s *CourseService) CreateCourse(creatorID uint, req *CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		IsPublished: req.IsPublished,
		CreatorID:   creatorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog(course.ID)
	return course, nil
}

func (s *CourseService) UpdateCourse(id string, req *CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Icon = req.Icon
	course.IsPublished = req.IsPublished
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog(id)
	return course, nil
}

func (s *CourseService) DeleteCourse(id string) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(id)
	return nil
}

func (s *CourseService) CreateChapter(courseID string, req *ChapterRequest) (*model.Chapter, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	chapter := &model.Chapter{
		CourseID:         courseID,
		Title:            req.Title,
		Order:            req.Order,
		Content:          req.Content,
		EstimatedMinutes: req.EstimatedMinutes,
		XPReward:         req.XPReward,
	}
	if err := s.ChapterRepo.Create(chapter); err != nil {
		return nil, err
	}
	s.invalidateCatalog(courseID)
	return chapter, nil
}

func (s *CourseService) UpdateChapter(id string, req *ChapterRequest) (*model.Chapter, error) {
	chapter, err := s.ChapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}

	chapter.Title = req.Title
	chapter.Order = req.Order
	chapter.Content = req.Content
	chapter.EstimatedMinutes = req.EstimatedMinutes
	chapter.XPReward = req.XPReward
	if err := s.ChapterRepo.Update(chapter); err != nil {
		return nil, err
	}
	s.invalidateCatalog(chapter.CourseID)
	return chapter, nil
}

func (s *CourseService) DeleteChapter(id string) error {
	chapter, err := s.ChapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChapterNotFound
		}
		return err
	}
	if err := s.ChapterRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(chapter.CourseID)
	return nil
}

func (s *CourseService) CreateQuiz(courseID string, req *QuizRequest) (*model.Quiz, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	quiz := &model.Quiz{
		CourseID:     courseID,
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		XPReward:     req.XPReward,
		IsPublished:  req.IsPublished,
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	s.invalidateCatalog(courseID)
	return quiz, nil
}

func (s *CourseService) UpdateQuiz(id string, req *QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.PassingScore = req.PassingScore
	quiz.XPReward = req.XPReward
	quiz.IsPublished = req.IsPublished

	// 题目整体替换
	err = s.QuizRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = id
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		quiz.Questions = nil
		return tx.Save(quiz).Error
	})
	if err != nil {
		return nil, err
	}

	quiz.Questions = questions
	s.invalidateCatalog(quiz.CourseID)
	return quiz, nil
}

func (s *CourseService) DeleteQuiz(id string) error {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(quiz.CourseID)
	return nil
}

// SetLearningPath 整体替换课程学习路径，条目必须引用本课程已有的
// 章节或测验。
func (s *CourseService) SetLearningPath(courseID string, entries []PathEntryRequest) error {
	course, err := s.CourseRepo.FindByIDFull(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	chapterIDs := make(map[string]bool, len(course.Chapters))
	for _, c := range course.Chapters {
		chapterIDs[c.ID] = true
	}
	quizIDs := make(map[string]bool, len(course.Quizzes))
	for _, q := range course.Quizzes {
		quizIDs[q.ID] = true
	}

	models := make([]model.LearningPathEntry, 0, len(entries))
	for i, e := range entries {
		entry := model.LearningPathEntry{
			CourseID: courseID,
			Position: i,
			ItemType: e.ItemType,
		}
		switch e.ItemType {
		case model.ItemTypeChapter:
			if !chapterIDs[e.ItemID] {
				return fmt.Errorf("path entry %d: chapter %s not in course: %w", i, e.ItemID, util.ErrChapterNotFound)
			}
			id := e.ItemID
			entry.ChapterID = &id
		case model.ItemTypeQuiz:
			if !quizIDs[e.ItemID] {
				return fmt.Errorf("path entry %d: quiz %s not in course: %w", i, e.ItemID, util.ErrQuizNotFound)
			}
			id := e.ItemID
			entry.QuizID = &id
		}
		models = append(models, entry)
	}

	if err := s.CourseRepo.ReplacePath(courseID, models); err != nil {
		return err
	}
	s.invalidateCatalog(courseID)
	return nil
}

func (s *CourseService) invalidateCatalog(courseID string) {
	ctx := context.Background()
	if err := s.Redis.Del(ctx,
		catalogCacheKey,
		coursePathKeyPrefix+courseID,
		courseCacheKeyPrefix+courseID,
	).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed",
			zap.String("courseId", courseID), zap.Error(err))
	}
}

func buildQuestions(reqs []QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i, q := range reqs {
		options := q.Options
		if q.Type == model.QuestionTypeTrueFalse {
			options = []string{"True", "False"}
		}
		if q.CorrectAnswer >= len(options) {
			return nil, fmt.Errorf("question %d: correctAnswer %d out of range", i, q.CorrectAnswer)
		}
		encoded, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		questions = append(questions, model.Question{
			Order:         i,
			Type:          q.Type,
			Prompt:        q.Prompt,
			Options:       string(encoded),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return questions, nil
}
