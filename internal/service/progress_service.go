package service

import (
	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/repository"
	"codelearn_backend/internal/util"
	"errors"
	"sort"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	ChapterRepo  *repository.ChapterRepository
	QuizRepo     *repository.QuizRepository
	UserService  *UserService
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	chapterRepo *repository.ChapterRepository,
	quizRepo *repository.QuizRepository,
	userService *UserService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		ChapterRepo:  chapterRepo,
		QuizRepo:     quizRepo,
		UserService:  userService,
	}
}

// CourseProgressView 课程页展示的进度汇总
type CourseProgressView struct {
	CourseID         string   `json:"courseId"`
	Completed        int      `json:"completed"`
	Total            int      `json:"total"`
	Percentage       int      `json:"percentage"`
	CompletedItemIDs []string `json:"completedItemIds"`
	TimeSpentMinutes int      `json:"timeSpentMinutes"`
}

// GetCourseProgress 聚合已完成章节与已通过测验。游客恒为零进度。
func (s *ProgressService) GetCourseProgress(userID uint, courseID string) (*CourseProgressView, error) {
	total, err := s.pathTotal(courseID)
	if err != nil {
		return nil, err
	}

	if userID == 0 {
		summary := learning.GuestProgress(total)
		return &CourseProgressView{
			CourseID:         courseID,
			Completed:        summary.Completed,
			Total:            summary.Total,
			Percentage:       summary.Percentage,
			CompletedItemIDs: []string{},
		}, nil
	}

	record, err := s.ProgressRepo.GetOrCreate(userID, courseID, total)
	if err != nil {
		return nil, err
	}

	completions, err := s.ProgressRepo.FindCompletions(userID, courseID)
	if err != nil {
		return nil, err
	}
	results, err := s.QuizRepo.FindResultsByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	rec := learning.ProgressRecord{
		CompletedChapterIDs: make([]string, 0, len(completions)),
		QuizResults:         make([]learning.QuizOutcome, 0, len(results)),
		TotalItems:          record.TotalItems,
	}
	for _, c := range completions {
		rec.CompletedChapterIDs = append(rec.CompletedChapterIDs, c.ChapterID)
	}
	for _, r := range results {
		rec.QuizResults = append(rec.QuizResults, learning.QuizOutcome{
			QuizID: r.QuizID,
			Passed: r.Passed,
		})
	}

	summary := learning.Aggregate(rec)

	ids := make([]string, 0, len(summary.CompletedIDs))
	for id := range summary.CompletedIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &CourseProgressView{
		CourseID:         courseID,
		Completed:        summary.Completed,
		Total:            summary.Total,
		Percentage:       summary.Percentage,
		CompletedItemIDs: ids,
		TimeSpentMinutes: record.TimeSpentMinutes,
	}, nil
}

// CompleteChapter 标记章节完成。重复完成幂等，只有首次发放 XP。
func (s *ProgressService) CompleteChapter(userID uint, courseID, chapterID string) (*CourseProgressView, error) {
	chapter, err := s.ChapterRepo.FindByID(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	if chapter.CourseID != courseID {
		return nil, util.ErrChapterNotFound
	}

	done, err := s.ProgressRepo.HasCompletedChapter(userID, chapterID)
	if err != nil {
		return nil, err
	}

	if !done {
		total, err := s.pathTotal(courseID)
		if err != nil {
			return nil, err
		}
		if _, err := s.ProgressRepo.GetOrCreate(userID, courseID, total); err != nil {
			return nil, err
		}
		if err := s.ProgressRepo.CreateCompletion(userID, courseID, chapterID, chapter.XPReward); err != nil {
			return nil, err
		}
		if err := s.UserService.AwardXP(userID, chapter.XPReward); err != nil {
			return nil, err
		}
		if err := s.UserService.TouchStreak(userID); err != nil {
			return nil, err
		}
	}

	return s.GetCourseProgress(userID, courseID)
}

// AddTime 记录学习时长（分钟）。
func (s *ProgressService) AddTime(userID uint, courseID string, minutes int) error {
	if minutes <= 0 {
		return nil
	}
	total, err := s.pathTotal(courseID)
	if err != nil {
		return err
	}
	if _, err := s.ProgressRepo.GetOrCreate(userID, courseID, total); err != nil {
		return err
	}
	return s.ProgressRepo.AddTime(userID, courseID, minutes)
}

// Overview 用户所有课程的进度快照
func (s *ProgressService) Overview(userID uint) ([]CourseProgressView, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]CourseProgressView, 0, len(records))
	for _, r := range records {
		view, err := s.GetCourseProgress(userID, r.CourseID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// pathTotal 数学习路径条目数。引用已删除内容的项不计入，否则完成度
// 会被永久卡在 100% 以下；无可用路径时回退到章节数。
func (s *ProgressService) pathTotal(courseID string) (int, error) {
	course, err := s.CourseRepo.FindByIDFull(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrCourseNotFound
		}
		return 0, err
	}

	if entries := learning.PrunePath(course.Entries); len(entries) > 0 {
		return len(entries), nil
	}
	return len(course.Chapters), nil
}
