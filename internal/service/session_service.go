package service

import (
	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/util"
	"codelearn_backend/pkg/monitoring"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
)

const sessionIdleTimeout = 2 * time.Hour

type sessionEntry struct {
	session  *learning.QuizSession
	lastUsed time.Time
}

// QuizLoader 会话创建时加载测验，repository.QuizRepository 满足该接口。
type QuizLoader interface {
	FindByID(id string) (*model.Quiz, error)
}

// SessionService 托管进行中的测验会话。会话只活在内存里：
// 进程重启后学员重新开始即可，评分结果本身由提交通道落库。
type SessionService struct {
	Quizzes     QuizLoader
	QuizService *QuizService

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	stop     chan struct{}
}

func NewSessionService(quizzes QuizLoader, quizService *QuizService) *SessionService {
	s := &SessionService{
		Quizzes:     quizzes,
		QuizService: quizService,
		sessions:    make(map[string]*sessionEntry),
		stop:        make(chan struct{}),
	}
	go s.reapLoop()
	return s
}

// CreateSession 为一次测验开启新会话。userID 为 0 时按游客模式创建。
func (s *SessionService) CreateSession(userID uint, quizID string) (learning.SessionSnapshot, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return learning.SessionSnapshot{}, util.ErrQuizNotFound
		}
		return learning.SessionSnapshot{}, err
	}
	if !quiz.IsPublished {
		return learning.SessionSnapshot{}, util.ErrQuizNotPublished
	}

	mode := learning.ModeAuthenticated
	if userID == 0 {
		mode = learning.ModeGuest
	}

	session := learning.NewQuizSession(quiz, mode, userID)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session, lastUsed: time.Now()}
	// 快照必须在锁内取，注册之后会话就可能被其他请求并发推进
	snapshot := session.Snapshot()
	s.mu.Unlock()

	monitoring.ActiveQuizSessions.Inc()
	return snapshot, nil
}

// withSession 在锁内执行会话操作，顺带刷新活跃时间。
func (s *SessionService) withSession(sessionID string, userID uint, fn func(*learning.QuizSession) error) (learning.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return learning.SessionSnapshot{}, util.ErrSessionNotFound
	}
	// 会话属主校验：游客会话 UserID 为 0，任何人持有 id 即可操作
	if entry.session.UserID != 0 && entry.session.UserID != userID {
		return learning.SessionSnapshot{}, util.ErrSessionNotFound
	}

	if err := fn(entry.session); err != nil {
		return learning.SessionSnapshot{}, err
	}
	entry.lastUsed = time.Now()
	return entry.session.Snapshot(), nil
}

func (s *SessionService) GetSession(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(*learning.QuizSession) error { return nil })
}

func (s *SessionService) Start(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.Start()
	})
}

func (s *SessionService) SelectAnswer(sessionID string, userID uint, questionID string, answer int) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.SelectAnswer(questionID, answer)
	})
}

func (s *SessionService) Next(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.Next()
	})
}

func (s *SessionService) Prev(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.Prev()
	})
}

// Submit 按会话模式选择评分通道：登录用户走落库提交，游客走本地评分。
func (s *SessionService) Submit(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		var grader learning.Grader
		if sess.Mode == learning.ModeAuthenticated {
			grader = func(quiz *model.Quiz, answers []learning.Answer) (*learning.QuizResult, error) {
				return s.QuizService.Submit(sess.UserID, quiz.ID, answers)
			}
		} else {
			grader = func(quiz *model.Quiz, answers []learning.Answer) (*learning.QuizResult, error) {
				return learning.Grade(quiz, answers, learning.NoXP), nil
			}
		}
		_, err := sess.Submit(grader)
		return err
	})
}

func (s *SessionService) Retake(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.Retake()
	})
}

func (s *SessionService) Review(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.Review()
	})
}

func (s *SessionService) ReviewNext(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.ReviewNext()
	})
}

func (s *SessionService) ReviewPrev(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.ReviewPrev()
	})
}

// ReviewItem 当前回顾游标下的单题结果。
func (s *SessionService) ReviewItem(sessionID string, userID uint) (*learning.QuestionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	if entry.session.UserID != 0 && entry.session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}

	item := entry.session.ReviewItem()
	if item == nil {
		return nil, learning.ErrInvalidTransition
	}
	entry.lastUsed = time.Now()
	return item, nil
}

func (s *SessionService) ExitReview(sessionID string, userID uint) (learning.SessionSnapshot, error) {
	return s.withSession(sessionID, userID, func(sess *learning.QuizSession) error {
		return sess.ExitReview()
	})
}

// EndSession 主动丢弃会话。
func (s *SessionService) EndSession(sessionID string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return util.ErrSessionNotFound
	}
	if entry.session.UserID != 0 && entry.session.UserID != userID {
		return util.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	monitoring.ActiveQuizSessions.Dec()
	return nil
}

func (s *SessionService) Close() {
	close(s.stop)
}

// reapLoop 定期回收空闲会话。
func (s *SessionService) reapLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.reap()
		}
	}
}

func (s *SessionService) reap() {
	cutoff := time.Now().Add(-sessionIdleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if entry.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			monitoring.ActiveQuizSessions.Dec()
		}
	}
}
