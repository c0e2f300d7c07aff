package learning

import (
	"errors"

	"github.com/google/uuid"

	"codelearn_backend/internal/model"
)

type SessionState string

const (
	StateStart    SessionState = "start"
	StateQuestion SessionState = "question"
	StateResults  SessionState = "results"
	StateReview   SessionState = "review"
)

type SessionMode string

const (
	ModeAuthenticated SessionMode = "authenticated"
	ModeGuest         SessionMode = "guest"
)

var (
	ErrLoginRequired        = errors.New("login required to start quiz")
	ErrInvalidTransition    = errors.New("invalid session transition")
	ErrUnansweredQuestion   = errors.New("current question has no recorded answer")
	ErrNoNextQuestion       = errors.New("already at last question, submit instead")
	ErrUnknownQuestion      = errors.New("question does not belong to quiz")
	ErrIncompleteSubmission = errors.New("all questions must be answered before submit")
)

// Grader 执行一次评分。已登录用户走持久化提交通道，游客走本地纯评分；
// 两者的评分算法一致，只有提交通道与 XP 归属不同。
type Grader func(quiz *model.Quiz, answers []Answer) (*QuizResult, error)

// QuizSession 单次测验会话的状态机：
//
//	START → QUESTION → RESULTS ⇄ REVIEW，RESULTS → QUESTION (retake)
//
// 会话自身不做任何 I/O，评分通过注入的 Grader 完成；没有终止态，
// 宿主离开即废弃。非法转换返回错误而不是悄悄忽略。
type QuizSession struct {
	ID     string
	Mode   SessionMode
	UserID uint
	Quiz   *model.Quiz

	state        SessionState
	current      int
	reviewCursor int
	answers      map[string]int
	result       *QuizResult
}

func NewQuizSession(quiz *model.Quiz, mode SessionMode, userID uint) *QuizSession {
	return &QuizSession{
		ID:      uuid.New().String(),
		Mode:    mode,
		UserID:  userID,
		Quiz:    quiz,
		state:   StateStart,
		answers: make(map[string]int),
	}
}

func (s *QuizSession) State() SessionState {
	return s.state
}

// Start 进入答题。未登录且非游客模式时拒绝，由上层提示登录。
func (s *QuizSession) Start() error {
	if s.state != StateStart {
		return ErrInvalidTransition
	}
	if s.Mode == ModeAuthenticated && s.UserID == 0 {
		return ErrLoginRequired
	}
	s.state = StateQuestion
	s.current = 0
	return nil
}

// SelectAnswer 立即记录答案，无确认步骤；重复选择覆盖旧值。
func (s *QuizSession) SelectAnswer(questionID string, answer int) error {
	if s.state != StateQuestion {
		return ErrInvalidTransition
	}
	if !s.hasQuestion(questionID) {
		return ErrUnknownQuestion
	}
	s.answers[questionID] = answer
	return nil
}

// Next 前进一题。当前题未作答时禁止跳过；最后一题上应当提交而不是前进。
func (s *QuizSession) Next() error {
	if s.state != StateQuestion {
		return ErrInvalidTransition
	}
	if _, ok := s.CurrentAnswer(); !ok {
		return ErrUnansweredQuestion
	}
	if s.current >= len(s.Quiz.Questions)-1 {
		return ErrNoNextQuestion
	}
	s.current++
	return nil
}

// Prev 后退一题，始终允许；在第一题上原地不动。
func (s *QuizSession) Prev() error {
	if s.state != StateQuestion {
		return ErrInvalidTransition
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// CurrentQuestion returns the question under the answering cursor.
func (s *QuizSession) CurrentQuestion() *model.Question {
	if s.current < 0 || s.current >= len(s.Quiz.Questions) {
		return nil
	}
	return &s.Quiz.Questions[s.current]
}

// CurrentAnswer 返回当前题已记录的答案；未作答时 ok 为 false。
func (s *QuizSession) CurrentAnswer() (int, bool) {
	q := s.CurrentQuestion()
	if q == nil {
		return NoAnswer, false
	}
	a, ok := s.answers[q.ID]
	if !ok {
		return NoAnswer, false
	}
	return a, true
}

// Answers returns the recorded answers in the quiz's question order.
func (s *QuizSession) Answers() []Answer {
	out := make([]Answer, 0, len(s.answers))
	for _, q := range s.Quiz.Questions {
		if a, ok := s.answers[q.ID]; ok {
			out = append(out, Answer{QuestionID: q.ID, Answer: a})
		}
	}
	return out
}

// Submit 要求全部作答后评分并进入 RESULTS。评分失败时停留在 QUESTION、
// 答案原样保留可重试；评分与状态切换对调用方原子。
func (s *QuizSession) Submit(grade Grader) (*QuizResult, error) {
	if s.state != StateQuestion {
		return nil, ErrInvalidTransition
	}
	for _, q := range s.Quiz.Questions {
		if _, ok := s.answers[q.ID]; !ok {
			return nil, ErrIncompleteSubmission
		}
	}

	result, err := grade(s.Quiz, s.Answers())
	if err != nil {
		return nil, err
	}
	if s.Mode == ModeGuest {
		// Guest XP is never persisted or meaningful.
		result.XPEarned = 0
	}
	s.result = result
	s.state = StateResults
	return result, nil
}

// Result is the recorded outcome; nil before a successful submit.
func (s *QuizSession) Result() *QuizResult {
	return s.result
}

// Retake 清空答案与结果，从头重新答题。
func (s *QuizSession) Retake() error {
	if s.state != StateResults {
		return ErrInvalidTransition
	}
	s.answers = make(map[string]int)
	s.result = nil
	s.current = 0
	s.state = StateQuestion
	return nil
}

// Review 进入逐题回顾；回顾游标独立于答题游标，每次进入都从第一题开始。
func (s *QuizSession) Review() error {
	if s.state != StateResults {
		return ErrInvalidTransition
	}
	s.reviewCursor = 0
	s.state = StateReview
	return nil
}

// ReviewNext 前进一题回顾，封顶在最后一题。
func (s *QuizSession) ReviewNext() error {
	if s.state != StateReview {
		return ErrInvalidTransition
	}
	if s.reviewCursor < len(s.result.Results)-1 {
		s.reviewCursor++
	}
	return nil
}

// ReviewPrev 后退一题回顾，封底在第一题。
func (s *QuizSession) ReviewPrev() error {
	if s.state != StateReview {
		return ErrInvalidTransition
	}
	if s.reviewCursor > 0 {
		s.reviewCursor--
	}
	return nil
}

// ReviewItem returns the per-question result under the review cursor.
func (s *QuizSession) ReviewItem() *QuestionResult {
	if s.state != StateReview || s.result == nil {
		return nil
	}
	if s.reviewCursor < 0 || s.reviewCursor >= len(s.result.Results) {
		return nil
	}
	return &s.result.Results[s.reviewCursor]
}

// ExitReview 返回 RESULTS，结果不变。
func (s *QuizSession) ExitReview() error {
	if s.state != StateReview {
		return ErrInvalidTransition
	}
	s.state = StateResults
	return nil
}

func (s *QuizSession) hasQuestion(questionID string) bool {
	for _, q := range s.Quiz.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// SessionSnapshot 只读的会话视图，供接口层返回。
type SessionSnapshot struct {
	ID              string       `json:"id"`
	State           SessionState `json:"state"`
	Mode            SessionMode  `json:"mode"`
	QuizID          string       `json:"quizId"`
	QuizTitle       string       `json:"quizTitle"`
	QuestionCount   int          `json:"questionCount"`
	PassingScore    int          `json:"passingScore"`
	MaxXP           int          `json:"maxXp"`
	CurrentQuestion int          `json:"currentQuestion"`
	AnsweredCount   int          `json:"answeredCount"`
	ReviewCursor    int          `json:"reviewCursor"`
	Result          *QuizResult  `json:"result,omitempty"`
}

func (s *QuizSession) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:              s.ID,
		State:           s.state,
		Mode:            s.Mode,
		QuizID:          s.Quiz.ID,
		QuizTitle:       s.Quiz.Title,
		QuestionCount:   len(s.Quiz.Questions),
		PassingScore:    s.Quiz.PassingScore,
		MaxXP:           s.Quiz.XPReward,
		CurrentQuestion: s.current,
		AnsweredCount:   len(s.answers),
		ReviewCursor:    s.reviewCursor,
		Result:          s.result,
	}
}
