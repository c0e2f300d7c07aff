package controller

import (
	"codelearn_backend/internal/learning"
	"codelearn_backend/internal/service"
	"codelearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

func sessionUserID(ctx *gin.Context) uint {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

func respondSessionErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Forbidden(ctx)
	case errors.Is(err, learning.ErrLoginRequired):
		util.Unauthorized(ctx)
	case errors.Is(err, learning.ErrInvalidTransition):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, learning.ErrUnansweredQuestion),
		errors.Is(err, learning.ErrNoNextQuestion),
		errors.Is(err, learning.ErrUnknownQuestion),
		errors.Is(err, learning.ErrIncompleteSubmission):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

type createSessionRequest struct {
	QuizID string `json:"quizId" binding:"required,uuid"`
}

// CreateSession godoc
// @Summary 开启测验会话
// @Description 登录用户创建持久化评分会话；无令牌按游客会话创建
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   body body createSessionRequest true "测验 ID"
// @Success 201 {object} util.Response{data=learning.SessionSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req createSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.SessionService.CreateSession(sessionUserID(ctx), req.QuizID)
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Created(ctx, snapshot)
}

// GetSession godoc
// @Summary 会话快照
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	snapshot, err := c.SessionService.GetSession(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Start godoc
// @Summary 开始答题
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Failure 409 {object} util.Response "非法状态转换"
// @Router /api/sessions/{id}/start [post]
func (c *SessionController) Start(ctx *gin.Context) {
	snapshot, err := c.SessionService.Start(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

type selectAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required,uuid"`
	Answer     *int   `json:"answer" binding:"required,gte=0"`
}

// SelectAnswer godoc
// @Summary 记录答案
// @Description 立即生效，重复选择覆盖旧值
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path string true "会话 ID"
// @Param   body body selectAnswerRequest true "题目与选项下标"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/answer [post]
func (c *SessionController) SelectAnswer(ctx *gin.Context) {
	var req selectAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.SessionService.SelectAnswer(ctx.Param("id"), sessionUserID(ctx), req.QuestionID, *req.Answer)
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Next godoc
// @Summary 下一题
// @Description 当前题未作答时返回 400；最后一题返回 400 提示提交
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/next [post]
func (c *SessionController) Next(ctx *gin.Context) {
	snapshot, err := c.SessionService.Next(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Prev godoc
// @Summary 上一题
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/prev [post]
func (c *SessionController) Prev(ctx *gin.Context) {
	snapshot, err := c.SessionService.Prev(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Submit godoc
// @Summary 提交会话
// @Description 要求全部作答；登录会话落库，游客会话只评分
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Failure 400 {object} util.Response "尚有未作答题目"
// @Router /api/sessions/{id}/submit [post]
func (c *SessionController) Submit(ctx *gin.Context) {
	snapshot, err := c.SessionService.Submit(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Retake godoc
// @Summary 重考
// @Description 清空答案与结果回到第一题
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/retake [post]
func (c *SessionController) Retake(ctx *gin.Context) {
	snapshot, err := c.SessionService.Retake(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// Review godoc
// @Summary 进入逐题回顾
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/review [post]
func (c *SessionController) Review(ctx *gin.Context) {
	snapshot, err := c.SessionService.Review(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// ReviewNext godoc
// @Summary 回顾下一题
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/review/next [post]
func (c *SessionController) ReviewNext(ctx *gin.Context) {
	snapshot, err := c.SessionService.ReviewNext(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// ReviewPrev godoc
// @Summary 回顾上一题
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/review/prev [post]
func (c *SessionController) ReviewPrev(ctx *gin.Context) {
	snapshot, err := c.SessionService.ReviewPrev(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// ReviewItem godoc
// @Summary 当前回顾题目的判定详情
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.QuestionResult}
// @Router /api/sessions/{id}/review/current [get]
func (c *SessionController) ReviewItem(ctx *gin.Context) {
	item, err := c.SessionService.ReviewItem(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// ExitReview godoc
// @Summary 退出回顾
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=learning.SessionSnapshot}
// @Router /api/sessions/{id}/review/exit [post]
func (c *SessionController) ExitReview(ctx *gin.Context) {
	snapshot, err := c.SessionService.ExitReview(ctx.Param("id"), sessionUserID(ctx))
	if err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// EndSession godoc
// @Summary 结束会话
// @Tags 会话
// @Produce  json
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [delete]
func (c *SessionController) EndSession(ctx *gin.Context) {
	if err := c.SessionService.EndSession(ctx.Param("id"), sessionUserID(ctx)); err != nil {
		respondSessionErr(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
