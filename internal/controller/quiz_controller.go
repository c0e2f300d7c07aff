package controller

import (
	"codelearn_backend/internal/service"
	"codelearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func respondQuizErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// Submit godoc
// @Summary 提交测验（登录用户）
// @Description 评分并落库；XP 只在首次通过时发放
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Param   body body service.SubmitQuizRequest true "答案列表"
// @Success 200 {object} util.Response{data=learning.QuizResult}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(claims.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		respondQuizErr(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// SubmitGuest godoc
// @Summary 提交测验（游客）
// @Description 只评分不落库，XP 恒为 0
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path string true "测验 ID"
// @Param   body body service.SubmitQuizRequest true "答案列表"
// @Success 200 {object} util.Response{data=learning.QuizResult}
// @Failure 404 {object} util.Response
// @Router /api/guest/quizzes/{id}/submit [post]
func (c *QuizController) SubmitGuest(ctx *gin.Context) {
	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitGuest(ctx.Param("id"), req.Answers)
	if err != nil {
		respondQuizErr(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// MyResults godoc
// @Summary 我的测验记录
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizResult}
// @Router /api/quizzes/results [get]
func (c *QuizController) MyResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	results, err := c.QuizService.ResultsByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
