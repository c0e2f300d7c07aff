package controller

import (
	"codelearn_backend/internal/service"
	"codelearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetCourseProgress godoc
// @Summary 课程进度
// @Description 已完成章节与已通过测验的聚合；游客恒为零进度
// @Tags 进度
// @Produce  json
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.CourseProgressView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	view, err := c.ProgressService.GetCourseProgress(userID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// CompleteChapter godoc
// @Summary 标记章节完成
// @Description 幂等；只有首次完成发放 XP
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Param   chapterId path string true "章节 ID"
// @Success 200 {object} util.Response{data=service.CourseProgressView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/chapters/{chapterId}/complete [post]
func (c *ProgressController) CompleteChapter(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	view, err := c.ProgressService.CompleteChapter(claims.UserID, ctx.Param("id"), ctx.Param("chapterId"))
	if err != nil {
		if errors.Is(err, util.ErrChapterNotFound) || errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

type addTimeRequest struct {
	Minutes int `json:"minutes" binding:"required,gt=0,lte=1440"`
}

// AddTime godoc
// @Summary 记录学习时长
// @Tags 进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Param   body body addTimeRequest true "时长（分钟）"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/time [post]
func (c *ProgressController) AddTime(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req addTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.AddTime(claims.UserID, ctx.Param("id"), req.Minutes); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Overview godoc
// @Summary 我的全部课程进度
// @Tags 进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CourseProgressView}
// @Router /api/progress [get]
func (c *ProgressController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	views, err := c.ProgressService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}
