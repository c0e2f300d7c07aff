package controller

import (
	"codelearn_backend/internal/service"
	"codelearn_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func respondCourseErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrChapterNotFound),
		errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListCourses godoc
// @Summary 课程目录
// @Description 已发布课程的列表，带条目数；游客可访问
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetLearningPath godoc
// @Summary 课程学习路径
// @Description 有序条目列表；无手工路径时按章节顺序合成
// @Tags 课程
// @Produce  json
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response{data=[]service.PathItemView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/path [get]
func (c *CourseController) GetLearningPath(ctx *gin.Context) {
	items, err := c.CourseService.GetLearningPath(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Navigate godoc
// @Summary 路径导航
// @Description 定位当前条目并返回前后邻居，用于上一步/下一步按钮
// @Tags 课程
// @Produce  json
// @Param   id path string true "课程 ID"
// @Param   current query string true "当前条目 ID"
// @Success 200 {object} util.Response{data=service.NavigationView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/navigate [get]
func (c *CourseController) Navigate(ctx *gin.Context) {
	view, err := c.CourseService.Navigate(ctx.Param("id"), ctx.Query("current"))
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GetChapter godoc
// @Summary 章节内容
// @Tags 课程
// @Produce  json
// @Param   id path string true "章节 ID"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Failure 404 {object} util.Response
// @Router /api/chapters/{id} [get]
func (c *CourseController) GetChapter(ctx *gin.Context) {
	chapter, err := c.CourseService.GetChapter(ctx.Param("id"))
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// GetQuiz godoc
// @Summary 测验（答题视图）
// @Description 题目不含答案与解析
// @Tags 测验
// @Produce  json
// @Param   id path string true "测验 ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *CourseController) GetQuiz(ctx *gin.Context) {
	view, err := c.CourseService.GetQuizForTaking(ctx.Param("id"))
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ---- 管理端 ----

// GetCourseAdmin godoc
// @Summary 课程详情（管理端，含路径/章节/测验全量）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [get]
func (c *CourseController) GetCourseAdmin(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("id"))
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.CreateCourse(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Param("id"), &req)
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程（管理端）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.DeleteCourse(ctx.Param("id")); err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateChapter godoc
// @Summary 创建章节（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Param   body body service.ChapterRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Chapter}
// @Router /api/admin/courses/{id}/chapters [post]
func (c *CourseController) CreateChapter(ctx *gin.Context) {
	var req service.ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CourseService.CreateChapter(ctx.Param("id"), &req)
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// UpdateChapter godoc
// @Summary 更新章节（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "章节 ID"
// @Param   body body service.ChapterRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.Chapter}
// @Router /api/admin/chapters/{id} [put]
func (c *CourseController) UpdateChapter(ctx *gin.Context) {
	var req service.ChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CourseService.UpdateChapter(ctx.Param("id"), &req)
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// DeleteChapter godoc
// @Summary 删除章节（管理端）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "章节 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/chapters/{id} [delete]
func (c *CourseController) DeleteChapter(ctx *gin.Context) {
	if err := c.CourseService.DeleteChapter(ctx.Param("id")); err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateQuiz godoc
// @Summary 创建测验（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Param   body body service.QuizRequest true "测验与题目"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/admin/courses/{id}/quizzes [post]
func (c *CourseController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.CourseService.CreateQuiz(ctx.Param("id"), &req)
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验（管理端）
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Param   body body service.QuizRequest true "测验与题目"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/admin/quizzes/{id} [put]
func (c *CourseController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.CourseService.UpdateQuiz(ctx.Param("id"), &req)
	if err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验（管理端）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *CourseController) DeleteQuiz(ctx *gin.Context) {
	if err := c.CourseService.DeleteQuiz(ctx.Param("id")); err != nil {
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type setPathRequest struct {
	Entries []service.PathEntryRequest `json:"entries" binding:"required,dive"`
}

// SetLearningPath godoc
// @Summary 设置学习路径（管理端）
// @Description 整体替换课程的有序条目列表
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "课程 ID"
// @Param   body body setPathRequest true "路径条目"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/path [put]
func (c *CourseController) SetLearningPath(ctx *gin.Context) {
	var req setPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.SetLearningPath(ctx.Param("id"), req.Entries); err != nil {
		if errors.Is(err, util.ErrChapterNotFound) || errors.Is(err, util.ErrQuizNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		respondCourseErr(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
