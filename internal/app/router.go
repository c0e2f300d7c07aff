package app

import (
	"codelearn_backend/internal/config"
	"codelearn_backend/internal/middleware"
	"codelearn_backend/internal/model"
	"codelearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// 1. 公共路由（游客可访问，带可选认证）
	a.registerPublicRoutes(router, c, repos, cfg)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理端路由
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 目录与内容：游客可浏览
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id/path", c.course.GetLearningPath)
		public.GET("/courses/:id/navigate", c.course.Navigate)
		public.GET("/courses/:id/progress", c.progress.GetCourseProgress)
		public.GET("/chapters/:id", c.course.GetChapter)
		public.GET("/quizzes/:id", c.course.GetQuiz)

		public.GET("/leaderboard", c.user.Leaderboard)

		// 游客测验提交：只评分不落库
		public.POST("/guest/quizzes/:id/submit", c.quiz.SubmitGuest)

		// 测验会话：无令牌按游客会话处理
		sessions := public.Group("/sessions")
		{
			sessions.POST("", c.session.CreateSession)
			sessions.GET("/:id", c.session.GetSession)
			sessions.DELETE("/:id", c.session.EndSession)
			sessions.POST("/:id/start", c.session.Start)
			sessions.POST("/:id/answer", c.session.SelectAnswer)
			sessions.POST("/:id/next", c.session.Next)
			sessions.POST("/:id/prev", c.session.Prev)
			sessions.POST("/:id/submit", c.session.Submit)
			sessions.POST("/:id/retake", c.session.Retake)
			sessions.POST("/:id/review", c.session.Review)
			sessions.POST("/:id/review/next", c.session.ReviewNext)
			sessions.POST("/:id/review/prev", c.session.ReviewPrev)
			sessions.GET("/:id/review/current", c.session.ReviewItem)
			sessions.POST("/:id/review/exit", c.session.ExitReview)
		}
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/users/me", c.user.GetProfile)
	group.PUT("/users/me", c.user.UpdateProfile)

	group.GET("/progress", c.progress.Overview)
	group.POST("/courses/:id/chapters/:chapterId/complete", c.progress.CompleteChapter)
	group.POST("/courses/:id/time", c.progress.AddTime)

	group.POST("/quizzes/:id/submit", c.quiz.Submit)
	group.GET("/quizzes/results", c.quiz.MyResults)

	group.POST("/tickets", c.ticket.CreateTicket)
	group.GET("/tickets", c.ticket.ListMyTickets)
	group.GET("/tickets/:id", c.ticket.GetTicket)
	group.POST("/tickets/:id/messages", c.ticket.AddMessage)
	group.POST("/tickets/:id/close", c.ticket.CloseTicket)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetUserDisabled)

		admin.POST("/courses", c.course.CreateCourse)
		admin.GET("/courses/:id", c.course.GetCourseAdmin)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)
		admin.PUT("/courses/:id/path", c.course.SetLearningPath)

		admin.POST("/courses/:id/chapters", c.course.CreateChapter)
		admin.PUT("/chapters/:id", c.course.UpdateChapter)
		admin.DELETE("/chapters/:id", c.course.DeleteChapter)

		admin.POST("/courses/:id/quizzes", c.course.CreateQuiz)
		admin.PUT("/quizzes/:id", c.course.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.course.DeleteQuiz)

		admin.GET("/tickets", c.ticket.ListAllTickets)
	}
}
