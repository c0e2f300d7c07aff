package app

import (
	"codelearn_backend/internal/config"
	"codelearn_backend/internal/controller"
	"codelearn_backend/internal/repository"
	"codelearn_backend/internal/service"
	"codelearn_backend/pkg/database"
	"codelearn_backend/pkg/logger"
	"codelearn_backend/pkg/monitoring"
	"codelearn_backend/pkg/security"
	"codelearn_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	chapter  *repository.ChapterRepository
	quiz     *repository.QuizRepository
	progress *repository.ProgressRepository
	ticket   *repository.TicketRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	course   *service.CourseService
	progress *service.ProgressService
	quiz     *service.QuizService
	session  *service.SessionService
	ticket   *service.TicketService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	course   *controller.CourseController
	progress *controller.ProgressController
	quiz     *controller.QuizController
	session  *controller.SessionController
	ticket   *controller.TicketController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新回调入口，由配置监听器触发。
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Learning = cfg.Learning
	a.Config.RateLimit = cfg.RateLimit
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("config reloaded",
		zap.Int("catalogCacheTtlMinutes", cfg.Learning.CatalogCacheTTLMinutes),
		zap.Int("failedAttemptXpPercent", cfg.Learning.FailedAttemptXPPercent))
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		chapter:  repository.NewChapterRepository(db),
		quiz:     repository.NewQuizRepository(db),
		progress: repository.NewProgressRepository(db),
		ticket:   repository.NewTicketRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.chapter, repos.quiz, rdb, cfg)
	s.progress = service.NewProgressService(repos.progress, repos.course, repos.chapter, repos.quiz, s.user)
	s.quiz = service.NewQuizService(repos.quiz, s.user, cfg)
	s.session = service.NewSessionService(repos.quiz, s.quiz)
	s.ticket = service.NewTicketService(repos.ticket)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		course:   controller.NewCourseController(s.course),
		progress: controller.NewProgressController(s.progress),
		quiz:     controller.NewQuizController(s.quiz),
		session:  controller.NewSessionController(s.session),
		ticket:   controller.NewTicketController(s.ticket),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.AutoMigrateEnabled())
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("codelearn-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停止会话回收协程
	if a.services != nil && a.services.session != nil {
		a.services.session.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
