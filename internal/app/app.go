package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/controller"
	"sdet_prep_backend/internal/repository"
	"sdet_prep_backend/internal/service"
	"sdet_prep_backend/pkg/clock"
	"sdet_prep_backend/pkg/configwatcher"
	"sdet_prep_backend/pkg/database"
	"sdet_prep_backend/pkg/logger"
	"sdet_prep_backend/pkg/monitoring"
	"sdet_prep_backend/pkg/security"
	"sdet_prep_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	entitlement *repository.EntitlementRepository
	question    *repository.QuestionRepository
	recording   *repository.RecordingRepository
	session     *repository.PracticeSessionRepository
	progress    *repository.TopicProgressRepository
	template    *repository.AnswerTemplateRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	question    *service.QuestionService
	recording   *service.RecordingService
	entitlement *service.EntitlementService
	pipeline    *service.PipelineService
	progress    *service.ProgressService
	practice    *service.PracticeService
}

type controllers struct {
	auth        *controller.AuthController
	question    *controller.QuestionController
	recording   *controller.RecordingController
	practice    *controller.PracticeController
	entitlement *controller.EntitlementController
	progress    *controller.ProgressController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		entitlement: repository.NewEntitlementRepository(db),
		question:    repository.NewQuestionRepository(db),
		recording:   repository.NewRecordingRepository(db),
		session:     repository.NewPracticeSessionRepository(db),
		progress:    repository.NewTopicProgressRepository(db),
		template:    repository.NewAnswerTemplateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	clk := clock.System{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.question = service.NewQuestionService(repos.question, repos.template)
	s.recording = service.NewRecordingService(repos.recording, s.storage, cfg)
	s.entitlement = service.NewEntitlementService(repos.entitlement, clk, cfg.Quota.MaxDailyQuestions)
	s.progress = service.NewProgressService(repos.progress, clk)

	speech := service.NewSpeechService(cfg.Speech)
	ai := service.NewAIService(cfg.AI)
	sampleTTL := time.Duration(cfg.Quota.SampleCacheTTLHours) * time.Hour
	s.pipeline = service.NewPipelineService(speech, ai, rdb, sampleTTL)

	s.practice = service.NewPracticeService(s.entitlement, s.pipeline, s.progress, repos.recording, repos.session)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		question:    controller.NewQuestionController(s.question),
		recording:   controller.NewRecordingController(s.recording),
		practice:    controller.NewPracticeController(s.practice),
		entitlement: controller.NewEntitlementController(s.entitlement),
		progress:    controller.NewProgressController(s.progress),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration-only run complete")
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The sample answer cache degrades to direct generation without redis.
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("sdet-prep", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Hot-reload the quota allowance when the config file changes.
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if reloaded, ok := newCfg.(*config.Config); ok {
			services.entitlement.SetDailyLimit(reloaded.Quota.MaxDailyQuestions)
			logger.Log.Info("Config reloaded", zap.Int("maxDailyQuestions", reloaded.Quota.MaxDailyQuestions))
		}
	})

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
