package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/prevue-ai/interview-server/pkg/validator"

	"github.com/prevue-ai/interview-server/internal/adapter/handler"
	"github.com/prevue-ai/interview-server/internal/adapter/repository"
	"github.com/prevue-ai/interview-server/internal/infrastructure/cache"
	"github.com/prevue-ai/interview-server/internal/infrastructure/database"
	"github.com/prevue-ai/interview-server/internal/infrastructure/external/gemini"
	"github.com/prevue-ai/interview-server/internal/infrastructure/external/tokens"
	"github.com/prevue-ai/interview-server/internal/infrastructure/storage"
	"github.com/prevue-ai/interview-server/internal/usecase/auth"
	"github.com/prevue-ai/interview-server/internal/usecase/interview"
	"github.com/prevue-ai/interview-server/internal/usecase/report"
	"github.com/prevue-ai/interview-server/internal/usecase/resume"
	"github.com/prevue-ai/interview-server/internal/usecase/schedule"
	"github.com/prevue-ai/interview-server/internal/usecase/speech"
	"github.com/prevue-ai/interview-server/pkg/config"
	"github.com/prevue-ai/interview-server/pkg/jwt"
	"github.com/prevue-ai/interview-server/pkg/mailer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		ExposeHeaders:    []string{"X-TTS-Provider", "X-TTS-Model", "X-TTS-Voice", "X-TTS-Audio-Format", "Content-Disposition"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("🔄 Applying schema migrations...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Redis backs the single-use password reset tokens. Falls back to an
	// in-process store when no Redis host is configured.
	var tokenCache cache.Store
	if cfg.Redis.Host != "" {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		tokenCache = redisStore
	} else {
		log.Println("⚠️ REDIS_HOST not set, using in-memory token store")
		tokenCache = cache.NewMemoryStore()
	}

	// Object storage for resumes, answer clips and profile images
	log.Println("🪣 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	jobRepo := repository.NewEvaluationJobRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	// External AI clients
	log.Println("🤖 Initializing AI clients...")
	geminiClient, err := gemini.NewClient(context.Background(), &cfg.Gemini, logger)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	ttsClient := gemini.NewTTSClient(&cfg.Gemini)
	asmClient := aai.NewClient(cfg.Assembly.APIKey)

	// JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	tokenStore := tokens.NewStore(tokenCache)
	mail := mailer.New(&cfg.SMTP, logger)
	if !mail.Configured() {
		log.Println("⚠️  SMTP not configured; outbound email will be logged and dropped")
	}

	// Services
	log.Println("✨ Initializing services...")
	authService := auth.NewService(userRepo, scheduleRepo, jwtManager, tokenStore, mail, minioClient, cfg.Server.ClientURL, logger)
	interviewService := interview.NewService(interviewRepo, jobRepo, scheduleRepo, userRepo, geminiClient, cfg.Interview, logger)
	scheduleService := schedule.NewService(scheduleRepo, interviewRepo, userRepo, mail, cfg.Server.ClientURL, logger)
	speechService := speech.NewService(asmClient, ttsClient, geminiClient, minioClient, logger)
	resumeService := resume.NewService(geminiClient, cfg.Interview.ResumeMaxSizeMB, logger)
	reportService := report.NewService(interviewRepo, userRepo, logger)

	// Background evaluation workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := interviewService.StartWorkerPool(workerCtx); err != nil {
		log.Fatalf("Failed to start evaluation workers: %v", err)
	}

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	authHandler := handler.NewAuth(authService, logger)
	interviewHandler := handler.NewInterview(interviewService, resumeService, logger)
	scheduleHandler := handler.NewSchedule(scheduleService, logger)
	speechHandler := handler.NewSpeech(speechService, logger)
	reportHandler := handler.NewReport(reportService, logger)

	router := handler.NewRouter(cfg, authService, authHandler, interviewHandler, scheduleHandler, speechHandler, reportHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	stopWorkers()
	if err := interviewService.StopWorkerPool(); err != nil {
		log.Printf("⚠️  Worker pool shutdown: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
