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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/minutes-dashboard/pkg/validator"

	"github.com/johnquangdev/minutes-dashboard/internal/adapter/handler"
	"github.com/johnquangdev/minutes-dashboard/internal/adapter/repository"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/cache"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/database"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/ratelimit"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/storage"
	minutesuse "github.com/johnquangdev/minutes-dashboard/internal/usecase/minutes"
	"github.com/johnquangdev/minutes-dashboard/pkg/config"
	"github.com/johnquangdev/minutes-dashboard/pkg/jwt"
	"github.com/johnquangdev/minutes-dashboard/pkg/llm"
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

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	minutesRepo := repository.NewMinutesRepository(db)

	// Initialize generation pipeline
	log.Println("🤖 Initializing generation pipeline...")
	claudeClient := llm.NewClaudeClient(&cfg.Claude)
	structuredClient := llm.NewStructuredClient(claudeClient, logger)
	minutesService := minutesuse.NewService(structuredClient, logger)

	// Initialize transcript importer
	log.Println("🎙️  Initializing transcript importer...")
	importer := assemblyai.NewImporter(cfg.Assembly.APIKey, logger)

	// Initialize minutes archive
	log.Println("🗄️  Initializing minutes archive...")
	archive, err := storage.NewMinutesArchive(&cfg.Storage)
	if err != nil {
		log.Printf("⚠️  Minutes archive unavailable, approvals will not be archived: %v", err)
		archive = nil
	}

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Initialize rate limiter
	log.Println("🚦 Initializing rate limiter...")
	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// Initialize minutes handler
	log.Println("🚀 Initializing minutes handler...")
	minutesCache := cache.NewMinutesCache()
	minutesHandler := handler.NewMinutes(minutesService, minutesRepo, minutesCache, archive, importer, logger)
	log.Println("✅ Minutes handler initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, minutesHandler, jwtManager, limiter)
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
