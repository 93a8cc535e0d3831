// @title MCQ Checker API
// @version 1.0
// @description JSON API of the MCQ Checker quiz viewer.
// @host localhost:5000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "mcq-checker/cmd/api/docs"
	"mcq-checker/internal/adapter"
	"mcq-checker/internal/cache"
	"mcq-checker/internal/config"
	"mcq-checker/internal/database"
	"mcq-checker/internal/domain"
	"mcq-checker/internal/handler"
	"mcq-checker/internal/logger"
	"mcq-checker/internal/middleware"
	"mcq-checker/internal/repository"
	"mcq-checker/internal/service"
	"mcq-checker/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Theme backing store
	var themeRepo domain.ThemeRepository
	switch cfg.Themes.Source {
	case config.ThemeSourceDatabase:
		db, err := database.Connect(cfg.DB.Driver, cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		themeRepo = repository.NewThemeDatabaseAdapter(db)
		appLogger.Info("Serving themes from database", zap.String("driver", cfg.DB.Driver))
	default:
		themeRepo = repository.NewThemeFileRepository(cfg.Themes.Dir)
		appLogger.Info("Serving themes from directory", zap.String("dir", cfg.Themes.Dir))
	}

	// Optional Redis read-through cache
	var themeCache domain.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		themeCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Theme cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Themes.CacheTTL))
	}
	themeRepo = service.NewCachedThemeRepository(themeRepo, themeCache, cfg.Themes.CacheTTL)

	secret := cfg.Security.SecretKey
	if secret == "" {
		secret = randomSecret()
		appLogger.Warn("No SECRET_KEY configured; delete signals will not survive a restart")
	}

	// Initialize services
	catalogService := service.NewCatalogService(themeRepo)
	quizService := service.NewQuizService(catalogService)
	forgetService := service.NewForgetSignalService(secret, cfg.Security.ForgetTTL)

	renderer, err := view.NewRenderer()
	if err != nil {
		appLogger.Fatal("Failed to parse page template", zap.Error(err))
	}

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService, forgetService, renderer)
	healthHandler := handler.NewHealthHandler(themeCache)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/healthz", healthHandler.Health)

	// Page routes
	app.Get("/", quizHandler.Index)
	app.Post("/", quizHandler.Index)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/themes", quizHandler.GetThemes)
	themeGroup := apiGroup.Group("/themes/:theme", validationMiddleware.ValidateTheme())
	themeGroup.Get("/questions", quizHandler.GetQuestions)
	themeGroup.Post("/answers", quizHandler.CheckAnswers)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Get().Fatal("Failed to generate secret", zap.Error(err))
	}
	return hex.EncodeToString(buf)
}
