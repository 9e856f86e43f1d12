package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"github.com/wikiquiz/quizforge/internal/adapter"
	"github.com/wikiquiz/quizforge/internal/adapter/quizgen"
	"github.com/wikiquiz/quizforge/internal/cache"
	"github.com/wikiquiz/quizforge/internal/config"
	"github.com/wikiquiz/quizforge/internal/database"
	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/handler"
	"github.com/wikiquiz/quizforge/internal/logger"
	"github.com/wikiquiz/quizforge/internal/middleware"
	"github.com/wikiquiz/quizforge/internal/repository"
	"github.com/wikiquiz/quizforge/internal/scraper"
	"github.com/wikiquiz/quizforge/internal/service"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database and apply migrations
	db, err := database.NewSQLXSQLiteDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db.DB, cfg.DB.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	quizRepository := repository.NewQuizDatabaseAdapter(db)

	// Redis is optional; without it, generation just skips the cache.
	var quizCache domain.QuizCache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		quizCache = adapter.NewRedisCacheAdapter(redisClient, cfg.Redis.TTL)
		appLogger.Info("RedisCacheAdapter initialized")
	} else {
		appLogger.Info("Redis not configured; quiz cache disabled")
	}

	// LLM client for quiz generation
	ollamaHTTPClient := &http.Client{Timeout: 120 * time.Second}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.LLM.ServerURL),
		ollama.WithModel(cfg.LLM.Model),
		ollama.WithHTTPClient(ollamaHTTPClient),
	)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	generator := quizgen.NewLLMQuizGenerator(llm)

	articleScraper := scraper.New(cfg.Scraper.Timeout, cfg.Scraper.UserAgent)

	quizService := service.NewQuizService(quizRepository, quizCache, articleScraper, generator)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/", quizHandler.Health)
	app.Post("/generate-quiz", quizHandler.GenerateQuiz)
	app.Get("/quizzes", quizHandler.ListQuizzes)
	app.Get("/quizzes/:id", quizHandler.GetQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
