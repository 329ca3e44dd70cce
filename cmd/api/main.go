// @title Wiki Quiz API
// @version 1.0
// @description Generates multiple choice quizzes from Wikipedia articles.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/llm"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"
	"wiki-quiz/internal/util"

	_ "wiki-quiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

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

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB, appLogger); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	quizRepository, err := repository.NewQuizDatabaseAdapter(db, cfg.DB.Driver)
	if err != nil {
		appLogger.Fatal("Failed to create quiz repository", zap.Error(err))
	}
	sessions := repository.NewSessionManagerAdapter(db)

	model, err := llm.NewModel(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)
	generator := quizgen.NewLLMQuizGenerator(
		llm.NewLangchainModel(model, cfg.LLM.Timeout),
		cfg.LLM.Temperature,
		cfg.LLM.MaxAttempts,
		appLogger.Named("quizgen"),
	)

	fetcher := scraper.NewWikipediaScraper(cfg.Scraper, nil, appLogger.Named("scraper"))

	m := metrics.New(prometheus.DefaultRegisterer)

	var detailCache service.QuizDetailCache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	switch {
	case errors.Is(err, cache.ErrCacheDisabled):
		appLogger.Info("Redis not configured, quiz detail cache disabled")
	case err != nil:
		appLogger.Warn("Failed to connect to Redis, quiz detail cache disabled", zap.Error(err))
	default:
		defer func(c *redis.Client) {
			if err := c.Close(); err != nil {
				appLogger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}(redisClient)
		detailCache = service.NewQuizDetailCache(adapter.NewRedisCacheAdapter(redisClient), cfg.Redis.DetailTTL, m)
		appLogger.Info("Quiz detail cache enabled", zap.Duration("ttl", cfg.Redis.DetailTTL))
	}

	quizService := service.NewQuizService(fetcher, generator, quizRepository, sessions, detailCache, m)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(requestid.New(requestid.Config{Generator: util.NewULID}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.RegisterRoutes(app, quizHandler, middleware.NewValidationMiddleware())

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
