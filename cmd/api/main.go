package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	requestlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"biasnomad/job-recommender/internal/config"
	"biasnomad/job-recommender/internal/handlers"
	"biasnomad/job-recommender/internal/logger"
	"biasnomad/job-recommender/internal/repositories"
	"biasnomad/job-recommender/internal/services"
)

const embeddingMaxRetries = 3

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Recommender.Validate(); err != nil {
		log.Fatalf("invalid recommender configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Env != "development", cfg.Server.Env == "development")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("config loaded",
		zap.String("env", cfg.Server.Env),
		zap.Float64("similarity_weight", cfg.Recommender.SimilarityWeight),
		zap.Float64("accessibility_weight", cfg.Recommender.AccessibilityWeight),
	)

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database connected and migrated")

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	resumeParser := services.NewResumeParserService()
	normalizer := services.NewTextNormalizer()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize Gemini client", zap.Error(err))
	}
	zlog.Info("embedding backend initialized", zap.String("model", cfg.Gemini.EmbedModel))

	encoder := services.NewEmbeddingEncoder(geminiService, embeddingMaxRetries, zlog)
	accessibilityScorer := services.NewAccessibilityScorer(encoder, normalizer, cfg.Recommender)
	recommender := services.NewRecommenderService(encoder, normalizer, accessibilityScorer, cfg.Recommender, zlog)

	// Initialize and start embedding warmer
	warmer := services.NewEmbeddingWarmer(
		jobRepo,
		encoder,
		normalizer,
		cfg.Warmer.Concurrency,
		cfg.Warmer.QueueSize,
		zlog,
	)
	ctx := context.Background()
	warmer.Start(ctx)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo)
	jobHandler := handlers.NewJobHandler(jobRepo, warmer)
	recommendHandler := handlers.NewRecommendHandler(userRepo, jobRepo, recommender)
	resumeHandler := handlers.NewResumeHandler(userRepo, storageService, resumeParser, cfg.Storage.MaxFileSize)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Inclusive Job Recommender API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestlogger.New(requestlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/users", userHandler.HandleCreateUser)
	api.Get("/users", userHandler.HandleGetUsers)
	api.Get("/users/:id", userHandler.HandleGetUser)
	api.Post("/users/:id/resume", resumeHandler.HandleUploadResume)

	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleGetJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)

	api.Post("/recommendations", recommendHandler.HandleRecommend)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Inclusive Job Recommender API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/users",
				"GET /api/v1/users",
				"GET /api/v1/users/:id",
				"POST /api/v1/users/:id/resume",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/recommendations",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		warmer.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
