package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/bootstrap"
	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New("resume-screener-api", cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("config loaded", zap.String("env", cfg.Server.Env))

	ctx := context.Background()

	// Catalog
	catalog, err := bootstrap.Catalog(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to load catalog", zap.Error(err))
	}

	// Embeddings
	encoder := bootstrap.Encoder(ctx, cfg, zl)
	embeddingProvider := services.NewEmbeddingProvider(
		encoder,
		services.NewEmbeddingCache(),
		bootstrap.CacheStore(cfg, zl),
		cfg.Embedding.MaxTokens,
		zl,
	)
	embeddingProvider.LoadCache(ctx)

	// Screening pipeline
	screenerService := services.NewScreenerService(
		services.NewTextExtractor(),
		services.NewFieldExtractor(catalog),
		services.NewSkillMatcher(embeddingProvider, zl),
		embeddingProvider,
		cfg.Cache.AutoSave,
		zl,
	)
	zl.Info("services initialized")

	flusher := services.NewCacheFlusher(embeddingProvider, cfg.Cache.FlushInterval, zl)
	flusher.Start(ctx)

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		screenerService,
		cfg.Storage.MaxFileSize,
		zl,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		// A request carries several files, each up to MaxFileSize.
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", uploadHandler.HandleUpload)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/upload",
				"GET /api/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		flusher.Stop()

		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := embeddingProvider.SaveCache(saveCtx); err != nil {
			zl.Warn("failed to save embedding cache", zap.Error(err))
		}

		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
