package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/handlers"
	"katalog/internal/logging"
	"katalog/internal/middleware"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{Level: "info"}).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logging.New(logging.ConfigForEnv(cfg.App.Env, cfg.Log.Level))
	defer log.Sync() //nolint:errcheck

	// --- Database ---
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer database.Close(db)

	// --- Events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			log.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient
		log.Info("publishing product events", zap.String("queue", mqClient.Queue()))
	} else {
		log.Info("RABBITMQ_URL not set, product events disabled")
	}

	app := newApp(cfg, db, events, log)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", zap.String("addr", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}

// newApp wires repositories, services and handlers into a Fiber app. events
// may be nil.
func newApp(cfg *config.Config, db *gorm.DB, events services.EventPublisher, log *zap.Logger) *fiber.App {
	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	imageRepo := repositories.NewGORMProductImageRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo, categoryRepo, tagRepo, imageRepo, events, log)
	categoryService := services.NewCategoryService(categoryRepo, log)
	tagService := services.NewTagService(tagRepo, log)
	imageService := services.NewProductImageService(imageRepo, log)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:               "katalog",
		BodyLimit:             cfg.App.BodyLimit,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log.Named("http")))
	if !cfg.IsProduction() {
		app.Use(logger.New())
	}

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService, log).RegisterRoutes(apiV1)
	handlers.NewCategoryHandler(categoryService, log).RegisterRoutes(apiV1)
	handlers.NewTagHandler(tagService, log).RegisterRoutes(apiV1)
	handlers.NewImageHandler(imageService, log).RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		eventsState := "disabled"
		if events != nil {
			eventsState = "enabled"
		}

		if err := database.Ping(db); err != nil {
			log.Warn("health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "unreachable",
				"events":   eventsState,
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
			"events":   eventsState,
		})
	})

	return app
}
