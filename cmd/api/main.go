package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pustaka-market/internal/config"
	"pustaka-market/internal/events"
	"pustaka-market/internal/handler"
	"pustaka-market/internal/logging"
	"pustaka-market/internal/metrics"
	"pustaka-market/internal/middleware"
	"pustaka-market/internal/repository"
	"pustaka-market/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	zl := logging.New(cfg)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zl.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		zl.Warn().Err(err).Msg("redis unavailable, analytics cache disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		zl.Warn().Err(err).Msg("minio unavailable, exports disabled")
	}

	metrics.Register()

	bus := events.NewEventBus()
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, bus, redisClient, minioClient, zl, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	zl.Info().Str("port", cfg.Port).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal().Err(err).Msg("server stopped")
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1", middleware.AuthRequired(cfg.JWTSecret))

	requests := v1.Group("/requests")
	requests.Post("/", h.Request.Create)
	requests.Get("/mine", h.Request.ListMine)

	admin := requests.Group("", middleware.AdminRequired())
	admin.Get("/", h.Request.List)
	admin.Patch("/bulk", h.Request.Bulk)
	admin.Post("/export", h.Export.ExportFinalized)
	admin.Get("/:requestId", h.Request.Get)
	admin.Put("/:requestId", h.Request.Update)
	admin.Get("/:requestId/contact", h.Contact.Preview)
	admin.Post("/:requestId/contact/email", h.Contact.SendEmail)

	analytics := v1.Group("/analytics", middleware.AdminRequired())
	analytics.Get("/stats", h.Analytics.GetStats)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
}
