package app

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/gemstonesdb/internal/config"
	"github.com/localnerve/gemstonesdb/internal/handlers"
	"github.com/localnerve/gemstonesdb/internal/logger"
	"github.com/localnerve/gemstonesdb/internal/middleware"
	"github.com/localnerve/gemstonesdb/internal/types"
	"github.com/localnerve/gemstonesdb/internal/utils"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "github.com/localnerve/gemstonesdb/docs/api" // Swagger docs
)

// healthTimeout bounds the database work of one /health request
const healthTimeout = 5 * time.Second

// New builds the web application around an open database handle
func New(cfg *config.Config, db *gorm.DB, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(log),
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: log.StdLog(zapcore.InfoLevel).Writer(),
		Format: "${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("gemstonesdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{DB: db, Log: log}
	app.Get("/health", middleware.DBTimeout(healthTimeout), health.GetHealth)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}

// errorHandler renders every error as the standard JSON error body
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()
		errorType := "unknown"

		var fiberErr *fiber.Error
		var customErr *types.CustomError
		switch {
		case errors.As(err, &customErr):
			code = customErr.Code
			message = customErr.Message
			errorType = customErr.Type
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("Request failed", "url", c.OriginalURL(), "error", err)
		}

		return utils.ErrorResponse(c, message, code, errorType)
	}
}
