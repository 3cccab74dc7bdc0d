package routes

import (
	"errors"

	"learnhub/backend/middleware"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber app with the global middleware and every route.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "learnhub",
		ErrorHandler: errorHandler(d.Logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
	}))
	app.Use(middleware.LoggingMiddleware(d.Logger))

	SetupRoutes(app, d)

	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFound(c, "Route not found")
	})
	return app
}

// errorHandler keeps errors that escape a handler, including recovered
// panics, in the JSON envelope.
func errorHandler(logger *utils.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("unhandled error", "path", c.Path(), "error", err)
			return utils.InternalServerError(c, "Internal server error")
		}
		return utils.Error(c, status, err)
	}
}
