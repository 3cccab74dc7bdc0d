package middleware

import (
	"time"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// LoggingMiddleware tags each request with an id (kept when the client
// sends one) and logs it once the handler chain returns.
func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		kv := []interface{}{
			"request_id", requestID,
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		}
		if userID := CurrentUserID(c); userID != "" {
			kv = append(kv, "user_id", userID)
		}

		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			logger.Error("request failed", append(kv, "error", err)...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", kv...)
		default:
			logger.Info("request", kv...)
		}
		return err
	}
}
