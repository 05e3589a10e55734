package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MiddlewareConfig defines configuration for the request logging middleware.
type MiddlewareConfig struct {
	// SkipPaths defines paths to skip logging for.
	SkipPaths []string
}

// DefaultMiddlewareConfig skips the health probe path.
func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{SkipPaths: []string{"/health"}}
}

// FiberMiddleware returns a Fiber middleware that assigns request IDs and
// logs each completed request. Subject identifiers appear in paths, never
// in bodies logged here.
func FiberMiddleware(logger *Logger, cfg MiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, path := range cfg.SkipPaths {
			if c.Path() == path {
				return c.Next()
			}
		}

		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			c.Set("X-Request-ID", requestID)
		}

		ctx := c.UserContext()
		ctx = WithRequestID(ctx, requestID)
		ctx = WithLogger(ctx, logger)
		c.SetUserContext(ctx)

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"status", statusCode,
			"duration_ms", duration.Milliseconds(),
			"request_id", requestID,
		}

		if err != nil {
			fields = append(fields, "error", err)
			logger.Error("Request failed", fields...)
			return err
		}

		switch {
		case statusCode >= 500:
			logger.Error("Server error", fields...)
		case statusCode >= 400:
			logger.Warn("Client error", fields...)
		default:
			logger.Info("Request completed", fields...)
		}
		return nil
	}
}
