package middleware

import (
	"log/slog"
	"time"

	"movie-store/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OpKey is the Locals key holding the store operation a route runs.
const OpKey = "storeOp"

// Operation tags a route with the store operation it runs.
func Operation(op database.Op) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(OpKey, op.String())
		return c.Next()
	}
}

// LoggerConfig tunes StructuredLogger.
type LoggerConfig struct {
	// SlowThreshold marks successful requests at or above it as slow. Zero disables.
	SlowThreshold time.Duration
	// QuietPaths are logged at debug level when they succeed.
	QuietPaths []string
}

func StructuredLogger(logger *slog.Logger, cfg LoggerConfig) fiber.Handler {
	quiet := make(map[string]struct{}, len(cfg.QuietPaths))
	for _, p := range cfg.QuietPaths {
		quiet[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.New().String()

		c.Locals("requestID", requestID)
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		logAttrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.String("ip", c.IP()),
		}
		if op, ok := c.Locals(OpKey).(string); ok {
			logAttrs = append(logAttrs, slog.String("op", op))
		}

		_, isQuiet := quiet[c.Path()]

		switch {
		case err != nil:
			logAttrs = append(logAttrs, slog.String("error", err.Error()))
			logger.LogAttrs(c.Context(), slog.LevelError, "request error", logAttrs...)
		case status >= 500:
			logger.LogAttrs(c.Context(), slog.LevelError, "server error", logAttrs...)
		case status >= 400:
			logger.LogAttrs(c.Context(), slog.LevelWarn, "client error", logAttrs...)
		case cfg.SlowThreshold > 0 && latency >= cfg.SlowThreshold:
			logger.LogAttrs(c.Context(), slog.LevelWarn, "slow request", logAttrs...)
		case isQuiet:
			logger.LogAttrs(c.Context(), slog.LevelDebug, "request completed", logAttrs...)
		default:
			logger.LogAttrs(c.Context(), slog.LevelInfo, "request completed", logAttrs...)
		}

		return err
	}
}
