package setup

import (
	"errors"
	"log/slog"
	"time"

	"movie-store/config"
	"movie-store/middleware"

	"github.com/gofiber/fiber/v2"
)

// maxBodySize fits the largest accepted batch of movies with room to spare.
const maxBodySize = 1 << 20

// NewFiberApp creates and configures a new Fiber application
func NewFiberApp(cfg *config.Config, logger *slog.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "movie-store",
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		BodyLimit:             maxBodySize,
		DisableStartupMessage: cfg.Env == "production",
		ErrorHandler:          CustomErrorHandler(logger),
	})
}

// CustomErrorHandler renders errors as JSON. Store outages reach it as 503s
// and are logged with the operation that hit them.
func CustomErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		requestID, _ := c.Locals("requestID").(string)
		op, _ := c.Locals(middleware.OpKey).(string)

		level := slog.LevelError
		if code < fiber.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.Context(), level, "request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"op", op,
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
