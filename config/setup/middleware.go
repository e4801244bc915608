package setup

import (
	"log/slog"
	"time"

	"movie-store/config"
	"movie-store/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const healthPath = "/health"

// ApplyMiddleware applies all global middleware to the Fiber app
func ApplyMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 200
	}

	app.Use(
		recover.New(),
		middleware.StructuredLogger(logger, middleware.LoggerConfig{
			SlowThreshold: cfg.SlowRequest,
			QuietPaths:    []string{healthPath},
		}),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: "GET,POST,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept",
			MaxAge:       86400,
		}),
		limiter.New(limiter.Config{
			Max:        rateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == healthPath
			},
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)
}
