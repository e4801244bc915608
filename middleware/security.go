package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Security sets response hardening headers. Movie API responses reflect
// mutable store state and are never cached.
func Security() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		if strings.HasPrefix(c.Path(), "/api/") {
			c.Set("Cache-Control", "no-store")
		}
		return c.Next()
	}
}
