package handlers

import (
	"errors"
	"log/slog"

	"movie-store/database"
	"movie-store/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  errs.Error(),
			"fields": errs,
		})
	}
	return badRequest(c, err.Error())
}

// serverErrorWithDetails answers a failed store call. An unusable or closed
// store is handed to the app error handler as 503.
func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, database.ErrUnusable) || errors.Is(err, database.ErrClosed) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Movie store unavailable")
	}

	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
