package handlers

import (
	"errors"
	"strconv"

	"movie-store/app"
	"movie-store/models"
	"movie-store/services"

	"github.com/gofiber/fiber/v2"
)

// ListMovies reloads all movies and returns the freshly published list
func ListMovies(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movies, err := a.MovieService.Refresh()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load movies", err)
		}

		return success(c, fiber.Map{
			"movies":  movies,
			"version": a.Store.Snapshot().Version(),
		})
	}
}

// GetSnapshot returns the last published list without reloading it
func GetSnapshot(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return success(c, fiber.Map{
			"movies":  a.MovieService.Current(),
			"version": a.Store.Snapshot().Version(),
		})
	}
}

// FindMoviesByYear returns up to 30 movies of a year ordered by title
func FindMoviesByYear(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := strconv.Atoi(c.Params("year"))
		if err != nil {
			return badRequest(c, "year must be a number")
		}

		movies, err := a.MovieService.FindByYear(year)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to find movies", err)
		}

		return success(c, fiber.Map{"movies": movies, "year": year})
	}
}

// CountMovies returns the number of stored movies
func CountMovies(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.MovieService.Count()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to count movies", err)
		}

		return success(c, fiber.Map{"count": count})
	}
}

// CreateMovies stores a batch of movies
func CreateMovies(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateMoviesRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		result, err := a.MovieService.Add(req.Movies)
		if err != nil {
			if errors.Is(err, services.ErrNoMovies) {
				return badRequest(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to store movies", err)
		}

		return created(c, fiber.Map{
			"movies":    result.Movies,
			"attempted": result.Attempted,
			"stored":    result.Stored,
		})
	}
}

// DeleteMovies removes every movie. The published list is not refreshed.
func DeleteMovies(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.MovieService.Purge(); err != nil {
			return serverErrorWithDetails(c, "Failed to delete movies", err)
		}

		return success(c, fiber.Map{"deleted": true})
	}
}
