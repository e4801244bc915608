package setup

import (
	"movie-store/app"
	"movie-store/database"
	"movie-store/handlers"
	"movie-store/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes. Routes backed by a store
// operation are tagged with it for request logs.
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get(healthPath, func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api")

	api.Get("/movies", middleware.Operation(database.OpRetrieveAll), handlers.ListMovies(application))
	api.Get("/movies/snapshot", handlers.GetSnapshot(application))
	api.Get("/movies/count", middleware.Operation(database.OpCount), handlers.CountMovies(application))
	api.Get("/movies/year/:year", middleware.Operation(database.OpFindByYear), handlers.FindMoviesByYear(application))
	api.Post("/movies", middleware.Operation(database.OpInsert), handlers.CreateMovies(application))
	api.Delete("/movies", middleware.Operation(database.OpDeleteAll), handlers.DeleteMovies(application))
}
