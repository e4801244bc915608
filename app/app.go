package app

import (
	"log/slog"

	"movie-store/database"
	"movie-store/services"
	"movie-store/validator"
)

// Ensure database.Store implements services.MovieStore interface
var _ services.MovieStore = (*database.Store)(nil)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store        *database.Store
	MovieService *services.MovieService
	Validator    *validator.Validator
	Logger       *slog.Logger
}

// New creates a new App instance with all dependencies
func New(store *database.Store, logger *slog.Logger) *App {
	return &App{
		Store:        store,
		MovieService: services.NewMovieService(store),
		Validator:    validator.New(),
		Logger:       logger,
	}
}
