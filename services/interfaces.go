package services

import "movie-store/models"

// MovieStore defines the persistence operations the movie service needs.
// Production uses *database.Store.
type MovieStore interface {
	Insert(movies []models.Movie) (int, error)
	RetrieveAll() error
	Movies() []models.Movie
	FindByYear(year int) ([]models.Movie, error)
	Count() (int, error)
	DeleteAll() error
}
