package services

import "movie-store/models"

// MovieService handles business logic for movies
type MovieService struct {
	store MovieStore
}

// NewMovieService creates a new movie service
func NewMovieService(store MovieStore) *MovieService {
	return &MovieService{store: store}
}

// AddResult reports what happened to a batch insert.
type AddResult struct {
	Movies    []models.Movie `json:"movies"`
	Attempted int            `json:"attempted"`
	Stored    int            `json:"stored"`
}

// Add stores a batch of movies. Attempted mirrors the store's count of rows
// tried; Stored is the change in row count observed around the insert.
func (ms *MovieService) Add(reqs []models.CreateMovieRequest) (*AddResult, error) {
	if len(reqs) == 0 {
		return nil, ErrNoMovies
	}

	movies := make([]models.Movie, 0, len(reqs))
	for _, req := range reqs {
		movies = append(movies, req.ToMovie())
	}

	before, err := ms.store.Count()
	if err != nil {
		return nil, err
	}

	attempted, err := ms.store.Insert(movies)
	if err != nil {
		return nil, err
	}

	after, err := ms.store.Count()
	if err != nil {
		return nil, err
	}

	return &AddResult{
		Movies:    movies,
		Attempted: attempted,
		Stored:    after - before,
	}, nil
}

// Refresh reloads every movie and returns the newly published list
func (ms *MovieService) Refresh() ([]models.Movie, error) {
	if err := ms.store.RetrieveAll(); err != nil {
		return nil, err
	}
	return ms.store.Movies(), nil
}

// Current returns the last published list without touching the database
func (ms *MovieService) Current() []models.Movie {
	return ms.store.Movies()
}

// FindByYear returns up to 30 movies of the given year, ordered by title.
// Any year is looked up, so rows stored outside the accepted insert range
// stay reachable.
func (ms *MovieService) FindByYear(year int) ([]models.Movie, error) {
	return ms.store.FindByYear(year)
}

// Count returns the number of stored movies
func (ms *MovieService) Count() (int, error) {
	return ms.store.Count()
}

// Purge deletes every movie. The published list stays stale until the next Refresh.
func (ms *MovieService) Purge() error {
	return ms.store.DeleteAll()
}
