package services

import "errors"

// Common service-level errors
var (
	ErrNoMovies = errors.New("no movies given")
)
