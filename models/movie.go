package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Movie is the single record type kept by the store.
// ID is assigned once at construction and never changes afterwards.
type Movie struct {
	ID    uuid.UUID `json:"uuid"`
	Title string    `json:"title"`
	Year  int       `json:"year"`
}

// NewMovie builds a movie from its title, year and an optional identifier
// string. A missing or unparsable identifier is replaced by a fresh random one.
func NewMovie(title string, year int, idString string) Movie {
	id, err := uuid.Parse(idString)
	if idString == "" || err != nil {
		id = uuid.New()
	}

	return Movie{
		ID:    id,
		Title: title,
		Year:  year,
	}
}

// UUIDString returns the canonical 36 character encoding of the identifier.
func (m Movie) UUIDString() string {
	return m.ID.String()
}

// Equal reports whether both movies share identifier, title and year.
func (m Movie) Equal(other Movie) bool {
	return m.ID == other.ID && m.Title == other.Title && m.Year == other.Year
}

// String is meant for diagnostics only.
func (m Movie) String() string {
	return fmt.Sprintf("(%s|%d|%s)", m.Title, m.Year, m.UUIDString())
}

type CreateMovieRequest struct {
	UUID  string `json:"uuid" yaml:"uuid"`
	Title string `json:"title" yaml:"title" validate:"required,max=255,movietitle"`
	Year  int    `json:"year" yaml:"year" validate:"movieyear"`
}

type CreateMoviesRequest struct {
	Movies []CreateMovieRequest `json:"movies" yaml:"movies" validate:"required,min=1,max=500,dive"`
}

// ToMovie converts a validated request into a movie, generating the
// identifier when none was supplied.
func (r CreateMovieRequest) ToMovie() Movie {
	return NewMovie(r.Title, r.Year, r.UUID)
}
