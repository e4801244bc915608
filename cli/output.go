package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"movie-store/models"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Movies prints one movie per line, or a JSON array.
func (f *OutputFormatter) Movies(movies []models.Movie) error {
	if f.Format == "json" {
		return f.json(movies)
	}
	for _, m := range movies {
		if _, err := fmt.Fprintln(f.Writer, m.String()); err != nil {
			return err
		}
	}
	return nil
}

// Value prints a single named value, e.g. a count.
func (f *OutputFormatter) Value(key string, value any) error {
	if f.Format == "json" {
		return f.json(map[string]any{key: value})
	}
	_, err := fmt.Fprintf(f.Writer, "%s: %v\n", key, value)
	return err
}

// Insert reports the outcome of an insert batch.
func (f *OutputFormatter) Insert(attempted, stored int) error {
	if f.Format == "json" {
		return f.json(map[string]int{"attempted": attempted, "stored": stored})
	}
	_, err := fmt.Fprintf(f.Writer, "attempted: %d\nstored: %d\n", attempted, stored)
	return err
}

func (f *OutputFormatter) json(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
