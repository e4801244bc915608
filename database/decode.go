package database

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"movie-store/models"
)

// movieColumns is the number of values a movie row must carry.
const movieColumns = 3

// columnType names the storage class of a scanned engine value.
func columnType(value any) string {
	switch value.(type) {
	case int64:
		return "Integer"
	case float64:
		return "Double"
	case []byte:
		return "BLOB"
	case string:
		return "Text"
	case nil:
		return "Null"
	default:
		return fmt.Sprintf("Unknown(%T)", value)
	}
}

// decodeText reads a text column. A value of any other storage class, BLOB
// included, is reported and decoded as "". A byte length that does not
// survive UTF-8 decoding is only reported.
func (s *Store) decodeText(op Op, column string, value any) string {
	text, ok := value.(string)
	if !ok {
		s.emit(Event{Kind: EventTypeMismatch, Op: op, Column: column, Want: "Text", Got: columnType(value)})
		return ""
	}

	reported := len(text)
	if decoded := strings.ToValidUTF8(text, string(utf8.RuneError)); len(decoded) != reported {
		s.emit(Event{
			Kind:   EventLengthMismatch,
			Op:     op,
			Column: column,
			Want:   fmt.Sprintf("%d bytes", reported),
			Got:    fmt.Sprintf("%d bytes", len(decoded)),
		})
	}
	return text
}

// decodeInt reads an integer column. Values of another type, or values that
// do not fit the native int, are reported and decoded as 0.
func (s *Store) decodeInt(op Op, column string, value any) int {
	v, ok := value.(int64)
	if !ok {
		s.emit(Event{Kind: EventTypeMismatch, Op: op, Column: column, Want: "Integer", Got: columnType(value)})
		return 0
	}
	if int64(int(v)) != v {
		s.emit(Event{Kind: EventWidthOverflow, Op: op, Column: column, Want: "native int", Got: fmt.Sprintf("%d", v)})
		return 0
	}
	return int(v)
}

// scanMovies drains rows into movies in engine order. Rows that do not carry
// exactly three values are skipped.
func (s *Store) scanMovies(op Op, rows *sql.Rows) ([]models.Movie, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns for %s: %w", op, err)
	}

	movies := make([]models.Movie, 0)
	for rows.Next() {
		if len(columns) != movieColumns {
			s.emit(Event{Kind: EventMalformedRow, Op: op, Want: fmt.Sprint(movieColumns), Got: fmt.Sprint(len(columns))})
			continue
		}

		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			s.emit(Event{Kind: EventMalformedRow, Op: op, Err: err})
			continue
		}

		id := s.decodeText(op, columns[0], values[0])
		title := s.decodeText(op, columns[1], values[1])
		year := s.decodeInt(op, columns[2], values[2])
		movies = append(movies, models.NewMovie(title, year, id))
	}

	return movies, rows.Err()
}
