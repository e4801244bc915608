package database

import (
	"database/sql"
	"fmt"
)

// Op identifies one of the fixed store operations. Each op owns exactly one
// cache slot for its compiled statement.
type Op int

const (
	OpCount Op = iota
	OpDeleteAll
	OpInsert
	OpRetrieveAll
	OpFindByYear

	numOps
)

// The statement texts are part of the on-disk contract; keep them verbatim.
var statementText = [numOps]string{
	OpCount:       "SELECT COUNT(*) FROM Movies;",
	OpDeleteAll:   "DELETE FROM Movies;",
	OpInsert:      "INSERT INTO Movies (uuid, title, year) VALUES (?, ?, ?);",
	OpRetrieveAll: "SELECT uuid, title, year FROM Movies;",
	OpFindByYear:  "SELECT uuid, title, year FROM Movies WHERE year = ? ORDER BY title LIMIT 30 OFFSET 0;",
}

var opNames = [numOps]string{
	OpCount:       "count",
	OpDeleteAll:   "delete_all",
	OpInsert:      "insert",
	OpRetrieveAll: "retrieve_all",
	OpFindByYear:  "find_by_year",
}

func (o Op) String() string {
	if o < 0 || o >= numOps {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// SQL returns the fixed statement text for the op.
func (o Op) SQL() string {
	if o < 0 || o >= numOps {
		return ""
	}
	return statementText[o]
}

// statement returns the cached compiled statement for op, compiling it on
// first use. A failed compilation leaves the slot empty so a later call can
// try again. Callers must hold s.mu.
func (s *Store) statement(op Op) (*sql.Stmt, error) {
	if stmt := s.stmts[op]; stmt != nil {
		return stmt, nil
	}

	stmt, err := s.db.Prepare(op.SQL())
	if err != nil {
		err = fmt.Errorf("failed to prepare %s: %w", op, err)
		s.emit(Event{Kind: EventCompileFailed, Op: op, Err: err})
		return nil, err
	}

	s.stmts[op] = stmt
	s.emit(Event{Kind: EventCompiled, Op: op})
	return stmt, nil
}
