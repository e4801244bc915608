package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// isBusyError reports whether err is the engine's transient lock contention.
func isBusyError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// isConstraintError reports whether err is a schema constraint violation,
// e.g. a duplicate uuid.
func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// execWithBusyRetry runs stmt, sleeping and retrying while the engine reports
// busy. A BusyRetryLimit of zero retries until the engine stops reporting
// busy. The driver resets the statement after every step, so each retry
// starts from a clean state.
func (s *Store) execWithBusyRetry(stmt *sql.Stmt, title string, args ...any) error {
	for attempt := 1; ; attempt++ {
		_, err := stmt.Exec(args...)
		if err == nil || !isBusyError(err) {
			return err
		}
		if s.opts.BusyRetryLimit > 0 && attempt > s.opts.BusyRetryLimit {
			return fmt.Errorf("still busy after %d retries: %w", s.opts.BusyRetryLimit, err)
		}

		s.emit(Event{Kind: EventBusyRetry, Op: OpInsert, Title: title, Attempt: attempt, Err: err})
		time.Sleep(s.opts.BusyRetryInterval)
	}
}
