package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"movie-store/models"
)

var (
	// ErrUnusable is returned by every operation on a store whose connection
	// could not be opened.
	ErrUnusable = errors.New("movie store: connection unusable")
	// ErrClosed is returned by operations on a store after Close.
	ErrClosed = errors.New("movie store: closed")
)

// Options tune a Store.
type Options struct {
	// BusyTimeout is handed to the engine's own busy handler. Zero keeps the
	// driver default and NoBusyHandler disables it.
	BusyTimeout time.Duration
	// BusyRetryInterval is the pause between insert attempts while busy.
	BusyRetryInterval time.Duration
	// BusyRetryLimit caps busy retries per row; 0 retries without bound.
	BusyRetryLimit int
	Observer       Observer
}

type Option func(*Options)

func WithObserver(o Observer) Option {
	return func(opts *Options) {
		opts.Observer = o
	}
}

func WithLogger(logger *slog.Logger) Option {
	return WithObserver(NewLogObserver(logger))
}

func WithBusyTimeout(d time.Duration) Option {
	return func(opts *Options) {
		opts.BusyTimeout = d
	}
}

func WithBusyRetry(interval time.Duration, limit int) Option {
	return func(opts *Options) {
		opts.BusyRetryInterval = interval
		opts.BusyRetryLimit = limit
	}
}

// DefaultOptions mirrors the engine driver defaults plus a bounded retry.
func DefaultOptions() Options {
	return Options{
		BusyTimeout:       5 * time.Second,
		BusyRetryInterval: 150 * time.Millisecond,
		BusyRetryLimit:    100,
		Observer:          NewLogObserver(nil),
	}
}

// Store persists movies in a single table. It owns one connection and at
// most one compiled statement per Op. Operations are serialized; the
// statements are stateful and not reentrant.
type Store struct {
	mu       sync.Mutex
	db       *DB
	stmts    [numOps]*sql.Stmt
	opts     Options
	snapshot *Snapshot
	closed   bool
}

// OpenNamed opens the store called name inside dataDir, creating the file
// and schema when missing.
func OpenNamed(dataDir, name string, opts ...Option) (*Store, error) {
	path, err := ResolvePath(dataDir, name)
	if err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// Open opens the store backed by the file at path.
func Open(path string, opts ...Option) (*Store, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Observer == nil {
		options.Observer = NewLogObserver(nil)
	}

	db, err := New(path, options.BusyTimeout)
	if err != nil {
		options.Observer.Observe(Event{Kind: EventOpenFailed, Path: path, Err: err})
		return nil, fmt.Errorf("%w: %w", ErrUnusable, err)
	}

	if err := db.Migrate(); err != nil {
		options.Observer.Observe(Event{Kind: EventOpenFailed, Path: path, Err: err})
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnusable, err)
	}

	s := &Store{
		db:       db,
		opts:     options,
		snapshot: newSnapshot(),
	}
	s.emit(Event{Kind: EventOpened, Path: path})
	return s, nil
}

func (s *Store) emit(e Event) {
	s.opts.Observer.Observe(e)
}

// usable must be called with s.mu held.
func (s *Store) usable() error {
	if s.closed {
		return ErrClosed
	}
	if s.db == nil {
		return ErrUnusable
	}
	return nil
}

// Snapshot returns the published list holder.
func (s *Store) Snapshot() *Snapshot {
	if s == nil || s.snapshot == nil {
		return newSnapshot()
	}
	return s.snapshot
}

// Movies returns the currently published list.
func (s *Store) Movies() []models.Movie {
	return s.Snapshot().Movies()
}

// Path returns the backing file, or "" when the store is unusable.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// Insert writes movies in order and returns how many rows were attempted.
// A row that fails (including a duplicate uuid) is reported to the observer
// and does not stop the batch, so callers needing the exact number stored
// must check Count.
func (s *Store) Insert(movies []models.Movie) (int, error) {
	if s == nil {
		return 0, ErrUnusable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usable(); err != nil {
		return 0, err
	}
	if len(movies) == 0 {
		return 0, nil
	}

	stmt, err := s.statement(OpInsert)
	if err != nil {
		return 0, err
	}

	attempted := 0
	for _, movie := range movies {
		err := s.execWithBusyRetry(stmt, movie.Title, movie.UUIDString(), movie.Title, int64(movie.Year))
		if err != nil {
			if isConstraintError(err) {
				err = fmt.Errorf("duplicate or invalid row %s: %w", movie.UUIDString(), err)
			}
			s.emit(Event{Kind: EventRowFailed, Op: OpInsert, Title: movie.Title, Err: err})
		}
		attempted++
	}
	return attempted, nil
}

// RetrieveAll reads every row and publishes the result as the new snapshot.
// Row order is whatever the engine yields. On failure the snapshot is left
// untouched.
func (s *Store) RetrieveAll() error {
	if s == nil {
		return ErrUnusable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usable(); err != nil {
		return err
	}

	stmt, err := s.statement(OpRetrieveAll)
	if err != nil {
		return err
	}

	rows, err := stmt.Query()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", OpRetrieveAll, err)
	}
	defer rows.Close()

	movies, err := s.scanMovies(OpRetrieveAll, rows)
	if err != nil {
		return err
	}

	s.snapshot.publish(movies)
	return nil
}

// FindByYear returns up to 30 movies released in year, ordered by title.
// It does not touch the published snapshot.
func (s *Store) FindByYear(year int) ([]models.Movie, error) {
	if s == nil {
		return []models.Movie{}, ErrUnusable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usable(); err != nil {
		return []models.Movie{}, err
	}

	stmt, err := s.statement(OpFindByYear)
	if err != nil {
		return []models.Movie{}, err
	}

	rows, err := stmt.Query(int64(year))
	if err != nil {
		return []models.Movie{}, fmt.Errorf("failed to query %s: %w", OpFindByYear, err)
	}
	defer rows.Close()

	movies, err := s.scanMovies(OpFindByYear, rows)
	if err != nil {
		return []models.Movie{}, err
	}
	return movies, nil
}

// Count returns the number of stored rows. It returns 0 together with the
// error when counting was not possible.
func (s *Store) Count() (int, error) {
	if s == nil {
		return 0, ErrUnusable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usable(); err != nil {
		return 0, err
	}

	stmt, err := s.statement(OpCount)
	if err != nil {
		return 0, err
	}

	var value any
	if err := stmt.QueryRow().Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return s.decodeInt(OpCount, "COUNT(*)", value), nil
}

// DeleteAll removes every row. A nil error means the engine ran the delete to
// completion. The published snapshot stays as it was until the next
// RetrieveAll.
func (s *Store) DeleteAll() error {
	if s == nil {
		return ErrUnusable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usable(); err != nil {
		return err
	}

	stmt, err := s.statement(OpDeleteAll)
	if err != nil {
		return err
	}

	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("failed to delete rows: %w", err)
	}
	return nil
}

// Close finalizes every compiled statement and then closes the connection.
// Calling it again is a no-op.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.db == nil {
		s.closed = true
		return nil
	}

	var errs []error
	for op, stmt := range s.stmts {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to finalize %s: %w", Op(op), err))
		}
		s.stmts[op] = nil
	}

	path := s.db.Path()
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	s.db = nil
	s.closed = true

	s.emit(Event{Kind: EventClosed, Path: path})
	return errors.Join(errs...)
}
