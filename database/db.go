package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS Movies(
	uuid  CHAR(36) NOT NULL UNIQUE,
	title VARCHAR(25),
	year  INTEGER,
	id    INTEGER PRIMARY KEY AUTOINCREMENT
)`

// DB is the single engine connection behind a Store.
type DB struct {
	*sql.DB
	path string
}

// NoBusyHandler turns the engine's busy handler off, leaving contention to
// the store's own retry loop.
const NoBusyHandler time.Duration = -1

// dataSourceName builds the driver DSN. A zero busy timeout keeps the
// driver default.
func dataSourceName(dbPath string, busyTimeout time.Duration) string {
	dsn := dbPath + "?_mutex=full"
	switch {
	case busyTimeout < 0:
		dsn += "&_busy_timeout=0"
	case busyTimeout > 0:
		dsn += fmt.Sprintf("&_busy_timeout=%d", busyTimeout.Milliseconds())
	}
	return dsn
}

// New opens (or creates) the database file at dbPath. The handle is pinned to
// one connection opened read/write, create-if-missing, in full mutex mode.
func New(dbPath string, busyTimeout time.Duration) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dataSourceName(dbPath, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection per store; compiled statements live on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// sql.Open is lazy, so force the engine to open the file now.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	return &DB{DB: db, path: dbPath}, nil
}

// Migrate makes sure the Movies table exists.
func (db *DB) Migrate() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Path returns the file backing the connection.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) Close() error {
	return db.DB.Close()
}
