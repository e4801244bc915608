package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const fileExtension = ".db"

var storeNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrInvalidName is returned when a store name cannot be mapped to a file.
var ErrInvalidName = errors.New("invalid store name: only letters, digits, '-' and '_' are allowed")

// ResolvePath maps a store name to its backing file inside dataDir.
// Each distinct name gets its own file.
func ResolvePath(dataDir, name string) (string, error) {
	if !storeNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return "", err
		}
		dataDir = dir
	}
	return filepath.Join(dataDir, name+fileExtension), nil
}

// DefaultDataDir is the per-user application data directory.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return filepath.Join(base, "movie-store"), nil
}
