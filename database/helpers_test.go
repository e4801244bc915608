package database

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder is an Observer that keeps every event for later assertions.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(kind EventKind, op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind && e.Op == op {
			n++
		}
	}
	return n
}

func (r *recorder) find(kind EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func setupTestStore(t *testing.T, opts ...Option) (*Store, *recorder, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "movie-store-test-*")
	require.NoError(t, err)

	rec := &recorder{}
	opts = append([]Option{WithObserver(rec), WithBusyTimeout(time.Second)}, opts...)

	store, err := Open(filepath.Join(tmpDir, "movies.db"), opts...)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, rec, cleanup
}
