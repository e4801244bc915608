package database

import (
	"sync"

	"movie-store/models"
)

// Snapshot is the published copy of the last full retrieval. It is empty
// until the first RetrieveAll and is replaced wholesale by each later one;
// inserts and deletes never touch it.
type Snapshot struct {
	mu      sync.RWMutex
	movies  []models.Movie
	version uint64
	subs    map[int]chan []models.Movie
	nextID  int
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		movies: make([]models.Movie, 0),
		subs:   make(map[int]chan []models.Movie),
	}
}

// Movies returns a copy of the published list.
func (s *Snapshot) Movies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMovies(s.movies)
}

// Version counts how many times a list has been published.
func (s *Snapshot) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe returns a channel that always holds the most recently published
// list. Slow readers only ever see the latest value. The returned func
// unsubscribes and closes the channel.
func (s *Snapshot) Subscribe() (<-chan []models.Movie, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan []models.Movie, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Snapshot) publish(movies []models.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies = cloneMovies(movies)
	s.version++

	for _, ch := range s.subs {
		// Drop the stale value, if any; only publish sends on ch.
		select {
		case <-ch:
		default:
		}
		ch <- cloneMovies(movies)
	}
}

func cloneMovies(movies []models.Movie) []models.Movie {
	out := make([]models.Movie, len(movies))
	copy(out, movies)
	return out
}
