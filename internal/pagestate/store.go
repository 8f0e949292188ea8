package pagestate

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harentsoaR/sewa-finder/internal/models"
)

// Store keeps one ViewState per page id.
type Store struct {
	mu     sync.Mutex
	states map[string]*ViewState
	center models.GeoPoint
	zoom   int
	now    func() time.Time
}

// NewStore creates a store whose new pages start at center/zoom.
func NewStore(center models.GeoPoint, zoom int) *Store {
	return &Store{
		states: make(map[string]*ViewState),
		center: center,
		zoom:   zoom,
		now:    time.Now,
	}
}

// Load returns the state for id, creating a fresh one (with a new id)
// when id is empty or unknown.
func (s *Store) Load(id string) (string, *ViewState) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[id]; ok && id != "" {
		st.touch(now)
		return id, st
	}
	id = uuid.NewString()
	st := newViewState(s.center, s.zoom, now)
	s.states[id] = st
	return id, st
}

// Get returns the state for id without creating one.
func (s *Store) Get(id string) (*ViewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return st, ok
}

// Sweep drops states idle for longer than ttl and returns how many were removed.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, st := range s.states {
		if st.idleSince().Before(cutoff) {
			delete(s.states, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
