package sessionstore

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps panel sessions in memory. Sessions expire after ttl of
// inactivity, which stands in for the panel being navigated away from.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
	ttl     time.Duration
	now     func() time.Time
}

type entry[T any] struct {
	mu       sync.Mutex
	state    T
	lastSeen time.Time
	deleted  bool
}

func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: map[string]*entry[T]{},
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Store[T]) WithClock(now func() time.Time) *Store[T] {
	s.now = now
	return s
}

func (s *Store[T]) Create(state T) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.entries[id] = &entry[T]{state: state, lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

// Get returns a copy of the session state.
func (s *Store[T]) Get(id string) (T, error) {
	var out T
	err := s.Update(id, func(state *T) error {
		out = *state
		return nil
	})
	return out, err
}

// Update runs fn under the session lock. The state is left as fn mutated
// it even when fn returns an error, so fn must not half-apply changes.
func (s *Store[T]) Update(id string, fn func(state *T) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	e.lastSeen = s.now()
	return fn(&e.state)
}

func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()
	return nil
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops sessions idle for longer than the ttl and returns their ids.
func (s *Store[T]) Sweep() []string {
	if s.ttl <= 0 {
		return nil
	}
	deadline := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for id, e := range s.entries {
		e.mu.Lock()
		if e.lastSeen.Before(deadline) {
			e.deleted = true
			delete(s.entries, id)
			removed = append(removed, id)
		}
		e.mu.Unlock()
	}
	return removed
}
