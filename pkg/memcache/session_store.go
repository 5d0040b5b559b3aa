// pkg/memcache/session_store.go
package mem

import (
	"sync"
	"time"

	"meetup/pkg/metrics"
)

// SessionStore keeps per-session append-only histories in memory. Entries
// expire after their TTL; nothing is persisted.
type SessionStore[T any] interface {
	Create(id string, ttl time.Duration)

	// Append adds items to the end of the history and refreshes the expiry.
	// Returns false if the session is missing or expired.
	Append(id string, items ...T) bool

	// Snapshot returns the current history. The slice must not be modified.
	Snapshot(id string) ([]T, bool)

	Delete(id string) bool
	Sweep() int
}

type sessionEntry[T any] struct {
	items     []T
	ttl       time.Duration
	expiresAt time.Time
}

type Sessions[T any] struct {
	mu   sync.RWMutex
	data map[string]sessionEntry[T]
	now  func() time.Time
}

func NewSessions[T any]() *Sessions[T] {
	return &Sessions[T]{
		data: make(map[string]sessionEntry[T]),
		now:  time.Now,
	}
}

func (s *Sessions[T]) Create(id string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = sessionEntry[T]{
		ttl:       ttl,
		expiresAt: s.now().Add(ttl),
	}
	metrics.ActiveSessions.Set(float64(len(s.data)))
}

func (s *Sessions[T]) Append(id string, items ...T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, id)
		metrics.ActiveSessions.Set(float64(len(s.data)))
		return false
	}

	// copy on write so earlier snapshots stay valid
	next := make([]T, len(e.items), len(e.items)+len(items))
	copy(next, e.items)
	e.items = append(next, items...)
	e.expiresAt = s.now().Add(e.ttl)
	s.data[id] = e
	return true
}

func (s *Sessions[T]) Snapshot(id string) ([]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.items, true
}

func (s *Sessions[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data[id]
	delete(s.data, id)
	metrics.ActiveSessions.Set(float64(len(s.data)))
	return ok
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Sessions[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.data)))
	return removed
}
