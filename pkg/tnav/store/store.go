// Package store keeps navigation payloads in memory so screens can hand
// arbitrary values to each other without encoding them into route strings.
//
// Payloads are addressed by an opaque reference returned from Put. The
// reference is what travels in the route's dataRef argument; the value itself
// never leaves the process.
package store

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Store is a concurrency-safe reference → payload map.
// All methods may be called from any goroutine without extra locking.
type Store struct {
	entries sync.Map
	size    atomic.Int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Put stores value and returns a fresh, process-unique reference to it.
func (s *Store) Put(value any) string {
	ref := uuid.NewString()
	s.entries.Store(ref, value)
	s.size.Inc()
	return ref
}

// Load returns the raw value stored under ref.
func (s *Store) Load(ref string) (any, bool) {
	if ref == "" {
		return nil, false
	}
	return s.entries.Load(ref)
}

// Remove deletes the value stored under ref. Removing an unknown ref is a no-op.
func (s *Store) Remove(ref string) {
	if ref == "" {
		return
	}
	if _, loaded := s.entries.LoadAndDelete(ref); loaded {
		s.size.Dec()
	}
}

// Clear drops every stored value.
func (s *Store) Clear() {
	s.entries.Range(func(key, _ any) bool {
		s.Remove(key.(string))
		return true
	})
}

// Len returns the number of stored values.
func (s *Store) Len() int {
	return int(s.size.Load())
}

// Get returns the value stored under ref as a T.
// A missing ref and a value of another type both report false.
func Get[T any](s *Store, ref string) (T, bool) {
	var zero T
	v, ok := s.Load(ref)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
