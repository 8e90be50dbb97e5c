package router

import (
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/BrandonKowalski/tnav/pkg/tnav/reducer"
	"github.com/BrandonKowalski/tnav/pkg/tnav/result"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

// SavedState is the key-value bag attached to a stack entry. Results for the
// entry are written here by the entry above it.
// It is safe for concurrent use; observers run outside the lock.
type SavedState struct {
	mu        sync.Mutex
	values    map[string]any
	observers map[string]map[int]func(any)
	nextID    int
	closed    bool
}

func newSavedState() *SavedState {
	return &SavedState{
		values:    make(map[string]any),
		observers: make(map[string]map[int]func(any)),
	}
}

// Get returns the value stored under key.
func (s *SavedState) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and notifies the key's observers.
// Writes to a destroyed entry's state are ignored.
func (s *SavedState) Set(key string, value any) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.values[key] = value
	fns := make([]func(any), 0, len(s.observers[key]))
	for _, fn := range s.observers[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// Observe registers fn to be called on every Set of key.
func (s *SavedState) Observe(key string, fn func(value any)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	if s.observers[key] == nil {
		s.observers[key] = make(map[int]func(any))
	}
	s.observers[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers[key], id)
	}
}

// Keys returns the keys currently set.
func (s *SavedState) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Keys(s.values)
}

func (s *SavedState) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	clear(s.observers)
}

// Entry is a single screen instance on the stack.
type Entry struct {
	id          uint64
	route       string
	state       *SavedState
	appearances int
}

// ID returns a stack-unique id for the entry.
func (e *Entry) ID() uint64 { return e.id }

// Route returns the resolved route, e.g. "Detail?dataRef=<ref>".
func (e *Entry) Route() string { return e.route }

// Path returns the route without its arguments.
func (e *Entry) Path() string { return route.PathOf(e.route) }

// DataRef returns the payload reference in the route, or "".
func (e *Entry) DataRef() string { return route.DataRefOf(e.route) }

// State returns the entry's saved state bag.
func (e *Entry) State() *SavedState { return e.state }

// SetState writes into the saved state bag.
func (e *Entry) SetState(key string, value any) { e.state.Set(key, value) }

// GetState reads from the saved state bag.
func (e *Entry) GetState(key string) (any, bool) { return e.state.Get(key) }

// ObserveState watches a key of the saved state bag.
func (e *Entry) ObserveState(key string, fn func(value any)) (cancel func()) {
	return e.state.Observe(key, fn)
}

// Appearances counts how many times the entry has been shown.
func (e *Entry) Appearances() int { return e.appearances }

// MarkAppeared records that a host has shown the entry again.
func (e *Entry) MarkAppeared() { e.appearances++ }

// StackHooks are notified about entry lifecycle changes.
type StackHooks struct {
	// OnRemove runs after an entry is taken off the stack for good.
	OnRemove func(e *Entry)
	// OnReuse runs when a single-top push swaps the top entry's route.
	OnReuse func(e *Entry, previousRoute string)
}

// PayloadHooks returns hooks that remove an entry's payload and unread
// results from s when the entry is destroyed, or the old payload when a
// single-top push swaps in a new one.
func PayloadHooks(s *store.Store) StackHooks {
	return StackHooks{
		OnRemove: func(e *Entry) {
			s.Remove(e.DataRef())
			for _, key := range e.state.Keys() {
				if !strings.HasPrefix(key, result.KeyPrefix) {
					continue
				}
				if v, ok := e.state.Get(key); ok {
					if ref, ok := v.(string); ok {
						s.Remove(ref)
					}
				}
			}
		},
		OnReuse: func(e *Entry, previousRoute string) {
			if ref := route.DataRefOf(previousRoute); ref != e.DataRef() {
				s.Remove(ref)
			}
		},
	}
}

// Stack is an in-memory back stack. It is not safe for concurrent use; the
// host mutates it only from its consumer loop.
type Stack struct {
	entries []*Entry
	nextID  uint64
	hooks   StackHooks
}

var _ reducer.BackStack[*Entry] = (*Stack)(nil)

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]*Entry, 0),
	}
}

// SetHooks replaces the lifecycle hooks.
func (s *Stack) SetHooks(hooks StackHooks) {
	s.hooks = hooks
}

// Top returns the visible entry.
func (s *Stack) Top() (*Entry, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	return s.entries[len(s.entries)-1], true
}

// Previous returns the entry beneath the top.
func (s *Stack) Previous() (*Entry, bool) {
	if len(s.entries) < 2 {
		return nil, false
	}
	return s.entries[len(s.entries)-2], true
}

// Push adds r as the new top, collapsing per opts first.
func (s *Stack) Push(r string, opts reducer.PushOptions) {
	if opts.PopUpTo != "" {
		if i := s.indexOf(opts.PopUpTo); i >= 0 {
			s.truncate(cut(i, opts.Inclusive))
		}
	}

	if opts.SingleTop {
		if top, ok := s.Top(); ok && route.Match(top.route, r) {
			previous := top.route
			top.route = r
			if s.hooks.OnReuse != nil && previous != r {
				s.hooks.OnReuse(top, previous)
			}
			return
		}
	}

	s.nextID++
	s.entries = append(s.entries, &Entry{
		id:    s.nextID,
		route: r,
		state: newSavedState(),
	})
}

// Pop removes the top entry, or the entries above target (and target itself
// when inclusive). It reports false when the stack is empty or target is not
// on it.
func (s *Stack) Pop(target string, inclusive bool) bool {
	if len(s.entries) == 0 {
		return false
	}
	if target == "" {
		s.truncate(len(s.entries) - 1)
		return true
	}
	i := s.indexOf(target)
	if i < 0 {
		return false
	}
	s.truncate(cut(i, inclusive))
	return true
}

// Clear removes every entry.
func (s *Stack) Clear() {
	s.truncate(0)
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns the entries bottom to top.
func (s *Stack) Entries() []*Entry {
	return append([]*Entry(nil), s.entries...)
}

// Paths returns each entry's path, bottom to top.
func (s *Stack) Paths() []string {
	return lo.Map(s.entries, func(e *Entry, _ int) string {
		return e.Path()
	})
}

func (s *Stack) indexOf(target string) int {
	_, i, ok := lo.FindLastIndexOf(s.entries, func(e *Entry) bool {
		return route.Match(e.route, target)
	})
	if !ok {
		return -1
	}
	return i
}

// truncate removes entries from index n upward, top first.
func (s *Stack) truncate(n int) {
	for len(s.entries) > n {
		last := len(s.entries) - 1
		e := s.entries[last]
		s.entries[last] = nil
		s.entries = s.entries[:last]

		e.state.close()
		if s.hooks.OnRemove != nil {
			s.hooks.OnRemove(e)
		}
	}
}

func cut(i int, inclusive bool) int {
	if inclusive {
		return i
	}
	return i + 1
}
