// Package result carries a value from a popped screen back to the screen it
// returns to.
//
// The popped screen's path selects a slot ("result_" + path) on the entry
// beneath it. The slot holds a store reference, not the value, so the value
// outlives the popped entry.
package result

import (
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

// KeyPrefix prefixes every result slot key.
const KeyPrefix = "result_"

// Setter writes into an entry's saved state.
type Setter interface {
	SetState(key string, value any)
}

// Getter reads from an entry's saved state.
type Getter interface {
	GetState(key string) (any, bool)
}

// Observer notifies fn whenever key is written. The returned func unregisters fn.
type Observer interface {
	Getter
	ObserveState(key string, fn func(value any)) (cancel func())
}

// Key returns the slot key for results produced by the screen at path.
// Any query portion of path is ignored.
func Key(path string) string {
	return KeyPrefix + route.PathOf(path)
}

// Deliver records ref as the result produced by the screen at fromPath.
// The last delivery wins.
func Deliver(to Setter, fromPath, ref string) {
	to.SetState(Key(fromPath), ref)
}

// Ref returns the store reference currently in the slot for awaited.
func Ref(bag Getter, awaited route.Destination) (string, bool) {
	v, ok := bag.GetState(Key(awaited.Path()))
	if !ok {
		return "", false
	}
	ref, ok := v.(string)
	if !ok || ref == "" {
		return "", false
	}
	return ref, true
}

// Get returns the latest result awaited produced for bag's entry.
func Get[T any](bag Getter, awaited route.Destination, s *store.Store) (T, bool) {
	ref, ok := Ref(bag, awaited)
	if !ok {
		var zero T
		return zero, false
	}
	return store.Get[T](s, ref)
}

// Clear empties the slot for awaited and removes the referenced value.
func Clear[B interface {
	Getter
	Setter
}](bag B, awaited route.Destination, s *store.Store) {
	if ref, ok := Ref(bag, awaited); ok {
		s.Remove(ref)
	}
	bag.SetState(Key(awaited.Path()), "")
}

// Watch calls fn with the current result for awaited, if there is one, and
// then with every result delivered afterwards. Values that are missing from
// the store or are not a T are skipped. Call the returned func to stop.
func Watch[T any](bag Observer, awaited route.Destination, s *store.Store, fn func(T)) (cancel func()) {
	if v, ok := Get[T](bag, awaited, s); ok {
		fn(v)
	}
	return bag.ObserveState(Key(awaited.Path()), func(value any) {
		ref, ok := value.(string)
		if !ok || ref == "" {
			return
		}
		if v, ok := store.Get[T](s, ref); ok {
			fn(v)
		}
	})
}
