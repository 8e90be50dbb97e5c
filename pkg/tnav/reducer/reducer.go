// Package reducer turns navigation intents into calls on a host back stack.
//
// Apply is the only place back-stack mutation is decided. It runs on the
// host's single consumer loop, so two intents are never reduced at the same
// time against the same stack.
//
// When Back names a target that is not on the stack, nothing is popped.
// A result carried by that Back is still delivered.
package reducer

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
	"github.com/BrandonKowalski/tnav/pkg/tnav/result"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

// ErrUnknownIntent is returned for an Intent variant Apply does not handle.
var ErrUnknownIntent = errors.New("reducer: unknown intent")

// Entry is a back-stack entry as the reducer sees it.
type Entry interface {
	// Route returns the entry's resolved route.
	Route() string
	// SetState writes into the entry's saved state bag.
	SetState(key string, value any)
}

// PushOptions collapses the stack as part of a push.
type PushOptions struct {
	// SingleTop reuses the top entry when its path matches the pushed route.
	SingleTop bool
	// PopUpTo removes entries above the topmost entry matching this route
	// before pushing. Ignored when empty or when no entry matches.
	PopUpTo string
	// Inclusive also removes the PopUpTo entry.
	Inclusive bool
}

// BackStack is the host-provided stack the reducer drives.
type BackStack[E Entry] interface {
	// Top returns the visible entry.
	Top() (E, bool)
	// Previous returns the entry directly beneath Top.
	Previous() (E, bool)
	// Push adds route as the new top after applying opts.
	Push(route string, opts PushOptions)
	// Pop removes the top entry when target is empty. Otherwise it removes
	// entries above the topmost entry matching target, and that entry too
	// when inclusive. It reports false when nothing matched.
	Pop(target string, inclusive bool) bool
	// Clear removes every entry.
	Clear()
}

// Apply reduces one intent against stack. Payloads are put into s as routes
// are resolved.
func Apply[E Entry](stack BackStack[E], s *store.Store, in intent.Intent) error {
	switch v := in.(type) {
	case intent.Back:
		back(stack, s, v)

	case intent.NavigateTo:
		stack.Push(route.Resolve(v.Route, v.Payload, s), PushOptions{
			SingleTop: v.SingleTop,
			PopUpTo:   v.PopUpTo,
			Inclusive: v.Inclusive,
		})

	case intent.Replace:
		opts := PushOptions{SingleTop: v.SingleTop}
		if top, ok := stack.Top(); ok {
			opts.PopUpTo = top.Route()
			opts.Inclusive = true
		}
		stack.Push(route.Resolve(v.Route, v.Payload, s), opts)

	case intent.ClearAndNavigateTo:
		resolved := route.Resolve(v.Route, v.Payload, s)
		stack.Clear()
		stack.Push(resolved, PushOptions{})

	default:
		return fmt.Errorf("%w: %T", ErrUnknownIntent, in)
	}
	return nil
}

func back[E Entry](stack BackStack[E], s *store.Store, b intent.Back) {
	top, ok := stack.Top()
	if !ok {
		return
	}

	if b.Result != nil {
		if prev, ok := stack.Previous(); ok {
			result.Deliver(prev, top.Route(), s.Put(b.Result))
		} else {
			internal.GetInternalLogger().Debug("Dropped navigation result, no receiving entry",
				"from", route.PathOf(top.Route()))
		}
	}

	if b.Target == "" {
		stack.Pop("", false)
		return
	}

	if !stack.Pop(b.Target, b.Inclusive) {
		internal.GetInternalLogger().Warn("Back target not on stack, nothing popped",
			"target", route.PathOf(b.Target))
	}
}
