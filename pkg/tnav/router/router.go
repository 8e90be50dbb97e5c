package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
	"github.com/BrandonKowalski/tnav/pkg/tnav/navchan"
	"github.com/BrandonKowalski/tnav/pkg/tnav/reducer"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
	"github.com/BrandonKowalski/tnav/pkg/tnav/transition"
)

var (
	// ErrNotRegistered is returned when a route has no registered screen.
	ErrNotRegistered = errors.New("router: screen not registered")
	// ErrAlreadyRunning is returned by Run while another Run is active.
	ErrAlreadyRunning = errors.New("router: already running")
)

// Screen is handed to a ScreenFunc each time its entry becomes visible.
type Screen struct {
	Entry       *Entry
	Destination route.Destination
	// Transition is the enter animation when the entry was pushed, and the
	// pop-enter animation when it was revealed by a pop.
	Transition transition.Spec
	Dialog     bool
	Revealed   bool
}

// ScreenFunc shows a screen. Screens request navigation by sending intents;
// they do not return the next screen.
type ScreenFunc func(screen *Screen) error

// Surface is the window or process the router draws into. Intents drained
// while the surface is not alive are discarded.
type Surface interface {
	Alive() bool
}

// Registration describes one destination known to the router.
type Registration struct {
	Destination route.Destination
	Transition  transition.Config
	Dialog      bool
	screen      ScreenFunc
	onDispose   func(e *Entry)
}

// RegisterOption customizes a registration.
type RegisterOption func(*Registration)

// WithTransition sets the animations used around the destination.
func WithTransition(c transition.Config) RegisterOption {
	return func(r *Registration) { r.Transition = c }
}

// AsDialog marks the destination as drawn over the entry beneath it.
func AsDialog() RegisterOption {
	return func(r *Registration) { r.Dialog = true }
}

// OnDispose runs fn after an entry of the destination is destroyed and its
// payload removed from the store.
func OnDispose(fn func(e *Entry)) RegisterOption {
	return func(r *Registration) { r.onDispose = fn }
}

// Router hosts a back stack, draining the intent channel on the goroutine
// that calls Run and showing the screen registered for the top entry after
// every change.
type Router struct {
	screens map[string]*Registration
	store   *store.Store
	channel *navchan.Channel
	stack   *Stack
	surface Surface
	release StackHooks

	alive   atomic.Bool
	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Router over the given store and channel.
func New(s *store.Store, c *navchan.Channel) *Router {
	r := &Router{
		screens: make(map[string]*Registration),
		store:   s,
		channel: c,
		stack:   NewStack(),
		release: PayloadHooks(s),
	}
	r.stack.SetHooks(StackHooks{
		OnRemove: r.dispose,
		OnReuse:  r.release.OnReuse,
	})
	return r
}

// Register adds a screen to the router.
// The screen function will be called when the destination is on top.
func (r *Router) Register(dest route.Destination, fn ScreenFunc, opts ...RegisterOption) *Router {
	reg := &Registration{
		Destination: dest,
		Transition:  transition.Default,
		screen:      fn,
	}
	for _, opt := range opts {
		opt(reg)
	}
	if _, exists := r.screens[dest.Path()]; exists {
		internal.GetInternalLogger().Warn("Replacing screen registration", "destination", dest.Name())
	}
	r.screens[dest.Path()] = reg
	return r
}

// Registration returns the registration for a route or template.
func (r *Router) Registration(routeOrTemplate string) (*Registration, bool) {
	reg, ok := r.screens[route.PathOf(routeOrTemplate)]
	return reg, ok
}

// SetSurface sets the surface checked before each intent is applied.
func (r *Router) SetSurface(s Surface) *Router {
	r.surface = s
	return r
}

// Run pushes start when the stack is empty and then applies intents until
// the stack empties, ctx is cancelled, Detach is called, or a screen fails.
// An emptied stack and a cancelled ctx both return nil. Calling Run again
// after it returns re-attaches to the existing stack.
func (r *Router) Run(ctx context.Context, start route.Destination) error {
	if _, ok := r.screens[start.Path()]; !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, start)
	}
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		cancel()
	}()

	r.alive.Store(true)
	defer r.alive.Store(false)

	if r.stack.IsEmpty() {
		r.stack.Push(route.Resolve(start.Route(), nil, r.store), reducer.PushOptions{})
	}

	top, _ := r.stack.Top()
	if err := r.show(top, false); err != nil {
		return err
	}

	var screenErr error
	err := r.channel.Consume(ctx, r.Alive, func(in intent.Intent) bool {
		before, ok := r.stack.Top()
		beforeRoute := ""
		if ok {
			beforeRoute = before.Route()
		}

		if err := reducer.Apply[*Entry](r.stack, r.store, in); err != nil {
			internal.GetInternalLogger().Error("Failed to apply navigation intent", "error", err)
			return true
		}

		after, ok := r.stack.Top()
		if !ok {
			internal.GetInternalLogger().Debug("Back stack empty, router exiting")
			return false
		}
		if after == before && after.Route() == beforeRoute {
			return true
		}

		if screenErr = r.show(after, in.Kind() == intent.KindBack); screenErr != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return screenErr
}

// Detach marks the router's surface as gone and stops a running loop.
// Intents not yet applied are discarded.
func (r *Router) Detach() {
	r.alive.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Alive reports whether intents may be applied.
func (r *Router) Alive() bool {
	if !r.alive.Load() {
		return false
	}
	return r.surface == nil || r.surface.Alive()
}

// Running reports whether Run is active.
func (r *Router) Running() bool {
	return r.running.Load()
}

// Send queues an intent. See navchan.Channel.Send.
func (r *Router) Send(in intent.Intent) bool {
	return r.channel.Send(in)
}

// Stack returns the back stack. Only touch it from screen functions or
// after Run has returned.
func (r *Router) Stack() *Stack {
	return r.stack
}

// Store returns the payload store.
func (r *Router) Store() *store.Store {
	return r.store
}

func (r *Router) show(e *Entry, revealed bool) error {
	reg, ok := r.screens[e.Path()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, e.Path())
	}

	e.MarkAppeared()
	spec := reg.Transition.Enter
	if revealed {
		spec = reg.Transition.PopEnter
	}

	err := reg.screen(&Screen{
		Entry:       e,
		Destination: reg.Destination,
		Transition:  spec,
		Dialog:      reg.Dialog,
		Revealed:    revealed,
	})
	if err != nil {
		internal.GetInternalLogger().Error("Screen failed", "screen", e.Path(), "error", err)
		return fmt.Errorf("router: screen %s error: %w", e.Path(), err)
	}
	return nil
}

func (r *Router) dispose(e *Entry) {
	r.release.OnRemove(e)
	if reg, ok := r.screens[e.Path()]; ok && reg.onDispose != nil {
		reg.onDispose(e)
	}
}
