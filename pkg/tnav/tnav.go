// Package tnav is an in-process navigation layer: screens request page
// transitions through a small imperative API, and a host applies them to its
// back stack one at a time on its UI goroutine.
//
// A Nav owns the payload store and the intent channel for one navigation
// host. Create it at host startup, hand it to whatever needs to navigate, and
// call Shutdown when the host goes away.
//
//	nav := tnav.New(tnav.Options{})
//	r := nav.NewRouter()
//	r.Register(Home, homeScreen)
//	r.Register(Detail, detailScreen)
//	err := r.Run(ctx, Home)
//
// Inside a screen:
//
//	nav.To(Detail, tnav.WithParams(item))
//	nav.Back(tnav.WithResult(choice))
//	item, ok := tnav.Params[Item](nav, screen.Entry)
package tnav

import (
	"io"
	"log/slog"

	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
	"github.com/BrandonKowalski/tnav/pkg/tnav/navchan"
	"github.com/BrandonKowalski/tnav/pkg/tnav/result"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/router"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

// Options configures a Nav.
type Options struct {
	Capacity     int    // Intent queue bound; 0 uses navchan.DefaultCapacity
	LogPath      string // Full path for log file including filename (creates parent directories)
	LogMaxSizeMB int    // Rotate the log file at this size; 0 uses the default
	LogLevel     string // Application log level: debug, info, warn or error
	// LogOutput replaces stdout as the console log writer. Terminal UI hosts
	// pass io.Discard so log lines do not land on the screen.
	LogOutput io.Writer
}

// Nav is the navigation API for one host.
type Nav struct {
	store   *store.Store
	channel *navchan.Channel
}

// New creates a Nav. Logging options take effect only on the first call in a
// process, before any logger has been created.
func New(options Options) *Nav {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	internal.SetLogMaxSize(options.LogMaxSizeMB)
	if options.LogOutput != nil {
		internal.SetOutput(options.LogOutput)
	}

	if internal.DebugRequested() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	return &Nav{
		store:   store.New(),
		channel: navchan.New(options.Capacity),
	}
}

// NewRouter creates an in-memory host bound to this Nav.
func (n *Nav) NewRouter() *router.Router {
	return router.New(n.store, n.channel)
}

// Store returns the payload store.
func (n *Nav) Store() *store.Store { return n.store }

// Channel returns the intent channel.
func (n *Nav) Channel() *navchan.Channel { return n.channel }

// Shutdown drops pending intents and every stored payload.
func (n *Nav) Shutdown() {
	n.channel.Discard()
	n.store.Clear()
}

// Option adjusts a navigation request. Options that do not apply to a
// request are ignored.
type Option func(*request)

type request struct {
	target    string
	popUpTo   string
	inclusive bool
	singleTop bool
	payload   any
}

// Target makes Back pop down to dest instead of a single entry.
func Target(dest route.Destination) Option {
	return func(r *request) { r.target = dest.Route() }
}

// PopUpTo makes To remove the entries above dest before pushing.
func PopUpTo(dest route.Destination) Option {
	return func(r *request) { r.popUpTo = dest.Route() }
}

// Inclusive also removes the Target or PopUpTo entry itself.
func Inclusive() Option {
	return func(r *request) { r.inclusive = true }
}

// SingleTop reuses the top entry when it is already the destination.
func SingleTop() Option {
	return func(r *request) { r.singleTop = true }
}

// WithParams attaches a payload for the destination screen.
func WithParams(v any) Option {
	return func(r *request) { r.payload = v }
}

// WithResult hands v back to the screen beneath the one going back.
func WithResult(v any) Option {
	return func(r *request) { r.payload = v }
}

func build(opts []Option) request {
	var r request
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Back pops the current screen.
func (n *Nav) Back(opts ...Option) bool {
	r := build(opts)
	return n.channel.Send(intent.Back{
		Target:    r.target,
		Inclusive: r.inclusive,
		Result:    r.payload,
	})
}

// BackTo pops down to dest, keeping it on top.
func (n *Nav) BackTo(dest route.Destination, opts ...Option) bool {
	return n.Back(append([]Option{Target(dest)}, opts...)...)
}

// To pushes dest.
func (n *Nav) To(dest route.Destination, opts ...Option) bool {
	r := build(opts)
	return n.channel.Send(intent.NavigateTo{
		Route:     dest.Route(),
		PopUpTo:   r.popUpTo,
		Inclusive: r.inclusive,
		SingleTop: r.singleTop,
		Payload:   r.payload,
	})
}

// Replace pushes dest in place of the current screen.
func (n *Nav) Replace(dest route.Destination, opts ...Option) bool {
	r := build(opts)
	return n.channel.Send(intent.Replace{
		Route:     dest.Route(),
		SingleTop: r.singleTop,
		Payload:   r.payload,
	})
}

// OffAllTo clears the stack and pushes dest.
func (n *Nav) OffAllTo(dest route.Destination, opts ...Option) bool {
	r := build(opts)
	return n.channel.Send(intent.ClearAndNavigateTo{
		Route:   dest.Route(),
		Payload: r.payload,
	})
}

// Params returns the payload the entry was navigated to with.
func Params[T any](n *Nav, e *router.Entry) (T, bool) {
	return store.Get[T](n.store, e.DataRef())
}

// ClearData removes the entry's payload from the store.
func (n *Nav) ClearData(e *router.Entry) {
	n.store.Remove(e.DataRef())
}

// ResultFor returns the latest result dest handed back to e.
func ResultFor[T any](n *Nav, e *router.Entry, dest route.Destination) (T, bool) {
	return result.Get[T](e, dest, n.store)
}

// WatchResult calls fn with each result dest hands back to e.
func WatchResult[T any](n *Nav, e *router.Entry, dest route.Destination, fn func(T)) (cancel func()) {
	return result.Watch(e, dest, n.store, fn)
}

// ClearResult empties e's result slot for dest and frees the value.
func (n *Nav) ClearResult(e *router.Entry, dest route.Destination) {
	result.Clear(e, dest, n.store)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}
