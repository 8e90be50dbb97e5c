// Package teahost runs a navigation back stack inside a Bubble Tea program.
//
// The intent channel is drained by a tea.Cmd that waits for one intent at a
// time. Each intent arrives in Update as a message and is reduced there, on
// the program's UI goroutine, before the next wait is scheduled.
package teahost

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/internal"
	"github.com/BrandonKowalski/tnav/pkg/tnav/reducer"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/router"
	"github.com/BrandonKowalski/tnav/pkg/tnav/transition"
)

// Context is handed to screens on every call.
type Context struct {
	Nav    *tnav.Nav
	Entry  *router.Entry
	Width  int
	Height int
}

// Screen draws one destination.
type Screen interface {
	Update(ctx *Context, msg tea.Msg) tea.Cmd
	View(ctx *Context) string
}

// Enterer is implemented by screens that want a call each time their entry
// becomes the top of the stack.
type Enterer interface {
	Enter(ctx *Context, t transition.Spec) tea.Cmd
}

type registration struct {
	dest       route.Destination
	screen     Screen
	title      string
	dialog     bool
	transition transition.Config
}

// RegisterOption customizes a registration.
type RegisterOption func(*registration)

// Title sets the i18n message ID (or literal text, when no localizer is
// configured) shown in the header.
func Title(messageID string) RegisterOption {
	return func(r *registration) { r.title = messageID }
}

// Dialog draws the destination beneath the screen it was opened from.
func Dialog() RegisterOption {
	return func(r *registration) { r.dialog = true }
}

// Transition sets the animations reported to Enterer screens.
func Transition(c transition.Config) RegisterOption {
	return func(r *registration) { r.transition = c }
}

// FromConfig applies the settings configured for the destination's name.
func FromConfig(c tnav.Config, name string) RegisterOption {
	return func(r *registration) {
		rc, ok := c.Route(name)
		if !ok {
			return
		}
		if rc.Title != "" {
			r.title = rc.Title
		}
		if rc.Dialog {
			r.dialog = true
		}
		if t, ok := transition.Lookup(rc.Transition); ok {
			r.transition = t
		}
	}
}

type intentMsg struct {
	intent intent.Intent
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	crumbStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
)

// Model is a tea.Model hosting a back stack.
type Model struct {
	nav       *tnav.Nav
	start     route.Destination
	stack     *router.Stack
	screens   map[string]*registration
	localizer *i18n.Localizer

	ctx    context.Context
	cancel context.CancelFunc
	alive  atomic.Bool
	owner  atomic.Bool

	width, height int
	err           error
}

// New creates a Model that starts at start.
func New(nav *tnav.Nav, start route.Destination) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		nav:     nav,
		start:   start,
		stack:   router.NewStack(),
		screens: make(map[string]*registration),
		ctx:     ctx,
		cancel:  cancel,
	}
	m.stack.SetHooks(router.PayloadHooks(nav.Store()))
	m.alive.Store(true)
	return m
}

// Register adds a screen for dest.
func (m *Model) Register(dest route.Destination, screen Screen, opts ...RegisterOption) *Model {
	reg := &registration{dest: dest, screen: screen, transition: transition.Default}
	for _, opt := range opts {
		opt(reg)
	}
	m.screens[dest.Path()] = reg
	return m
}

// SetLocalizer translates header titles.
func (m *Model) SetLocalizer(l *i18n.Localizer) *Model {
	m.localizer = l
	return m
}

// Stack returns the hosted back stack.
func (m *Model) Stack() *router.Stack { return m.stack }

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

// Alive reports whether the model still applies intents.
func (m *Model) Alive() bool { return m.alive.Load() }

// Detach stops applying intents, releases the pending wait and gives the
// channel back. Intents still queued are discarded.
func (m *Model) Detach() {
	m.alive.Store(false)
	m.cancel()
	if m.owner.CompareAndSwap(true, false) {
		m.nav.Channel().Release()
	}
}

// Init claims the intent channel and shows the start destination. When
// another host already drains the channel, Err reports ErrConsumerActive and
// the program quits.
func (m *Model) Init() tea.Cmd {
	if !m.owner.Load() {
		if err := m.nav.Channel().Acquire(); err != nil {
			m.err = err
			internal.GetInternalLogger().Error("Navigation channel has another consumer", "error", err)
			return m.quit()
		}
		m.owner.Store(true)
	}
	if m.stack.IsEmpty() {
		m.stack.Push(route.Resolve(m.start.Route(), nil, m.nav.Store()), reducer.PushOptions{})
	}
	return tea.Batch(m.enter(false), m.waitForIntent())
}

func (m *Model) waitForIntent() tea.Cmd {
	ctx := m.ctx
	ch := m.nav.Channel()
	return func() tea.Msg {
		in, ok := ch.Receive(ctx)
		if !ok {
			return nil
		}
		return intentMsg{intent: in}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case intentMsg:
		return m, m.apply(msg.intent)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "esc":
			m.nav.Back()
			return m, nil
		}
	}

	reg, ctx, ok := m.current()
	if !ok {
		return m, nil
	}
	return m, reg.screen.Update(ctx, msg)
}

func (m *Model) apply(in intent.Intent) tea.Cmd {
	if !m.Alive() {
		internal.GetInternalLogger().Debug("Discarded navigation intent, host not alive",
			"kind", in.Kind().String(), "target", intent.Target(in))
		return nil
	}

	before, _ := m.stack.Top()
	beforeRoute := ""
	if before != nil {
		beforeRoute = before.Route()
	}

	if err := reducer.Apply[*router.Entry](m.stack, m.nav.Store(), in); err != nil {
		internal.GetInternalLogger().Error("Failed to apply navigation intent", "error", err)
		return m.waitForIntent()
	}

	after, ok := m.stack.Top()
	if !ok {
		return m.quit()
	}
	if after == before && after.Route() == beforeRoute {
		return m.waitForIntent()
	}
	return tea.Batch(m.enter(in.Kind() == intent.KindBack), m.waitForIntent())
}

func (m *Model) enter(revealed bool) tea.Cmd {
	reg, ctx, ok := m.current()
	if !ok {
		top, _ := m.stack.Top()
		m.err = router.ErrNotRegistered
		internal.GetInternalLogger().Error("Screen not registered", "screen", top.Path())
		return m.quit()
	}
	ctx.Entry.MarkAppeared()
	enterer, ok := reg.screen.(Enterer)
	if !ok {
		return nil
	}
	spec := reg.transition.Enter
	if revealed {
		spec = reg.transition.PopEnter
	}
	return enterer.Enter(ctx, spec)
}

func (m *Model) quit() tea.Cmd {
	m.Detach()
	return tea.Quit
}

func (m *Model) current() (*registration, *Context, bool) {
	top, ok := m.stack.Top()
	if !ok {
		return nil, nil, false
	}
	return m.contextFor(top)
}

func (m *Model) contextFor(e *router.Entry) (*registration, *Context, bool) {
	reg, ok := m.screens[e.Path()]
	if !ok {
		return nil, nil, false
	}
	return reg, &Context{Nav: m.nav, Entry: e, Width: m.width, Height: m.height}, true
}

func (m *Model) View() string {
	reg, ctx, ok := m.current()
	if !ok {
		return ""
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(m.title(reg)),
		crumbStyle.Render(strings.Join(m.stack.Paths(), " › ")),
	)

	body := reg.screen.View(ctx)
	if reg.dialog {
		if prev, ok := m.stack.Previous(); ok {
			if under, underCtx, ok := m.contextFor(prev); ok {
				body = lipgloss.JoinVertical(lipgloss.Left,
					under.screen.View(underCtx),
					dialogStyle.Render(body),
				)
			}
		} else {
			body = dialogStyle.Render(body)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *Model) title(reg *registration) string {
	if reg.title == "" {
		return reg.dest.Name()
	}
	if m.localizer == nil {
		return reg.title
	}
	s, err := m.localizer.Localize(&i18n.LocalizeConfig{MessageID: reg.title})
	if err != nil {
		internal.GetInternalLogger().Debug("Missing title translation", "id", reg.title, "error", err)
		return reg.dest.Name()
	}
	return s
}

// Run starts a Bubble Tea program for m and blocks until it exits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return tnav.NewInfrastructureError("run_program", err)
	}
	return m.Err()
}
