package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/teahost"
	"github.com/BrandonKowalski/tnav/pkg/tnav/transition"
)

var (
	Menu   = route.New("Menu")
	Detail = route.New("Detail")
	Picker = route.New("Picker")
)

type Fruit struct {
	Name   string
	Origin string
}

var fruits = []Fruit{
	{Name: "Apple", Origin: "Central Asia"},
	{Name: "Mango", Origin: "South Asia"},
	{Name: "Kiwi", Origin: "China"},
	{Name: "Feijoa", Origin: "South America"},
}

var colors = []string{"Red", "Green", "Yellow", "Purple"}

var selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

func renderList(items []string, cursor int) string {
	var b strings.Builder
	for i, item := range items {
		if i == cursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func moveCursor(key string, cursor, n int) int {
	switch key {
	case "up", "k":
		if cursor > 0 {
			cursor--
		}
	case "down", "j":
		if cursor < n-1 {
			cursor++
		}
	}
	return cursor
}

type menuScreen struct {
	cursor   int
	color    string
	watching uint64
	cancel   func()
}

func newMenuScreen() *menuScreen { return &menuScreen{} }

func (s *menuScreen) Enter(ctx *teahost.Context, _ transition.Spec) tea.Cmd {
	// OffAllTo replaces the menu entry, so the watch follows the entry ID.
	if s.watching == ctx.Entry.ID() {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.color = ""
	s.watching = ctx.Entry.ID()
	s.cancel = tnav.WatchResult(ctx.Nav, ctx.Entry, Picker, func(c string) { s.color = c })
	return nil
}

func (s *menuScreen) Update(ctx *teahost.Context, msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch k.String() {
	case "enter":
		ctx.Nav.To(Detail, tnav.WithParams(fruits[s.cursor]), tnav.SingleTop())
	case "p":
		ctx.Nav.To(Picker)
	case "x":
		s.color = ""
		ctx.Nav.ClearResult(ctx.Entry, Picker)
	default:
		s.cursor = moveCursor(k.String(), s.cursor, len(fruits))
	}
	return nil
}

func (s *menuScreen) View(*teahost.Context) string {
	names := make([]string, len(fruits))
	for i, f := range fruits {
		names[i] = f.Name
	}
	color := s.color
	if color == "" {
		color = "none"
	}
	return renderList(names, s.cursor) + fmt.Sprintf("\ncolor: %s (p to pick, x to clear)\n", color)
}

type detailScreen struct{}

func (s *detailScreen) Update(ctx *teahost.Context, msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch k.String() {
	case "n":
		f, _ := tnav.Params[Fruit](ctx.Nav, ctx.Entry)
		ctx.Nav.Replace(Detail, tnav.WithParams(next(f)))
	case "h":
		ctx.Nav.OffAllTo(Menu)
	case "p":
		ctx.Nav.To(Picker)
	}
	return nil
}

func (s *detailScreen) View(ctx *teahost.Context) string {
	f, ok := tnav.Params[Fruit](ctx.Nav, ctx.Entry)
	if !ok {
		return "no fruit selected\n"
	}
	picked := "none"
	if c, ok := tnav.ResultFor[string](ctx.Nav, ctx.Entry, Picker); ok {
		picked = c
	}
	return fmt.Sprintf("%s\norigin: %s\ncolor: %s\n\nn next, p pick, h home\n", f.Name, f.Origin, picked)
}

func next(f Fruit) Fruit {
	for i, candidate := range fruits {
		if candidate.Name == f.Name {
			return fruits[(i+1)%len(fruits)]
		}
	}
	return fruits[0]
}

type pickerScreen struct {
	cursor int
}

func newPickerScreen() *pickerScreen { return &pickerScreen{} }

func (s *pickerScreen) Update(ctx *teahost.Context, msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch k.String() {
	case "enter":
		ctx.Nav.Back(tnav.WithResult(colors[s.cursor]))
	default:
		s.cursor = moveCursor(k.String(), s.cursor, len(colors))
	}
	return nil
}

func (s *pickerScreen) View(*teahost.Context) string {
	return renderList(colors, s.cursor)
}
