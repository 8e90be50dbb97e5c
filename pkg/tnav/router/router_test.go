package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/navchan"
	"github.com/BrandonKowalski/tnav/pkg/tnav/result"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
	"github.com/BrandonKowalski/tnav/pkg/tnav/transition"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// harness registers destA..destD and runs the hook for each show.
type harness struct {
	r     *Router
	s     *store.Store
	shown []string
	hooks map[string]func(screen *Screen) error
}

func newHarness() *harness {
	h := &harness{s: store.New(), hooks: map[string]func(*Screen) error{}}
	h.r = New(h.s, navchan.New(16))
	for _, d := range []route.Destination{destA, destB, destC, destD} {
		h.r.Register(d, func(screen *Screen) error {
			h.shown = append(h.shown, screen.Entry.Path())
			if hook := h.hooks[screen.Entry.Path()]; hook != nil {
				return hook(screen)
			}
			return nil
		})
	}
	return h
}

func (h *harness) on(d route.Destination, fn func(screen *Screen) error) {
	h.hooks[d.Path()] = fn
}

func (h *harness) run(t *testing.T) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return h.r.Run(ctx, destA)
}

func TestRunExitsWhenStackEmpties(t *testing.T) {
	h := newHarness()
	h.on(destA, func(*Screen) error {
		h.r.Send(intent.Back{})
		return nil
	})

	require.NoError(t, h.run(t))
	assert.Equal(t, []string{"A"}, h.shown)
	assert.True(t, h.r.Stack().IsEmpty())
	assert.False(t, h.r.Running())
}

func TestRunAppliesIntentsInSendOrder(t *testing.T) {
	h := newHarness()
	h.on(destA, func(*Screen) error {
		h.r.Send(to(destB))
		h.r.Send(to(destC))
		h.r.Send(to(destD))
		return nil
	})
	h.on(destD, func(*Screen) error {
		h.r.Send(intent.Back{Target: destA.Route(), Inclusive: true})
		return nil
	})

	require.NoError(t, h.run(t))
	assert.Equal(t, []string{"A", "B", "C", "D"}, h.shown)
}

func TestRunDeliversResultOnce(t *testing.T) {
	h := newHarness()
	var results []string
	var revealed *Screen

	h.on(destA, func(screen *Screen) error {
		if screen.Entry.Appearances() == 1 {
			result.Watch(screen.Entry, destB, h.s, func(v string) { results = append(results, v) })
			h.r.Send(to(destB))
			return nil
		}
		revealed = screen
		h.r.Send(intent.Back{})
		return nil
	})
	h.on(destB, func(*Screen) error {
		h.r.Send(intent.Back{Result: "R"})
		return nil
	})

	require.NoError(t, h.run(t))
	assert.Equal(t, []string{"A", "B", "A"}, h.shown)
	assert.Equal(t, []string{"R"}, results)
	require.NotNil(t, revealed)
	assert.True(t, revealed.Revealed)
	assert.Equal(t, transition.Default.PopEnter, revealed.Transition)
}

func TestRunDisposesPayloadWithEntry(t *testing.T) {
	h := newHarness()
	var ref string
	var payload string

	h.on(destA, func(screen *Screen) error {
		if screen.Entry.Appearances() == 1 {
			h.r.Send(intent.NavigateTo{Route: destB.Route(), Payload: "hello"})
			return nil
		}
		_, stillThere := h.s.Load(ref)
		assert.False(t, stillThere)
		h.r.Send(intent.Back{})
		return nil
	})
	h.on(destB, func(screen *Screen) error {
		ref = screen.Entry.DataRef()
		payload, _ = store.Get[string](h.s, ref)
		h.r.Send(intent.Back{})
		return nil
	})

	require.NoError(t, h.run(t))
	assert.Equal(t, "hello", payload)
	assert.Equal(t, 0, h.s.Len())
}

func TestRunSingleTopReleasesReplacedPayload(t *testing.T) {
	h := newHarness()
	var refs []string

	h.on(destA, func(*Screen) error {
		h.r.Send(intent.NavigateTo{Route: destB.Route(), SingleTop: true, Payload: 1})
		h.r.Send(intent.NavigateTo{Route: destB.Route(), SingleTop: true, Payload: 2})
		return nil
	})
	h.on(destB, func(screen *Screen) error {
		refs = append(refs, screen.Entry.DataRef())
		if len(refs) == 2 {
			h.r.Send(intent.ClearAndNavigateTo{Route: destC.Route()})
		}
		return nil
	})
	h.on(destC, func(*Screen) error {
		assert.Equal(t, []string{"C"}, h.r.Stack().Paths())
		h.r.Send(intent.Back{})
		return nil
	})

	require.NoError(t, h.run(t))
	require.Len(t, refs, 2)
	assert.NotEqual(t, refs[0], refs[1])
	assert.Equal(t, 0, h.s.Len())
}

func TestRunRejectsSecondLoop(t *testing.T) {
	h := newHarness()
	var nested error
	h.on(destA, func(*Screen) error {
		nested = h.r.Run(context.Background(), destA)
		h.r.Send(intent.Back{})
		return nil
	})

	require.NoError(t, h.run(t))
	assert.ErrorIs(t, nested, ErrAlreadyRunning)
}

func TestRunScreenError(t *testing.T) {
	h := newHarness()
	boom := errors.New("boom")
	h.on(destA, func(*Screen) error {
		h.r.Send(to(destB))
		return nil
	})
	h.on(destB, func(*Screen) error { return boom })

	err := h.run(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "router: screen B error")
}

func TestRunUnregistered(t *testing.T) {
	h := newHarness()
	err := h.r.Run(context.Background(), route.New("Missing"))
	assert.ErrorIs(t, err, ErrNotRegistered)

	h.on(destA, func(*Screen) error {
		h.r.Send(intent.NavigateTo{Route: route.New("Missing").Route()})
		return nil
	})
	assert.ErrorIs(t, h.run(t), ErrNotRegistered)
}

type surface struct{ alive atomic.Bool }

func (s *surface) Alive() bool { return s.alive.Load() }

func TestRunDiscardsIntentsForDeadSurface(t *testing.T) {
	h := newHarness()
	surf := &surface{}
	h.r.SetSurface(surf)
	h.on(destA, func(*Screen) error {
		h.r.Send(to(destB))
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, h.r.Run(ctx, destA))

	assert.Equal(t, []string{"A"}, h.shown)
	assert.Equal(t, []string{"A"}, h.r.Stack().Paths())
}

func TestDetachStopsLoopAndReattachKeepsStack(t *testing.T) {
	h := newHarness()
	h.on(destA, func(*Screen) error {
		h.r.Send(to(destB))
		return nil
	})
	h.on(destB, func(screen *Screen) error {
		if screen.Entry.Appearances() == 1 {
			h.r.Send(to(destC)) // queued, never applied
			h.r.Detach()
		}
		return nil
	})

	require.NoError(t, h.run(t))
	assert.Equal(t, []string{"A", "B"}, h.r.Stack().Paths())
	assert.Zero(t, h.r.channel.Len())

	// re-attaching shows the existing top instead of pushing the start again
	h.on(destB, func(*Screen) error {
		h.r.Send(intent.ClearAndNavigateTo{Route: destD.Route()})
		return nil
	})
	h.on(destD, func(*Screen) error {
		h.r.Send(intent.Back{})
		return nil
	})
	require.NoError(t, h.run(t))
	assert.Equal(t, []string{"A", "B", "B", "D"}, h.shown)
}

func TestRegisterOptions(t *testing.T) {
	s := store.New()
	r := New(s, navchan.New(4))

	var disposed []string
	var dialog *Screen
	r.Register(destA, func(screen *Screen) error {
		if screen.Entry.Appearances() == 1 {
			r.Send(to(destB))
			return nil
		}
		r.Send(intent.Back{})
		return nil
	})
	r.Register(destB, func(screen *Screen) error {
		dialog = screen
		r.Send(intent.Back{})
		return nil
	}, AsDialog(), WithTransition(transition.BottomSheet), OnDispose(func(e *Entry) {
		disposed = append(disposed, e.Path())
	}))

	reg, ok := r.Registration(destB.Route())
	require.True(t, ok)
	assert.True(t, reg.Dialog)

	require.NoError(t, r.Run(context.Background(), destA))
	require.NotNil(t, dialog)
	assert.True(t, dialog.Dialog)
	assert.Equal(t, transition.BottomSheet.Enter, dialog.Transition)
	assert.Equal(t, []string{"B"}, disposed)
}
