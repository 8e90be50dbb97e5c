package tnav_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
	"github.com/BrandonKowalski/tnav/pkg/tnav/intent"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/router"
)

var (
	Home   = route.New("Home")
	Picker = route.New("Picker")
	Detail = route.New("Detail")
)

type Fruit struct {
	Name string
}

func drain(t *testing.T, nav *tnav.Nav) []intent.Intent {
	t.Helper()
	var got []intent.Intent
	for nav.Channel().Len() > 0 {
		in, ok := nav.Channel().Receive(context.Background())
		require.True(t, ok)
		got = append(got, in)
	}
	return got
}

func TestRequestsBuildIntents(t *testing.T) {
	nav := tnav.New(tnav.Options{Capacity: 8})

	nav.To(Detail, tnav.PopUpTo(Home), tnav.Inclusive(), tnav.SingleTop(), tnav.WithParams(1))
	nav.Back(tnav.Target(Home), tnav.Inclusive(), tnav.WithResult("r"))
	nav.Back()
	nav.Replace(Picker, tnav.SingleTop(), tnav.WithParams(2))
	nav.OffAllTo(Home, tnav.WithParams(3))
	nav.BackTo(Picker, tnav.WithResult("p"))

	assert.Equal(t, []intent.Intent{
		intent.NavigateTo{Route: Detail.Route(), PopUpTo: Home.Route(), Inclusive: true, SingleTop: true, Payload: 1},
		intent.Back{Target: Home.Route(), Inclusive: true, Result: "r"},
		intent.Back{},
		intent.Replace{Route: Picker.Route(), SingleTop: true, Payload: 2},
		intent.ClearAndNavigateTo{Route: Home.Route(), Payload: 3},
		intent.Back{Target: Picker.Route(), Result: "p"},
	}, drain(t, nav))
}

func TestRequestsDropWhenFull(t *testing.T) {
	nav := tnav.New(tnav.Options{Capacity: 1})
	assert.True(t, nav.To(Detail))
	assert.False(t, nav.To(Picker))
	assert.EqualValues(t, 1, nav.Channel().Dropped())
}

func TestParamsAndResults(t *testing.T) {
	nav := tnav.New(tnav.Options{})
	r := nav.NewRouter()

	var params Fruit
	var paramsOK bool
	var watched []Fruit
	var latest Fruit

	r.Register(Home, func(screen *router.Screen) error {
		if screen.Entry.Appearances() == 1 {
			tnav.WatchResult(nav, screen.Entry, Picker, func(f Fruit) { watched = append(watched, f) })
			nav.To(Picker, tnav.WithParams(Fruit{Name: "apple"}))
			return nil
		}
		latest, _ = tnav.ResultFor[Fruit](nav, screen.Entry, Picker)
		nav.ClearResult(screen.Entry, Picker)
		_, stillThere := tnav.ResultFor[Fruit](nav, screen.Entry, Picker)
		assert.False(t, stillThere)
		nav.Back()
		return nil
	})
	r.Register(Picker, func(screen *router.Screen) error {
		params, paramsOK = tnav.Params[Fruit](nav, screen.Entry)
		nav.ClearData(screen.Entry)
		_, again := tnav.Params[Fruit](nav, screen.Entry)
		assert.False(t, again)
		nav.Back(tnav.WithResult(Fruit{Name: "pear"}))
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Run(ctx, Home))

	assert.True(t, paramsOK)
	assert.Equal(t, "apple", params.Name)
	assert.Equal(t, []Fruit{{Name: "pear"}}, watched)
	assert.Equal(t, "pear", latest.Name)
	assert.Equal(t, 0, nav.Store().Len())
}

func TestShutdown(t *testing.T) {
	nav := tnav.New(tnav.Options{})
	nav.Store().Put("x")
	nav.To(Home)

	nav.Shutdown()
	assert.Equal(t, 0, nav.Store().Len())
	assert.Equal(t, 0, nav.Channel().Len())
}

func TestInfrastructureError(t *testing.T) {
	err := tnav.NewInfrastructureError("open_input", fmt.Errorf("no device"))
	assert.Equal(t, "tnav: open_input: no device", err.Error())
	assert.True(t, tnav.IsInfrastructureError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, tnav.IsInfrastructureError(tnav.ErrUnknownTransition))
	assert.Equal(t, "tnav: op", tnav.NewInfrastructureError("op", nil).Error())
}

// Example walks a three-screen flow with params and a result.
func Example() {
	nav := tnav.New(tnav.Options{})
	r := nav.NewRouter()

	r.Register(Home, func(screen *router.Screen) error {
		if choice, ok := tnav.ResultFor[Fruit](nav, screen.Entry, Picker); ok {
			fmt.Println("Home: picked", choice.Name)
			nav.OffAllTo(Detail, tnav.WithParams(choice))
			return nil
		}
		fmt.Println("Home: opening picker")
		nav.To(Picker, tnav.WithParams([]string{"fig", "kiwi"}))
		return nil
	})

	r.Register(Picker, func(screen *router.Screen) error {
		options, _ := tnav.Params[[]string](nav, screen.Entry)
		fmt.Println("Picker: choosing from", options)
		nav.Back(tnav.WithResult(Fruit{Name: options[1]}))
		return nil
	})

	r.Register(Detail, func(screen *router.Screen) error {
		f, _ := tnav.Params[Fruit](nav, screen.Entry)
		fmt.Printf("Detail: %s, stack %v\n", f.Name, r.Stack().Paths())
		nav.Back()
		return nil
	})

	_ = r.Run(context.Background(), Home)

	// Output:
	// Home: opening picker
	// Picker: choosing from [fig kiwi]
	// Home: picked kiwi
	// Detail: kiwi, stack [Detail]
}
