package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/tnav/pkg/tnav/result"
	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

type bag struct {
	values    map[string]any
	observers map[string][]func(any)
}

func newBag() *bag {
	return &bag{values: map[string]any{}, observers: map[string][]func(any){}}
}

func (b *bag) GetState(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

func (b *bag) SetState(key string, value any) {
	b.values[key] = value
	for _, fn := range b.observers[key] {
		if fn != nil {
			fn(value)
		}
	}
}

func (b *bag) ObserveState(key string, fn func(any)) func() {
	i := len(b.observers[key])
	b.observers[key] = append(b.observers[key], fn)
	return func() { b.observers[key][i] = nil }
}

var picker = route.New("Picker")

func TestKey(t *testing.T) {
	assert.Equal(t, "result_Picker", result.Key("Picker"))
	assert.Equal(t, "result_Picker", result.Key("Picker?dataRef=abc"))
	assert.Equal(t, result.Key(picker.Path()), result.Key(picker.Route()))
}

func TestDeliverAndGet(t *testing.T) {
	s := store.New()
	b := newBag()

	_, ok := result.Get[int](b, picker, s)
	assert.False(t, ok)

	result.Deliver(b, "Picker?dataRef=x", s.Put(3))
	v, ok := result.Get[int](b, picker, s)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	// last write wins
	result.Deliver(b, "Picker?dataRef=y", s.Put(4))
	v, _ = result.Get[int](b, picker, s)
	assert.Equal(t, 4, v)

	_, ok = result.Get[string](b, picker, s)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	s := store.New()
	b := newBag()
	result.Deliver(b, picker.Route(), s.Put("x"))

	result.Clear(b, picker, s)
	_, ok := result.Get[string](b, picker, s)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestWatch(t *testing.T) {
	s := store.New()
	b := newBag()
	result.Deliver(b, picker.Route(), s.Put("first"))

	var got []string
	cancel := result.Watch(b, picker, s, func(v string) { got = append(got, v) })
	assert.Equal(t, []string{"first"}, got, "current value is delivered on subscribe")

	result.Deliver(b, picker.Route(), s.Put("second"))
	result.Deliver(b, picker.Route(), s.Put(99)) // wrong type, skipped
	result.Deliver(b, route.New("Other").Route(), s.Put("other"))
	cancel()
	result.Deliver(b, picker.Route(), s.Put("third"))

	assert.Equal(t, []string{"first", "second"}, got)
}
