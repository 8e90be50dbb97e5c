package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/tnav/pkg/tnav/route"
	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

func TestDestination(t *testing.T) {
	d := route.New("Detail")

	assert.Equal(t, "Detail", d.Name())
	assert.Equal(t, "Detail?dataRef={dataRef}", d.Route())
	assert.Equal(t, "Detail", d.Path())
	assert.False(t, d.IsZero())
	assert.True(t, route.Destination{}.IsZero())
}

func TestPathOf(t *testing.T) {
	assert.Equal(t, "List", route.PathOf("List?dataRef={dataRef}"))
	assert.Equal(t, "List", route.PathOf("List?dataRef=abc"))
	assert.Equal(t, "List", route.PathOf("List"))
	assert.Equal(t, "", route.PathOf(""))
}

func TestDataRefOf(t *testing.T) {
	assert.Equal(t, "abc", route.DataRefOf("List?dataRef=abc"))
	assert.Equal(t, "", route.DataRefOf("List?dataRef="))
	assert.Equal(t, "", route.DataRefOf("List?dataRef={dataRef}"))
	assert.Equal(t, "", route.DataRefOf("List"))
}

func TestMatch(t *testing.T) {
	assert.True(t, route.Match("A?dataRef=1", "A?dataRef={dataRef}"))
	assert.True(t, route.Match("A", "A?dataRef=2"))
	assert.False(t, route.Match("A?dataRef=1", "AB?dataRef=1"))
}

func TestResolveWithoutPlaceholder(t *testing.T) {
	s := store.New()

	assert.Equal(t, "Plain", route.Resolve("Plain", "payload", s))
	assert.Equal(t, 0, s.Len())
}

func TestResolveNilPayload(t *testing.T) {
	s := store.New()

	got := route.Resolve(route.New("A").Route(), nil, s)
	assert.Equal(t, "A?dataRef=", got)
	assert.Equal(t, 0, s.Len())
}

func TestResolvePayload(t *testing.T) {
	s := store.New()

	got := route.Resolve(route.New("A").Route(), []int{1, 2}, s)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "A", route.PathOf(got))

	ref := route.DataRefOf(got)
	require.NotEmpty(t, ref)
	v, ok := store.Get[[]int](s, ref)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, v)
}
