// Package route models navigable destinations and the route strings the host
// back stack matches on.
//
// A destination named "Detail" has the route template
//
//	Detail?dataRef={dataRef}
//
// which Resolve turns into "Detail?dataRef=<ref>" when a payload is attached,
// or "Detail?dataRef=" when there is none.
package route

import (
	"net/url"
	"strings"

	"github.com/BrandonKowalski/tnav/pkg/tnav/store"
)

const (
	// DataRefKey is the query argument carrying the payload reference.
	DataRefKey = "dataRef"
	// Placeholder is the reserved token substituted by Resolve.
	Placeholder = "{" + DataRefKey + "}"
)

// Destination is a named screen and its route template.
// Destinations are values; the template is fixed when New builds it.
type Destination struct {
	name     string
	template string
}

// New creates a Destination for the given logical name.
func New(name string) Destination {
	name = strings.TrimSpace(name)
	return Destination{name: name, template: Template(name)}
}

// Name returns the logical screen name.
func (d Destination) Name() string { return d.name }

// Route returns the unresolved route template.
func (d Destination) Route() string { return d.template }

// Path returns the route with its query portion stripped.
func (d Destination) Path() string { return PathOf(d.template) }

// IsZero reports whether d was built without a name.
func (d Destination) IsZero() bool { return d.name == "" }

func (d Destination) String() string { return d.name }

// Template builds the route template for a logical name.
func Template(name string) string {
	return name + "?" + DataRefKey + "=" + Placeholder
}

// PathOf strips the query portion from a route or template.
func PathOf(route string) string {
	path, _, _ := strings.Cut(route, "?")
	return path
}

// DataRefOf returns the payload reference carried by a resolved route,
// or "" when the route has none.
func DataRefOf(route string) string {
	_, query, ok := strings.Cut(route, "?")
	if !ok {
		return ""
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	ref := values.Get(DataRefKey)
	if ref == Placeholder {
		return ""
	}
	return ref
}

// Match reports whether two routes refer to the same destination path.
// Templates and resolved routes compare equal when their paths do.
func Match(a, b string) bool {
	return PathOf(a) == PathOf(b)
}

// Resolve substitutes the placeholder in template. A nil payload leaves the
// argument empty; otherwise the payload is put into s and its reference is
// substituted. Templates without a placeholder are returned unchanged and
// nothing is stored.
func Resolve(template string, payload any, s *store.Store) string {
	if !strings.Contains(template, Placeholder) {
		return template
	}
	if payload == nil {
		return strings.Replace(template, Placeholder, "", 1)
	}
	return strings.Replace(template, Placeholder, s.Put(payload), 1)
}
