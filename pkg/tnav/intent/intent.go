// Package intent defines the navigation commands accepted by the intent
// channel. The set of variants is closed: only types in this package
// implement Intent.
package intent

import "fmt"

// Kind identifies an Intent variant.
type Kind int

const (
	KindBack               Kind = iota // pop one entry or down to a target
	KindNavigateTo                     // push, optionally collapsing first
	KindReplace                        // push and drop the caller's entry
	KindClearAndNavigateTo             // clear the stack, then push
	kindCount
)

// Kinds lists every Kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	switch k {
	case KindBack:
		return "Back"
	case KindNavigateTo:
		return "NavigateTo"
	case KindReplace:
		return "Replace"
	case KindClearAndNavigateTo:
		return "ClearAndNavigateTo"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Intent is a queued request to mutate the back stack.
type Intent interface {
	Kind() Kind
	sealed()
}

// Back pops the top entry, or every entry above Target when one is given.
// Inclusive also pops the Target entry itself. A non-nil Result is handed
// to the entry left beneath the current top.
type Back struct {
	Target    string
	Inclusive bool
	Result    any
}

// NavigateTo pushes Route. When PopUpTo is set, entries above it are removed
// first (and PopUpTo itself when Inclusive). SingleTop reuses a matching top
// entry instead of stacking a duplicate.
type NavigateTo struct {
	Route     string
	PopUpTo   string
	Inclusive bool
	SingleTop bool
	Payload   any
}

// Replace pushes Route in place of the entry currently on top.
type Replace struct {
	Route     string
	SingleTop bool
	Payload   any
}

// ClearAndNavigateTo empties the stack and pushes Route as its only entry.
type ClearAndNavigateTo struct {
	Route   string
	Payload any
}

func (Back) Kind() Kind               { return KindBack }
func (NavigateTo) Kind() Kind         { return KindNavigateTo }
func (Replace) Kind() Kind            { return KindReplace }
func (ClearAndNavigateTo) Kind() Kind { return KindClearAndNavigateTo }

func (Back) sealed()               {}
func (NavigateTo) sealed()         {}
func (Replace) sealed()            {}
func (ClearAndNavigateTo) sealed() {}

var (
	_ Intent = Back{}
	_ Intent = NavigateTo{}
	_ Intent = Replace{}
	_ Intent = ClearAndNavigateTo{}
)

// Target returns the route an intent is aimed at: the pop target for Back,
// the pushed route for the others.
func Target(in Intent) string {
	switch v := in.(type) {
	case Back:
		return v.Target
	case NavigateTo:
		return v.Route
	case Replace:
		return v.Route
	case ClearAndNavigateTo:
		return v.Route
	}
	return ""
}
