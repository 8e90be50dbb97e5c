// Package router is an in-memory navigation host: a back stack, the screens
// registered for each destination, and the loop that applies queued intents.
//
// Screens never return the next screen. They send intents, and the router
// applies them one at a time on the goroutine that called Run, showing the
// screen for whatever entry ends up on top.
//
// # Basic Usage
//
//	var (
//	    List   = route.New("List")
//	    Detail = route.New("Detail")
//	)
//
//	s := store.New()
//	r := router.New(s, navchan.New(0))
//
//	r.Register(List, func(screen *router.Screen) error {
//	    r.Send(intent.NavigateTo{Route: Detail.Route(), Payload: item})
//	    return nil
//	})
//
//	r.Register(Detail, func(screen *router.Screen) error {
//	    item, _ := store.Get[Item](s, screen.Entry.DataRef())
//	    r.Send(intent.Back{Result: Choice{ID: item.ID}})
//	    return nil
//	})
//
//	err := r.Run(ctx, List)
//
// # Lifecycle
//
// Run returns nil once the stack is empty or ctx is cancelled, and an error
// when a screen fails or a route has no registration. Only one Run may be
// active at a time; calling Run again re-attaches to the existing stack.
// Detach stops the loop and discards intents that were not applied yet.
//
// When an entry leaves the stack its payload is removed from the store.
// Results handed back with intent.Back live in the receiving entry's saved
// state and are not removed automatically.
package router
