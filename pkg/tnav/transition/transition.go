// Package transition describes screen enter/exit animations as plain data.
// Hosts decide how to draw them; the navigation core only carries them.
package transition

import (
	"sort"
	"strings"
	"time"
)

// EffectKind names a visual effect.
type EffectKind int

const (
	SlideHorizontal EffectKind = iota + 1
	SlideVertical
	Fade
	Scale
)

// Easing names a timing curve.
type Easing string

const (
	Linear           Easing = "linear"
	FastOutSlowIn    Easing = "fast-out-slow-in"
	FastOutLinearIn  Easing = "fast-out-linear-in"
	SpringLowBouncy  Easing = "spring-medium-bouncy-low-stiffness"
)

// DefaultDuration is the length of most presets.
const DefaultDuration = 300 * time.Millisecond

// Effect is one component of a Spec. Offset is the start (or end) position as
// a fraction of the screen size for slides, sign giving direction. Scale is
// the start (or end) scale for Scale effects.
type Effect struct {
	Kind   EffectKind
	Offset float64
	Scale  float64
}

// Spec is an animation. The zero Spec means no animation.
type Spec struct {
	Effects  []Effect
	Duration time.Duration
	Easing   Easing
}

// IsNone reports whether s animates nothing.
func (s Spec) IsNone() bool { return len(s.Effects) == 0 }

// Config holds the four animations used around a screen.
type Config struct {
	Name     string
	Enter    Spec // screen pushed
	Exit     Spec // screen covered by a push
	PopEnter Spec // screen revealed by a pop
	PopExit  Spec // screen popped
}

func spec(d time.Duration, e Easing, effects ...Effect) Spec {
	return Spec{Effects: effects, Duration: d, Easing: e}
}

func slideX(offset float64) Effect { return Effect{Kind: SlideHorizontal, Offset: offset} }
func slideY(offset float64) Effect { return Effect{Kind: SlideVertical, Offset: offset} }
func scale(s float64) Effect       { return Effect{Kind: Scale, Scale: s} }

var fade = Effect{Kind: Fade}

var (
	Default = Config{
		Name:     "Default",
		Enter:    spec(DefaultDuration, Linear, slideX(1)),
		Exit:     spec(DefaultDuration, Linear, slideX(-1)),
		PopEnter: spec(DefaultDuration, Linear, slideX(-1)),
		PopExit:  spec(DefaultDuration, Linear, slideX(1)),
	}
	FadeIn = Config{
		Name:     "Fade",
		Enter:    spec(DefaultDuration, Linear, fade),
		Exit:     spec(DefaultDuration, Linear, fade),
		PopEnter: spec(DefaultDuration, Linear, fade),
		PopExit:  spec(DefaultDuration, Linear, fade),
	}
	ScaleIn = Config{
		Name:     "Scale",
		Enter:    spec(DefaultDuration, FastOutSlowIn, scale(0.8), fade),
		Exit:     spec(DefaultDuration, FastOutSlowIn, scale(0.8), fade),
		PopEnter: spec(DefaultDuration, FastOutSlowIn, scale(0.8), fade),
		PopExit:  spec(DefaultDuration, FastOutSlowIn, scale(0.8), fade),
	}
	SlideUp = Config{
		Name:     "SlideVertical",
		Enter:    spec(DefaultDuration, Linear, slideY(1)),
		Exit:     spec(DefaultDuration, Linear, slideY(-1)),
		PopEnter: spec(DefaultDuration, Linear, slideY(-1)),
		PopExit:  spec(DefaultDuration, Linear, slideY(1)),
	}
	Elastic = Config{
		Name:     "Elastic",
		Enter:    spec(400*time.Millisecond, SpringLowBouncy, scale(0.5), fade),
		Exit:     spec(250*time.Millisecond, FastOutLinearIn, scale(0.5), fade),
		PopEnter: spec(400*time.Millisecond, SpringLowBouncy, scale(0.5), fade),
		PopExit:  spec(250*time.Millisecond, FastOutLinearIn, scale(0.5), fade),
	}
	SlideFade = Config{
		Name:     "SlideFade",
		Enter:    spec(350*time.Millisecond, FastOutSlowIn, slideX(1), fade),
		Exit:     spec(350*time.Millisecond, FastOutSlowIn, slideX(-1), fade),
		PopEnter: spec(350*time.Millisecond, FastOutSlowIn, slideX(-1), fade),
		PopExit:  spec(350*time.Millisecond, FastOutSlowIn, slideX(1), fade),
	}
	ScaleSlide = Config{
		Name:     "ScaleSlide",
		Enter:    spec(DefaultDuration, FastOutSlowIn, scale(0.9), slideX(0.3), fade),
		Exit:     spec(DefaultDuration, FastOutSlowIn, scale(0.9), slideX(-0.3), fade),
		PopEnter: spec(DefaultDuration, FastOutSlowIn, scale(0.9), slideX(-0.3), fade),
		PopExit:  spec(DefaultDuration, FastOutSlowIn, scale(0.9), slideX(0.3), fade),
	}
	BottomSheet = Config{
		Name:     "BottomSheet",
		Enter:    spec(400*time.Millisecond, FastOutSlowIn, slideY(1), fade),
		Exit:     spec(DefaultDuration, FastOutLinearIn, slideY(1), fade),
		PopEnter: spec(400*time.Millisecond, FastOutSlowIn, slideY(1), fade),
		PopExit:  spec(DefaultDuration, FastOutLinearIn, slideY(1), fade),
	}
	RotateScale = Config{
		Name:     "RotateScale",
		Enter:    spec(400*time.Millisecond, FastOutSlowIn, scale(0.7), fade, slideX(0.5)),
		Exit:     spec(DefaultDuration, FastOutLinearIn, scale(0.7), fade, slideX(-0.5)),
		PopEnter: spec(400*time.Millisecond, FastOutSlowIn, scale(0.7), fade, slideX(-0.5)),
		PopExit:  spec(DefaultDuration, FastOutLinearIn, scale(0.7), fade, slideX(0.5)),
	}
	QuickFade = Config{
		Name:     "QuickFade",
		Enter:    spec(200*time.Millisecond, Linear, fade),
		Exit:     spec(150*time.Millisecond, Linear, fade),
		PopEnter: spec(200*time.Millisecond, Linear, fade),
		PopExit:  spec(150*time.Millisecond, Linear, fade),
	}
	None = Config{Name: "None"}
)

var presets = map[string]Config{}

func init() {
	for _, c := range []Config{
		Default, FadeIn, ScaleIn, SlideUp, Elastic, SlideFade,
		ScaleSlide, BottomSheet, RotateScale, QuickFade, None,
	} {
		presets[strings.ToLower(c.Name)] = c
	}
}

// Lookup returns the preset with the given name, ignoring case.
// An empty name is Default.
func Lookup(name string) (Config, bool) {
	if strings.TrimSpace(name) == "" {
		return Default, true
	}
	c, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Names lists the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for _, c := range presets {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
