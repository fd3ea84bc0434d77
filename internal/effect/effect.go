// Package effect implements short-lived, self-expiring visual entities:
// dust puffs kicked up by the hamster and the "Z" glyphs that float above it
// while it sleeps.
package effect

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
)

// Kind identifies the type of effect.
type Kind int

const (
	KindDust Kind = iota
	KindSleepZ
)

// String returns the effect kind name.
func (k Kind) String() string {
	switch k {
	case KindDust:
		return "dust"
	case KindSleepZ:
		return "sleep_z"
	default:
		return "unknown"
	}
}

// Glyph sets per kind, indexed by the effect's variant.
var (
	dustGlyphs   = []rune{'·', '∙', '°'}
	sleepZGlyphs = []rune{'Z', 'z'}
)

// Effect is a single timed entity. Position is integrated from a velocity
// fixed at spawn time and opacity decays linearly with age.
type Effect struct {
	Kind     Kind
	Pos      core.Vec3
	Vel      core.Vec3
	Age      float64 // Seconds since spawn
	LiveTime float64 // Seconds until the effect dies
	Wobble   float64 // Horizontal sine amplitude applied at render time
	Variant  int     // Cosmetic glyph index
	Opacity  uint8

	alive bool
}

// Spawn creates a live effect at origin with a velocity drawn from the
// configured range.
func Spawn(kind Kind, origin core.Vec3, p config.EffectParams, rng *rand.Rand) Effect {
	liveTime := p.LiveTime
	if liveTime <= 0 {
		liveTime = 1
	}
	variants := p.Variants
	if variants <= 0 {
		variants = 1
	}
	return Effect{
		Kind: kind,
		Pos:  origin,
		Vel: core.Vec3{
			X: between(rng, p.VelMinX, p.VelMaxX),
			Y: between(rng, p.VelMinY, p.VelMaxY),
		},
		LiveTime: liveTime,
		Wobble:   p.Wobble,
		Variant:  rng.Intn(variants),
		Opacity:  255,
		alive:    true,
	}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Tick ages the effect by dt seconds. A dead effect is left untouched.
func (e *Effect) Tick(dt float64) {
	if !e.alive {
		return
	}
	if dt < 0 {
		dt = 0
	}
	e.Age += dt
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	e.Opacity = opacityFor(e.Age, e.LiveTime)
	if e.Age >= e.LiveTime {
		e.alive = false
	}
}

func opacityFor(age, liveTime float64) uint8 {
	v := 255 * (1 - age/liveTime)
	return uint8(math.Round(core.ClampF(v, 0, 255)))
}

// Alive reports whether the effect has time left.
func (e Effect) Alive() bool {
	return e.alive
}

// RenderPos returns the drawn position, including any horizontal wobble.
func (e Effect) RenderPos() core.Vec3 {
	if e.Wobble == 0 {
		return e.Pos
	}
	p := e.Pos
	p.X += e.Wobble * math.Sin(2*math.Pi*e.Age/e.LiveTime*2)
	return p
}

// Glyph returns the rune used to draw the effect.
func (e Effect) Glyph() rune {
	set := dustGlyphs
	if e.Kind == KindSleepZ {
		set = sleepZGlyphs
	}
	return set[e.Variant%len(set)]
}

// Render draws the effect onto the screen if it is still visible.
func (e Effect) Render(s *core.Screen) {
	if !e.alive || !core.Visible(e.Opacity) {
		return
	}
	x, y := core.WorldToCell(e.RenderPos(), s.Width(), s.Height())
	s.SetColored(x, y, e.Glyph(), core.Shade(e.Opacity))
}
