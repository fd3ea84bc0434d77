package achievement

import (
	"math"

	"github.com/vovakirdan/tui-hamster/internal/core"
)

// Banner is one queued achievement and how long it has been on screen.
type Banner struct {
	ID      ID
	Elapsed float64
}

// Display is a FIFO of unlocked achievements shown one at a time.
type Display struct {
	queue    []Banner
	duration float64
}

// NewDisplay creates a queue that shows each banner for duration seconds.
func NewDisplay(duration float64) *Display {
	if duration <= 0 {
		duration = 5
	}
	return &Display{duration: duration}
}

// Enqueue adds an achievement to the back of the queue.
func (d *Display) Enqueue(id ID) {
	d.queue = append(d.queue, Banner{ID: id})
}

// Update ages the visible banner and drops it once its time is up.
func (d *Display) Update(dt float64) {
	if len(d.queue) == 0 || dt <= 0 {
		return
	}
	d.queue[0].Elapsed += dt
	if d.queue[0].Elapsed >= d.duration {
		d.queue[0] = Banner{}
		d.queue = d.queue[1:]
	}
}

// Current returns the visible banner.
func (d *Display) Current() (Banner, bool) {
	if len(d.queue) == 0 {
		return Banner{}, false
	}
	return d.queue[0], true
}

// Len returns the number of queued banners including the visible one.
func (d *Display) Len() int {
	return len(d.queue)
}

// Clear drops every banner.
func (d *Display) Clear() {
	d.queue = nil
}

// Opacity returns the visible banner's opacity.
func (d *Display) Opacity() uint8 {
	b, ok := d.Current()
	if !ok {
		return 0
	}
	return uint8(math.Round(255 * Envelope(b.Elapsed, d.duration)))
}

// Envelope returns the banner intensity in [0, 1]: a sine ease in over the
// first fifth of duration, fully on for the middle three fifths and a sine
// ease out over the last fifth.
func Envelope(elapsed, duration float64) float64 {
	if duration <= 0 || elapsed < 0 || elapsed >= duration {
		return 0
	}
	t := elapsed / duration
	switch {
	case t < 0.2:
		return math.Sin(t / 0.2 * math.Pi / 2)
	case t > 0.8:
		return math.Sin((1 - t) / 0.2 * math.Pi / 2)
	default:
		return 1
	}
}

// Render draws the visible banner as a box centered near the top of the screen.
func (d *Display) Render(s *core.Screen) {
	b, ok := d.Current()
	if !ok {
		return
	}
	opacity := d.Opacity()
	if !core.Visible(opacity) {
		return
	}
	info, _ := Lookup(b.ID)
	title := "Achievement unlocked: " + info.Name
	width := core.Max(len([]rune(title)), len([]rune(info.Description))) + 4
	x := (s.Width() - width) / 2
	color := core.Shade(opacity)

	box := core.NewRect(x, 1, width, 4)
	s.DrawRect(box, ' ')
	s.DrawBox(box, color)
	s.DrawTextColored(x+2, 2, title, color)
	s.DrawTextColored(x+2, 3, info.Description, color)
}
