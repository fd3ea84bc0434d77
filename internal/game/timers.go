package game

import (
	"fmt"
	"math"
	"strconv"
)

// Countdown runs the "3, 2, 1, GO!" sequence before a race. Each number is
// shown for one second and fades out over it; GO! follows for one more second.
type Countdown struct {
	seconds int
	elapsed float64
	running bool
}

// Start restarts the countdown from the given number of seconds.
func (c *Countdown) Start(seconds int) {
	c.seconds = max(seconds, 0)
	c.elapsed = 0
	c.running = true
}

// Stop hides the countdown.
func (c *Countdown) Stop() {
	c.running = false
}

// Running reports whether anything is shown.
func (c *Countdown) Running() bool {
	return c.running
}

// Update advances the countdown. ticked is true when the displayed value
// changed and gone is true on the tick GO! appears.
func (c *Countdown) Update(dt float64) (ticked, gone bool) {
	if !c.running || dt <= 0 {
		return false, false
	}
	before := c.Value()
	c.elapsed += dt
	after := c.Value()
	if c.elapsed >= float64(c.seconds+1) {
		c.running = false
	}
	if after != before {
		return true, after == 0
	}
	return false, false
}

// Value returns the number on screen; 0 means GO!.
func (c *Countdown) Value() int {
	return max(c.seconds-int(math.Floor(c.elapsed)), 0)
}

// Text returns the label on screen.
func (c *Countdown) Text() string {
	if v := c.Value(); v > 0 {
		return strconv.Itoa(v)
	}
	return "GO!"
}

// Opacity fades the current label out across its second.
func (c *Countdown) Opacity() uint8 {
	if !c.running {
		return 0
	}
	frac := c.elapsed - math.Floor(c.elapsed)
	return uint8(math.Round(255 * (1 - frac)))
}

// RaceClock counts the race down to zero.
type RaceClock struct {
	remaining float64
	running   bool
}

// Start sets the clock to seconds and runs it.
func (r *RaceClock) Start(seconds int) {
	r.remaining = float64(max(seconds, 0))
	r.running = true
}

// Running reports whether the race is on.
func (r *RaceClock) Running() bool {
	return r.running
}

// Remaining returns seconds left.
func (r *RaceClock) Remaining() float64 {
	return r.remaining
}

// Update advances the clock and reports true on the tick it expires.
func (r *RaceClock) Update(dt float64) bool {
	if !r.running || dt <= 0 {
		return false
	}
	r.remaining -= dt
	if r.remaining <= 0 {
		r.remaining = 0
		r.running = false
		return true
	}
	return false
}

// Text formats the remaining time as MM:SS, rounding partial seconds up.
func (r *RaceClock) Text() string {
	secs := int(math.Ceil(r.remaining))
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
