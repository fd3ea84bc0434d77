package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/hamster"
)

const (
	wheelRadius    = 150.0
	wheelStepAngle = math.Pi / 10
	wheelSpokes    = 4
)

// House outline in world coordinates.
var houseRect = core.NewRect(96, 300, 320, 174)

// Render draws the whole scene: the room, the wheel, effects, the hamster,
// state-specific HUD, banners and the settings overlay.
func (c *Controller) Render(s *core.Screen) {
	s.Clear()

	c.renderRoom(s)
	c.renderWheel(s)
	c.sleepZ.Render(s)
	c.dust.Render(s)
	c.actor.Render(s)

	c.renderHUD(s)
	c.renderButtons(s)
	c.eval.Display().Render(s)

	if c.settings {
		c.renderSettings(s)
	}
}

func (c *Controller) renderRoom(s *core.Screen) {
	_, floor := core.WorldToCell(core.V(0, c.cfg.Actor.GroundY), s.Width(), s.Height())
	s.DrawHLine(0, floor+1, s.Width(), '═', core.ColorBrown)

	house := core.RectToCells(houseRect, s.Width(), s.Height())
	house.H = floor + 1 - house.Y
	s.DrawBox(house, core.ColorBrown)
	if house.W > 2 {
		roof := "/" + strings.Repeat("▔", house.W-2) + "\\"
		s.DrawTextColored(house.X, house.Y-1, roof, core.ColorRed)
	}
	// Doorway on the side facing the wheel
	for y := floor - 1; y <= floor; y++ {
		s.Set(house.Right()-1, y, ' ')
	}
}

func (c *Controller) renderWheel(s *core.Screen) {
	center := core.V(c.cfg.Actor.WheelBaseX, c.cfg.Actor.WheelBaseY-wheelRadius+10)
	w, h := s.Width(), s.Height()

	// Stand
	for _, dx := range []float64{-wheelRadius * 0.6, wheelRadius * 0.6} {
		drawLine(s, center, core.V(center.X+dx, c.cfg.Actor.GroundY), '.', core.ColorDarkGray)
	}

	// Rim
	for i := 0; i < 96; i++ {
		a := 2 * math.Pi * float64(i) / 96
		p := core.V(center.X+wheelRadius*math.Cos(a), center.Y+wheelRadius*math.Sin(a))
		x, y := core.WorldToCell(p, w, h)
		s.SetColored(x, y, 'o', core.ColorGray)
	}

	// Spokes turn with every race step
	for k := 0; k < wheelSpokes; k++ {
		a := c.wheelAngle + float64(k)*math.Pi/wheelSpokes
		dx, dy := wheelRadius*math.Cos(a), wheelRadius*math.Sin(a)
		drawLine(s, core.V(center.X-dx, center.Y-dy), core.V(center.X+dx, center.Y+dy), '·', core.ColorDarkGray)
	}
}

// drawLine plots a world-space segment onto the cell grid.
func drawLine(s *core.Screen, a, b core.Vec3, r rune, col core.Color) {
	w, h := s.Width(), s.Height()
	x0, y0 := core.WorldToCell(a, w, h)
	x1, y1 := core.WorldToCell(b, w, h)
	n := core.Max(core.Abs(x1-x0), core.Abs(y1-y0))
	if n == 0 {
		s.SetColored(x0, y0, r, col)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		s.SetColored(x, y, r, col)
	}
}

func (c *Controller) renderHUD(s *core.Screen) {
	hi := fmt.Sprintf(" HI %d %s ", c.record.HighScore, strings.TrimSpace(c.record.Name()))
	s.DrawTextColored(1, 0, hi, core.ColorBrightYellow)

	bottom := s.Height() - 1
	switch c.state {
	case hamster.StateStart:
		if op := c.TitleOpacity(); core.Visible(op) {
			s.DrawTextCentered(2, "H A M S T E R", core.Shade(op))
		}
		s.DrawTextCentered(bottom, "space: wake up and walk out", core.ColorGray)

	case hamster.StateExitBuilding, hamster.StateWalking:
		s.DrawTextCentered(bottom, "space: walk  ←/→: turn  ↑: climb the wheel  ↓: climb down", core.ColorGray)

	case hamster.StateWheelStopped:
		s.DrawTextCentered(bottom, "space: start running  ↓: leave the wheel", core.ColorGray)

	case hamster.StateWheelStarting:
		c.renderCountdown(s)

	case hamster.StateWheelPlaying:
		s.DrawTextCentered(1, c.race.Text(), core.ColorBrightWhite)
		steps := fmt.Sprintf("loops %d", c.stepCount/c.cfg.Race.StepsPerLoop)
		s.DrawTextCentered(2, steps, core.ColorWhite)
		c.renderCountdown(s)
		s.DrawTextCentered(bottom, "press any key to run", core.ColorGray)

	case hamster.StateNewHighScore:
		s.DrawTextCentered(4, fmt.Sprintf("New high score! %d loops", c.lastLoops), core.ColorBrightYellow)
		entry := padName(c.Username())
		if len(c.username) < 3 {
			runes := []rune(entry)
			runes[len(c.username)] = '_'
			entry = string(runes)
		}
		s.DrawTextCentered(6, "Enter your name: "+entry, core.ColorBrightWhite)
		s.DrawTextCentered(bottom, "type 3 letters  backspace: erase  enter: confirm", core.ColorGray)

	case hamster.StateEnded:
		s.DrawTextCentered(2, fmt.Sprintf("You ran %d loops", c.lastLoops), core.ColorBrightWhite)
		c.renderLeaderboard(s)
	}
}

func (c *Controller) renderCountdown(s *core.Screen) {
	if !c.countdown.Running() {
		return
	}
	op := c.countdown.Opacity()
	if !core.Visible(op) {
		return
	}
	s.DrawTextCentered(s.Height()/3, c.countdown.Text(), core.Shade(op))
}

func (c *Controller) renderLeaderboard(s *core.Screen) {
	view := c.Board()
	panel := core.RectToCells(core.NewRect(320, 120, 640, 420), s.Width(), s.Height())
	s.DrawRect(panel, ' ')
	s.DrawBox(panel, core.ColorCyan)

	title := fmt.Sprintf(" %s (%s) ", view.Name, view.Scope)
	s.DrawTextColored(panel.X+2, panel.Y, title, core.ColorBrightCyan)

	msg := ""
	switch {
	case view.Failed:
		msg = "Network failure"
	case !view.Found, view.Loading:
		msg = "Loading..."
	case len(view.Entries) == 0:
		msg = "No scores yet"
	}
	if msg != "" {
		s.DrawTextColored(panel.X+2, panel.Y+2, msg, core.ColorGray)
		return
	}

	rows := panel.H - 3
	for i, e := range view.Entries {
		if i >= rows {
			break
		}
		line := fmt.Sprintf("%3d. %-16s %6d", e.Rank, e.User, e.Score)
		s.DrawTextColored(panel.X+2, panel.Y+2+i, line, core.ColorWhite)
	}
}

func (c *Controller) renderButtons(s *core.Screen) {
	for _, b := range c.Buttons() {
		if b.ID == ButtonMusic || b.ID == ButtonSFX {
			continue // drawn on the overlay
		}
		drawButton(s, b)
	}
}

func drawButton(s *core.Screen, b Button) {
	r := core.RectToCells(b.Rect, s.Width(), s.Height())
	label := "[ " + b.Label + " ]"
	x := r.X + (r.W-len([]rune(label)))/2
	s.DrawTextColored(x, r.Y+r.H/2, label, core.ColorBrightBlue)
}

func (c *Controller) renderSettings(s *core.Screen) {
	panel := core.RectToCells(core.NewRect(400, 210, 480, 240), s.Width(), s.Height())
	s.DrawRect(panel, ' ')
	s.DrawBox(panel, core.ColorBrightWhite)
	s.DrawTextColored(panel.X+2, panel.Y, " Settings ", core.ColorBrightWhite)
	for _, b := range c.Buttons() {
		if b.ID == ButtonMusic || b.ID == ButtonSFX {
			drawButton(s, b)
		}
	}
	s.DrawTextColored(panel.X+2, panel.Bottom()-1, " m/n: toggle  esc: close ", core.ColorGray)
}
