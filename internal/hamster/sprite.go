package hamster

import "github.com/vovakirdan/tui-hamster/internal/core"

// Sprites are drawn bottom-up from the hamster's feet and face right.
// Left-facing sprites are mirrored at render time.
var sprites = map[Frame][]string{
	FrameStanding:  {" (\\_/) ", " (o.o)>", "  \" \" "},
	FrameRightStep: {" (\\_/) ", " (o.o)>", "  /  \\ "},
	FrameLeftStep:  {" (\\_/) ", " (o.o)>", "  \\  / "},
	FrameSleeping:  {" (\\_/) ", " (-.-) ", " (____)"},
	FrameClimbing:  {" (\\_/) ", " (o.o)|", "  \" \"|"},
}

var mirrorRunes = map[rune]rune{
	'(': ')', ')': '(', '/': '\\', '\\': '/', '>': '<', '<': '>',
}

func mirror(line string) string {
	rs := []rune(line)
	out := make([]rune, len(rs))
	for i, r := range rs {
		if m, ok := mirrorRunes[r]; ok {
			r = m
		}
		out[len(rs)-1-i] = r
	}
	return string(out)
}

// Sprite returns the current sprite lines, top first.
func (h *Hamster) Sprite() []string {
	lines := sprites[h.frame]
	if h.facingForward {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = mirror(l)
	}
	return out
}

// Render draws the hamster with its feet on the cell under its position.
func (h *Hamster) Render(s *core.Screen) {
	lines := h.Sprite()
	x, y := core.WorldToCell(h.pos, s.Width(), s.Height())
	color := core.ColorYellow
	if h.frame == FrameSleeping {
		color = core.ColorGray
	}
	for i, line := range lines {
		row := y - (len(lines) - 1 - i)
		width := len([]rune(line))
		s.DrawTextColored(x-width/2, row, line, color)
	}
}
