package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBrown
)

// Shade maps an opacity (0..255) onto a grey ramp so fading text and
// particles can be approximated in a terminal.
func Shade(opacity uint8) Color {
	switch {
	case opacity >= 192:
		return ColorBrightWhite
	case opacity >= 128:
		return ColorWhite
	case opacity >= 64:
		return ColorGray
	default:
		return ColorDarkGray
	}
}

// Visible reports whether an opacity is high enough to draw at all.
func Visible(opacity uint8) bool {
	return opacity >= 16
}
