package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hamster/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game events.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// keyActions maps key names to actions. Printable keys keep their rune in
// Event.Char so username entry can still type them.
var keyActions = map[string]core.Action{
	"ctrl+c":    core.ActionQuit,
	"q":         core.ActionQuit,
	" ":         core.ActionAdvance,
	"left":      core.ActionTurnLeft,
	"a":         core.ActionTurnLeft,
	"right":     core.ActionTurnRight,
	"d":         core.ActionTurnRight,
	"up":        core.ActionAscend,
	"w":         core.ActionAscend,
	"down":      core.ActionDescend,
	"s":         core.ActionDescend,
	"enter":     core.ActionConfirm,
	"backspace": core.ActionBackspace,
	"esc":       core.ActionSettings,
	"tab":       core.ActionSettings,
	"m":         core.ActionToggleMusic,
	"n":         core.ActionToggleSFX,
	"r":         core.ActionPlayAgain,
	"]":         core.ActionNextBoard,
	"[":         core.ActionBoardScope,
}

// MapKey translates a key message to an event. Every key produces an event
// so the wheel can count any key press as a step.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Event {
	ev := core.Event{Action: core.ActionNone, Key: true}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		ev.Action = core.ActionChar
		ev.Char = msg.Runes[0]
	}
	if msg.Type == tea.KeySpace {
		ev.Char = ' '
	}

	if a, ok := keyActions[msg.String()]; ok {
		ev.Action = a
	}
	return ev
}

// MapMouse translates a left click on a w x h screen into a click event at
// the world position of the cell's center.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, w, h int) (core.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Event{}, false
	}
	if w <= 0 || h <= 0 {
		return core.Event{}, false
	}
	x, y := core.CellToWorld(msg.X, msg.Y, w, h)
	x += core.WorldW / (2 * w)
	y += core.WorldH / (2 * h)
	return core.ClickEvent(x, y), true
}

// MapKeyToFrame appends the event for a key message to an input frame.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) {
	frame.Push(km.MapKey(msg))
}
