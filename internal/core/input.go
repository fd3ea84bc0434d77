package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionAdvance            // Space - step forward / start the wheel
	ActionTurnLeft           // Left, A
	ActionTurnRight          // Right, D
	ActionAscend             // Up, W - climb into the wheel
	ActionDescend            // Down, S - climb back down
	ActionConfirm            // Enter - confirm username entry
	ActionBackspace          // Backspace - erase a username character
	ActionChar               // Printable character (username entry)
	ActionSettings           // Esc, Tab - toggle settings overlay
	ActionToggleMusic        // M
	ActionToggleSFX          // N
	ActionPlayAgain          // R
	ActionNextBoard          // ] - next leaderboard
	ActionBoardScope         // [ - global / around user
	ActionClick              // Mouse click at (X, Y) world coordinates
	ActionQuit               // Ctrl+C, Q
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAdvance:
		return "Advance"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionAscend:
		return "Ascend"
	case ActionDescend:
		return "Descend"
	case ActionConfirm:
		return "Confirm"
	case ActionBackspace:
		return "Backspace"
	case ActionChar:
		return "Char"
	case ActionSettings:
		return "Settings"
	case ActionToggleMusic:
		return "ToggleMusic"
	case ActionToggleSFX:
		return "ToggleSFX"
	case ActionPlayAgain:
		return "PlayAgain"
	case ActionNextBoard:
		return "NextBoard"
	case ActionBoardScope:
		return "BoardScope"
	case ActionClick:
		return "Click"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is a single discrete input delivered to the simulation.
// Key events set Key so "any key" handlers can react regardless of Action;
// Char carries the typed rune for ActionChar and for printable keys that
// also map to another action.
type Event struct {
	Action Action
	Char   rune
	X, Y   int
	Key    bool
}

// KeyEvent creates a key event for an action.
func KeyEvent(a Action) Event {
	return Event{Action: a, Key: true}
}

// CharEvent creates a key event for a typed character.
func CharEvent(r rune) Event {
	return Event{Action: ActionChar, Char: r, Key: true}
}

// ClickEvent creates a mouse click at world coordinates.
func ClickEvent(x, y int) Event {
	return Event{Action: ActionClick, X: x, Y: y}
}

// InputFrame holds the events collected between two simulation ticks,
// in arrival order.
type InputFrame struct {
	Events []Event
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(e Event) {
	f.Events = append(f.Events, e)
}

// Set appends a key event for the action.
func (f *InputFrame) Set(a Action) {
	f.Push(KeyEvent(a))
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, e := range f.Events {
		if e.Action == a {
			return true
		}
	}
	return false
}

// Len returns the number of queued events.
func (f InputFrame) Len() int {
	return len(f.Events)
}

// Clear resets the frame for the next tick, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Events: make([]Event, len(f.Events))}
	copy(clone.Events, f.Events)
	return clone
}
