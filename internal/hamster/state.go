package hamster

// State is the actor's place in the session.
type State int

const (
	StateStart State = iota
	StateExitBuilding
	StateWalking
	StateWheelStopped
	StateWheelStarting
	StateWheelPlaying
	StateEnded
	StateNewHighScore
	numStates
)

var stateNames = [...]string{
	StateStart:         "Start",
	StateExitBuilding:  "ExitBuilding",
	StateWalking:       "Walking",
	StateWheelStopped:  "WheelStopped",
	StateWheelStarting: "WheelStarting",
	StateWheelPlaying:  "WheelPlaying",
	StateEnded:         "Ended",
	StateNewHighScore:  "NewHighScore",
}

// String returns the state name.
func (s State) String() string {
	if s < 0 || s >= numStates {
		return "Unknown"
	}
	return stateNames[s]
}

// Frame is the sprite pose currently shown.
type Frame int

const (
	FrameStanding Frame = iota
	FrameRightStep
	FrameLeftStep
	FrameSleeping
	FrameClimbing
)

// String returns the frame name.
func (f Frame) String() string {
	switch f {
	case FrameStanding:
		return "Standing"
	case FrameRightStep:
		return "RightStep"
	case FrameLeftStep:
		return "LeftStep"
	case FrameSleeping:
		return "Sleeping"
	case FrameClimbing:
		return "Climbing"
	default:
		return "Unknown"
	}
}

// stepping reports whether the frame is one half of a stride.
func (f Frame) stepping() bool {
	return f == FrameRightStep || f == FrameLeftStep
}

// nextStep returns the other half of the stride. Any non-stepping frame
// starts on the right foot.
func (f Frame) nextStep() Frame {
	if f == FrameRightStep {
		return FrameLeftStep
	}
	return FrameRightStep
}
