// Package hamster implements the player-controlled actor: a small state
// machine that walks the hamster out of its house, across the floor, up into
// the wheel and through a race.
package hamster

import (
	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/effect"
)

// EmitFunc receives effect spawn requests from the actor.
type EmitFunc func(kind effect.Kind, at core.Vec3)

// eventHandler reacts to one input event and reports whether it produced a
// wheel step.
type eventHandler func(h *Hamster, ev core.Event) bool

// handlers is indexed by State. States missing from the table ignore input.
var handlers = [numStates]eventHandler{
	StateStart:        (*Hamster).handleStart,
	StateExitBuilding: (*Hamster).handleExitBuilding,
	StateWalking:      (*Hamster).handleWalking,
	StateWheelStopped: (*Hamster).handleWheelStopped,
	StateWheelPlaying: (*Hamster).handleWheelPlaying,
}

// Hamster is the actor. It is driven only through HandleEvent, Update and
// SetState.
type Hamster struct {
	cfg config.ActorConfig

	pos           core.Vec3
	facingForward bool
	frame         Frame
	frameElapsed  float64
	state         State
	sleepZTimer   float64

	emit EmitFunc
}

// New creates a hamster at its start position inside the house.
func New(cfg config.ActorConfig) *Hamster {
	h := &Hamster{cfg: cfg}
	h.Reset()
	return h
}

// SetEmitter installs the effect sink. A nil emitter drops requests.
func (h *Hamster) SetEmitter(fn EmitFunc) {
	h.emit = fn
}

// Reset puts the hamster back in the house.
func (h *Hamster) Reset() {
	h.pos = core.V(h.cfg.StartX, h.cfg.StartY)
	h.facingForward = true
	h.state = StateStart
	h.frame = FrameStanding
	h.frameElapsed = 0
	h.sleepZTimer = 0
}

// Position returns the hamster's feet in world coordinates.
func (h *Hamster) Position() core.Vec3 { return h.pos }

// FacingForward reports whether the hamster faces right.
func (h *Hamster) FacingForward() bool { return h.facingForward }

// Frame returns the current sprite pose.
func (h *Hamster) Frame() Frame { return h.frame }

// FrameElapsed returns seconds spent in the current frame and state.
func (h *Hamster) FrameElapsed() float64 { return h.frameElapsed }

// State returns the current state.
func (h *Hamster) State() State { return h.state }

// Asleep reports whether the hamster is sleeping.
func (h *Hamster) Asleep() bool { return h.frame == FrameSleeping }

// SetState forces a state change. The controller uses this for transitions
// it owns: starting the race, ending it and playing again.
func (h *Hamster) SetState(s State) {
	if s < 0 || s >= numStates {
		return
	}
	switch s {
	case StateWheelStopped:
		h.pos = core.V(h.cfg.WheelBaseX, h.cfg.WheelBaseY)
		h.facingForward = false
		h.frame = FrameStanding
	case StateWheelPlaying:
		if h.frame == FrameSleeping {
			h.frame = FrameStanding
		}
	}
	h.state = s
	h.frameElapsed = 0
}

// HandleEvent routes one input event to the current state's handler.
// It returns true when the event turned the wheel by one step.
func (h *Hamster) HandleEvent(ev core.Event) bool {
	fn := handlers[h.state]
	if fn == nil {
		return false
	}
	return fn(h, ev)
}

// Update advances timers by dt seconds: stride and climb poses relax to
// standing, a long idle stand falls asleep and a sleeping hamster emits Zs.
func (h *Hamster) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	h.frameElapsed += dt

	switch {
	case (h.frame.stepping() || h.frame == FrameClimbing) && h.frameElapsed >= h.cfg.StepIdleSeconds:
		h.setFrame(FrameStanding)
	case h.frame == FrameStanding && h.state != StateWheelPlaying && h.frameElapsed >= h.cfg.SleepIdleSeconds:
		h.setFrame(FrameSleeping)
		h.sleepZTimer = 0
		h.emitAt(effect.KindSleepZ, h.headPos())
	case h.frame == FrameSleeping:
		h.sleepZTimer += dt
		if h.cfg.SleepZInterval > 0 && h.sleepZTimer >= h.cfg.SleepZInterval {
			h.sleepZTimer -= h.cfg.SleepZInterval
			h.emitAt(effect.KindSleepZ, h.headPos())
		}
	}
}

func (h *Hamster) setFrame(f Frame) {
	if h.frame == f {
		return
	}
	h.frame = f
	h.frameElapsed = 0
}

func (h *Hamster) setState(s State) {
	h.state = s
	h.frameElapsed = 0
}

func (h *Hamster) emitAt(kind effect.Kind, at core.Vec3) {
	if h.emit != nil {
		h.emit(kind, at)
	}
}

func (h *Hamster) headPos() core.Vec3 {
	dx := 20.0
	if !h.facingForward {
		dx = -dx
	}
	return core.V(h.pos.X+dx, h.pos.Y-60)
}

// wake turns a sleeping hamster back to standing. It reports whether the
// hamster was asleep.
func (h *Hamster) wake() bool {
	if h.frame != FrameSleeping {
		return false
	}
	h.setFrame(FrameStanding)
	return true
}

// turn applies a turn input. It is shared by every state that can steer.
func (h *Hamster) turn(ev core.Event) bool {
	switch ev.Action {
	case core.ActionTurnLeft:
		h.facingForward = false
	case core.ActionTurnRight:
		h.facingForward = true
	default:
		return false
	}
	h.wake()
	return true
}

func (h *Hamster) handleStart(ev core.Event) bool {
	if ev.Action == core.ActionAdvance {
		h.wake()
		h.setState(StateExitBuilding)
	}
	return false
}

func (h *Hamster) handleExitBuilding(ev core.Event) bool {
	if ev.Action != core.ActionAdvance {
		return false
	}
	h.setFrame(h.frame.nextStep())
	h.pos.X += h.cfg.ExitStep

	// Walk down the ramp toward the floor without overshooting it
	dy := h.cfg.ExitStep / 8
	switch {
	case h.pos.Y < h.cfg.GroundY:
		h.pos.Y = min(h.pos.Y+dy, h.cfg.GroundY)
	case h.pos.Y > h.cfg.GroundY:
		h.pos.Y = max(h.pos.Y-dy, h.cfg.GroundY)
	}

	if h.pos.X >= h.cfg.ExitThresholdX {
		h.pos.X = core.ClampF(h.pos.X, h.cfg.LeftWall, h.cfg.RightWall)
		h.setState(StateWalking)
	}
	return false
}

func (h *Hamster) handleWalking(ev core.Event) bool {
	if h.turn(ev) {
		return false
	}

	switch ev.Action {
	case core.ActionAdvance:
		if h.frame == FrameClimbing {
			return false
		}
		h.setFrame(h.frame.nextStep())
		step := h.cfg.WalkStep
		if !h.facingForward {
			step = -step
		}
		h.pos.X = core.ClampF(h.pos.X+step, h.cfg.LeftWall, h.cfg.RightWall)

	case core.ActionAscend:
		if h.frame == FrameClimbing {
			h.pos = core.V(h.cfg.WheelBaseX, h.cfg.WheelBaseY)
			h.facingForward = false
			h.setFrame(FrameStanding)
			h.setState(StateWheelStopped)
			return false
		}
		if h.pos.X >= h.cfg.WheelZoneMin && h.pos.X <= h.cfg.WheelZoneMax {
			h.pos = core.V(h.cfg.ClimbEntryX, h.cfg.ClimbY)
			h.setFrame(FrameClimbing)
		}

	case core.ActionDescend:
		if h.frame == FrameClimbing {
			h.pos = core.V(h.cfg.ClimbExitX, h.cfg.GroundY)
			h.setFrame(FrameStanding)
		}
	}
	return false
}

func (h *Hamster) handleWheelStopped(ev core.Event) bool {
	if h.turn(ev) {
		return false
	}

	switch ev.Action {
	case core.ActionDescend:
		h.pos = core.V(h.cfg.ClimbExitX, h.cfg.GroundY)
		h.facingForward = true
		h.setFrame(FrameStanding)
		h.setState(StateWalking)
	case core.ActionAdvance:
		if h.wake() {
			return false
		}
		h.setState(StateWheelStarting)
	}
	return false
}

func (h *Hamster) handleWheelPlaying(ev core.Event) bool {
	if !ev.Key {
		return false
	}
	h.setFrame(h.frame.nextStep())
	h.emitAt(effect.KindDust, core.V(h.pos.X+24, h.pos.Y))
	return true
}
