package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionAdvance)
	f.Push(CharEvent('a'))
	f.Push(ClickEvent(10, 20))

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", f.Len())
	}
	if f.Events[0].Action != ActionAdvance || f.Events[1].Char != 'a' || f.Events[2].X != 10 {
		t.Errorf("events out of order: %+v", f.Events)
	}
	if !f.Has(ActionClick) || f.Has(ActionQuit) {
		t.Error("Has() reported wrong membership")
	}
	if f.Events[2].Key {
		t.Error("click should not count as a key event")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionAscend)
	clone := f.Clone()

	f.Clear()
	if f.Len() != 0 {
		t.Error("Clear() should empty the frame")
	}
	if clone.Len() != 1 || !clone.Has(ActionAscend) {
		t.Error("clone should not be affected by Clear()")
	}
}

func TestActionString(t *testing.T) {
	if ActionAdvance.String() != "Advance" {
		t.Errorf("ActionAdvance.String() = %q", ActionAdvance.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}

func TestTickSeconds(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickSeconds() != 1.0/60.0 {
		t.Errorf("TickSeconds() = %f", cfg.TickSeconds())
	}
	cfg.TickRate = 0
	if cfg.TickSeconds() != 1.0/60.0 {
		t.Error("zero tick rate should fall back to 60")
	}
}
