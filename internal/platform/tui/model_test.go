package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/game"
	"github.com/vovakirdan/tui-hamster/internal/hamster"
)

type memRuns struct {
	loops []int
}

func (r *memRuns) RecordRun(user string, loops int) (int64, error) {
	r.loops = append(r.loops, loops)
	return int64(len(r.loops)), nil
}

func newTestModel(runs RunRecorder) (Model, *game.Controller) {
	cfg := config.DefaultHamsterConfig()
	cfg.Race.CountdownSeconds = 0
	cfg.Race.DurationSeconds = 1
	ctrl := game.New(game.Deps{Config: cfg, Seed: 1})
	rc := core.DefaultConfig()
	return NewModel(ctrl, runs, "tester", rc), ctrl
}

func step(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick(at time.Time) TickMsg {
	return TickMsg(at)
}

func TestModelAppliesKeysOnTick(t *testing.T) {
	m, ctrl := newTestModel(nil)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	m = step(m, space)
	if ctrl.State() != hamster.StateStart {
		t.Fatal("keys should wait for the next tick")
	}
	m = step(m, tick(time.Now()))
	if ctrl.State() != hamster.StateExitBuilding {
		t.Errorf("state = %v, expected ExitBuilding", ctrl.State())
	}
	if m.inputFrame.Len() != 0 {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(nil)
	m = step(m, tea.KeyMsg{Type: tea.KeyCtrlC}, tick(time.Now()))
	if !m.Quitting() {
		t.Error("ctrl+c should quit on the next tick")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelRecordsFinishedRaces(t *testing.T) {
	runs := &memRuns{}
	m, ctrl := newTestModel(runs)
	now := time.Now()

	// Walk into the wheel and start the race
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	for i := 0; ctrl.State() != hamster.StateWalking && i < 100; i++ {
		m = step(m, space, tick(now))
	}
	zone := config.DefaultHamsterConfig().Actor.WheelZoneMin
	for i := 0; ctrl.Actor().Position().X < zone && i < 100; i++ {
		m = step(m, space, tick(now))
	}
	up := tea.KeyMsg{Type: tea.KeyUp}
	m = step(m, up, up, space, tick(now))
	if ctrl.State() != hamster.StateWheelPlaying {
		t.Fatalf("state = %v, expected WheelPlaying", ctrl.State())
	}

	// Ticks are capped, so run enough of them to finish the race
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		m = step(m, tick(now))
	}
	if ctrl.Runs() != 1 {
		t.Fatalf("Runs() = %d, expected 1", ctrl.Runs())
	}
	if len(runs.loops) != 1 {
		t.Errorf("recorded %d runs, expected exactly 1", len(runs.loops))
	}
}

func TestModelViewRendersGame(t *testing.T) {
	m, _ := newTestModel(nil)
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Fatalf("screen = %dx%d after resize", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "wake up") {
		t.Error("start screen should show the wake up hint")
	}
}
