package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/game"
)

// maxTickSeconds caps the simulated time of one tick after a stall.
const maxTickSeconds = 0.25

// RunRecorder keeps the history of finished races.
type RunRecorder interface {
	RecordRun(user string, loops int) (int64, error)
}

// Model is the Bubble Tea model that runs the game controller.
type Model struct {
	ctrl       *game.Controller
	screen     *core.Screen
	runs       RunRecorder
	user       string
	config     core.RuntimeConfig
	keys       *KeyMapper
	render     *ScreenRenderer
	inputFrame core.InputFrame
	lastTick   time.Time
	savedRuns  int // Finished races already written to the history
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the controller. runs may be nil.
func NewModel(ctrl *game.Controller, runs RunRecorder, user string, cfg core.RuntimeConfig) Model {
	return Model{
		ctrl:       ctrl,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		runs:       runs,
		user:       user,
		config:     cfg,
		keys:       NewKeyMapper(),
		render:     NewScreenRenderer(nil),
		inputFrame: core.NewInputFrame(),
	}
}

// WithRenderer returns a copy of m that draws with r.
func (m Model) WithRenderer(r *ScreenRenderer) Model {
	m.render = r
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		m.keys.MapKeyToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.MouseMsg:
		if ev, ok := m.keys.MapMouse(msg, m.screen.Width(), m.screen.Height()); ok {
			m.inputFrame.Push(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// World coordinates are resolution independent, only the buffer changes
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick feeds the frame's events to the controller in arrival order,
// then advances it by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, ev := range m.inputFrame.Events {
		m.ctrl.HandleEvent(ev)
	}
	m.inputFrame.Clear()

	if m.ctrl.QuitRequested() {
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit
	}

	dt := m.config.TickSeconds()
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick).Seconds(), maxTickSeconds)
	}
	m.lastTick = now
	m.ctrl.Update(dt)

	// Record finished races once
	if n := m.ctrl.Runs(); n > m.savedRuns {
		if m.runs != nil {
			//nolint:errcheck // Best-effort history, the game continues regardless
			m.runs.RecordRun(m.user, m.ctrl.LastLoops())
		}
		m.savedRuns = n
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.ctrl.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".hamster", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("hamster_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.ctrl.Render(m.screen)
	return m.render.Render(m.screen)
}

// Quitting reports whether the player left the game.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for the controller.
func Run(ctrl *game.Controller, runs RunRecorder, user string, cfg core.RuntimeConfig) error {
	model := NewModel(ctrl, runs, user, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Buttons are clickable
	)

	_, err := p.Run()
	return err
}
