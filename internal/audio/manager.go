// Package audio provides the game's procedural music and sound effects.
// All sound is synthesized; there are no asset files.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-hamster/internal/config"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Track selects the background music.
type Track int

const (
	TrackNone Track = iota
	TrackMenu
	TrackWheel
)

// Manager owns the speaker and the music and effect streams. Every method is
// safe to call before Init or after Close; they then only track state.
type Manager struct {
	mu     sync.Mutex
	cfg    config.AudioConfig
	mixer  *beep.Mixer
	music  *beep.Ctrl
	track  Track
	steps  uint32
	active bool

	musicMuted bool
	sfxMuted   bool
}

// NewManager creates an uninitialized manager.
func NewManager(cfg config.AudioConfig) *Manager {
	return &Manager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker. It does nothing if audio is disabled.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active || !m.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	var out beep.Streamer = m.mixer
	if m.cfg.Volume != 0 {
		out = &effects.Volume{Streamer: m.mixer, Base: 2, Volume: m.cfg.Volume}
	}
	speaker.Play(out)
	m.active = true

	// Resume whatever was requested before the speaker existed
	if m.track != TrackNone {
		m.startTrackLocked(m.track)
	}
	return nil
}

// Close silences everything and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.mixer.Clear()
	m.music = nil
	m.active = false
}

// Active reports whether the speaker is open.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Track returns the requested background music.
func (m *Manager) Track() Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.track
}

// PlayMenuMusic switches to the menu music.
func (m *Manager) PlayMenuMusic() { m.playTrack(TrackMenu) }

// PlayWheelMusic switches to the race music.
func (m *Manager) PlayWheelMusic() { m.playTrack(TrackWheel) }

func (m *Manager) playTrack(t Track) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.track == t {
		return
	}
	m.track = t
	if m.active {
		m.startTrackLocked(t)
	}
}

// startTrackLocked replaces the music stream. m.mu must be held.
func (m *Manager) startTrackLocked(t Track) {
	var gen beep.Streamer
	switch t {
	case TrackMenu:
		gen = NewMenuGenerator(sampleRate)
	case TrackWheel:
		gen = NewWheelGenerator(sampleRate)
	}

	speaker.Lock()
	defer speaker.Unlock()

	if m.music != nil {
		// The old stream is drained by the mixer once it reports done
		m.music.Streamer = nil
	}
	m.music = nil
	if gen == nil {
		return
	}
	m.music = &beep.Ctrl{Streamer: beep.Loop(-1, gen), Paused: m.musicMuted}
	m.mixer.Add(m.music)
}

// SetMusicMuted pauses or resumes the background music.
func (m *Manager) SetMusicMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.musicMuted = muted
	if m.active && m.music != nil {
		speaker.Lock()
		m.music.Paused = muted
		speaker.Unlock()
	}
}

// SetSFXMuted enables or disables sound effects.
func (m *Manager) SetSFXMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxMuted = muted
}

// MusicMuted reports the music mute flag.
func (m *Manager) MusicMuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicMuted
}

// SFXMuted reports the effects mute flag.
func (m *Manager) SFXMuted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sfxMuted
}

// PlayStep plays a soft footstep.
func (m *Manager) PlayStep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps++
	if !m.active || m.sfxMuted {
		return
	}
	m.addEffectLocked(NewStepGenerator(sampleRate, time.Millisecond*45, m.steps*2654435761))
}

// PlayCountdownTick plays the countdown beep; the final tick is higher.
func (m *Manager) PlayCountdownTick(final bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || m.sfxMuted {
		return
	}
	freq, d := 660.0, time.Millisecond*120
	if final {
		freq, d = 880.0, time.Millisecond*300
	}
	m.addEffectLocked(NewToneGenerator(sampleRate, freq, d))
}

// PlayUnlock plays a short rising chime for an achievement.
func (m *Manager) PlayUnlock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || m.sfxMuted {
		return
	}
	m.addEffectLocked(beep.Seq(
		NewToneGenerator(sampleRate, 523.25, time.Millisecond*90),
		NewToneGenerator(sampleRate, 659.25, time.Millisecond*90),
		NewToneGenerator(sampleRate, 783.99, time.Millisecond*160),
	))
}

func (m *Manager) addEffectLocked(s beep.Streamer) {
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}
