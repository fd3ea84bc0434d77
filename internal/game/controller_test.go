package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-hamster/internal/achievement"
	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/hamster"
	"github.com/vovakirdan/tui-hamster/internal/save"
)

type recordingAudio struct {
	steps      int
	ticks      []bool
	menu       int
	wheel      int
	unlocks    int
	musicMuted bool
	sfxMuted   bool
}

func (a *recordingAudio) PlayMenuMusic() { a.menu++ }
func (a *recordingAudio) PlayWheelMusic() { a.wheel++ }
func (a *recordingAudio) PlayStep() { a.steps++ }
func (a *recordingAudio) PlayCountdownTick(final bool) { a.ticks = append(a.ticks, final) }
func (a *recordingAudio) PlayUnlock() { a.unlocks++ }
func (a *recordingAudio) SetMusicMuted(m bool) { a.musicMuted = m }
func (a *recordingAudio) SetSFXMuted(m bool) { a.sfxMuted = m }

// flakyStore fails the first failures writes.
type flakyStore struct {
	*save.MemoryStore
	failures int
}

func (f *flakyStore) StoreBlob(key string, data []byte) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk full")
	}
	return f.MemoryStore.StoreBlob(key, data)
}

// unreadableStore fails the first loadFailures reads.
type unreadableStore struct {
	*save.MemoryStore
	loadFailures int
}

func (u *unreadableStore) LoadBlob(key string) ([]byte, error) {
	if u.loadFailures > 0 {
		u.loadFailures--
		return nil, errors.New("i/o error")
	}
	return u.MemoryStore.LoadBlob(key)
}

func newController(t *testing.T, store save.BlobStore) (*Controller, *recordingAudio) {
	t.Helper()
	audio := &recordingAudio{}
	c := New(Deps{
		Config: config.DefaultHamsterConfig(),
		Audio:  audio,
		Saves:  store,
		Seed:   42,
	})
	return c, audio
}

func press(c *Controller, a core.Action, n int) {
	for i := 0; i < n; i++ {
		c.HandleEvent(core.KeyEvent(a))
	}
}

// walkToWheel drives the hamster from the house into the stopped wheel.
func walkToWheel(t *testing.T, c *Controller) {
	t.Helper()
	cfg := config.DefaultHamsterConfig().Actor
	for i := 0; c.State() != hamster.StateWalking; i++ {
		if i > 100 {
			t.Fatalf("hamster never left the house, state %v", c.State())
		}
		press(c, core.ActionAdvance, 1)
	}
	for i := 0; c.Actor().Position().X < cfg.WheelZoneMin; i++ {
		if i > 100 {
			t.Fatal("hamster never reached the wheel")
		}
		press(c, core.ActionAdvance, 1)
	}
	press(c, core.ActionAscend, 2)
	if c.State() != hamster.StateWheelStopped {
		t.Fatalf("state = %v after climbing, expected WheelStopped", c.State())
	}
}

// startRace walks to the wheel and runs the countdown out.
func startRace(t *testing.T, c *Controller) {
	t.Helper()
	walkToWheel(t, c)
	press(c, core.ActionAdvance, 1)
	if c.State() != hamster.StateWheelStarting {
		t.Fatalf("state = %v, expected WheelStarting", c.State())
	}
	for i := 0; i < c.cfg.Race.CountdownSeconds; i++ {
		c.Update(1)
	}
	if c.State() != hamster.StateWheelPlaying {
		t.Fatalf("state = %v after countdown, expected WheelPlaying", c.State())
	}
}

func storeWithHighScore(t *testing.T, score uint32) *save.MemoryStore {
	t.Helper()
	store := save.NewMemoryStore()
	rec := save.Default()
	rec.HighScore = score
	rec.SetName("BOB")
	if err := save.Store(store, DefaultSaveKey, rec); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestRaceBeatsHighScore(t *testing.T) {
	store := storeWithHighScore(t, 3)
	c, audio := newController(t, store)
	startRace(t, c)

	press(c, core.ActionAdvance, 25)
	if c.StepCount() != 25 {
		t.Fatalf("StepCount() = %d, expected 25", c.StepCount())
	}

	c.Update(float64(c.cfg.Race.DurationSeconds))

	if c.State() != hamster.StateNewHighScore {
		t.Fatalf("state = %v, expected NewHighScore", c.State())
	}
	if c.LastLoops() != 5 {
		t.Errorf("LastLoops() = %d, expected 5", c.LastLoops())
	}

	rec, err := save.Load(store, DefaultSaveKey)
	if err != nil {
		t.Fatal(err)
	}
	if rec.HighScore != 5 {
		t.Errorf("persisted high score = %d, expected 5", rec.HighScore)
	}

	st := c.Tracker().Stats()
	if st.TotalRuns != 1 || st.LoopsLastRun != 5 || st.TotalLoops != 5 {
		t.Errorf("tracker stats = %+v", st)
	}
	if audio.wheel != 1 {
		t.Errorf("wheel music started %d times, expected 1", audio.wheel)
	}
	want := []bool{false, false, false, true}
	if len(audio.ticks) != len(want) {
		t.Fatalf("countdown ticks = %v, expected %v", audio.ticks, want)
	}
	for i := range want {
		if audio.ticks[i] != want[i] {
			t.Errorf("countdown tick %d final = %v, expected %v", i, audio.ticks[i], want[i])
		}
	}
}

func TestRaceBelowHighScoreEnds(t *testing.T) {
	store := storeWithHighScore(t, 10)
	c, _ := newController(t, store)
	startRace(t, c)

	press(c, core.ActionAdvance, 12)
	c.Update(float64(c.cfg.Race.DurationSeconds))

	if c.State() != hamster.StateEnded {
		t.Fatalf("state = %v, expected Ended", c.State())
	}
	if c.LastLoops() != 2 {
		t.Errorf("LastLoops() = %d, expected 2", c.LastLoops())
	}
	if c.Record().HighScore != 10 {
		t.Errorf("high score changed to %d", c.Record().HighScore)
	}

	press(c, core.ActionPlayAgain, 1)
	if c.State() != hamster.StateWheelStopped || c.StepCount() != 0 {
		t.Errorf("play again: state = %v, steps = %d", c.State(), c.StepCount())
	}
	if c.Actor().State() != hamster.StateWheelStopped {
		t.Errorf("actor state = %v, expected WheelStopped", c.Actor().State())
	}
}

func TestUsernameEntry(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		back  int
		want  string
	}{
		{"truncates to three", "abcde", 0, "ABC"},
		{"pads single char", "a", 0, "A  "},
		{"backspace", "xyz", 2, "X  "},
		{"action keys are letters", "qmr", 0, "QMR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWithHighScore(t, 0)
			c, _ := newController(t, store)
			startRace(t, c)
			press(c, core.ActionAdvance, 5)
			c.Update(float64(c.cfg.Race.DurationSeconds))
			if c.State() != hamster.StateNewHighScore {
				t.Fatalf("state = %v, expected NewHighScore", c.State())
			}

			for _, r := range tt.typed {
				ev := core.CharEvent(r)
				switch r {
				case 'q':
					ev.Action = core.ActionQuit
				case 'm':
					ev.Action = core.ActionToggleMusic
				case 'r':
					ev.Action = core.ActionPlayAgain
				}
				c.HandleEvent(ev)
			}
			press(c, core.ActionBackspace, tt.back)
			press(c, core.ActionConfirm, 1)

			if c.QuitRequested() {
				t.Fatal("typing q should not quit")
			}
			if c.State() != hamster.StateEnded {
				t.Fatalf("state = %v after confirm, expected Ended", c.State())
			}
			if got := c.Record().Name(); got != tt.want {
				t.Errorf("name = %q, expected %q", got, tt.want)
			}
			rec, _ := save.Load(store, DefaultSaveKey)
			if rec.Name() != tt.want {
				t.Errorf("persisted name = %q, expected %q", rec.Name(), tt.want)
			}
		})
	}
}

type snapshot struct {
	state   hamster.State
	pos     core.Vec3
	frame   hamster.Frame
	forward bool
	steps   int
	stats   achievement.Stats
	record  save.Record
}

func snap(c *Controller) snapshot {
	return snapshot{
		state:   c.State(),
		pos:     c.Actor().Position(),
		frame:   c.Actor().Frame(),
		forward: c.Actor().FacingForward(),
		steps:   c.StepCount(),
		stats:   c.Tracker().Stats(),
		record:  c.Record(),
	}
}

func TestSettingsToggleTwiceRestoresState(t *testing.T) {
	setups := []struct {
		name  string
		setup func(t *testing.T, c *Controller)
	}{
		{"start", func(t *testing.T, c *Controller) {}},
		{"walking", func(t *testing.T, c *Controller) {
			press(c, core.ActionAdvance, 12)
		}},
		{"wheel stopped", walkToWheel},
		{"racing", func(t *testing.T, c *Controller) {
			startRace(t, c)
			press(c, core.ActionAdvance, 7)
		}},
	}

	for _, tt := range setups {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(t, save.NewMemoryStore())
			tt.setup(t, c)
			before := snap(c)

			press(c, core.ActionSettings, 1)
			if !c.Settings() {
				t.Fatal("overlay should be open")
			}
			// Input other than mute toggles is swallowed
			press(c, core.ActionAdvance, 3)
			press(c, core.ActionDescend, 1)
			press(c, core.ActionSettings, 1)

			if c.Settings() {
				t.Fatal("overlay should be closed")
			}
			if after := snap(c); after != before {
				t.Errorf("state changed across overlay:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestSettingsPausesActorAndTimers(t *testing.T) {
	c, _ := newController(t, save.NewMemoryStore())
	startRace(t, c)
	remaining := c.RaceClock().Remaining()

	c.ToggleSettings()
	for i := 0; i < 20; i++ {
		c.Update(1)
	}
	c.ToggleSettings()

	if c.RaceClock().Remaining() != remaining {
		t.Errorf("race clock ran under the overlay: %f -> %f", remaining, c.RaceClock().Remaining())
	}
	if c.Actor().FrameElapsed() != 0 {
		t.Errorf("actor aged under the overlay: %f", c.Actor().FrameElapsed())
	}
}

func TestSettingsClickAndMuteToggles(t *testing.T) {
	store := save.NewMemoryStore()
	c, audio := newController(t, store)

	x, y := settingsRect.Center()
	c.HandleEvent(core.ClickEvent(x, y))
	if !c.Settings() {
		t.Fatal("settings button should open the overlay")
	}

	x, y = musicRect.Center()
	c.HandleEvent(core.ClickEvent(x, y))
	press(c, core.ActionToggleSFX, 1)

	if !audio.musicMuted || !audio.sfxMuted {
		t.Errorf("audio mute = %v/%v, expected both muted", audio.musicMuted, audio.sfxMuted)
	}
	rec, _ := save.Load(store, DefaultSaveKey)
	if !rec.MusicMuted || !rec.SFXMuted {
		t.Errorf("persisted mute = %v/%v", rec.MusicMuted, rec.SFXMuted)
	}

	// Mute flags come back on the next session
	_, audio2 := newController(t, store)
	if !audio2.musicMuted || !audio2.sfxMuted {
		t.Error("saved mute flags should be applied at startup")
	}
}

func TestClickOutsideButtonsIsIgnored(t *testing.T) {
	c, _ := newController(t, save.NewMemoryStore())
	c.HandleEvent(core.ClickEvent(5, 700))
	if c.Settings() || c.State() != hamster.StateStart {
		t.Error("click on empty space should do nothing")
	}
}

func TestPlayAgainButton(t *testing.T) {
	c, _ := newController(t, storeWithHighScore(t, 100))
	startRace(t, c)
	c.Update(float64(c.cfg.Race.DurationSeconds))
	if c.State() != hamster.StateEnded {
		t.Fatalf("state = %v, expected Ended", c.State())
	}

	x, y := playAgainRect.Center()
	c.HandleEvent(core.ClickEvent(x, y))
	if c.State() != hamster.StateWheelStopped {
		t.Errorf("state = %v after clicking play again", c.State())
	}
}

func TestSaveFailureIsRetried(t *testing.T) {
	store := &flakyStore{MemoryStore: save.NewMemoryStore(), failures: 2}
	c, _ := newController(t, store)

	press(c, core.ActionToggleMusic, 1)
	if _, err := store.LoadBlob(DefaultSaveKey); !errors.Is(err, save.ErrNotFound) {
		t.Fatalf("nothing should be stored yet, got err %v", err)
	}

	c.Update(c.cfg.Race.TitleFadeSeconds / 10)

	rec, err := save.Load(store, DefaultSaveKey)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.MusicMuted {
		t.Error("retry should have stored the muted flag")
	}
}

func TestUnreadableSaveIsNotOverwritten(t *testing.T) {
	mem := storeWithHighScore(t, 42)
	store := &unreadableStore{MemoryStore: mem, loadFailures: 2}
	c, audio := newController(t, store)

	if c.Record().HighScore != 0 {
		t.Fatalf("session should start on defaults, got %+v", c.Record())
	}
	press(c, core.ActionToggleMusic, 1)

	rec, err := save.Load(mem, DefaultSaveKey)
	if err != nil {
		t.Fatal(err)
	}
	if rec.HighScore != 42 || rec.Name() != "BOB" || rec.MusicMuted {
		t.Fatalf("unread record was overwritten: %+v", rec)
	}

	// The second read fails too, the third succeeds
	c.Update(0.01)
	c.Update(0.01)

	rec, err = save.Load(mem, DefaultSaveKey)
	if err != nil {
		t.Fatal(err)
	}
	if rec.HighScore != 42 || rec.Name() != "BOB" {
		t.Errorf("stored record = %+v, expected the high score kept", rec)
	}
	if !rec.MusicMuted || !audio.musicMuted {
		t.Errorf("mute toggle made before the read was lost: %+v", rec)
	}
	if c.Record() != rec {
		t.Errorf("Record() = %+v, expected %+v", c.Record(), rec)
	}
}

func TestUnreadableSaveKeepsBetterSessionScore(t *testing.T) {
	mem := storeWithHighScore(t, 3)
	store := &unreadableStore{MemoryStore: mem, loadFailures: 1000}
	c, _ := newController(t, store)

	startRace(t, c)
	press(c, core.ActionAdvance, 25)
	c.Update(float64(c.cfg.Race.DurationSeconds))
	if c.State() != hamster.StateNewHighScore {
		t.Fatalf("state = %v, expected NewHighScore", c.State())
	}
	if rec, _ := save.Load(mem, DefaultSaveKey); rec.HighScore != 3 {
		t.Fatalf("HighScore = %d written before the record was read", rec.HighScore)
	}

	store.loadFailures = 0
	c.Update(0.01)

	rec, err := save.Load(mem, DefaultSaveKey)
	if err != nil {
		t.Fatal(err)
	}
	if rec.HighScore != 5 {
		t.Errorf("HighScore = %d, expected the session's 5 merged in", rec.HighScore)
	}
}

func TestQuit(t *testing.T) {
	c, _ := newController(t, save.NewMemoryStore())
	press(c, core.ActionQuit, 1)
	if !c.QuitRequested() {
		t.Error("quit should be requested")
	}
}

func TestWalkingPlaysSteps(t *testing.T) {
	c, audio := newController(t, save.NewMemoryStore())
	press(c, core.ActionAdvance, 4)
	if audio.steps != 3 {
		t.Errorf("steps = %d, expected 3 (first press only wakes)", audio.steps)
	}
}

func TestRaceStepsSpawnDust(t *testing.T) {
	c, _ := newController(t, save.NewMemoryStore())
	startRace(t, c)
	press(c, core.ActionAdvance, 6)
	if c.dust.Len() != 6 {
		t.Errorf("dust pool = %d, expected 6", c.dust.Len())
	}
	c.Update(c.cfg.Effects.Dust.LiveTime + 0.01)
	if c.dust.Len() != 0 {
		t.Errorf("dust should expire, %d left", c.dust.Len())
	}
}

func TestRenderStates(t *testing.T) {
	s := core.NewScreen(100, 30)
	c, _ := newController(t, storeWithHighScore(t, 100))

	c.Update(c.cfg.Race.TitleFadeSeconds)
	c.Render(s)
	if !strings.Contains(s.String(), "H A M S T E R") {
		t.Error("title should be visible after fading in")
	}

	startRace(t, c)
	c.Render(s)
	if !strings.Contains(s.String(), "01:00") {
		t.Error("race clock should show 01:00")
	}

	c.Update(float64(c.cfg.Race.DurationSeconds))
	c.Render(s)
	out := s.String()
	for _, want := range []string{"You ran 0 loops", "Loading...", "Play again"} {
		if !strings.Contains(out, want) {
			t.Errorf("results screen should contain %q", want)
		}
	}

	c.ToggleSettings()
	c.Render(s)
	if !strings.Contains(s.String(), "Music: on") {
		t.Error("settings overlay should show the music button")
	}
}
