// Package game implements the top-level game controller. It owns the
// hamster, the effect pools, the achievement banners and the UI timers,
// and drives the session from the title screen through races and high
// score entry.
package game

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hamster/internal/achievement"
	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/effect"
	"github.com/vovakirdan/tui-hamster/internal/hamster"
	"github.com/vovakirdan/tui-hamster/internal/save"
	"github.com/vovakirdan/tui-hamster/internal/stats"
)

// Audio is the sound output used by the controller.
type Audio interface {
	PlayMenuMusic()
	PlayWheelMusic()
	PlayStep()
	PlayCountdownTick(final bool)
	PlayUnlock()
	SetMusicMuted(muted bool)
	SetSFXMuted(muted bool)
}

type silentAudio struct{}

func (silentAudio) PlayMenuMusic() {}
func (silentAudio) PlayWheelMusic() {}
func (silentAudio) PlayStep() {}
func (silentAudio) PlayCountdownTick(bool) {}
func (silentAudio) PlayUnlock() {}
func (silentAudio) SetMusicMuted(bool) {}
func (silentAudio) SetSFXMuted(bool) {}

// DefaultSaveKey is the blob key of the local save record.
const DefaultSaveKey = "hamster.sav"

// Deps are the collaborators of a Controller. Zero values are replaced by
// silent or in-memory stand-ins.
type Deps struct {
	Config  config.HamsterConfig
	Audio   Audio
	Stats   stats.Service
	Saves   save.BlobStore
	SaveKey string
	Logger  *log.Logger
	Seed    int64 // 0 picks a time-based seed
}

type eventHandler func(c *Controller, ev core.Event)

// stateHandlers routes input per controller state. WheelStarting ignores input.
var stateHandlers = map[hamster.State]eventHandler{
	hamster.StateStart:        (*Controller).handleActor,
	hamster.StateExitBuilding: (*Controller).handleActor,
	hamster.StateWalking:      (*Controller).handleActor,
	hamster.StateWheelStopped: (*Controller).handleActor,
	hamster.StateWheelPlaying: (*Controller).handleRace,
	hamster.StateEnded:        (*Controller).handleEnded,
	hamster.StateNewHighScore: (*Controller).handleUsername,
}

// Controller is the top-level game state machine. It is not safe for
// concurrent use; the frame loop calls HandleEvent, Update and Render from
// one goroutine.
type Controller struct {
	cfg   config.HamsterConfig
	log   *log.Logger
	audio Audio
	rng   *rand.Rand

	saves        save.BlobStore
	saveKey      string
	record       save.Record
	saveDirty    bool
	loaded       bool // The stored record was read, so writing is allowed
	loadFailed   bool
	musicToggled bool
	sfxToggled   bool

	eval    *achievement.Evaluator
	tracker *stats.Tracker

	actor  *hamster.Hamster
	dust   *effect.Pool
	sleepZ *effect.Pool

	state         hamster.State
	previousState hamster.State
	settings      bool

	stepCount  int
	lastLoops  int
	runs       int
	countdown  Countdown
	race       RaceClock
	titleFade  float64
	username   []rune
	wheelAngle float64

	ticks      int
	boardIdx   int
	boardScope stats.Scope
	quit       bool
}

// New creates a controller, loads the save record and applies its mute flags.
func New(deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Audio == nil {
		deps.Audio = silentAudio{}
	}
	if deps.Saves == nil {
		deps.Saves = save.NewMemoryStore()
	}
	if deps.SaveKey == "" {
		deps.SaveKey = DefaultSaveKey
	}
	seed := deps.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Controller{
		cfg:     deps.Config,
		log:     deps.Logger,
		audio:   deps.Audio,
		rng:     rand.New(rand.NewSource(seed)),
		saves:   deps.Saves,
		saveKey: deps.SaveKey,
		eval:    achievement.NewEvaluator(deps.Config.Achievements),
		actor:   hamster.New(deps.Config.Actor),
		dust:    effect.NewPool(),
		sleepZ:  effect.NewPool(),
	}
	c.tracker = stats.NewTracker(deps.Stats, deps.Config.Stats.AppID, c.eval, c.log)
	c.actor.SetEmitter(c.spawnEffect)

	c.record = save.Default()
	c.loadRecord()

	c.audio.SetMusicMuted(c.record.MusicMuted)
	c.audio.SetSFXMuted(c.record.SFXMuted)
	c.audio.PlayMenuMusic()
	c.state = c.actor.State()
	return c
}

func (c *Controller) spawnEffect(kind effect.Kind, at core.Vec3) {
	switch kind {
	case effect.KindDust:
		c.dust.Add(effect.Spawn(kind, at, c.cfg.Effects.Dust, c.rng))
	case effect.KindSleepZ:
		c.sleepZ.Add(effect.Spawn(kind, at, c.cfg.Effects.SleepZ, c.rng))
	}
}

// State returns the session state beneath any overlay.
func (c *Controller) State() hamster.State { return c.state }

// Settings reports whether the settings overlay is open.
func (c *Controller) Settings() bool { return c.settings }

// StepCount returns the wheel steps of the current race.
func (c *Controller) StepCount() int { return c.stepCount }

// Runs returns the number of races finished this session.
func (c *Controller) Runs() int { return c.runs }

// LastLoops returns the loops of the most recent race.
func (c *Controller) LastLoops() int { return c.lastLoops }

// Record returns the current save record.
func (c *Controller) Record() save.Record { return c.record }

// Username returns the name typed so far during high score entry.
func (c *Controller) Username() string { return string(c.username) }

// Actor returns the hamster.
func (c *Controller) Actor() *hamster.Hamster { return c.actor }

// Tracker returns the session statistics tracker.
func (c *Controller) Tracker() *stats.Tracker { return c.tracker }

// Countdown returns the pre-race countdown.
func (c *Controller) Countdown() *Countdown { return &c.countdown }

// RaceClock returns the race clock.
func (c *Controller) RaceClock() *RaceClock { return &c.race }

// Board returns the leaderboard shown in the Ended state.
func (c *Controller) Board() stats.BoardView {
	return c.tracker.Board(stats.Boards[c.boardIdx])
}

// QuitRequested reports whether the player asked to leave.
func (c *Controller) QuitRequested() bool { return c.quit }

// HandleEvent dispatches one input event.
func (c *Controller) HandleEvent(ev core.Event) {
	if ev.Action == core.ActionQuit && !c.typingName(ev) {
		c.quit = true
		return
	}

	if ev.Action == core.ActionClick {
		if b, ok := c.buttonAt(ev.X, ev.Y); ok {
			c.press(b.ID)
		}
		return
	}

	if ev.Action == core.ActionSettings {
		c.ToggleSettings()
		return
	}

	if !c.typingName(ev) {
		switch ev.Action {
		case core.ActionToggleMusic:
			c.toggleMusic()
			return
		case core.ActionToggleSFX:
			c.toggleSFX()
			return
		}
	}

	if c.settings {
		return
	}

	if fn := stateHandlers[c.state]; fn != nil {
		fn(c, ev)
	}
}

// typingName reports whether a printable key should go to username entry
// instead of its usual action.
func (c *Controller) typingName(ev core.Event) bool {
	return c.state == hamster.StateNewHighScore && !c.settings && nameRune(ev.Char)
}

// ToggleSettings opens or closes the settings overlay. The session state
// underneath is saved on open and restored on close.
func (c *Controller) ToggleSettings() {
	if !c.settings {
		c.previousState = c.state
		c.settings = true
		return
	}
	c.settings = false
	c.state = c.previousState
}

func (c *Controller) toggleMusic() {
	c.musicToggled = !c.musicToggled
	c.record.MusicMuted = !c.record.MusicMuted
	c.audio.SetMusicMuted(c.record.MusicMuted)
	c.persist()
}

func (c *Controller) toggleSFX() {
	c.sfxToggled = !c.sfxToggled
	c.record.SFXMuted = !c.record.SFXMuted
	c.audio.SetSFXMuted(c.record.SFXMuted)
	c.persist()
}

// handleActor forwards input to the hamster while it walks to the wheel.
func (c *Controller) handleActor(ev core.Event) {
	before := c.actor.Frame()
	beforePos := c.actor.Position()
	c.actor.HandleEvent(ev)
	if c.actor.Position() != beforePos && c.actor.Frame() != before {
		c.audio.PlayStep()
	}
	c.syncActorState()
}

func (c *Controller) handleRace(ev core.Event) {
	if !c.actor.HandleEvent(ev) {
		return
	}
	c.stepCount++
	c.wheelAngle += wheelStepAngle
	c.audio.PlayStep()
}

func (c *Controller) handleEnded(ev core.Event) {
	switch ev.Action {
	case core.ActionPlayAgain:
		c.playAgain()
	case core.ActionNextBoard:
		c.nextBoard()
	case core.ActionBoardScope:
		c.toggleScope()
	}
}

func (c *Controller) handleUsername(ev core.Event) {
	switch {
	case ev.Action == core.ActionConfirm:
		c.record.SetName(string(c.username))
		c.persist()
		c.enterEnded()
	case ev.Action == core.ActionBackspace:
		if n := len(c.username); n > 0 {
			c.username = c.username[:n-1]
		}
	case nameRune(ev.Char):
		if len(c.username) < save.NameLength {
			c.username = append(c.username, unicode.ToUpper(ev.Char))
		}
	}
}

// nameRune reports whether r can be stored in a save record name.
func nameRune(r rune) bool {
	return r > ' ' && r < unicode.MaxASCII && unicode.IsPrint(r)
}

// syncActorState follows transitions the hamster made on its own.
func (c *Controller) syncActorState() {
	s := c.actor.State()
	if s == c.state {
		return
	}
	c.state = s
	if s == hamster.StateWheelStarting {
		c.startCountdown()
	}
}

func (c *Controller) startCountdown() {
	c.stepCount = 0
	c.countdown.Start(c.cfg.Race.CountdownSeconds)
	if c.countdown.Value() == 0 {
		c.startRace()
		return
	}
	c.audio.PlayCountdownTick(false)
}

func (c *Controller) startRace() {
	c.actor.SetState(hamster.StateWheelPlaying)
	c.state = hamster.StateWheelPlaying
	c.race.Start(c.cfg.Race.DurationSeconds)
	c.audio.PlayWheelMusic()
}

// endRace scores the race and moves to high score entry or the results.
func (c *Controller) endRace() {
	loops := c.stepCount / c.cfg.Race.StepsPerLoop
	c.lastLoops = loops
	c.runs++
	c.tracker.RecordRun(loops)
	c.audio.PlayMenuMusic()
	c.log.Info("race finished", "steps", c.stepCount, "loops", loops, "high_score", c.record.HighScore)

	if loops > int(c.record.HighScore) {
		c.record.HighScore = uint32(loops)
		c.persist()
		c.username = c.username[:0]
		c.actor.SetState(hamster.StateNewHighScore)
		c.state = hamster.StateNewHighScore
		return
	}
	c.enterEnded()
}

func (c *Controller) enterEnded() {
	c.actor.SetState(hamster.StateEnded)
	c.state = hamster.StateEnded
	c.tracker.Download(stats.Boards[c.boardIdx], c.boardScope)
}

func (c *Controller) playAgain() {
	if c.state != hamster.StateEnded {
		return
	}
	c.stepCount = 0
	c.countdown.Stop()
	c.actor.SetState(hamster.StateWheelStopped)
	c.state = hamster.StateWheelStopped
}

func (c *Controller) nextBoard() {
	c.boardIdx = (c.boardIdx + 1) % len(stats.Boards)
	c.tracker.Download(stats.Boards[c.boardIdx], c.boardScope)
}

func (c *Controller) toggleScope() {
	if c.boardScope == stats.ScopeGlobal {
		c.boardScope = stats.ScopeAroundUser
	} else {
		c.boardScope = stats.ScopeGlobal
	}
	c.tracker.Download(stats.Boards[c.boardIdx], c.boardScope)
}

// loadRecord reads the save record. Until a read succeeds the session runs
// on defaults and nothing is written. A late read keeps the high score and
// mute toggles made in the meantime.
func (c *Controller) loadRecord() {
	rec, err := save.Load(c.saves, c.saveKey)
	switch {
	case errors.Is(err, save.ErrDefaultNotWritten):
		c.log.Warn("writing default save record failed, will retry", "err", err)
		c.saveDirty = true
	case err != nil:
		if !c.loadFailed {
			c.log.Warn("loading save record failed, will retry", "err", err)
		}
		c.loadFailed = true
		return
	}
	c.loaded = true
	if !c.loadFailed {
		c.record = rec
		return
	}

	stored, session := rec, c.record
	if session.HighScore > rec.HighScore {
		rec.HighScore = session.HighScore
		rec.Username = session.Username
	}
	if c.musicToggled {
		rec.MusicMuted = session.MusicMuted
	}
	if c.sfxToggled {
		rec.SFXMuted = session.SFXMuted
	}
	c.record = rec
	c.audio.SetMusicMuted(rec.MusicMuted)
	c.audio.SetSFXMuted(rec.SFXMuted)
	if rec != stored {
		c.saveDirty = true
	}
	c.log.Info("save record loaded", "high_score", rec.HighScore)
}

// persist writes the save record. Failures are retried from Update.
func (c *Controller) persist() {
	if !c.loaded {
		c.saveDirty = true
		return
	}
	if err := save.Store(c.saves, c.saveKey, c.record); err != nil {
		c.log.Warn("saving record failed, will retry", "err", err)
		c.saveDirty = true
		return
	}
	c.saveDirty = false
}

// Update advances the session by dt seconds: stats polling, the hamster,
// effects, banners, UI timers, then pending persistence.
func (c *Controller) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.ticks++

	if every := c.cfg.Stats.PollIntervalTicks; every > 0 && c.ticks%every == 0 {
		c.tracker.Poll()
	}
	c.tracker.RunFrame()
	for range c.tracker.TakeUnlocked() {
		c.audio.PlayUnlock()
	}

	if !c.settings {
		c.actor.Update(dt)
	}
	c.dust.Tick(dt)
	c.sleepZ.Tick(dt)
	c.eval.Display().Update(dt)

	if !c.settings {
		c.updateTimers(dt)
	}

	if !c.loaded {
		c.loadRecord()
	}
	if c.saveDirty && c.loaded {
		c.persist()
	}
}

func (c *Controller) updateTimers(dt float64) {
	if c.state == hamster.StateStart {
		c.titleFade = min(c.titleFade+dt, c.cfg.Race.TitleFadeSeconds)
	}

	if ticked, gone := c.countdown.Update(dt); ticked {
		c.audio.PlayCountdownTick(gone)
		if gone && c.state == hamster.StateWheelStarting {
			c.startRace()
		}
	}

	if c.state == hamster.StateWheelPlaying && c.race.Update(dt) {
		c.endRace()
	}
}

// TitleOpacity returns the fade-in of the title on the start screen.
func (c *Controller) TitleOpacity() uint8 {
	if c.cfg.Race.TitleFadeSeconds <= 0 {
		return 255
	}
	return uint8(255 * min(c.titleFade/c.cfg.Race.TitleFadeSeconds, 1))
}

// Close flushes an unsaved record. A record that was never read is left
// untouched.
func (c *Controller) Close() {
	if !c.loaded {
		c.loadRecord()
	}
	if c.saveDirty && c.loaded {
		c.persist()
	}
}

func padName(name string) string {
	if n := len([]rune(name)); n < save.NameLength {
		return name + strings.Repeat(" ", save.NameLength-n)
	}
	return name
}
