package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hamster/internal/audio"
	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/game"
	"github.com/vovakirdan/tui-hamster/internal/platform/tui"
	"github.com/vovakirdan/tui-hamster/internal/stats"
	"github.com/vovakirdan/tui-hamster/internal/storage"
)

var flagNoSound bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the hamster game.

Controls:
  Space        - Wake up / walk / start the wheel
  Left/Right   - Turn around
  Up/Down      - Climb into or out of the wheel
  Any key      - Run while the wheel is spinning
  Esc/Tab      - Settings
  M / N        - Toggle music / sound effects
  R            - Play again (after a race)
  [ / ]        - Leaderboard scope / next leaderboard
  Q/Ctrl+C     - Quit

Examples:
  hamster play
  hamster play --no-sound
  hamster play --config ./my-hamster.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable audio output")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadHamster(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagNoSound {
		cfg.Audio.Enabled = false
	}

	// The screen belongs to Bubble Tea, so logs go to a file
	logger, closeLog := openLogger()
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("could not open stats database: %v", err)
	}

	client := stats.NewClient(store, stats.ClientConfig{
		AppID: cfg.Stats.AppID,
		User:  flagUser,
	}, logger)

	sound := audio.NewManager(cfg.Audio)
	if err := sound.Init(); err != nil {
		client.Close() //nolint:errcheck // Worker shutdown only
		store.Close()
		closeLog()
		fail("%v (run with --no-sound to play without audio)", err)
	}

	ctrl := game.New(game.Deps{
		Config: cfg,
		Audio:  sound,
		Stats:  client,
		Saves:  store,
		Logger: logger,
		Seed:   flagSeed,
	})

	runErr := tui.Run(ctrl, store, flagUser, rc)

	// Flush the stats worker before the database goes away
	sound.Close()
	client.Close() //nolint:errcheck // Worker shutdown only
	store.Close()

	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}

// openLogger writes logs to ~/.hamster/hamster.log, or discards them when
// the file cannot be opened.
func openLogger() (*log.Logger, func()) {
	discard := log.New(io.Discard)
	home, err := os.UserHomeDir()
	if err != nil {
		return discard, func() {}
	}
	dir := filepath.Join(home, ".hamster")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "hamster.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard, func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "hamster",
	})
	return logger, func() { f.Close() }
}
