// hamster is a terminal hamster-wheel arcade game.
//
// Usage:
//
//	hamster                  - Play (same as hamster play)
//	hamster play             - Play the game
//	hamster serve            - Start SSH server for remote play
//	hamster scores [board]   - Browse the leaderboards
//	hamster stats            - Show your stats and achievements
//	hamster reset-stats      - Clear your stats and achievements
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible effects
//	--db <path>      - Set database path (default: ~/.hamster/hamster.db)
//	--config <path>  - Use a custom game config YAML
//	--user <name>    - Player name for stats and leaderboards
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagUser   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hamster",
	Short: "Hamster - run the wheel in your terminal",
	Long: `Hamster is a terminal arcade game. Wake the hamster, walk it to the
wheel and run as many loops as you can before the clock runs out.

Available commands:
  play         - Play the game (default)
  serve        - Start SSH server for remote play
  scores       - Browse the leaderboards
  stats        - Show your stats and achievements
  reset-stats  - Clear your stats and achievements

Examples:
  hamster
  hamster play --fps 30
  hamster serve --ssh :2222
  hamster scores TotalLoops --around`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hamster/hamster.db", "Path to stats database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", defaultUser(), "Player name for stats and leaderboards")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetStatsCmd)
}

// defaultUser picks the login name, falling back to "player".
func defaultUser() string {
	for _, env := range []string{"USER", "USERNAME", "LOGNAME"} {
		if u := os.Getenv(env); u != "" {
			return u
		}
	}
	return "player"
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
