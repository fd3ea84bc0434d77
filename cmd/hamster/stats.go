package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hamster/internal/achievement"
	"github.com/vovakirdan/tui-hamster/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your stats and achievements",
	Long: `Display the stored stats, achievements and recent races of a player.

Examples:
  hamster stats
  hamster stats --user alice --recent 20`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

var flagYes bool

var resetStatsCmd = &cobra.Command{
	Use:   "reset-stats",
	Short: "Clear your stats and achievements",
	Long: `Clear every stat and achievement of a player. Leaderboard entries and
race history are kept.

Examples:
  hamster reset-stats --yes`,
	Args: cobra.NoArgs,
	Run:  runResetStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent races to show")
	resetStatsCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm the reset")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening stats database: %v", err)
	}
	defer store.Close()

	snap, err := store.LoadStats(flagUser)
	if err != nil {
		fail("loading stats: %v", err)
	}

	fmt.Printf("Stats - %s\n", flagUser)
	fmt.Println()
	fmt.Printf("  Games played  %d\n", snap.GamesPlayed)
	fmt.Printf("  Races run     %d\n", snap.TotalRuns)
	fmt.Printf("  Total loops   %d\n", snap.TotalLoops)
	if best, bestErr := store.BestRun(flagUser); bestErr == nil && best > 0 {
		fmt.Printf("  Best race     %d loops\n", best)
	}

	fmt.Println()
	fmt.Println("Achievements")
	for _, info := range achievement.All() {
		mark := "[ ]"
		if slices.Contains(snap.Achievements, info.APIName) {
			mark = "[x]"
		}
		fmt.Printf("  %s %-16s %s\n", mark, info.Name, info.Description)
	}

	runs, err := store.RecentRuns(flagUser, flagRecent)
	if err != nil {
		fail("loading races: %v", err)
	}
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No races recorded yet.")
		fmt.Println()
		fmt.Println("Run 'hamster' to play your first race!")
		return
	}
	fmt.Println("Recent races")
	for _, r := range runs {
		fmt.Printf("  %s  %d loops\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Loops)
	}
}

func runResetStats(_ *cobra.Command, _ []string) {
	if !flagYes {
		fmt.Fprintf(os.Stderr, "This clears every stat and achievement of %q.\n", flagUser)
		fmt.Fprintln(os.Stderr, "Run again with --yes to confirm.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening stats database: %v", err)
	}
	defer store.Close()

	if err := store.ResetStats(flagUser); err != nil {
		fail("resetting stats: %v", err)
	}
	fmt.Printf("Stats of %s cleared.\n", flagUser)
}
