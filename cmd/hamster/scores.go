package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hamster/internal/platform/tui"
	"github.com/vovakirdan/tui-hamster/internal/stats"
	"github.com/vovakirdan/tui-hamster/internal/storage"
)

var (
	flagAround bool
	flagPlain  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Browse the leaderboards",
	Long: `Browse the leaderboards interactively, or print one with --plain.

Boards:
  FastestRun  - Most loops in a single race
  TotalLoops  - Loops across all races

Examples:
  hamster scores
  hamster scores TotalLoops --around
  hamster scores FastestRun --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAround, "around", false, "Show the entries around your own rank")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the board instead of opening the browser")
}

func runScores(_ *cobra.Command, args []string) {
	board := ""
	if len(args) == 1 {
		board = args[0]
	}
	scope := stats.ScopeGlobal
	if flagAround {
		scope = stats.ScopeAroundUser
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening stats database: %v", err)
	}
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, flagUser, board, scope, width, height); err != nil {
			fail("running scoreboard: %v", err)
		}
		return
	}

	if board == "" {
		board = stats.Boards[0]
	}
	entries, err := tui.LoadBoard(store, board, flagUser, scope)
	if err != nil {
		fail("loading %q: %v", board, err)
	}

	fmt.Printf("%s (%s)\n", board, scope)
	fmt.Println()

	if len(entries) == 0 {
		if scope == stats.ScopeAroundUser {
			fmt.Printf("%s has no score on this board yet.\n", flagUser)
		} else {
			fmt.Println("No scores recorded yet.")
		}
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-16s  %s\n", "Rank", "Player", "Loops")
	fmt.Printf("  %-6s  %-16s  %s\n", "----", "------", "-----")

	for _, e := range entries {
		mark := " "
		if e.User == flagUser {
			mark = ">"
		}
		fmt.Printf("%s %-6d  %-16s  %d\n", mark, e.Rank, e.User, e.Score)
	}
}
