package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	flagClear  bool
	flagRecent bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show records for a board",
	Long: `Display the best rounds for the specified board (default: lines).
Each record is the peak score reached during a round that went above zero.

Examples:
  lines scores
  lines scores lines_mini --limit 5
  lines scores --recent
  lines scores lines --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all records for the board")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by most recent instead of best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of records to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "lines"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lines list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing records: %v\n", err)
			return
		}
		fmt.Printf("Records cleared for %s.\n", title)
		return
	}

	var scores []storage.ScoreEntry
	if flagRecent {
		scores, err = store.RecentRounds(gameID, flagLimit)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		return
	}

	fmt.Printf("Records - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No records yet.")
		fmt.Println()
		fmt.Printf("Play 'lines play %s' to set the first one!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-16s  %s\n", "Rank", "Peak", "Final", "Moves", "Date", "Ended")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-16s  %s\n", "----", "----", "-----", "-----", "----", "-----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %-6d  %-16s  %s\n", i+1, entry.Score, entry.Final, entry.Moves, dateStr, entry.Reason)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Rounds: %d   Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}
