package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/eggtrail/internal/games/eggtrail"
	"github.com/vovakirdan/eggtrail/internal/storage"
)

var (
	flagRounds bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores, or the most recent rounds with --rounds.

Examples:
  eggtrail scores
  eggtrail scores --rounds --limit 20
  eggtrail scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRounds, "rounds", false, "List recent rounds instead of best scores")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored score and round")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(eggtrail.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}
	if flagRounds {
		return printRounds(store)
	}

	scores, err := store.TopScores(eggtrail.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Println("High Scores - Egg Trail")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'eggtrail play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRounds(store *storage.Store) error {
	rounds, err := store.RecentRounds(eggtrail.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve rounds: %w", err)
	}

	fmt.Println("Recent rounds - Egg Trail")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-6s  %-6s  %-6s  %s\n", "Date", "Level", "Result", "Score", "Target", "Coins", "ID")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-5d  %-7s  %-6d  %-6d  %-6d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Level, r.Result, r.Score, r.Target, r.Coins, r.ID[:8])
	}
	return nil
}
