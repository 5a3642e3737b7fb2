package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/eggtrail/internal/games/eggtrail"
	"github.com/vovakirdan/eggtrail/internal/platform/tui"
	"github.com/vovakirdan/eggtrail/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive scoreboard",
	Long: `Browse best scores, recent rounds and per-level records.
Tab and Shift+Tab switch views; Esc or Q leaves.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	_, err = tui.RunScoreboard(store, eggtrail.GameID, width, height)
	return err
}
