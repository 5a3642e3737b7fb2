package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/eggtrail/internal/core"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail"
	"github.com/vovakirdan/eggtrail/internal/platform/tui"
	"github.com/vovakirdan/eggtrail/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Egg Trail",
	Long: `Open the level menu, or start a level directly with --level.

Controls:
  Mouse left/right  - Place / remove at the pointer, click shop entries
  Arrows or hjkl    - Move the placement cursor
  Enter             - Place at cursor, start the round, next level
  X/Delete          - Remove the gadget under the cursor
  1-5               - Buy pipe, block, turbo, pad, portal
  B / S / D         - Speed boost, storm, pad charge
  Z / C / V         - Toggle skills before an advanced level
  Esc               - Cancel a placement; back to menu after a round
  Space             - Retry a failed level
  R                 - Restart from level 1
  P                 - Pause
  Q/Ctrl+C          - Quit

Examples:
  eggtrail play
  eggtrail play --level 2
  eggtrail play --difficulty easy --log-file /tmp/eggtrail.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start on this level and skip the menu")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write the session log to a file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagLevel < 0 || flagLevel > gameCfg.MaxLevel() {
		return fmt.Errorf("level %d out of range 1..%d", flagLevel, gameCfg.MaxLevel())
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out, "eggtrail")
	if err != nil {
		return err
	}
	eggtrail.SetLogger(logger)

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(store, cfg, tui.SessionOptions{
		GameID:     eggtrail.GameID,
		Levels:     gameCfg.Round.Levels,
		StartLevel: flagLevel,
		Logger:     logger,
	})
}

// openStore opens the scores database. Failure is reported and play
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}
