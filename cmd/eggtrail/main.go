// eggtrail is a terminal game about routing eggs along a trail with pipes,
// portals and other gadgets before the round clock runs out.
//
// Usage:
//
//	eggtrail play            - Pick a level and play
//	eggtrail levels          - List the level table
//	eggtrail scores          - Show best scores or recent rounds
//	eggtrail board           - Open the interactive scoreboard
//	eggtrail serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.eggtrail/scores.db)
//	--config <path>      - Load a custom eggtrail.yaml
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/eggtrail/internal/config"
	"github.com/vovakirdan/eggtrail/internal/games/eggtrail"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eggtrail",
	Short: "Egg Trail - route eggs along a trail in your terminal",
	Long: `Egg Trail is a terminal game: eggs roll along a winding trail and
score when they reach the end. Spend coins on pipes, blocks, turbos, pads,
portals and storms to hit each level's target before the clock runs out.

Available commands:
  play     - Pick a level and play
  levels   - Show the level table
  scores   - Show best scores or recent rounds
  board    - Interactive scoreboard
  serve    - Start SSH server for remote play

Examples:
  eggtrail play
  eggtrail play --level 3 --difficulty hard
  eggtrail scores --rounds
  eggtrail serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		eggtrail.SetConfigPath(flagConfig)
		eggtrail.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.eggtrail/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom eggtrail.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig returns the game config the commands share, with the
// difficulty preset applied.
func loadConfig() (config.EggTrailConfig, error) {
	cfg, err := config.LoadEggTrail(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyEggTrailPreset(&cfg, preset)
	} else if flagDifficulty != "" {
		return cfg, fmt.Errorf("unknown difficulty %q (easy, normal, hard)", flagDifficulty)
	}
	return cfg, nil
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
