package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/eggtrail/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table",
	Long: `Shows every level with its score target and the features it unlocks.
--config and --difficulty apply, so this is also a quick way to check a
custom eggtrail.yaml.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Round time: %.0fs\n", cfg.Round.Time)
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %s\n", "Level", "Target", "Features")
	fmt.Printf("  %-5s  %-7s  %s\n", "-----", "------", "--------")
	for i, lv := range cfg.Round.Levels {
		level := i + 1
		fmt.Printf("  %-5d  %-7d  %s\n", level, lv.Target, levelFeatures(cfg, level))
	}

	fmt.Println()
	fmt.Println("Run 'eggtrail play --level N' to start on a level.")
	return nil
}

// levelFeatures lists what a level offers beyond pipes and portals.
func levelFeatures(cfg config.EggTrailConfig, level int) string {
	var f []string
	if cfg.Level(level).Blocks {
		f = append(f, "blocks")
	}
	if level >= cfg.Unlocks.Turbo {
		f = append(f, "turbo")
	}
	if level >= cfg.Unlocks.Pad {
		f = append(f, "pads")
	}
	if level >= cfg.Unlocks.Advanced {
		f = append(f, "skills", "speed boost", "power-ups")
	}
	if level >= cfg.Unlocks.RapidFire {
		f = append(f, "rapid fire")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ", ")
}
