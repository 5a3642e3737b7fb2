package config

import "math"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// presetScale returns the round-time and target multipliers for a preset.
func presetScale(preset DifficultyPreset) (timeScale, targetScale float64) {
	switch preset {
	case DifficultyEasy:
		return 1.5, 0.75
	case DifficultyHard:
		return 0.75, 1.25
	default:
		return 1, 1
	}
}

// ApplyEggTrailPreset scales the countdown and every level target.
// Targets are rounded to the nearest multiple of 10.
func ApplyEggTrailPreset(cfg *EggTrailConfig, preset DifficultyPreset) {
	timeScale, targetScale := presetScale(preset)
	if timeScale == 1 && targetScale == 1 {
		return
	}

	cfg.Round.Time *= timeScale

	levels := make([]LevelConfig, len(cfg.Round.Levels))
	for i, lvl := range cfg.Round.Levels {
		lvl.Target = int(math.Round(float64(lvl.Target)*targetScale/10)) * 10
		levels[i] = lvl
	}
	cfg.Round.Levels = levels
}
