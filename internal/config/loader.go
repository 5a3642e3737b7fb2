package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file name looked up in the config directories.
const ConfigFileName = "eggtrail.yaml"

// LoadEggTrail loads the Egg Trail configuration.
// Search order: customPath -> ~/.eggtrail/configs/eggtrail.yaml ->
// ./configs/eggtrail.yaml -> embedded default -> DefaultEggTrailConfig.
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it sets.
func LoadEggTrail(customPath string) (EggTrailConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return EggTrailConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return EggTrailConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return EggTrailConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFileName); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryLoad(filepath.Join("configs", ConfigFileName)); ok {
		return cfg, nil
	}

	cfg, err := parse(defaultEggTrailYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultEggTrailConfig(), nil
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (EggTrailConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EggTrailConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return EggTrailConfig{}, false
	}
	return cfg, true
}

func parse(data []byte) (EggTrailConfig, error) {
	cfg := DefaultEggTrailConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EggTrailConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".eggtrail", "configs", filename)
}
