package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads puzzler configuration.
// Search order: customPath -> ~/.puzzler/configs/puzzler.yaml -> ./configs/puzzler.yaml -> embedded default.
// Files only need to name the values they change; everything else keeps
// its default.
func Load(customPath string) (PuzzlerConfig, error) {
	cfg := DefaultPuzzlerConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("puzzler.yaml"), filepath.Join("configs", "puzzler.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			candidate := DefaultPuzzlerConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, candidate.Validate()
			}
		}
	}

	if err := yaml.Unmarshal(defaultPuzzlerYAML, &cfg); err != nil {
		return DefaultPuzzlerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".puzzler", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the config as loaded.
func ApplyPreset(cfg *PuzzlerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Board.TurnsToWin = 8
		cfg.Search.CascadeDepth = 1
		cfg.Opponent.DelayMin = 4 * time.Second
		cfg.Opponent.DelayMax = 5 * time.Second
		cfg.Pressure.Enabled = false
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Board.TurnsToWin = 16
		cfg.Search.CascadeDepth = 6
		cfg.Opponent.DelayMin = 1500 * time.Millisecond
		cfg.Opponent.DelayMax = 2500 * time.Millisecond
		cfg.Pressure.Enabled = true
		cfg.Pressure.InitialLevel = 0.3
	}
}
