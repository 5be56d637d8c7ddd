package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadLines loads Lines configuration.
// Search order: customPath -> ~/.arcade/configs/lines.yaml -> ./configs/lines.yaml -> embedded default
func LoadLines(customPath string) (LinesConfig, error) {
	// Start from the defaults so a partial file only overrides what it names
	cfg := DefaultLinesConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("lines.yaml"); userCfgPath != "" {
		if ok := tryLoad(userCfgPath, &cfg); ok {
			return cfg, nil
		}
	}

	if ok := tryLoad(filepath.Join("configs", "lines.yaml"), &cfg); ok {
		return cfg, nil
	}

	embedded := DefaultLinesConfig()
	if err := yaml.Unmarshal(defaultLinesYAML, &embedded); err != nil {
		return DefaultLinesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file; a missing or broken file is skipped.
func tryLoad(path string, cfg *LinesConfig) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	candidate := *cfg
	if err := yaml.Unmarshal(data, &candidate); err != nil {
		return false
	}
	*cfg = candidate
	return true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ParsePreset converts a flag value to a preset. An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyLinesPreset modifies the rules based on a difficulty preset.
func ApplyLinesPreset(cfg *LinesConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.BaseSpawn = 2
		cfg.Rules.SpawnGrowth = 0
		cfg.Rules.MovePenalty = 0
	case DifficultyHard:
		cfg.Rules.BaseSpawn = 3
		cfg.Rules.SpawnGrowth = 1
		cfg.Rules.MovePenalty = 2
	case DifficultyFixed:
		cfg.Rules.SpawnGrowth = 0
	}
}
