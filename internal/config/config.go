// Package config provides YAML-based game configuration loading and
// difficulty presets for the Lines arcade.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-lines/internal/lines"
)

// LinesConfig contains all configuration for the Lines game.
type LinesConfig struct {
	Board BoardConfig `yaml:"board"`
	Mini  BoardConfig `yaml:"mini"`
	Rules RulesConfig `yaml:"rules"`
}

// BoardConfig defines the board dimensions of a mode.
type BoardConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
	Colors  int `yaml:"colors"` // Ball colours, not counting the empty cell
}

// RulesConfig defines scoring and spawn constants.
type RulesConfig struct {
	BaseSpawn          int  `yaml:"base_spawn"`
	SpawnGrowth        int  `yaml:"spawn_growth"`
	InitialScore       int  `yaml:"initial_score"`
	MovePenalty        int  `yaml:"move_penalty"`
	MinRun             int  `yaml:"min_run"`
	EndOnNegativeScore bool `yaml:"end_on_negative_score"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// IsFixedPreset returns true if the preset disables spawn growth.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Engine converts a board and the shared rules into an engine config.
func (c LinesConfig) Engine(board BoardConfig, seed int64) lines.Config {
	r := c.Rules
	return lines.Config{
		Columns: board.Columns,
		Rows:    board.Rows,
		Kinds:   board.Colors + 1,
		Seed:    seed,
		Rules: lines.Rules{
			BaseSpawn:          r.BaseSpawn,
			SpawnGrowth:        r.SpawnGrowth,
			InitialScore:       r.InitialScore,
			MovePenalty:        r.MovePenalty,
			MinRun:             r.MinRun,
			EndOnNegativeScore: r.EndOnNegativeScore,
		},
	}
}

// Validate checks both boards against the engine rules.
// Errors wrap lines.ErrInvalidConfiguration.
func (c LinesConfig) Validate() error {
	if err := c.Engine(c.Board, 0).Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if err := c.Engine(c.Mini, 0).Validate(); err != nil {
		return fmt.Errorf("mini: %w", err)
	}
	return nil
}
