package config

import (
	_ "embed"
)

//go:embed defaults/lines.yaml
var defaultLinesYAML []byte

// DefaultLinesConfig returns the default Lines configuration.
func DefaultLinesConfig() LinesConfig {
	return LinesConfig{
		Board: BoardConfig{
			Columns: 9,
			Rows:    9,
			Colors:  6,
		},
		Mini: BoardConfig{
			Columns: 6,
			Rows:    6,
			Colors:  4,
		},
		Rules: RulesConfig{
			BaseSpawn:          3,
			SpawnGrowth:        0,
			InitialScore:       10,
			MovePenalty:        1,
			MinRun:             3,
			EndOnNegativeScore: true,
		},
	}
}
