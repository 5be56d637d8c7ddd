package colorlines

import (
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

// Snapshot captures the game and engine state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Engine    lines.Snapshot
	Cursor    core.Point
	Paused    bool
	ShowRules bool
	Peak      int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Cursor:    g.cursor,
		Paused:    g.paused,
		ShowRules: g.showRules,
	}
	if g.engine != nil {
		s.Engine = g.engine.Snapshot()
	}
	if g.tracker != nil {
		s.Peak = g.tracker.Peak()
	}
	return s
}
