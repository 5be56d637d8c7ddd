package lines

import "fmt"

// At returns the kind at (x, y).
func (e *Engine) At(x, y int) (Kind, error) {
	if !e.grid.InBounds(x, y) {
		return Empty, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, x, y, e.cfg.Columns, e.cfg.Rows)
	}
	return e.grid[y][x], nil
}

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Moves returns the number of completed non-clearing moves this round.
func (e *Engine) Moves() int { return e.moves }

// NextBatch returns how many balls the next non-clearing move will spawn.
func (e *Engine) NextBatch() int { return e.cfg.Rules.BatchSize(e.moves + 1) }

// Selection returns the selected cell, if any.
func (e *Engine) Selection() (Pos, bool) { return e.sel, e.selected }

// GameOverReason returns why the round ended, or ReasonNone.
func (e *Engine) GameOverReason() GameOverReason { return e.reason }

// EmptyCount returns the number of empty cells.
func (e *Engine) EmptyCount() int {
	return e.cfg.Columns*e.cfg.Rows - e.grid.Filled()
}

// Phase returns the round state.
func (e *Engine) Phase() Phase {
	switch {
	case e.over:
		return PhaseGameOver
	case !e.playing:
		return PhaseNotStarted
	case e.selected:
		return PhaseSelecting
	default:
		return PhaseIdle
	}
}

// Grid returns a copy of the board.
func (e *Engine) Grid() Grid { return e.grid.Clone() }

// Snapshot captures the complete engine state for determinism tests and replay.
type Snapshot struct {
	Columns   int
	Rows      int
	Kinds     int
	Cells     Grid
	Score     int
	Moves     int
	Phase     Phase
	Selection Pos
	Selected  bool
	Reason    GameOverReason
}

// Snapshot returns a deep copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Columns:   e.cfg.Columns,
		Rows:      e.cfg.Rows,
		Kinds:     e.cfg.Kinds,
		Cells:     e.grid.Clone(),
		Score:     e.score,
		Moves:     e.moves,
		Phase:     e.Phase(),
		Selection: e.sel,
		Selected:  e.selected,
		Reason:    e.reason,
	}
}

// Position returns the board, score and move count for a later Restore.
func (e *Engine) Position() Position {
	return Position{Cells: e.grid.Clone(), Score: e.score, Moves: e.moves}
}
