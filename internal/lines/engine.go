// Package lines implements the board engine of a "Lines" ball puzzle.
//
// The engine owns a grid of coloured balls and runs the select-then-move
// protocol: the player picks a ball and an empty destination, lines of at
// least MinRun equal balls are removed for one point per ball, and a move that
// removes nothing costs MovePenalty and spawns a new batch of random balls.
// The round ends when a batch no longer fits or the score drops below zero.
//
// The engine does no I/O. Display, records and input layers observe it through
// Subscribe and drive it through SelectOrMove.
package lines

import (
	"errors"
	"fmt"
	"math/rand"
)

// Phase is the engine's round state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseIdle             // Playing, nothing selected
	PhaseSelecting        // Playing, a ball is selected
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseIdle:
		return "idle"
	case PhaseSelecting:
		return "selecting"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome tells the caller what a SelectOrMove call did.
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // Empty cell with no selection, out of range, or not playing
	OutcomeSelected                // A ball became the selection
	OutcomeBlocked                 // Target occupied; selection kept
	OutcomeMoved                   // Ball moved, no line removed
	OutcomeCleared                 // Ball moved and at least one line removed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeMoved:
		return "moved"
	case OutcomeCleared:
		return "cleared"
	default:
		return "ignored"
	}
}

// Position is a full board state that can be loaded with Restore.
type Position struct {
	Cells Grid
	Score int
	Moves int
}

// Engine is a single Lines round. It is not safe for concurrent use.
type Engine struct {
	cfg   Config
	grid  Grid
	rng   *rand.Rand
	score int
	moves int

	playing  bool
	over     bool
	reason   GameOverReason
	sel      Pos
	selected bool

	subs   []subscriber
	nextID int
	busy   bool // Set while a call is running; re-entrant calls from listeners are ignored
}

// New creates an engine in the not-started phase.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:  cfg,
		grid: NewGrid(cfg.Columns, cfg.Rows),
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Subscribe registers fn for every event this engine emits and returns a
// function that removes it. Listeners run synchronously in registration order.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.nextID++
	id := e.nextID
	subs := make([]subscriber, len(e.subs), len(e.subs)+1)
	copy(subs, e.subs)
	e.subs = append(subs, subscriber{id: id, fn: fn})

	return func() {
		kept := make([]subscriber, 0, len(e.subs))
		for _, s := range e.subs {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		e.subs = kept
	}
}

func (e *Engine) emit(ev Event) {
	for _, s := range e.subs {
		s.fn(ev)
	}
}

// Configure changes the board dimensions and kind count. The board becomes
// all-empty and the engine returns to the not-started phase.
func (e *Engine) Configure(columns, rows, kinds int) error {
	if err := validateShape(columns, rows, kinds); err != nil {
		return err
	}
	if e.busy {
		return fmt.Errorf("%w: configure called from a listener", ErrInvalidConfiguration)
	}
	e.cfg.Columns, e.cfg.Rows, e.cfg.Kinds = columns, rows, kinds
	e.grid = NewGrid(columns, rows)
	e.score, e.moves = 0, 0
	e.playing, e.over, e.reason = false, false, ReasonNone
	e.selected = false
	e.emit(Configured{Columns: columns, Rows: rows, Kinds: kinds})
	return nil
}

// Reseed replaces the random source used for spawns.
func (e *Engine) Reseed(seed int64) {
	e.cfg.Seed = seed
	e.rng = rand.New(rand.NewSource(seed))
}

// Start begins a new round: clears the board, resets score and move counter
// and places the initial batch. If the batch does not fit the round ends
// immediately.
func (e *Engine) Start() {
	if e.busy {
		return
	}
	e.busy = true
	defer func() { e.busy = false }()

	e.dropSelection()
	for y := range e.grid {
		for x := range e.grid[y] {
			e.put(x, y, Empty)
		}
	}
	e.moves = 0
	e.playing, e.over, e.reason = true, false, ReasonNone

	spawnErr := e.spawn(e.cfg.Rules.BaseSpawn)
	e.setScore(e.cfg.Rules.InitialScore)
	e.emit(GameReset{})

	e.checkEnd(spawnErr)
}

// Restore loads a position and starts playing from it.
func (e *Engine) Restore(p Position) error {
	if p.Cells.Rows() != e.cfg.Rows || p.Cells.Cols() != e.cfg.Columns {
		return fmt.Errorf("%w: position is %dx%d, board is %dx%d",
			ErrInvalidConfiguration, p.Cells.Cols(), p.Cells.Rows(), e.cfg.Columns, e.cfg.Rows)
	}
	for y := range p.Cells {
		if len(p.Cells[y]) != e.cfg.Columns {
			return fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrInvalidConfiguration, y, len(p.Cells[y]), e.cfg.Columns)
		}
		for x, k := range p.Cells[y] {
			if !e.validKind(k) {
				return fmt.Errorf("%w: %d at (%d, %d)", ErrInvalidKind, k, x, y)
			}
		}
	}
	if p.Moves < 0 {
		return fmt.Errorf("%w: negative move count %d", ErrInvalidConfiguration, p.Moves)
	}
	if e.busy {
		return fmt.Errorf("%w: restore called from a listener", ErrInvalidConfiguration)
	}

	e.busy = true
	defer func() { e.busy = false }()

	e.dropSelection()
	for y := range p.Cells {
		for x, k := range p.Cells[y] {
			e.put(x, y, k)
		}
	}
	e.moves = p.Moves
	e.playing, e.over, e.reason = true, false, ReasonNone
	e.setScore(p.Score)
	e.emit(GameReset{})

	e.checkEnd(nil)
	return nil
}

// SelectOrMove is the single player entry point. With no selection, a
// non-empty cell becomes selected. With a selection, an empty target receives
// the selected ball and the move is resolved; an occupied target is refused and
// the selection kept. Out-of-range coordinates and calls outside a round are
// ignored.
func (e *Engine) SelectOrMove(x, y int) Outcome {
	if e.busy || !e.playing || e.over || !e.grid.InBounds(x, y) {
		return OutcomeIgnored
	}
	e.busy = true
	defer func() { e.busy = false }()

	target := e.grid[y][x]
	if !e.selected {
		if target == Empty {
			return OutcomeIgnored
		}
		e.sel, e.selected = Pos{X: x, Y: y}, true
		e.emit(SelectionChanged{Pos: e.sel, Active: true})
		return OutcomeSelected
	}

	if target != Empty {
		return OutcomeBlocked
	}
	return e.move(x, y)
}

// Deselect drops the active selection. It reports whether one was dropped.
func (e *Engine) Deselect() bool {
	if e.busy || !e.selected || e.over {
		return false
	}
	e.busy = true
	defer func() { e.busy = false }()

	e.dropSelection()
	return true
}

func (e *Engine) move(x, y int) Outcome {
	from := e.sel
	e.put(x, y, e.grid[from.Y][from.X])
	e.put(from.X, from.Y, Empty)
	e.dropSelection()

	if removed := e.cutLines(); removed > 0 {
		e.setScore(e.score + removed)
		return OutcomeCleared
	}

	e.moves++
	spawnErr := e.spawn(e.cfg.Rules.BatchSize(e.moves))
	e.setScore(e.score - e.cfg.Rules.MovePenalty)
	e.checkEnd(spawnErr)
	return OutcomeMoved
}

// cutLines clears every cell covered by a qualifying run and returns the
// number of balls removed.
func (e *Engine) cutLines() int {
	runs, marked := FindRuns(e.grid, e.cfg.Rules.MinRun)
	if len(marked) == 0 {
		return 0
	}
	for _, p := range marked {
		e.put(p.X, p.Y, Empty)
	}
	e.emit(LinesCut{Runs: runs, Removed: len(marked)})
	return len(marked)
}

// spawn places n random balls on random empty cells. It stops with
// ErrBoardFull as soon as no empty cell is left.
func (e *Engine) spawn(n int) error {
	for i := 0; i < n; i++ {
		empty := e.grid.EmptyCells()
		if len(empty) == 0 {
			return fmt.Errorf("%w: placed %d of %d balls", ErrBoardFull, i, n)
		}
		p := empty[e.rng.Intn(len(empty))]
		k := Kind(1 + e.rng.Intn(e.cfg.Kinds-1))
		e.put(p.X, p.Y, k)
	}
	return nil
}

// checkEnd latches game over for a failed spawn or a negative score.
func (e *Engine) checkEnd(spawnErr error) {
	switch {
	case errors.Is(spawnErr, ErrBoardFull):
		e.endGame(ReasonBoardFull)
	case e.cfg.Rules.EndOnNegativeScore && e.score < 0:
		e.endGame(ReasonNegativeScore)
	}
}

func (e *Engine) endGame(reason GameOverReason) {
	if e.over {
		return
	}
	e.over = true
	e.reason = reason
	e.emit(GameOver{Reason: reason})
}

func (e *Engine) setScore(score int) {
	e.score = score
	e.emit(ScoreUpdated{Score: score})
}

func (e *Engine) dropSelection() {
	if !e.selected {
		return
	}
	p := e.sel
	e.selected = false
	e.emit(SelectionChanged{Pos: p, Active: false})
}

// put is the only writer of the grid. Out-of-range kinds are refused so the
// grid never holds an invalid value.
func (e *Engine) put(x, y int, k Kind) bool {
	if !e.grid.InBounds(x, y) || !e.validKind(k) {
		return false
	}
	if e.grid[y][x] == k {
		return true
	}
	e.grid[y][x] = k
	e.emit(CellUpdated{X: x, Y: y, Kind: k})
	return true
}

func (e *Engine) validKind(k Kind) bool {
	return k >= Empty && int(k) < e.cfg.Kinds
}
