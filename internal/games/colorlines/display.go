package colorlines

import (
	"github.com/vovakirdan/tui-lines/internal/lines"
)

// flashTicks is how long removed cells stay highlighted.
const flashTicks = 12

// Display is the view-side cache of the board. It is fed only by engine
// events, never by reading the engine grid after the initial copy.
type Display struct {
	cells    lines.Grid
	score    int
	sel      lines.Pos
	selected bool
	over     bool
	reason   lines.GameOverReason
	lastCut  int
	flash    map[lines.Pos]int
	unsub    func()
}

// NewDisplay creates an empty display.
func NewDisplay() *Display {
	return &Display{flash: make(map[lines.Pos]int)}
}

// Attach copies the current engine state and follows its events.
func (d *Display) Attach(e *lines.Engine) {
	d.Detach()
	d.cells = e.Grid()
	d.score = e.Score()
	d.sel, d.selected = e.Selection()
	d.reason = e.GameOverReason()
	d.over = e.Phase() == lines.PhaseGameOver
	d.lastCut = 0
	clear(d.flash)
	d.unsub = e.Subscribe(d.handle)
}

// Detach stops following the engine.
func (d *Display) Detach() {
	if d.unsub != nil {
		d.unsub()
		d.unsub = nil
	}
}

func (d *Display) handle(ev lines.Event) {
	switch ev := ev.(type) {
	case lines.CellUpdated:
		if d.cells.InBounds(ev.X, ev.Y) {
			d.cells[ev.Y][ev.X] = ev.Kind
		}
	case lines.ScoreUpdated:
		d.score = ev.Score
	case lines.SelectionChanged:
		d.sel, d.selected = ev.Pos, ev.Active
	case lines.LinesCut:
		d.lastCut = ev.Removed
		for _, run := range ev.Runs {
			for _, p := range run.Cells() {
				d.flash[p] = flashTicks
			}
		}
	case lines.GameReset:
		d.over = false
		d.reason = lines.ReasonNone
		d.lastCut = 0
		clear(d.flash)
	case lines.GameOver:
		d.over = true
		d.reason = ev.Reason
	case lines.Configured:
		d.cells = lines.NewGrid(ev.Columns, ev.Rows)
		d.score = 0
		d.selected = false
		d.over = false
		clear(d.flash)
	}
}

// Tick ages the removal highlight.
func (d *Display) Tick() {
	for p, n := range d.flash {
		if n <= 1 {
			delete(d.flash, p)
			continue
		}
		d.flash[p] = n - 1
	}
}

// Kind returns the cached kind at (x, y), or Empty when out of range.
func (d *Display) Kind(x, y int) lines.Kind {
	if !d.cells.InBounds(x, y) {
		return lines.Empty
	}
	return d.cells[y][x]
}

// Cells returns a copy of the cached board.
func (d *Display) Cells() lines.Grid { return d.cells.Clone() }

// Score returns the cached score.
func (d *Display) Score() int { return d.score }

// Selection returns the cached selection.
func (d *Display) Selection() (lines.Pos, bool) { return d.sel, d.selected }

// Over reports whether the round ended, and why.
func (d *Display) Over() (bool, lines.GameOverReason) { return d.over, d.reason }

// LastCut returns how many balls the last clearing move removed.
func (d *Display) LastCut() int { return d.lastCut }

// Flashing reports whether (x, y) was cleared recently.
func (d *Display) Flashing(x, y int) bool {
	_, ok := d.flash[lines.Pos{X: x, Y: y}]
	return ok
}
