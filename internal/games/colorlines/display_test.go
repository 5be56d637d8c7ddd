package colorlines

import (
	"testing"

	"github.com/vovakirdan/tui-lines/internal/lines"
)

func TestDisplayFollowsEvents(t *testing.T) {
	e, err := lines.New(lines.Config{Columns: 4, Rows: 1, Kinds: 3, Seed: 1, Rules: lines.Rules{InitialScore: 10, MinRun: 3}})
	if err != nil {
		t.Fatal(err)
	}
	d := NewDisplay()
	d.Attach(e)

	if err := e.Restore(lines.Position{Cells: lines.Grid{{1, 1, 0, 1}}, Score: 10}); err != nil {
		t.Fatal(err)
	}
	if d.Kind(0, 0) != 1 || d.Kind(2, 0) != lines.Empty || d.Score() != 10 {
		t.Fatalf("display after restore = %v score %d", d.Cells(), d.Score())
	}

	e.SelectOrMove(3, 0)
	if p, ok := d.Selection(); !ok || p != (lines.Pos{X: 3, Y: 0}) {
		t.Errorf("Selection() = %v, %v", p, ok)
	}

	e.SelectOrMove(2, 0)
	if d.LastCut() != 3 || d.Score() != 13 {
		t.Errorf("LastCut() = %d, Score() = %d", d.LastCut(), d.Score())
	}
	if !d.Flashing(1, 0) || d.Flashing(3, 0) {
		t.Error("only removed cells should flash")
	}

	for i := 0; i < flashTicks; i++ {
		d.Tick()
	}
	if d.Flashing(1, 0) {
		t.Error("flash should expire")
	}
	if d.Kind(-1, 0) != lines.Empty || d.Kind(9, 9) != lines.Empty {
		t.Error("out-of-range Kind should be empty")
	}
}

func TestDisplayConfigured(t *testing.T) {
	e, err := lines.New(lines.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	d := NewDisplay()
	d.Attach(e)
	e.Start()

	if err := e.Configure(5, 4, 4); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	cells := d.Cells()
	if cells.Cols() != 5 || cells.Rows() != 4 || cells.Filled() != 0 {
		t.Errorf("display after Configure = %dx%d with %d balls", cells.Cols(), cells.Rows(), cells.Filled())
	}

	e.Start()
	if !d.Cells().Equal(e.Grid()) {
		t.Error("display diverged after restart on the new board")
	}
}

func TestDisplayDetach(t *testing.T) {
	e, err := lines.New(lines.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	d := NewDisplay()
	d.Attach(e)
	d.Detach()
	e.Start()

	if d.Cells().Filled() != 0 {
		t.Error("detached display should not see new balls")
	}
}
