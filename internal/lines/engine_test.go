package lines

import (
	"errors"
	"math/rand"
	"testing"
)

// recorder collects events in delivery order.
type recorder struct {
	events []Event
}

func record(e *Engine) *recorder {
	r := &recorder{}
	e.Subscribe(func(ev Event) {
		r.events = append(r.events, ev)
	})
	return r
}

func (r *recorder) reset() { r.events = nil }

func (r *recorder) names() []string {
	names := make([]string, len(r.events))
	for i, ev := range r.events {
		names[i] = eventName(ev)
	}
	return names
}

func (r *recorder) count(name string) int {
	n := 0
	for _, ev := range r.events {
		if eventName(ev) == name {
			n++
		}
	}
	return n
}

func eventName(ev Event) string {
	switch ev.(type) {
	case CellUpdated:
		return "cell"
	case ScoreUpdated:
		return "score"
	case GameReset:
		return "reset"
	case GameOver:
		return "over"
	case SelectionChanged:
		return "select"
	case LinesCut:
		return "cut"
	case Configured:
		return "configured"
	default:
		return "unknown"
	}
}

func newTestEngine(t *testing.T, cols, rows, kinds int, rules Rules) *Engine {
	t.Helper()
	e, err := New(Config{Columns: cols, Rows: rows, Kinds: kinds, Rules: rules, Seed: 42})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func restore(t *testing.T, e *Engine, score int, rows ...[]Kind) {
	t.Helper()
	if err := e.Restore(Position{Cells: Grid(rows), Score: score}); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	bad := func(mut func(*Config)) Config {
		c := DefaultConfig()
		mut(&c)
		return c
	}
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero columns", bad(func(c *Config) { c.Columns = 0 })},
		{"negative rows", bad(func(c *Config) { c.Rows = -1 })},
		{"single kind", bad(func(c *Config) { c.Kinds = 1 })},
		{"min run one", bad(func(c *Config) { c.Rules.MinRun = 1 })},
		{"negative spawn", bad(func(c *Config) { c.Rules.BaseSpawn = -1 })},
		{"negative growth", bad(func(c *Config) { c.Rules.SpawnGrowth = -2 })},
		{"negative penalty", bad(func(c *Config) { c.Rules.MovePenalty = -1 })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("New() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	e := newTestEngine(t, 9, 9, 7, DefaultRules())
	e.Start()
	r := record(e)

	if err := e.Configure(4, 3, 5); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if e.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v after Configure, want not_started", e.Phase())
	}
	g := e.Grid()
	if g.Cols() != 4 || g.Rows() != 3 || g.Filled() != 0 {
		t.Errorf("grid after Configure is %dx%d with %d balls", g.Cols(), g.Rows(), g.Filled())
	}
	if r.count("configured") != 1 {
		t.Errorf("got %d Configured events, want 1", r.count("configured"))
	}

	if err := e.Configure(0, 3, 5); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Configure(0, 3, 5) error = %v, want ErrInvalidConfiguration", err)
	}
	if err := e.Configure(3, 3, 1); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Configure(3, 3, 1) error = %v, want ErrInvalidConfiguration", err)
	}
	if e.Config().Columns != 4 {
		t.Error("failed Configure changed the board")
	}
}

func TestStartPlacesInitialBatch(t *testing.T) {
	e := newTestEngine(t, 9, 9, 7, DefaultRules())
	r := record(e)

	e.Start()

	if got := e.Grid().Filled(); got != 3 {
		t.Errorf("Filled() = %d after Start, want 3", got)
	}
	if e.Score() != 10 {
		t.Errorf("Score() = %d, want 10", e.Score())
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", e.Phase())
	}

	want := []string{"cell", "cell", "cell", "score", "reset"}
	got := r.names()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStartClearsPreviousRound(t *testing.T) {
	e := newTestEngine(t, 5, 5, 4, DefaultRules())
	restore(t, e, 3,
		[]Kind{1, 2, 3, 1, 2},
		[]Kind{2, 3, 1, 2, 3},
		[]Kind{0, 0, 0, 0, 0},
		[]Kind{0, 0, 0, 0, 0},
		[]Kind{0, 0, 0, 0, 0},
	)
	e.SelectOrMove(0, 0)

	e.Start()

	if e.Grid().Filled() != 3 {
		t.Errorf("Filled() = %d after restart, want 3", e.Grid().Filled())
	}
	if _, ok := e.Selection(); ok {
		t.Error("selection survived Start")
	}
	if e.Moves() != 0 || e.Score() != 10 {
		t.Errorf("Moves() = %d, Score() = %d after Start", e.Moves(), e.Score())
	}
}

func TestStartOnTooSmallBoardEndsGame(t *testing.T) {
	e := newTestEngine(t, 2, 1, 7, DefaultRules())
	r := record(e)

	e.Start()

	if e.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, want game_over", e.Phase())
	}
	if e.GameOverReason() != ReasonBoardFull {
		t.Errorf("GameOverReason() = %v, want board full", e.GameOverReason())
	}
	if r.count("over") != 1 {
		t.Errorf("got %d GameOver events, want 1", r.count("over"))
	}
	names := r.names()
	if names[len(names)-1] != "over" {
		t.Errorf("last event = %s, want over", names[len(names)-1])
	}
	if r.count("cell") != 2 {
		t.Errorf("placed %d balls on a 2-cell board", r.count("cell"))
	}

	r.reset()
	if out := e.SelectOrMove(0, 0); out != OutcomeIgnored {
		t.Errorf("SelectOrMove after game over = %v, want ignored", out)
	}
	if len(r.events) != 0 {
		t.Errorf("events after game over: %v", r.names())
	}
}

func TestSelectOrMoveBeforeStartIgnored(t *testing.T) {
	e := newTestEngine(t, 3, 3, 4, DefaultRules())
	if out := e.SelectOrMove(0, 0); out != OutcomeIgnored {
		t.Errorf("SelectOrMove before Start = %v, want ignored", out)
	}
}

func TestSelection(t *testing.T) {
	rules := DefaultRules()
	e := newTestEngine(t, 3, 3, 4, rules)
	restore(t, e, 10,
		[]Kind{1, 0, 0},
		[]Kind{0, 2, 0},
		[]Kind{0, 0, 0},
	)
	r := record(e)

	if out := e.SelectOrMove(2, 2); out != OutcomeIgnored {
		t.Errorf("selecting empty cell = %v, want ignored", out)
	}
	if _, ok := e.Selection(); ok {
		t.Error("selecting an empty cell created a selection")
	}

	if out := e.SelectOrMove(0, 0); out != OutcomeSelected {
		t.Fatalf("selecting ball = %v, want selected", out)
	}
	if p, ok := e.Selection(); !ok || p != (Pos{0, 0}) {
		t.Errorf("Selection() = %v, %v", p, ok)
	}
	if e.Phase() != PhaseSelecting {
		t.Errorf("Phase() = %v, want selecting", e.Phase())
	}

	// Re-selecting the same ball keeps exactly one selection.
	before := e.Grid()
	if out := e.SelectOrMove(0, 0); out != OutcomeBlocked {
		t.Errorf("re-selecting = %v, want blocked", out)
	}
	if p, ok := e.Selection(); !ok || p != (Pos{0, 0}) {
		t.Errorf("Selection() after re-select = %v, %v", p, ok)
	}

	// Moving onto another ball is refused and keeps the selection.
	if out := e.SelectOrMove(1, 1); out != OutcomeBlocked {
		t.Errorf("moving onto ball = %v, want blocked", out)
	}
	if p, ok := e.Selection(); !ok || p != (Pos{0, 0}) {
		t.Errorf("Selection() after blocked move = %v, %v", p, ok)
	}
	if !e.Grid().Equal(before) {
		t.Error("blocked move changed the board")
	}
	if r.count("cell") != 0 || r.count("score") != 0 {
		t.Errorf("blocked move emitted %v", r.names())
	}
}

func TestDeselect(t *testing.T) {
	e := newTestEngine(t, 3, 3, 4, DefaultRules())
	restore(t, e, 10,
		[]Kind{1, 0, 0},
		[]Kind{0, 0, 0},
		[]Kind{0, 0, 0},
	)

	if e.Deselect() {
		t.Error("Deselect() with no selection reported true")
	}
	e.SelectOrMove(0, 0)
	r := record(e)
	if !e.Deselect() {
		t.Fatal("Deselect() reported false")
	}
	if _, ok := e.Selection(); ok {
		t.Error("selection still active")
	}
	if len(r.events) != 1 || r.events[0] != (SelectionChanged{Pos: Pos{0, 0}, Active: false}) {
		t.Errorf("Deselect events = %v", r.events)
	}
}

func TestOutOfBoundsIgnored(t *testing.T) {
	e := newTestEngine(t, 3, 3, 4, DefaultRules())
	e.Start()
	r := record(e)
	before := e.Snapshot()

	for _, p := range []Pos{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		if out := e.SelectOrMove(p.X, p.Y); out != OutcomeIgnored {
			t.Errorf("SelectOrMove(%d, %d) = %v, want ignored", p.X, p.Y, out)
		}
		if _, err := e.At(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d, %d) error = %v, want ErrOutOfBounds", p.X, p.Y, err)
		}
	}
	if len(r.events) != 0 {
		t.Errorf("out-of-bounds calls emitted %v", r.names())
	}
	if !e.Grid().Equal(before.Cells) {
		t.Error("out-of-bounds calls changed the board")
	}
}

func TestMoveWithoutLineSpawnsAndPenalizes(t *testing.T) {
	rules := DefaultRules()
	rules.BaseSpawn = 1
	rules.MovePenalty = 2
	e := newTestEngine(t, 3, 1, 3, rules)
	restore(t, e, 10, []Kind{1, 0, 0})
	r := record(e)

	if out := e.SelectOrMove(0, 0); out != OutcomeSelected {
		t.Fatalf("select = %v", out)
	}
	if out := e.SelectOrMove(1, 0); out != OutcomeMoved {
		t.Fatalf("move = %v, want moved", out)
	}

	var cells []CellUpdated
	for _, ev := range r.events {
		if c, ok := ev.(CellUpdated); ok {
			cells = append(cells, c)
		}
	}
	if len(cells) != 3 {
		t.Fatalf("got %d cell updates, want 2 for the move and 1 for the spawn", len(cells))
	}
	if cells[0] != (CellUpdated{X: 1, Y: 0, Kind: 1}) || cells[1] != (CellUpdated{X: 0, Y: 0, Kind: Empty}) {
		t.Errorf("move updates = %v, %v", cells[0], cells[1])
	}
	if cells[2].Kind == Empty || cells[2].X == 1 {
		t.Errorf("spawn update = %v, want a ball on an empty cell", cells[2])
	}

	if k, _ := e.At(1, 0); k != 1 {
		t.Errorf("moved ball at (1, 0) = %d, want 1", k)
	}
	if e.Score() != 8 {
		t.Errorf("Score() = %d, want 8", e.Score())
	}
	if e.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", e.Moves())
	}
	if _, ok := e.Selection(); ok {
		t.Error("selection survived the move")
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", e.Phase())
	}
}

func TestMoveCompletesMergedRun(t *testing.T) {
	e := newTestEngine(t, 5, 2, 4, DefaultRules())
	restore(t, e, 0,
		[]Kind{2, 2, 0, 2, 2},
		[]Kind{0, 0, 2, 0, 0},
	)
	r := record(e)

	e.SelectOrMove(2, 1)
	if out := e.SelectOrMove(2, 0); out != OutcomeCleared {
		t.Fatalf("move = %v, want cleared", out)
	}

	if e.Score() != 5 {
		t.Errorf("Score() = %d, want 5", e.Score())
	}
	if e.Grid().Filled() != 0 {
		t.Errorf("Filled() = %d, want 0 (no spawn after a cut)", e.Grid().Filled())
	}
	if e.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", e.Moves())
	}

	var cut *LinesCut
	for _, ev := range r.events {
		if c, ok := ev.(LinesCut); ok {
			cut = &c
		}
	}
	if cut == nil {
		t.Fatal("no LinesCut event")
	}
	if len(cut.Runs) != 1 || cut.Runs[0].Len != 5 || cut.Removed != 5 {
		t.Errorf("LinesCut = %+v, want one run of 5", *cut)
	}

	names := r.names()
	if names[len(names)-1] != "score" {
		t.Errorf("last event = %s, want score", names[len(names)-1])
	}
}

func TestRemovedCountMatchesClearedCells(t *testing.T) {
	e := newTestEngine(t, 5, 5, 4, DefaultRules())
	restore(t, e, 0,
		[]Kind{0, 0, 3, 0, 0},
		[]Kind{0, 0, 3, 0, 0},
		[]Kind{3, 3, 0, 3, 3},
		[]Kind{0, 0, 3, 0, 0},
		[]Kind{0, 3, 0, 0, 0},
	)
	r := record(e)

	e.SelectOrMove(1, 4)
	e.SelectOrMove(2, 2)

	cleared := 0
	for _, ev := range r.events {
		if c, ok := ev.(CellUpdated); ok && c.Kind == Empty && !(c.X == 1 && c.Y == 4) {
			cleared++
		}
	}
	if cleared != 8 {
		t.Errorf("cleared %d cells, want 8 (cross of 5+4 sharing the center)", cleared)
	}
	if e.Score() != 8 {
		t.Errorf("Score() = %d, want 8", e.Score())
	}
}

func TestNegativeScoreEndsGame(t *testing.T) {
	rules := DefaultRules()
	rules.BaseSpawn = 0
	rules.MovePenalty = 5
	e := newTestEngine(t, 3, 3, 4, rules)
	restore(t, e, 2,
		[]Kind{1, 0, 0},
		[]Kind{0, 0, 0},
		[]Kind{0, 0, 0},
	)
	r := record(e)

	e.SelectOrMove(0, 0)
	e.SelectOrMove(2, 2)

	if e.Phase() != PhaseGameOver || e.GameOverReason() != ReasonNegativeScore {
		t.Fatalf("Phase() = %v, reason %v", e.Phase(), e.GameOverReason())
	}
	if e.Score() != -3 {
		t.Errorf("Score() = %d, want -3", e.Score())
	}
	names := r.names()
	if names[len(names)-1] != "over" || r.count("over") != 1 {
		t.Errorf("events = %v", names)
	}

	r.reset()
	e.SelectOrMove(2, 2)
	e.SelectOrMove(0, 0)
	e.Deselect()
	if len(r.events) != 0 {
		t.Errorf("calls after game over emitted %v", r.names())
	}
}

func TestNegativeScoreAllowedWhenDisabled(t *testing.T) {
	rules := DefaultRules()
	rules.BaseSpawn = 0
	rules.MovePenalty = 5
	rules.EndOnNegativeScore = false
	e := newTestEngine(t, 3, 3, 4, rules)
	restore(t, e, 0,
		[]Kind{1, 0, 0},
		[]Kind{0, 0, 0},
		[]Kind{0, 0, 0},
	)

	e.SelectOrMove(0, 0)
	e.SelectOrMove(1, 0)

	if e.Score() != -5 || e.Phase() != PhaseIdle {
		t.Errorf("Score() = %d, Phase() = %v", e.Score(), e.Phase())
	}
}

func TestSpawnOnFullBoardEndsGameOnce(t *testing.T) {
	rules := DefaultRules()
	rules.BaseSpawn = 4
	rules.MovePenalty = 0
	e := newTestEngine(t, 2, 2, 2, rules)
	restore(t, e, 10,
		[]Kind{1, 0},
		[]Kind{0, 0},
	)
	r := record(e)

	e.SelectOrMove(0, 0)
	if out := e.SelectOrMove(1, 0); out != OutcomeMoved {
		t.Fatalf("move = %v, want moved", out)
	}

	if e.Phase() != PhaseGameOver || e.GameOverReason() != ReasonBoardFull {
		t.Fatalf("Phase() = %v, reason %v", e.Phase(), e.GameOverReason())
	}
	if e.Grid().Filled() != 4 {
		t.Errorf("Filled() = %d, want 4", e.Grid().Filled())
	}
	if r.count("over") != 1 {
		t.Errorf("got %d GameOver events, want 1", r.count("over"))
	}
	names := r.names()
	if names[len(names)-1] != "over" {
		t.Errorf("events after game over: %v", names)
	}
}

func TestSpawnGrowth(t *testing.T) {
	rules := DefaultRules()
	rules.BaseSpawn = 1
	rules.SpawnGrowth = 2
	rules.MovePenalty = 0
	e := newTestEngine(t, 9, 9, 7, rules)
	g := NewGrid(9, 9)
	g[0][0] = 1
	restore(t, e, 10, g...)

	if e.NextBatch() != 3 {
		t.Errorf("NextBatch() = %d, want 3", e.NextBatch())
	}
	e.SelectOrMove(0, 0)
	if out := e.SelectOrMove(8, 8); out != OutcomeMoved {
		t.Fatalf("move = %v, want moved", out)
	}
	if got := e.Grid().Filled(); got != 4 {
		t.Errorf("Filled() = %d, want 1 moved + 3 spawned", got)
	}
	if e.NextBatch() != 5 {
		t.Errorf("NextBatch() = %d, want 5", e.NextBatch())
	}
}

func TestRestoreValidation(t *testing.T) {
	e := newTestEngine(t, 3, 2, 4, DefaultRules())

	err := e.Restore(Position{Cells: Grid{{0, 0, 0}, {0, 4, 0}}})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("kind 4 on a 4-kind board: error = %v, want ErrInvalidKind", err)
	}
	err = e.Restore(Position{Cells: Grid{{0, 0, 0}, {0, -1, 0}}})
	if !errors.Is(err, ErrInvalidKind) {
		t.Errorf("negative kind: error = %v, want ErrInvalidKind", err)
	}
	err = e.Restore(Position{Cells: Grid{{0, 0, 0}}})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("wrong row count: error = %v, want ErrInvalidConfiguration", err)
	}
	err = e.Restore(Position{Cells: Grid{{0, 0, 0}, {0, 0}}})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("ragged rows: error = %v, want ErrInvalidConfiguration", err)
	}
	if e.Phase() != PhaseNotStarted {
		t.Errorf("failed Restore changed phase to %v", e.Phase())
	}
}

func TestListenerReentryIgnored(t *testing.T) {
	e := newTestEngine(t, 3, 3, 4, DefaultRules())
	restore(t, e, 10,
		[]Kind{1, 0, 0},
		[]Kind{0, 0, 0},
		[]Kind{0, 0, 0},
	)

	var nested []Outcome
	e.Subscribe(func(ev Event) {
		if _, ok := ev.(SelectionChanged); ok {
			nested = append(nested, e.SelectOrMove(2, 2))
		}
	})

	e.SelectOrMove(0, 0)
	if len(nested) != 1 || nested[0] != OutcomeIgnored {
		t.Errorf("nested SelectOrMove outcomes = %v, want [ignored]", nested)
	}
	if p, ok := e.Selection(); !ok || p != (Pos{0, 0}) {
		t.Errorf("Selection() = %v, %v", p, ok)
	}
}

func TestUnsubscribe(t *testing.T) {
	e := newTestEngine(t, 3, 3, 4, DefaultRules())
	calls := 0
	unsubscribe := e.Subscribe(func(Event) { calls++ })
	e.Start()
	if calls == 0 {
		t.Fatal("listener not called")
	}

	unsubscribe()
	calls = 0
	e.Start()
	if calls != 0 {
		t.Errorf("listener called %d times after unsubscribe", calls)
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		e, err := New(Config{Columns: 9, Rows: 9, Kinds: 7, Rules: DefaultRules(), Seed: 7})
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		e.Start()
		clicks := rand.New(rand.NewSource(99))
		for i := 0; i < 400; i++ {
			e.SelectOrMove(clicks.Intn(9), clicks.Intn(9))
		}
		return e.Snapshot()
	}

	s1, s2 := play(), play()
	if !s1.Cells.Equal(s2.Cells) {
		t.Error("boards differ for the same seed and input")
	}
	if s1.Score != s2.Score || s1.Moves != s2.Moves || s1.Phase != s2.Phase {
		t.Errorf("state differs: %+v vs %+v", s1, s2)
	}
}

// TestRandomPlayInvariants drives many rounds with random clicks and checks
// the board invariants against a mirror fed only by events.
func TestRandomPlayInvariants(t *testing.T) {
	rules := DefaultRules()
	rules.SpawnGrowth = 1
	e, err := New(Config{Columns: 6, Rows: 6, Kinds: 5, Rules: rules, Seed: 3})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	mirror := NewGrid(6, 6)
	overs := 0
	afterOver := 0
	e.Subscribe(func(ev Event) {
		switch ev := ev.(type) {
		case CellUpdated:
			if overs > 0 {
				afterOver++
			}
			if ev.Kind < Empty || int(ev.Kind) >= 5 {
				t.Errorf("cell (%d, %d) set to invalid kind %d", ev.X, ev.Y, ev.Kind)
			}
			if ev.Kind != Empty && mirror[ev.Y][ev.X] != Empty {
				t.Errorf("ball placed on occupied cell (%d, %d)", ev.X, ev.Y)
			}
			mirror[ev.Y][ev.X] = ev.Kind
		case GameOver:
			overs++
		case GameReset:
			overs = 0
			afterOver = 0
		}
	})

	clicks := rand.New(rand.NewSource(11))
	for round := 0; round < 20; round++ {
		e.Start()
		for i := 0; i < 500 && e.Phase() != PhaseGameOver; i++ {
			score := e.Score()
			out := e.SelectOrMove(clicks.Intn(6), clicks.Intn(6))
			if out == OutcomeMoved && e.Score() != score-rules.MovePenalty {
				t.Fatalf("moved: score %d -> %d", score, e.Score())
			}
			if out == OutcomeCleared && e.Score() <= score {
				t.Fatalf("cleared: score %d -> %d", score, e.Score())
			}
		}
		for i := 0; i < 10; i++ {
			e.SelectOrMove(clicks.Intn(6), clicks.Intn(6))
		}

		if !mirror.Equal(e.Grid()) {
			t.Fatalf("round %d: mirror diverged from engine", round)
		}
		if overs > 1 {
			t.Errorf("round %d: %d GameOver events", round, overs)
		}
		if afterOver > 0 {
			t.Errorf("round %d: %d cell updates after game over", round, afterOver)
		}
	}
}
