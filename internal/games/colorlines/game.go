// Package colorlines wires the Lines engine into the arcade platform:
// it owns a view cache fed by engine events, a keyboard cursor, mouse
// hit-testing and the terminal rendering of the board.
package colorlines

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/logging"
	"github.com/vovakirdan/tui-lines/internal/records"
	"github.com/vovakirdan/tui-lines/internal/registry"
)

// Mode selects the board preset.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeMini    Mode = "mini"
)

// messageTicks is how long a status message stays in the HUD.
const messageTicks = 45

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game implements registry.Game for Lines.
type Game struct {
	mode  Mode
	fixed *config.LinesConfig // Skips config loading when set
	cfg   config.LinesConfig

	engine  *lines.Engine
	view    *Display
	tracker *records.Tracker
	saver   records.Saver
	best    int
	logger  *log.Logger

	tick      uint64
	cursor    core.Point
	layout    layout
	screenW   int
	screenH   int
	tooSmall  bool
	paused    bool
	showRules bool
	message   string
	msgTicks  int
}

// New creates a classic 9x9 game.
func New() *Game {
	return &Game{mode: ModeClassic, view: NewDisplay(), logger: logging.Discard()}
}

// NewMini creates a small-board game.
func NewMini() *Game {
	return &Game{mode: ModeMini, view: NewDisplay(), logger: logging.Discard()}
}

// NewWithConfig creates a game that uses cfg instead of loading configuration.
func NewWithConfig(mode Mode, cfg config.LinesConfig) *Game {
	g := &Game{mode: mode, view: NewDisplay(), logger: logging.Discard()}
	g.fixed = &cfg
	return g
}

func init() {
	registry.Register("lines", func() registry.Game {
		return New()
	})
	registry.Register("lines_mini", func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMini {
		return "lines_mini"
	}
	return "lines"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMini {
		return "Lines (Mini)"
	}
	return "Lines"
}

// Controls returns the one-line key summary shown under the board.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move  Space: Select  Esc: Drop  ?: Rules  R: Restart  Q: Quit"
}

// Summary describes the board and spawn rules the next round will use.
func (g *Game) Summary() string {
	cfg := g.loadConfig()
	board := cfg.Board
	if g.mode == ModeMini {
		board = cfg.Mini
	}
	return fmt.Sprintf("%dx%d, %d colours, %d per miss", board.Columns, board.Rows, board.Colors, cfg.Rules.BaseSpawn)
}

// UseRecords connects the game to persistent records. best seeds the
// all-time best shown in the HUD. Must be called before Reset.
func (g *Game) UseRecords(saver records.Saver, best int, logger *log.Logger) {
	g.saver = saver
	g.best = best
	if logger != nil {
		g.logger = logger
	}
	g.tracker = nil
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *lines.Engine {
	return g.engine
}

// Reset loads configuration and starts a fresh round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.tick = 0
	g.paused = false
	g.showRules = false
	g.message = ""
	g.msgTicks = 0

	engineCfg := g.engineConfig(cfg.Seed)
	engine, err := lines.New(engineCfg)
	if err != nil {
		g.logger.Error("invalid lines configuration, using defaults", "err", err)
		def := lines.DefaultConfig()
		def.Seed = cfg.Seed
		engine, _ = lines.New(def)
		g.say("Bad config, using defaults")
	}

	if g.tracker == nil {
		g.tracker = records.NewTracker(g.ID(), g.saver, g.best, g.logger)
	}
	g.engine = engine
	g.view.Attach(engine)
	g.tracker.Attach(engine)

	c := engine.Config()
	g.cursor = g.board().Center()
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	engine.Start()
	g.logger.Debug("round started", "game", g.ID(), "columns", c.Columns, "rows", c.Rows, "seed", c.Seed)
}

func (g *Game) loadConfig() config.LinesConfig {
	if g.fixed != nil {
		return *g.fixed
	}
	cfg, err := config.LoadLines(configPath)
	if err != nil {
		g.logger.Warn("could not load config", "path", configPath, "err", err)
		cfg = config.DefaultLinesConfig()
	}
	if difficultyPreset != "" {
		config.ApplyLinesPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// engineConfig converts the loaded YAML config for the current mode.
func (g *Game) engineConfig(seed int64) lines.Config {
	board := g.cfg.Board
	if g.mode == ModeMini {
		board = g.cfg.Mini
	}
	return g.cfg.Engine(board, seed)
}

// Resize recomputes the layout without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.engine == nil {
		return
	}
	c := g.engine.Config()
	g.layout = newLayout(c.Columns, c.Rows, w, h)
	g.tooSmall = !g.layout.fits(w, h)
}

// Step applies one frame of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.view.Tick()
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}

	if g.tooSmall || g.engine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRules) {
		g.showRules = !g.showRules
	}
	if g.showRules {
		if in.Has(core.ActionBack) || in.Has(core.ActionDeselect) {
			g.showRules = false
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.engine.Phase() == lines.PhaseGameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionDeselect) {
		g.engine.Deselect()
	}
	if in.Has(core.ActionSelect) {
		g.act(g.cursor.X, g.cursor.Y)
	}
	for _, c := range in.Clicks {
		if x, y, ok := g.layout.CellAt(c.X, c.Y); ok {
			g.cursor = core.Point{X: x, Y: y}
			g.act(x, y)
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.paused = false
	g.engine.Start()
	g.say("New round")
}

func (g *Game) moveCursor(in core.InputFrame) {
	g.cursor = g.board().ClampPoint(g.cursor.Add(in.Direction()))
}

// board is the cell-coordinate rectangle of the current engine.
func (g *Game) board() core.Rect {
	c := g.engine.Config()
	return core.NewRect(0, 0, c.Columns, c.Rows)
}

func (g *Game) act(x, y int) {
	switch g.engine.SelectOrMove(x, y) {
	case lines.OutcomeBlocked:
		g.say("Cell taken")
	case lines.OutcomeCleared:
		g.say(clearMessage(g.view.LastCut()))
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgTicks = messageTicks
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Phase() == lines.PhaseGameOver,
		Paused:   g.paused,
	}
	if g.tracker != nil {
		st.Peak = g.tracker.Peak()
	}
	return st
}

// Best returns the all-time best including the current round.
func (g *Game) Best() int {
	if g.tracker == nil {
		return g.best
	}
	return g.tracker.Best()
}

// Cursor returns the keyboard cursor cell.
func (g *Game) Cursor() core.Point {
	return g.cursor
}

// CellAt maps a screen position to a board cell.
func (g *Game) CellAt(sx, sy int) (x, y int, ok bool) {
	return g.layout.CellAt(sx, sy)
}
