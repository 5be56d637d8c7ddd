package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/logging"
	"github.com/vovakirdan/tui-lines/internal/records"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// recordsUser is implemented by games that track their own records.
type recordsUser interface {
	UseRecords(saver records.Saver, best int, logger *log.Logger)
}

// resizer is implemented by games that can relayout without a restart.
type resizer interface {
	Resize(w, h int)
}

// Model runs one registered game: it batches keys and clicks into an
// InputFrame, steps the game on every tick and paints its Screen.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	logger  *log.Logger
	config  core.RuntimeConfig
	keys    *KeyMapper
	input   core.InputFrame
	state   core.GameState
	shotDir string // "" means ~/.arcade/screenshots

	inSession  bool // Back returns to the session menu
	quitting   bool
	backToMenu bool
}

// NewModel prepares a game for the terminal. A zero seed is replaced by
// the current time. store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	cfg = cfg.WithDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	connectRecords(game, store, logger)

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		logger: logger,
		config: cfg,
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
	}
}

// connectRecords hands the store and the stored best to games that
// record their own rounds.
func connectRecords(game registry.Game, store *storage.Store, logger *log.Logger) {
	ru, ok := game.(recordsUser)
	if !ok {
		return
	}
	if store == nil {
		ru.UseRecords(nil, 0, logger)
		return
	}
	best, err := store.HighScore(game.ID())
	if err != nil {
		logger.Warn("could not read best score", "game", game.ID(), "err", err)
	}
	ru.UseRecords(store, best, logger)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Keys().Screenshot) {
			m.capture()
			return m, nil
		}
		if m.keys.MapKeyToFrame(msg, &m.input) {
			m.quitting = true
			return m, tea.Quit
		}
		// Leaving mid-move would drop the round, so Back waits for a pause or game over
		if m.inSession && m.input.Has(core.ActionBack) && (m.state.GameOver || m.state.Paused) {
			m.backToMenu = true
		}

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.input)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case TickMsg:
		m.step()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

func (m *Model) resize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)

	if r, ok := m.game.(resizer); ok {
		r.Resize(w, h)
		return
	}
	if !m.state.GameOver {
		m.game.Reset(m.config)
	}
}

// step feeds the frame gathered since the last tick to the game.
func (m *Model) step() {
	wasOver := m.state.GameOver
	m.state = m.game.Step(m.input).State
	m.input.Clear()

	if m.state.GameOver && !wasOver {
		m.logger.Info("game over", "game", m.game.ID(), "score", m.state.Score, "peak", m.state.Peak)
	}
}

// capture writes the current frame to a text file.
func (m *Model) capture() {
	dir := m.shotDir
	if dir == "" {
		d, err := screenshotDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "err", err)
			return
		}
		dir = d
	}

	m.game.Render(m.screen)
	path, err := saveScreenshot(dir, m.game.ID(), m.screen, time.Now())
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Run plays game in the alternate screen until the user quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, logger, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
