package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// MenuItem is one board on the picker.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
	Best    int
	Rounds  int
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(34)
	menuActiveCardStyle = menuCardStyle.
				BorderForeground(lipgloss.Color("57")).
				Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the board picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	picked   *MenuItem
	records  bool // Tab pressed
	quitting bool
}

// NewMenuModel lists the registered boards with their stored records.
// store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title, Summary: registry.Summary(g.ID)}
		if store != nil {
			if stats, err := store.GetGameStats(g.ID); err == nil {
				item.Best = stats.HighScore
				item.Rounds = stats.GamesCount
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			if len(m.items) == 0 {
				return m, nil
			}
			item := m.items[m.cursor]
			m.picked = &item
			return m, tea.Quit
		case MenuActionScoreboard:
			m.records = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L I N E S"), width))
	b.WriteString("\n")
	b.WriteString(centerText(ballStrip(core.PaletteSize()), width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuDimStyle.Render("No boards registered."), width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		style := menuCardStyle
		if i == m.cursor {
			style = menuActiveCardStyle
		}
		for _, line := range strings.Split(style.Render(item.card()), "\n") {
			b.WriteString(centerText(line, width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: Choose  Enter: Play  Tab: Records  Q: Quit"), width))
	b.WriteString("\n")

	return b.String()
}

// card returns the text inside a board's menu card.
func (it MenuItem) card() string {
	lines := []string{menuTitleStyle.Render(it.Title)}
	if it.Summary != "" {
		lines = append(lines, it.Summary)
	}
	if it.Rounds > 0 {
		lines = append(lines, menuDimStyle.Render(fmt.Sprintf("best %d over %d rounds", it.Best, it.Rounds)))
	} else {
		lines = append(lines, menuDimStyle.Render("no rounds yet"))
	}
	return strings.Join(lines, "\n")
}

// Items returns the boards shown on the menu.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// Selected returns the picked board, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.picked
}

// IsQuitting reports whether the user quit from the menu.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the records screen.
func (m MenuModel) WantsScoreboard() bool {
	return m.records
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// MenuResult is what the menu decided when it exited.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.records:
		res.WantsScoreboard = true
	case m.picked != nil:
		res.GameID = m.picked.GameID
	default:
		res.Quit = true
	}
	return res
}

// RunMenu shows the board picker until the user chooses something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
