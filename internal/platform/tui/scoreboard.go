package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// recordsLimit caps the rows loaded per board.
const recordsLimit = 100

// recordsOrder selects which rounds the table lists.
type recordsOrder int

const (
	orderBest recordsOrder = iota
	orderRecent
)

func (o recordsOrder) String() string {
	if o == orderRecent {
		return "most recent"
	}
	return "best peak"
}

// RecordsKeyMap holds the records screen bindings.
type RecordsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Order    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextGame, k.Order, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextGame, k.PrevGame, k.Order},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns the default records bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next board")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev board")),
		Order:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "best/recent")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	recordsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	recordsDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	recordsTabStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	recordsActiveTab  = lipgloss.NewStyle().Padding(0, 1).Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
	recordsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel shows stored rounds for one board at a time.
type ScoreboardModel struct {
	store *storage.Store
	games []registry.GameInfo
	board int
	order recordsOrder

	entries []storage.ScoreEntry
	stats   *storage.GameStats

	table table.Model
	help  help.Model
	keys  RecordsKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the records screen on the first board.
// store may be nil, in which case every board shows as empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		keys:   DefaultRecordsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newRecordsTable(height)
	m.reload()
	return m
}

func newRecordsTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Peak", Width: 6},
			{Title: "Final", Width: 6},
			{Title: "Moves", Width: 6},
			{Title: "Ended", Width: 16},
			{Title: "When", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// GameID returns the board currently shown, or "".
func (m ScoreboardModel) GameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.board].ID
}

// reload fetches the current board's rows in the current order.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats = nil, nil
	if id := m.GameID(); id != "" && m.store != nil {
		var err error
		if m.order == orderRecent {
			m.entries, err = m.store.RecentRounds(id, recordsLimit)
		} else {
			m.entries, err = m.store.TopScores(id, recordsLimit)
		}
		if err != nil {
			m.entries = nil
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		ended := e.Reason
		if ended == "" {
			ended = "-"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Final),
			strconv.Itoa(e.Moves),
			ended,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Rows returns the entries currently listed.
func (m ScoreboardModel) Rows() []storage.ScoreEntry {
	return m.entries
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.switchBoard(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.switchBoard(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-12, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchBoard(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.board = (m.board + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(recordsTitleStyle.Render("R E C O R D S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	for _, line := range strings.Split(recordsBoxStyle.Render(m.body()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(recordsDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.board {
			tabs[i] = recordsActiveTab.Render(g.Title)
		} else {
			tabs[i] = recordsTabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// body is the table with its summary line, or a placeholder.
func (m ScoreboardModel) body() string {
	if len(m.entries) == 0 {
		return recordsDimStyle.Italic(true).Padding(1, 4).
			Render("No records yet.\nFinish a round above zero to set one!")
	}

	summary := fmt.Sprintf("sorted by %s", m.order)
	if m.stats != nil {
		summary = fmt.Sprintf("best %d  %d rounds  avg %.1f  %d moves  %s",
			m.stats.HighScore, m.stats.GamesCount, m.stats.AvgScore, m.stats.TotalMoves, summary)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), "", recordsDimStyle.Render(summary))
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user quit from the records screen.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the records screen. goBack is true when the user
// returned to the menu instead of quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
