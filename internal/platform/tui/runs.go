package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// Runs board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show level list sidebar
	sidebarWidth       = 22  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load
)

// RunLister loads the fastest runs of a level. *storage.Store implements it.
type RunLister interface {
	BestRuns(levelID string, limit int) ([]storage.Run, error)
}

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the best-runs board.
type RunsModel struct {
	levels      []registry.GameInfo
	levelCursor int
	source      RunLister
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewRunsModel creates a new runs board opened on startLevel, or on the
// first level when startLevel is empty or unknown.
func NewRunsModel(source RunLister, width, height int, startLevel string) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		levels:      registry.List(),
		source:      source,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	for i, l := range m.levels {
		if l.ID == startLevel {
			m.levelCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.levels) > 0 {
		m.loadRuns(m.levels[m.levelCursor].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Time", Width: 10},
		{Title: "Distance", Width: 10},
		{Title: "Date", Width: 14},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare width to the date column
	if tableWidth > 48 {
		columns[3].Width = min(tableWidth-32, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
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

// loadRuns loads the fastest runs for the given level.
func (m *RunsModel) loadRuns(levelID string) {
	m.runs = nil
	if m.source != nil {
		if runs, err := m.source.BestRuns(levelID, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.2fs", r.Duration.Seconds()),
			fmt.Sprintf("%.1f", r.Distance),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the runs board.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel), key.Matches(msg, m.keys.Right):
			m.shiftLevel(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel), key.Matches(msg, m.keys.Left):
			m.shiftLevel(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// shiftLevel moves the level cursor by delta, wrapping around.
func (m *RunsModel) shiftLevel(delta int) {
	n := len(m.levels)
	if n == 0 {
		return
	}
	m.levelCursor = ((m.levelCursor+delta)%n + n) % n
	m.loadRuns(m.levels[m.levelCursor].ID)
}

// CurrentLevel returns the ID of the level on display.
func (m RunsModel) CurrentLevel() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.levelCursor].ID
}

// View renders the runs board.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST RUNS"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("BEST RUNS - %s", m.levels[m.levelCursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for level selection.
func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, l := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(l.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with the current level above the table.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.levels) > 0 {
		activeStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
		tab := fmt.Sprintf("< %s >", activeStyle.Render(m.levels[m.levelCursor].Title))
		b.WriteString(centerText(tab, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nReach the goal to set a time!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// RunRunsBoard runs the best-runs screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRunsBoard(store *storage.Store, width, height int, startLevel string) (goBack bool, err error) {
	var source RunLister
	if store != nil {
		source = store
	}
	model := NewRunsModel(source, width, height, startLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
