package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// BestTimer looks up the fastest run of a level. *storage.Store implements it.
type BestTimer interface {
	BestTime(levelID string) (time.Duration, bool, error)
}

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID string
	Title   string
	Best    time.Duration // zero when never finished
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects a level
	openRuns  bool      // True if user pressed Tab for the runs board
}

// NewMenuModel creates a new menu model over every registered level.
// A nil best skips the best-time column.
func NewMenuModel(best BestTimer, cfg core.RuntimeConfig) MenuModel {
	levels := registry.List()
	items := make([]MenuItem, 0, len(levels))

	for _, l := range levels {
		item := MenuItem{LevelID: l.ID, Title: l.Title}
		if best != nil {
			if d, ok, err := best.BestTime(l.ID); err == nil && ok {
				item.Best = d
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the level
		}

	case MenuActionRuns:
		m.openRuns = true
		return m, tea.Quit // Exit menu to show the runs board
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  M A Z E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := "--"
		if item.Best > 0 {
			best = fmt.Sprintf("%.2fs", item.Best.Seconds())
		}

		line := fmt.Sprintf("%s%-24s %8s", cursor, item.Title, best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the runs board.
func (m MenuModel) WantsRuns() bool {
	return m.openRuns
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring escape codes.
func centerText(text string, width int) string {
	visible := lipgloss.Width(text)
	if visible >= width {
		return text
	}
	padding := (width - visible) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID   string
	Config    core.RuntimeConfig
	WantsRuns bool
	Quit      bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	var best BestTimer
	if store != nil {
		best = store
	}
	model := NewMenuModel(best, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsRuns():
		result.WantsRuns = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().LevelID
	default:
		result.Quit = true
	}

	return result, nil
}
