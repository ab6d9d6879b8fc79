package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// palette maps cell roles to ANSI 256-color codes.
var palette = map[core.Color]string{
	core.ColorWall:   "4",
	core.ColorGoal:   "10",
	core.ColorPlayer: "11",
	core.ColorHUD:    "15",
	core.ColorHint:   "245",
	core.ColorTitle:  "11",
}

// ScreenRenderer turns screen buffers into styled strings for one output.
// SSH sessions each get their own so color detection follows the client
// terminal rather than the server's.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewScreenRenderer builds styles for r. A nil r uses the default renderer.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	sr := &ScreenRenderer{
		styles: make(map[core.Color]lipgloss.Style, len(palette)),
		plain:  r.NewStyle(),
	}
	for c, code := range palette {
		sr.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return sr
}

// Render converts a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(sr.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

func (sr *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if st, ok := sr.styles[c]; ok {
		return st
	}
	return sr.plain
}

var defaultScreenRenderer = NewScreenRenderer(nil)

// RenderScreen renders with the process-wide default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultScreenRenderer.Render(s)
}
