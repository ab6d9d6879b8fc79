package maze

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Visual characters for rendering
const (
	WallChar  = '█'
	GoalChar  = '◎'
	FloorChar = ' '
)

// headingGlyphs are indexed by screen angle in 45 degree steps, starting
// at +X (right) and turning toward +Z (down the screen).
var headingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Minimum terminal size that fits the HUD and some of the map.
const (
	minScreenW = 24
	minScreenH = 6
)

// Render draws a top-down view of the maze, scrolled to keep the player
// visible, with a HUD line on top and the controls at the bottom.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorHint)
		return
	}

	const mapTop = 1
	viewH := h - 2
	cw := g.cfg.View.CellWidth
	if cw < 1 {
		cw = 1
	}

	m := g.level.Map
	pos := g.Position()
	ox := viewOrigin(m.Cols()*cw, w, (pos.X+0.5)*float64(cw))
	oy := viewOrigin(m.Rows(), viewH, pos.Z+0.5)

	for row := 0; row < m.Rows(); row++ {
		sy := mapTop + oy + row
		if sy < mapTop || sy >= mapTop+viewH {
			continue
		}
		for col := 0; col < m.Cols(); col++ {
			sx := ox + col*cw
			switch {
			case !m.IsOpen(col, row):
				for i := 0; i < cw; i++ {
					dst.SetColored(sx+i, sy, WallChar, core.ColorWall)
				}
			case g.isGoal(col, row):
				dst.SetColored(sx, sy, GoalChar, core.ColorGoal)
			default:
				for i := 0; i < cw; i++ {
					dst.Set(sx+i, sy, FloorChar)
				}
			}
		}
	}

	px := ox + int(math.Floor((pos.X+0.5)*float64(cw)))
	py := mapTop + oy + int(math.Floor(pos.Z+0.5))
	if py >= mapTop && py < mapTop+viewH {
		dst.SetColored(px, py, headingGlyph(g.Yaw()), core.ColorPlayer)
	}

	g.drawHUD(dst)

	switch {
	case g.finished:
		g.drawCenteredMessage(dst, "GOAL REACHED",
			fmt.Sprintf("Time %s  |  R to restart, B for menu", formatElapsed(g.elapsed)))
	case !g.State().Locked:
		g.drawCenteredMessage(dst, g.Title(), "Press Enter or click to start")
	}
}

// drawHUD draws the status line and the controls line.
func (g *Game) drawHUD(dst *core.Screen) {
	pos := g.Position()
	status := fmt.Sprintf(" %s  pos %.2f,%.2f  speed %.2f  time %s  dist %.1f ",
		g.Title(), pos.X, pos.Z, g.Speed(), formatElapsed(g.elapsed), g.distance)
	dst.DrawTextColored(0, 0, status, core.ColorHUD)

	help := " WASD move  ,/. turn  Enter start  Esc release  R restart  B menu  Q quit"
	dst.DrawTextColored(0, dst.Height()-1, help, core.ColorHint)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))

	// Calculate box dimensions
	boxW := min(max(titleLen, subLen)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorTitle)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}

func (g *Game) isGoal(col, row int) bool {
	return g.level.Goal != nil && g.level.Goal.Col == col && g.level.Goal.Row == row
}

// viewOrigin returns the screen offset of content coordinate 0 along one
// axis. Content that fits is centered; larger content scrolls to keep
// focus in the middle without showing space past either edge.
func viewOrigin(content, avail int, focus float64) int {
	if content <= avail {
		return (avail - content) / 2
	}
	off := avail/2 - int(math.Floor(focus))
	return core.Clamp(off, avail-content, 0)
}

// headingGlyph picks the arrow closest to the view direction on the map.
func headingGlyph(yaw float64) rune {
	fx, fz := -math.Sin(yaw), -math.Cos(yaw)
	idx := int(math.Round(math.Atan2(fz, fx) / (math.Pi / 4)))
	return headingGlyphs[((idx%8)+8)%8]
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
