package core

import "strings"

// Cell is a single screen position: a rune and its color role.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a character buffer the maze draws into and the platform
// turns into terminal output. Writes outside the buffer are dropped.
type Screen struct {
	width, height int
	cells         []Cell // row-major
}

// NewScreen creates a blank screen. Negative sizes count as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if s.cells != nil && width == s.width && height == s.height {
		return
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = blankCell
	}
	for y := range min(height, s.height) {
		copy(cells[y*width:y*width+min(width, s.width)], s.cells[y*s.width:])
	}

	s.width, s.height, s.cells = width, height, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Set places an uncolored rune.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a rune with a color role.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes uncolored text starting at (x, y), clipped at the edges.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text in one color role.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColored(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawTextColored(x, y, text, c)
}

// DrawRect fills r with a rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox outlines r with box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	if r.Empty() {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, bottom, '─')
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│')
		s.Set(right, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(right, r.Y, '┐')
	s.Set(r.X, bottom, '└')
	s.Set(right, bottom, '┘')
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := range s.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range s.cells[y*s.width : (y+1)*s.width] {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
