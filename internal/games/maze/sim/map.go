// Package sim is the first-person movement and collision core of the maze.
// It turns held movement intents and a view direction into a damped
// velocity, and resolves each frame's displacement against the wall boxes
// one axis at a time so the player slides along walls.
//
// Nothing in here renders, reads input devices or logs; the platform feeds
// frame times and events in and reads positions back out.
package sim

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned while building a map.
var (
	ErrMalformedMap = errors.New("malformed map")
	ErrInvalidCell  = errors.New("invalid cell")
	ErrOutOfBounds  = errors.New("cell out of bounds")
)

// Cell is the kind of a single grid square.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// String returns the glyph used in level files.
func (c Cell) String() string {
	if c == Wall {
		return "#"
	}
	return "."
}

// Map is a static, rectangular grid of cells.
// Row index runs along world Z (depth), column index along world X (width).
type Map struct {
	cells [][]Cell
	cols  int
}

// NewMap validates and copies a grid.
// Every row must have the same, non-zero length.
func NewMap(grid [][]Cell) (*Map, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedMap)
	}

	cols := len(grid[0])
	cells := make([][]Cell, len(grid))
	for row, line := range grid {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformedMap, row, len(line), cols)
		}
		cells[row] = append([]Cell(nil), line...)
	}

	return &Map{cells: cells, cols: cols}, nil
}

// ParseRows builds a map from text rows.
// '#' and '1' are walls; '.', '0' and ' ' are open.
func ParseRows(rows []string) (*Map, error) {
	grid := make([][]Cell, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		grid[r] = make([]Cell, len(runes))
		for c, ch := range runes {
			switch ch {
			case '#', '1':
				grid[r][c] = Wall
			case '.', '0', ' ':
				grid[r][c] = Open
			default:
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrInvalidCell, ch, r, c)
			}
		}
	}
	return NewMap(grid)
}

// ReferenceMap returns the 6x8 reference maze.
func ReferenceMap() *Map {
	m, err := NewMap([][]Cell{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1, 0, 0, 1},
		{1, 0, 1, 0, 0, 0, 1, 1},
		{1, 0, 1, 1, 1, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	})
	if err != nil {
		panic(err)
	}
	return m
}

// Rows returns the number of rows (depth).
func (m *Map) Rows() int {
	return len(m.cells)
}

// Cols returns the number of columns (width).
func (m *Map) Cols() int {
	return m.cols
}

// InBounds reports whether (col, row) lies on the grid.
func (m *Map) InBounds(col, row int) bool {
	return row >= 0 && row < len(m.cells) && col >= 0 && col < m.cols
}

// At returns the cell at (col, row). Cells off the grid read as Wall.
func (m *Map) At(col, row int) Cell {
	if !m.InBounds(col, row) {
		return Wall
	}
	return m.cells[row][col]
}

// IsOpen reports whether (col, row) is on the grid and open.
func (m *Map) IsOpen(col, row int) bool {
	return m.InBounds(col, row) && m.cells[row][col] == Open
}

// CellAt returns the grid cell whose square contains world point (x, z).
// Cell (c, r) is centered on (c, r) and spans half a unit each way.
func (m *Map) CellAt(x, z float64) (col, row int) {
	return roundHalfUp(x), roundHalfUp(z)
}

// WallCount returns the number of wall cells.
func (m *Map) WallCount() int {
	n := 0
	for _, line := range m.cells {
		for _, c := range line {
			if c == Wall {
				n++
			}
		}
	}
	return n
}

// Strings returns the map as text rows in the level-file alphabet.
func (m *Map) Strings() []string {
	out := make([]string, len(m.cells))
	for r, line := range m.cells {
		b := make([]byte, len(line))
		for c, cell := range line {
			b[c] = cell.String()[0]
		}
		out[r] = string(b)
	}
	return out
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
