package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func TestNewMapRejectsRaggedGrid(t *testing.T) {
	tests := []struct {
		name string
		grid [][]Cell
	}{
		{"empty", nil},
		{"empty row", [][]Cell{{}}},
		{"short middle row", [][]Cell{{1, 1, 1}, {1, 0}, {1, 1, 1}}},
		{"long last row", [][]Cell{{1, 1}, {1, 1, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMap(tc.grid)
			if !errors.Is(err, ErrMalformedMap) {
				t.Errorf("NewMap() error = %v, expected ErrMalformedMap", err)
			}
			if m != nil {
				t.Error("NewMap() should not return a map on error")
			}
		})
	}
}

func TestNewMapCopiesGrid(t *testing.T) {
	grid := [][]Cell{{1, 1}, {0, 1}}
	m, err := NewMap(grid)
	if err != nil {
		t.Fatalf("NewMap() failed: %v", err)
	}

	grid[1][0] = Wall
	if m.At(0, 1) != Open {
		t.Error("Map should not alias the caller's grid")
	}
}

func TestParseRows(t *testing.T) {
	m, err := ParseRows([]string{
		"####",
		"#. #",
		"#01#",
		"####",
	})
	if err != nil {
		t.Fatalf("ParseRows() failed: %v", err)
	}

	if m.Rows() != 4 || m.Cols() != 4 {
		t.Errorf("Size = %dx%d, expected 4x4", m.Cols(), m.Rows())
	}
	if !m.IsOpen(1, 1) || !m.IsOpen(2, 1) || !m.IsOpen(1, 2) {
		t.Error("'.', ' ' and '0' should be open")
	}
	if m.At(2, 2) != Wall {
		t.Error("'1' should be a wall")
	}

	if _, err := ParseRows([]string{"#x#"}); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Unknown glyph error = %v, expected ErrInvalidCell", err)
	}
	if _, err := ParseRows([]string{"###", "##"}); !errors.Is(err, ErrMalformedMap) {
		t.Errorf("Ragged rows error = %v, expected ErrMalformedMap", err)
	}
}

func TestReferenceMap(t *testing.T) {
	m := ReferenceMap()

	if m.Rows() != 6 || m.Cols() != 8 {
		t.Fatalf("Reference map is %dx%d, expected 8x6", m.Cols(), m.Rows())
	}
	if m.WallCount() != 31 {
		t.Errorf("WallCount() = %d, expected 31", m.WallCount())
	}
	if !m.IsOpen(1, 1) {
		t.Error("Cell (1,1) should be open")
	}
	if m.At(-1, 0) != Wall || m.At(8, 0) != Wall {
		t.Error("Off-grid cells should read as walls")
	}

	rows := m.Strings()
	if rows[1] != "#...#..#" {
		t.Errorf("Strings()[1] = %q, expected %q", rows[1], "#...#..#")
	}
}

func TestCellAt(t *testing.T) {
	m := ReferenceMap()

	tests := []struct {
		x, z     float64
		col, row int
	}{
		{1, 1, 1, 1},
		{1.49, 0.51, 1, 1},
		{1.5, 1.5, 2, 2},
		{-0.4, 0, 0, 0},
	}

	for _, tc := range tests {
		col, row := m.CellAt(tc.x, tc.z)
		if col != tc.col || row != tc.row {
			t.Errorf("CellAt(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.z, col, row, tc.col, tc.row)
		}
	}
}

func TestBuildVolumes(t *testing.T) {
	m := ReferenceMap()
	vols := BuildVolumes(m, DefaultWallSize)

	if vols.Len() != m.WallCount() {
		t.Fatalf("Len() = %d, expected one box per wall (%d)", vols.Len(), m.WallCount())
	}

	// First wall is (col 0, row 0).
	first := vols.Boxes()[0]
	want := core.AABB{Min: core.V3(-0.5, 0, -0.5), Max: core.V3(0.5, 2, 0.5)}
	if first != want {
		t.Errorf("First box = %+v, expected %+v", first, want)
	}

	// Every box stands on the floor and is 1x2x1.
	for i, b := range vols.Boxes() {
		if b.Min.Y != 0 || b.Size() != core.V3(1, 2, 1) {
			t.Errorf("Box %d = %+v, expected a 1x2x1 box on the floor", i, b)
		}
	}

	// Boxes returns a copy.
	boxes := vols.Boxes()
	boxes[0] = core.AABB{}
	if vols.Boxes()[0] != want {
		t.Error("Mutating Boxes() result should not change the volumes")
	}
}

func TestVolumesFromGridRejectsShortRow(t *testing.T) {
	grid := [][]Cell{
		{1, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 0, 1},
		{1, 1, 1, 1},
	}

	vols, err := VolumesFromGrid(grid, DefaultWallSize)
	if !errors.Is(err, ErrMalformedMap) {
		t.Fatalf("VolumesFromGrid() error = %v, expected ErrMalformedMap", err)
	}
	if vols != nil {
		t.Error("VolumesFromGrid() should not return volumes for a malformed grid")
	}
}

func TestVolumesNoMerging(t *testing.T) {
	m, err := ParseRows([]string{"###"})
	if err != nil {
		t.Fatal(err)
	}
	if got := BuildVolumes(m, DefaultWallSize).Len(); got != 3 {
		t.Errorf("Three adjacent walls produced %d boxes, expected 3", got)
	}
}
