package sim

import "github.com/vovakirdan/tui-maze/internal/core"

// WallSize is the extent of one wall box in grid units.
type WallSize struct {
	Width  float64
	Height float64
	Depth  float64
}

// DefaultWallSize is one cell wide and deep, two units tall.
var DefaultWallSize = WallSize{Width: 1, Height: 2, Depth: 1}

// Volumes is the immutable set of wall boxes derived from a Map.
// There is one box per wall cell; adjacent walls are never merged.
type Volumes struct {
	boxes []core.AABB
}

// BuildVolumes emits a ground-aligned box for every wall cell, centered on
// (col, height/2, row). Changing the map means building a new Volumes.
func BuildVolumes(m *Map, size WallSize) *Volumes {
	boxes := make([]core.AABB, 0, m.WallCount())
	dims := core.V3(size.Width, size.Height, size.Depth)

	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			if m.At(col, row) != Wall {
				continue
			}
			center := core.V3(float64(col), size.Height/2, float64(row))
			boxes = append(boxes, core.NewAABBFromCenter(center, dims))
		}
	}

	return &Volumes{boxes: boxes}
}

// Len returns the number of boxes.
func (v *Volumes) Len() int {
	if v == nil {
		return 0
	}
	return len(v.boxes)
}

// Boxes returns a copy of the wall boxes, for debug views.
func (v *Volumes) Boxes() []core.AABB {
	if v == nil {
		return nil
	}
	return append([]core.AABB(nil), v.boxes...)
}

// Overlaps reports whether box intersects any wall.
// This is a linear broad-phase scan with no spatial index.
func (v *Volumes) Overlaps(box core.AABB) bool {
	if v == nil {
		return false
	}
	for _, wall := range v.boxes {
		if box.Intersects(wall) {
			return true
		}
	}
	return false
}

// VolumesFromGrid validates a raw grid and builds its volumes in one step.
// A ragged grid is rejected rather than padded or truncated.
func VolumesFromGrid(grid [][]Cell, size WallSize) (*Volumes, error) {
	m, err := NewMap(grid)
	if err != nil {
		return nil, err
	}
	return BuildVolumes(m, size), nil
}
