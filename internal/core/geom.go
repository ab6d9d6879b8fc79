// Package core provides the vector math, screen buffer and input types shared
// by the maze simulation and the terminal platform. It has no external
// dependencies (especially no Bubble Tea) so simulation code stays pure and
// testable.
package core

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// ClampF restricts v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
