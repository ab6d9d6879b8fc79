package core

// AABB is an axis-aligned box in world space.
// Unlike Rect it is continuous and three-dimensional.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABBFromCenter creates a box from its center and full size.
func NewAABBFromCenter(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Intersects reports whether the two boxes overlap on all three axes.
// Boxes that only touch on a face count as intersecting.
func (a AABB) Intersects(b AABB) bool {
	if a.Max.X < b.Min.X || a.Min.X > b.Max.X {
		return false
	}
	if a.Max.Y < b.Min.Y || a.Min.Y > b.Max.Y {
		return false
	}
	if a.Max.Z < b.Min.Z || a.Min.Z > b.Max.Z {
		return false
	}
	return true
}

// Contains reports whether p lies inside the box (inclusive).
func (a AABB) Contains(p Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Center returns the midpoint of the box.
func (a AABB) Center() Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Size returns the full extents of the box.
func (a AABB) Size() Vec3 {
	return a.Max.Sub(a.Min)
}

// Translate returns the box moved by d.
func (a AABB) Translate(d Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}
