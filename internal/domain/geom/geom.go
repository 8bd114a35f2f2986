// Package geom provides the 2D vector and rectangle primitives used by the
// simulation. Rectangles are axis-aligned and stored as center + half extents.
package geom

// Vec2 is a 2D vector. Used for positions, velocities and spawn points.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Rect is an axis-aligned rectangle described by its center and half extents.
type Rect struct {
	X, Y  float64 // center
	HalfW float64
	HalfH float64
}

// RectFromSize builds a Rect from a center position and full width/height.
func RectFromSize(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, HalfW: w / 2, HalfH: h / 2}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X - r.HalfW }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.HalfW }

// Top returns the y coordinate of the top edge (y grows downward).
func (r Rect) Top() float64 { return r.Y - r.HalfH }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.HalfH }

// Width returns the full width.
func (r Rect) Width() float64 { return r.HalfW * 2 }

// Height returns the full height.
func (r Rect) Height() float64 { return r.HalfH * 2 }

// Intersects reports whether r and o overlap. Touching edges do not count
// as an intersection.
func (r Rect) Intersects(o Rect) bool {
	return absF(r.X-o.X) < r.HalfW+o.HalfW && absF(r.Y-o.Y) < r.HalfH+o.HalfH
}

// ContainsPoint reports whether the point (x, y) lies inside r, edges included.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.Left() && x <= r.Right() && y >= r.Top() && y <= r.Bottom()
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
