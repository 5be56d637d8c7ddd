// Package core holds the platform-neutral pieces shared by boards and the
// terminal front end: the character Screen, input frames and geometry.
// Nothing here imports Bubble Tea.
package core

// Point is a column/row pair. It is used both for screen positions and
// for board cells.
type Point struct {
	X, Y int
}

// Add returns p moved by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Rect is an axis-aligned area; the right and bottom edges are exclusive.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ClampPoint returns the point of r nearest to p.
// r must not be empty.
func (r Rect) ClampPoint(p Point) Point {
	return Point{
		X: Clamp(p.X, r.X, r.Right()-1),
		Y: Clamp(p.Y, r.Y, r.Bottom()-1),
	}
}

// Center returns the middle point, rounding toward the top-left.
func (r Rect) Center() Point {
	return Point{X: r.X + (r.W-1)/2, Y: r.Y + (r.H-1)/2}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}
