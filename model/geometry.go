package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is a rectangle in document space given by its top-left (X0, Y0)
// and bottom-right (X1, Y1) corners.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect creates a normalized rectangle from two arbitrary corners
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}.Normalize()
}

// Normalize swaps corners so that X0 <= X1 and Y0 <= Y1
func (r Rect) Normalize() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width returns the horizontal extent
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: r.X0 + (r.X1-r.X0)/2,
		Y: r.Y0 + (r.Y1-r.Y0)/2,
	}
}

// Contains checks if a point is inside the rectangle (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

// Inset shrinks the rectangle by dx on the left and right and dy on the top and bottom
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 - dx, Y1: r.Y1 - dy}
}

// Scale multiplies every coordinate by factor
func (r Rect) Scale(factor float64) Rect {
	return Rect{X0: r.X0 * factor, Y0: r.Y0 * factor, X1: r.X1 * factor, Y1: r.Y1 * factor}
}

// Intersect returns the overlap of two rectangles. The result is empty
// when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		X0: max(r.X0, o.X0),
		Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
	}
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero or negative area
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
