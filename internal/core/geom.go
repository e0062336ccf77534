// Package core provides fundamental types and utilities for the sprite runtime.
// It contains no external dependencies (especially no Bubble Tea) to keep
// collision and movement logic pure and testable.
package core

import "math"

// Vec is a 2D vector in world units. The Y axis points down, as on screen.
type Vec struct {
	X, Y float64
}

// V creates a vector from its components.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rotate turns v by deg degrees. Positive angles turn counter-clockwise on a
// y-down screen, so (1, 0) rotated by 90 becomes (0, -1).
func (v Vec) Rotate(deg float64) Vec {
	if deg == 0 {
		return v
	}
	sin, cos := math.Sincos(DegToRad(deg))
	return Vec{
		X: v.X*cos + v.Y*sin,
		Y: -v.X*sin + v.Y*cos,
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// LengthDir returns the offset of length l in direction dir (degrees).
// Direction 0 points to +X and 90 points up (-Y).
func LengthDir(l, dir float64) Vec {
	sin, cos := math.Sincos(DegToRad(dir))
	return Vec{X: l * cos, Y: -l * sin}
}

// PointDirection returns the direction in degrees from (x1, y1) to (x2, y2),
// using the same convention as LengthDir.
func PointDirection(x1, y1, x2, y2 float64) float64 {
	return RadToDeg(math.Atan2(-(y2 - y1), x2-x1))
}

// AABB is an axis-aligned bounding box in world units.
type AABB struct {
	Min, Max Vec
}

// NewAABB creates a box from its top-left corner and size.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{Min: Vec{X: x, Y: y}, Max: Vec{X: x + w, Y: y + h}}
}

// BoundsOf returns the smallest box containing all points.
// An empty slice yields the zero box.
func BoundsOf(points []Vec) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Width returns the horizontal extent of the box.
func (b AABB) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the center point of the box.
func (b AABB) Center() Vec {
	return Vec{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Intersects returns true if the interiors of both boxes overlap.
// Boxes that only share an edge do not intersect.
func (b AABB) Intersects(o AABB) bool {
	if b.Min.X >= o.Max.X || o.Min.X >= b.Max.X {
		return false
	}
	if b.Min.Y >= o.Max.Y || o.Min.Y >= b.Max.Y {
		return false
	}
	return true
}

// Disjoint returns true if the closed boxes are separated on some axis.
// Unlike Intersects, degenerate (zero-width) boxes touching a box are not
// disjoint, which makes it safe as a rejection pre-check for segments.
func (b AABB) Disjoint(o AABB) bool {
	return b.Max.X < o.Min.X || o.Max.X < b.Min.X ||
		b.Max.Y < o.Min.Y || o.Max.Y < b.Min.Y
}

// Contains returns true if the point lies strictly inside the box.
func (b AABB) Contains(p Vec) bool {
	return p.X > b.Min.X && p.X < b.Max.X && p.Y > b.Min.Y && p.Y < b.Max.Y
}

// Corners returns the four corners clockwise on screen, starting top-left.
func (b AABB) Corners() []Vec {
	return []Vec{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0, or 1.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
