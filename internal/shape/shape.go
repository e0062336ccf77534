// Package shape describes entity-local collision shapes and derives their
// world-space primitives from an entity transform.
package shape

import (
	"math"

	"github.com/vovakirdan/spriteplace/internal/collide"
	"github.com/vovakirdan/spriteplace/internal/core"
)

// EllipseSegments is the number of vertices used to approximate a circle
// scaled non-uniformly.
const EllipseSegments = 16

// Shape is a collision shape in entity-local coordinates. Implementations:
// Rect, Circle, Strip, Segment and Point.
type Shape interface {
	isShape()
}

// Rect is a rectangle given by its extents around the entity origin.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Circle is a circle centered on the entity origin.
type Circle struct {
	R float64
}

// Strip is a polyline, or a polygon when Closed is set.
type Strip struct {
	Points []core.Vec
	Closed bool
}

// Segment is a line from (X1, Y1) to (X2, Y2) relative to the origin.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Point is the entity origin itself.
type Point struct{}

func (Rect) isShape()    {}
func (Circle) isShape()  {}
func (Strip) isShape()   {}
func (Segment) isShape() {}
func (Point) isShape()   {}

// Transform places a shape in the world. Rotation is in degrees.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
}

// At returns an unscaled, unrotated transform at (x, y).
func At(x, y float64) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// Origin returns the transform position.
func (t Transform) Origin() core.Vec {
	return core.Vec{X: t.X, Y: t.Y}
}

// Derive computes the world-space primitive of s under t. A nil shape is
// treated as a Point.
func Derive(t Transform, s Shape) collide.Primitive {
	o := t.Origin()
	switch sh := s.(type) {
	case Rect:
		return deriveRect(t, sh)

	case Circle:
		if math.Abs(t.ScaleX) == math.Abs(t.ScaleY) {
			return collide.Circle{C: o, R: sh.R * math.Abs(t.ScaleX)}
		}
		pts := make([]core.Vec, EllipseSegments)
		for i := range pts {
			sin, cos := math.Sincos(2 * math.Pi * float64(i) / EllipseSegments)
			local := core.Vec{X: sin * sh.R * t.ScaleX, Y: cos * sh.R * t.ScaleY}
			pts[i] = o.Add(local.Rotate(t.Rotation))
		}
		return collide.NewPoly(pts, true)

	case Strip:
		pts := make([]core.Vec, len(sh.Points))
		for i, p := range sh.Points {
			local := core.Vec{X: p.X * t.ScaleX, Y: p.Y * t.ScaleY}
			pts[i] = o.Add(local.Rotate(t.Rotation))
		}
		return collide.NewPoly(pts, sh.Closed)

	case Segment:
		start := o.Add(core.Vec{X: sh.X1 * t.ScaleX, Y: sh.Y1 * t.ScaleY})
		end := start.Add(core.Vec{X: (sh.X2 - sh.X1) * t.ScaleX, Y: (sh.Y2 - sh.Y1) * t.ScaleY})
		return collide.Segment{A: start, B: end}
	}
	return collide.Point(o)
}

func deriveRect(t Transform, r Rect) collide.Primitive {
	if t.Rotation == 0 {
		x, y := t.X, t.Y
		if t.ScaleX > 0 {
			x -= r.Left * t.ScaleX
		} else {
			x -= -t.ScaleX * r.Right
		}
		if t.ScaleY > 0 {
			y -= r.Top * t.ScaleY
		} else {
			y -= -t.ScaleY * r.Bottom
		}
		w := math.Abs((r.Left + r.Right) * t.ScaleX)
		h := math.Abs((r.Top + r.Bottom) * t.ScaleY)
		return collide.Box{AABB: core.NewAABB(x, y, w, h)}
	}

	corners := []core.Vec{
		{X: -r.Left * t.ScaleX, Y: -r.Top * t.ScaleY},
		{X: -r.Left * t.ScaleX, Y: r.Bottom * t.ScaleY},
		{X: r.Right * t.ScaleX, Y: r.Bottom * t.ScaleY},
		{X: r.Right * t.ScaleX, Y: -r.Top * t.ScaleY},
	}
	o := t.Origin()
	for i, c := range corners {
		corners[i] = o.Add(c.Rotate(t.Rotation))
	}
	return collide.NewPoly(corners, true)
}

// Extent returns the width and height a shape spans under t, used to decide
// whether a query shape is too large for the grid neighbourhood. A point has
// no extent.
func Extent(t Transform, s Shape) (w, h float64) {
	switch sh := s.(type) {
	case Rect:
		return math.Abs((sh.Left + sh.Right) * t.ScaleX), math.Abs((sh.Top + sh.Bottom) * t.ScaleY)
	case Circle:
		return 2 * sh.R * math.Abs(t.ScaleX), 2 * sh.R * math.Abs(t.ScaleY)
	case Strip:
		b := Derive(t, sh).Bounds()
		return b.Width(), b.Height()
	case Segment:
		return math.Abs((sh.X2 - sh.X1) * t.ScaleX), math.Abs((sh.Y2 - sh.Y1) * t.ScaleY)
	}
	return 0, 0
}

// Name returns a short lowercase name for the shape kind.
func Name(s Shape) string {
	switch s.(type) {
	case Rect:
		return "rect"
	case Circle:
		return "circle"
	case Strip:
		return "strip"
	case Segment:
		return "line"
	default:
		return "point"
	}
}
