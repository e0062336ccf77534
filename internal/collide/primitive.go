// Package collide holds world-space collision primitives and the exact
// pairwise overlap test between them.
//
// Contact of zero measure is never a collision: boxes sharing an edge, tangent
// circles, a point lying on a boundary and segments meeting at an endpoint
// all report false. Filled shapes (circles, boxes, closed polys) collide only
// when the other shape reaches into their open interior. Between two 1D shapes
// (segments, open polylines) collinear pieces sharing a stretch of positive
// length do collide.
package collide

import "github.com/vovakirdan/spriteplace/internal/core"

// Kind identifies the concrete primitive type.
type Kind int

const (
	KindCircle Kind = iota
	KindBox
	KindSegment
	KindPoly
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	case KindSegment:
		return "segment"
	case KindPoly:
		return "poly"
	default:
		return "unknown"
	}
}

// Primitive is a world-space shape. The set of implementations is closed:
// Circle, Box, Segment and Poly.
type Primitive interface {
	Kind() Kind
	Bounds() core.AABB
	isPrimitive()
}

// Circle is a disc. A zero radius describes a point.
type Circle struct {
	C core.Vec
	R float64
}

// Box is an axis-aligned rectangle.
type Box struct {
	core.AABB
}

// Segment is a line segment from A to B.
type Segment struct {
	A, B core.Vec
}

// Poly is a vertex chain. A closed poly is a filled polygon; an open one is
// a polyline made only of its edges.
type Poly struct {
	Points []core.Vec
	Closed bool

	bounds core.AABB
}

// NewPoly creates a poly and precomputes its bounds.
func NewPoly(points []core.Vec, closed bool) Poly {
	return Poly{Points: points, Closed: closed, bounds: core.BoundsOf(points)}
}

func (Circle) Kind() Kind  { return KindCircle }
func (Box) Kind() Kind     { return KindBox }
func (Segment) Kind() Kind { return KindSegment }
func (Poly) Kind() Kind    { return KindPoly }

func (Circle) isPrimitive()  {}
func (Box) isPrimitive()     {}
func (Segment) isPrimitive() {}
func (Poly) isPrimitive()    {}

// Bounds returns the bounding box of the circle.
func (c Circle) Bounds() core.AABB {
	return core.AABB{
		Min: core.Vec{X: c.C.X - c.R, Y: c.C.Y - c.R},
		Max: core.Vec{X: c.C.X + c.R, Y: c.C.Y + c.R},
	}
}

// Bounds returns the box itself.
func (b Box) Bounds() core.AABB {
	return b.AABB
}

// Bounds returns the bounding box of the segment.
func (s Segment) Bounds() core.AABB {
	return core.BoundsOf([]core.Vec{s.A, s.B})
}

// Bounds returns the cached bounding box, computing it for polys built
// without NewPoly.
func (p Poly) Bounds() core.AABB {
	if p.bounds == (core.AABB{}) && len(p.Points) > 0 {
		return core.BoundsOf(p.Points)
	}
	return p.bounds
}

// Edges returns the edges of the poly; closed polys include the closing edge.
func (p Poly) Edges() []Segment {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := 0; i < n-1; i++ {
		edges = append(edges, Segment{A: p.Points[i], B: p.Points[i+1]})
	}
	if p.Closed && n > 2 {
		edges = append(edges, Segment{A: p.Points[n-1], B: p.Points[0]})
	}
	return edges
}

// AsPoly converts the box to a closed four-point polygon.
func (b Box) AsPoly() Poly {
	return NewPoly(b.Corners(), true)
}

// Point returns a zero-radius circle at p.
func Point(p core.Vec) Circle {
	return Circle{C: p}
}

// Anchor returns the reference point of a primitive: the circle center, the
// box's top-left corner, the segment start or the first poly vertex.
func Anchor(p Primitive) core.Vec {
	switch s := p.(type) {
	case Circle:
		return s.C
	case Box:
		return s.Min
	case Segment:
		return s.A
	case Poly:
		if len(s.Points) > 0 {
			return s.Points[0]
		}
	}
	return core.Vec{}
}

// Translate moves a primitive by d.
func Translate(p Primitive, d core.Vec) Primitive {
	switch s := p.(type) {
	case Circle:
		return Circle{C: s.C.Add(d), R: s.R}
	case Box:
		return Box{AABB: core.AABB{Min: s.Min.Add(d), Max: s.Max.Add(d)}}
	case Segment:
		return Segment{A: s.A.Add(d), B: s.B.Add(d)}
	case Poly:
		pts := make([]core.Vec, len(s.Points))
		for i, v := range s.Points {
			pts[i] = v.Add(d)
		}
		return NewPoly(pts, s.Closed)
	}
	return p
}

// pointSegmentDist returns the distance from p to the closest point of s.
func pointSegmentDist(p core.Vec, s Segment) float64 {
	ab := s.B.Sub(s.A)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(s.A)
	}
	t := core.ClampF(p.Sub(s.A).Dot(ab)/l2, 0, 1)
	return p.Dist(s.A.Add(ab.Scale(t)))
}
