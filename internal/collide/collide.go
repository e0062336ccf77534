package collide

import (
	"math"
	"sort"

	"github.com/vovakirdan/spriteplace/internal/core"
)

// eps absorbs floating point noise in orientation and on-boundary checks.
const eps = 1e-9

// Test reports whether two primitives overlap.
//
// Pairs are dispatched in a fixed kind order, so Test(a, b) == Test(b, a).
// Whenever a poly takes part, the bounding boxes are compared first and
// disjoint boxes reject the pair without running the exact test.
func Test(a, b Primitive) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() > b.Kind() {
		a, b = b, a
	}
	if (a.Kind() == KindPoly || b.Kind() == KindPoly) && a.Bounds().Disjoint(b.Bounds()) {
		return false
	}

	switch s := a.(type) {
	case Circle:
		switch o := b.(type) {
		case Circle:
			return circleCircle(s, o)
		case Box:
			return circleBox(s, o)
		case Segment:
			return circleSegment(s, o)
		case Poly:
			return circlePoly(s, o)
		}
	case Box:
		switch o := b.(type) {
		case Box:
			return s.Intersects(o.AABB)
		case Segment:
			return segmentEntersPoly(o, s.AsPoly())
		case Poly:
			return polyPoly(s.AsPoly(), o)
		}
	case Segment:
		switch o := b.(type) {
		case Segment:
			return segmentSegment(s, o)
		case Poly:
			return segmentPoly(s, o)
		}
	case Poly:
		if o, ok := b.(Poly); ok {
			return polyPoly(s, o)
		}
	}
	return false
}

func circleCircle(a, b Circle) bool {
	return a.C.Dist(b.C) < a.R+b.R
}

func circleBox(c Circle, b Box) bool {
	if b.Contains(c.C) {
		return true
	}
	closest := core.Vec{
		X: core.ClampF(c.C.X, b.Min.X, b.Max.X),
		Y: core.ClampF(c.C.Y, b.Min.Y, b.Max.Y),
	}
	return c.C.Dist(closest) < c.R
}

func circleSegment(c Circle, s Segment) bool {
	return pointSegmentDist(c.C, s) < c.R
}

func circlePoly(c Circle, p Poly) bool {
	if len(p.Points) == 1 {
		return c.C.Dist(p.Points[0]) < c.R
	}
	if isFilled(p) && pointInPoly(c.C, p) {
		return true
	}
	for _, e := range p.Edges() {
		if circleSegment(c, e) {
			return true
		}
	}
	return false
}

func segmentSegment(a, b Segment) bool {
	return segmentsCross(a, b) || collinearOverlap(a, b)
}

func segmentPoly(s Segment, p Poly) bool {
	if isFilled(p) {
		return segmentEntersPoly(s, p)
	}
	for _, e := range p.Edges() {
		if segmentSegment(s, e) {
			return true
		}
	}
	return false
}

func polyPoly(a, b Poly) bool {
	fa, fb := isFilled(a), isFilled(b)
	if !fa && !fb {
		for _, ea := range a.Edges() {
			for _, eb := range b.Edges() {
				if segmentSegment(ea, eb) {
					return true
				}
			}
		}
		return false
	}
	if fa && chainEntersPoly(b, a) {
		return true
	}
	if fb && chainEntersPoly(a, b) {
		return true
	}
	if fa && fb {
		// Coincident boundaries leave no edge strictly inside the other poly.
		return pointInPoly(centroid(a), b) || pointInPoly(centroid(b), a)
	}
	return false
}

// chainEntersPoly reports whether any part of the vertex chain c lies in
// the interior of the filled poly p.
func chainEntersPoly(c, p Poly) bool {
	if len(c.Points) == 1 {
		return pointInPoly(c.Points[0], p)
	}
	for _, e := range c.Edges() {
		if segmentEntersPoly(e, p) {
			return true
		}
	}
	return false
}

// segmentEntersPoly splits s at every point where it meets the boundary of
// p and tests the middle of each piece for strict containment. This handles
// segments that cross exactly through vertices or run along edges.
func segmentEntersPoly(s Segment, p Poly) bool {
	d := s.B.Sub(s.A)
	l2 := d.Dot(d)
	if l2 == 0 {
		return pointInPoly(s.A, p)
	}

	ts := []float64{0, 1}
	for _, e := range p.Edges() {
		ed := e.B.Sub(e.A)
		denom := d.Cross(ed)
		rel := e.A.Sub(s.A)
		if math.Abs(denom) > eps {
			t := rel.Cross(ed) / denom
			u := rel.Cross(d) / denom
			if u >= -eps && u <= 1+eps && t > 0 && t < 1 {
				ts = append(ts, t)
			}
			continue
		}
		if math.Abs(rel.Cross(d)) > eps {
			continue // parallel, not collinear
		}
		for _, v := range []core.Vec{e.A, e.B} {
			if t := v.Sub(s.A).Dot(d) / l2; t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}

	sort.Float64s(ts)
	for i := 0; i+1 < len(ts); i++ {
		if ts[i+1]-ts[i] <= eps {
			continue
		}
		mid := s.A.Add(d.Scale((ts[i] + ts[i+1]) / 2))
		if pointInPoly(mid, p) {
			return true
		}
	}
	return false
}

// orient returns the signed area of the triangle a, b, c, snapped to zero
// within eps.
func orient(a, b, c core.Vec) float64 {
	v := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(v) <= eps {
		return 0
	}
	return v
}

// segmentsCross reports a proper crossing: each segment has its endpoints
// strictly on opposite sides of the other.
func segmentsCross(a, b Segment) bool {
	d1 := orient(b.A, b.B, a.A)
	d2 := orient(b.A, b.B, a.B)
	d3 := orient(a.A, a.B, b.A)
	d4 := orient(a.A, a.B, b.B)
	return d1*d2 < 0 && d3*d4 < 0
}

// collinearOverlap reports whether two collinear segments share a stretch of
// positive length.
func collinearOverlap(a, b Segment) bool {
	if orient(a.A, a.B, b.A) != 0 || orient(a.A, a.B, b.B) != 0 {
		return false
	}
	d := a.B.Sub(a.A)
	l2 := d.Dot(d)
	if l2 == 0 {
		return false
	}
	t0 := b.A.Sub(a.A).Dot(d) / l2
	t1 := b.B.Sub(a.A).Dot(d) / l2
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	lo := math.Max(0, t0)
	hi := math.Min(1, t1)
	return (hi-lo)*math.Sqrt(l2) > eps
}

// isFilled reports whether the poly encloses an area.
func isFilled(p Poly) bool {
	return p.Closed && len(p.Points) > 2
}

// pointInPoly reports whether p lies strictly inside the filled poly.
// Points on the boundary are outside.
func pointInPoly(p core.Vec, poly Poly) bool {
	if !isFilled(poly) {
		return false
	}
	edges := poly.Edges()
	for _, e := range edges {
		if pointSegmentDist(p, e) <= eps {
			return false
		}
	}
	inside := false
	for _, e := range edges {
		if (e.A.Y > p.Y) != (e.B.Y > p.Y) {
			x := e.A.X + (p.Y-e.A.Y)*(e.B.X-e.A.X)/(e.B.Y-e.A.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func centroid(p Poly) core.Vec {
	var c core.Vec
	for _, v := range p.Points {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.Points)))
}
