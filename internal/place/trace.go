package place

import (
	"cmp"
	"math"
	"slices"

	"github.com/vovakirdan/spriteplace/internal/collide"
	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/shape"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// trace tests a shape that belongs to no entity. Shapes wider or taller than
// one grid cell are tested against every live entity.
func (p *Place) trace(t shape.Transform, s shape.Shape, ctype string, all bool) []*world.Entity {
	prim := shape.Derive(t, s)
	w, h := shape.Extent(t, s)
	cw, ch := p.w.Grid().CellSize()
	full := w > cw || h > ch

	var found []*world.Entity
	p.scan(nil, prim, t.X, t.Y, full, byGroup(ctype), func(o *world.Entity) bool {
		found = append(found, o)
		return all
	})
	if all && len(found) > 1 {
		ref := collide.Anchor(prim)
		slices.SortStableFunc(found, func(a, b *world.Entity) int {
			return cmp.Compare(ref.Dist(a.Pos()), ref.Dist(b.Pos()))
		})
	}
	return found
}

func firstOf(found []*world.Entity) *world.Entity {
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func lineShape(x1, y1, x2, y2 float64) (shape.Transform, shape.Shape) {
	return shape.At(x1, y1), shape.Segment{X2: x2 - x1, Y2: y2 - y1}
}

func rectShape(x, y, w, h float64) (shape.Transform, shape.Shape) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return shape.At(x, y), shape.Rect{Right: w, Bottom: h}
}

func polylineShape(points []core.Vec, closed bool) (shape.Transform, shape.Shape) {
	if len(points) == 0 {
		return shape.At(0, 0), shape.Point{}
	}
	o := points[0]
	local := make([]core.Vec, len(points))
	for i, v := range points {
		local[i] = v.Sub(o)
	}
	return shape.At(o.X, o.Y), shape.Strip{Points: local, Closed: closed}
}

// TraceLine returns the first entity of group ctype crossed by the segment
// from (x1, y1) to (x2, y2), or nil.
func (p *Place) TraceLine(x1, y1, x2, y2 float64, ctype string) *world.Entity {
	t, s := lineShape(x1, y1, x2, y2)
	return firstOf(p.trace(t, s, ctype, false))
}

// TraceLineAll returns every entity crossed by the segment, nearest to
// (x1, y1) first.
func (p *Place) TraceLineAll(x1, y1, x2, y2 float64, ctype string) []*world.Entity {
	t, s := lineShape(x1, y1, x2, y2)
	return p.trace(t, s, ctype, true)
}

// TraceRect returns the first entity overlapping the rectangle with top-left
// corner (x, y) and size w x h.
func (p *Place) TraceRect(x, y, w, h float64, ctype string) *world.Entity {
	t, s := rectShape(x, y, w, h)
	return firstOf(p.trace(t, s, ctype, false))
}

// TraceRectAll returns every entity overlapping the rectangle, nearest to its
// top-left corner first.
func (p *Place) TraceRectAll(x, y, w, h float64, ctype string) []*world.Entity {
	t, s := rectShape(x, y, w, h)
	return p.trace(t, s, ctype, true)
}

// TraceCircle returns the first entity overlapping the circle.
func (p *Place) TraceCircle(x, y, r float64, ctype string) *world.Entity {
	return firstOf(p.trace(shape.At(x, y), shape.Circle{R: math.Abs(r)}, ctype, false))
}

// TraceCircleAll returns every entity overlapping the circle, nearest to its
// center first.
func (p *Place) TraceCircleAll(x, y, r float64, ctype string) []*world.Entity {
	return p.trace(shape.At(x, y), shape.Circle{R: math.Abs(r)}, ctype, true)
}

// TracePolyline returns the first entity crossed by the polyline, or by the
// polygon when closed is set.
func (p *Place) TracePolyline(points []core.Vec, closed bool, ctype string) *world.Entity {
	t, s := polylineShape(points, closed)
	return firstOf(p.trace(t, s, ctype, false))
}

// TracePolylineAll returns every entity crossed by the polyline, nearest to
// its first point first.
func (p *Place) TracePolylineAll(points []core.Vec, closed bool, ctype string) []*world.Entity {
	t, s := polylineShape(points, closed)
	return p.trace(t, s, ctype, true)
}

// TracePoint returns the first entity containing the point.
func (p *Place) TracePoint(x, y float64, ctype string) *world.Entity {
	return firstOf(p.trace(shape.At(x, y), shape.Point{}, ctype, false))
}

// TracePointAll returns every entity containing the point, nearest first.
func (p *Place) TracePointAll(x, y float64, ctype string) []*world.Entity {
	return p.trace(shape.At(x, y), shape.Point{}, ctype, true)
}
