package place

import (
	"fmt"
	"math"

	"github.com/vovakirdan/spriteplace/internal/collide"
	"github.com/vovakirdan/spriteplace/internal/world"
)

type keepFunc func(*world.Entity) bool

func byGroup(ctype string) keepFunc {
	if ctype == "" {
		return func(*world.Entity) bool { return true }
	}
	return func(o *world.Entity) bool { return o.CType == ctype }
}

func byType(typ string) keepFunc {
	return func(o *world.Entity) bool { return o.Type == typ }
}

// scan tests prim against candidate entities and calls hit for every
// collision until hit returns false. Candidates come from the grid cells of
// (x, y) unless full is set, in which case every live entity is tested.
func (p *Place) scan(self *world.Entity, prim collide.Primitive, x, y float64, full bool, keep keepFunc, hit func(*world.Entity) bool) {
	p.stats.Queries++
	visit := func(o *world.Entity) bool {
		if o == self || o.Killed() || !keep(o) {
			return true
		}
		p.stats.Tests++
		if collide.Test(prim, o.WorldShape()) {
			return hit(o)
		}
		return true
	}

	if full {
		p.stats.FullScans++
		for _, o := range p.w.Entities() {
			if !visit(o) {
				return
			}
		}
		return
	}
	p.w.Grid().Near(x, y, func(id world.EntityID) bool {
		o := p.w.Entity(id)
		if o == nil {
			return true
		}
		return visit(o)
	})
}

func (p *Place) first(self *world.Entity, x, y float64, keep keepFunc) *world.Entity {
	var found *world.Entity
	p.scan(self, self.ShapeAt(x, y), x, y, false, keep, func(o *world.Entity) bool {
		found = o
		return false
	})
	return found
}

func (p *Place) all(self *world.Entity, x, y float64, keep keepFunc) []*world.Entity {
	var found []*world.Entity
	p.scan(self, self.ShapeAt(x, y), x, y, false, keep, func(o *world.Entity) bool {
		found = append(found, o)
		return true
	})
	return found
}

// Occupied returns the first entity of group ctype that e overlaps, or nil.
// An empty ctype matches every entity.
func (p *Place) Occupied(e *world.Entity, ctype string) *world.Entity {
	return p.OccupiedAt(e, e.X, e.Y, ctype)
}

// OccupiedAt is Occupied with e placed at (x, y).
func (p *Place) OccupiedAt(e *world.Entity, x, y float64, ctype string) *world.Entity {
	return p.first(e, x, y, byGroup(ctype))
}

// OccupiedAll returns every entity of group ctype that e overlaps.
func (p *Place) OccupiedAll(e *world.Entity, ctype string) []*world.Entity {
	return p.OccupiedAllAt(e, e.X, e.Y, ctype)
}

// OccupiedAllAt is OccupiedAll with e placed at (x, y).
func (p *Place) OccupiedAllAt(e *world.Entity, x, y float64, ctype string) []*world.Entity {
	return p.all(e, x, y, byGroup(ctype))
}

// Free reports whether e overlaps no entity of group ctype.
func (p *Place) Free(e *world.Entity, ctype string) bool {
	return p.Occupied(e, ctype) == nil
}

// FreeAt reports whether e placed at (x, y) overlaps no entity of group ctype.
func (p *Place) FreeAt(e *world.Entity, x, y float64, ctype string) bool {
	return p.OccupiedAt(e, x, y, ctype) == nil
}

func (p *Place) mustHaveType(op, typ string) {
	if !p.w.HasType(typ) {
		panic(fmt.Sprintf("place: %s: unknown type %q", op, typ))
	}
}

// Meet returns the first entity of type typ that e overlaps, or nil. An
// unregistered type panics.
func (p *Place) Meet(e *world.Entity, typ string) *world.Entity {
	return p.MeetAt(e, e.X, e.Y, typ)
}

// MeetAt is Meet with e placed at (x, y).
func (p *Place) MeetAt(e *world.Entity, x, y float64, typ string) *world.Entity {
	p.mustHaveType("meet", typ)
	return p.first(e, x, y, byType(typ))
}

// MeetAll returns every entity of type typ that e overlaps.
func (p *Place) MeetAll(e *world.Entity, typ string) []*world.Entity {
	return p.MeetAllAt(e, e.X, e.Y, typ)
}

// MeetAllAt is MeetAll with e placed at (x, y).
func (p *Place) MeetAllAt(e *world.Entity, x, y float64, typ string) []*world.Entity {
	p.mustHaveType("meet", typ)
	return p.all(e, x, y, byType(typ))
}

// Nearest returns the live entity of type typ closest to (x, y). Ties keep
// the entity spawned first. It reports false when the type has no live
// entities; an unregistered type panics.
func (p *Place) Nearest(x, y float64, typ string) (*world.Entity, bool) {
	return p.extreme("nearest", x, y, typ, func(d, best float64) bool { return d < best }, math.Inf(1))
}

// Furthest returns the live entity of type typ furthest from (x, y).
func (p *Place) Furthest(x, y float64, typ string) (*world.Entity, bool) {
	return p.extreme("furthest", x, y, typ, func(d, best float64) bool { return d > best }, math.Inf(-1))
}

func (p *Place) extreme(op string, x, y float64, typ string, better func(d, best float64) bool, start float64) (*world.Entity, bool) {
	p.mustHaveType(op, typ)
	var found *world.Entity
	best := start
	for _, o := range p.w.OfType(typ) {
		if o.Killed() {
			continue
		}
		d := math.Hypot(o.X-x, o.Y-y)
		if better(d, best) {
			found, best = o, d
		}
	}
	if found == nil {
		return nil, false
	}
	p.lastDist = best
	return found, true
}
