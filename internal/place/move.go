package place

import (
	"fmt"
	"math"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// Obstacle is what stopped a movement: an entity, a baked tile, or nothing.
type Obstacle struct {
	Entity  *world.Entity
	Tile    world.TileID
	TileHit bool
}

// Blocked reports whether anything was hit.
func (o Obstacle) Blocked() bool {
	return o.Entity != nil || o.TileHit
}

// AxesResult reports what blocked each axis of MoveByAxes.
type AxesResult struct {
	X, Y Obstacle
}

// Blocked reports whether either axis was blocked.
func (r AxesResult) Blocked() bool {
	return r.X.Blocked() || r.Y.Blocked()
}

// obstacleAt checks e placed at (x, y) against entities of group ctype and
// then against tiles of the same group.
func (p *Place) obstacleAt(e *world.Entity, x, y float64, ctype string) Obstacle {
	if o := p.OccupiedAt(e, x, y, ctype); o != nil {
		return Obstacle{Entity: o}
	}
	if id, ok := p.TileAt(e, x, y, TileGroup(ctype)); ok {
		return Obstacle{Tile: id, TileHit: true}
	}
	return Obstacle{}
}

// stepSlack absorbs rounding in length/precision so that a length that is
// a whole multiple of precision never gets an extra, non-positive step.
const stepSlack = 1e-9

// MoveAlong moves e by length in direction dir (degrees) in steps of at most
// precision, stopping before the first step that would overlap an entity or
// tile of group ctype. A negative length moves backwards. It returns the
// obstacle that stopped the entity, or the zero Obstacle when the whole
// distance was covered.
func (p *Place) MoveAlong(e *world.Entity, dir, length float64, ctype string, precision float64) (Obstacle, error) {
	if !(precision > 0) {
		return Obstacle{}, fmt.Errorf("place: move along %v: %w", precision, ErrInvalidPrecision)
	}
	if length < 0 {
		length = -length
		dir += 180
	}
	if length == 0 {
		return Obstacle{}, nil
	}

	v := core.LengthDir(1, dir)
	steps := max(int(math.Ceil(length/precision-stepSlack)), 1)
	for i := 0; i < steps; i++ {
		step := precision
		if i == steps-1 {
			step = length - precision*float64(steps-1)
		}
		nx, ny := e.X+v.X*step, e.Y+v.Y*step
		if ob := p.obstacleAt(e, nx, ny, ctype); ob.Blocked() {
			return ob, nil
		}
		e.X, e.Y = nx, ny
	}
	return Obstacle{}, nil
}

// MoveByAxes moves e by dx then dy in steps of precision. Each axis stops at
// its own obstacle, so an entity pushed diagonally into a wall slides along
// it. Remainders shorter than precision are applied last when the spot is
// free.
func (p *Place) MoveByAxes(e *world.Entity, dx, dy float64, ctype string, precision float64) (AxesResult, error) {
	if !(precision > 0) {
		return AxesResult{}, fmt.Errorf("place: move by axes %v: %w", precision, ErrInvalidPrecision)
	}
	var res AxesResult

	sx := core.Sign(dx)
	for math.Abs(dx) >= precision {
		nx := e.X + sx*precision
		if ob := p.obstacleAt(e, nx, e.Y, ctype); ob.Blocked() {
			res.X = ob
			break
		}
		e.X = nx
		dx -= sx * precision
	}

	sy := core.Sign(dy)
	for math.Abs(dy) >= precision {
		ny := e.Y + sy*precision
		if ob := p.obstacleAt(e, e.X, ny, ctype); ob.Blocked() {
			res.Y = ob
			break
		}
		e.Y = ny
		dy -= sy * precision
	}

	if !res.X.Blocked() && dx != 0 {
		if ob := p.obstacleAt(e, e.X+dx, e.Y, ctype); !ob.Blocked() {
			e.X += dx
		}
	}
	if !res.Y.Blocked() && dy != 0 {
		if ob := p.obstacleAt(e, e.X, e.Y+dy, ctype); !ob.Blocked() {
			e.Y += dy
		}
	}
	return res, nil
}

// Go steps e towards (tx, ty) by step. When the direct bearing is blocked it
// walks the detour angles in order and, for each angle a, tries dir+a*m and
// then dir-a*m, where m is the steering sign. With the default angles and
// m = 1 the order is +30, -30, +60, -60, +90, -90, +120, -120. The first free
// bearing wins; if none is free e stays put. When the target is within step
// it snaps there if free and otherwise does not move. It reports whether e
// moved.
func (p *Place) Go(e *world.Entity, tx, ty, step float64, ctype string) (bool, error) {
	if !(step > 0) {
		return false, fmt.Errorf("place: go %v: %w", step, ErrInvalidStep)
	}

	if math.Hypot(tx-e.X, ty-e.Y) <= step {
		if p.obstacleAt(e, tx, ty, ctype).Blocked() {
			return false, nil
		}
		e.X, e.Y = tx, ty
		return true, nil
	}

	try := func(dir float64) bool {
		v := core.LengthDir(step, dir)
		nx, ny := e.X+v.X, e.Y+v.Y
		if p.obstacleAt(e, nx, ny, ctype).Blocked() {
			return false
		}
		e.X, e.Y = nx, ny
		return true
	}

	dir := core.PointDirection(e.X, e.Y, tx, ty)
	if try(dir) {
		return true, nil
	}
	m := p.steering.Sign()
	for _, a := range p.angles {
		if try(dir+a*m) || try(dir-a*m) {
			return true, nil
		}
	}
	return false, nil
}
