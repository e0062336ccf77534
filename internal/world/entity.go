package world

import (
	"github.com/vovakirdan/spriteplace/internal/collide"
	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/shape"
)

// Entity is a live object of the world. Gameplay code moves it by writing X
// and Y (or Rotation and the scales); the grid catches up at EndFrame.
type Entity struct {
	ID   EntityID
	Type string

	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64

	// CType is the collision group used by occupancy filters. Empty means
	// the entity belongs to no group.
	CType string

	Glyph rune
	Color core.Color

	shape  shape.Shape
	killed bool

	indexed    bool
	ix, iy     float64
	cache      collide.Primitive
	cachedFor  shape.Transform
	cacheValid bool
}

// Transform returns the current transform of the entity.
func (e *Entity) Transform() shape.Transform {
	return shape.Transform{X: e.X, Y: e.Y, ScaleX: e.ScaleX, ScaleY: e.ScaleY, Rotation: e.Rotation}
}

// Pos returns the entity position.
func (e *Entity) Pos() core.Vec {
	return core.Vec{X: e.X, Y: e.Y}
}

// Shape returns the entity-local collision shape.
func (e *Entity) Shape() shape.Shape {
	return e.shape
}

// SetShape replaces the collision shape and drops the derived cache.
func (e *Entity) SetShape(s shape.Shape) {
	e.shape = s
	e.cacheValid = false
}

// Killed reports whether the entity was killed and awaits removal.
func (e *Entity) Killed() bool {
	return e.killed
}

// WorldShape returns the world-space primitive for the current transform.
// The result is cached until the transform changes.
func (e *Entity) WorldShape() collide.Primitive {
	t := e.Transform()
	if e.cacheValid && e.cachedFor == t {
		return e.cache
	}
	e.cache = shape.Derive(t, e.shape)
	e.cachedFor = t
	e.cacheValid = true
	return e.cache
}

// ShapeAt returns the primitive the entity would have at (x, y). It never
// touches the cache, so hypothetical checks leave the entity as it was.
func (e *Entity) ShapeAt(x, y float64) collide.Primitive {
	if x == e.X && y == e.Y {
		return e.WorldShape()
	}
	t := e.Transform()
	t.X, t.Y = x, y
	return shape.Derive(t, e.shape)
}

// IndexedPos returns the position the entity was last indexed at.
func (e *Entity) IndexedPos() (x, y float64, ok bool) {
	return e.ix, e.iy, e.indexed
}
