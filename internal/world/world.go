// Package world owns live entities, their types and tile layers, and keeps
// the entity grid in step with entity positions.
//
// The world is driven by a single frame loop goroutine and takes no locks.
package world

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/shape"
	"github.com/vovakirdan/spriteplace/internal/spatial"
)

// ErrUnknownType is returned when spawning an entity of an unregistered type.
var ErrUnknownType = errors.New("unknown entity type")

// Options configures a world. Zero cell sizes fall back to
// spatial.DefaultCellSize; a nil logger discards output.
type Options struct {
	CellWidth  float64
	CellHeight float64
	Logger     *log.Logger
}

// Type is an entity template. Spawned entities copy its shape, collision
// group and glyph.
type Type struct {
	Name  string
	Shape shape.Shape
	CType string
	Glyph rune
	Color core.Color
}

// Spawn describes a new entity. Zero scales are read as 1.
type Spawn struct {
	Type     string
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64

	// Shape and CType override the type defaults when set.
	Shape shape.Shape
	CType string
}

type typeEntry struct {
	Type
	list []*Entity
}

// World is the entity store.
type World struct {
	log *log.Logger

	pool     pool
	entities []*Entity
	types    map[string]*typeEntry
	grid     *spatial.Grid[EntityID]
	layers   []*TileLayer
	killed   []*Entity
}

// New creates an empty world.
func New(opts Options) (*World, error) {
	cw, ch := opts.CellWidth, opts.CellHeight
	if cw == 0 {
		cw = spatial.DefaultCellSize
	}
	if ch == 0 {
		ch = spatial.DefaultCellSize
	}
	grid, err := spatial.NewGrid[EntityID](cw, ch)
	if err != nil {
		return nil, fmt.Errorf("world: entity grid: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Debug("world created", "cell_w", cw, "cell_h", ch)

	return &World{
		log:   logger,
		types: make(map[string]*typeEntry),
		grid:  grid,
	}, nil
}

// Logger returns the world logger.
func (w *World) Logger() *log.Logger {
	return w.log
}

// Grid returns the entity grid. Callers must treat it as read-only.
func (w *World) Grid() *spatial.Grid[EntityID] {
	return w.grid
}

// RegisterType adds an entity type. Registering the same name twice panics.
func (w *World) RegisterType(t Type) {
	if t.Name == "" {
		panic("world: type name must not be empty")
	}
	if _, exists := w.types[t.Name]; exists {
		panic(fmt.Sprintf("world: type %q already registered", t.Name))
	}
	w.types[t.Name] = &typeEntry{Type: t}
}

// HasType reports whether the type is registered.
func (w *World) HasType(name string) bool {
	_, ok := w.types[name]
	return ok
}

// Types returns the registered type names in no particular order.
func (w *World) Types() []string {
	names := make([]string, 0, len(w.types))
	for name := range w.types {
		names = append(names, name)
	}
	return names
}

// TypeInfo returns the template of a registered type.
func (w *World) TypeInfo(name string) (Type, bool) {
	te, ok := w.types[name]
	if !ok {
		return Type{}, false
	}
	return te.Type, true
}

// Spawn creates an entity and indexes it in the grid right away.
func (w *World) Spawn(s Spawn) (*Entity, error) {
	te, ok := w.types[s.Type]
	if !ok {
		return nil, fmt.Errorf("world: spawn %q: %w", s.Type, ErrUnknownType)
	}

	e := &Entity{
		Type:     s.Type,
		X:        s.X,
		Y:        s.Y,
		ScaleX:   orOne(s.ScaleX),
		ScaleY:   orOne(s.ScaleY),
		Rotation: s.Rotation,
		CType:    te.CType,
		Glyph:    te.Glyph,
		Color:    te.Color,
		shape:    te.Shape,
	}
	if s.Shape != nil {
		e.shape = s.Shape
	}
	if s.CType != "" {
		e.CType = s.CType
	}

	e.ID = w.pool.create(e)
	w.entities = append(w.entities, e)
	te.list = append(te.list, e)
	w.index(e)
	return e, nil
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func (w *World) index(e *Entity) {
	w.grid.Update(e.ID, e.X, e.Y)
	e.ix, e.iy = e.X, e.Y
	e.indexed = true
}

// Entity resolves an ID. Stale or zero IDs return nil.
func (w *World) Entity(id EntityID) *Entity {
	if id.IsZero() {
		return nil
	}
	return w.pool.get(id)
}

// Entities returns every entity not yet destroyed, in spawn order. Killed
// entities stay in the list until EndFrame. The slice is owned by the world.
func (w *World) Entities() []*Entity {
	return w.entities
}

// OfType returns the entities of a type in spawn order. Asking for an
// unregistered type panics.
func (w *World) OfType(name string) []*Entity {
	te, ok := w.types[name]
	if !ok {
		panic(fmt.Sprintf("world: unknown type %q", name))
	}
	return te.list
}

// Len returns the number of entities not yet destroyed.
func (w *World) Len() int {
	return len(w.entities)
}

// Kill marks an entity for removal at the end of the frame. Queries skip it
// from now on.
func (w *World) Kill(e *Entity) {
	if e == nil || e.killed {
		return
	}
	e.killed = true
	w.killed = append(w.killed, e)
}

// Destroy removes an entity immediately.
func (w *World) Destroy(e *Entity) {
	if e == nil || w.pool.get(e.ID) != e {
		return
	}
	w.grid.Remove(e.ID)
	e.indexed = false
	e.killed = true

	if i := slices.Index(w.entities, e); i >= 0 {
		w.entities = slices.Delete(w.entities, i, i+1)
	}
	if te := w.types[e.Type]; te != nil {
		if i := slices.Index(te.list, e); i >= 0 {
			te.list = slices.Delete(te.list, i, i+1)
		}
	}
	w.pool.release(e.ID)
}

// EndFrame re-indexes every entity whose position changed since it was last
// indexed and destroys the entities killed during the frame. It returns the
// number of entities whose cells changed.
func (w *World) EndFrame() int {
	moved := 0
	for _, e := range w.entities {
		if e.killed {
			continue
		}
		if e.indexed && e.ix == e.X && e.iy == e.Y {
			continue
		}
		if w.grid.Update(e.ID, e.X, e.Y) {
			moved++
		}
		e.ix, e.iy = e.X, e.Y
		e.indexed = true
	}

	for _, e := range w.killed {
		w.Destroy(e)
	}
	w.killed = w.killed[:0]
	return moved
}

// Reset destroys every entity and tile layer. Registered types are kept.
// Layer IDs start over, so a world used by a place.Place must be reset with
// Place.Reset, which also drops the tiles it baked.
func (w *World) Reset() {
	for _, e := range w.entities {
		w.pool.release(e.ID)
		e.indexed = false
		e.killed = true
	}
	w.grid.Clear()
	w.entities = nil
	w.killed = nil
	w.layers = nil
	for _, te := range w.types {
		te.list = nil
	}
}
