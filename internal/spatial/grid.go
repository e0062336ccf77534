// Package spatial implements the broad-phase spatial hash used by the world.
//
// Every item is indexed by a single reference point and lands in the cell
// nearest to it plus the neighbours on the side the point leans towards, so
// an item always occupies between one and four cells. Shapes no larger than
// one cell are therefore found by scanning the cells of their own reference
// point. Accessed only from the frame loop goroutine; no locks.
package spatial

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// DefaultCellSize is the cell width and height used when none is configured.
const DefaultCellSize = 512

// ErrInvalidCellSize is returned for non-positive cell dimensions.
var ErrInvalidCellSize = errors.New("cell size must be positive")

// Key identifies one grid cell.
type Key struct {
	CX, CY int
}

// String formats the key as "cx:cy".
func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.CX, k.CY)
}

// Grid maps cells to the items indexed in them. It also remembers which cells
// each item occupies so that updates only touch the difference.
type Grid[T comparable] struct {
	cellW, cellH float64
	cells        map[Key][]T
	members      map[T][]Key
}

// NewGrid creates an empty grid with the given cell dimensions.
func NewGrid[T comparable](cellW, cellH float64) (*Grid[T], error) {
	if !(cellW > 0) || !(cellH > 0) {
		return nil, fmt.Errorf("spatial: %vx%v: %w", cellW, cellH, ErrInvalidCellSize)
	}
	return &Grid[T]{
		cellW:   cellW,
		cellH:   cellH,
		cells:   make(map[Key][]T),
		members: make(map[T][]Key),
	}, nil
}

// CellSize returns the cell width and height.
func (g *Grid[T]) CellSize() (w, h float64) {
	return g.cellW, g.cellH
}

// KeysFor returns the cells a point at (x, y) is indexed in.
func (g *Grid[T]) KeysFor(x, y float64) []Key {
	cx := roundHalfUp(x / g.cellW)
	cy := roundHalfUp(y / g.cellH)
	dx := sign(x - float64(cx)*g.cellW)
	dy := sign(y - float64(cy)*g.cellH)

	keys := make([]Key, 1, 4)
	keys[0] = Key{CX: cx, CY: cy}
	if dx != 0 {
		keys = append(keys, Key{CX: cx + dx, CY: cy})
		if dy != 0 {
			keys = append(keys, Key{CX: cx + dx, CY: cy + dy})
		}
	}
	if dy != 0 {
		keys = append(keys, Key{CX: cx, CY: cy + dy})
	}
	return keys
}

// Insert indexes item at (x, y). An item already in the grid is re-indexed.
func (g *Grid[T]) Insert(item T, x, y float64) {
	if _, ok := g.members[item]; ok {
		g.Update(item, x, y)
		return
	}
	keys := g.KeysFor(x, y)
	for _, k := range keys {
		g.cells[k] = append(g.cells[k], item)
	}
	g.members[item] = keys
}

// Update re-indexes item at (x, y), leaving cells it stays in untouched.
// It reports whether the set of cells changed.
func (g *Grid[T]) Update(item T, x, y float64) bool {
	old, ok := g.members[item]
	if !ok {
		g.Insert(item, x, y)
		return true
	}
	keys := g.KeysFor(x, y)
	changed := false
	for _, k := range old {
		if !slices.Contains(keys, k) {
			g.removeFromCell(k, item)
			changed = true
		}
	}
	for _, k := range keys {
		if !slices.Contains(old, k) {
			g.cells[k] = append(g.cells[k], item)
			changed = true
		}
	}
	g.members[item] = keys
	return changed
}

// Remove drops item from every cell it occupies.
func (g *Grid[T]) Remove(item T) {
	keys, ok := g.members[item]
	if !ok {
		return
	}
	for _, k := range keys {
		g.removeFromCell(k, item)
	}
	delete(g.members, item)
}

func (g *Grid[T]) removeFromCell(k Key, item T) {
	bucket := g.cells[k]
	i := slices.Index(bucket, item)
	if i < 0 {
		return
	}
	bucket = slices.Delete(bucket, i, i+1)
	if len(bucket) == 0 {
		delete(g.cells, k)
		return
	}
	g.cells[k] = bucket
}

// Cell returns the items of one cell in insertion order. The slice is owned
// by the grid and must not be modified.
func (g *Grid[T]) Cell(k Key) []T {
	return g.cells[k]
}

// KeysOf returns the cells item currently occupies, or nil.
func (g *Grid[T]) KeysOf(item T) []Key {
	return g.members[item]
}

// Contains reports whether item is indexed.
func (g *Grid[T]) Contains(item T) bool {
	_, ok := g.members[item]
	return ok
}

// Len returns the number of indexed items.
func (g *Grid[T]) Len() int {
	return len(g.members)
}

// Cells returns the number of non-empty cells.
func (g *Grid[T]) Cells() int {
	return len(g.cells)
}

// Near visits every item indexed in the cells of (x, y), once per item, in
// cell order. Returning false from fn stops the walk.
func (g *Grid[T]) Near(x, y float64, fn func(T) bool) {
	keys := g.KeysFor(x, y)
	var seen map[T]struct{}
	if len(keys) > 1 {
		seen = make(map[T]struct{})
	}
	for _, k := range keys {
		for _, item := range g.cells[k] {
			if seen != nil {
				if _, dup := seen[item]; dup {
					continue
				}
				seen[item] = struct{}{}
			}
			if !fn(item) {
				return
			}
		}
	}
}

// Clear removes every item.
func (g *Grid[T]) Clear() {
	clear(g.cells)
	clear(g.members)
}

// roundHalfUp rounds to the nearest integer, halves towards +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
