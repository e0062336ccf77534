package place

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/spriteplace/internal/collide"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// TileFilter selects which baked tiles a tile query considers.
type TileFilter struct {
	group   string
	depth   int
	byDepth bool
}

// AnyTile matches every baked tile.
func AnyTile() TileFilter {
	return TileFilter{}
}

// TileGroup matches tiles baked with collision group ctype. An empty group
// matches every tile.
func TileGroup(ctype string) TileFilter {
	return TileFilter{group: ctype}
}

// TileDepth matches tiles of layers drawn at depth d.
func TileDepth(d int) TileFilter {
	return TileFilter{depth: d, byDepth: true}
}

func (f TileFilter) match(l *world.TileLayer, group string) bool {
	if f.byDepth {
		return l.Depth == f.depth
	}
	return f.group == "" || f.group == group
}

// EnableTilemapCollisions bakes one rectangle per tile of layer into the
// tile grid under collision group ctype. A layer can be baked only once.
func (p *Place) EnableTilemapCollisions(layer *world.TileLayer, ctype string) error {
	if layer == nil {
		return errors.New("place: enable tile collisions: nil layer")
	}
	if _, done := p.tileGroups[layer.ID]; done {
		return fmt.Errorf("place: layer %q: %w", layer.Name, ErrTilesAlreadyEnabled)
	}
	for i, t := range layer.Tiles {
		p.tiles.Insert(world.TileID{Layer: layer.ID, Index: i}, t.X, t.Y)
	}
	p.tileGroups[layer.ID] = ctype
	p.log.Debug("tile collisions enabled", "layer", layer.Name, "ctype", ctype, "tiles", len(layer.Tiles), "cells", p.tiles.Cells())
	return nil
}

// TilesEnabled reports whether layer has been baked.
func (p *Place) TilesEnabled(layer *world.TileLayer) bool {
	_, ok := p.tileGroups[layer.ID]
	return ok
}

// Tile reports the first baked tile matching f that e overlaps.
func (p *Place) Tile(e *world.Entity, f TileFilter) (world.TileID, bool) {
	return p.TileAt(e, e.X, e.Y, f)
}

// TileAt is Tile with e placed at (x, y).
func (p *Place) TileAt(e *world.Entity, x, y float64, f TileFilter) (world.TileID, bool) {
	p.stats.Queries++
	prim := e.ShapeAt(x, y)

	var (
		found world.TileID
		hit   bool
	)
	p.tiles.Near(x, y, func(id world.TileID) bool {
		layer := p.w.Layer(id.Layer)
		if layer == nil || !f.match(layer, p.tileGroups[id.Layer]) {
			return true
		}
		t := p.w.Tile(id)
		if t == nil {
			return true
		}
		p.stats.Tests++
		if collide.Test(prim, collide.Box{AABB: t.Bounds()}) {
			found, hit = id, true
			return false
		}
		return true
	})
	return found, hit
}
