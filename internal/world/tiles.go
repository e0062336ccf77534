package world

import (
	"github.com/vovakirdan/spriteplace/internal/core"
)

// Tile is one rectangular tile of a layer, positioned by its top-left corner.
type Tile struct {
	X, Y float64
	W, H float64
	Color core.Color
}

// Bounds returns the tile rectangle.
func (t Tile) Bounds() core.AABB {
	return core.NewAABB(t.X, t.Y, t.W, t.H)
}

// TileLayer is a static set of tiles drawn at one depth.
type TileLayer struct {
	ID    int
	Name  string
	Depth int
	Tiles []Tile
}

// TileID addresses one tile of one layer.
type TileID struct {
	Layer int
	Index int
}

// AddTileLayer registers a tile layer. Tiles are copied; layers are never
// modified afterwards.
func (w *World) AddTileLayer(name string, depth int, tiles []Tile) *TileLayer {
	l := &TileLayer{
		ID:    len(w.layers),
		Name:  name,
		Depth: depth,
		Tiles: append([]Tile(nil), tiles...),
	}
	w.layers = append(w.layers, l)
	w.log.Debug("tile layer added", "layer", name, "depth", depth, "tiles", len(tiles))
	return l
}

// Layers returns the tile layers in the order they were added.
func (w *World) Layers() []*TileLayer {
	return w.layers
}

// Layer returns the layer with the given ID, or nil.
func (w *World) Layer(id int) *TileLayer {
	if id < 0 || id >= len(w.layers) {
		return nil
	}
	return w.layers[id]
}

// Tile resolves a tile ID, or returns nil when it does not exist.
func (w *World) Tile(id TileID) *Tile {
	l := w.Layer(id.Layer)
	if l == nil || id.Index < 0 || id.Index >= len(l.Tiles) {
		return nil
	}
	return &l.Tiles[id.Index]
}
