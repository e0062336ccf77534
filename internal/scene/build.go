package scene

import (
	"fmt"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/place"
	"github.com/vovakirdan/spriteplace/internal/scene/formats"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// Built lists what Build added to the world.
type Built struct {
	Entities []*world.Entity
	Layers   []*world.TileLayer
}

// Bounds returns the scene area, or the bounds of its content when the scene
// file does not declare a size.
func Bounds(sc formats.Scene, w *world.World) core.AABB {
	if sc.Width > 0 && sc.Height > 0 {
		return core.NewAABB(0, 0, sc.Width, sc.Height)
	}
	var pts []core.Vec
	for _, e := range w.Entities() {
		b := e.WorldShape().Bounds()
		pts = append(pts, b.Min, b.Max)
	}
	for _, l := range w.Layers() {
		for _, t := range l.Tiles {
			b := t.Bounds()
			pts = append(pts, b.Min, b.Max)
		}
	}
	if len(pts) == 0 {
		return core.NewAABB(0, 0, 1, 1)
	}
	return core.BoundsOf(pts)
}

// Build registers the scene's types, spawns its entities and adds its tile
// layers. Layers marked for collisions are baked into p. Types already
// registered in w are an error.
func Build(sc formats.Scene, w *world.World, p *place.Place) (Built, error) {
	var out Built

	for _, t := range sc.Types {
		if w.HasType(t.Name) {
			return out, fmt.Errorf("scene %s: type %q already registered", sc.ID, t.Name)
		}
		w.RegisterType(world.Type{
			Name:  t.Name,
			Shape: t.Shape,
			CType: t.CType,
			Glyph: t.Glyph,
			Color: t.Color,
		})
	}

	for i, e := range sc.Entities {
		ent, err := w.Spawn(world.Spawn{
			Type:     e.Type,
			X:        e.X,
			Y:        e.Y,
			ScaleX:   e.ScaleX,
			ScaleY:   e.ScaleY,
			Rotation: e.Rotation,
			CType:    e.CType,
		})
		if err != nil {
			return out, fmt.Errorf("scene %s: entity %d: %w", sc.ID, i, err)
		}
		out.Entities = append(out.Entities, ent)
	}

	for _, l := range sc.Layers {
		tiles := make([]world.Tile, len(l.Tiles))
		for i, t := range l.Tiles {
			tiles[i] = world.Tile{X: t.X, Y: t.Y, W: t.W, H: t.H, Color: t.Color}
		}
		layer := w.AddTileLayer(l.Name, l.Depth, tiles)
		if l.Collisions && p != nil {
			if err := p.EnableTilemapCollisions(layer, l.CType); err != nil {
				return out, fmt.Errorf("scene %s: %w", sc.ID, err)
			}
		}
		out.Layers = append(out.Layers, layer)
	}

	w.Logger().Debug("scene built", "scene", sc.ID,
		"types", len(sc.Types), "entities", len(out.Entities), "layers", len(out.Layers))
	return out, nil
}
