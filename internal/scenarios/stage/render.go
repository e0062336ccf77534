package stage

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/spriteplace/internal/collide"
	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// Visual characters for rendering
const (
	TileChar = '█'
	LineChar = '·'
)

// Viewport fits the scene bounds to the screen below the HUD rows.
func (s *Stage) Viewport(dst *core.Screen) core.Viewport {
	return core.FitViewport(s.Bounds, dst.Width(), dst.Height(), s.Config.Sandbox.HUDRows)
}

// Render draws tile layers by depth, deepest first, then every live entity.
// Line-like shapes are traced; everything else is drawn as its glyph.
func (s *Stage) Render(dst *core.Screen, hud string) {
	v := s.Viewport(dst)

	layers := append([]*world.TileLayer(nil), s.World.Layers()...)
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Depth > layers[j].Depth })
	for _, l := range layers {
		for _, t := range l.Tiles {
			dst.FillBox(v, t.Bounds(), TileChar, t.Color)
		}
	}

	for _, e := range s.World.Entities() {
		if e.Killed() {
			continue
		}
		switch prim := e.WorldShape().(type) {
		case collide.Segment:
			dst.Line(v, prim.A, prim.B, LineChar, e.Color)
		case collide.Poly:
			for _, edge := range prim.Edges() {
				dst.Line(v, edge.A, edge.B, LineChar, e.Color)
			}
		}
		dst.Plot(v, e.Pos(), e.Glyph, e.Color)
	}

	if s.Config.Sandbox.HUDRows > 0 {
		st := s.State()
		line := fmt.Sprintf("tick %d  blocked %d  hits %d  %s", st.Tick, st.Blocked, st.Hits, hud)
		if st.Paused {
			line += "  [paused]"
		}
		dst.DrawText(0, 0, line, core.ColorWhite)
	}
}
