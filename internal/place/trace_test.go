package place

import (
	"slices"
	"testing"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/world"
)

func TestTraceOversizedRect(t *testing.T) {
	w, p := newTestPlace(t)
	far := spawn(t, w, "wall", 900, 0)

	// The rect's reference point sits two cells away from the wall, so only
	// a full scan can find it.
	if got := p.TraceRect(-1000, 0, 2000, 10, ""); got != far {
		t.Errorf("TraceRect() = %v, expected the wall at (900, 0)", got)
	}
	if p.Stats().FullScans != 1 {
		t.Errorf("FullScans = %d, expected 1", p.Stats().FullScans)
	}

	if got := p.TraceRect(-1000, 0, 20, 10, ""); got != nil {
		t.Errorf("small TraceRect() = %v, expected nil", got)
	}
	if p.Stats().FullScans != 1 {
		t.Errorf("FullScans = %d, small traces should use the grid", p.Stats().FullScans)
	}
}

func TestTraceRectNegativeSize(t *testing.T) {
	w, p := newTestPlace(t)
	wall := spawn(t, w, "wall", 0, 0)

	if got := p.TraceRect(30, 30, -20, -20, ""); got != wall {
		t.Errorf("TraceRect() with negative size = %v, expected the wall", got)
	}
}

func TestTraceLineAllSorted(t *testing.T) {
	w, p := newTestPlace(t)
	farWall := spawn(t, w, "wall", 60, 0)
	nearWall := spawn(t, w, "wall", 20, 0)
	spawn(t, w, "wall", 20, 100)

	got := p.TraceLineAll(0, 10, 100, 10, "solid")
	if !slices.Equal(got, []*world.Entity{nearWall, farWall}) {
		t.Errorf("TraceLineAll() = %v, expected the near wall then the far one", got)
	}
	if first := p.TraceLine(0, 10, 100, 10, "solid"); first == nil {
		t.Error("TraceLine() = nil, expected a hit")
	}
	if got := p.TraceLine(0, 50, 100, 50, "solid"); got != nil {
		t.Errorf("TraceLine() between walls = %v, expected nil", got)
	}
	if got := p.TraceLine(0, 10, 100, 10, "water"); got != nil {
		t.Errorf("TraceLine(water) = %v, expected nil", got)
	}
}

func TestTraceLineAlongEdge(t *testing.T) {
	w, p := newTestPlace(t)
	spawn(t, w, "wall", 20, 0)

	if got := p.TraceLine(0, 0, 100, 0, ""); got != nil {
		t.Errorf("TraceLine() along an edge = %v, expected nil", got)
	}
}

func TestTraceCircle(t *testing.T) {
	w, p := newTestPlace(t)
	a := spawn(t, w, "wall", 0, 0)
	b := spawn(t, w, "wall", 40, 0)

	got := p.TraceCircleAll(50, 10, 35, "")
	if !slices.Equal(got, []*world.Entity{b, a}) {
		t.Errorf("TraceCircleAll() = %v, expected both walls nearest first", got)
	}
	if got := p.TraceCircle(100, 100, 5, ""); got != nil {
		t.Errorf("TraceCircle() = %v, expected nil", got)
	}
}

func TestTracePolyline(t *testing.T) {
	w, p := newTestPlace(t)
	wall := spawn(t, w, "wall", 40, 40)

	open := []core.Vec{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 100}}
	if got := p.TracePolyline(open, false, ""); got != wall {
		t.Errorf("TracePolyline() = %v, expected the wall", got)
	}

	// An open square around the wall misses it; the closed one contains it.
	square := []core.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	if got := p.TracePolyline(square, false, ""); got != nil {
		t.Errorf("open TracePolyline() = %v, expected nil", got)
	}
	if got := p.TracePolylineAll(square, true, ""); !slices.Equal(got, []*world.Entity{wall}) {
		t.Errorf("closed TracePolylineAll() = %v, expected the wall", got)
	}
	if got := p.TracePolyline(nil, false, ""); got != nil {
		t.Errorf("empty TracePolyline() = %v, expected nil", got)
	}
}

func TestTracePoint(t *testing.T) {
	w, p := newTestPlace(t)
	a := spawn(t, w, "wall", 0, 0)
	b := spawn(t, w, "wall", 10, 10)

	if got := p.TracePointAll(15, 15, ""); !slices.Equal(got, []*world.Entity{b, a}) {
		t.Errorf("TracePointAll() = %v, expected both walls nearest first", got)
	}
	if got := p.TracePoint(20, 5, ""); got != nil {
		t.Errorf("TracePoint() on an edge = %v, expected nil", got)
	}
	if got := p.TracePoint(25, 25, ""); got != b {
		t.Errorf("TracePoint() = %v, expected the second wall", got)
	}
}

func TestTraceSkipsKilled(t *testing.T) {
	w, p := newTestPlace(t)
	wall := spawn(t, w, "wall", 0, 0)
	w.Kill(wall)

	if got := p.TracePoint(5, 5, ""); got != nil {
		t.Errorf("TracePoint() = %v, expected killed entities to be skipped", got)
	}
}
