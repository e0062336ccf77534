package turret

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/place"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2024}

func TestDeterminism(t *testing.T) {
	s1 := New()
	s1.Reset(testConfig)
	s2 := New()
	s2.Reset(testConfig)

	input := core.NewInputFrame()
	for i := 0; i < 600; i++ {
		input.Clear()
		if i%30 == 0 {
			input.Set(core.ActionFire)
		}
		s1.Step(input)
		s2.Step(input)
	}

	if !reflect.DeepEqual(s1.Snapshot(), s2.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1.Snapshot(), s2.Snapshot())
	}
}

func TestFireSpawnsBullet(t *testing.T) {
	s := New()
	s.Reset(testConfig)

	input := core.NewInputFrame()
	input.Set(core.ActionFire)
	s.Step(input)

	bullets := s.st.World.OfType("bullet")
	if len(bullets) != 1 {
		t.Fatalf("bullets = %d, expected 1", len(bullets))
	}
	b := bullets[0]
	if d := b.Pos().Dist(s.turret.Pos()); d < MuzzleDistance-1e-9 || d > MuzzleDistance+1e-9 {
		t.Errorf("bullet spawned %v from the turret, expected %v", d, MuzzleDistance)
	}
	if !s.hasLaser {
		t.Error("fire did not record an aim line")
	}
}

func TestTargetSkipsCoveredDrones(t *testing.T) {
	s := New()
	s.Reset(testConfig)

	d, ok := s.target()
	if !ok {
		t.Fatal("target() found nothing")
	}
	if hit := s.st.Place.TraceLine(s.turret.X, s.turret.Y, d.X, d.Y, "wall"); hit != nil {
		t.Errorf("target() = drone at (%v, %v) behind %s", d.X, d.Y, hit.Type)
	}
}

func TestDronesStayOutOfCover(t *testing.T) {
	s := New()
	s.Reset(testConfig)

	input := core.NewInputFrame()
	for i := 0; i < 1200; i++ {
		s.Step(input)
		for _, d := range s.st.World.OfType("drone") {
			if o := s.st.Place.Occupied(d, "wall"); o != nil {
				t.Fatalf("tick %d: drone %v overlaps %s", i, d.ID, o.Type)
			}
			if _, hit := s.st.Place.Tile(d, place.TileGroup("wall")); hit {
				t.Fatalf("tick %d: drone %v overlaps the border", i, d.ID)
			}
		}
		for _, b := range s.st.World.OfType("bullet") {
			if !s.st.Inside(b.X, b.Y) {
				t.Fatalf("tick %d: bullet %v left the arena", i, b.ID)
			}
		}
	}
	if n := len(s.st.World.OfType("drone")); n > MaxDrones {
		t.Errorf("drones = %d, expected at most %d", n, MaxDrones)
	}
}
