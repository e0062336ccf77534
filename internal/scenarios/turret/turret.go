// Package turret implements a scenario where a fixed turret shoots drones.
// The turret aims at the nearest drone in line of sight, falling back to the
// furthest one; bullets travel with MoveAlong and stop at the first thing
// they touch.
package turret

import (
	"embed"
	"fmt"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/registry"
	"github.com/vovakirdan/spriteplace/internal/scenarios/stage"
	"github.com/vovakirdan/spriteplace/internal/world"
)

//go:embed scenes
var scenes embed.FS

// Tuning constants. Speeds are world units per tick, intervals are ticks.
const (
	DroneSpeed     = 1.2
	BulletSpeed    = 6.0
	FireInterval   = 45
	FireFloor      = 8
	SpawnInterval  = 120
	SpawnFloor     = 30
	MaxDrones      = 8
	MuzzleDistance = 10.0
	RespawnTries   = 32
)

// Scenario implements the turret logic.
type Scenario struct {
	st      *stage.Stage
	turret  *world.Entity
	heading map[world.EntityID]float64

	nextFire  uint64
	nextSpawn uint64
	laser     [2]core.Vec
	hasLaser  bool
}

// New creates a new turret scenario.
func New() *Scenario {
	return &Scenario{}
}

// ID returns the unique identifier for this scenario.
func (s *Scenario) ID() string {
	return "turret"
}

// Title returns the display name for this scenario.
func (s *Scenario) Title() string {
	return "Turret"
}

// Reset rebuilds the arena and sends every drone off in a random direction.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.st = stage.MustNew(scenes, "scenes/turret.yaml", cfg)
	s.turret = s.st.World.OfType("turret")[0]
	s.heading = make(map[world.EntityID]float64)
	s.nextFire = FireInterval
	s.nextSpawn = SpawnInterval
	s.hasLaser = false

	for _, d := range s.st.World.OfType("drone") {
		s.heading[d.ID] = s.st.Rng.Float64() * 360
	}
}

// Step advances the scenario by one tick.
func (s *Scenario) Step(in core.InputFrame) core.StepResult {
	if !s.st.Begin(in) {
		return core.StepResult{State: s.st.State()}
	}
	tick := s.st.Tick()

	s.moveDrones()
	s.moveBullets()

	if in.Has(core.ActionFire) || tick >= s.nextFire {
		s.fire()
		s.nextFire = tick + uint64(s.st.Ramp.Interval(FireInterval, FireFloor, s.st.Hits(), tick))
	}
	if tick >= s.nextSpawn {
		s.spawnDrone()
		s.nextSpawn = tick + uint64(s.st.Ramp.Interval(SpawnInterval, SpawnFloor, s.st.Hits(), tick))
	}

	s.st.End()
	return core.StepResult{State: s.st.State()}
}

// moveDrones flies every drone along its heading and turns it around,
// with some spread, when it hits a wall or cover.
func (s *Scenario) moveDrones() {
	speed := s.st.Ramp.Speed(DroneSpeed, s.st.Hits(), s.st.Tick())
	for _, d := range s.st.World.OfType("drone") {
		if d.Killed() {
			continue
		}
		dir := s.heading[d.ID]
		ob, err := s.st.Place.MoveAlong(d, dir, speed, "wall", s.st.Precision())
		if err != nil {
			continue
		}
		if ob.Blocked() {
			s.st.Blocked()
			s.heading[d.ID] = dir + 180 + (s.st.Rng.Float64()*90 - 45)
		}
	}
}

// moveBullets advances bullets. A bullet stops at any entity or tile; when
// that is a drone both are destroyed.
func (s *Scenario) moveBullets() {
	for _, b := range s.st.World.OfType("bullet") {
		if b.Killed() {
			continue
		}
		ob, err := s.st.Place.MoveAlong(b, b.Rotation, BulletSpeed, "", s.st.Precision())
		if err != nil {
			continue
		}
		if ob.Entity != nil && ob.Entity.Type == "drone" {
			s.st.Hit()
			s.st.World.Kill(ob.Entity)
			delete(s.heading, ob.Entity.ID)
		}
		if ob.Blocked() || !s.st.Inside(b.X, b.Y) {
			s.st.World.Kill(b)
		}
	}
}

// target picks the nearest drone if nothing covers it, then the furthest.
func (s *Scenario) target() (*world.Entity, bool) {
	p := s.st.Place
	t := s.turret
	for _, pick := range []func(x, y float64, typ string) (*world.Entity, bool){p.Nearest, p.Furthest} {
		d, ok := pick(t.X, t.Y, "drone")
		if !ok {
			return nil, false
		}
		if p.TraceLine(t.X, t.Y, d.X, d.Y, "wall") == nil {
			return d, true
		}
	}
	return nil, false
}

func (s *Scenario) fire() {
	d, ok := s.target()
	if !ok {
		s.hasLaser = false
		s.st.Blocked()
		return
	}
	t := s.turret
	dir := core.PointDirection(t.X, t.Y, d.X, d.Y)
	muzzle := t.Pos().Add(core.LengthDir(MuzzleDistance, dir))
	s.laser, s.hasLaser = [2]core.Vec{t.Pos(), d.Pos()}, true

	// The bullet carries its heading in Rotation; a point shape ignores it.
	if _, err := s.st.World.Spawn(world.Spawn{Type: "bullet", X: muzzle.X, Y: muzzle.Y, Rotation: dir}); err != nil {
		stage.Logger().Error("spawn bullet", "err", err)
	}
}

func (s *Scenario) spawnDrone() {
	if len(s.st.World.OfType("drone")) >= MaxDrones {
		return
	}
	d, err := s.st.World.Spawn(world.Spawn{Type: "drone", X: s.turret.X, Y: s.turret.Y})
	if err != nil {
		stage.Logger().Error("spawn drone", "err", err)
		return
	}
	x, y, ok := s.st.RandomFree(d, RespawnTries)
	if !ok {
		s.st.World.Destroy(d)
		return
	}
	d.X, d.Y = x, y
	s.heading[d.ID] = s.st.Rng.Float64() * 360
}

// Render draws the arena, the last aim line and a HUD line.
func (s *Scenario) Render(dst *core.Screen) {
	if s.hasLaser {
		dst.Line(s.st.Viewport(dst), s.laser[0], s.laser[1], stage.LineChar, core.ColorRed)
	}
	s.st.Render(dst, fmt.Sprintf("drones %d  level %.2f", len(s.st.World.OfType("drone")), s.st.Level()))
}

// State returns the current scenario state.
func (s *Scenario) State() core.ScenarioState {
	return s.st.State()
}

// Snapshot returns the current world snapshot for determinism verification.
func (s *Scenario) Snapshot() registry.Snapshot {
	return s.st.Snapshot(s.ID())
}

func init() {
	registry.Register("turret", func() registry.Scenario {
		return New()
	})
}
