// Package corridor implements a scenario where runners bounce through a
// tile maze. Every runner moves one axis at a time, so a runner driven
// diagonally into a wall slides along it and only the blocked axis bounces.
package corridor

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

// Tuning constants, in world units per tick
const (
	MinRunnerSpeed = 1.0
	MaxRunnerSpeed = 3.0
	ScoutSpeed     = 2.5
	RespawnTries   = 32
)

// Zone is the watched area reported on the HUD.
var Zone = core.NewAABB(160, 80, 80, 80)

// Scenario implements the corridor logic.
type Scenario struct {
	st       *stage.Stage
	scout    *world.Entity
	velocity map[world.EntityID]core.Vec
	inZone   int
}

// New creates a new corridor scenario.
func New() *Scenario {
	return &Scenario{}
}

// ID returns the unique identifier for this scenario.
func (s *Scenario) ID() string {
	return "corridor"
}

// Title returns the display name for this scenario.
func (s *Scenario) Title() string {
	return "Corridor"
}

// Reset rebuilds the maze and gives every runner a random diagonal velocity.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.st = stage.MustNew(scenes, "scenes/corridor.toml", cfg)
	s.scout = s.st.World.OfType("scout")[0]
	s.velocity = make(map[world.EntityID]core.Vec)
	s.inZone = 0

	for _, r := range s.st.World.OfType("runner") {
		s.velocity[r.ID] = core.V(s.randomSpeed(), s.randomSpeed())
	}
}

func (s *Scenario) randomSpeed() float64 {
	v := MinRunnerSpeed + s.st.Rng.Float64()*(MaxRunnerSpeed-MinRunnerSpeed)
	if s.st.Rng.Intn(2) == 0 {
		return -v
	}
	return v
}

// Step advances the scenario by one tick.
func (s *Scenario) Step(in core.InputFrame) core.StepResult {
	if !s.st.Begin(in) {
		return core.StepResult{State: s.st.State()}
	}

	s.moveScout(in)
	s.moveRunners()
	s.collectCoins()
	s.inZone = len(s.st.Place.TraceRectAll(Zone.Min.X, Zone.Min.Y, Zone.Width(), Zone.Height(), "runner"))

	s.st.End()
	return core.StepResult{State: s.st.State()}
}

func (s *Scenario) moveScout(in core.InputFrame) {
	dx, dy := in.Axis()
	if dx == 0 && dy == 0 {
		return
	}
	res, err := s.st.Place.MoveByAxes(s.scout, dx*ScoutSpeed, dy*ScoutSpeed, "wall", s.st.Precision())
	if err == nil && res.Blocked() {
		s.st.Blocked()
	}
}

// moveRunners moves every runner and reverses each axis that hit a wall.
func (s *Scenario) moveRunners() {
	for _, r := range s.st.World.OfType("runner") {
		v := s.velocity[r.ID]
		res, err := s.st.Place.MoveByAxes(r, v.X, v.Y, "wall", s.st.Precision())
		if err != nil {
			continue
		}
		if res.X.Blocked() {
			v.X = -v.X
		}
		if res.Y.Blocked() {
			v.Y = -v.Y
		}
		if res.Blocked() {
			s.st.Blocked()
		}
		s.velocity[r.ID] = v
	}
}

// collectCoins removes every coin touched by a runner or the scout and drops
// a new one at a random free spot.
func (s *Scenario) collectCoins() {
	collectors := append([]*world.Entity{s.scout}, s.st.World.OfType("runner")...)
	for _, c := range collectors {
		coin := s.st.Place.Meet(c, "coin")
		if coin == nil {
			continue
		}
		s.st.Hit()
		s.st.World.Kill(coin)

		x, y, ok := s.st.RandomFree(coin, RespawnTries)
		if !ok {
			continue
		}
		if _, err := s.st.World.Spawn(world.Spawn{Type: "coin", X: x, Y: y}); err != nil {
			stage.Logger().Error("respawn coin", "err", err)
		}
	}
}

// Render draws the maze, the watched zone and a HUD line.
func (s *Scenario) Render(dst *core.Screen) {
	v := s.st.Viewport(dst)
	for _, edge := range [][2]core.Vec{
		{Zone.Min, core.V(Zone.Max.X, Zone.Min.Y)},
		{core.V(Zone.Max.X, Zone.Min.Y), Zone.Max},
		{Zone.Max, core.V(Zone.Min.X, Zone.Max.Y)},
		{core.V(Zone.Min.X, Zone.Max.Y), Zone.Min},
	} {
		dst.Line(v, edge[0], edge[1], stage.LineChar, core.ColorCyan)
	}
	s.st.Render(dst, fmt.Sprintf("in zone %d", s.inZone))
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
	registry.Register("corridor", func() registry.Scenario {
		return New()
	})
}
