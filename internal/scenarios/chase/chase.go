// Package chase implements a scenario where hunters steer around pillars
// towards a beacon. Hunters use Go; the beacon slides along walls under
// player control and wanders between random free spots otherwise.
package chase

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
	HunterSpeed  = 1.5
	BeaconSpeed  = 3.0
	WanderSpeed  = 2.0
	RespawnTries = 32
)

// Scenario implements the chase logic.
type Scenario struct {
	st     *stage.Stage
	beacon *world.Entity

	waypoint    core.Vec
	hasWaypoint bool
}

// New creates a new chase scenario.
func New() *Scenario {
	return &Scenario{}
}

// ID returns the unique identifier for this scenario.
func (s *Scenario) ID() string {
	return "chase"
}

// Title returns the display name for this scenario.
func (s *Scenario) Title() string {
	return "Chase"
}

// Reset rebuilds the world from the embedded scene.
func (s *Scenario) Reset(cfg core.RuntimeConfig) {
	s.st = stage.MustNew(scenes, "scenes/chase.yaml", cfg)
	s.beacon = s.st.World.OfType("beacon")[0]
	s.hasWaypoint = false
}

// Step advances the scenario by one tick.
func (s *Scenario) Step(in core.InputFrame) core.StepResult {
	if !s.st.Begin(in) {
		return core.StepResult{State: s.st.State()}
	}

	s.moveBeacon(in)
	s.moveHunters()
	s.catchHunters()

	s.st.End()
	return core.StepResult{State: s.st.State()}
}

// moveBeacon follows the input axis, or wanders when there is none.
func (s *Scenario) moveBeacon(in core.InputFrame) {
	p := s.st.Place
	dx, dy := in.Axis()
	if dx != 0 || dy != 0 {
		s.hasWaypoint = false
		res, err := p.MoveByAxes(s.beacon, dx*BeaconSpeed, dy*BeaconSpeed, "solid", s.st.Precision())
		if err == nil && res.Blocked() {
			s.st.Blocked()
		}
		return
	}

	if !s.hasWaypoint {
		x, y, ok := s.st.RandomFree(s.beacon, RespawnTries)
		if !ok {
			return
		}
		s.waypoint, s.hasWaypoint = core.V(x, y), true
	}

	moved, err := p.Go(s.beacon, s.waypoint.X, s.waypoint.Y, WanderSpeed, "solid")
	if err != nil {
		return
	}
	if !moved {
		s.st.Blocked()
		s.hasWaypoint = false
		return
	}
	if s.beacon.Pos() == s.waypoint {
		s.hasWaypoint = false
	}
}

// moveHunters steps every hunter towards the beacon.
func (s *Scenario) moveHunters() {
	speed := s.st.Ramp.Speed(HunterSpeed, s.st.Hits(), s.st.Tick())
	for _, h := range s.st.World.OfType("hunter") {
		if h.Killed() {
			continue
		}
		moved, err := s.st.Place.Go(h, s.beacon.X, s.beacon.Y, speed, "solid")
		if err == nil && !moved {
			s.st.Blocked()
		}
	}
}

// catchHunters replaces every hunter touching the beacon with a fresh one
// at a random free spot.
func (s *Scenario) catchHunters() {
	p := s.st.Place
	for _, h := range p.MeetAll(s.beacon, "hunter") {
		s.st.Hit()
		s.st.World.Kill(h)

		x, y, ok := s.st.RandomFree(h, RespawnTries)
		if !ok {
			continue
		}
		if _, err := s.st.World.Spawn(world.Spawn{Type: "hunter", X: x, Y: y}); err != nil {
			stage.Logger().Error("respawn hunter", "err", err)
		}
	}
}

// Render draws the world and a HUD line.
func (s *Scenario) Render(dst *core.Screen) {
	hud := fmt.Sprintf("level %.2f", s.st.Level())
	if h, ok := s.st.Place.Nearest(s.beacon.X, s.beacon.Y, "hunter"); ok {
		hud += fmt.Sprintf("  nearest %.0f", s.beacon.Pos().Dist(h.Pos()))
	}
	s.st.Render(dst, hud)
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
	registry.Register("chase", func() registry.Scenario {
		return New()
	})
}
