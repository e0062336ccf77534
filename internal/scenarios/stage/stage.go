// Package stage holds the setup shared by the sandbox scenarios: loading the
// place configuration, building a world from an embedded scene and driving
// the fixed-step frame.
package stage

import (
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spriteplace/internal/config"
	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/place"
	"github.com/vovakirdan/spriteplace/internal/registry"
	"github.com/vovakirdan/spriteplace/internal/scene"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// configPath stores the custom config path set via CLI
var configPath string

// rampPreset stores the ramp preset set via CLI
var rampPreset config.RampPreset

// logger receives world and scenario lifecycle messages
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetRampPreset sets the ramp preset. Unknown names clear it.
func SetRampPreset(name string) {
	p, ok := config.ParseRampPreset(name)
	if !ok {
		rampPreset = ""
		return
	}
	rampPreset = p
}

// SetLogger sets the logger handed to new worlds.
func SetLogger(l *log.Logger) {
	logger = l
}

// LoadConfig loads the place configuration, falling back to the defaults on
// error, and applies the ramp preset.
func LoadConfig() config.PlaceConfig {
	cfg, err := config.LoadPlace(configPath)
	if err != nil {
		Logger().Warn("using default place config", "err", err)
		cfg = config.DefaultPlaceConfig()
	}
	if rampPreset != "" {
		config.ApplyRampPreset(&cfg, rampPreset)
	}
	return cfg
}

// Logger returns the configured logger or a discarding one.
func Logger() *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// Stage is a world built from a scene plus the frame counters every
// scenario reports.
type Stage struct {
	Config  config.PlaceConfig
	Runtime core.RuntimeConfig
	World   *world.World
	Place   *place.Place
	Scene   scene.Scene
	Built   scene.Built
	Bounds  core.AABB
	Ramp    *config.Ramp
	Rng     *rand.Rand

	tick    uint64
	blocked int
	hits    int
	paused  bool
	done    bool
}

// New loads the config, creates a world and place and builds the scene file
// from fsys into it.
func New(fsys fs.FS, file string, rc core.RuntimeConfig) (*Stage, error) {
	cfg := LoadConfig()

	w, err := world.New(world.Options{
		CellWidth:  cfg.Grid.CellWidth,
		CellHeight: cfg.Grid.CellHeight,
		Logger:     Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	p, err := place.New(w, place.Options{
		FlipInterval: cfg.Movement.Steering.FlipInterval(),
		DetourAngles: cfg.Movement.Steering.DetourAngles,
	})
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	sc, err := scene.NewFSLoader(fsys).LoadFile(file)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}
	built, err := scene.Build(sc.Scene, w, p)
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	return &Stage{
		Config:  cfg,
		Runtime: rc,
		World:   w,
		Place:   p,
		Scene:   sc,
		Built:   built,
		Bounds:  scene.Bounds(sc.Scene, w),
		Ramp:    config.NewRamp(cfg.Ramp),
		Rng:     rand.New(rand.NewSource(rc.Seed)),
	}, nil
}

// MustNew is New for embedded scenes, which are known to be valid.
func MustNew(fsys fs.FS, file string, rc core.RuntimeConfig) *Stage {
	s, err := New(fsys, file, rc)
	if err != nil {
		panic(err)
	}
	return s
}

// Begin handles pause and single-step input and reports whether the frame
// should be simulated. A simulated frame advances the tick and the steering
// clock by one tick duration.
func (s *Stage) Begin(in core.InputFrame) bool {
	if s.done {
		return false
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused && !in.Has(core.ActionStep) {
		return false
	}
	s.tick++
	s.Place.Advance(s.tickDuration())
	return true
}

// End flushes killed entities and reindexes moved ones.
func (s *Stage) End() {
	s.World.EndFrame()
}

func (s *Stage) tickDuration() time.Duration {
	rc := s.Runtime
	if rc.TickRate <= 0 {
		rc.TickRate = s.Config.Sandbox.TickRate
	}
	return rc.TickDuration()
}

// Precision returns the configured movement precision.
func (s *Stage) Precision() float64 {
	return s.Config.Movement.Precision
}

// Tick returns the number of simulated frames.
func (s *Stage) Tick() uint64 {
	return s.tick
}

// Blocked counts a movement that ended on an obstacle.
func (s *Stage) Blocked() {
	s.blocked++
}

// Hit counts a scenario hit.
func (s *Stage) Hit() {
	s.hits++
}

// Hits returns the hit counter.
func (s *Stage) Hits() int {
	return s.hits
}

// Finish marks the scenario done.
func (s *Stage) Finish() {
	s.done = true
}

// State returns the frame counters.
func (s *Stage) State() core.ScenarioState {
	return core.ScenarioState{
		Tick:    s.tick,
		Blocked: s.blocked,
		Hits:    s.hits,
		Done:    s.done,
		Paused:  s.paused,
	}
}

// Level returns the current ramp level.
func (s *Stage) Level() float64 {
	return s.Ramp.Level(s.hits, s.tick)
}

// Inside reports whether the point lies within the scene bounds.
func (s *Stage) Inside(x, y float64) bool {
	b := s.Bounds
	return x >= b.Min.X && x <= b.Max.X && y >= b.Min.Y && y <= b.Max.Y
}

// RandomFree returns a random spot inside the bounds where an entity of the
// given type would not overlap anything, trying at most tries times.
func (s *Stage) RandomFree(e *world.Entity, tries int) (float64, float64, bool) {
	b := s.Bounds
	for range tries {
		x := b.Min.X + s.Rng.Float64()*b.Width()
		y := b.Min.Y + s.Rng.Float64()*b.Height()
		if s.Place.FreeAt(e, x, y, "") {
			if _, hit := s.Place.TileAt(e, x, y, place.AnyTile()); !hit {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Snapshot captures every live entity, ordered by ID.
func (s *Stage) Snapshot(id string) registry.Snapshot {
	ents := s.World.Entities()
	out := make([]registry.EntityState, 0, len(ents))
	for _, e := range ents {
		if e.Killed() {
			continue
		}
		out = append(out, registry.EntityState{ID: uint64(e.ID), Type: e.Type, X: e.X, Y: e.Y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	st := s.Place.Stats()
	return registry.Snapshot{
		Scenario: id,
		Tick:     s.tick,
		Blocked:  s.blocked,
		Hits:     s.hits,
		Entities: out,
		Counters: map[string]uint64{
			"queries":    st.Queries,
			"tests":      st.Tests,
			"full_scans": st.FullScans,
		},
	}
}
