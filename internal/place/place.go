// Package place answers spatial questions about a world and moves entities
// without letting them pass through each other.
//
// Queries use the entity grid for shapes no larger than one cell and fall
// back to scanning every entity otherwise. A query that names a position
// other than the entity's own derives a temporary shape for it; neither the
// entity, its cached shape nor the grid are touched.
package place

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spriteplace/internal/spatial"
	"github.com/vovakirdan/spriteplace/internal/world"
)

// DefaultPrecision is the movement step length used by callers that do not
// configure one.
const DefaultPrecision = 1.0

var (
	// ErrTilesAlreadyEnabled is returned when a tile layer is baked twice.
	ErrTilesAlreadyEnabled = errors.New("tile collisions already enabled")
	// ErrInvalidPrecision is returned for a non-positive movement precision.
	ErrInvalidPrecision = errors.New("precision must be positive")
	// ErrInvalidStep is returned for a non-positive steering step.
	ErrInvalidStep = errors.New("step must be positive")
)

// Options tunes steering. Zero values select the defaults.
type Options struct {
	FlipInterval time.Duration
	DetourAngles []float64
}

// DefaultDetourAngles are the bearing offsets, in degrees, tried by Go when
// the direct path is blocked.
var DefaultDetourAngles = []float64{30, 60, 90, 120}

// Stats counts query work since the place was created or last reset.
type Stats struct {
	Queries   uint64 `msgpack:"queries"`
	Tests     uint64 `msgpack:"tests"`
	FullScans uint64 `msgpack:"full_scans"`
}

// Place runs queries and movement against one world.
type Place struct {
	w   *world.World
	log *log.Logger

	tiles      *spatial.Grid[world.TileID]
	tileGroups map[int]string

	steering Steering
	angles   []float64

	lastDist float64
	stats    Stats
}

// New creates a place for w. The tile grid uses the same cell size as the
// entity grid.
func New(w *world.World, opts Options) (*Place, error) {
	cw, ch := w.Grid().CellSize()
	tiles, err := spatial.NewGrid[world.TileID](cw, ch)
	if err != nil {
		return nil, fmt.Errorf("place: tile grid: %w", err)
	}

	interval := opts.FlipInterval
	if interval == 0 {
		interval = DefaultFlipInterval
	}
	angles := opts.DetourAngles
	if len(angles) == 0 {
		angles = DefaultDetourAngles
	}

	return &Place{
		w:          w,
		log:        w.Logger(),
		tiles:      tiles,
		tileGroups: make(map[int]string),
		steering:   NewSteering(interval),
		angles:     append([]float64(nil), angles...),
	}, nil
}

// World returns the world the place operates on.
func (p *Place) World() *world.World {
	return p.w
}

// Advance feeds frame time to the steering modifier.
func (p *Place) Advance(dt time.Duration) {
	p.steering.Advance(dt)
}

// Steering returns the steering state shared by every Go call.
func (p *Place) Steering() *Steering {
	return &p.steering
}

// Stats returns the query counters.
func (p *Place) Stats() Stats {
	return p.stats
}

// ResetStats zeroes the query counters.
func (p *Place) ResetStats() {
	p.stats = Stats{}
}

// Reset empties the world through World.Reset and drops the baked tiles,
// steering state and counters of the place. Layer IDs start over after a
// world reset, so a world that has a place must be reset through it.
func (p *Place) Reset() {
	p.w.Reset()
	p.tiles.Clear()
	clear(p.tileGroups)
	p.steering = NewSteering(p.steering.interval)
	p.lastDist = 0
	p.stats = Stats{}
}

// LastDistance returns the distance of the entity picked by the most recent
// Nearest or Furthest call.
func (p *Place) LastDistance() float64 {
	return p.lastDist
}
