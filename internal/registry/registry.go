// Package registry provides a global registry for scenario factories.
// Scenarios register themselves in init() functions, allowing the sandbox
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/spriteplace/internal/core"
)

// Scenario is a fixed-step scene driving a world through place queries and
// movement. Scenarios hold no terminal state; the platform maps input,
// timing and rendering.
type Scenario interface {
	// ID returns a unique identifier (e.g., "chase"). Used for CLI commands
	// and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh world. Called once at start and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the world into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current counters.
	State() core.ScenarioState

	// Snapshot returns a msgpack-encodable view of the world used for
	// determinism checks and stored with recorded runs.
	Snapshot() Snapshot
}

// Snapshot captures the observable state of a scenario.
type Snapshot struct {
	Scenario string            `msgpack:"scenario"`
	Tick     uint64            `msgpack:"tick"`
	Blocked  int               `msgpack:"blocked"`
	Hits     int               `msgpack:"hits"`
	Entities []EntityState     `msgpack:"entities"`
	Counters map[string]uint64 `msgpack:"counters,omitempty"`
}

// EntityState is one entity in a snapshot.
type EntityState struct {
	ID   uint64  `msgpack:"id"`
	Type string  `msgpack:"type"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Typically called from a scenario's init() function.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ScenarioInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scenario by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
