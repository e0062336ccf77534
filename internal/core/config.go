package core

import "time"

// RuntimeConfig contains configuration passed to scenarios at initialization.
// Scenarios use this to size their viewport and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the fixed frame time for the configured tick rate.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// ScenarioState represents the current state of a running scenario.
// Returned by Scenario.State() to communicate status to the platform.
type ScenarioState struct {
	Tick    uint64 // Fixed steps simulated so far
	Blocked int    // Movement calls that ended on an obstacle
	Hits    int    // Scenario-specific hit counter (bullets, lasers)
	Done    bool   // Whether the scenario has finished
	Paused  bool   // Whether the simulation is paused
}

// StepResult is returned by Scenario.Step() after each simulation tick.
type StepResult struct {
	State ScenarioState
}
