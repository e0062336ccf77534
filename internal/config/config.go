// Package config provides YAML-based configuration for the spatial core and
// the sandbox that exercises it.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// PlaceConfig contains all configuration read from place.yaml.
type PlaceConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Movement MovementConfig `yaml:"movement"`
	Sandbox  SandboxConfig  `yaml:"sandbox"`
	Ramp     RampConfig     `yaml:"ramp"`
}

// GridConfig sizes the cells of the entity and tile grids.
type GridConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// MovementConfig defines defaults for the movement functions.
type MovementConfig struct {
	Precision float64        `yaml:"precision"` // Step length of MoveAlong / MoveByAxes
	Steering  SteeringConfig `yaml:"steering"`
}

// SteeringConfig defines how Go searches around obstacles.
type SteeringConfig struct {
	FlipIntervalMS int       `yaml:"flip_interval_ms"` // Frame time between sign flips
	DetourAngles   []float64 `yaml:"detour_angles"`    // Degrees tried on both sides
}

// FlipInterval returns the flip interval as a duration.
func (s SteeringConfig) FlipInterval() time.Duration {
	return time.Duration(s.FlipIntervalMS) * time.Millisecond
}

// SandboxConfig defines the terminal sandbox loop.
type SandboxConfig struct {
	TickRate int `yaml:"tick_rate"` // Fixed steps per second
	HUDRows  int `yaml:"hud_rows"`  // Rows reserved above the world view
}

// RampConfig defines how scenario load grows over a run.
type RampConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = calm, 1.0 = busiest
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the ramp.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "hits", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Hits/ticks at which the ramp tops out
}

// ScalingConfig defines the magnitude of ramp changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to speed at full ramp
	SpawnReduction  int     `yaml:"spawn_reduction"`  // Ticks removed from spawn intervals at full ramp
}

// Validate checks the values the core rejects at runtime.
func (c PlaceConfig) Validate() error {
	if !(c.Grid.CellWidth > 0) || !(c.Grid.CellHeight > 0) {
		return fmt.Errorf("config: grid cell %vx%v: %w", c.Grid.CellWidth, c.Grid.CellHeight, ErrInvalidConfig)
	}
	if !(c.Movement.Precision > 0) {
		return fmt.Errorf("config: movement precision %v: %w", c.Movement.Precision, ErrInvalidConfig)
	}
	if c.Movement.Steering.FlipIntervalMS < 0 {
		return fmt.Errorf("config: steering flip interval %dms: %w", c.Movement.Steering.FlipIntervalMS, ErrInvalidConfig)
	}
	if c.Sandbox.TickRate <= 0 {
		return fmt.Errorf("config: sandbox tick rate %d: %w", c.Sandbox.TickRate, ErrInvalidConfig)
	}
	return nil
}

// RampPreset represents a named load level.
type RampPreset string

const (
	RampCalm   RampPreset = "calm"
	RampNormal RampPreset = "normal"
	RampBusy   RampPreset = "busy"
	RampFixed  RampPreset = "fixed"
)

// ParseRampPreset resolves a preset name, reporting false for unknown names.
func ParseRampPreset(name string) (RampPreset, bool) {
	switch p := RampPreset(name); p {
	case RampCalm, RampNormal, RampBusy, RampFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a ramp preset.
func InitialLevelForPreset(preset RampPreset) float64 {
	switch preset {
	case RampCalm:
		return 0.0
	case RampNormal:
		return 0.3
	case RampBusy:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset RampPreset) bool {
	return preset == RampFixed
}
