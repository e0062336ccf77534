package config

import "math"

// Ramp calculates scenario load parameters from hits and elapsed ticks.
type Ramp struct {
	cfg          RampConfig
	initialLevel float64
}

// NewRamp creates a new ramp.
func NewRamp(cfg RampConfig) *Ramp {
	return &Ramp{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial level (0.0 to 1.0).
func (r *Ramp) SetInitialLevel(level float64) {
	r.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables progression.
func (r *Ramp) SetEnabled(enabled bool) {
	r.cfg.Enabled = enabled
}

// IsEnabled returns whether progression is active.
func (r *Ramp) IsEnabled() bool {
	return r.cfg.Enabled && r.cfg.Progression.Type != "none"
}

// Level returns the current level (0.0 to 1.0) based on hits/ticks.
func (r *Ramp) Level(hits int, ticks uint64) float64 {
	if !r.IsEnabled() {
		return r.initialLevel
	}

	maxAt := float64(r.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch r.cfg.Progression.Type {
	case "hits":
		progress = float64(hits) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return r.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return r.initialLevel + progress*(1.0-r.initialLevel)
}

// Speed scales a base speed from base to base * (1 + speed_multiplier).
func (r *Ramp) Speed(base float64, hits int, ticks uint64) float64 {
	return base * (1.0 + r.Level(hits, ticks)*r.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens a spawn interval (in ticks) as the level rises, never
// below floor.
func (r *Ramp) Interval(base, floor int, hits int, ticks uint64) int {
	reduction := int(r.Level(hits, ticks) * float64(r.cfg.Scaling.SpawnReduction))
	return max(base-reduction, floor)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
