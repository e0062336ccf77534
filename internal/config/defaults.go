package config

import (
	_ "embed"
)

//go:embed defaults/place.yaml
var defaultPlaceYAML []byte

// DefaultPlaceConfig returns the default configuration.
func DefaultPlaceConfig() PlaceConfig {
	return PlaceConfig{
		Grid: GridConfig{
			CellWidth:  512,
			CellHeight: 512,
		},
		Movement: MovementConfig{
			Precision: 1,
			Steering: SteeringConfig{
				FlipIntervalMS: 789,
				DetourAngles:   []float64{30, 60, 90, 120},
			},
		},
		Sandbox: SandboxConfig{
			TickRate: 60,
			HUDRows:  1,
		},
		Ramp: RampConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  30,
			},
		},
	}
}
