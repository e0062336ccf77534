package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded PlaceConfig
	if err := yaml.Unmarshal(defaultPlaceYAML, &embedded); err != nil {
		t.Fatalf("embedded place.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(embedded, DefaultPlaceConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", embedded, DefaultPlaceConfig())
	}
}

func TestLoadPlaceCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "place.yaml")
	data := []byte("grid:\n  cell_width: 64\nmovement:\n  precision: 0.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlace(path)
	if err != nil {
		t.Fatalf("LoadPlace() error = %v", err)
	}
	if cfg.Grid.CellWidth != 64 || cfg.Movement.Precision != 0.5 {
		t.Errorf("LoadPlace() = %+v, expected overrides applied", cfg)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Grid.CellHeight != 512 || cfg.Movement.Steering.FlipIntervalMS != 789 {
		t.Errorf("LoadPlace() = %+v, expected defaults for missing keys", cfg)
	}
}

func TestLoadPlaceErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(broken, []byte("grid: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte("movement:\n  precision: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPlace(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadPlace(missing) error = nil, expected a read error")
	}
	if _, err := LoadPlace(broken); err == nil {
		t.Error("LoadPlace(broken) error = nil, expected a parse error")
	}
	if _, err := LoadPlace(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadPlace(invalid) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*PlaceConfig)
		valid  bool
	}{
		{"defaults", func(*PlaceConfig) {}, true},
		{"zero cell width", func(c *PlaceConfig) { c.Grid.CellWidth = 0 }, false},
		{"negative cell height", func(c *PlaceConfig) { c.Grid.CellHeight = -8 }, false},
		{"zero precision", func(c *PlaceConfig) { c.Movement.Precision = 0 }, false},
		{"negative flip interval", func(c *PlaceConfig) { c.Movement.Steering.FlipIntervalMS = -1 }, false},
		{"zero tick rate", func(c *PlaceConfig) { c.Sandbox.TickRate = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlaceConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() error = %v, expected nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestFlipInterval(t *testing.T) {
	s := SteeringConfig{FlipIntervalMS: 789}
	if s.FlipInterval() != 789*time.Millisecond {
		t.Errorf("FlipInterval() = %v, expected 789ms", s.FlipInterval())
	}
}

func TestRampPresets(t *testing.T) {
	tests := []struct {
		name    string
		level   float64
		enabled bool
	}{
		{"calm", 0.0, true},
		{"normal", 0.3, true},
		{"busy", 0.7, true},
		{"fixed", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, ok := ParseRampPreset(tt.name)
			if !ok {
				t.Fatalf("ParseRampPreset(%q) failed", tt.name)
			}
			cfg := DefaultPlaceConfig()
			ApplyRampPreset(&cfg, preset)
			if cfg.Ramp.Enabled != tt.enabled {
				t.Errorf("Ramp.Enabled = %v, expected %v", cfg.Ramp.Enabled, tt.enabled)
			}
			if tt.enabled && cfg.Ramp.InitialLevel != tt.level {
				t.Errorf("Ramp.InitialLevel = %v, expected %v", cfg.Ramp.InitialLevel, tt.level)
			}
		})
	}

	if _, ok := ParseRampPreset("insane"); ok {
		t.Error("ParseRampPreset(insane) should fail")
	}
}

func TestRampLevel(t *testing.T) {
	cfg := RampConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, SpawnReduction: 40},
	}
	r := NewRamp(cfg)

	tests := []struct {
		ticks    uint64
		expected float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := r.Level(0, tt.ticks); got < tt.expected-1e-9 || got > tt.expected+1e-9 {
			t.Errorf("Level(0, %d) = %v, expected %v", tt.ticks, got, tt.expected)
		}
	}

	if got := r.Speed(2, 0, 100); got != 4 {
		t.Errorf("Speed(2) at full ramp = %v, expected 4", got)
	}
	if got := r.Interval(60, 10, 0, 100); got != 20 {
		t.Errorf("Interval(60, 10) at full ramp = %d, expected 20", got)
	}
	if got := r.Interval(30, 10, 0, 100); got != 10 {
		t.Errorf("Interval(30, 10) at full ramp = %d, expected the floor", got)
	}

	r.SetEnabled(false)
	if got := r.Level(0, 100); got != 0.2 {
		t.Errorf("Level() disabled = %v, expected the initial level", got)
	}
}

func TestRampHits(t *testing.T) {
	r := NewRamp(RampConfig{Enabled: true, Progression: ProgressionConfig{Type: "hits", MaxAt: 10}})
	if got := r.Level(5, 9999); got != 0.5 {
		t.Errorf("Level(5 hits) = %v, expected 0.5", got)
	}
	r.SetInitialLevel(2)
	if got := r.Level(0, 0); got != 1 {
		t.Errorf("Level() with clamped initial level = %v, expected 1", got)
	}
}
