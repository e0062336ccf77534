package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlace loads the core configuration.
// Search order: customPath -> ~/.spriteplace/configs/place.yaml -> ./configs/place.yaml -> embedded default
func LoadPlace(customPath string) (PlaceConfig, error) {
	cfg := DefaultPlaceConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("place.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "place.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	var embedded PlaceConfig
	if err := yaml.Unmarshal(defaultPlaceYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultPlaceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file over the defaults. Missing, broken or
// invalid files are skipped.
func tryLoad(path string) (PlaceConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlaceConfig{}, false
	}
	cfg := DefaultPlaceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PlaceConfig{}, false
	}
	if cfg.Validate() != nil {
		return PlaceConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spriteplace", "configs", filename)
}

// ApplyRampPreset modifies the config based on a ramp preset.
func ApplyRampPreset(cfg *PlaceConfig, preset RampPreset) {
	if preset == RampFixed {
		cfg.Ramp.Enabled = false
	} else {
		cfg.Ramp.Enabled = true
		cfg.Ramp.InitialLevel = InitialLevelForPreset(preset)
	}
}
