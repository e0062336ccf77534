package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML scene file.
func ParseYAML(data []byte) (Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Scene{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return f.Convert()
}
