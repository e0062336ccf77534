package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML scene file. Keys the File structure does not know
// are rejected so that typos do not silently drop entities.
func ParseTOML(data []byte) (Scene, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Scene{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Scene{}, fmt.Errorf("toml decode: unknown key %s", undecoded[0])
	}
	return f.Convert()
}
