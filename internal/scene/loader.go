// Package scene loads scene files and builds worlds from them.
// This package depends on world and place but neither depends on scene.
package scene

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/spriteplace/internal/scene/formats"
)

// Scene is a parsed scene together with where it came from.
type Scene struct {
	formats.Scene
	FilePath string
}

// Loader handles loading scenes from a directory tree.
type Loader struct {
	Root string
	FS   fs.FS
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, FS: os.DirFS(root)}
}

// NewFSLoader creates a loader over an embedded or in-memory file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// LoadAll recursively scans and loads all scene files.
// Returns scenes sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Scene, error) {
	var scenes []Scene

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		sc, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		scenes = append(scenes, sc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// LoadFile loads a single scene file. The path is relative to the loader's
// file system.
func (l *Loader) LoadFile(p string) (Scene, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Scene{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := Parse(data, path.Ext(p))
	if err != nil {
		return Scene{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	full := p
	if l.Root != "" {
		full = filepath.Join(l.Root, filepath.FromSlash(p))
	}
	return Scene{Scene: parsed, FilePath: full}, nil
}

// LoadByID loads a specific scene by ID.
func (l *Loader) LoadByID(id string) (Scene, error) {
	scenes, err := l.LoadAll()
	if err != nil {
		return Scene{}, err
	}
	for _, sc := range scenes {
		if sc.ID == id {
			return sc, nil
		}
	}
	return Scene{}, fmt.Errorf("scene not found: %s", id)
}

// ListIDs returns all scene IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenes, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scenes))
	for i, sc := range scenes {
		ids[i] = sc.ID
	}
	return ids, nil
}

// Parse decodes scene data using the parser registered for ext.
func Parse(data []byte, ext string) (formats.Scene, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Scene{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
