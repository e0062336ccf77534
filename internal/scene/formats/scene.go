// Package formats provides pluggable scene file format parsers.
package formats

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/shape"
)

// File is the on-disk structure shared by every format.
type File struct {
	ID       string            `yaml:"id" toml:"id"`
	Name     string            `yaml:"name" toml:"name"`
	Size     FileSize          `yaml:"size" toml:"size"`
	Types    []FileType        `yaml:"types" toml:"types"`
	Entities []FileEntity      `yaml:"entities" toml:"entities"`
	Layers   []FileLayer       `yaml:"layers" toml:"layers"`
	Metadata map[string]string `yaml:"metadata,omitempty" toml:"metadata,omitempty"`
}

// FileSize is the world area shown by the sandbox.
type FileSize struct {
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// FileType is an entity type definition.
type FileType struct {
	Name  string    `yaml:"name" toml:"name"`
	Shape FileShape `yaml:"shape" toml:"shape"`
	CType string    `yaml:"ctype,omitempty" toml:"ctype,omitempty"`
	Glyph string    `yaml:"glyph,omitempty" toml:"glyph,omitempty"`
	Color string    `yaml:"color,omitempty" toml:"color,omitempty"`
}

// FileShape is a collision shape. Kind is one of rect, circle, strip, line
// or point; an empty kind means point.
type FileShape struct {
	Kind   string       `yaml:"kind" toml:"kind"`
	Left   float64      `yaml:"left,omitempty" toml:"left,omitempty"`
	Top    float64      `yaml:"top,omitempty" toml:"top,omitempty"`
	Right  float64      `yaml:"right,omitempty" toml:"right,omitempty"`
	Bottom float64      `yaml:"bottom,omitempty" toml:"bottom,omitempty"`
	R      float64      `yaml:"r,omitempty" toml:"r,omitempty"`
	X1     float64      `yaml:"x1,omitempty" toml:"x1,omitempty"`
	Y1     float64      `yaml:"y1,omitempty" toml:"y1,omitempty"`
	X2     float64      `yaml:"x2,omitempty" toml:"x2,omitempty"`
	Y2     float64      `yaml:"y2,omitempty" toml:"y2,omitempty"`
	Points [][2]float64 `yaml:"points,omitempty" toml:"points,omitempty"`
	Closed bool         `yaml:"closed,omitempty" toml:"closed,omitempty"`
}

// FileEntity is one placed instance.
type FileEntity struct {
	Type     string  `yaml:"type" toml:"type"`
	X        float64 `yaml:"x" toml:"x"`
	Y        float64 `yaml:"y" toml:"y"`
	ScaleX   float64 `yaml:"scale_x,omitempty" toml:"scale_x,omitempty"`
	ScaleY   float64 `yaml:"scale_y,omitempty" toml:"scale_y,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	CType    string  `yaml:"ctype,omitempty" toml:"ctype,omitempty"`
}

// FileLayer is a tile layer drawn as rows of characters. Every character
// other than a space or '.' places one tile of size tile_w x tile_h.
type FileLayer struct {
	Name       string   `yaml:"name" toml:"name"`
	Depth      int      `yaml:"depth" toml:"depth"`
	CType      string   `yaml:"ctype,omitempty" toml:"ctype,omitempty"`
	Collisions bool     `yaml:"collisions" toml:"collisions"`
	TileW      float64  `yaml:"tile_w" toml:"tile_w"`
	TileH      float64  `yaml:"tile_h" toml:"tile_h"`
	X          float64  `yaml:"x,omitempty" toml:"x,omitempty"`
	Y          float64  `yaml:"y,omitempty" toml:"y,omitempty"`
	Color      string   `yaml:"color,omitempty" toml:"color,omitempty"`
	Rows       []string `yaml:"rows" toml:"rows"`
}

// Scene is a parsed scene ready for building.
type Scene struct {
	ID       string
	Name     string
	Width    float64
	Height   float64
	Types    []Type
	Entities []Entity
	Layers   []Layer
	Metadata map[string]string
}

// Type is a parsed entity type.
type Type struct {
	Name  string
	Shape shape.Shape
	CType string
	Glyph rune
	Color core.Color
}

// Entity is a parsed instance.
type Entity struct {
	Type     string
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	CType    string
}

// Layer is a parsed tile layer.
type Layer struct {
	Name       string
	Depth      int
	CType      string
	Collisions bool
	Tiles      []Tile
}

// Tile is one parsed tile.
type Tile struct {
	X, Y, W, H float64
	Color      core.Color
}

// Convert validates a decoded file and turns it into a Scene.
func (f File) Convert() (Scene, error) {
	s := Scene{
		ID:       f.ID,
		Name:     f.Name,
		Width:    f.Size.W,
		Height:   f.Size.H,
		Metadata: f.Metadata,
	}
	if s.ID == "" {
		return Scene{}, fmt.Errorf("scene has no id")
	}
	if s.Name == "" {
		s.Name = s.ID
	}

	for _, ft := range f.Types {
		if ft.Name == "" {
			return Scene{}, fmt.Errorf("type without a name")
		}
		sh, err := ft.Shape.ToShape()
		if err != nil {
			return Scene{}, fmt.Errorf("type %s: %w", ft.Name, err)
		}
		t := Type{Name: ft.Name, Shape: sh, CType: ft.CType, Glyph: '@'}
		if ft.Glyph != "" {
			t.Glyph, _ = utf8.DecodeRuneInString(ft.Glyph)
		}
		t.Color = parseColorOr(ft.Color, core.ColorForGroup(ft.Name))
		s.Types = append(s.Types, t)
	}

	for _, fe := range f.Entities {
		s.Entities = append(s.Entities, Entity(fe))
	}

	for _, fl := range f.Layers {
		l, err := fl.convert()
		if err != nil {
			return Scene{}, fmt.Errorf("layer %s: %w", fl.Name, err)
		}
		s.Layers = append(s.Layers, l)
	}
	return s, nil
}

func (fl FileLayer) convert() (Layer, error) {
	if !(fl.TileW > 0) || !(fl.TileH > 0) {
		return Layer{}, fmt.Errorf("tile size %vx%v must be positive", fl.TileW, fl.TileH)
	}
	color := parseColorOr(fl.Color, core.ColorGray)
	l := Layer{Name: fl.Name, Depth: fl.Depth, CType: fl.CType, Collisions: fl.Collisions}
	for row, line := range fl.Rows {
		col := 0
		for _, r := range line {
			if r != ' ' && r != '.' {
				l.Tiles = append(l.Tiles, Tile{
					X:     fl.X + float64(col)*fl.TileW,
					Y:     fl.Y + float64(row)*fl.TileH,
					W:     fl.TileW,
					H:     fl.TileH,
					Color: color,
				})
			}
			col++
		}
	}
	return l, nil
}

// ToShape converts the file shape to an entity-local shape.
func (fs FileShape) ToShape() (shape.Shape, error) {
	switch strings.ToLower(fs.Kind) {
	case "", "point":
		return shape.Point{}, nil
	case "rect":
		return shape.Rect{Left: fs.Left, Top: fs.Top, Right: fs.Right, Bottom: fs.Bottom}, nil
	case "circle":
		if fs.R < 0 {
			return nil, fmt.Errorf("circle radius %v is negative", fs.R)
		}
		return shape.Circle{R: fs.R}, nil
	case "strip", "polygon":
		if len(fs.Points) == 0 {
			return nil, fmt.Errorf("strip has no points")
		}
		pts := make([]core.Vec, len(fs.Points))
		for i, p := range fs.Points {
			pts[i] = core.V(p[0], p[1])
		}
		return shape.Strip{Points: pts, Closed: fs.Closed || strings.EqualFold(fs.Kind, "polygon")}, nil
	case "line":
		return shape.Segment{X1: fs.X1, Y1: fs.Y1, X2: fs.X2, Y2: fs.Y2}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", fs.Kind)
	}
}

func parseColorOr(name string, fallback core.Color) core.Color {
	if name == "" {
		return fallback
	}
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return fallback
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}
