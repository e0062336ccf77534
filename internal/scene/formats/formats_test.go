package formats

import (
	"strings"
	"testing"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/shape"
)

const yamlScene = `
id: yard
name: The Yard
size: {w: 320, h: 160}
types:
  - name: crate
    shape: {kind: rect, left: -8, top: -8, right: 8, bottom: 8}
    ctype: solid
    glyph: "#"
    color: orange
  - name: ball
    shape: {kind: circle, r: 4}
  - name: fence
    shape:
      kind: strip
      points: [[0, 0], [16, 0], [16, 16]]
entities:
  - {type: crate, x: 40, y: 40}
  - {type: ball, x: 100, y: 20, scale_x: 2}
layers:
  - name: walls
    depth: 10
    collisions: true
    tile_w: 16
    tile_h: 16
    rows:
      - "##."
      - ". #"
`

const tomlScene = `
id = "yard"

[size]
w = 320
h = 160

[[types]]
name = "crate"
ctype = "solid"
[types.shape]
kind = "rect"
left = -8
top = -8
right = 8
bottom = 8

[[entities]]
type = "crate"
x = 40
y = 40

[[layers]]
name = "walls"
collisions = true
tile_w = 16
tile_h = 16
x = 100
rows = ["#"]
`

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(yamlScene))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if s.ID != "yard" || s.Name != "The Yard" || s.Width != 320 || s.Height != 160 {
		t.Errorf("header = %q %q %vx%v", s.ID, s.Name, s.Width, s.Height)
	}
	if len(s.Types) != 3 {
		t.Fatalf("len(Types) = %d, expected 3", len(s.Types))
	}

	crate := s.Types[0]
	if crate.Shape != (shape.Rect{Left: -8, Top: -8, Right: 8, Bottom: 8}) {
		t.Errorf("crate shape = %#v", crate.Shape)
	}
	if crate.Glyph != '#' || crate.Color != core.ColorOrange || crate.CType != "solid" {
		t.Errorf("crate = %+v", crate)
	}
	if s.Types[1].Shape != (shape.Circle{R: 4}) {
		t.Errorf("ball shape = %#v", s.Types[1].Shape)
	}
	if s.Types[1].Glyph != '@' {
		t.Errorf("default glyph = %q, expected '@'", s.Types[1].Glyph)
	}
	strip, ok := s.Types[2].Shape.(shape.Strip)
	if !ok || len(strip.Points) != 3 || strip.Closed {
		t.Errorf("fence shape = %#v", s.Types[2].Shape)
	}

	if len(s.Entities) != 2 || s.Entities[1].ScaleX != 2 {
		t.Errorf("Entities = %+v", s.Entities)
	}

	if len(s.Layers) != 1 {
		t.Fatalf("len(Layers) = %d, expected 1", len(s.Layers))
	}
	l := s.Layers[0]
	if !l.Collisions || l.Depth != 10 {
		t.Errorf("layer = %+v", l)
	}
	expected := []Tile{
		{X: 0, Y: 0, W: 16, H: 16, Color: core.ColorGray},
		{X: 16, Y: 0, W: 16, H: 16, Color: core.ColorGray},
		{X: 32, Y: 16, W: 16, H: 16, Color: core.ColorGray},
	}
	if len(l.Tiles) != len(expected) {
		t.Fatalf("len(Tiles) = %d, expected %d", len(l.Tiles), len(expected))
	}
	for i := range expected {
		if l.Tiles[i] != expected[i] {
			t.Errorf("Tiles[%d] = %+v, expected %+v", i, l.Tiles[i], expected[i])
		}
	}
}

func TestParseTOML(t *testing.T) {
	s, err := ParseTOML([]byte(tomlScene))
	if err != nil {
		t.Fatalf("ParseTOML() error = %v", err)
	}
	if s.Name != "yard" {
		t.Errorf("Name = %q, expected the ID as fallback", s.Name)
	}
	if len(s.Types) != 1 || s.Types[0].Shape != (shape.Rect{Left: -8, Top: -8, Right: 8, Bottom: 8}) {
		t.Errorf("Types = %+v", s.Types)
	}
	if len(s.Entities) != 1 || s.Entities[0].X != 40 {
		t.Errorf("Entities = %+v", s.Entities)
	}
	if len(s.Layers) != 1 || len(s.Layers[0].Tiles) != 1 || s.Layers[0].Tiles[0].X != 100 {
		t.Errorf("Layers = %+v", s.Layers)
	}
}

func TestParseTOMLUnknownKey(t *testing.T) {
	_, err := ParseTOML([]byte("id = \"x\"\nentites = []\n"))
	if err == nil || !strings.Contains(err.Error(), "entites") {
		t.Errorf("ParseTOML() error = %v, expected unknown key error", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no id", "name: x\n"},
		{"bad shape kind", "id: x\ntypes:\n  - name: a\n    shape: {kind: blob}\n"},
		{"unnamed type", "id: x\ntypes:\n  - shape: {kind: point}\n"},
		{"negative radius", "id: x\ntypes:\n  - name: a\n    shape: {kind: circle, r: -1}\n"},
		{"empty strip", "id: x\ntypes:\n  - name: a\n    shape: {kind: strip}\n"},
		{"zero tile size", "id: x\nlayers:\n  - name: l\n    rows: ['#']\n"},
		{"malformed", "id: [x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.data)); err == nil {
				t.Error("ParseYAML() error = nil, expected an error")
			}
		})
	}
}

func TestToShape(t *testing.T) {
	tests := []struct {
		name     string
		in       FileShape
		expected shape.Shape
	}{
		{"empty is point", FileShape{}, shape.Point{}},
		{"point", FileShape{Kind: "point"}, shape.Point{}},
		{"line", FileShape{Kind: "line", X1: 1, Y1: 2, X2: 3, Y2: 4}, shape.Segment{X1: 1, Y1: 2, X2: 3, Y2: 4}},
		{"case insensitive", FileShape{Kind: "Circle", R: 2}, shape.Circle{R: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToShape()
			if err != nil {
				t.Fatalf("ToShape() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("ToShape() = %#v, expected %#v", got, tt.expected)
			}
		})
	}

	got, err := FileShape{Kind: "polygon", Points: [][2]float64{{0, 0}, {1, 0}, {0, 1}}}.ToShape()
	if err != nil {
		t.Fatalf("ToShape(polygon) error = %v", err)
	}
	if s, ok := got.(shape.Strip); !ok || !s.Closed {
		t.Errorf("ToShape(polygon) = %#v, expected a closed strip", got)
	}
}
