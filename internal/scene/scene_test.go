package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/spriteplace/internal/place"
	"github.com/vovakirdan/spriteplace/internal/world"
)

const arena = `
id: arena
size: {w: 200, h: 100}
types:
  - name: player
    shape: {kind: rect, left: -4, top: -4, right: 4, bottom: 4}
  - name: rock
    shape: {kind: circle, r: 6}
    ctype: solid
entities:
  - {type: player, x: 20, y: 20}
  - {type: rock, x: 60, y: 20}
  - {type: rock, x: 90, y: 20}
layers:
  - name: walls
    ctype: solid
    collisions: true
    tile_w: 10
    tile_h: 10
    y: 40
    rows: ["##########"]
  - name: decor
    depth: -1
    tile_w: 10
    tile_h: 10
    rows: ["#"]
`

func newWorld(t *testing.T) (*world.World, *place.Place) {
	t.Helper()
	w, err := world.New(world.Options{CellWidth: 64, CellHeight: 64})
	if err != nil {
		t.Fatal(err)
	}
	p, err := place.New(w, place.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return w, p
}

func TestLoaderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"b/arena.yaml":  {Data: []byte(arena)},
		"a/mini.toml":   {Data: []byte("id = \"mini\"\n")},
		"broken.yaml":   {Data: []byte("id: [")},
		"notes.txt":     {Data: []byte("not a scene")},
		"noid/none.yml": {Data: []byte("name: nameless\n")},
	}
	l := NewFSLoader(fsys)

	ids, err := l.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "arena" || ids[1] != "mini" {
		t.Errorf("ListIDs() = %v, expected [arena mini]", ids)
	}

	sc, err := l.LoadByID("arena")
	if err != nil {
		t.Fatalf("LoadByID(arena) error = %v", err)
	}
	if sc.FilePath != "b/arena.yaml" || len(sc.Entities) != 3 {
		t.Errorf("LoadByID(arena) = %s with %d entities", sc.FilePath, len(sc.Entities))
	}

	if _, err := l.LoadByID("missing"); err == nil {
		t.Error("LoadByID(missing) error = nil, expected not found")
	}
	if _, err := l.LoadFile("broken.yaml"); err == nil {
		t.Error("LoadFile(broken) error = nil, expected a parse error")
	}
}

func TestLoaderDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yml")
	if err := os.WriteFile(path, []byte(arena), 0o644); err != nil {
		t.Fatal(err)
	}

	scenes, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(scenes) != 1 || scenes[0].FilePath != path {
		t.Errorf("LoadAll() = %+v, expected one scene at %s", scenes, path)
	}
}

func TestParseUnsupported(t *testing.T) {
	if _, err := Parse([]byte("{}"), ".json"); err == nil {
		t.Error("Parse(.json) error = nil, expected unsupported extension")
	}
}

func TestBuild(t *testing.T) {
	sc, err := Parse([]byte(arena), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	w, p := newWorld(t)

	built, err := Build(sc, w, p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(built.Entities) != 3 || w.Len() != 3 {
		t.Errorf("Build() spawned %d entities, world has %d", len(built.Entities), w.Len())
	}
	if len(built.Layers) != 2 {
		t.Fatalf("Build() added %d layers, expected 2", len(built.Layers))
	}
	if !p.TilesEnabled(built.Layers[0]) {
		t.Error("walls layer should be baked")
	}
	if p.TilesEnabled(built.Layers[1]) {
		t.Error("decor layer should not be baked")
	}

	player := built.Entities[0]
	if len(w.OfType("rock")) != 2 {
		t.Errorf("OfType(rock) = %d entities, expected 2", len(w.OfType("rock")))
	}

	// The wall row spans y 40..50; the player stops above it.
	if _, err := p.MoveByAxes(player, 0, 100, "solid", place.DefaultPrecision); err != nil {
		t.Fatal(err)
	}
	if player.Y < 35 || player.Y > 36 {
		t.Errorf("player.Y = %v, expected to stop at the wall", player.Y)
	}

	if got := Bounds(sc, w); got.Width() != 200 || got.Height() != 100 {
		t.Errorf("Bounds() = %+v, expected the declared size", got)
	}
}

func TestBuildTwice(t *testing.T) {
	sc, err := Parse([]byte(arena), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	w, p := newWorld(t)
	if _, err := Build(sc, w, p); err != nil {
		t.Fatal(err)
	}
	if _, err := Build(sc, w, p); err == nil {
		t.Error("second Build() error = nil, expected a duplicate type error")
	}
}

func TestBuildUnknownType(t *testing.T) {
	sc, err := Parse([]byte("id: x\nentities:\n  - {type: ghost, x: 1, y: 1}\n"), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	w, p := newWorld(t)
	if _, err := Build(sc, w, p); !errors.Is(err, world.ErrUnknownType) {
		t.Errorf("Build() error = %v, expected ErrUnknownType", err)
	}
}

func TestBoundsFromContent(t *testing.T) {
	sc, err := Parse([]byte("id: x\ntypes:\n  - name: dot\n    shape: {kind: circle, r: 2}\nentities:\n  - {type: dot, x: 10, y: 10}\n  - {type: dot, x: 30, y: 20}\n"), ".yaml")
	if err != nil {
		t.Fatal(err)
	}
	w, p := newWorld(t)
	if _, err := Build(sc, w, p); err != nil {
		t.Fatal(err)
	}
	b := Bounds(sc, w)
	if b.Min.X != 8 || b.Min.Y != 8 || b.Max.X != 32 || b.Max.Y != 22 {
		t.Errorf("Bounds() = %+v, expected (8,8)-(32,22)", b)
	}
}
