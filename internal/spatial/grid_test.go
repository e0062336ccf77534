package spatial

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func mustGrid(t *testing.T, w, h float64) *Grid[int] {
	t.Helper()
	g, err := NewGrid[int](w, h)
	if err != nil {
		t.Fatalf("NewGrid(%v, %v) error = %v", w, h, err)
	}
	return g
}

func TestNewGridInvalidSize(t *testing.T) {
	for _, size := range [][2]float64{{0, 10}, {10, -1}, {-5, -5}} {
		if _, err := NewGrid[int](size[0], size[1]); !errors.Is(err, ErrInvalidCellSize) {
			t.Errorf("NewGrid(%v, %v) error = %v, expected ErrInvalidCellSize", size[0], size[1], err)
		}
	}
}

func TestKeysFor(t *testing.T) {
	g := mustGrid(t, 100, 100)

	tests := []struct {
		name     string
		x, y     float64
		expected []Key
	}{
		{"exact center", 0, 0, []Key{{0, 0}}},
		{"on grid point", 200, -300, []Key{{2, -3}}},
		{"leans right", 10, 0, []Key{{0, 0}, {1, 0}}},
		{"leans up", 0, -10, []Key{{0, 0}, {0, -1}}},
		{"leans down-left", -10, 10, []Key{{0, 0}, {-1, 0}, {-1, 1}, {0, 1}}},
		{"half rounds up", 50, 50, []Key{{1, 1}, {0, 1}, {0, 0}, {1, 0}}},
		{"negative half rounds up", -50, 0, []Key{{0, 0}, {-1, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.KeysFor(tt.x, tt.y)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("KeysFor(%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestKeysForIndependentSizes(t *testing.T) {
	g := mustGrid(t, 10, 40)
	got := g.KeysFor(24, 24)
	expected := []Key{{2, 1}, {3, 1}, {3, 0}, {2, 0}}
	if !slices.Equal(got, expected) {
		t.Errorf("KeysFor(24, 24) = %v, expected %v", got, expected)
	}
}

func TestInsertRemove(t *testing.T) {
	g := mustGrid(t, 100, 100)
	g.Insert(1, 10, 10)
	g.Insert(2, 0, 0)

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", g.Len())
	}
	if cell := g.Cell(Key{0, 0}); !slices.Equal(cell, []int{1, 2}) {
		t.Errorf("Cell(0:0) = %v, expected [1 2]", cell)
	}

	g.Remove(1)
	if g.Contains(1) {
		t.Error("Contains(1) = true after Remove")
	}
	if g.Cells() != 1 {
		t.Errorf("Cells() = %d, expected empty cells dropped", g.Cells())
	}

	// Removing twice is a no-op.
	g.Remove(1)
	if g.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.Len())
	}
}

func TestUpdateDiff(t *testing.T) {
	g := mustGrid(t, 100, 100)
	g.Insert(1, 10, 0)
	g.Insert(2, 0, 0)

	if g.Update(1, 20, 0) {
		t.Error("Update() within the same cells should report no change")
	}
	if cell := g.Cell(Key{0, 0}); !slices.Equal(cell, []int{1, 2}) {
		t.Errorf("Cell(0:0) = %v, expected insertion order kept", cell)
	}

	if !g.Update(1, 310, 0) {
		t.Error("Update() across cells should report a change")
	}
	if slices.Contains(g.Cell(Key{0, 0}), 1) || slices.Contains(g.Cell(Key{1, 0}), 1) {
		t.Error("item should leave its old cells")
	}
	if !slices.Equal(g.KeysOf(1), []Key{{3, 0}, {4, 0}}) {
		t.Errorf("KeysOf(1) = %v, expected [3:0 4:0]", g.KeysOf(1))
	}
}

func TestNearDeduplicates(t *testing.T) {
	g := mustGrid(t, 100, 100)
	g.Insert(1, 10, 10)
	g.Insert(2, 60, 60)
	g.Insert(3, 1000, 1000)

	var got []int
	g.Near(20, 20, func(item int) bool {
		got = append(got, item)
		return true
	})
	slices.Sort(got)
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Near(20, 20) = %v, expected [1 2]", got)
	}

	count := 0
	g.Near(20, 20, func(int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("Near() visited %d items after stop, expected 1", count)
	}
}

// TestGridConsistency moves items randomly and checks that every item sits in
// exactly the cells KeysFor gives for its last position.
func TestGridConsistency(t *testing.T) {
	g := mustGrid(t, 64, 48)
	rng := rand.New(rand.NewSource(42))
	pos := make(map[int][2]float64)

	for step := 0; step < 2000; step++ {
		id := rng.Intn(50)
		x := rng.Float64()*1000 - 500
		y := rng.Float64()*1000 - 500
		switch rng.Intn(5) {
		case 0:
			g.Remove(id)
			delete(pos, id)
		default:
			g.Update(id, x, y)
			pos[id] = [2]float64{x, y}
		}
	}

	if g.Len() != len(pos) {
		t.Fatalf("Len() = %d, expected %d", g.Len(), len(pos))
	}
	total := 0
	for id, p := range pos {
		keys := g.KeysFor(p[0], p[1])
		if !slices.Equal(g.KeysOf(id), keys) {
			t.Errorf("KeysOf(%d) = %v, expected %v", id, g.KeysOf(id), keys)
		}
		for _, k := range keys {
			if n := countOf(g.Cell(k), id); n != 1 {
				t.Errorf("item %d appears %d times in cell %v", id, n, k)
			}
		}
		total += len(keys)
	}

	cellEntries := 0
	for _, bucket := range g.cells {
		cellEntries += len(bucket)
	}
	if cellEntries != total {
		t.Errorf("grid holds %d cell entries, expected %d", cellEntries, total)
	}
}

func countOf(bucket []int, id int) int {
	n := 0
	for _, v := range bucket {
		if v == id {
			n++
		}
	}
	return n
}
