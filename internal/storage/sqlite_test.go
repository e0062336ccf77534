package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/spriteplace/internal/registry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Scenario: "chase", Seed: 1, Ticks: 600, Blocked: 12, Hits: 3, Queries: 4000, Tests: 9000, FullScans: 2, Elapsed: 1500 * time.Microsecond},
		{Scenario: "chase", Seed: 2, Ticks: 1200, Hits: 7},
		{Scenario: "turret", Seed: 3, Ticks: 100},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r, registry.Snapshot{Scenario: r.Scenario, Tick: r.Ticks}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("chase", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentRuns() = %d runs, expected 2", len(got))
	}

	// Newest first
	if got[0].Seed != 2 || got[1].Seed != 1 {
		t.Errorf("RecentRuns() order = seeds %d, %d, expected 2, 1", got[0].Seed, got[1].Seed)
	}
	first := got[1]
	if first.Ticks != 600 || first.Blocked != 12 || first.Hits != 3 {
		t.Errorf("run counters = %+v", first)
	}
	if first.Queries != 4000 || first.Tests != 9000 || first.FullScans != 2 {
		t.Errorf("run stats = %+v", first)
	}
	if first.Elapsed != 1500*time.Microsecond {
		t.Errorf("Elapsed = %v, expected 1.5ms", first.Elapsed)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 15; i++ {
		if _, err := store.SaveRun(Run{Scenario: "corridor", Seed: int64(i)}, registry.Snapshot{}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("corridor", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("RecentRuns(5) = %d runs, expected 5", len(runs))
	}

	runs, err = store.RecentRuns("corridor", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("RecentRuns(0) = %d runs, expected the default of 10", len(runs))
	}
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	snap := registry.Snapshot{
		Scenario: "turret",
		Tick:     42,
		Blocked:  3,
		Hits:     1,
		Entities: []registry.EntityState{
			{ID: 1 | 1<<32, Type: "turret", X: 240, Y: 120},
			{ID: 5 | 2<<32, Type: "drone", X: 61.5, Y: -3.25},
		},
		Counters: map[string]uint64{"queries": 17},
	}
	id, err := store.SaveRun(Run{Scenario: "turret", Ticks: 42}, snap)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.Snapshot(id)
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("Snapshot() = %+v, expected %+v", got, snap)
	}

	if _, err := store.Snapshot(id + 100); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Snapshot(missing) error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreCountAndClear(t *testing.T) {
	store := openTestStore(t)
	for _, sc := range []string{"chase", "chase", "turret"} {
		if _, err := store.SaveRun(Run{Scenario: sc}, registry.Snapshot{}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if n, err := store.RunCount("chase"); err != nil || n != 2 {
		t.Errorf("RunCount(chase) = %d, %v, expected 2", n, err)
	}
	if err := store.ClearRuns("chase"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n, _ := store.RunCount("chase"); n != 0 {
		t.Errorf("RunCount(chase) after clear = %d, expected 0", n)
	}
	if n, _ := store.RunCount("turret"); n != 1 {
		t.Errorf("RunCount(turret) = %d, expected 1", n)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
