// Package storage provides SQLite-based persistence for recorded scenario runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/spriteplace/internal/registry"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded scenario run.
type Run struct {
	ID        int64
	Scenario  string
	Seed      int64
	Ticks     uint64
	Blocked   int
	Hits      int
	Queries   uint64
	Tests     uint64
	FullScans uint64
	Elapsed   time.Duration // Wall time spent simulating
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			blocked INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			queries INTEGER NOT NULL DEFAULT 0,
			tests INTEGER NOT NULL DEFAULT 0,
			full_scans INTEGER NOT NULL DEFAULT 0,
			elapsed_us INTEGER NOT NULL DEFAULT 0,
			snapshot BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and the final world snapshot, encoded as msgpack.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run, snap registry.Snapshot) (int64, error) {
	blob, err := msgpack.Marshal(&snap)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (scenario, seed, ticks, blocked, hits, queries, tests, full_scans, elapsed_us, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Scenario,
		run.Seed,
		int64(run.Ticks),
		run.Blocked,
		run.Hits,
		int64(run.Queries),
		int64(run.Tests),
		int64(run.FullScans),
		run.Elapsed.Microseconds(),
		blob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs of a scenario, newest first.
func (s *Store) RecentRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scenario, seed, ticks, blocked, hits, queries, tests, full_scans, elapsed_us, created_at
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                        Run
			ticks, queries, tests    int64
			fullScans, elapsedMicros int64
			createdAt                any
		)
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Seed, &ticks, &r.Blocked, &r.Hits,
			&queries, &tests, &fullScans, &elapsedMicros, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.Queries = uint64(queries)
		r.Tests = uint64(tests)
		r.FullScans = uint64(fullScans)
		r.Elapsed = time.Duration(elapsedMicros) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Snapshot loads and decodes the snapshot stored with a run.
func (s *Store) Snapshot(runID int64) (registry.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRow("SELECT snapshot FROM runs WHERE id = ?", runID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return registry.Snapshot{}, fmt.Errorf("storage: run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	var snap registry.Snapshot
	if err := msgpack.Unmarshal(blob, &snap); err != nil {
		return registry.Snapshot{}, fmt.Errorf("storage: cannot decode snapshot: %w", err)
	}
	return snap, nil
}

// RunCount returns the number of recorded runs of a scenario.
func (s *Store) RunCount(scenario string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE scenario = ?", scenario).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes all runs of a scenario.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

