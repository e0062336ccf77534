package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/registry"
	"github.com/vovakirdan/spriteplace/internal/storage"
)

var (
	flagTicks  int
	flagRuns   int
	flagRecord bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <scenario>",
	Short: "Step a scenario headless and report query counters",
	Long: `Run a scenario without a terminal for a fixed number of ticks and
report how many candidate tests and full scans its queries performed.

Each run uses seed+i so repeated benches are reproducible.

Examples:
  placebox bench chase
  placebox bench corridor --ticks 10000 --runs 5 --seed 1
  placebox bench turret --record=false`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Ticks to simulate per run")
	benchCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs")
	benchCmd.Flags().BoolVar(&flagRecord, "record", true, "Save each run to the runs database")
}

func runBench(cmd *cobra.Command, args []string) {
	id := args[0]

	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'placebox list' to see available scenarios.")
		os.Exit(1)
	}

	var store *storage.Store
	if flagRecord {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %-10s  %-10s  %-6s  %s\n",
		"Run", "Ticks", "Blocked", "Hits", "Queries", "Tests", "Scans", "Elapsed")
	for i := range flagRuns {
		run, snap, err := benchOnce(id, seed+int64(i), flagTicks)
		if err != nil {
			logger.Error("bench failed", "scenario", id, "err", err)
			os.Exit(1)
		}
		logger.Debug("bench run", "scenario", id, "seed", run.Seed,
			"queries", run.Queries, "tests", run.Tests, "full_scans", run.FullScans)

		fmt.Printf("  %-4d  %-8d  %-8d  %-6d  %-10d  %-10d  %-6d  %s\n",
			i+1, run.Ticks, run.Blocked, run.Hits, run.Queries, run.Tests, run.FullScans,
			run.Elapsed.Round(time.Microsecond))

		if store != nil {
			if _, err := store.SaveRun(run, snap); err != nil {
				logger.Warn("could not save run", "err", err)
			}
		}
	}
}

// benchOnce steps a fresh scenario with no input.
func benchOnce(id string, seed int64, ticks int) (storage.Run, registry.Snapshot, error) {
	sc, err := registry.Create(id)
	if err != nil {
		return storage.Run{}, registry.Snapshot{}, err
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed}
	sc.Reset(cfg)

	input := core.NewInputFrame()
	start := time.Now()
	var state core.ScenarioState
	for range ticks {
		state = sc.Step(input).State
		if state.Done {
			break
		}
	}
	elapsed := time.Since(start)

	snap := sc.Snapshot()
	return storage.Run{
		Scenario:  id,
		Seed:      seed,
		Ticks:     state.Tick,
		Blocked:   state.Blocked,
		Hits:      state.Hits,
		Queries:   snap.Counters["queries"],
		Tests:     snap.Counters["tests"],
		FullScans: snap.Counters["full_scans"],
		Elapsed:   elapsed,
	}, snap, nil
}
