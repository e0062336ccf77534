package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spriteplace/internal/registry"
	"github.com/vovakirdan/spriteplace/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <scenario>",
	Short: "Show recorded runs of a scenario",
	Long: `Display the most recent recorded runs of the specified scenario.

Examples:
  placebox runs chase
  placebox runs turret --limit 25
  placebox runs corridor --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs of the scenario")
}

func runRuns(cmd *cobra.Command, args []string) {
	id := args[0]

	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'placebox list' to see available scenarios.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs of %s.\n", id)
		return
	}

	runs, err := store.RecentRuns(id, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recent runs - %s\n", id)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'placebox run %s' or 'placebox bench %s' to record one.\n", id, id)
		return
	}

	fmt.Printf("  %-5s  %-20s  %-8s  %-8s  %-6s  %-10s  %-10s  %-6s  %s\n",
		"ID", "Seed", "Ticks", "Blocked", "Hits", "Queries", "Tests", "Scans", "Date")
	fmt.Printf("  %-5s  %-20s  %-8s  %-8s  %-6s  %-10s  %-10s  %-6s  %s\n",
		"--", "----", "-----", "-------", "----", "-------", "-----", "-----", "----")

	for _, r := range runs {
		dateStr := "-"
		if !r.CreatedAt.IsZero() {
			dateStr = r.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-5d  %-20d  %-8d  %-8d  %-6d  %-10d  %-10d  %-6d  %s\n",
			r.ID, r.Seed, r.Ticks, r.Blocked, r.Hits, r.Queries, r.Tests, r.FullScans, dateStr)
	}

	if runs[0].Elapsed > 0 {
		per := runs[0].Elapsed / time.Duration(max(runs[0].Ticks, 1))
		fmt.Println()
		fmt.Printf("Latest run: %s simulated, %s per tick\n", runs[0].Elapsed.Round(time.Microsecond), per)
	}
}
