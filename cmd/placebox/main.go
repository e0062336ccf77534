// placebox is a terminal sandbox for the sprite placement core. It runs
// scenarios that exercise collision queries and movement against scenes.
//
// Usage:
//
//	placebox                 - Pick a scenario from a menu
//	placebox list            - List available scenarios
//	placebox run <id>        - Run a scenario in the terminal
//	placebox bench <id>      - Step a scenario headless and report query counters
//	placebox runs <id>       - Show recorded runs of a scenario
//	placebox serve           - Host the sandbox over SSH
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.spriteplace/runs.db)
//	--config <path> - Load a custom place.yaml
//	--ramp <name>   - Ramp preset: calm, normal, busy, fixed
//	--verbose       - Log world and scene events to stderr
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spriteplace/internal/config"
	"github.com/vovakirdan/spriteplace/internal/scenarios/stage"

	// Import scenarios to register them
	_ "github.com/vovakirdan/spriteplace/internal/scenarios/chase"
	_ "github.com/vovakirdan/spriteplace/internal/scenarios/corridor"
	_ "github.com/vovakirdan/spriteplace/internal/scenarios/turret"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagRamp    string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "placebox",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "placebox",
	Short: "Placebox - a terminal sandbox for sprite collision and movement",
	Long: `Placebox runs small scenarios on top of the placement core: entities
with point, box, circle, line and polygon masks moving through tile maps,
steering around obstacles and querying their neighbours.

Available commands:
  list     - Show all available scenarios
  run      - Run a specific scenario directly
  bench    - Step a scenario headless and report query counters
  runs     - View recorded runs
  serve    - Start SSH server for remote sessions

Running without a command opens the scenario picker.

Examples:
  placebox
  placebox list
  placebox run chase --seed 42
  placebox bench corridor --ticks 5000
  placebox runs turret
  placebox serve --ssh :2222`,
	PersistentPreRun: setup,
	Run:              runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spriteplace/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom place config YAML")
	rootCmd.PersistentFlags().StringVar(&flagRamp, "ramp", "", "Ramp preset: calm, normal, busy, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup applies the global flags to the logger and the scenario stage.
func setup(_ *cobra.Command, _ []string) {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	stage.SetLogger(logger)
	stage.SetConfigPath(flagConfig)
	stage.SetRampPreset(flagRamp)
	if flagRamp != "" {
		if _, ok := config.ParseRampPreset(flagRamp); !ok {
			logger.Warn("unknown ramp preset, using config", "ramp", flagRamp)
		}
	}
}
