package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/platform/tui"
	"github.com/vovakirdan/spriteplace/internal/registry"
	"github.com/vovakirdan/spriteplace/internal/scenarios/stage"
	"github.com/vovakirdan/spriteplace/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario",
	Long: `Start the specified scenario in the terminal.

Controls:
  Arrows/WASD  - Move the controlled entity
  Space        - Scenario action (fire)
  P/Esc        - Pause
  N            - Step one tick while paused
  R            - Restart with a new seed
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Ramp options:
  calm   - Start with the lowest load, ramps to max
  normal - Start at 30% load, ramps to max
  busy   - Start at 70% load, ramps to max
  fixed  - No ramp, stays at the config's initial level

Examples:
  placebox run chase
  placebox run turret --ramp busy
  placebox run corridor --seed 42 --fps 30
  placebox run chase --config ./my-place.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func runRun(cmd *cobra.Command, args []string) {
	id := args[0]

	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'placebox list' to see available scenarios.")
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := playScenario(id, store, terminalConfig()); err != nil {
		logger.Error("scenario failed", "scenario", id, "err", err)
		os.Exit(1)
	}
}

// runMenu shows the scenario picker and runs picks until the user quits.
func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "err", err)
			return
		}
		cfg = result.Config
		if result.Quit || result.ScenarioID == "" {
			return
		}

		// Each pick gets a fresh seed unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := playScenario(result.ScenarioID, store, cfg); err != nil {
			logger.Error("scenario failed", "scenario", result.ScenarioID, "err", err)
		}
	}
}

func playScenario(id string, store *storage.Store, cfg core.RuntimeConfig) error {
	sc, err := registry.Create(id)
	if err != nil {
		return err
	}
	return tui.Run(sc, cfg, tui.Options{
		Store:   store,
		Logger:  logger,
		HUDRows: stage.LoadConfig().Sandbox.HUDRows,
	})
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. The sandbox still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
