package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spriteplace/internal/core"
	"github.com/vovakirdan/spriteplace/internal/registry"
	"github.com/vovakirdan/spriteplace/internal/storage"
)

// helpRows is the number of rows reserved below the world for the help line.
const helpRows = 1

// Model is the Bubble Tea model for running a scenario.
type Model struct {
	scenario   registry.Scenario
	screen     *core.Screen
	store      *storage.Store
	log        *log.Logger
	config     core.RuntimeConfig
	hudRows    int
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	state      core.ScenarioState
	started    time.Time
	quitting   bool
	recorded   bool // Whether the current run has been saved
}

// Options configures a sandbox session.
type Options struct {
	Store   *storage.Store
	Logger  *log.Logger
	HUDRows int
}

// NewModel creates a new Bubble Tea model for the given scenario.
func NewModel(sc registry.Scenario, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		scenario:   sc,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		store:      opts.Store,
		log:        logger,
		config:     cfg,
		hudRows:    opts.HUDRows,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		started:    time.Now(),
	}
}

// Init initializes the model and starts the scenario.
func (m Model) Init() tea.Cmd {
	m.scenario.Reset(m.config)
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The world keeps running;
// scenarios fit their view to the screen on every render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-m.helpHeight(), 1))
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) helpHeight() int {
	if m.help.ShowAll {
		return len(m.keyMapper.Keys.FullHelp()[0])
	}
	return helpRows
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.recordRun()
		m.config.Seed = time.Now().UnixNano()
		m.scenario.Reset(m.config)
		m.state = m.scenario.State()
		m.started = time.Now()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickDuration())
	}

	result := m.scenario.Step(m.inputFrame)
	m.state = result.State

	if m.state.Done {
		m.recordRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickDuration())
}

// recordRun saves the current run once. Runs that never ticked are skipped.
func (m *Model) recordRun() {
	if m.store == nil || m.recorded || m.state.Tick == 0 {
		return
	}
	m.recorded = true

	snap := m.scenario.Snapshot()
	run := storage.Run{
		Scenario:  m.scenario.ID(),
		Seed:      m.config.Seed,
		Ticks:     m.state.Tick,
		Blocked:   m.state.Blocked,
		Hits:      m.state.Hits,
		Queries:   snap.Counters["queries"],
		Tests:     snap.Counters["tests"],
		FullScans: snap.Counters["full_scans"],
		Elapsed:   time.Since(m.started),
	}
	if _, err := m.store.SaveRun(run, snap); err != nil {
		m.log.Error("failed to save run", "scenario", run.Scenario, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scenario.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".spriteplace", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.scenario.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the sandbox continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scenario.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen, m.hudRows))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys)))
	return b.String()
}

// Quitting reports whether the user asked to leave the scenario.
func (m Model) Quitting() bool {
	return m.quitting
}

// State returns the last scenario state seen by the model.
func (m Model) State() core.ScenarioState {
	return m.state
}

// Run starts the Bubble Tea program for the given scenario.
func Run(sc registry.Scenario, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(sc, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
