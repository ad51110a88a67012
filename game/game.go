// Package game drives a headless run: it owns the RNG and the snapshot
// history, and feeds every turn to telemetry.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/sim"
	"github.com/pthm-cable/epidemic/telemetry"
)

// Options configures a run.
type Options struct {
	Seed          int64
	Turns         int // 0 = use config
	LogStats      bool
	OutputDir     string
	SnapshotDir   string // save the population whenever a bookmark triggers
	StatsCallback func(telemetry.TurnStats)
}

// Game holds the complete run state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	turns   int
	pop     *sim.Population
	history sim.History

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.TurnStats)
	bookmarks        []telemetry.Bookmark
}

// NewGameWithOptions samples turn 0 and reports it.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("saving config snapshot: %w", err)
	}

	turns := cfg.Population.Turns
	if opts.Turns > 0 {
		turns = opts.Turns
	}

	g := &Game{
		cfg:              cfg,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		seed:             opts.Seed,
		turns:            turns,
		collector:        telemetry.NewCollector(),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.BookmarkHistorySize),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.CrashDropPercent),
		outputManager:    om,
		logStats:         opts.LogStats || cfg.Telemetry.LogStats,
		snapshotDir:      opts.SnapshotDir,
		statsCallback:    opts.StatsCallback,
	}

	g.perfCollector.StartTurn()
	g.perfCollector.StartPhase(telemetry.PhaseAdvance)
	g.pop = sim.New(cfg, g.rng)
	g.history = make(sim.History, 0, turns)
	g.history = append(g.history, g.pop)
	g.flushTelemetry(sim.TurnReport{})

	return g, nil
}

// OutputDir returns the directory receiving CSV output, or "" when disabled.
func (g *Game) OutputDir() string {
	return g.outputManager.Dir()
}

// Step advances one turn. It returns false once the run is complete.
func (g *Game) Step() bool {
	if g.Done() {
		return false
	}

	g.perfCollector.StartTurn()
	g.perfCollector.StartPhase(telemetry.PhaseAdvance)
	next, report := g.pop.Advance(g.rng)
	g.pop = next
	g.history = append(g.history, next)
	g.flushTelemetry(report)

	return true
}

// Run steps until the configured number of turns exists.
func (g *Game) Run() {
	for g.Step() {
	}
}

// Done reports whether every turn has been produced.
func (g *Game) Done() bool {
	return len(g.history) >= g.turns
}

// Turn returns the current turn number.
func (g *Game) Turn() int {
	return g.pop.Turn()
}

// Population returns the current snapshot.
func (g *Game) Population() *sim.Population {
	return g.pop
}

// History returns every snapshot so far, indexed by turn.
func (g *Game) History() sim.History {
	return g.history
}

// Bookmarks returns every bookmark triggered so far.
func (g *Game) Bookmarks() []telemetry.Bookmark {
	return g.bookmarks
}

// Unload renders the epidemic curve and closes output files.
func (g *Game) Unload() error {
	if err := g.outputManager.WriteChart(g.cfg.Telemetry.ChartWidth, g.cfg.Telemetry.ChartHeight); err != nil {
		slog.Warn("failed to write chart", "error", err)
	}
	return g.outputManager.Close()
}
