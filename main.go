package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output per-turn stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, chart and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for population snapshots saved at bookmarks")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	turns := flag.Int("turns", 0, "Number of turns including turn 0 (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:        rngSeed,
		Turns:       *turns,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"initial", cfg.Population.Initial,
		"cells", cfg.World.Cells,
		"output_dir", g.OutputDir(),
	)

	start := time.Now()
	g.Run()

	final := g.Population()
	census := final.Census()
	slog.Info("simulation complete",
		"turns", final.Turn()+1,
		"population", final.Len(),
		"healthy", census[components.Healthy],
		"infected", census[components.Infected],
		"sick", census[components.Sick],
		"recovering", census[components.Recovering],
		"bookmarks", len(g.Bookmarks()),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if err := g.Unload(); err != nil {
		slog.Error("failed to close output", "error", err)
		os.Exit(1)
	}
}
