// Package main runs a simulation and replays it in the terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	turns := flag.Int("turns", 0, "Number of turns including turn 0 (0 = use config)")
	delay := flag.Duration("delay", 150*time.Millisecond, "Time between frames while playing")
	flag.Parse()

	// The screen owns stdout, so logs go to stderr
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(cfg, game.Options{Seed: rngSeed, Turns: *turns})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	g.Run()
	if err := g.Unload(); err != nil {
		slog.Error("failed to close simulation", "error", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.SetStyle(tcell.StyleDefault)

	v := newViewer(screen, g.History(), cfg.World.Cells, *delay)
	v.run()
	screen.Fini()

	fmt.Printf("seed %d: %d turns, final population %d\n", rngSeed, len(g.History()), g.Population().Len())
}
