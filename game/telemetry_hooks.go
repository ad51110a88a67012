package game

import (
	"log/slog"

	"github.com/pthm-cable/epidemic/sim"
	"github.com/pthm-cable/epidemic/telemetry"
)

// flushTelemetry turns the latest snapshot into stats and handles bookmarks.
// It closes the perf sample opened by the caller.
func (g *Game) flushTelemetry(report sim.TurnReport) {
	g.perfCollector.StartPhase(telemetry.PhaseStats)
	stats := g.collector.Observe(g.pop, report)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
	}

	if err := g.outputManager.WriteTurn(stats); err != nil {
		slog.Error("failed to write turn", "error", err)
	}

	bookmarks := g.bookmarkDetector.Check(stats)
	for _, bm := range bookmarks {
		if g.logStats {
			bm.LogBookmark()
		}

		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}

		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
	g.bookmarks = append(g.bookmarks, bookmarks...)

	g.perfCollector.EndTurn()
	perfStats := g.perfCollector.Stats()
	if g.logStats {
		perfStats.LogStats()
	}
	if err := g.outputManager.WritePerf(perfStats, stats.Turn); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// saveSnapshot writes the bookmarked snapshot. Bookmarks dated at an earlier
// turn (outbreak peaks) are saved from the history.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	pop := g.pop
	if bm.Turn >= 0 && bm.Turn < len(g.history) {
		pop = g.history[bm.Turn]
	}

	path, err := telemetry.SaveSnapshot(telemetry.NewSnapshot(pop, g.seed, bm), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "turn", pop.Turn())
}
