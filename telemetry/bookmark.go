package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOutbreakPeak     BookmarkType = "outbreak_peak"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkDiseaseFree      BookmarkType = "disease_free"
	BookmarkExtinction       BookmarkType = "extinction"
	BookmarkStablePopulation BookmarkType = "stable_population"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Turn        int          `csv:"turn"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"turn", b.Turn,
		"description", b.Description,
	)
}

const (
	// minOutbreak is the smallest diseased count reported as an outbreak peak.
	minOutbreak = 3
	// minRisingTurns is how many turns the diseased count must grow before a fall counts as a peak.
	minRisingTurns = 3
)

// BookmarkDetector detects turning points in an epidemic.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []TurnStats
	historySize int
	historyIdx  int
	historyFull bool

	crashDropPercent float64

	// State tracking
	last             *TurnStats
	risingTurns      int  // turns the diseased count grew since it last fell
	recentPeak       int  // peak population since the last crash
	diseaseSeen      bool // disease present since the last disease_free bookmark
	extinct          bool
	stableTurnsCount int
}

// NewBookmarkDetector creates a detector with the given history size and the
// population drop from a recent peak that counts as a crash.
func NewBookmarkDetector(historySize int, crashDropPercent float64) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable population detection
	}
	return &BookmarkDetector{
		history:          make([]TurnStats, historySize),
		historySize:      historySize,
		crashDropPercent: crashDropPercent,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats TurnStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.last != nil {
		if b := bd.checkOutbreakPeak(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStablePopulation(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if b := bd.checkDiseaseFree(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.last != nil {
		switch d := stats.Diseased(); {
		case d > bd.last.Diseased():
			bd.risingTurns++
		case d < bd.last.Diseased():
			bd.risingTurns = 0
		}
	}
	bd.addToHistory(stats)
	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats TurnStats) {
	bd.history[bd.historyIdx] = stats
	bd.last = &bd.history[bd.historyIdx]
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []TurnStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// recent returns up to n of the latest stats, oldest first.
func (bd *BookmarkDetector) recent(n int) []TurnStats {
	n = min(n, len(bd.getHistory()))
	out := make([]TurnStats, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, bd.history[(bd.historyIdx-i+bd.historySize)%bd.historySize])
	}
	return out
}

// checkOutbreakPeak fires on the first falling turn after the diseased count
// grew on at least minRisingTurns turns, dated at the turn that held the peak.
// Flat turns neither extend nor break a rise. The fall resets the count, so a
// wave is reported once and a new one needs a fresh rise.
func (bd *BookmarkDetector) checkOutbreakPeak(stats TurnStats) *Bookmark {
	peak := *bd.last
	if bd.risingTurns < minRisingTurns || stats.Diseased() >= peak.Diseased() || peak.Diseased() < minOutbreak {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkOutbreakPeak,
		Turn:        peak.Turn,
		Description: fmt.Sprintf("Outbreak peaked at %d diseased of %d (%d sick)", peak.Diseased(), peak.Population, peak.Sick),
	}
}

func (bd *BookmarkDetector) checkPopulationCrash(stats TurnStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if dropPercent > bd.crashDropPercent && stats.Population < bd.recentPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Turn:        stats.Turn,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Population),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkDiseaseFree(stats TurnStats) *Bookmark {
	if stats.Diseased() > 0 {
		bd.diseaseSeen = true
		return nil
	}
	if !bd.diseaseSeen || stats.Population == 0 {
		return nil
	}

	bd.diseaseSeen = false
	return &Bookmark{
		Type:        BookmarkDiseaseFree,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("No infected or sick entities left among %d", stats.Population),
	}
}

func (bd *BookmarkDetector) checkExtinction(stats TurnStats) *Bookmark {
	if stats.Population > 0 || bd.extinct || bd.last == nil {
		return nil
	}

	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Turn:        stats.Turn,
		Description: fmt.Sprintf("Population died out (%d births, %d deaths in total)", stats.TotalBirths, stats.TotalDeaths),
	}
}

func (bd *BookmarkDetector) checkStablePopulation(stats TurnStats) *Bookmark {
	if stats.Population < 10 {
		bd.stableTurnsCount = 0
		return nil
	}

	// The last 4 turns, this one included
	window := append(bd.recent(3), stats)
	if len(window) < 4 {
		return nil
	}

	var sum float64
	for _, h := range window {
		sum += float64(h.Population)
	}
	mean := sum / 4

	var variance float64
	for _, h := range window {
		d := float64(h.Population) - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.stableTurnsCount++
	} else {
		bd.stableTurnsCount = 0
	}

	if bd.stableTurnsCount == 5 { // trigger exactly once per stable stretch
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Turn:        stats.Turn,
			Description: fmt.Sprintf("Population stable around %d over 5+ turns", stats.Population),
		}
	}

	return nil
}
