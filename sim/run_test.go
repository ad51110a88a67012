package sim

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/epidemic/config"
)

func TestRunProducesEveryTurn(t *testing.T) {
	cfg := config.Default()

	var observed []int
	history := Run(cfg, rand.New(rand.NewSource(1)), 12, func(pop *Population, report TurnReport) {
		observed = append(observed, pop.Turn())
		if report.Turn != pop.Turn() {
			t.Errorf("report for turn %d attached to snapshot %d", report.Turn, pop.Turn())
		}
	})

	if len(history) != 12 {
		t.Fatalf("len(history) = %d, want 12", len(history))
	}
	for i, pop := range history {
		if pop.Turn() != i {
			t.Errorf("history[%d].Turn() = %d", i, pop.Turn())
		}
	}
	if !slices.Equal(observed, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}) {
		t.Errorf("observed turns %v", observed)
	}
	if history.Final() != history[11] {
		t.Error("Final() is not the last snapshot")
	}
}

func TestRunSingleTurn(t *testing.T) {
	history := Run(config.Default(), rand.New(rand.NewSource(1)), 0, nil)
	if len(history) != 1 || history[0].Turn() != 0 {
		t.Fatalf("Run with no turns returned %d snapshots", len(history))
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := config.Default()
	a := Run(cfg, rand.New(rand.NewSource(42)), 30, nil)
	b := Run(cfg, rand.New(rand.NewSource(42)), 30, nil)

	for turn := range a {
		if !slices.Equal(a[turn].entities, b[turn].entities) {
			t.Fatalf("turn %d differs between runs with the same seed", turn)
		}
	}
}

func TestRunStaysOnBoard(t *testing.T) {
	cfg := config.Default()
	history := Run(cfg, rand.New(rand.NewSource(100)), 2, nil)

	for _, e := range history[1].Entities() {
		if e.Position.X < 0 || e.Position.X >= cfg.World.Cells || e.Position.Y < 0 || e.Position.Y >= cfg.World.Cells {
			t.Errorf("entity %d off board at %+v", e.ID, e.Position)
		}
	}
}

func TestFoundersAgeOut(t *testing.T) {
	cfg := config.Default()
	founders := uint64(cfg.Population.Initial)

	history := Run(cfg, rand.New(rand.NewSource(100)), cfg.Lifecycle.MaxAge+1, nil)
	for _, e := range history.Final().Entities() {
		if e.ID <= founders {
			t.Errorf("founder %d still alive at age %d after %d turns", e.ID, e.Age, cfg.Lifecycle.MaxAge)
		}
		if e.Age >= cfg.Lifecycle.MaxAge {
			t.Errorf("entity %d survived at age %d", e.ID, e.Age)
		}
	}
}
