package sim

import (
	"math/rand"

	"github.com/pthm-cable/epidemic/config"
)

// History is every snapshot of a run, indexed by turn.
type History []*Population

// Final returns the last snapshot, or nil for an empty history.
func (h History) Final() *Population {
	if len(h) == 0 {
		return nil
	}
	return h[len(h)-1]
}

// Observer is called with each snapshot as soon as it exists. The turn 0
// report is all zeros. Observers must treat the snapshot as read-only.
type Observer func(pop *Population, report TurnReport)

// Run builds turn 0 and advances until turns snapshots exist (at least one),
// retaining all of them.
func Run(cfg *config.Config, rng *rand.Rand, turns int, observe Observer) History {
	pop := New(cfg, rng)

	history := make(History, 0, max(turns, 1))
	history = append(history, pop)
	if observe != nil {
		observe(pop, TurnReport{})
	}

	for len(history) < turns {
		next, report := pop.Advance(rng)
		history = append(history, next)
		if observe != nil {
			observe(next, report)
		}
		pop = next
	}

	return history
}
