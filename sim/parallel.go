package sim

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/systems"
)

// outcome is one entity's result for the turn, merged after all work is done.
type outcome struct {
	entity   Entity
	children []Entity
	contacts int
}

// turnState holds the frozen snapshot and per-entity results of one turn.
type turnState struct {
	rules    *systems.Rules
	prev     []Entity // read-only for the whole turn
	seeds    []int64
	grid     *systems.SpatialGrid
	outcomes []outcome
}

// newTurnState draws one seed per entity from rng, in snapshot order, so the
// turn's result does not depend on how the work is scheduled.
func newTurnState(r *systems.Rules, prev []Entity, rng *rand.Rand) *turnState {
	n := len(prev)

	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	positions := make([]components.Position, n)
	for i := range prev {
		positions[i] = prev[i].Position
	}
	grid := systems.NewSpatialGrid(r.Cells, r.ContactRadius)
	grid.Build(positions)

	return &turnState{
		rules:    r,
		prev:     prev,
		seeds:    seeds,
		grid:     grid,
		outcomes: make([]outcome, n),
	}
}

// run transforms every entity, inline for small populations and on a worker
// pool otherwise.
func (t *turnState) run() {
	n := len(t.prev)
	if t.rules.ParallelThreshold <= 0 || n < t.rules.ParallelThreshold {
		t.computeChunk(0, n)
		return
	}
	t.computeParallel(n, runtime.GOMAXPROCS(0))
}

// computeParallel splits [0,n) into one chunk per worker and waits for all.
func (t *turnState) computeParallel(n, numWorkers int) {
	chunkSize := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(i0, i1 int) {
			defer wg.Done()
			t.computeChunk(i0, i1)
		}(start, end)
	}
	wg.Wait()
}

// computeChunk transforms entities [i0, i1). Each index writes only its own outcome.
func (t *turnState) computeChunk(i0, i1 int) {
	neighbors := make([]int, 0, 16)
	for i := i0; i < i1; i++ {
		neighbors = t.transform(i, neighbors)
	}
}

// transform runs steps 1-4 of a turn for entity i and returns the scratch buffer.
func (t *turnState) transform(i int, neighbors []int) []int {
	r := t.rules
	rng := rand.New(rand.NewSource(t.seeds[i]))

	e := t.prev[i]
	e.MakeMove(r)
	e.Age++

	// The sweep includes e's own previous self.
	neighbors = t.grid.QueryInto(neighbors[:0], e.Position, r.ContactRadius)

	var births []Entity
	contacts := 0
	for _, j := range neighbors {
		var hit bool
		births, hit = e.CheckContact(&t.prev[j], r, rng, births)
		if hit {
			contacts++
		}
	}

	e.ApplyHealthEffect(r)
	e.AdvanceHealthByDay(r)

	t.outcomes[i] = outcome{entity: e, children: births, contacts: contacts}
	return neighbors
}
