package main

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/sim"
)

// runawayFactor stops a run once the population exceeds this multiple of the target.
const runawayFactor = 20

// FitnessEvaluator scores parameter vectors by how close the mean final
// population across seeds lands to a target.
type FitnessEvaluator struct {
	params *ParamVector
	base   *config.Config
	seeds  []int64
	turns  int
	target float64

	// Stats from the most recent evaluation
	lastMean    float64
	lastExtinct int
}

// NewFitnessEvaluator creates an evaluator. turns counts snapshots, turn 0 included.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, seeds []int64, turns int, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		base:   base,
		seeds:  seeds,
		turns:  turns,
		target: target,
	}
}

// Evaluate runs one simulation per seed and returns the squared relative
// distance of the mean final population from the target. Lower is better.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := fe.base.Clone()
	fe.params.ApplyToConfig(cfg, raw)

	finals := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()
			finals[i] = float64(finalPopulation(cfg, seed, fe.turns, int(fe.target*runawayFactor)))
		}(i, seed)
	}
	wg.Wait()

	fe.lastExtinct = 0
	for _, f := range finals {
		if f == 0 {
			fe.lastExtinct++
		}
	}
	fe.lastMean = stat.Mean(finals, nil)

	rel := (fe.lastMean - fe.target) / fe.target
	return rel * rel
}

// LastMean returns the mean final population of the most recent evaluation.
func (fe *FitnessEvaluator) LastMean() float64 {
	return fe.lastMean
}

// LastExtinct returns how many seeds died out in the most recent evaluation.
func (fe *FitnessEvaluator) LastExtinct() int {
	return fe.lastExtinct
}

// finalPopulation advances a fresh population without retaining history.
// It stops early on extinction or once the population passes limit.
func finalPopulation(cfg *config.Config, seed int64, turns, limit int) int {
	rng := rand.New(rand.NewSource(seed))
	pop := sim.New(cfg, rng)
	for pop.Turn() < turns-1 && pop.Len() > 0 {
		if limit > 0 && pop.Len() > limit {
			break
		}
		pop, _ = pop.Advance(rng)
	}
	return pop.Len()
}
