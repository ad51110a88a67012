package main

import (
	"math"
	"slices"
	"testing"

	"github.com/pthm-cable/epidemic/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	raw := pv.ExtractFromConfig(cfg)
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{-1, 2})
	got := pv.ExtractFromConfig(cfg)
	want := []float64{pv.Specs[0].Min, pv.Specs[1].Max}
	if !slices.Equal(got, want) {
		t.Errorf("ApplyToConfig clamped to %v, want %v", got, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config invalid: %v", err)
	}
}

func TestFitnessPrefersTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Population.Initial = 60
	pv := NewParamVector()

	// No births, so a fixed seed gives a fixed final population.
	pv.ApplyToConfig(cfg, []float64{0, 0})
	final := float64(finalPopulation(cfg, 1, 5, 0))

	fe := NewFitnessEvaluator(pv, cfg, []int64{1}, 5, final)
	if got := fe.Evaluate([]float64{0, 0}); got != 0 {
		t.Errorf("fitness at target = %v, want 0", got)
	}
	if fe.LastMean() != final || fe.LastExtinct() != 0 {
		t.Errorf("LastMean=%v LastExtinct=%d", fe.LastMean(), fe.LastExtinct())
	}

	far := NewFitnessEvaluator(pv, cfg, []int64{1}, 5, final*2)
	if got := far.Evaluate([]float64{0, 0}); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("fitness at half the target = %v, want 0.25", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(75_000_000_000); got != "1m15s" {
		t.Errorf("formatDuration = %q", got)
	}
}
