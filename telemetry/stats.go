package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// TurnStats holds aggregated statistics for one turn.
type TurnStats struct {
	Turn int `csv:"turn"`

	// Population counts at turn end
	Population int `csv:"population"`
	Healthy    int `csv:"healthy"`
	Infected   int `csv:"infected"`
	Sick       int `csv:"sick"`
	Recovering int `csv:"recovering"`

	// Events while producing this turn
	Births           int `csv:"births"`
	DeathsByAge      int `csv:"deaths_age"`
	DeathsByImmunity int `csv:"deaths_immunity"`
	Contacts         int `csv:"contacts"`

	// Running totals since turn 0
	TotalBirths int `csv:"total_births"`
	TotalDeaths int `csv:"total_deaths"`

	// Immunity distribution
	ImmunityMean float64 `csv:"immunity_mean"`
	ImmunityStd  float64 `csv:"immunity_std"`
	ImmunityP10  float64 `csv:"immunity_p10"`
	ImmunityP50  float64 `csv:"immunity_p50"`
	ImmunityP90  float64 `csv:"immunity_p90"`
	LowImmunity  int     `csv:"low_immunity"` // entities in the low immunity level

	// Age distribution
	AgeMean float64 `csv:"age_mean"`
	AgeMax  int     `csv:"age_max"`
}

// Diseased returns the number of entities carrying the disease.
func (s TurnStats) Diseased() int {
	return s.Infected + s.Sick
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, sample std, and percentiles.
// values is sorted in place.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	switch len(values) {
	case 0:
		return 0, 0, 0, 0, 0
	case 1:
		v := values[0]
		return v, 0, v, v, v
	}

	mean, std = stat.MeanStdDev(values, nil)

	slices.Sort(values)
	p10 = Percentile(values, 0.10)
	p50 = Percentile(values, 0.50)
	p90 = Percentile(values, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s TurnStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("turn", s.Turn),
		slog.Int("population", s.Population),
		slog.Int("healthy", s.Healthy),
		slog.Int("infected", s.Infected),
		slog.Int("sick", s.Sick),
		slog.Int("recovering", s.Recovering),
		slog.Int("births", s.Births),
		slog.Int("deaths_age", s.DeathsByAge),
		slog.Int("deaths_immunity", s.DeathsByImmunity),
		slog.Int("contacts", s.Contacts),
		slog.Int("total_births", s.TotalBirths),
		slog.Int("total_deaths", s.TotalDeaths),
		slog.Float64("immunity_mean", s.ImmunityMean),
		slog.Float64("immunity_std", s.ImmunityStd),
		slog.Float64("immunity_p10", s.ImmunityP10),
		slog.Float64("immunity_p50", s.ImmunityP50),
		slog.Float64("immunity_p90", s.ImmunityP90),
		slog.Int("low_immunity", s.LowImmunity),
		slog.Float64("age_mean", s.AgeMean),
		slog.Int("age_max", s.AgeMax),
	)
}

// LogStats logs the turn stats using slog.
func (s TurnStats) LogStats() {
	slog.Info("turn", "stats", s)
}
