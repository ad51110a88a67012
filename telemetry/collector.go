package telemetry

import (
	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/sim"
)

// Collector accumulates turn reports and produces TurnStats.
type Collector struct {
	// Events since the last flush
	births           int
	deathsByAge      int
	deathsByImmunity int
	contacts         int

	// Running totals
	totalBirths int
	totalDeaths int

	// Reused between flushes
	immunities []float64
	ages       []float64
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record adds one turn's events.
func (c *Collector) Record(report sim.TurnReport) {
	c.births += report.Births
	c.deathsByAge += report.DeathsByAge
	c.deathsByImmunity += report.DeathsByImmunity
	c.contacts += report.Contacts

	c.totalBirths += report.Births
	c.totalDeaths += report.Deaths()
}

// Flush produces TurnStats for pop and resets the per-turn counters.
func (c *Collector) Flush(pop *sim.Population) TurnStats {
	model := pop.Rules().Immunity
	census := pop.Census()

	stats := TurnStats{
		Turn:       pop.Turn(),
		Population: pop.Len(),
		Healthy:    census[components.Healthy],
		Infected:   census[components.Infected],
		Sick:       census[components.Sick],
		Recovering: census[components.Recovering],

		Births:           c.births,
		DeathsByAge:      c.deathsByAge,
		DeathsByImmunity: c.deathsByImmunity,
		Contacts:         c.contacts,

		TotalBirths: c.totalBirths,
		TotalDeaths: c.totalDeaths,
	}

	c.immunities = c.immunities[:0]
	c.ages = c.ages[:0]
	for i := 0; i < pop.Len(); i++ {
		e := pop.At(i)
		c.immunities = append(c.immunities, float64(e.Immunity))
		c.ages = append(c.ages, float64(e.Age))
		if model.IsLow(e.Immunity) {
			stats.LowImmunity++
		}
		stats.AgeMax = max(stats.AgeMax, e.Age)
	}

	stats.ImmunityMean, stats.ImmunityStd, stats.ImmunityP10, stats.ImmunityP50, stats.ImmunityP90 =
		ComputeDistribution(c.immunities)
	stats.AgeMean, _, _, _, _ = ComputeDistribution(c.ages)

	c.births = 0
	c.deathsByAge = 0
	c.deathsByImmunity = 0
	c.contacts = 0

	return stats
}

// Observe records report and flushes pop.
func (c *Collector) Observe(pop *sim.Population, report sim.TurnReport) TurnStats {
	c.Record(report)
	return c.Flush(pop)
}
