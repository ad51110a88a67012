package systems

import (
	"math/rand"

	"github.com/pthm-cable/epidemic/components"
)

// compass lists the 8 non-zero unit steps. Directions are drawn uniformly from it.
var compass = [8]components.Direction{
	{DX: -1, DY: -1}, {DX: 0, DY: -1}, {DX: 1, DY: -1},
	{DX: -1, DY: 0}, {DX: 1, DY: 0},
	{DX: -1, DY: 1}, {DX: 0, DY: 1}, {DX: 1, DY: 1},
}

// RandomPosition draws uniformly over the board.
func (r *Rules) RandomPosition(rng *rand.Rand) components.Position {
	return components.Position{X: rng.Intn(r.Cells), Y: rng.Intn(r.Cells)}
}

// RandomDirection draws uniformly over the compass.
func (r *Rules) RandomDirection(rng *rand.Rand) components.Direction {
	return compass[rng.Intn(len(compass))]
}

// RandomSpeed draws uniformly from [MinSpeed, MaxSpeed].
func (r *Rules) RandomSpeed(rng *rand.Rand) int {
	return r.MinSpeed + rng.Intn(r.MaxSpeed-r.MinSpeed+1)
}

// RandomAge draws uniformly from [0, MaxAgeOnStart].
func (r *Rules) RandomAge(rng *rand.Rand) int {
	return rng.Intn(r.MaxAgeOnStart + 1)
}

// RandomImmunity draws uniformly from the bracket for age.
func (r *Rules) RandomImmunity(rng *rand.Rand, age int) components.Immunity {
	return r.Immunity.BracketFor(age).Random(rng)
}

// RandomHealth draws a starting stage by weight; the remainder is Healthy.
// Non-healthy stages get a uniform counter over their valid range.
func (r *Rules) RandomHealth(rng *rand.Rand) components.HealthState {
	u := rng.Float64()
	d := r.Durations

	switch {
	case u < r.StartInfectedProb:
		return components.HealthState{Stage: components.Infected, Days: rng.Intn(d.Infected + 1)}
	case u < r.StartInfectedProb+r.StartSickProb:
		return components.HealthState{Stage: components.Sick, Days: rng.Intn(d.Sick)}
	case u < r.StartInfectedProb+r.StartSickProb+r.StartRecoveringProb:
		return components.HealthState{Stage: components.Recovering, Days: rng.Intn(d.Recovery)}
	}
	return components.NewHealthy()
}
