package sim

import (
	"math/rand"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/systems"
)

// Entity is one agent. Entities are plain values: a snapshot hands out
// copies, and a turn works on its own copy of every entity.
type Entity struct {
	ID       uint64
	ParentID uint64 // 0 for founders

	Position  components.Position
	Direction components.Direction
	Speed     int
	Age       int
	Health    components.HealthState
	Immunity  components.Immunity
}

// NewRandomEntity samples a founder. The ID is assigned by the population.
func NewRandomEntity(r *systems.Rules, rng *rand.Rand) Entity {
	position := r.RandomPosition(rng)
	age := r.RandomAge(rng)
	immunity := r.RandomImmunity(rng, age)
	health := r.RandomHealth(rng)
	speed := r.RandomSpeed(rng)
	direction := r.RandomDirection(rng)

	return Entity{
		Position:  position,
		Direction: direction,
		Speed:     speed,
		Age:       age,
		Health:    health,
		Immunity:  immunity,
	}
}

// MakeMove walks the entity Speed steps with border reflection.
func (e *Entity) MakeMove(r *systems.Rules) {
	e.Position, e.Direction = systems.Move(e.Position, e.Direction, e.Speed, r.Cells)
}

// InContact reports whether other is within the contact radius.
func (e *Entity) InContact(other *Entity, r *systems.Rules) bool {
	return components.Chebyshev(e.Position, other.Position) <= r.ContactRadius
}

// CheckContact runs OnContact if other is in range. Offspring are appended
// to births, which is returned.
func (e *Entity) CheckContact(other *Entity, r *systems.Rules, rng *rand.Rand, births []Entity) ([]Entity, bool) {
	if !e.InContact(other, r) {
		return births, false
	}
	return e.OnContact(other, r, rng, births), true
}

// OnContact applies one contact to e: bounce, a birth trial, then the
// contagion table. other is never modified.
func (e *Entity) OnContact(other *Entity, r *systems.Rules, rng *rand.Rand, births []Entity) []Entity {
	e.Direction = e.Direction.Reversed()

	if rng.Float64() < r.BirthOnContactProb {
		births = e.GiveBirthIfSuitable(other, r, rng, births)
	}

	ex := r.Contagion(systems.Exposure{Health: e.Health, Immunity: e.Immunity, Age: e.Age}, other.Health.Stage)
	e.Health = ex.Health
	e.Immunity = ex.Immunity

	return births
}

// GiveBirthIfSuitable appends MaxChildrenPerBirth newborns to births when
// both parents are of parenting age.
func (e *Entity) GiveBirthIfSuitable(other *Entity, r *systems.Rules, rng *rand.Rand, births []Entity) []Entity {
	if !r.CanParent(e.Age) || !r.CanParent(other.Age) {
		return births
	}

	at := components.Midpoint(e.Position, other.Position)
	for i := 0; i < r.MaxChildrenPerBirth; i++ {
		births = append(births, Entity{
			ParentID:  e.ID,
			Position:  at,
			Speed:     r.RandomSpeed(rng),
			Direction: r.RandomDirection(rng),
			Health:    components.NewHealthy(),
			Age:       0,
			Immunity:  r.Immunity.Low.Max,
		})
	}
	return births
}

// ApplyHealthEffect applies the daily immunity delta for the current stage
// and caps immunity at the maximum for the entity's age.
func (e *Entity) ApplyHealthEffect(r *systems.Rules) {
	e.Immunity += r.DailyDelta[e.Health.Stage]
	e.Immunity = min(e.Immunity, r.Immunity.MaxForAge(e.Age))
}

// AdvanceHealthByDay steps the health state machine once.
func (e *Entity) AdvanceHealthByDay(r *systems.Rules) {
	e.Health = e.Health.Next(r.Durations)
}

// DiedOfAge reports whether the entity has reached the maximum age.
func (e *Entity) DiedOfAge(r *systems.Rules) bool {
	return e.Age >= r.MaxAge
}

// ShouldDie reports whether the entity is removed at the end of a turn.
func (e *Entity) ShouldDie(r *systems.Rules) bool {
	return e.DiedOfAge(r) || e.Immunity <= 0
}
