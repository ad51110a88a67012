// Package sim advances a population of entities through discrete turns.
//
// A turn never modifies the snapshot it starts from: every entity is copied,
// moved, aged and exposed to its contacts against the frozen previous
// snapshot, and the survivors plus newborns form a new Population.
package sim

import (
	"math/rand"
	"slices"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/systems"
)

// Population is an immutable snapshot of every entity at one turn boundary.
type Population struct {
	rules    *systems.Rules
	turn     int
	entities []Entity
	nextID   uint64
}

// TurnReport summarizes what happened while producing a snapshot.
type TurnReport struct {
	Turn             int
	Contacts         int // ordered contact events, self-contacts included
	Births           int
	DeathsByAge      int
	DeathsByImmunity int
}

// Deaths returns the total number of entities removed by the filter.
func (r TurnReport) Deaths() int {
	return r.DeathsByAge + r.DeathsByImmunity
}

// New samples the turn 0 population. No movement, aging or contact is applied.
func New(cfg *config.Config, rng *rand.Rand) *Population {
	r := systems.NewRules(cfg)

	entities := make([]Entity, cfg.Population.Initial)
	for i := range entities {
		entities[i] = NewRandomEntity(r, rng)
		entities[i].ID = uint64(i + 1)
	}

	return &Population{
		rules:    r,
		entities: entities,
		nextID:   uint64(len(entities) + 1),
	}
}

// FromEntities builds a snapshot from explicit entities. Entities with a zero
// ID are numbered after the largest ID present.
func FromEntities(cfg *config.Config, turn int, entities []Entity) *Population {
	return Resume(cfg, turn, 0, entities)
}

// Resume is FromEntities for a saved snapshot: IDs below nextID are never
// handed out again, even if their entities have since died.
func Resume(cfg *config.Config, turn int, nextID uint64, entities []Entity) *Population {
	p := &Population{
		rules:    systems.NewRules(cfg),
		turn:     turn,
		entities: slices.Clone(entities),
		nextID:   max(nextID, 1),
	}

	for _, e := range p.entities {
		p.nextID = max(p.nextID, e.ID+1)
	}
	for i := range p.entities {
		if p.entities[i].ID == 0 {
			p.entities[i].ID = p.nextID
			p.nextID++
		}
	}
	return p
}

// Turn returns the turn number of the snapshot (0 for the initial one).
func (p *Population) Turn() int {
	return p.turn
}

// Len returns the number of entities.
func (p *Population) Len() int {
	return len(p.entities)
}

// At returns a copy of the i-th entity.
func (p *Population) At(i int) Entity {
	return p.entities[i]
}

// Entities returns a copy of all entities in snapshot order.
func (p *Population) Entities() []Entity {
	return slices.Clone(p.entities)
}

// NextID returns the ID the next newborn will receive.
func (p *Population) NextID() uint64 {
	return p.nextID
}

// Rules returns the compiled rules shared by every snapshot of a run.
func (p *Population) Rules() *systems.Rules {
	return p.rules
}

// Census counts entities per health stage.
func (p *Population) Census() [components.NumStages]int {
	var counts [components.NumStages]int
	for i := range p.entities {
		counts[p.entities[i].Health.Stage]++
	}
	return counts
}

// Advance produces the next snapshot: move and age, resolve contacts against
// this snapshot, apply the immunity delta, step health, then splice in
// newborns and drop the dead.
func (p *Population) Advance(rng *rand.Rand) (*Population, TurnReport) {
	report := TurnReport{Turn: p.turn + 1}

	t := newTurnState(p.rules, p.entities, rng)
	t.run()

	next := &Population{
		rules:    p.rules,
		turn:     p.turn + 1,
		entities: make([]Entity, 0, len(p.entities)),
		nextID:   p.nextID,
	}

	for i := range t.outcomes {
		o := &t.outcomes[i]
		report.Contacts += o.contacts
		report.Births += len(o.children)

		next.keep(o.entity, &report)
		for _, child := range o.children {
			child.ID = next.nextID
			next.nextID++
			next.keep(child, &report)
		}
	}

	return next, report
}

// keep appends e unless it should die, counting the cause.
func (p *Population) keep(e Entity, report *TurnReport) {
	switch {
	case e.DiedOfAge(p.rules):
		report.DeathsByAge++
	case e.ShouldDie(p.rules):
		report.DeathsByImmunity++
	default:
		p.entities = append(p.entities, e)
	}
}
