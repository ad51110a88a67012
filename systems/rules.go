// Package systems holds the per-entity rules of the simulation: sampling,
// movement, contagion, and the spatial index used by the contact sweep.
package systems

import (
	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/config"
)

// Rules is the read-only form of a Config used on hot paths.
// Build it once with NewRules and share it between snapshots.
type Rules struct {
	Cells         int
	MaxAge        int
	MaxAgeOnStart int

	MinSpeed      int
	MaxSpeed      int
	ContactRadius int

	Durations components.Durations
	Immunity  components.ImmunityModel

	StartInfectedProb   float64
	StartSickProb       float64
	StartRecoveringProb float64

	// DailyDelta is indexed by components.Stage
	DailyDelta [components.NumStages]components.Immunity

	SickExposurePenalty    components.Immunity
	InfectedContactPenalty components.Immunity
	RecoveringContactBoost components.Immunity

	BirthOnContactProb  float64
	MaxChildrenPerBirth int
	MinParentAge        int
	MaxParentAge        int

	ParallelThreshold int
}

// NewRules compiles a Config into Rules. cfg must already be validated.
func NewRules(cfg *config.Config) *Rules {
	if cfg == nil {
		panic("systems: NewRules called with nil config")
	}
	im := cfg.Immunity

	r := &Rules{
		Cells:         cfg.World.Cells,
		MaxAge:        cfg.Lifecycle.MaxAge,
		MaxAgeOnStart: cfg.Lifecycle.MaxAgeOnStart,

		MinSpeed:      cfg.Movement.MinSpeed,
		MaxSpeed:      cfg.Movement.MaxSpeed,
		ContactRadius: cfg.Movement.ContactRadius,

		Durations: components.Durations{
			Infected: cfg.Health.InfectedDays,
			Sick:     cfg.Health.SickDays,
			Recovery: cfg.Health.RecoveryDays,
		},
		Immunity: components.ImmunityModel{
			Low:         bracket(im.Low),
			Normal:      bracket(im.Normal),
			High:        bracket(im.High),
			LowBelow:    components.Immunity(im.LowBelow),
			MediumBelow: components.Immunity(im.MediumBelow),
		},

		StartInfectedProb:   cfg.Health.InfectedOnStartProb,
		StartSickProb:       cfg.Health.SickOnStartProb,
		StartRecoveringProb: cfg.Health.RecoveringOnStartProb,

		SickExposurePenalty:    components.Immunity(im.SickExposurePenalty),
		InfectedContactPenalty: components.Immunity(im.InfectedContactPenalty),
		RecoveringContactBoost: components.Immunity(im.RecoveringContactBoost),

		BirthOnContactProb:  cfg.Reproduction.BirthOnContactProb,
		MaxChildrenPerBirth: cfg.Reproduction.MaxChildrenPerBirth,
		MinParentAge:        cfg.Reproduction.MinParentAge,
		MaxParentAge:        cfg.Reproduction.MaxParentAge,

		ParallelThreshold: cfg.Population.ParallelThreshold,
	}

	r.DailyDelta[components.Healthy] = components.Immunity(im.HealthyDelta)
	r.DailyDelta[components.Infected] = components.Immunity(im.InfectedDelta)
	r.DailyDelta[components.Sick] = components.Immunity(im.SickDelta)
	r.DailyDelta[components.Recovering] = components.Immunity(im.RecoveringDelta)

	return r
}

func bracket(b config.BracketConfig) components.Bracket {
	return components.Bracket{
		MinAge: b.MinAge,
		MaxAge: b.MaxAge,
		Min:    components.Immunity(b.Min),
		Max:    components.Immunity(b.Max),
	}
}

// CanParent reports whether age is inside the inclusive parent age range.
func (r *Rules) CanParent(age int) bool {
	return age >= r.MinParentAge && age <= r.MaxParentAge
}
