package systems

import (
	"fmt"

	"github.com/pthm-cable/epidemic/components"
)

// Exposure is the acting entity's side of a contact.
type Exposure struct {
	Health   components.HealthState
	Immunity components.Immunity
	Age      int
}

// contactRule maps the acting entity's exposure to its new health and immunity.
type contactRule func(r *Rules, e Exposure) Exposure

// contagionTable is indexed [self stage][other stage].
var contagionTable = [components.NumStages][components.NumStages]contactRule{
	components.Healthy: {
		components.Healthy:    restoreToMax,
		components.Infected:   sickIfLow,
		components.Sick:       infectedIfVulnerableElsePenalty,
		components.Recovering: unchanged,
	},
	components.Infected: {
		components.Healthy:    unchanged,
		components.Infected:   infectedContactPenalty,
		components.Sick:       sickIfVulnerable,
		components.Recovering: infectedContactPenalty,
	},
	components.Sick: {
		components.Healthy:    unchanged,
		components.Infected:   restartSick,
		components.Sick:       collapseToMin,
		components.Recovering: infectedIfVulnerable,
	},
	components.Recovering: {
		components.Healthy:    recoveringBoost,
		components.Infected:   infectedContactPenalty,
		components.Sick:       infectedIfVulnerable,
		components.Recovering: unchanged,
	},
}

// Contagion resolves one ordered contact where self meets a peer in stage
// other. Only self changes; the reverse effect comes from the peer's own pass.
func (r *Rules) Contagion(self Exposure, other components.Stage) Exposure {
	if self.Health.Stage >= components.NumStages || other >= components.NumStages {
		panic(fmt.Sprintf("systems: unreachable health pairing (%v, %v)", self.Health.Stage, other))
	}
	return contagionTable[self.Health.Stage][other](r, self)
}

func unchanged(_ *Rules, e Exposure) Exposure {
	return e
}

func restoreToMax(r *Rules, e Exposure) Exposure {
	e.Immunity = r.Immunity.MaxForAge(e.Age)
	return e
}

func sickIfLow(r *Rules, e Exposure) Exposure {
	if r.Immunity.IsLow(e.Immunity) {
		e.Health = components.NewSick(r.Durations)
	}
	return e
}

func sickIfVulnerable(r *Rules, e Exposure) Exposure {
	if r.Immunity.IsVulnerable(e.Immunity) {
		e.Health = components.NewSick(r.Durations)
	}
	return e
}

func infectedIfVulnerable(r *Rules, e Exposure) Exposure {
	if r.Immunity.IsVulnerable(e.Immunity) {
		e.Health = components.NewInfected(r.Durations)
	}
	return e
}

func infectedIfVulnerableElsePenalty(r *Rules, e Exposure) Exposure {
	if r.Immunity.IsVulnerable(e.Immunity) {
		e.Health = components.NewInfected(r.Durations)
		return e
	}
	e.Immunity -= r.SickExposurePenalty
	return e
}

func infectedContactPenalty(r *Rules, e Exposure) Exposure {
	e.Immunity -= r.InfectedContactPenalty
	return e
}

func recoveringBoost(r *Rules, e Exposure) Exposure {
	e.Immunity += r.RecoveringContactBoost
	return e
}

func restartSick(r *Rules, e Exposure) Exposure {
	e.Health = components.NewSick(r.Durations)
	return e
}

func collapseToMin(r *Rules, e Exposure) Exposure {
	e.Immunity = r.Immunity.MinForAge(e.Age)
	e.Health = components.NewSick(r.Durations)
	return e
}
