package components

import "fmt"

// Stage is the disease stage of an entity.
type Stage uint8

const (
	Healthy Stage = iota
	Infected
	Sick
	Recovering
)

// NumStages is the number of distinct stages.
const NumStages = 4

func (s Stage) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Infected:
		return "infected"
	case Sick:
		return "sick"
	case Recovering:
		return "recovering"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// ParseStage is the inverse of Stage.String for the four known stages.
func ParseStage(name string) (Stage, error) {
	for s := Stage(0); s < NumStages; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown health stage %q", name)
}

// Durations holds the canonical stage lengths in days.
type Durations struct {
	Infected int // Infected starts with this many days left
	Sick     int // Sick starts with Sick-1 days left
	Recovery int // Recovering starts with Recovery-1 days left
}

// HealthState is a stage plus the days left before it advances.
// Days is always zero for Healthy.
type HealthState struct {
	Stage Stage
	Days  int
}

// NewHealthy returns the healthy fixed point.
func NewHealthy() HealthState {
	return HealthState{Stage: Healthy}
}

// NewInfected returns a freshly infected state.
func NewInfected(d Durations) HealthState {
	return HealthState{Stage: Infected, Days: max(d.Infected, 0)}
}

// NewSick returns a freshly sick state.
func NewSick(d Durations) HealthState {
	return HealthState{Stage: Sick, Days: max(d.Sick-1, 0)}
}

// NewRecovering returns a freshly recovering state.
func NewRecovering(d Durations) HealthState {
	return HealthState{Stage: Recovering, Days: max(d.Recovery-1, 0)}
}

// Next advances the state by one day. A counter at zero moves to the next
// stage: Infected -> Sick -> Recovering -> Healthy. Healthy stays Healthy.
func (h HealthState) Next(d Durations) HealthState {
	if h.Stage == Healthy {
		return h
	}
	if h.Days > 0 {
		return HealthState{Stage: h.Stage, Days: h.Days - 1}
	}

	switch h.Stage {
	case Infected:
		return NewSick(d)
	case Sick:
		return NewRecovering(d)
	case Recovering:
		return NewHealthy()
	}
	panic(fmt.Sprintf("components: unknown health stage %d", h.Stage))
}

func (h HealthState) String() string {
	if h.Stage == Healthy {
		return "healthy"
	}
	return fmt.Sprintf("%s(%d)", h.Stage, h.Days)
}
