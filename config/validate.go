package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func checkProb(name string, p float64) error {
	if p < 0 || p > 1 {
		return invalid("%s must be in [0,1], got %v", name, p)
	}
	return nil
}

// Validate reports the first parameter that would break a simulation invariant.
func (c *Config) Validate() error {
	if c.World.Cells < 1 {
		return invalid("world.cells must be positive, got %d", c.World.Cells)
	}
	if c.Population.Initial < 0 {
		return invalid("population.initial must not be negative, got %d", c.Population.Initial)
	}
	if c.Population.Turns < 1 {
		return invalid("population.turns must be at least 1, got %d", c.Population.Turns)
	}
	if c.Lifecycle.MaxAge < 1 {
		return invalid("lifecycle.max_age must be positive, got %d", c.Lifecycle.MaxAge)
	}
	if c.Lifecycle.MaxAgeOnStart < 0 {
		return invalid("lifecycle.max_age_on_start must not be negative, got %d", c.Lifecycle.MaxAgeOnStart)
	}

	m := c.Movement
	if m.MinSpeed < 1 || m.MaxSpeed < m.MinSpeed {
		return invalid("movement speed range [%d,%d] must be positive and ordered", m.MinSpeed, m.MaxSpeed)
	}
	if m.ContactRadius < 0 {
		return invalid("movement.contact_radius must not be negative, got %d", m.ContactRadius)
	}

	h := c.Health
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"health.infected_on_start_prob", h.InfectedOnStartProb},
		{"health.sick_on_start_prob", h.SickOnStartProb},
		{"health.recovering_on_start_prob", h.RecoveringOnStartProb},
		{"reproduction.birth_on_contact_prob", c.Reproduction.BirthOnContactProb},
	} {
		if err := checkProb(p.name, p.v); err != nil {
			return err
		}
	}
	if sum := h.InfectedOnStartProb + h.SickOnStartProb + h.RecoveringOnStartProb; sum > 1 {
		return invalid("health start probabilities sum to %v, above 1", sum)
	}
	if h.InfectedDays < 0 || h.SickDays < 1 || h.RecoveryDays < 1 {
		return invalid("health durations must be infected>=0, sick>=1, recovery>=1 (got %d, %d, %d)",
			h.InfectedDays, h.SickDays, h.RecoveryDays)
	}

	im := c.Immunity
	for _, b := range []struct {
		name string
		b    BracketConfig
	}{
		{"low", im.Low}, {"normal", im.Normal}, {"high", im.High},
	} {
		if b.b.Min > b.b.Max {
			return invalid("immunity.%s min %v above max %v", b.name, b.b.Min, b.b.Max)
		}
	}
	if im.Normal.MinAge > im.Normal.MaxAge || im.High.MinAge > im.High.MaxAge {
		return invalid("immunity bracket age ranges must be ordered")
	}
	if im.Normal.MaxAge >= im.High.MinAge && im.High.MaxAge >= im.Normal.MinAge {
		return invalid("immunity normal [%d,%d] and high [%d,%d] age ranges overlap",
			im.Normal.MinAge, im.Normal.MaxAge, im.High.MinAge, im.High.MaxAge)
	}
	if im.LowBelow <= 0 || im.MediumBelow < im.LowBelow {
		return invalid("immunity thresholds must satisfy 0 < low_below <= medium_below")
	}

	r := c.Reproduction
	if r.MaxChildrenPerBirth < 0 {
		return invalid("reproduction.max_children_per_birth must not be negative, got %d", r.MaxChildrenPerBirth)
	}
	if r.MinParentAge > r.MaxParentAge {
		return invalid("reproduction parent age range [%d,%d] is not ordered", r.MinParentAge, r.MaxParentAge)
	}

	if c.Telemetry.CrashDropPercent < 0 || c.Telemetry.CrashDropPercent > 1 {
		return invalid("telemetry.crash_drop_percent must be in [0,1], got %v", c.Telemetry.CrashDropPercent)
	}

	return nil
}
