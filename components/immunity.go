package components

import "math/rand"

// Immunity is a continuous resistance score. An entity dies once it is <= 0.
type Immunity float64

// Bracket is an immunity range together with the ages it applies to.
type Bracket struct {
	MinAge, MaxAge int // inclusive; unused for the low bracket
	Min, Max       Immunity
}

// Contains reports whether age falls inside the bracket's age range.
func (b Bracket) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// Random draws a value uniformly from [Min, Max].
func (b Bracket) Random(rng *rand.Rand) Immunity {
	return b.Min + Immunity(rng.Float64())*(b.Max-b.Min)
}

// ImmunityModel maps ages to brackets and classifies immunity levels.
// Thresholds are absolute: low is (0, LowBelow), medium is [LowBelow, MediumBelow).
type ImmunityModel struct {
	Low, Normal, High Bracket

	LowBelow    Immunity
	MediumBelow Immunity
}

// BracketFor returns the bracket for an age. Ages outside the normal and
// high ranges use the low bracket.
func (m ImmunityModel) BracketFor(age int) Bracket {
	switch {
	case m.Normal.Contains(age):
		return m.Normal
	case m.High.Contains(age):
		return m.High
	}
	return m.Low
}

// MaxForAge returns the upper bound of the age's bracket.
func (m ImmunityModel) MaxForAge(age int) Immunity {
	return m.BracketFor(age).Max
}

// MinForAge returns the lower bound of the age's bracket.
func (m ImmunityModel) MinForAge(age int) Immunity {
	return m.BracketFor(age).Min
}

// IsLow reports whether i lies in (0, LowBelow).
func (m ImmunityModel) IsLow(i Immunity) bool {
	return i > 0 && i < m.LowBelow
}

// IsMedium reports whether i lies in [LowBelow, MediumBelow).
func (m ImmunityModel) IsMedium(i Immunity) bool {
	return i >= m.LowBelow && i < m.MediumBelow
}

// IsVulnerable is IsLow || IsMedium.
func (m ImmunityModel) IsVulnerable(i Immunity) bool {
	return m.IsLow(i) || m.IsMedium(i)
}
