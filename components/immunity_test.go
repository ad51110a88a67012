package components

import (
	"math/rand"
	"testing"
)

func testModel() ImmunityModel {
	return ImmunityModel{
		Low:         Bracket{Min: 1, Max: 3},
		Normal:      Bracket{MinAge: 15, MaxAge: 39, Min: 4, Max: 6},
		High:        Bracket{MinAge: 40, MaxAge: 69, Min: 7, Max: 10},
		LowBelow:    3,
		MediumBelow: 6,
	}
}

func TestBracketFor(t *testing.T) {
	m := testModel()
	for age := 0; age <= 120; age++ {
		want := m.Low
		switch {
		case age >= 15 && age <= 39:
			want = m.Normal
		case age >= 40 && age <= 69:
			want = m.High
		}
		if got := m.BracketFor(age); got != want {
			t.Errorf("BracketFor(%d) = %v, want %v", age, got, want)
		}
	}
}

func TestMinMaxForAge(t *testing.T) {
	m := testModel()
	tests := []struct {
		age      int
		min, max Immunity
	}{
		{0, 1, 3},
		{14, 1, 3},
		{15, 4, 6},
		{39, 4, 6},
		{40, 7, 10},
		{69, 7, 10},
		{70, 1, 3},
		{99, 1, 3},
	}
	for _, tt := range tests {
		if got := m.MaxForAge(tt.age); got != tt.max {
			t.Errorf("MaxForAge(%d) = %v, want %v", tt.age, got, tt.max)
		}
		if got := m.MinForAge(tt.age); got != tt.min {
			t.Errorf("MinForAge(%d) = %v, want %v", tt.age, got, tt.min)
		}
	}
}

func TestRandomWithinBracket(t *testing.T) {
	m := testModel()
	rng := rand.New(rand.NewSource(7))
	for age := 0; age < 100; age++ {
		b := m.BracketFor(age)
		for i := 0; i < 50; i++ {
			v := b.Random(rng)
			if v < b.Min || v > b.Max {
				t.Fatalf("Random() for age %d = %v, outside [%v,%v]", age, v, b.Min, b.Max)
			}
		}
	}
}

func TestLevels(t *testing.T) {
	m := testModel()
	tests := []struct {
		v           Immunity
		low, medium bool
	}{
		{-1, false, false},
		{0, false, false},
		{0.5, true, false},
		{2.99, true, false},
		{3, false, true},
		{5.99, false, true},
		{6, false, false},
		{10, false, false},
	}
	for _, tt := range tests {
		if got := m.IsLow(tt.v); got != tt.low {
			t.Errorf("IsLow(%v) = %v, want %v", tt.v, got, tt.low)
		}
		if got := m.IsMedium(tt.v); got != tt.medium {
			t.Errorf("IsMedium(%v) = %v, want %v", tt.v, got, tt.medium)
		}
		if got := m.IsVulnerable(tt.v); got != (tt.low || tt.medium) {
			t.Errorf("IsVulnerable(%v) = %v", tt.v, got)
		}
	}
}
