package components

import "testing"

var testDurations = Durations{Infected: 2, Sick: 7, Recovery: 5}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  HealthState
		want HealthState
	}{
		{"healthy", NewHealthy(), HealthState{Stage: Healthy}},
		{"infected", NewInfected(testDurations), HealthState{Stage: Infected, Days: 2}},
		{"sick", NewSick(testDurations), HealthState{Stage: Sick, Days: 6}},
		{"recovering", NewRecovering(testDurations), HealthState{Stage: Recovering, Days: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestHealthyIsFixedPoint(t *testing.T) {
	h := NewHealthy()
	for i := 0; i < 10; i++ {
		h = h.Next(testDurations)
	}
	if h != NewHealthy() {
		t.Errorf("Healthy.Next() drifted to %v", h)
	}
}

func TestNextReachesFollowingStageAfterCounterPlusOne(t *testing.T) {
	tests := []struct {
		start HealthState
		next  Stage
	}{
		{HealthState{Stage: Infected, Days: 0}, Sick},
		{HealthState{Stage: Infected, Days: 2}, Sick},
		{HealthState{Stage: Sick, Days: 3}, Recovering},
		{HealthState{Stage: Sick, Days: 6}, Recovering},
		{HealthState{Stage: Recovering, Days: 0}, Healthy},
		{HealthState{Stage: Recovering, Days: 4}, Healthy},
	}

	for _, tt := range tests {
		t.Run(tt.start.String(), func(t *testing.T) {
			h := tt.start
			for i := 0; i < tt.start.Days; i++ {
				h = h.Next(testDurations)
				if h.Stage != tt.start.Stage {
					t.Fatalf("left %v after %d steps, want %d steps in stage", tt.start.Stage, i+1, tt.start.Days+1)
				}
				if h.Days != tt.start.Days-i-1 {
					t.Fatalf("counter = %d after %d steps, want %d", h.Days, i+1, tt.start.Days-i-1)
				}
			}
			h = h.Next(testDurations)
			if h.Stage != tt.next {
				t.Errorf("after %d steps stage = %v, want %v", tt.start.Days+1, h.Stage, tt.next)
			}
		})
	}
}

func TestFullCourse(t *testing.T) {
	// Infected(2) -> 3 days, Sick(6) -> 7 days, Recovering(4) -> 5 days
	h := NewInfected(testDurations)
	steps := 0
	for h.Stage != Healthy {
		h = h.Next(testDurations)
		steps++
		if steps > 100 {
			t.Fatal("never recovered")
		}
	}
	if steps != 15 {
		t.Errorf("course length = %d days, want 15", steps)
	}
}

func TestStageString(t *testing.T) {
	if Sick.String() != "sick" || Stage(9).String() != "stage(9)" {
		t.Errorf("unexpected stage strings %q %q", Sick.String(), Stage(9).String())
	}
	if got := NewSick(testDurations).String(); got != "sick(6)" {
		t.Errorf("String() = %q, want sick(6)", got)
	}
}

func TestParseStage(t *testing.T) {
	for s := Stage(0); s < NumStages; s++ {
		got, err := ParseStage(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStage(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStage("zombie"); err == nil {
		t.Error("expected an error for an unknown stage")
	}
}
