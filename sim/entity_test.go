package sim

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/epidemic/components"
	"github.com/pthm-cable/epidemic/config"
	"github.com/pthm-cable/epidemic/systems"
)

func testRules(t *testing.T) *systems.Rules {
	t.Helper()
	return systems.NewRules(config.Default())
}

func TestInContact(t *testing.T) {
	r := testRules(t)
	a := Entity{Position: components.Position{X: 10, Y: 10}}

	tests := []struct {
		name string
		at   components.Position
		want bool
	}{
		{"same cell", components.Position{X: 10, Y: 10}, true},
		{"diagonal edge", components.Position{X: 12, Y: 8}, true},
		{"one past radius", components.Position{X: 13, Y: 10}, false},
		{"far", components.Position{X: 90, Y: 90}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Entity{Position: tt.at}
			if got := a.InContact(&b, r); got != tt.want {
				t.Errorf("InContact = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnContactBouncesAndLeavesPeer(t *testing.T) {
	r := testRules(t)
	r.BirthOnContactProb = 0

	self := Entity{
		Direction: components.Direction{DX: 1, DY: -1},
		Age:       30,
		Health:    components.NewHealthy(),
		Immunity:  2,
	}
	peer := Entity{Age: 30, Health: components.HealthState{Stage: components.Infected, Days: 1}, Immunity: 5}
	peerBefore := peer

	births := self.OnContact(&peer, r, rand.New(rand.NewSource(1)), nil)
	if len(births) != 0 {
		t.Errorf("births = %d with zero birth probability", len(births))
	}
	if self.Direction != (components.Direction{DX: -1, DY: 1}) {
		t.Errorf("Direction = %+v, want reversed", self.Direction)
	}
	if self.Health.Stage != components.Sick {
		t.Errorf("low-immunity healthy meeting infected: stage %v, want sick", self.Health.Stage)
	}
	if peer != peerBefore {
		t.Errorf("peer modified: %+v", peer)
	}
}

func TestCheckContactOutOfRange(t *testing.T) {
	r := testRules(t)
	self := Entity{Position: components.Position{X: 0, Y: 0}, Direction: components.Direction{DX: 1, DY: 1}}
	peer := Entity{Position: components.Position{X: 50, Y: 50}}
	before := self

	births, hit := self.CheckContact(&peer, r, rand.New(rand.NewSource(1)), nil)
	if hit || births != nil || self != before {
		t.Errorf("out-of-range contact had an effect: hit=%v births=%v self=%+v", hit, births, self)
	}
}

func TestGiveBirthIfSuitable(t *testing.T) {
	r := testRules(t)
	rng := rand.New(rand.NewSource(2))

	tests := []struct {
		name       string
		selfAge    int
		otherAge   int
		wantBirths int
	}{
		{"both in range", 25, 35, r.MaxChildrenPerBirth},
		{"range edges", r.MinParentAge, r.MaxParentAge, r.MaxChildrenPerBirth},
		{"self too young", r.MinParentAge - 1, 30, 0},
		{"other too old", 30, r.MaxParentAge + 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := Entity{ID: 4, Age: tt.selfAge, Position: components.Position{X: 10, Y: 20}}
			other := Entity{Age: tt.otherAge, Position: components.Position{X: 13, Y: 21}}

			births := self.GiveBirthIfSuitable(&other, r, rng, nil)
			if len(births) != tt.wantBirths {
				t.Fatalf("births = %d, want %d", len(births), tt.wantBirths)
			}
			for _, c := range births {
				if c.Position != (components.Position{X: 11, Y: 20}) {
					t.Errorf("child at %+v, want midpoint {11 20}", c.Position)
				}
				if c.ParentID != 4 || c.ID != 0 {
					t.Errorf("child IDs: ID=%d ParentID=%d", c.ID, c.ParentID)
				}
				if c.Speed < r.MinSpeed || c.Speed > r.MaxSpeed {
					t.Errorf("child speed %d", c.Speed)
				}
				if c.Direction == (components.Direction{}) {
					t.Error("child has zero direction")
				}
			}
		})
	}
}

func TestApplyHealthEffect(t *testing.T) {
	r := testRules(t)

	tests := []struct {
		name  string
		stage components.Stage
		age   int
		start components.Immunity
		want  components.Immunity
	}{
		{"healthy gains", components.Healthy, 50, 5, 5.05},
		{"healthy capped", components.Healthy, 50, 10, 10},
		{"sick loses", components.Sick, 50, 5, 4.5},
		{"infected loses", components.Infected, 20, 5, 4.9},
		{"recovering gains", components.Recovering, 20, 5, 5.1},
		{"above cap is clamped", components.Infected, 5, 8, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entity{Age: tt.age, Health: components.HealthState{Stage: tt.stage}, Immunity: tt.start}
			e.ApplyHealthEffect(r)
			if diff := float64(e.Immunity - tt.want); diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Immunity = %v, want %v", e.Immunity, tt.want)
			}
		})
	}
}

func TestShouldDie(t *testing.T) {
	r := testRules(t)

	tests := []struct {
		name     string
		age      int
		immunity components.Immunity
		want     bool
	}{
		{"alive", 30, 1, false},
		{"old", r.MaxAge, 5, true},
		{"zero immunity", 30, 0, true},
		{"negative immunity", 30, -0.2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entity{Age: tt.age, Immunity: tt.immunity}
			if got := e.ShouldDie(r); got != tt.want {
				t.Errorf("ShouldDie = %v, want %v", got, tt.want)
			}
		})
	}
}
