package systems

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/epidemic/components"
)

// bruteForce is the reference sweep the grid must reproduce.
func bruteForce(positions []components.Position, p components.Position, radius int) []int {
	var out []int
	for i, q := range positions {
		if components.Chebyshev(p, q) <= radius {
			out = append(out, i)
		}
	}
	return out
}

func TestSpatialGridMatchesBruteForce(t *testing.T) {
	const cells = 100
	rng := rand.New(rand.NewSource(11))

	positions := make([]components.Position, 400)
	for i := range positions {
		positions[i] = components.Position{X: rng.Intn(cells), Y: rng.Intn(cells)}
	}

	for _, radius := range []int{0, 1, 2, 5} {
		g := NewSpatialGrid(cells, radius)
		g.Build(positions)
		if g.Len() != len(positions) {
			t.Fatalf("Len() = %d, want %d", g.Len(), len(positions))
		}

		var buf []int
		for k := 0; k < 200; k++ {
			p := components.Position{X: rng.Intn(cells), Y: rng.Intn(cells)}
			buf = g.QueryInto(buf[:0], p, radius)
			want := bruteForce(positions, p, radius)
			if !slices.Equal(buf, want) {
				t.Fatalf("radius %d at %+v: got %v, want %v", radius, p, buf, want)
			}
		}
	}
}

func TestSpatialGridOrderAndReuse(t *testing.T) {
	g := NewSpatialGrid(10, 2)
	positions := []components.Position{{X: 9, Y: 9}, {X: 0, Y: 0}, {X: 8, Y: 8}, {X: 1, Y: 1}}
	g.Build(positions)

	got := g.QueryInto([]int{42}, components.Position{X: 9, Y: 9}, 2)
	if !slices.Equal(got, []int{42, 0, 2}) {
		t.Errorf("QueryInto kept prefix and sorted tail? got %v", got)
	}

	g.Build(positions[:1])
	got = g.QueryInto(nil, components.Position{X: 1, Y: 1}, 2)
	if len(got) != 0 {
		t.Errorf("rebuilt grid returned stale entries %v", got)
	}
}
