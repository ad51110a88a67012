package components

import "testing"

func TestChebyshev(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{2, 1}, 2},
		{Position{5, 5}, Position{2, 7}, 3},
		{Position{99, 0}, Position{0, 99}, 99},
	}
	for _, tt := range tests {
		if got := Chebyshev(tt.a, tt.b); got != tt.want {
			t.Errorf("Chebyshev(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Chebyshev(tt.b, tt.a); got != tt.want {
			t.Errorf("Chebyshev not symmetric for %v, %v", tt.a, tt.b)
		}
	}
}

func TestMidpointTruncates(t *testing.T) {
	if got := Midpoint(Position{1, 4}, Position{2, 7}); got != (Position{1, 5}) {
		t.Errorf("Midpoint = %v, want {1 5}", got)
	}
}

func TestClampToBoard(t *testing.T) {
	tests := []struct {
		in, want Position
	}{
		{Position{-1, 5}, Position{0, 5}},
		{Position{100, 101}, Position{99, 99}},
		{Position{50, 50}, Position{50, 50}},
	}
	for _, tt := range tests {
		if got := ClampToBoard(tt.in, 100); got != tt.want {
			t.Errorf("ClampToBoard(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReversed(t *testing.T) {
	if got := (Direction{1, -1}).Reversed(); got != (Direction{-1, 1}) {
		t.Errorf("Reversed = %v", got)
	}
}
