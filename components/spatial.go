// Package components defines the value types an entity is built from.
package components

// Position is an integer board coordinate. Valid positions satisfy 0 <= X,Y < cells.
type Position struct {
	X, Y int
}

// Direction is a per-step displacement with each axis in {-1, 0, 1}.
type Direction struct {
	DX, DY int
}

// Reversed returns the direction pointing the opposite way.
func (d Direction) Reversed() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Chebyshev returns max(|dx|, |dy|) between two positions.
func Chebyshev(a, b Position) int {
	return max(absInt(a.X-b.X), absInt(a.Y-b.Y))
}

// Midpoint returns the truncated integer average of two positions.
func Midpoint(a, b Position) Position {
	return Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// ClampToBoard pulls each coordinate into [0, cells).
func ClampToBoard(p Position, cells int) Position {
	return Position{X: clampInt(p.X, 0, cells-1), Y: clampInt(p.Y, 0, cells-1)}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
