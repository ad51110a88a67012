package systems

import "github.com/pthm-cable/epidemic/components"

// Move advances pos by speed unit steps along dir and returns the final
// position and direction.
//
// Before every step the direction is reflected if the entity sits on a border:
// x == 0 or x == cells forces DX = +1, y == 0 forces DY = +1 and y == cells
// forces DY = -1. The x rule is deliberately asymmetric. After all steps the
// position is clamped onto the board.
func Move(pos components.Position, dir components.Direction, speed, cells int) (components.Position, components.Direction) {
	for i := 0; i < speed; i++ {
		dir = reflectOnBorder(pos, dir, cells)
		pos.X += dir.DX
		pos.Y += dir.DY
	}
	return components.ClampToBoard(pos, cells), dir
}

func reflectOnBorder(pos components.Position, dir components.Direction, cells int) components.Direction {
	if pos.X == 0 || pos.X == cells {
		dir.DX = 1
	}
	if pos.Y == 0 {
		dir.DY = 1
	}
	if pos.Y == cells {
		dir.DY = -1
	}
	return dir
}
