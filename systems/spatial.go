package systems

import (
	"slices"

	"github.com/pthm-cable/epidemic/components"
)

// SpatialGrid provides neighbor lookups on the integer board using square buckets.
// It stores indices into the snapshot it was built from.
type SpatialGrid struct {
	cellSize int
	cols     int
	cells    [][]int
	pos      []components.Position
}

// NewSpatialGrid creates a grid covering a board of the given side. A bucket
// side of radius+1 keeps every query within a 3x3 block of buckets.
func NewSpatialGrid(boardCells, radius int) *SpatialGrid {
	cellSize := radius + 1
	cols := (boardCells + cellSize - 1) / cellSize
	if cols < 1 {
		cols = 1
	}

	cells := make([][]int, cols*cols)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.pos = g.pos[:0]
}

// Build clears the grid and inserts every position, keyed by its slice index.
func (g *SpatialGrid) Build(positions []components.Position) {
	g.Clear()
	g.pos = append(g.pos, positions...)
	for i, p := range positions {
		idx := g.cellIndex(p.X, p.Y)
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// QueryInto appends the indices of every stored position within Chebyshev
// distance radius of p to dst, in ascending index order. Reuse dst across
// calls to avoid allocations.
func (g *SpatialGrid) QueryInto(dst []int, p components.Position, radius int) []int {
	start := len(dst)
	cellRadius := radius/g.cellSize + 1

	centerCol, centerRow := g.colRow(p.X, p.Y)
	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.cols {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, i := range g.cells[row*g.cols+col] {
				if components.Chebyshev(p, g.pos[i]) <= radius {
					dst = append(dst, i)
				}
			}
		}
	}

	// Buckets are visited in space order; callers rely on snapshot order.
	slices.Sort(dst[start:])
	return dst
}

// Len returns the number of stored positions.
func (g *SpatialGrid) Len() int {
	return len(g.pos)
}

func (g *SpatialGrid) colRow(x, y int) (int, int) {
	col := clampBucket(x/g.cellSize, g.cols)
	row := clampBucket(y/g.cellSize, g.cols)
	return col, row
}

// cellIndex returns the flat index for a board position.
func (g *SpatialGrid) cellIndex(x, y int) int {
	col, row := g.colRow(x, y)
	return row*g.cols + col
}

func clampBucket(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
