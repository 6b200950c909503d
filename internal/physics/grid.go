package physics

import "math"

// Grid is a uniform bucket grid over a wrapping world used to narrow down
// collision candidates. Items are inserted by position and found again by
// querying the 3x3 cell neighborhood around a point.
//
// The cell size must be at least the largest interaction distance between
// two inserted items, otherwise a query can miss a real neighbor.
// Positions outside the world are clamped to the border cells.
type Grid[T any] struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]T // reused between passes, reset to [:0]
	count       int
}

// NewGrid creates a grid covering worldW x worldH with square cells.
func NewGrid[T any](worldW, worldH, cellSize float64) *Grid[T] {
	if cellSize <= 0 {
		panic("physics: grid cell size must be positive")
	}
	cols := max(int(math.Ceil(worldW/cellSize)), 1)
	rows := max(int(math.Ceil(worldH/cellSize)), 1)

	return &Grid[T]{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]T, cols*rows),
	}
}

// Len returns how many items were inserted since the last Clear.
func (g *Grid[T]) Len() int {
	return g.count
}

// Clear empties every cell while keeping their backing arrays.
func (g *Grid[T]) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Insert adds item at the given world position.
func (g *Grid[T]) Insert(x, y float64, item T) {
	col, row := g.cellOf(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], item)
	g.count++
}

// QueryAround calls fn for each item in the 3x3 neighborhood of (x, y),
// wrapping across world edges. Returning true from fn stops the query.
func (g *Grid[T]) QueryAround(x, y float64, fn func(item T) bool) {
	col, row := g.cellOf(x, y)

	// Small grids would otherwise visit the same cell more than once.
	rowSpan, colSpan := min(g.rows, 3), min(g.cols, 3)
	for dr := 0; dr < rowSpan; dr++ {
		r := wrapIndex(row+dr-1, g.rows)
		rowOffset := r * g.cols
		for dc := 0; dc < colSpan; dc++ {
			c := wrapIndex(col+dc-1, g.cols)
			for _, item := range g.cells[rowOffset+c] {
				if fn(item) {
					return
				}
			}
		}
	}
}

func wrapIndex(i, n int) int {
	if i < 0 {
		return i + n
	}
	if i >= n {
		return i - n
	}
	return i
}

// cellOf converts world coordinates to a clamped cell coordinate.
func (g *Grid[T]) cellOf(x, y float64) (col, row int) {
	col = min(max(int(math.Floor(x*g.invCellSize)), 0), g.cols-1)
	row = min(max(int(math.Floor(y*g.invCellSize)), 0), g.rows-1)
	return col, row
}
