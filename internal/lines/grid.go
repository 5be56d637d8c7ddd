package lines

// Kind is a ball colour tag. Kind 0 is reserved for an empty cell.
type Kind int

// Empty marks a cell with no ball.
const Empty Kind = 0

// Pos is a cell coordinate: X is the column, Y is the row.
type Pos struct {
	X, Y int
}

// Grid is a row-major board indexed [y][x].
type Grid [][]Kind

// NewGrid allocates an all-empty grid.
func NewGrid(cols, rows int) Grid {
	g := make(Grid, rows)
	for y := range g {
		g[y] = make([]Kind, cols)
	}
	return g
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g Grid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for y := range g {
		c[y] = append([]Kind(nil), g[y]...)
	}
	return c
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Pos {
	var cells []Pos
	for y := range g {
		for x := range g[y] {
			if g[y][x] == Empty {
				cells = append(cells, Pos{X: x, Y: y})
			}
		}
	}
	return cells
}

// Filled returns the number of non-empty cells.
func (g Grid) Filled() int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

// Equal reports whether two grids have the same shape and contents.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}
