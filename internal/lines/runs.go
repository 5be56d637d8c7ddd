package lines

// Axis is the direction a run extends in.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Run is a maximal sequence of equal non-empty cells along one axis.
type Run struct {
	Start Pos
	Axis  Axis
	Len   int
	Kind  Kind
}

// Cells returns the coordinates covered by the run.
func (r Run) Cells() []Pos {
	cells := make([]Pos, r.Len)
	for i := range cells {
		if r.Axis == Horizontal {
			cells[i] = Pos{X: r.Start.X + i, Y: r.Start.Y}
		} else {
			cells[i] = Pos{X: r.Start.X, Y: r.Start.Y + i}
		}
	}
	return cells
}

// FindRuns scans rows then columns for runs of at least minRun equal balls.
// Each run is reported once at its full length. marked holds every cell
// covered by some run, deduplicated where a horizontal and a vertical run
// cross, in row-major order.
func FindRuns(g Grid, minRun int) (runs []Run, marked []Pos) {
	rows, cols := g.Rows(), g.Cols()
	mask := make([][]bool, rows)
	for y := range mask {
		mask[y] = make([]bool, cols)
	}

	for y := 0; y < rows; y++ {
		x := 0
		for x < cols {
			k := g[y][x]
			end := x + 1
			for end < cols && g[y][end] == k {
				end++
			}
			if k != Empty && end-x >= minRun {
				runs = append(runs, Run{Start: Pos{X: x, Y: y}, Axis: Horizontal, Len: end - x, Kind: k})
				for i := x; i < end; i++ {
					mask[y][i] = true
				}
			}
			x = end
		}
	}

	for x := 0; x < cols; x++ {
		y := 0
		for y < rows {
			k := g[y][x]
			end := y + 1
			for end < rows && g[end][x] == k {
				end++
			}
			if k != Empty && end-y >= minRun {
				runs = append(runs, Run{Start: Pos{X: x, Y: y}, Axis: Vertical, Len: end - y, Kind: k})
				for i := y; i < end; i++ {
					mask[i][x] = true
				}
			}
			y = end
		}
	}

	for y := range mask {
		for x := range mask[y] {
			if mask[y][x] {
				marked = append(marked, Pos{X: x, Y: y})
			}
		}
	}
	return runs, marked
}
