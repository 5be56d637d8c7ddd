package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a character buffer boards draw into. The platform turns it
// into styled terminal output, so boards never deal with escape codes.
type Screen struct {
	width  int
	height int
	cells  []Cell // row-major
}

// NewScreen creates a blank screen of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: max(width, 0), height: max(height, 0)}
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the dimensions, keeping the overlapping top-left content.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	next := NewScreen(width, height)
	for y, n := 0, min(s.height, next.height); y < n; y++ {
		w := min(s.width, next.width)
		copy(next.cells[y*next.width:y*next.width+w], s.cells[y*s.width:y*s.width+w])
	}
	*s = *next
}

// Clear fills the screen with uncoloured spaces.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune in the default colour. Off-screen writes are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a rune with a colour. Off-screen writes are dropped.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space off-screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell off-screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// TextWidth is the number of screen columns text occupies.
func TextWidth(text string) int {
	return utf8.RuneCountInString(text)
}

// DrawText writes text starting at (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes coloured text starting at (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text centred on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.width-TextWidth(text))/2, y, text)
}

// DrawRect fills r with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox outlines r with box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.DrawGrid(Point{X: r.X, Y: r.Y}, 1, 1, r.W-1, r.H-1, ColorDefault)
}

// DrawGrid draws a lattice of cols x rows cells whose top-left junction
// is at origin. Each cell spans cellW columns and cellH rows measured
// from one grid line to the next, so the interior of cell (x, y) starts
// at origin + (x*cellW+1, y*cellH+1).
func (s *Screen) DrawGrid(origin Point, cols, rows, cellW, cellH int, c Color) {
	for gy := 0; gy <= rows; gy++ {
		for gx := 0; gx <= cols; gx++ {
			px := origin.X + gx*cellW
			py := origin.Y + gy*cellH
			s.SetColored(px, py, junction(gx, gy, cols, rows), c)
			if gx < cols {
				for i := 1; i < cellW; i++ {
					s.SetColored(px+i, py, '─', c)
				}
			}
			if gy < rows {
				for j := 1; j < cellH; j++ {
					s.SetColored(px, py+j, '│', c)
				}
			}
		}
	}
}

// junction picks the box-drawing rune where grid lines meet.
func junction(gx, gy, cols, rows int) rune {
	top, bottom := gy == 0, gy == rows
	left, right := gx == 0, gx == cols
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case left:
		return '├'
	case right:
		return '┤'
	}
	return '┼'
}

// String returns the buffer as plain text without colours.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Row returns row y as plain text, or blanks when y is off-screen.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	sb.Grow(s.width)
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
