package colorlines

import "github.com/vovakirdan/tui-lines/internal/core"

const (
	cellWidth  = 4 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3 // Title plus two status lines above the board
	footHeight = 2 // Blank line plus controls below the board
	minWidth   = 34
)

// layout places the board on screen. Cell (x, y) occupies the interior
// of the box whose top-left corner is at (originX + x*cellWidth,
// originY + y*cellHeight).
type layout struct {
	cols, rows int
	originX    int
	originY    int
}

func newLayout(cols, rows, screenW, screenH int) layout {
	l := layout{cols: cols, rows: rows}
	l.originX = max((screenW-l.width())/2, 0)
	l.originY = hudHeight
	if free := screenH - l.height() - hudHeight - footHeight; free > 1 {
		l.originY += free / 2
	}
	return l
}

func (l layout) width() int  { return l.cols*cellWidth + 1 }
func (l layout) height() int { return l.rows*cellHeight + 1 }

// bounds is the screen area covered by the board including its frame.
func (l layout) bounds() core.Rect {
	return core.NewRect(l.originX, l.originY, l.width(), l.height())
}

func (l layout) fits(screenW, screenH int) bool {
	return screenW >= max(l.width(), minWidth) && screenH >= l.height()+hudHeight+footHeight
}

// center returns the screen position of the ball glyph in cell (x, y).
func (l layout) center(x, y int) (sx, sy int) {
	return l.originX + x*cellWidth + cellWidth/2, l.originY + y*cellHeight + 1
}

// CellAt maps a screen position to a board cell. Grid lines map to nothing.
func (l layout) CellAt(sx, sy int) (x, y int, ok bool) {
	if !l.bounds().Contains(core.Point{X: sx, Y: sy}) {
		return 0, 0, false
	}
	rx, ry := sx-l.originX, sy-l.originY
	if rx%cellWidth == 0 || ry%cellHeight == 0 {
		return 0, 0, false
	}
	return rx / cellWidth, ry / cellHeight, true
}
