package colorlines

import (
	"fmt"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

const (
	ballRune     = '●'
	selectedRune = '◉'
	flashRune    = '✶'
	emptyRune    = '·'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.showRules:
		g.renderRules(dst)
	case g.view.over:
		g.renderGameOver(dst)
	case g.paused:
		g.renderPaused(dst)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d", max(g.layout.width(), minWidth), g.layout.height()+hudHeight+footHeight)
	dst.DrawTextCentered(y+1, need)
}

func (g *Game) renderHUD(dst *core.Screen) {
	l := g.layout
	boardW := l.width()
	top := l.originY - hudHeight

	title := "L I N E S"
	if g.mode == ModeMini {
		title = "L I N E S  mini"
	}
	dst.DrawTextColored(l.originX+(boardW-core.TextWidth(title))/2, top, title, core.ColorHighlight)

	score := fmt.Sprintf("Score: %d", g.view.Score())
	dst.DrawText(l.originX, top+1, score)
	best := fmt.Sprintf("Best: %d", g.Best())
	dst.DrawText(l.originX+boardW-len(best), top+1, best)

	info := fmt.Sprintf("Moves: %d  Next: %d", g.engine.Moves(), g.engine.NextBatch())
	dst.DrawText(l.originX, top+2, info)
	if g.message != "" {
		dst.DrawTextColored(l.originX+boardW-core.TextWidth(g.message), top+2, g.message, core.ColorHighlight)
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	l := g.layout
	dst.DrawGrid(core.Point{X: l.originX, Y: l.originY}, l.cols, l.rows, cellWidth, cellHeight, core.ColorGray)

	sel, selected := g.view.Selection()
	for y := 0; y < l.rows; y++ {
		for x := 0; x < l.cols; x++ {
			g.renderCell(dst, x, y, selected && sel == lines.Pos{X: x, Y: y})
		}
	}
}

func (g *Game) renderCell(dst *core.Screen, x, y int, isSelected bool) {
	cx, cy := g.layout.center(x, y)
	kind := g.view.Kind(x, y)

	switch {
	case kind != lines.Empty && isSelected:
		r := selectedRune
		if (g.tick/8)%2 == 1 {
			r = ballRune
		}
		dst.SetColored(cx, cy, r, core.BallColor(int(kind)))
	case kind != lines.Empty:
		dst.SetColored(cx, cy, ballRune, core.BallColor(int(kind)))
	case g.view.Flashing(x, y):
		dst.SetColored(cx, cy, flashRune, core.ColorHighlight)
	default:
		dst.SetColored(cx, cy, emptyRune, core.ColorGray)
	}

	if g.cursor.X == x && g.cursor.Y == y && !g.view.over {
		dst.SetColored(cx-1, cy, '[', core.ColorHighlight)
		dst.SetColored(cx+1, cy, ']', core.ColorHighlight)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.layout.originY + g.layout.height() + 1
	controls := g.Controls()
	if core.TextWidth(controls) > g.screenW {
		controls = "Space: Select  ?: Rules  Q: Quit"
	}
	dst.DrawTextCentered(y, controls)
}

// renderPanel draws a centred box over the board with the given lines.
func (g *Game) renderPanel(dst *core.Screen, text []string) {
	w := 0
	for _, s := range text {
		w = max(w, core.TextWidth(s))
	}
	w += 4
	h := len(text) + 2
	x := (g.screenW - w) / 2
	y := g.layout.originY + (g.layout.height()-h)/2
	box := core.NewRect(x, max(y, 0), w, h)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, s := range text {
		dst.DrawTextCentered(box.Y+1+i, s)
	}
}

func (g *Game) renderRules(dst *core.Screen) {
	r := g.engine.Config().Rules
	g.renderPanel(dst, []string{
		"RULES",
		"",
		"Move a ball onto any empty cell.",
		fmt.Sprintf("Line up %d or more of one colour", r.MinRun),
		"in a row or column to remove them.",
		"Each removed ball scores 1 point.",
		fmt.Sprintf("A move that removes nothing costs %d", r.MovePenalty),
		"and drops new balls on the board.",
		"A full board or a score below zero",
		"ends the round.",
		"",
		"?: Close",
	})
}

func (g *Game) renderGameOver(dst *core.Screen) {
	peak := 0
	if g.tracker != nil {
		peak = g.tracker.Peak()
	}
	g.renderPanel(dst, []string{
		"GAME OVER",
		"",
		capitalize(g.view.reason.String()),
		fmt.Sprintf("Peak score: %d", peak),
		fmt.Sprintf("Best: %d", g.Best()),
		"",
		"R: New round  Q: Quit",
	})
}

func (g *Game) renderPaused(dst *core.Screen) {
	g.renderPanel(dst, []string{"PAUSED", "", "P: Resume"})
}

func clearMessage(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", n)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
