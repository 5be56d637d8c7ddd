package core

import (
	"strings"
	"testing"
)

// rows renders s as plain text lines for comparison.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q", got)
	}
	if z := NewScreen(-1, 2); z.Width() != 0 || z.String() != "\n" {
		t.Errorf("negative width should give an empty screen, got %q", z.String())
	}
}

func TestScreenSetClipsOffScreen(t *testing.T) {
	s := NewScreen(4, 2)
	for _, p := range []Point{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.Set(p.X, p.Y, 'X')
		if s.Get(p.X, p.Y) != ' ' {
			t.Errorf("Get(%v) off-screen should be a space", p)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("off-screen writes leaked into the buffer")
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(7, 0, "Hello")
	s.DrawTextCentered(1, "Hi")
	s.DrawText(0, 2, "●●x")

	want := []string{
		"       Hel",
		"    Hi    ",
		"●●x       ",
	}
	for y, line := range rows(s) {
		if line != want[y] {
			t.Errorf("row %d = %q, want %q", y, line, want[y])
		}
	}
	if TextWidth("●●x") != 3 {
		t.Errorf("TextWidth counts runes, got %d", TextWidth("●●x"))
	}
}

func TestScreenColorsAndClear(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(1, 1, "ab", ColorRed)
	s.SetColored(5, 2, '●', ColorBlue)

	if c := s.GetCell(1, 1); c != (Cell{'a', ColorRed}) {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}
	if c := s.GetCell(5, 2); c != (Cell{'●', ColorBlue}) {
		t.Errorf("GetCell(5, 2) = %+v", c)
	}
	if c := s.GetCell(20, 20); c != blank {
		t.Errorf("off-screen GetCell = %+v", c)
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != blank {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(3, 2)
	if got := s.String(); got != "Hel\n   " {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(6, 3)
	if got := s.Row(0); got != "Hel   " {
		t.Errorf("after grow Row(0) = %q", got)
	}
	if got := s.Row(-1); got != "      " {
		t.Errorf("Row(-1) = %q", got)
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawRect(NewRect(1, 1, 5, 3), '#')
	s.DrawBox(NewRect(1, 0, 5, 4))

	want := []string{
		" ┌───┐ ",
		" │###│ ",
		" │###│ ",
		" └───┘ ",
		"       ",
	}
	for y, line := range rows(s) {
		if line != want[y] {
			t.Errorf("row %d = %q, want %q", y, line, want[y])
		}
	}
}

func TestScreenDrawGrid(t *testing.T) {
	s := NewScreen(9, 5)
	s.DrawGrid(Point{0, 0}, 2, 2, 4, 2, ColorGray)

	want := []string{
		"┌───┬───┐",
		"│   │   │",
		"├───┼───┤",
		"│   │   │",
		"└───┴───┘",
	}
	for y, line := range rows(s) {
		if line != want[y] {
			t.Errorf("row %d = %q, want %q", y, line, want[y])
		}
	}
	if c := s.GetCell(4, 2); c.Color != ColorGray {
		t.Errorf("grid colour = %v, want gray", c.Color)
	}
}

func TestBallColor(t *testing.T) {
	tests := []struct {
		kind int
		want Color
	}{
		{-1, ColorGray},
		{0, ColorGray},
		{1, ColorRed},
		{2, ColorGreen},
		{1 + PaletteSize(), ColorRed},
	}
	for _, tt := range tests {
		if got := BallColor(tt.kind); got != tt.want {
			t.Errorf("BallColor(%d) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
