package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorHighlight // Selection and cursor accents
)

// ballPalette is indexed by ball kind minus one.
var ballPalette = []Color{
	ColorRed,
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
	ColorWhite,
}

// BallColor returns the display colour for a ball kind.
// Kind 0 (empty) maps to gray; kinds beyond the palette wrap around.
func BallColor(kind int) Color {
	if kind <= 0 {
		return ColorGray
	}
	return ballPalette[(kind-1)%len(ballPalette)]
}

// PaletteSize is the number of distinct ball colours.
func PaletteSize() int {
	return len(ballPalette)
}
