package render

import "github.com/gdamore/tcell/v2"

// countColors gives each neighbour count its classic minesweeper colour,
// indexed by the count.
var countColors = [9]tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorWhite,
	tcell.ColorGray,
}

var (
	hiddenStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	flagStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	openStyle     = tcell.StyleDefault
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	messageStyle  = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	separatorGray = tcell.ColorGray
)

// GlyphStyle returns the style a visible board glyph is drawn with.
func GlyphStyle(glyph string) tcell.Style {
	switch glyph {
	case "-":
		return hiddenStyle
	case "F":
		return flagStyle
	case " ", "":
		return openStyle
	}
	if len(glyph) == 1 && glyph[0] >= '1' && glyph[0] <= '8' {
		return tcell.StyleDefault.Foreground(countColors[glyph[0]-'0']).Bold(true)
	}
	return openStyle
}
