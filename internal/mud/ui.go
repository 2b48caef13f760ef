package mud

import "github.com/gdamore/tcell/v2"

var (
	hdrStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	boomStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// putText writes a string to the screen starting at (x, y), one rune per
// column. It stops at the right edge of the screen (sw) to avoid overflow.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x++
	}
}

// drawBox clears the screen and draws a centred bordered box with header
// on the top edge and lines inside, then shows it.
func drawBox(scr tcell.Screen, header string, lines []string, width int, st tcell.Style) {
	scr.Clear()
	sw, sh := scr.Size()
	boxH := len(lines) + 2
	x0 := max((sw-width)/2, 0)
	y0 := max((sh-boxH)/2, 0)

	for col := x0; col < x0+width; col++ {
		scr.SetContent(col, y0, '─', nil, borderStyle)
		scr.SetContent(col, y0+boxH-1, '─', nil, borderStyle)
	}
	for row := y0; row < y0+boxH; row++ {
		scr.SetContent(x0, row, '│', nil, borderStyle)
		scr.SetContent(x0+width-1, row, '│', nil, borderStyle)
	}
	scr.SetContent(x0, y0, '┌', nil, borderStyle)
	scr.SetContent(x0+width-1, y0, '┐', nil, borderStyle)
	scr.SetContent(x0, y0+boxH-1, '└', nil, borderStyle)
	scr.SetContent(x0+width-1, y0+boxH-1, '┘', nil, borderStyle)

	if header != "" {
		putText(scr, x0+(width-len([]rune(header)))/2, y0, header, hdrStyle)
	}
	for i, line := range lines {
		putText(scr, x0+2, y0+1+i, line, st)
	}
	scr.Show()
}
