package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusLine formats the HUD summary for a cursor at (row, col).
func StatusLine(row, col int, players int64, debug bool) string {
	mode := ""
	if debug {
		mode = "  [debug]"
	}
	return fmt.Sprintf("Cell %d,%d  Players: %d%s  ? help  q quit", row, col, players, mode)
}

// DrawHUD renders the status bar and the latest messages at the bottom of
// the screen, then shows the frame.
func (r *Renderer) DrawHUD(status string, messages []string) {
	screenW, screenH := r.screen.Size()
	hudY := screenH - HUDHeight

	r.drawHLine(hudY, separatorGray)
	r.drawText(0, hudY+1, Fit(status, screenW), statusStyle)

	start := max(len(messages)-(HUDHeight-2), 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, Fit(msg, screenW), messageStyle)
	}

	r.screen.Show()
}

// Fit truncates s to at most width terminal columns.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := range w {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
