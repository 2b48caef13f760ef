// Package render draws the shared board and a status area onto a tcell
// screen for terminal sessions.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDHeight is the number of screen rows reserved below the board.
const HUDHeight = 4

// Renderer draws the board view onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, camera: NewCamera(0, 0)}
	r.fit()
	return r
}

// Camera returns the viewport as positioned by the last DrawBoard.
func (r *Renderer) Camera() *Camera { return r.camera }

// fit sizes the viewport to the current screen, leaving room for the HUD.
func (r *Renderer) fit() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDHeight, 0)
}

// DrawBoard clears the screen and draws the visible glyph grid with the
// cursor cell highlighted. glyphs[row][col] comes from Board.Glyphs.
func (r *Renderer) DrawBoard(glyphs [][]string, cursorRow, cursorCol int) {
	r.fit()
	r.screen.Clear()
	r.camera.Follow(cursorRow, cursorCol, len(glyphs))

	for row, line := range glyphs {
		for col, g := range line {
			sx, sy, onScreen := r.camera.CellToScreen(row, col)
			if !onScreen {
				continue
			}
			style := GlyphStyle(g)
			if row == cursorRow && col == cursorCol {
				style = style.Reverse(true)
			}
			r.putGlyph(sx, sy, g, style)
		}
	}
}

// putGlyph draws a single glyph at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
