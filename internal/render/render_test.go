package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func newSimScreen(w, h int) tcell.Screen {
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(w, h)
	_ = ss.Init()
	return ss
}

func TestCameraFollowClampsToBoard(t *testing.T) {
	cases := []struct {
		name             string
		row, col, size   int
		wantRow, wantCol int
	}{
		{"small board never scrolls", 3, 3, 5, 0, 0},
		{"top left corner", 0, 0, 100, 0, 0},
		{"middle", 50, 50, 100, 40, 40},
		{"bottom right corner", 99, 99, 100, 80, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(40, 20)
			c.Follow(tc.row, tc.col, tc.size)
			if c.OffsetRow != tc.wantRow || c.OffsetCol != tc.wantCol {
				t.Errorf("offset=(%d,%d), want (%d,%d)", c.OffsetRow, c.OffsetCol, tc.wantRow, tc.wantCol)
			}
			if _, _, ok := c.CellToScreen(tc.row, tc.col); !ok {
				t.Errorf("followed cell (%d,%d) is off screen", tc.row, tc.col)
			}
		})
	}
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(40, 20)
	c.Follow(30, 30, 64)
	sx, sy, ok := c.CellToScreen(31, 28)
	if !ok {
		t.Fatal("expected visible cell")
	}
	if row, col, ok := c.ScreenToCell(sx, sy); !ok || row != 31 || col != 28 {
		t.Errorf("ScreenToCell=(%d,%d,%v), want (31,28,true)", row, col, ok)
	}
	if _, _, ok := c.ScreenToCell(40, 0); ok {
		t.Error("column past the view reported visible")
	}
	if _, _, ok := c.ScreenToCell(0, -1); ok {
		t.Error("row above the view reported visible")
	}
	if _, _, ok := c.CellToScreen(0, 0); ok {
		t.Error("cell (0,0) should be scrolled out of view")
	}
}

func TestGlyphStyle(t *testing.T) {
	if GlyphStyle("F") != flagStyle {
		t.Error("flag glyph not using flag style")
	}
	if GlyphStyle("-") != hiddenStyle {
		t.Error("hidden glyph not using hidden style")
	}
	if GlyphStyle("1") == GlyphStyle("3") {
		t.Error("counts 1 and 3 share a style")
	}
}

func TestFit(t *testing.T) {
	cases := []struct {
		name  string
		input string
		width int
	}{
		{"fits", "hello", 10},
		{"exact", "hello", 5},
		{"truncated", "hello world", 6},
		{"zero width", "hello", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fit(tc.input, tc.width)
			if w := runewidth.StringWidth(got); w > tc.width {
				t.Errorf("Fit(%q,%d)=%q has width %d", tc.input, tc.width, got, w)
			}
			if runewidth.StringWidth(tc.input) <= tc.width && got != tc.input {
				t.Errorf("Fit(%q,%d)=%q, want unchanged", tc.input, tc.width, got)
			}
		})
	}
}

func TestStatusLine(t *testing.T) {
	got := StatusLine(2, 7, 3, false)
	if !strings.Contains(got, "2,7") || !strings.Contains(got, "Players: 3") {
		t.Errorf("StatusLine=%q", got)
	}
	if strings.Contains(got, "debug") {
		t.Errorf("non-debug status mentions debug: %q", got)
	}
	if !strings.Contains(StatusLine(0, 0, 1, true), "[debug]") {
		t.Error("debug status missing marker")
	}
}

func TestDrawBoardPlacesGlyphs(t *testing.T) {
	scr := newSimScreen(80, 24)
	r := NewRenderer(scr)
	glyphs := [][]string{
		{"-", "F", "2"},
		{" ", "1", "-"},
		{"-", "-", "-"},
	}
	r.DrawBoard(glyphs, 1, 1)
	r.DrawHUD("status", []string{"BOOM!"})

	for row, line := range glyphs {
		for col, g := range line {
			mainc, _, _, _ := scr.GetContent(col*2, row)
			if string(mainc) != g {
				t.Errorf("cell (%d,%d) drawn as %q, want %q", row, col, string(mainc), g)
			}
		}
	}
	_, _, style, _ := scr.GetContent(2, 1)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("cursor cell not highlighted")
	}
	if mainc, _, _, _ := scr.GetContent(0, 24-HUDHeight); mainc != '─' {
		t.Errorf("separator drawn as %q", mainc)
	}
	if mainc, _, _, _ := scr.GetContent(0, 24-HUDHeight+1); mainc != 's' {
		t.Errorf("status line starts with %q", mainc)
	}
}

func TestDrawBoardScrollsToCursor(t *testing.T) {
	// 20 columns hold 10 cells; 10 rows leave 6 for the board.
	scr := newSimScreen(20, 10)
	r := NewRenderer(scr)
	const size = 30
	glyphs := make([][]string, size)
	for row := range glyphs {
		glyphs[row] = make([]string, size)
		for col := range glyphs[row] {
			glyphs[row][col] = "-"
		}
	}
	glyphs[20][25] = "7"
	r.DrawBoard(glyphs, 20, 25)

	cam := r.Camera()
	if cam.ViewWidth != 20 || cam.ViewHeight != 10-HUDHeight {
		t.Errorf("view = %dx%d, want 20x%d", cam.ViewWidth, cam.ViewHeight, 10-HUDHeight)
	}
	if cam.OffsetRow != 17 || cam.OffsetCol != 20 {
		t.Errorf("offset = (%d,%d), want (17,20)", cam.OffsetRow, cam.OffsetCol)
	}
	mainc, _, style, _ := scr.GetContent(10, 3)
	if mainc != '7' {
		t.Errorf("cursor cell drawn as %q at (10,3)", mainc)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("cursor cell not highlighted")
	}
	if row, col, ok := cam.ScreenToCell(10, 3); !ok || row != 20 || col != 25 {
		t.Errorf("ScreenToCell(10,3) = (%d,%d,%v), want (20,25,true)", row, col, ok)
	}

	// Scrolling to the far corner pins the view to the board edge.
	r.DrawBoard(glyphs, size-1, size-1)
	if cam.OffsetRow != size-cam.ViewHeight || cam.OffsetCol != size-cam.ViewWidth/2 {
		t.Errorf("corner offset = (%d,%d)", cam.OffsetRow, cam.OffsetCol)
	}
}
