package render

// Camera translates between board cells and screen positions. Each cell
// takes 2 terminal columns: the glyph and a separating blank.
type Camera struct {
	OffsetRow  int
	OffsetCol  int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera for a viewW×viewH screen area.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Follow scrolls so that cell (row, col) sits mid-view, without showing
// space beyond the edges of a size×size board.
func (c *Camera) Follow(row, col, size int) {
	c.OffsetRow = clampOffset(row-c.ViewHeight/2, size, c.ViewHeight)
	c.OffsetCol = clampOffset(col-(c.ViewWidth/2)/2, size, c.ViewWidth/2)
}

func clampOffset(off, size, span int) int {
	if off > size-span {
		off = size - span
	}
	if off < 0 {
		off = 0
	}
	return off
}

// CellToScreen converts cell (row, col) to view-relative screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) CellToScreen(row, col int) (sx, sy int, visible bool) {
	sx = (col - c.OffsetCol) * 2
	sy = row - c.OffsetRow
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToCell converts view-relative screen (sx, sy) to a cell. visible is
// false when (sx, sy) lies outside the viewport.
func (c *Camera) ScreenToCell(sx, sy int) (row, col int, visible bool) {
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return sy + c.OffsetRow, sx/2 + c.OffsetCol, visible
}
