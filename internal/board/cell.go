package board

import "strconv"

// CellState is the player-visible state of one cell.
type CellState uint8

const (
	Hidden CellState = iota
	Marked
	Revealed
)

// String returns a lowercase name for the state.
func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Marked:
		return "marked"
	case Revealed:
		return "revealed"
	}
	return "unknown"
}

// RevealOutcome reports whether a reveal exposed a hazard.
type RevealOutcome uint8

const (
	Normal RevealOutcome = iota
	Hazard
)

func (o RevealOutcome) String() string {
	if o == Hazard {
		return "hazard"
	}
	return "normal"
}

// Cell holds the state of one board square. Cells live in the board's arena and
// refer to their neighbours by arena index; the neighbour list is written once
// during construction and never changes afterwards.
type Cell struct {
	State              CellState
	hazard             bool
	hazardousNeighbors int
	neighbors          []int
}

// HasHazard reports whether the cell still holds a hazard.
func (c *Cell) HasHazard() bool { return c.hazard }

// HazardousNeighbors returns the live count of hazardous neighbours.
func (c *Cell) HazardousNeighbors() int { return c.hazardousNeighbors }

// mark flags a hidden cell. No-op in any other state.
func (c *Cell) mark() {
	if c.State == Hidden {
		c.State = Marked
	}
}

// unmark clears a flag. No-op unless the cell is marked.
func (c *Cell) unmark() {
	if c.State == Marked {
		c.State = Hidden
	}
}

// glyph is the single-character client view of the cell.
func (c *Cell) glyph() string {
	switch c.State {
	case Marked:
		return "F"
	case Hidden:
		return "-"
	}
	if c.hazardousNeighbors == 0 {
		return " "
	}
	return strconv.Itoa(c.hazardousNeighbors)
}

// debugGlyph shows the ground truth regardless of state.
func (c *Cell) debugGlyph() string {
	if c.hazard {
		return "B"
	}
	return strconv.Itoa(c.hazardousNeighbors)
}
