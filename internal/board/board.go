// Package board implements the shared minefield: an N×N arena of cells with
// precomputed adjacency and a flood-fill reveal. Every exported method takes
// the board-wide lock for its whole duration, so a render never observes a
// partially applied cascade.
package board

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// HazardProbability is the per-cell chance of a hazard on a random board.
const HazardProbability = 0.25

// ErrMalformedBoard is returned for layouts that are not a square 0/1 grid.
var ErrMalformedBoard = errors.New("malformed board")

// Board is the N×N minefield shared by every session.
type Board struct {
	mu    sync.Mutex
	size  int
	cells []Cell // row-major: index = row*size + col
}

// New builds a board from a square hazard layout. layout[x][y] is the cell in
// row x, column y.
func New(layout [][]bool) (*Board, error) {
	size := len(layout)
	for x, row := range layout {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, x, len(row), size)
		}
	}

	b := &Board{size: size, cells: make([]Cell, size*size)}
	for x := range size {
		for y := range size {
			b.cells[b.index(x, y)] = Cell{State: Hidden, hazard: layout[x][y]}
		}
	}
	b.link()
	return b, nil
}

// NewRandom builds a size×size board where each cell independently holds a
// hazard with HazardProbability.
func NewRandom(size int, rng *rand.Rand) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	layout := make([][]bool, size)
	for x := range layout {
		layout[x] = make([]bool, size)
		for y := range layout[x] {
			layout[x][y] = rng.Float64() < HazardProbability
		}
	}
	return New(layout)
}

// link assigns every cell its in-bounds 8-neighbourhood and counts hazards
// among them. It runs once, before the board is handed out.
func (b *Board) link() {
	for x := range b.size {
		for y := range b.size {
			c := &b.cells[b.index(x, y)]
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if !b.InBounds(nx, ny) {
						continue
					}
					n := b.index(nx, ny)
					c.neighbors = append(c.neighbors, n)
					if b.cells[n].hazard {
						c.hazardousNeighbors++
					}
				}
			}
		}
	}
}

// Size returns N for an N×N board.
func (b *Board) Size() int { return b.size }

// InBounds reports whether (x, y) addresses a cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b *Board) index(x, y int) int { return x*b.size + y }

// Reveal digs the cell at row x, column y. Out-of-range coordinates are ignored.
func (b *Board) Reveal(x, y int) RevealOutcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revealAt(x, y)
}

// Mark flags the cell at (x, y) if it is hidden.
func (b *Board) Mark(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.InBounds(x, y) {
		b.cells[b.index(x, y)].mark()
	}
}

// Unmark removes a flag from the cell at (x, y).
func (b *Board) Unmark(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.InBounds(x, y) {
		b.cells[b.index(x, y)].unmark()
	}
}

// Dig reveals (x, y) and renders the resulting board in one critical section.
func (b *Board) Dig(x, y int) (string, RevealOutcome) {
	b.mu.Lock()
	defer b.mu.Unlock()
	outcome := b.revealAt(x, y)
	return b.renderLocked((*Cell).glyph), outcome
}

// Flag marks (x, y) and renders the resulting board in one critical section.
func (b *Board) Flag(x, y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.InBounds(x, y) {
		b.cells[b.index(x, y)].mark()
	}
	return b.renderLocked((*Cell).glyph)
}

// Deflag unmarks (x, y) and renders the resulting board in one critical section.
func (b *Board) Deflag(x, y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.InBounds(x, y) {
		b.cells[b.index(x, y)].unmark()
	}
	return b.renderLocked((*Cell).glyph)
}

func (b *Board) revealAt(x, y int) RevealOutcome {
	if !b.InBounds(x, y) {
		return Normal
	}
	return b.revealLocked(b.index(x, y))
}

// revealLocked reveals cell i and cascades through zero-count neighbours.
// Only the initiating cell's outcome is returned. Caller must hold b.mu.
func (b *Board) revealLocked(i int) RevealOutcome {
	if b.cells[i].State != Hidden {
		return Normal
	}
	outcome := b.open(i)
	stack := []int{i}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.cells[cur].hazardousNeighbors != 0 {
			continue
		}
		for _, n := range b.cells[cur].neighbors {
			if b.cells[n].State != Hidden {
				continue
			}
			b.open(n)
			stack = append(stack, n)
		}
	}
	return outcome
}

// open moves a hidden cell to Revealed, defusing it if it held a hazard.
func (b *Board) open(i int) RevealOutcome {
	c := &b.cells[i]
	c.State = Revealed
	if !c.hazard {
		return Normal
	}
	c.hazard = false
	for _, n := range c.neighbors {
		b.cells[n].hazardousNeighbors--
	}
	return Hazard
}

// Render returns the client view: one line per row, glyphs separated by a
// single blank, every line newline-terminated.
func (b *Board) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderLocked((*Cell).glyph)
}

// DebugRender returns the ground-truth layout ("B" for hazards, neighbour
// counts otherwise). It is not exposed to clients.
func (b *Board) DebugRender() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderLocked((*Cell).debugGlyph)
}

// Glyphs returns a copy of the client view as a grid, glyphs[x][y].
func (b *Board) Glyphs() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	grid := make([][]string, b.size)
	for x := range grid {
		grid[x] = make([]string, b.size)
		for y := range grid[x] {
			grid[x][y] = b.cells[b.index(x, y)].glyph()
		}
	}
	return grid
}

// Cell returns a copy of the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.InBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[b.index(x, y)], true
}

func (b *Board) renderLocked(glyph func(*Cell) string) string {
	var sb strings.Builder
	sb.Grow(b.size * b.size * 2)
	for x := range b.size {
		for y := range b.size {
			if y > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(glyph(&b.cells[b.index(x, y)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
