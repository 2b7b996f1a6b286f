// internal/game/grid.go
//
// Rectangular board of Cells stored row-major.
//
// Invariants:
//   - width ≥ 1, height ≥ 1, exactly one hat.
//   - The start cell (0,0) is Visited.
//   - The only mutation is Empty → Visited (see visit).

package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidParameter reports out-of-range generator arguments or a malformed grid.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidInput reports an unrecognized direction token.
	ErrInvalidInput = errors.New("invalid move input")
	// ErrIllegalRevisit reports a move onto an already visited cell.
	ErrIllegalRevisit = errors.New("cannot turn back")
	// ErrFinished reports a move after the session reached a terminal status.
	ErrFinished = errors.New("game finished")
)

// Start is the fixed starting coordinate of every board.
var Start = Point{X: 0, Y: 0}

// glyphs is the rendering table, keyed by variant.
var glyphs = map[Cell]rune{
	CellHat:     '^',
	CellHole:    'O',
	CellEmpty:   '░',
	CellVisited: '*',
}

// Glyph returns the display rune for c.
func Glyph(c Cell) rune {
	if r, ok := glyphs[c]; ok {
		return r
	}
	return '?'
}

// Grid is the game board.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid builds a Grid from rows of cells (rows[y][x]).
// The rows are copied. An Empty start cell is marked Visited; a start cell
// holding a hole or the hat is rejected.
func NewGrid(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must be non-empty", ErrInvalidParameter)
	}
	width := len(rows[0])
	g := &Grid{width: width, height: len(rows), cells: make([]Cell, 0, width*len(rows))}

	hats := 0
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidParameter, y, len(row), width)
		}
		for x, c := range row {
			switch c {
			case CellHat:
				hats++
			case CellEmpty, CellHole, CellVisited:
			default:
				return nil, fmt.Errorf("%w: unknown cell at (%d,%d)", ErrInvalidParameter, x, y)
			}
		}
		g.cells = append(g.cells, row...)
	}
	if hats != 1 {
		return nil, fmt.Errorf("%w: grid has %d hats, want 1", ErrInvalidParameter, hats)
	}

	switch g.At(Start) {
	case CellEmpty, CellVisited:
		g.set(Start, CellVisited)
	default:
		return nil, fmt.Errorf("%w: start cell is %s", ErrInvalidParameter, g.At(Start))
	}
	return g, nil
}

// Width is the number of columns.
func (g *Grid) Width() int { return g.width }

// Height is the number of rows.
func (g *Grid) Height() int { return g.height }

// Contains reports whether p lies on the board.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the cell at p. p must be on the board.
func (g *Grid) At(p Point) Cell { return g.cells[g.index(p)] }

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, x := range g.cells {
		if x == c {
			n++
		}
	}
	return n
}

// Rows renders one display line per grid row.
func (g *Grid) Rows() []string {
	out := make([]string, g.height)
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Reset()
		for _, c := range g.cells[y*g.width : (y+1)*g.width] {
			b.WriteRune(Glyph(c))
		}
		out[y] = b.String()
	}
	return out
}

// String joins Rows with newlines.
func (g *Grid) String() string { return strings.Join(g.Rows(), "\n") }

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// visit marks an Empty cell Visited and reports whether it did.
func (g *Grid) visit(p Point) bool {
	i := g.index(p)
	if g.cells[i] != CellEmpty {
		return false
	}
	g.cells[i] = CellVisited
	return true
}

func (g *Grid) set(p Point, c Cell) { g.cells[g.index(p)] = c }

func (g *Grid) index(p Point) int { return p.Y*g.width + p.X }
