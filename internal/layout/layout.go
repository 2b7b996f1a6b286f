// internal/layout/layout.go
//
// Supplied board layouts.
//
// Responsibilities:
//   - Parse a board from glyph text (the same glyphs the renderer prints).
//   - Load a layout from a file (HAT_BOARD_FILE).
//   - Provide the embedded default layout as a fallback.
//
// Glyphs:
//   ^  hat          O  hole
//   ░  empty        .  empty (ASCII alternative)
//   *  start (only allowed at the top-left corner)
//
// Constraints:
//   • Rows must all have the same width.
//   • Exactly one hat; the top-left cell must be traversable.
//   • Trailing blank lines and trailing \r are ignored.

package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/findhat/internal/game"
)

//go:embed default_board.txt
var embeddedBoard string

// ErrInvalidLayout reports text that does not describe a playable board.
var ErrInvalidLayout = errors.New("invalid layout")

var cells = map[rune]game.Cell{
	'^': game.CellHat,
	'O': game.CellHole,
	'░': game.CellEmpty,
	'.': game.CellEmpty,
	'*': game.CellVisited,
}

// Parse converts glyph text to a Grid.
func Parse(text string) (*game.Grid, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}

	rows := make([][]game.Cell, len(lines))
	for y, line := range lines {
		row := make([]game.Cell, 0, len(line))
		x := 0
		for _, r := range line {
			c, ok := cells[r]
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at row %d, column %d", ErrInvalidLayout, r, y, x)
			}
			if c == game.CellVisited && (x != 0 || y != 0) {
				return nil, fmt.Errorf("%w: path marker at row %d, column %d", ErrInvalidLayout, y, x)
			}
			row = append(row, c)
			x++
		}
		rows[y] = row
	}

	g, err := game.NewGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return g, nil
}

// Load reads and parses the layout file at path.
func Load(path string) (*game.Grid, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Default returns a fresh copy of the embedded layout.
func Default() *game.Grid {
	g, err := Parse(embeddedBoard)
	if err != nil {
		panic("layout: embedded board is invalid: " + err.Error())
	}
	return g
}
