// internal/game/types.go
//
// Core type definitions for the find-your-hat engine.
// Defines:
//   - Cell: classification of one board position (empty/visited/hole/hat).
//   - Status: coarse state of a session (ongoing/won/lost/aborted).
//   - Point: an (x, y) board coordinate.
//   - Direction: one of the four single-step moves.

package game

import "strings"

// Cell is a closed set of board classifications.
// Display glyphs live in the render table, not on the values themselves.
type Cell uint8

const (
	CellEmpty   Cell = iota // traversable, not yet stepped on
	CellVisited             // traversable, already stepped on
	CellHole                // hazard; entering it loses
	CellHat                 // goal; entering it wins
)

// String returns the variant name (not the display glyph).
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellVisited:
		return "visited"
	case CellHole:
		return "hole"
	case CellHat:
		return "hat"
	}
	return "unknown"
}

// Status represents the state of a single session.
// Possible values:
//   - "ongoing": moves are accepted.
//   - "won":     the player stepped onto the hat.
//   - "lost":    the player fell into a hole.
//   - "aborted": the player walked off the board.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusAborted Status = "aborted"
)

// Terminal reports whether no further moves apply.
func (s Status) Terminal() bool { return s != StatusOngoing }

// Point is a board coordinate: X is the column, Y is the row.
type Point struct {
	X int
	Y int
}

// Direction is a single orthogonal step.
type Direction uint8

const (
	DirNone Direction = iota
	Left
	Right
	Up
	Down
)

var deltas = map[Direction]Point{
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
}

// ParseDirection maps an input token to a Direction.
// Accepts only l/r/u/d, case-insensitive, surrounding space ignored.
// Anything else yields DirNone and ErrInvalidInput.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "l":
		return Left, nil
	case "r":
		return Right, nil
	case "u":
		return Up, nil
	case "d":
		return Down, nil
	}
	return DirNone, ErrInvalidInput
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "none"
}

// step returns p shifted one cell in d. ok is false for an unknown direction.
func (p Point) step(d Direction) (Point, bool) {
	delta, ok := deltas[d]
	if !ok {
		return p, false
	}
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}, true
}
