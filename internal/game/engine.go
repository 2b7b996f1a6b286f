// internal/game/engine.go
//
// Core game engine for a single find-your-hat session.
// Responsibilities:
//   - Own the board, the player's position, and the session status.
//   - Validate and apply moves (direction, bounds, revisits).
//   - Track state transitions: ongoing → won/lost/aborted.
//
// Notes:
//   - The session holds its own copy of the grid; callers only see renders
//     and read-only lookups, so the visited path stays simple.
//   - A rejected move returns an error and changes nothing.
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session holds the state of one game.
type Session struct {
	id     string
	grid   *Grid
	pos    Point
	status Status
	path   []Point // accepted positions in order, start first
}

// NewSession starts a session on a copy of g with the player at Start.
func NewSession(g *Grid) *Session {
	return &Session{
		id:     uuid.NewString(),
		grid:   g.Clone(),
		pos:    Start,
		status: StatusOngoing,
		path:   []Point{Start},
	}
}

// Move applies one step and returns the status after the call.
//
// Rules, in order:
//   - A finished session rejects the move with ErrFinished.
//   - An unknown direction is rejected with ErrInvalidInput.
//   - Leaving the board → aborted.
//   - Hat → won; hole → lost.
//   - Empty → the cell becomes visited and the player moves there.
//   - Visited → rejected with ErrIllegalRevisit.
func (s *Session) Move(d Direction) (Status, error) {
	if s.status.Terminal() {
		return s.status, ErrFinished
	}
	next, ok := s.pos.step(d)
	if !ok {
		log.Debug().Str("session", s.id).Uint8("direction", uint8(d)).Msg("unknown direction")
		return s.status, fmt.Errorf("%w: %v", ErrInvalidInput, d)
	}

	if !s.grid.Contains(next) {
		return s.finish(StatusAborted, next), nil
	}

	switch s.grid.At(next) {
	case CellHat:
		return s.finish(StatusWon, next), nil
	case CellHole:
		return s.finish(StatusLost, next), nil
	case CellEmpty:
		s.grid.visit(next)
		s.pos = next
		s.path = append(s.path, next)
		return s.status, nil
	default:
		log.Debug().Str("session", s.id).Int("x", next.X).Int("y", next.Y).Msg("revisit rejected")
		return s.status, ErrIllegalRevisit
	}
}

// finish records a terminal transition. Position and grid stay as they were.
func (s *Session) finish(st Status, at Point) Status {
	s.status = st
	log.Debug().Str("session", s.id).Str("status", string(st)).
		Int("x", at.X).Int("y", at.Y).Int("steps", s.Steps()).Msg("session finished")
	return st
}

// ID is the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Status reports the current status.
func (s *Session) Status() Status { return s.status }

// Position is the player's current coordinate.
func (s *Session) Position() Point { return s.pos }

// Steps counts accepted moves onto empty cells.
func (s *Session) Steps() int { return len(s.path) - 1 }

// Path returns the visited coordinates in order, start first.
func (s *Session) Path() []Point {
	out := make([]Point, len(s.path))
	copy(out, s.path)
	return out
}

// Width and Height mirror the board dimensions.
func (s *Session) Width() int  { return s.grid.Width() }
func (s *Session) Height() int { return s.grid.Height() }

// Cell returns the cell at p, or false when p is off the board.
func (s *Session) Cell(p Point) (Cell, bool) {
	if !s.grid.Contains(p) {
		return 0, false
	}
	return s.grid.At(p), true
}

// Render returns one display line per board row.
func (s *Session) Render() []string { return s.grid.Rows() }

// String renders the board as newline-separated rows.
func (s *Session) String() string { return s.grid.String() }
