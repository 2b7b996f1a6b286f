// internal/console/console.go
//
// Terminal driver for find-your-hat.
// Responsibilities:
//   - Per round: obtain a board, start a session, save it in the store.
//   - Per turn: print the board, prompt, read one line, apply the move.
//   - Print the outcome for terminal statuses and rejected moves.
//   - Summarise results across rounds from the session store.
//
// Notes:
//   - Input is read line by line; end of input stops the run early and the
//     current session is counted as unfinished. A read error is returned.
//   - Cancelling ctx stops the run between turns (or while waiting for input).

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/findhat/internal/game"
	"github.com/robalobadob/findhat/internal/store"
)

// Player-facing messages.
const (
	Prompt         = "Where would you go next? "
	MsgWon         = "You found the hat. You win!"
	MsgLost        = "You fell into a hole. You lose!"
	MsgAborted     = "You left the board."
	MsgInvalidMove = "Invalid move input, please enter l, r, u, or d."
	MsgTurnBack    = "You cannot turn back!"
)

var outcomes = map[game.Status]string{
	game.StatusWon:     MsgWon,
	game.StatusLost:    MsgLost,
	game.StatusAborted: MsgAborted,
}

// Config wires the driver to its input, output, and board source.
type Config struct {
	In      io.Reader
	Out     io.Writer
	Rounds  int                                 // at least 1
	NewGrid func(round int) (*game.Grid, error) // round counts from 1
	Store   store.Store
}

// Summary counts round outcomes.
type Summary struct {
	Rounds     int
	Won        int
	Lost       int
	Aborted    int
	Unfinished int
}

// Summarize tallies every session held by st.
func Summarize(ctx context.Context, st store.Store) (Summary, error) {
	all, err := st.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Rounds: len(all)}
	for _, s := range all {
		switch s.Status() {
		case game.StatusWon:
			sum.Won++
		case game.StatusLost:
			sum.Lost++
		case game.StatusAborted:
			sum.Aborted++
		default:
			sum.Unfinished++
		}
	}
	return sum, nil
}

// Run plays up to cfg.Rounds rounds and summarises the sessions in cfg.Store.
// A read error on cfg.In ends the run with that error; plain end of input
// does not.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Rounds < 1 {
		cfg.Rounds = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(ctx, cfg.In)

	err := playRounds(ctx, cfg, lines)
	// summarise with a fresh context so a cancelled run still reports what was played
	sum, serr := Summarize(context.WithoutCancel(ctx), cfg.Store)
	if err != nil {
		return sum, err
	}
	if serr != nil {
		return sum, serr
	}
	if cfg.Rounds > 1 && sum.Unfinished == 0 {
		fmt.Fprintf(cfg.Out, "Played %d: %d won, %d lost, %d left the board.\n",
			sum.Rounds, sum.Won, sum.Lost, sum.Aborted)
	}
	return sum, nil
}

func playRounds(ctx context.Context, cfg Config, lines <-chan input) error {
	for round := 1; round <= cfg.Rounds; round++ {
		grid, err := cfg.NewGrid(round)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		s := game.NewSession(grid)
		if err := cfg.Store.Save(ctx, s); err != nil {
			return err
		}
		log.Info().Str("session", s.ID()).Int("round", round).
			Int("width", s.Width()).Int("height", s.Height()).Msg("round started")

		if cfg.Rounds > 1 {
			fmt.Fprintf(cfg.Out, "Round %d of %d\n", round, cfg.Rounds)
		}

		st, err := playRound(ctx, cfg.Out, lines, s)
		if err != nil {
			return err
		}
		if !st.Terminal() {
			log.Info().Str("session", s.ID()).Msg("input closed before the round ended")
			return nil
		}
		log.Info().Str("session", s.ID()).Str("status", string(st)).Int("steps", s.Steps()).Msg("round finished")
	}
	return nil
}

// playRound runs turns until the session ends or input runs out.
func playRound(ctx context.Context, out io.Writer, lines <-chan input, s *game.Session) (game.Status, error) {
	for !s.Status().Terminal() {
		fmt.Fprintln(out, s.String())
		fmt.Fprint(out, Prompt)

		var line string
		select {
		case <-ctx.Done():
			return s.Status(), ctx.Err()
		case in, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return s.Status(), nil
			}
			if in.err != nil {
				return s.Status(), fmt.Errorf("read input: %w", in.err)
			}
			line = in.line
		}

		d, err := game.ParseDirection(line)
		if err != nil {
			log.Debug().Str("input", line).Msg("unrecognized direction")
			fmt.Fprintln(out, MsgInvalidMove)
			continue
		}
		if _, err := s.Move(d); err != nil {
			if errors.Is(err, game.ErrIllegalRevisit) {
				fmt.Fprintln(out, MsgTurnBack)
				continue
			}
			return s.Status(), err
		}
	}
	fmt.Fprintln(out, outcomes[s.Status()])
	return s.Status(), nil
}

// input is one line of player input, or the error that stopped reading.
type input struct {
	line string
	err  error
}

// readLines streams lines from r until EOF, a read error, or ctx is done.
// A read error is delivered as the last value before the channel closes.
func readLines(ctx context.Context, r io.Reader) <-chan input {
	ch := make(chan input)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- input{line: sc.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case ch <- input{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}
