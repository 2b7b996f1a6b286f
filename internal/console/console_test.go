package console

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/findhat/internal/game"
	"github.com/robalobadob/findhat/internal/layout"
	"github.com/robalobadob/findhat/internal/store"
)

func defaultBoard(int) (*game.Grid, error) { return layout.Default(), nil }

func run(t *testing.T, input string, rounds int) (Summary, string, store.Store) {
	t.Helper()
	var out bytes.Buffer
	st := store.NewMemoryStore()
	sum, err := Run(context.Background(), Config{
		In:      strings.NewReader(input),
		Out:     &out,
		Rounds:  rounds,
		NewGrid: defaultBoard,
		Store:   st,
	})
	require.NoError(t, err)
	return sum, out.String(), st
}

func TestRunWin(t *testing.T) {
	sum, out, st := run(t, "d\nd\nr\n", 1)

	assert.Equal(t, Summary{Rounds: 1, Won: 1}, sum)
	assert.Contains(t, out, "*░O\n░O░\n░^░\n"+Prompt)
	assert.Contains(t, out, "*░O\n*O░\n*^░\n"+Prompt)
	assert.True(t, strings.HasSuffix(out, MsgWon+"\n"))
	assert.Equal(t, 3, strings.Count(out, Prompt))

	all, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, game.StatusWon, all[0].Status())
}

func TestRunOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Summary
		msg   string
	}{
		{"hole", "r\nr\n", Summary{Rounds: 1, Lost: 1}, MsgLost},
		{"off the board", "u\n", Summary{Rounds: 1, Aborted: 1}, MsgAborted},
		{"upper case and spaces", "  D \nD\nR\n", Summary{Rounds: 1, Won: 1}, MsgWon},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum, out, _ := run(t, tc.input, 1)
			assert.Equal(t, tc.want, sum)
			assert.True(t, strings.HasSuffix(out, tc.msg+"\n"), out)
		})
	}
}

func TestRunRejectedMovesKeepPlaying(t *testing.T) {
	sum, out, _ := run(t, "x\nd\nu\nd\nr\n", 1)

	assert.Equal(t, Summary{Rounds: 1, Won: 1}, sum)
	assert.Equal(t, 1, strings.Count(out, MsgInvalidMove))
	assert.Equal(t, 1, strings.Count(out, MsgTurnBack))
	assert.Equal(t, 5, strings.Count(out, Prompt))
}

func TestRunEndOfInput(t *testing.T) {
	sum, out, st := run(t, "d\n", 3)

	assert.Equal(t, Summary{Rounds: 1, Unfinished: 1}, sum)
	assert.NotContains(t, out, MsgWon)
	assert.NotContains(t, out, "Played")

	all, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, game.StatusOngoing, all[0].Status())
	assert.Equal(t, game.Point{X: 0, Y: 1}, all[0].Position())
}

func TestRunSeveralRounds(t *testing.T) {
	var rounds []int
	var out bytes.Buffer
	st := store.NewMemoryStore()
	sum, err := Run(context.Background(), Config{
		In:     strings.NewReader("d\nd\nr\nu\nr\nr\n"),
		Out:    &out,
		Rounds: 3,
		NewGrid: func(round int) (*game.Grid, error) {
			rounds = append(rounds, round)
			return layout.Default(), nil
		},
		Store: st,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, rounds)
	assert.Equal(t, Summary{Rounds: 3, Won: 1, Lost: 1, Aborted: 1}, sum)
	assert.Contains(t, out.String(), "Round 2 of 3\n")
	assert.True(t, strings.HasSuffix(out.String(), "Played 3: 1 won, 1 lost, 1 left the board.\n"))

	all, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRunBoardError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), Config{
		In:      strings.NewReader(""),
		Out:     io.Discard,
		Rounds:  1,
		NewGrid: func(int) (*game.Grid, error) { return nil, boom },
		Store:   store.NewMemoryStore(),
	})
	assert.ErrorIs(t, err, boom)
}

// promptSignal closes ready the first time the prompt is written.
type promptSignal struct {
	once  sync.Once
	ready chan struct{}
}

func (p *promptSignal) Write(b []byte) (int, error) {
	if strings.Contains(string(b), Prompt) {
		p.once.Do(func() { close(p.ready) })
	}
	return len(b), nil
}

func TestRunCanceledWhileWaitingForInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pr, pw := io.Pipe()
	defer pw.Close()

	out := &promptSignal{ready: make(chan struct{})}
	st := store.NewMemoryStore()
	type result struct {
		sum Summary
		err error
	}
	done := make(chan result, 1)
	go func() {
		sum, err := Run(ctx, Config{
			In:      pr,
			Out:     out,
			Rounds:  1,
			NewGrid: defaultBoard,
			Store:   st,
		})
		done <- result{sum, err}
	}()

	select {
	case <-out.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("no prompt written")
	}
	cancel()

	select {
	case res := <-done:
		assert.ErrorIs(t, res.err, context.Canceled)
		assert.Equal(t, Summary{Rounds: 1, Unfinished: 1}, res.sum)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// failingReader yields its data once, then err.
type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestRunReadErrors(t *testing.T) {
	diskErr := errors.New("disk on fire")
	tests := []struct {
		name string
		in   io.Reader
		want error
	}{
		{"reader fails", &failingReader{data: "d\n", err: diskErr}, diskErr},
		{"line too long", strings.NewReader("d\n" + strings.Repeat("x", 70000) + "\n"), bufio.ErrTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum, err := Run(context.Background(), Config{
				In:      tc.in,
				Out:     io.Discard,
				Rounds:  1,
				NewGrid: defaultBoard,
				Store:   store.NewMemoryStore(),
			})
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, Summary{Rounds: 1, Unfinished: 1}, sum)
		})
	}
}

func TestSummarizeCountsStoredSessions(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	play := func(moves ...game.Direction) {
		s := game.NewSession(layout.Default())
		for _, d := range moves {
			_, _ = s.Move(d)
		}
		require.NoError(t, st.Save(ctx, s))
	}
	play(game.Down, game.Down, game.Right) // won
	play(game.Right, game.Right)           // lost
	play(game.Left)                        // aborted
	play(game.Up)                          // aborted
	play(game.Down)                        // still going

	sum, err := Summarize(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, Summary{Rounds: 5, Won: 1, Lost: 1, Aborted: 2, Unfinished: 1}, sum)
}

func TestRunFullWordsAreNotDirections(t *testing.T) {
	sum, out, _ := run(t, "down\ndown\nright\n", 1)

	assert.Equal(t, Summary{Rounds: 1, Unfinished: 1}, sum)
	assert.Equal(t, 3, strings.Count(out, MsgInvalidMove))
	assert.NotContains(t, out, MsgWon)
}
