package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvariants(t *testing.T) {
	tests := []struct {
		width, height int
		fraction      float64
	}{
		{30, 10, 0.2},
		{2, 1, 0},
		{1, 3, 0.4},
		{3, 3, 0.49},
		{5, 4, 0.25},
		{7, 7, 0},
		{40, 25, 0.45},
	}
	for _, tc := range tests {
		for seed := int64(1); seed <= 25; seed++ {
			g, err := Generate(NewRand(seed), tc.width, tc.height, tc.fraction)
			require.NoError(t, err)

			n := tc.width * tc.height
			assert.Equal(t, tc.width, g.Width())
			assert.Equal(t, tc.height, g.Height())
			assert.Equal(t, 1, g.Count(CellHat))
			assert.Equal(t, int(math.Floor(tc.fraction*float64(n))), g.Count(CellHole))
			assert.Equal(t, CellVisited, g.At(Start))
			assert.Equal(t, 1, g.Count(CellVisited))
			assert.Equal(t, n-2-g.Count(CellHole), g.Count(CellEmpty))
		}
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a, err := Generate(NewRand(42), 30, 10, 0.2)
	require.NoError(t, err)
	b, err := Generate(NewRand(42), 30, 10, 0.2)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerateHatReachesEveryFreeCell(t *testing.T) {
	// On a hole-free 2x2 board the hat must land on each non-start cell eventually.
	seen := map[Point]bool{}
	r := NewRand(7)
	for i := 0; i < 200; i++ {
		g, err := Generate(r, 2, 2, 0)
		require.NoError(t, err)
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				if g.At(Point{X: x, Y: y}) == CellHat {
					seen[Point{X: x, Y: y}] = true
				}
			}
		}
	}
	assert.Len(t, seen, 3)
	assert.False(t, seen[Start])
}

func TestGenerateRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fraction      float64
	}{
		{"zero width", 0, 5, 0.1},
		{"negative height", 5, -1, 0.1},
		{"negative fraction", 5, 5, -0.1},
		{"fraction at bound", 5, 5, 0.5},
		{"fraction above bound", 5, 5, 0.9},
		{"NaN fraction", 5, 5, math.NaN()},
		{"single cell", 1, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Generate(NewRand(1), tc.width, tc.height, tc.fraction)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, g)
		})
	}
}
