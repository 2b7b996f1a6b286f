// internal/game/generate.go
//
// Board generation.
//
// Placement rules:
//   - The start cell (0,0) is Visited and never a hazard.
//   - floor(holeFraction × width × height) holes at distinct cells.
//   - One hat on a cell that is neither the start nor a hole.
//
// The random source is injected so boards are reproducible from a seed.

package game

import (
	"fmt"
	"math"
	"math/rand"
)

// MaxHoleFraction is the exclusive upper bound for the hole density.
const MaxHoleFraction = 0.5

// Rand is the subset of *rand.Rand the generator needs.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source suitable for Generate.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Generate builds a random board of the given size and hole density.
//
// width and height must be at least 1 and holeFraction must lie in
// [0, MaxHoleFraction). The board also needs at least two cells, since the
// hat may not share the start cell: a 1x1 board fails with ErrInvalidParameter.
func Generate(r Rand, width, height int, holeFraction float64) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidParameter, width, height)
	}
	if !(holeFraction >= 0 && holeFraction < MaxHoleFraction) {
		return nil, fmt.Errorf("%w: hole fraction %v not in [0, %v)", ErrInvalidParameter, holeFraction, MaxHoleFraction)
	}
	n := width * height
	if n < 2 {
		return nil, fmt.Errorf("%w: %dx%d board leaves no room for the hat", ErrInvalidParameter, width, height)
	}

	g := &Grid{width: width, height: height, cells: make([]Cell, n)}
	g.cells[0] = CellVisited

	holes := int(math.Floor(holeFraction * float64(n)))

	// Partial Fisher-Yates over every index but the start: the first `holes`
	// entries become holes, the rest remain free for the hat.
	candidates := make([]int, n-1)
	for i := range candidates {
		candidates[i] = i + 1
	}
	for i := 0; i < holes; i++ {
		j := i + r.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		g.cells[candidates[i]] = CellHole
	}

	free := candidates[holes:]
	g.cells[free[r.Intn(len(free))]] = CellHat
	return g, nil
}
