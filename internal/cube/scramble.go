package cube

import (
	"math/rand"

	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// Scramble draws n random face and slice quarter turns from rng. The cube
// itself never uses randomness; callers own the source. n <= 0 gives nil.
func Scramble(rng *rand.Rand, n int) []types.Move {
	if n <= 0 {
		return nil
	}
	turns := types.QuarterTurns()
	moves := make([]types.Move, n)
	for i := range moves {
		moves[i] = turns[rng.Intn(len(turns))]
	}
	return moves
}
