// Package analysis post-processes move logs: it shortens them without
// changing their effect and reports where moves were wasted.
package analysis

import "github.com/SeamusWaldron/cubesolver/pkg/types"

// Clockwise rotation tables: the token each face or slice turn becomes when
// the rotation that precedes it is taken away.
var (
	xRotation = map[types.Move]types.Move{
		types.U: types.F, types.B: types.U, types.D: types.B, types.F: types.D,
		types.E: types.Si, types.S: types.E,
		types.Y: types.Z, types.Z: types.Yi,
	}
	yRotation = map[types.Move]types.Move{
		types.B: types.L, types.R: types.B, types.F: types.R, types.L: types.F,
		types.S: types.Mi, types.M: types.S,
		types.Z: types.X, types.X: types.Zi,
	}
	zRotation = map[types.Move]types.Move{
		types.U: types.L, types.R: types.U, types.D: types.R, types.L: types.D,
		types.E: types.Mi, types.M: types.E,
		types.Y: types.Xi, types.X: types.Y,
	}
)

var rotationTables = map[types.Move]map[types.Move]types.Move{
	types.X:  xRotation,
	types.Xi: invertTable(xRotation),
	types.Y:  yRotation,
	types.Yi: invertTable(yRotation),
	types.Z:  zRotation,
	types.Zi: invertTable(zRotation),
}

func invertTable(t map[types.Move]types.Move) map[types.Move]types.Move {
	out := make(map[types.Move]types.Move, len(t))
	for k, v := range t {
		out[v] = k
	}
	return out
}

// Unrotate returns the move that has the same effect as m once the
// whole-cube rotation rot before it is removed. Moves along rot's own axis
// come back unchanged.
func Unrotate(rot, m types.Move) types.Move {
	table := rotationTables[rot]
	if img, ok := table[m]; ok {
		return img
	}
	if img, ok := table[m.Inverse()]; ok {
		return img.Inverse()
	}
	return m
}

// OptimizeMoves shortens a move log without changing its net effect on the
// cube. Rotation pairs are removed by rewriting the moves between them,
// triples become a single reverse turn and adjacent inverse pairs cancel.
// The passes repeat until none of them applies, so the result is its own
// optimization.
func OptimizeMoves(moves []types.Move) []types.Move {
	result := make([]types.Move, len(moves))
	copy(result, moves)

	for {
		before := len(result)
		result = untilStable(result, removeRotation)
		result = untilStable(result, collapseTriple)
		result = untilStable(result, cancelPair)
		// every rewrite shrinks the log, so an unchanged length means no
		// pass fired
		if len(result) == before {
			return result
		}
	}
}

// untilStable applies rewrite from the start of the log until it reports
// no change.
func untilStable(moves []types.Move, rewrite func([]types.Move) ([]types.Move, bool)) []types.Move {
	for {
		next, changed := rewrite(moves)
		if !changed {
			return moves
		}
		moves = next
	}
}

// removeRotation drops the first rotation that is later undone, together
// with its nearest undoing token, unrotating everything in between.
func removeRotation(moves []types.Move) ([]types.Move, bool) {
	for i, rot := range moves {
		if !rot.IsRotation() {
			continue
		}
		j := indexOf(moves, rot.Inverse(), i+1)
		if j < 0 {
			continue
		}

		out := make([]types.Move, 0, len(moves)-2)
		out = append(out, moves[:i]...)
		for _, m := range moves[i+1 : j] {
			out = append(out, Unrotate(rot, m))
		}
		out = append(out, moves[j+1:]...)
		return out, true
	}
	return moves, false
}

// collapseTriple replaces the first run of three identical tokens with the
// reverse turn.
func collapseTriple(moves []types.Move) ([]types.Move, bool) {
	for i := 0; i+2 < len(moves); i++ {
		if moves[i] != moves[i+1] || moves[i] != moves[i+2] {
			continue
		}
		out := make([]types.Move, 0, len(moves)-2)
		out = append(out, moves[:i]...)
		out = append(out, moves[i].Inverse())
		out = append(out, moves[i+3:]...)
		return out, true
	}
	return moves, false
}

// cancelPair deletes the first adjacent move and inverse.
func cancelPair(moves []types.Move) ([]types.Move, bool) {
	for i := 0; i+1 < len(moves); i++ {
		if !moves[i].IsInverse(moves[i+1]) {
			continue
		}
		out := make([]types.Move, 0, len(moves)-2)
		out = append(out, moves[:i]...)
		out = append(out, moves[i+2:]...)
		return out, true
	}
	return moves, false
}

func indexOf(moves []types.Move, m types.Move, from int) int {
	for k := from; k < len(moves); k++ {
		if moves[k] == m {
			return k
		}
	}
	return -1
}
