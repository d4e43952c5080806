// Package cubesolver models a 3x3 Rubik's Cube and solves it with a fixed
// layer-by-layer method.
//
// # Quick Start
//
// Build a cube from its 54-sticker flat string and solve it:
//
//	c, err := cubesolver.ParseCube(flat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sol, err := cubesolver.Solve(c)
//	if err != nil {
//	    log.Fatal(err) // errors.Is(err, cubesolver.ErrStuck) for unsolvable input
//	}
//	fmt.Println(len(sol.Moves), "moves,", len(sol.Optimized), "after optimizing")
//
// # Moves
//
// Moves are tokens: L R U D F B for face turns, M E S for middle slices and
// X Y Z for whole-cube rotations. A trailing "i" turns counter-clockwise:
//
//	c.Sequence("R U Ri Ui")
//	c.Apply(cubesolver.X)
//
// # Flat Notation
//
// The flat string lists the up face, then the top, middle and bottom rows of
// the left, front, right and back faces, then the down face. Any rune can be
// a colour; centres define which colour belongs to which face.
//
//	         0  1  2
//	         3  4  5
//	         6  7  8
//	 9 10 11 12 13 14 15 16 17 18 19 20
//	21 22 23 24 25 26 27 28 29 30 31 32
//	33 34 35 36 37 38 39 40 41 42 43 44
//	        45 46 47
//	        48 49 50
//	        51 52 53
//
// # Solving Phases
//
// The solver runs seven phases in order:
//
//   - PhaseCross: front cross
//   - PhaseCrossCorners: front corners
//   - PhaseSecondLayer: middle-layer edges
//   - PhaseBackEdges: back cross
//   - PhaseCornerPosition: back corners into their slots
//   - PhaseCornerOrientation: back corners twisted in place
//   - PhaseLastEdges: back edges permuted
package cubesolver

import (
	"math/rand"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

type (
	// Cube is the state of all 26 pieces.
	Cube = cube.Cube
	// Move is a single move token.
	Move = types.Move
	// Phase is one step of the solving method.
	Phase = solver.Phase
	// StuckError reports a phase that could not make progress.
	StuckError = solver.StuckError
)

// Move tokens.
const (
	L  = types.L
	Li = types.Li
	R  = types.R
	Ri = types.Ri
	U  = types.U
	Ui = types.Ui
	D  = types.D
	Di = types.Di
	F  = types.F
	Fi = types.Fi
	B  = types.B
	Bi = types.Bi
	M  = types.M
	Mi = types.Mi
	E  = types.E
	Ei = types.Ei
	S  = types.S
	Si = types.Si
	X  = types.X
	Xi = types.Xi
	Y  = types.Y
	Yi = types.Yi
	Z  = types.Z
	Zi = types.Zi
)

// Solver phases.
const (
	PhaseCross             = solver.PhaseCross
	PhaseCrossCorners      = solver.PhaseCrossCorners
	PhaseSecondLayer       = solver.PhaseSecondLayer
	PhaseBackEdges         = solver.PhaseBackEdges
	PhaseCornerPosition    = solver.PhaseCornerPosition
	PhaseCornerOrientation = solver.PhaseCornerOrientation
	PhaseLastEdges         = solver.PhaseLastEdges
)

// NewCube returns a solved cube.
func NewCube() *Cube {
	return cube.NewSolved()
}

// ParseCube builds a cube from a flat string. Whitespace is ignored.
func ParseCube(flat string) (*Cube, error) {
	return cube.New(flat)
}

// ParseMoves parses space-separated move tokens.
func ParseMoves(s string) ([]Move, error) {
	return notation.ParseSequence(s)
}

// FormatMoves joins move tokens with spaces.
func FormatMoves(moves []Move) string {
	return notation.FormatSequence(moves)
}

// Scramble draws n random face and slice quarter turns from rng. It returns
// nil when n <= 0.
func Scramble(rng *rand.Rand, n int) []Move {
	return cube.Scramble(rng, n)
}

// Optimize shortens a move log without changing the state it produces.
func Optimize(moves []Move) []Move {
	return analysis.OptimizeMoves(moves)
}

// Solution is the outcome of Solve.
type Solution struct {
	Moves      []Move        // every move the solver applied
	Optimized  []Move        // Moves after optimizing; equal to Moves when disabled
	PhaseMoves map[Phase]int // raw moves issued by each phase
}

// Solve solves c in place. On failure c is left where the solver stopped.
func Solve(c *Cube, opts ...Option) (*Solution, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	res, err := solver.New(c, cfg.solverOptions()...).Solve()
	if err != nil {
		return nil, err
	}

	sol := &Solution{
		Moves:      res.Moves,
		Optimized:  res.Moves,
		PhaseMoves: res.PhaseMoves,
	}
	if cfg.optimize {
		sol.Optimized = analysis.OptimizeMoves(res.Moves)
	}
	return sol, nil
}
