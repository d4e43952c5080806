package cubesolver

import (
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/geom"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// Sentinel errors for the cubesolver package.
var (
	// Input errors
	ErrInvalidMove = types.ErrInvalidMove
	ErrLength      = cube.ErrLength
	ErrPieceColors = cube.ErrPieceColors
	ErrMatrixSize  = geom.ErrMatrixSize

	// Solver errors
	ErrStuck = solver.ErrStuck
)
