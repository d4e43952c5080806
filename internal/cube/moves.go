package cube

import (
	"github.com/SeamusWaldron/cubesolver/internal/geom"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

type moveDef struct {
	sel Selector
	rot geom.Matrix
}

var (
	middle   = SliceSelector(geom.YAxis.Add(geom.ZAxis))
	equator  = SliceSelector(geom.XAxis.Add(geom.ZAxis))
	standing = SliceSelector(geom.XAxis.Add(geom.YAxis))
)

// moveTable maps each of the 24 tokens to the pieces it turns and how.
var moveTable = map[types.Move]moveDef{
	types.L:  {FaceSelector(geom.Left), geom.YZCC},
	types.Li: {FaceSelector(geom.Left), geom.YZCW},
	types.R:  {FaceSelector(geom.Right), geom.YZCW},
	types.Ri: {FaceSelector(geom.Right), geom.YZCC},
	types.U:  {FaceSelector(geom.Up), geom.XZCW},
	types.Ui: {FaceSelector(geom.Up), geom.XZCC},
	types.D:  {FaceSelector(geom.Down), geom.XZCC},
	types.Di: {FaceSelector(geom.Down), geom.XZCW},
	types.F:  {FaceSelector(geom.Front), geom.XYCW},
	types.Fi: {FaceSelector(geom.Front), geom.XYCC},
	types.B:  {FaceSelector(geom.Back), geom.XYCC},
	types.Bi: {FaceSelector(geom.Back), geom.XYCW},

	types.M:  {middle, geom.YZCC},
	types.Mi: {middle, geom.YZCW},
	types.E:  {equator, geom.XZCC},
	types.Ei: {equator, geom.XZCW},
	types.S:  {standing, geom.XYCW},
	types.Si: {standing, geom.XYCC},

	types.X:  {AllPieces, geom.YZCW},
	types.Xi: {AllPieces, geom.YZCC},
	types.Y:  {AllPieces, geom.XZCW},
	types.Yi: {AllPieces, geom.XZCC},
	types.Z:  {AllPieces, geom.XYCW},
	types.Zi: {AllPieces, geom.XYCC},
}

// Apply performs a single move.
func (c *Cube) Apply(m types.Move) error {
	def, ok := moveTable[m]
	if !ok {
		return &types.InvalidMoveError{Token: string(m)}
	}
	c.ApplyToSelection(def.sel, def.rot)
	return nil
}

// ApplyMoves performs moves in order, stopping at the first invalid one.
func (c *Cube) ApplyMoves(moves []types.Move) error {
	for _, m := range moves {
		if err := c.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// Sequence parses space-separated tokens ("L Ri U M") and applies them.
// Nothing is applied if any token is invalid.
func (c *Cube) Sequence(s string) error {
	moves, err := notation.ParseSequence(s)
	if err != nil {
		return err
	}
	return c.ApplyMoves(moves)
}
