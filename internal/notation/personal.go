package notation

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// Describe returns a plain-English description of a move, for people who
// don't read cube notation. Directions are as seen facing the turned layer.
//
//	R  -> "right face clockwise"     Ri -> "right face anti-clockwise"
//	M  -> "middle slice down"        Mi -> "middle slice up"
//	X  -> "whole cube front to top"  Xi -> "whole cube front to bottom"
func Describe(m types.Move) string {
	switch m {
	case types.L:
		return "left face clockwise"
	case types.Li:
		return "left face anti-clockwise"
	case types.R:
		return "right face clockwise"
	case types.Ri:
		return "right face anti-clockwise"
	case types.U:
		return "top face clockwise"
	case types.Ui:
		return "top face anti-clockwise"
	case types.D:
		return "bottom face clockwise"
	case types.Di:
		return "bottom face anti-clockwise"
	case types.F:
		return "front face clockwise"
	case types.Fi:
		return "front face anti-clockwise"
	case types.B:
		return "back face clockwise"
	case types.Bi:
		return "back face anti-clockwise"

	// slices follow the outer face they share a direction with
	case types.M:
		return "middle slice down"
	case types.Mi:
		return "middle slice up"
	case types.E:
		return "equator slice right"
	case types.Ei:
		return "equator slice left"
	case types.S:
		return "standing slice clockwise"
	case types.Si:
		return "standing slice anti-clockwise"

	case types.X:
		return "whole cube front to top"
	case types.Xi:
		return "whole cube front to bottom"
	case types.Y:
		return "whole cube front to left"
	case types.Yi:
		return "whole cube front to right"
	case types.Z:
		return "whole cube top to right"
	case types.Zi:
		return "whole cube top to left"
	}
	return "unknown move " + string(m)
}

// DescribeSequence describes each move on its own line, numbered from 1.
func DescribeSequence(moves []types.Move) string {
	var b strings.Builder
	width := len(fmt.Sprint(len(moves)))
	for i, m := range moves {
		fmt.Fprintf(&b, "%*d. %s\n", width, i+1, Describe(m))
	}
	return b.String()
}
