package solver

// Phase is one step of the layer-by-layer method, in the order Solve runs
// them.
type Phase int

const (
	PhaseCross Phase = iota
	PhaseCrossCorners
	PhaseSecondLayer
	PhaseBackEdges
	PhaseCornerPosition
	PhaseCornerOrientation
	PhaseLastEdges
)

// Phases returns all phases in solve order.
func Phases() []Phase {
	return []Phase{
		PhaseCross,
		PhaseCrossCorners,
		PhaseSecondLayer,
		PhaseBackEdges,
		PhaseCornerPosition,
		PhaseCornerOrientation,
		PhaseLastEdges,
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseCross:
		return "cross"
	case PhaseCrossCorners:
		return "cross_corners"
	case PhaseSecondLayer:
		return "second_layer"
	case PhaseBackEdges:
		return "back_edges"
	case PhaseCornerPosition:
		return "corner_position"
	case PhaseCornerOrientation:
		return "corner_orientation"
	case PhaseLastEdges:
		return "last_edges"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseCross:
		return "Front Cross"
	case PhaseCrossCorners:
		return "Front Corners"
	case PhaseSecondLayer:
		return "Second Layer"
	case PhaseBackEdges:
		return "Back Edges"
	case PhaseCornerPosition:
		return "Back Corner Position"
	case PhaseCornerOrientation:
		return "Back Corner Orientation"
	case PhaseLastEdges:
		return "Back Edge Permutation"
	default:
		return "Unknown"
	}
}

// ParsePhase returns the phase with the given String form.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range Phases() {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}
