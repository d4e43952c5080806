package cube

import "github.com/SeamusWaldron/cubesolver/internal/geom"

// DetectedPhase is the furthest layer-by-layer stage a cube has reached,
// measured relative to a chosen front colour.
type DetectedPhase int

const (
	PhaseScrambled DetectedPhase = iota
	PhaseCross
	PhaseFirstLayer
	PhaseSecondLayer
	PhaseBackCross
	PhaseCornersPositioned
	PhaseCornersOriented
	PhaseSolved
)

func (p DetectedPhase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseCross:
		return "cross"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseSecondLayer:
		return "second_layer"
	case PhaseBackCross:
		return "back_cross"
	case PhaseCornersPositioned:
		return "position_corners"
	case PhaseCornersOriented:
		return "rotate_corners"
	case PhaseSolved:
		return "complete"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p DetectedPhase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseCross:
		return "Front Cross"
	case PhaseFirstLayer:
		return "First Layer"
	case PhaseSecondLayer:
		return "Second Layer"
	case PhaseBackCross:
		return "Back Cross"
	case PhaseCornersPositioned:
		return "Back Corners Positioned"
	case PhaseCornersOriented:
		return "Back Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// PhaseProgress records which stages hold independently of each other.
type PhaseProgress struct {
	Cross             bool
	FirstLayer        bool
	SecondLayer       bool
	BackCross         bool
	CornersPositioned bool
	CornersOriented   bool
	Solved            bool
}

// centerPos returns where the centre of colour col currently sits.
func (c *Cube) centerPos(col Color) (geom.Vec, bool) {
	p := c.FindPiece(col)
	if p == nil {
		return geom.Vec{}, false
	}
	return p.pos, true
}

// isPlaced reports whether p sits between the centres of its own colours,
// ignoring how it is twisted.
func (c *Cube) isPlaced(p *Piece) bool {
	want := make(map[Color]bool, 3)
	for _, col := range p.ColorSet() {
		want[col] = true
	}
	for i, v := range p.pos.Components() {
		if v == 0 {
			continue
		}
		center := c.centerColor(geom.Vec{}.With(i, v))
		if !want[center] {
			return false
		}
	}
	return true
}

// faces reports whether the sticker of colour col on p points the same way
// as the centre of that colour.
func (c *Cube) faces(p *Piece, col Color) bool {
	pos, ok := c.centerPos(col)
	if !ok {
		return false
	}
	slot := pos.AxisIndex()
	return p.colors[slot] == col && p.pos.Component(slot) == pos.Component(slot)
}

// isHome reports whether p is placed and every sticker faces its centre.
func (c *Cube) isHome(p *Piece) bool {
	for _, col := range p.ColorSet() {
		if !c.faces(p, col) {
			return false
		}
	}
	return true
}

// piecesWith returns the pieces of type t carrying col, optionally
// excluding those that also carry without.
func (c *Cube) piecesWith(t PieceType, col, without Color) []*Piece {
	return c.Select(func(p *Piece) bool {
		return p.Type() == t && p.HasColor(col) && !p.HasColor(without)
	})
}

func all(pieces []*Piece, pred func(*Piece) bool) bool {
	for _, p := range pieces {
		if !pred(p) {
			return false
		}
	}
	return len(pieces) > 0
}

// IsCrossComplete checks the four edges carrying front sit home.
func (c *Cube) IsCrossComplete(front Color) bool {
	return all(c.piecesWith(EdgePiece, front, NoColor), c.isHome)
}

// IsFirstLayerComplete checks the four corners carrying front sit home.
func (c *Cube) IsFirstLayerComplete(front Color) bool {
	return all(c.piecesWith(CornerPiece, front, NoColor), c.isHome)
}

// IsSecondLayerComplete checks the four edges touching neither front nor
// back sit home.
func (c *Cube) IsSecondLayerComplete(front Color) bool {
	back := c.oppositeColor(front)
	return all(c.Select(func(p *Piece) bool {
		return p.Type() == EdgePiece && !p.HasColor(front) && !p.HasColor(back)
	}), c.isHome)
}

// IsBackCrossComplete checks the four back edges show the back colour on
// the back face, wherever they are.
func (c *Cube) IsBackCrossComplete(front Color) bool {
	back := c.oppositeColor(front)
	return all(c.piecesWith(EdgePiece, back, NoColor), func(p *Piece) bool {
		return c.faces(p, back)
	})
}

// AreBackCornersPositioned checks the four back corners sit between their
// own centres.
func (c *Cube) AreBackCornersPositioned(front Color) bool {
	back := c.oppositeColor(front)
	return all(c.piecesWith(CornerPiece, back, NoColor), c.isPlaced)
}

// AreBackCornersOriented checks the four back corners sit home.
func (c *Cube) AreBackCornersOriented(front Color) bool {
	back := c.oppositeColor(front)
	return all(c.piecesWith(CornerPiece, back, NoColor), c.isHome)
}

// oppositeColor returns the centre colour across from col's centre.
func (c *Cube) oppositeColor(col Color) Color {
	pos, ok := c.centerPos(col)
	if !ok {
		return NoColor
	}
	return c.centerColor(pos.Scale(-1))
}

// DetectPhase returns the furthest stage reached with front as the
// first-layer colour. The first three stages are cumulative. Past the second
// layer the back-corner stages take precedence over the back cross, since
// corner algorithms are free to flip back edges that get fixed at the end.
func (c *Cube) DetectPhase(front Color) DetectedPhase {
	if c.IsSolved() {
		return PhaseSolved
	}

	layers := []func(Color) bool{
		c.IsCrossComplete,
		c.IsFirstLayerComplete,
		c.IsSecondLayerComplete,
	}
	phase := PhaseScrambled
	for _, check := range layers {
		if !check(front) {
			return phase
		}
		phase++
	}

	switch {
	case c.AreBackCornersOriented(front):
		return PhaseCornersOriented
	case c.AreBackCornersPositioned(front):
		return PhaseCornersPositioned
	case c.IsBackCrossComplete(front):
		return PhaseBackCross
	}
	return PhaseSecondLayer
}

// GetProgress evaluates every stage on its own.
func (c *Cube) GetProgress(front Color) PhaseProgress {
	return PhaseProgress{
		Cross:             c.IsCrossComplete(front),
		FirstLayer:        c.IsFirstLayerComplete(front),
		SecondLayer:       c.IsSecondLayerComplete(front),
		BackCross:         c.IsBackCrossComplete(front),
		CornersPositioned: c.AreBackCornersPositioned(front),
		CornersOriented:   c.AreBackCornersOriented(front),
		Solved:            c.IsSolved(),
	}
}
