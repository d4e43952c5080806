package solver

import (
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/geom"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// The back-layer phases turn the cube over with X X so the unsolved layer
// faces front, and turn it back with Xi Xi when done.
var (
	flipOver = seq("X X")
	flipBack = seq("Xi Xi")
)

// sticker reports whether the piece at (x, y, 1) shows the front colour in
// the given axis slot.
func (s *Solver) sticker(x, y, slot int) bool {
	p := s.cube.PieceAt(geom.V(x, y, 1))
	return p != nil && p.Color(slot) == s.cube.FrontColor()
}

var (
	backEdgesL    = seq("D F R Fi Ri Di")
	backEdgesLine = seq("D R F Ri Fi Di")
)

// backEdges orients the back edges into a cross without placing them.
//
//	state:  done   L      line   none
//	        -B-    -B-    ---    ---
//	        BBB    BB-    BBB    -B-
//	        -B-    ---    ---    ---
func (s *Solver) backEdges() error {
	s.move(flipOver...)

	for i := 0; ; i++ {
		up, left := s.sticker(0, 1, 2), s.sticker(-1, 0, 2)
		down, right := s.sticker(0, -1, 2), s.sticker(1, 0, 2)
		if up && left && down && right {
			break
		}
		if i >= s.cfg.maxIterations {
			return s.stuck("back edges not oriented after %d attempts", i)
		}

		switch {
		case !up && !left && !down && !right, up && left:
			s.move(backEdgesL...)
		case left && right:
			s.move(backEdgesLine...)
		default:
			s.move(types.F)
		}
	}

	s.move(flipBack...)
	return nil
}

var (
	// corners numbered on the flipped-over front face:
	//  4-3
	//  ---
	//  2-1
	swapCorners12 = seq("Li Fi L D F Di Li F L F F")
	swapCorners13 = seq("F Li Fi L D F Di Li F L F")
)

func concat(parts ...[]types.Move) []types.Move {
	var out []types.Move
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// cornerPosition permutes the back corners into their slots, ignoring twist.
func (s *Solver) cornerPosition() error {
	s.move(flipOver...)

	f, l, r, u, d := s.cube.FrontColor(), s.cube.LeftColor(), s.cube.RightColor(), s.cube.UpColor(), s.cube.DownColor()
	corners, err := s.findAll(
		[]cube.Color{f, r, d},
		[]cube.Color{f, l, d},
		[]cube.Color{f, r, u},
		[]cube.Color{f, l, u},
	)
	if err != nil {
		return err
	}
	c1, c2, c3, c4 := corners[0], corners[1], corners[2], corners[3]

	var (
		topLeft     = geom.V(-1, 1, 1)
		topRight    = geom.V(1, 1, 1)
		bottomLeft  = geom.V(-1, -1, 1)
		bottomRight = geom.V(1, -1, 1)
	)

	switch c4.Pos() {
	case bottomRight:
		s.move(concat(swapCorners12, []types.Move{types.Zi}, swapCorners12, []types.Move{types.Z})...)
	case topRight:
		s.move(concat([]types.Move{types.Z}, swapCorners13, []types.Move{types.Zi})...)
	case bottomLeft:
		s.move(concat([]types.Move{types.Zi}, swapCorners12, []types.Move{types.Z})...)
	}
	if c4.Pos() != topLeft {
		return s.stuck("corner %v not at %v", c4, topLeft)
	}

	switch c2.Pos() {
	case topRight:
		s.move(concat(swapCorners13, swapCorners12)...)
	case bottomRight:
		s.move(swapCorners12...)
	}
	if c2.Pos() != bottomLeft {
		return s.stuck("corner %v not at %v", c2, bottomLeft)
	}

	if c3.Pos() == bottomRight {
		s.move(swapCorners13...)
	}
	if c3.Pos() != topRight || c1.Pos() != bottomRight {
		return s.stuck("corners %v and %v left swapped", c3, c1)
	}

	s.move(flipBack...)
	return nil
}

var (
	twistA = seq("Ri Fi R Fi Ri F F R F F")
	twistB = seq("R F Ri F R F F Ri F F")
)

type stickerCheck struct {
	x, y, slot int
}

// twistCases pairs each recognised arrangement of front-colour stickers on
// the flipped-over corners with the moves that advance it. The first match
// wins.
var twistCases = []struct {
	checks []stickerCheck
	moves  []types.Move
}{
	{[]stickerCheck{{1, 1, 1}, {-1, -1, 1}, {1, -1, 0}}, twistA},
	{[]stickerCheck{{-1, 1, 1}, {1, 1, 0}, {1, -1, 1}}, twistB},
	{[]stickerCheck{{-1, -1, 1}, {1, -1, 1}, {-1, 1, 2}, {1, 1, 2}}, concat(twistB, seq("F F"), twistA)},
	{[]stickerCheck{{-1, 1, 1}, {-1, -1, 1}, {1, 1, 2}, {1, -1, 2}}, concat(twistB, twistA)},
	{[]stickerCheck{{-1, 1, 1}, {1, -1, 0}}, concat(twistA, seq("F"), twistB)},
	{[]stickerCheck{{1, 1, 1}, {1, -1, 1}, {-1, -1, 0}, {-1, 1, 0}}, concat(twistA, seq("Fi"), twistA)},
	{[]stickerCheck{{1, 1, 0}, {1, -1, 0}, {-1, -1, 0}, {-1, 1, 0}}, concat(twistA, seq("F F"), twistA)},
}

func (s *Solver) matches(checks []stickerCheck) bool {
	for _, c := range checks {
		if !s.sticker(c.x, c.y, c.slot) {
			return false
		}
	}
	return true
}

// cornerOrientation twists the back corners until all show the back colour,
// then turns the layer to line them up with the centres.
func (s *Solver) cornerOrientation() error {
	s.move(flipOver...)

	allFacing := []stickerCheck{{1, 1, 2}, {1, -1, 2}, {-1, -1, 2}, {-1, 1, 2}}
	for i := 0; !s.matches(allFacing); i++ {
		if i >= s.cfg.maxIterations {
			return s.stuck("back corners not twisted after %d attempts", i)
		}

		applied := false
		for _, tc := range twistCases {
			if s.matches(tc.checks) {
				s.move(tc.moves...)
				applied = true
				break
			}
		}
		if !applied {
			s.move(types.F)
		}
	}

	// the cube is upside down, so this is the back-right-down corner
	corner, err := s.find(s.cube.FrontColor(), s.cube.RightColor(), s.cube.UpColor())
	if err != nil {
		return err
	}
	if _, err := s.spin(types.F, s.cfg.maxIterations, func() bool {
		return corner.Pos() == geom.V(1, 1, 1)
	}); err != nil {
		return err
	}

	s.move(flipBack...)
	return nil
}

var (
	edgeCycle = seq("R R F D Ui R R Di U F R R")
	hPattern  = seq("Ri S Ri Ri S S Ri Fi Fi R Si Si Ri Ri Si R Fi Fi")
	fishMove  = concat(seq("Di Li"), hPattern, seq("L D"))
)

// lastEdges permutes the back edges. It finishes as soon as the cube is
// solved, which may leave it turned over.
func (s *Solver) lastEdges() error {
	s.move(flipOver...)

	f := s.cube.FrontColor()
	edges, err := s.findAll(
		[]cube.Color{f, s.cube.RightColor()},
		[]cube.Color{f, s.cube.LeftColor()},
		[]cube.Color{f, s.cube.UpColor()},
		[]cube.Color{f, s.cube.DownColor()},
	)
	if err != nil {
		return err
	}

	anyCorrect := false
	for _, e := range edges {
		if e.Color(2) == s.cube.FrontColor() {
			anyCorrect = true
		}
	}
	if !anyCorrect {
		if err := s.setUpWithoutAnchor(); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if e.Color(2) == s.cube.FrontColor() {
			if err := s.setUpAnchor(); err != nil {
				return err
			}
			break
		}
	}

	for i := 0; !s.cube.IsSolved(); i++ {
		if i >= s.cfg.maxIterations {
			return s.stuck("back edges not permuted after %d attempts", i)
		}

		for k := 0; k < 4; k++ {
			if s.isFish() {
				s.move(fishMove...)
				if s.cube.IsSolved() {
					return nil
				}
			} else {
				s.move(types.Z)
			}
		}

		switch {
		case s.isHPattern():
			s.move(hPattern...)
		case s.isSideHPattern():
			s.move(types.Z)
			s.move(hPattern...)
			s.move(types.Zi)
		default:
			s.move(edgeCycle...)
		}
	}

	s.move(flipBack...)
	return nil
}

// setUpWithoutAnchor handles the case where no back edge faces the right
// way: line up the left edge with its centre and swap the rest.
func (s *Solver) setUpWithoutAnchor() error {
	count, err := s.spin(types.F, 4, func() bool {
		p := s.cube.PieceAt(geom.Left.Add(geom.Front))
		return p != nil && p.Color(2) == s.cube.LeftColor()
	})
	if err != nil {
		return err
	}
	s.move(hPattern...)
	s.move(repeat(types.Fi, count)...)
	return nil
}

// setUpAnchor cycles edges until one sits correctly, then turns the cube
// so it is on the left.
func (s *Solver) setUpAnchor() error {
	var anchor *cube.Piece
	for count := 0; ; {
		anchor = s.correctEdge()
		if anchor != nil {
			break
		}
		s.move(edgeCycle...)
		count++
		if count%3 == 0 {
			s.move(types.Z)
		}
		if count >= s.cfg.maxIterations {
			return s.stuck("no back edge in place after %d cycles", count)
		}
	}

	if _, err := s.spin(types.Z, s.cfg.maxIterations, func() bool {
		return anchor.Pos() == geom.V(-1, 0, 1)
	}); err != nil {
		return err
	}

	if !s.isCorrectAt(geom.Left, 0, s.cube.LeftColor()) {
		return s.stuck("anchor edge %v not in place on the left", anchor)
	}
	return nil
}

// isCorrectAt reports whether the edge at side+front shows the front colour
// forward and col on that side.
func (s *Solver) isCorrectAt(side geom.Vec, slot int, col cube.Color) bool {
	p := s.cube.PieceAt(side.Add(geom.Front))
	return p != nil && p.Color(2) == s.cube.FrontColor() && p.Color(slot) == col
}

func (s *Solver) correctEdge() *cube.Piece {
	sides := []struct {
		side geom.Vec
		slot int
		col  cube.Color
	}{
		{geom.Left, 0, s.cube.LeftColor()},
		{geom.Right, 0, s.cube.RightColor()},
		{geom.Up, 1, s.cube.UpColor()},
		{geom.Down, 1, s.cube.DownColor()},
	}
	for _, sd := range sides {
		if s.isCorrectAt(sd.side, sd.slot, sd.col) {
			return s.cube.PieceAt(sd.side.Add(geom.Front))
		}
	}
	return nil
}

// isHPattern: left and right edges swapped, up and down in place.
func (s *Solver) isHPattern() bool {
	at := func(x, y, slot int) cube.Color { return s.cube.PieceAt(geom.V(x, y, 1)).Color(slot) }
	return at(-1, 0, 0) != s.cube.LeftColor() &&
		at(1, 0, 0) != s.cube.RightColor() &&
		at(0, -1, 1) == s.cube.DownColor() &&
		at(0, 1, 1) == s.cube.UpColor()
}

// isSideHPattern: left and right in place, up and down flipped.
func (s *Solver) isSideHPattern() bool {
	at := func(x, y, slot int) cube.Color { return s.cube.PieceAt(geom.V(x, y, 1)).Color(slot) }
	return at(-1, 0, 0) == s.cube.LeftColor() &&
		at(1, 0, 0) == s.cube.RightColor() &&
		at(0, -1, 1) == s.cube.FrontColor() &&
		at(0, 1, 1) == s.cube.FrontColor()
}

func (s *Solver) isFish() bool {
	fd := s.cube.PieceAt(geom.Front.Add(geom.Down))
	fr := s.cube.PieceAt(geom.Front.Add(geom.Right))
	return fd.Color(2) == s.cube.DownColor() &&
		fr.Color(2) == s.cube.RightColor() &&
		fd.Color(1) == s.cube.FrontColor() &&
		fr.Color(0) == s.cube.FrontColor()
}
