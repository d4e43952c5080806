// Package solver solves a cube with a fixed layer-by-layer method: a cross
// and corners on the front face, the middle layer, then the back layer in
// four steps. Solutions are long but the method never searches, so every
// phase finishes in bounded time.
package solver

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/geom"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// Result is the outcome of a successful solve.
type Result struct {
	Moves      []types.Move
	PhaseMoves map[Phase]int
}

// Solver drives a cube to the solved state, logging every move it makes.
// It mutates the cube it was given.
type Solver struct {
	cube  *cube.Cube
	cfg   *config
	log   logrus.FieldLogger
	moves []types.Move
	phase Phase

	// centres picked by colour when the solver starts; their positions
	// change with every whole-cube rotation
	left, right, up, down *cube.Piece
}

// New creates a solver for c.
func New(c *cube.Cube, opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Solver{
		cube:  c,
		cfg:   cfg,
		log:   cfg.logger,
		left:  c.FindPiece(c.LeftColor()),
		right: c.FindPiece(c.RightColor()),
		up:    c.FindPiece(c.UpColor()),
		down:  c.FindPiece(c.DownColor()),
	}
}

// Moves returns a copy of the move log so far.
func (s *Solver) Moves() []types.Move {
	out := make([]types.Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// Cube returns the cube being solved.
func (s *Solver) Cube() *cube.Cube {
	return s.cube
}

// Solve runs every phase in order. On failure the cube is left where the
// failing phase stopped and Moves still holds everything applied.
func (s *Solver) Solve() (*Result, error) {
	steps := []struct {
		phase Phase
		run   func() error
	}{
		{PhaseCross, s.cross},
		{PhaseCrossCorners, s.crossCorners},
		{PhaseSecondLayer, s.secondLayer},
		{PhaseBackEdges, s.backEdges},
		{PhaseCornerPosition, s.cornerPosition},
		{PhaseCornerOrientation, s.cornerOrientation},
		{PhaseLastEdges, s.lastEdges},
	}

	s.log.WithField("cube", s.cube.FlatString()).Debug("solve started")

	result := &Result{PhaseMoves: make(map[Phase]int, len(steps))}
	for _, step := range steps {
		s.phase = step.phase
		start := len(s.moves)
		if err := step.run(); err != nil {
			s.log.WithFields(logrus.Fields{
				"phase": step.phase.String(),
				"moves": len(s.moves),
			}).WithError(err).Debug("phase failed")
			return nil, err
		}

		n := len(s.moves) - start
		result.PhaseMoves[step.phase] = n
		s.log.WithFields(logrus.Fields{
			"phase":       step.phase.String(),
			"phase_moves": n,
			"moves":       len(s.moves),
			"cube":        s.cube.FlatString(),
		}).Debug("phase complete")

		if s.cfg.phaseCallback != nil {
			s.cfg.phaseCallback(step.phase, len(s.moves))
		}
	}

	if !s.cube.IsSolved() {
		return nil, s.stuck("every phase finished but the cube is not solved")
	}

	result.Moves = s.Moves()
	return result, nil
}

// move is the only way the solver changes the cube: each token is applied
// and appended to the log.
func (s *Solver) move(moves ...types.Move) {
	for _, m := range moves {
		// every token the solver issues comes from the fixed tables below
		if err := s.cube.Apply(m); err != nil {
			panic(err)
		}
		s.moves = append(s.moves, m)
	}
}

func (s *Solver) stuck(format string, args ...any) error {
	return &StuckError{
		Phase:    s.phase,
		Reason:   fmt.Sprintf(format, args...),
		Snapshot: s.cube.String(),
	}
}

// spin applies m until done holds, at most limit times, and returns how
// many moves it took.
func (s *Solver) spin(m types.Move, limit int, done func() bool) (int, error) {
	count := 0
	for !done() {
		if count >= limit {
			return count, s.stuck("%s applied %d times without reaching the target", m, count)
		}
		s.move(m)
		count++
	}
	return count, nil
}

func (s *Solver) find(colors ...cube.Color) (*cube.Piece, error) {
	p := s.cube.FindPiece(colors...)
	if p == nil {
		return nil, s.stuck("no piece has colours %v", colors)
	}
	return p, nil
}

func (s *Solver) findAll(sets ...[]cube.Color) ([]*cube.Piece, error) {
	out := make([]*cube.Piece, len(sets))
	for i, colors := range sets {
		p, err := s.find(colors...)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

var seq = notation.MustParseSequence

// faceTurns maps each face axis to its clockwise and counter-clockwise turn.
var faceTurns = map[geom.Vec][2]types.Move{
	geom.Right: {types.R, types.Ri},
	geom.Left:  {types.L, types.Li},
	geom.Up:    {types.U, types.Ui},
	geom.Down:  {types.D, types.Di},
	geom.Front: {types.F, types.Fi},
	geom.Back:  {types.B, types.Bi},
}

func faceTurn(axis geom.Vec) (cw, cc types.Move) {
	t := faceTurns[axis]
	return t[0], t[1]
}

func repeat(m types.Move, n int) []types.Move {
	out := make([]types.Move, n)
	for i := range out {
		out[i] = m
	}
	return out
}

var (
	crossLeft        = seq("L L")
	crossLeftFlipped = seq("E L Ei Li")

	crossRight        = seq("R R")
	crossRightFlipped = seq("Ei R E Ri")
)

// cross places the four front edges, working on the left and right faces
// and turning the cube a quarter to reach up and down.
func (s *Solver) cross() error {
	front := s.cube.FrontColor()
	edges, err := s.findAll(
		[]cube.Color{front, s.cube.LeftColor()},
		[]cube.Color{front, s.cube.RightColor()},
		[]cube.Color{front, s.cube.UpColor()},
		[]cube.Color{front, s.cube.DownColor()},
	)
	if err != nil {
		return err
	}
	fl, fr, fu, fd := edges[0], edges[1], edges[2], edges[3]

	if err := s.crossEdge(fl, s.left, s.cube.LeftColor(), crossLeft, crossLeftFlipped); err != nil {
		return err
	}
	if err := s.crossEdge(fr, s.right, s.cube.RightColor(), crossRight, crossRightFlipped); err != nil {
		return err
	}
	s.move(types.Z)
	if err := s.crossEdge(fd, s.down, s.cube.LeftColor(), crossLeft, crossLeftFlipped); err != nil {
		return err
	}
	if err := s.crossEdge(fu, s.up, s.cube.RightColor(), crossRight, crossRightFlipped); err != nil {
		return err
	}
	s.move(types.Zi)
	return nil
}

// crossEdge brings edge to the back layer, turns it under the face centre
// and lifts it into the front layer with whichever insert matches its
// twist.
func (s *Solver) crossEdge(edge, face *cube.Piece, faceColor cube.Color, straight, flipped []types.Move) error {
	target := geom.V(face.Pos().X, face.Pos().Y, 1)
	if edge.Pos() == target && edge.Color(2) == s.cube.FrontColor() {
		return nil
	}

	var undo []types.Move
	switch pos := edge.Pos(); pos.Z {
	case 0:
		// middle layer: turn the up or down face it sits on
		cw, cc := faceTurn(pos.With(0, 0))
		if pos == geom.Left.Add(geom.Up) || pos == geom.Right.Add(geom.Down) {
			s.move(cw)
			undo = []types.Move{cc}
		} else {
			s.move(cc)
			undo = []types.Move{cw}
		}
	case 1:
		cw, cc := faceTurn(pos.With(2, 0))
		s.move(cc, cc)
		// an edge already under its centre but twisted must not be put back
		if edge.Pos().X != face.Pos().X {
			undo = []types.Move{cw, cw}
		}
	}
	if edge.Pos().Z != -1 {
		return s.stuck("cross edge %v did not reach the back layer", edge)
	}

	if _, err := s.spin(types.B, s.cfg.maxIterations, func() bool {
		return edge.Pos().X == face.Pos().X && edge.Pos().Y == face.Pos().Y
	}); err != nil {
		return err
	}
	s.move(undo...)

	if edge.Color(0) == faceColor {
		s.move(straight...)
	} else {
		s.move(flipped...)
	}
	return nil
}

var (
	cornerBackX = seq("B D Bi Di")
	cornerBackY = seq("Bi Ri B R")
	cornerBackZ = seq("Ri B B R Bi Bi D Bi Di")
)

// crossCorners places the four front corners, each from the
// front-right-down slot with a quarter cube turn between them.
func (s *Solver) crossCorners() error {
	front := s.cube.FrontColor()
	l, r, u, d := s.cube.LeftColor(), s.cube.RightColor(), s.cube.UpColor(), s.cube.DownColor()
	corners, err := s.findAll(
		[]cube.Color{front, r, d},
		[]cube.Color{front, r, u},
		[]cube.Color{front, l, u},
		[]cube.Color{front, l, d},
	)
	if err != nil {
		return err
	}

	slots := []struct {
		corner, right, down *cube.Piece
	}{
		{corners[0], s.right, s.down},
		{corners[1], s.up, s.right},
		{corners[2], s.left, s.up},
		{corners[3], s.down, s.left},
	}
	for _, slot := range slots {
		if err := s.placeCorner(slot.corner, slot.right, slot.down, s.cube.FrontColor()); err != nil {
			return err
		}
		s.move(types.Z)
	}
	return nil
}

// placeCorner moves corner into the front-right-down slot, where right and
// down are the centres currently on those faces.
func (s *Solver) placeCorner(corner, right, down *cube.Piece, front cube.Color) error {
	if corner.Pos().Z == 1 {
		// lift it out through the up or down face, then put that face back
		cw, cc := faceTurn(geom.V(0, corner.Pos().Y, 0))
		toBack := func() bool { return corner.Pos().Z == -1 }

		undo := cc
		count, err := s.spin(cw, s.cfg.maxIterations, toBack)
		if err != nil {
			return err
		}
		if count > 1 {
			// the other direction needs one turn; a half turn would
			// disturb a placed corner
			s.move(repeat(cc, count)...)
			count, err = s.spin(cc, s.cfg.maxIterations, toBack)
			if err != nil {
				return err
			}
			undo = cw
		}
		s.move(types.B)
		s.move(repeat(undo, count)...)
	}

	if _, err := s.spin(types.B, s.cfg.maxIterations, func() bool {
		return corner.Pos().X == right.Pos().X && corner.Pos().Y == down.Pos().Y
	}); err != nil {
		return err
	}

	switch {
	case corner.Color(0) == front:
		s.move(cornerBackX...)
	case corner.Color(1) == front:
		s.move(cornerBackY...)
	default:
		s.move(cornerBackZ...)
	}
	return nil
}

var (
	middleFromDown = seq("B L Bi Li Bi Di B D")
	middleFromLeft = seq("Bi Di B D B L Bi Li")
)

// secondLayer places the four middle edges through the left-down slot.
func (s *Solver) secondLayer() error {
	l, r, u, d := s.cube.LeftColor(), s.cube.RightColor(), s.cube.UpColor(), s.cube.DownColor()
	edges, err := s.findAll(
		[]cube.Color{l, d},
		[]cube.Color{r, d},
		[]cube.Color{r, u},
		[]cube.Color{l, u},
	)
	if err != nil {
		return err
	}

	for _, edge := range edges {
		if err := s.placeMiddleEdge(edge, s.cube.LeftColor(), s.cube.DownColor()); err != nil {
			return err
		}
		s.move(types.Z)
	}
	return nil
}

// placeMiddleEdge inserts edge into the left-down slot of the middle layer.
// An edge stuck in the wrong middle slot is first knocked out to the back.
func (s *Solver) placeMiddleEdge(edge *cube.Piece, left, down cube.Color) error {
	if edge.Pos().Z == 0 {
		count, err := s.spin(types.Z, s.cfg.maxIterations, func() bool {
			return edge.Pos().X == -1 && edge.Pos().Y == -1
		})
		if err != nil {
			return err
		}
		s.move(middleFromDown...)
		s.move(repeat(types.Zi, count)...)
	}
	if edge.Pos().Z != -1 {
		return s.stuck("middle edge %v did not reach the back layer", edge)
	}

	switch edge.Color(2) {
	case left:
		if _, err := s.spin(types.B, s.cfg.maxIterations, func() bool { return edge.Pos().Y == -1 }); err != nil {
			return err
		}
		s.move(middleFromDown...)
	case down:
		if _, err := s.spin(types.B, s.cfg.maxIterations, func() bool { return edge.Pos().X == -1 }); err != nil {
			return err
		}
		s.move(middleFromLeft...)
	default:
		return s.stuck("middle edge %v shows neither %s nor %s on the back", edge, left, down)
	}
	return nil
}
