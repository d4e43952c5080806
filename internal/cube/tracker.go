package cube

import "github.com/SeamusWaldron/cubesolver/pkg/types"

// Tracker wraps a Cube and reports stage transitions as moves are applied.
type Tracker struct {
	initial       *Cube
	cube          *Cube
	front         Color
	lastPhase     DetectedPhase
	highestPhase  DetectedPhase // monotonic
	phaseCallback func(phase DetectedPhase, moveIndex int)
	moves         int
}

// NewTracker starts tracking a copy of start, measuring stages against the
// colour currently on its front face.
func NewTracker(start *Cube) *Tracker {
	t := &Tracker{
		initial: start.Clone(),
		front:   start.FrontColor(),
	}
	t.Reset()
	return t
}

// SetPhaseCallback sets a callback that fires when a new highest stage is
// reached. moveIndex counts the moves applied so far.
func (t *Tracker) SetPhaseCallback(cb func(phase DetectedPhase, moveIndex int)) {
	t.phaseCallback = cb
}

// Reset returns the tracker to its starting cube.
func (t *Tracker) Reset() {
	t.cube = t.initial.Clone()
	t.moves = 0
	t.lastPhase = t.cube.DetectPhase(t.front)
	t.highestPhase = t.lastPhase
}

// ApplyMove applies a move and checks for a stage transition.
func (t *Tracker) ApplyMove(m types.Move) error {
	if err := t.cube.Apply(m); err != nil {
		return err
	}
	t.moves++
	t.checkPhaseTransition()
	return nil
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []types.Move) error {
	for _, m := range moves {
		if err := t.ApplyMove(m); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) checkPhaseTransition() {
	t.lastPhase = t.cube.DetectPhase(t.front)

	// only a new high fires; algorithms routinely break earlier stages
	// for a few moves
	if t.lastPhase > t.highestPhase {
		t.highestPhase = t.lastPhase
		if t.phaseCallback != nil {
			t.phaseCallback(t.lastPhase, t.moves)
		}
	}
}

// CurrentPhase returns the stage of the cube right now. It can go backwards.
func (t *Tracker) CurrentPhase() DetectedPhase {
	return t.lastPhase
}

// HighestPhase returns the highest stage reached since the last Reset.
func (t *Tracker) HighestPhase() DetectedPhase {
	return t.highestPhase
}

// Front returns the colour stages are measured against.
func (t *Tracker) Front() Color {
	return t.front
}

// MoveCount returns the number of moves applied since the last Reset.
func (t *Tracker) MoveCount() int {
	return t.moves
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Cube returns the underlying cube for inspection.
func (t *Tracker) Cube() *Cube {
	return t.cube
}

// CubeString returns the unfolded net of the tracked cube.
func (t *Tracker) CubeString() string {
	return t.cube.String()
}
