package solver

import (
	"errors"
	"fmt"
)

// ErrStuck matches any StuckError via errors.Is.
var ErrStuck = errors.New("solver: stuck")

// StuckError reports a phase that could not make progress: a bounded loop
// ran out of iterations or a piece ended up where no case handles it. The
// input cube is unsolvable or was corrupted. It is never retried.
type StuckError struct {
	Phase    Phase
	Reason   string
	Snapshot string // cube net at the point of failure
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("solver: stuck in %s: %s - unsolvable cube?\n%s", e.Phase, e.Reason, e.Snapshot)
}

// Is lets errors.Is(err, ErrStuck) match.
func (e *StuckError) Is(target error) bool {
	return target == ErrStuck
}
