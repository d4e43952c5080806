package recorder

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// Run is one recorded solver run.
type Run struct {
	SolveID    string
	StartedAt  time.Time
	Duration   time.Duration
	Status     string
	StuckPhase string
	Notes      string

	Start     *cube.Cube // state handed to the solver
	Scramble  []types.Move
	Moves     []types.Move
	Optimized []types.Move
	Segments  []storage.PhaseSegment
}

// Solved reports whether the run ended with a solved cube.
func (r *Run) Solved() bool {
	return r.Status == storage.StatusSolved
}

// Summary computes the move statistics of the run.
func (r *Run) Summary() *analysis.SolveSummary {
	stats := make([]analysis.PhaseStats, 0, len(r.Segments))
	for _, seg := range r.Segments {
		name := seg.PhaseKey
		if p, ok := solver.ParsePhase(seg.PhaseKey); ok {
			name = p.DisplayName()
		}
		stats = append(stats, analysis.PhaseStats{
			PhaseKey:    seg.PhaseKey,
			DisplayName: name,
			MoveCount:   seg.MoveCount,
		})
	}

	s := analysis.Summarize(r.Moves, r.Optimized, stats, r.Duration.Milliseconds())
	s.SolveID = r.SolveID
	s.StartedAt = r.StartedAt.Format(time.RFC3339)
	s.ScrambleLength = len(r.Scramble)
	s.Notes = r.Notes
	return s
}

// Load reads a recorded run back from the database. A missing solve yields
// nil, nil.
func Load(db *storage.DB, solveID string) (*Run, error) {
	solve, err := storage.NewSolveRepository(db).Get(solveID)
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, nil
	}
	return loadSolve(db, solve)
}

// LoadLast reads the most recent run, or nil if none is recorded.
func LoadLast(db *storage.DB) (*Run, error) {
	solve, err := storage.NewSolveRepository(db).GetLast()
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, nil
	}
	return loadSolve(db, solve)
}

// Resolve reads a run by full or abbreviated ID. An empty ID means the most
// recent run.
func Resolve(db *storage.DB, id string) (*Run, error) {
	if id == "" {
		return LoadLast(db)
	}
	solve, err := storage.NewSolveRepository(db).FindByPrefix(id)
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, nil
	}
	return loadSolve(db, solve)
}

func loadSolve(db *storage.DB, solve *storage.Solve) (*Run, error) {
	start, err := cube.New(solve.StartState)
	if err != nil {
		return nil, fmt.Errorf("solve %s has a bad start state: %w", solve.SolveID, err)
	}

	run := &Run{
		SolveID:   solve.SolveID,
		StartedAt: solve.StartedAt,
		Status:    solve.Status,
		Start:     start,
	}
	if solve.DurationMs != nil {
		run.Duration = time.Duration(*solve.DurationMs) * time.Millisecond
	}
	if solve.StuckPhase != nil {
		run.StuckPhase = *solve.StuckPhase
	}
	if solve.Notes != nil {
		run.Notes = *solve.Notes
	}
	if solve.ScrambleText != nil {
		run.Scramble, err = notation.ParseSequence(*solve.ScrambleText)
		if err != nil {
			return nil, fmt.Errorf("solve %s has a bad scramble: %w", solve.SolveID, err)
		}
	}

	moves := storage.NewMoveRepository(db)
	for _, l := range []struct {
		name string
		dst  *[]types.Move
	}{
		{storage.LogRaw, &run.Moves},
		{storage.LogOptimized, &run.Optimized},
	} {
		records, err := moves.GetBySolve(solve.SolveID, l.name)
		if err != nil {
			return nil, err
		}
		if *l.dst, err = storage.ToMoves(records); err != nil {
			return nil, err
		}
	}

	run.Segments, err = storage.NewPhaseRepository(db).GetPhaseSegments(solve.SolveID)
	if err != nil {
		return nil, err
	}

	return run, nil
}
