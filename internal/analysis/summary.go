package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// SolveSummary contains statistics for a single solver run.
type SolveSummary struct {
	SolveID        string       `json:"solve_id"`
	StartedAt      string       `json:"started_at"`
	DurationMs     int64        `json:"duration_ms"`
	ScrambleLength int          `json:"scramble_length"`
	TotalMoves     int          `json:"total_moves"`
	OptimizedMoves int          `json:"optimized_moves"`
	Efficiency     float64      `json:"efficiency"`
	MovesPerSecond float64      `json:"moves_per_second"`
	WastedMoves    int          `json:"wasted_moves"`
	PhaseStats     []PhaseStats `json:"phase_stats,omitempty"`
	Notes          string       `json:"notes,omitempty"`
}

// PhaseStats contains statistics for a single solver phase.
type PhaseStats struct {
	PhaseKey    string  `json:"phase_key"`
	DisplayName string  `json:"display_name"`
	StartIndex  int     `json:"start_index"`
	EndIndex    int     `json:"end_index"`
	MoveCount   int     `json:"move_count"`
	Share       float64 `json:"share"`
}

// Summarize builds the move statistics of a run. Phases are given in solve
// order with the number of raw moves each issued.
func Summarize(raw, optimized []types.Move, phases []PhaseStats, durationMs int64) *SolveSummary {
	s := &SolveSummary{
		DurationMs:     durationMs,
		TotalMoves:     len(raw),
		OptimizedMoves: len(optimized),
		Efficiency:     CalculateEfficiency(raw, optimized),
		MovesPerSecond: CalculateMovesPerSecond(raw, durationMs),
		WastedMoves:    len(raw) - len(optimized),
	}

	index := 0
	for _, p := range phases {
		p.StartIndex = index
		p.EndIndex = index + p.MoveCount - 1
		if len(raw) > 0 {
			p.Share = float64(p.MoveCount) / float64(len(raw))
		}
		index += p.MoveCount
		s.PhaseStats = append(s.PhaseStats, p)
	}

	return s
}

// CalculateMovesPerSecond calculates how fast a log was produced.
func CalculateMovesPerSecond(moves []types.Move, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// MovementProfile analyzes which moves a log leans on.
type MovementProfile struct {
	MoveCounts     map[types.Move]int `json:"move_counts"`
	BaseCounts     map[types.Move]int `json:"base_counts"`
	FaceTurns      int                `json:"face_turns"`
	SliceTurns     int                `json:"slice_turns"`
	Rotations      int                `json:"rotations"`
	PrimeTurns     int                `json:"prime_turns"`
	MostUsedBase   types.Move         `json:"most_used_base"`
	BaseSequences  map[string]int     `json:"base_sequences"` // e.g., "RU" -> count
	LongestSameRun int                `json:"longest_same_run"`
}

// AnalyzeMovementProfile counts move kinds and adjacent base pairs.
func AnalyzeMovementProfile(moves []types.Move) *MovementProfile {
	profile := &MovementProfile{
		MoveCounts:    make(map[types.Move]int),
		BaseCounts:    make(map[types.Move]int),
		BaseSequences: make(map[string]int),
	}

	run := 0
	for i, m := range moves {
		profile.MoveCounts[m]++
		profile.BaseCounts[m.Base()]++

		switch {
		case m.IsRotation():
			profile.Rotations++
		case m.IsSlice():
			profile.SliceTurns++
		default:
			profile.FaceTurns++
		}
		if m.IsPrime() {
			profile.PrimeTurns++
		}

		if i > 0 {
			seq := string(moves[i-1].Base()) + string(m.Base())
			profile.BaseSequences[seq]++
		}

		if i > 0 && moves[i-1] == m {
			run++
		} else {
			run = 1
		}
		if run > profile.LongestSameRun {
			profile.LongestSameRun = run
		}
	}

	bases := make([]types.Move, 0, len(profile.BaseCounts))
	for base := range profile.BaseCounts {
		bases = append(bases, base)
	}
	sort.Slice(bases, func(i, j int) bool {
		ci, cj := profile.BaseCounts[bases[i]], profile.BaseCounts[bases[j]]
		if ci != cj {
			return ci > cj
		}
		return bases[i] < bases[j]
	})
	if len(bases) > 0 {
		profile.MostUsedBase = bases[0]
	}

	return profile
}
