package analysis

import "github.com/SeamusWaldron/cubesolver/pkg/types"

// Cancellation represents an immediate move cancellation (e.g., R followed by Ri).
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
}

// TripleRun represents three identical quarter turns that one reverse turn
// could replace.
type TripleRun struct {
	StartIndex  int    `json:"start_index"`
	Move        string `json:"move"`
	Replacement string `json:"replacement"`
}

// RotationPair represents a whole-cube rotation that is undone later in the
// log; both rotations can be removed by rewriting the moves in between.
type RotationPair struct {
	Index1   int    `json:"index1"`
	Index2   int    `json:"index2"`
	Rotation string `json:"rotation"`
}

// BackAndForthPattern represents alternating moves (e.g., R U R U R U).
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	TripleRuns             []TripleRun           `json:"triple_runs"`
	RotationPairs          []RotationPair        `json:"rotation_pairs"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	RotationCount          int                   `json:"rotation_count"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// AnalyzeRepetitions analyzes a move sequence for repetitions and wasted motion.
func AnalyzeRepetitions(moves []types.Move) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		TripleRuns:             []TripleRun{},
		RotationPairs:          []RotationPair{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}

	for _, m := range moves {
		if m.IsRotation() {
			report.RotationCount++
		}
	}

	if len(moves) < 2 {
		return report
	}

	for i := 0; i < len(moves)-1; i++ {
		m1, m2 := moves[i], moves[i+1]
		if m1.IsInverse(m2) {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  string(m1),
				Move2:  string(m2),
			})
			report.TotalWastedMoves += 2
		}
	}

	for i := 0; i+2 < len(moves); {
		if moves[i] == moves[i+1] && moves[i] == moves[i+2] {
			report.TripleRuns = append(report.TripleRuns, TripleRun{
				StartIndex:  i,
				Move:        string(moves[i]),
				Replacement: string(moves[i].Inverse()),
			})
			report.TotalWastedMoves += 2
			i += 3
			continue
		}
		i++
	}

	used := make([]bool, len(moves))
	for i, m := range moves {
		if !m.IsRotation() || used[i] {
			continue
		}
		j := indexOf(moves, m.Inverse(), i+1)
		for j >= 0 && used[j] {
			j = indexOf(moves, m.Inverse(), j+1)
		}
		if j < 0 {
			continue
		}
		used[i], used[j] = true, true
		report.RotationPairs = append(report.RotationPairs, RotationPair{
			Index1:   i,
			Index2:   j,
			Rotation: string(m),
		})
		report.TotalWastedMoves += 2
	}

	report.BackAndForthPatterns = findBackAndForth(moves)

	return report
}

// findBackAndForth finds alternating move patterns like R U R U R U.
func findBackAndForth(moves []types.Move) []BackAndForthPattern {
	var patterns []BackAndForthPattern

	if len(moves) < 4 {
		return patterns
	}

	i := 0
	for i < len(moves)-3 {
		a, b := moves[i], moves[i+1]
		if a == b {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j < len(moves)-1 && moves[j] == a && moves[j+1] == b {
			count++
			j += 2
		}

		// Require at least 3 repetitions to be noteworthy
		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{string(a), string(b)},
				Count:      count,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

// CalculateEfficiency calculates the efficiency ratio (optimized/original).
func CalculateEfficiency(original, optimized []types.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}
