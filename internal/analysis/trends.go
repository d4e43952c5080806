package analysis

import (
	"math"
	"sort"
	"time"
)

// RunData is the per-run input to AnalyzeTrends.
type RunData struct {
	SolveID        string
	StartedAt      time.Time
	DurationMs     int64
	RawMoves       int
	OptimizedMoves int
	PhaseMoves     map[string]int // raw moves per phase key
}

// TrendReport contains trend analysis across multiple solver runs.
type TrendReport struct {
	TotalRuns int       `json:"total_runs"`
	DateRange DateRange `json:"date_range"`

	AvgRawMoves       float64 `json:"avg_raw_moves"`
	AvgOptimizedMoves float64 `json:"avg_optimized_moves"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`

	// Best and worst by optimized move count.
	BestRun  RunStats `json:"best_run"`
	WorstRun RunStats `json:"worst_run"`

	// Reduction in optimized moves from the oldest to the newest quarter of
	// runs. Negative means solutions got longer.
	ImprovementPct   float64 `json:"improvement_pct"`
	ConsistencyScore float64 `json:"consistency_score"`

	PhaseTrends map[string]PhaseTrend `json:"phase_trends"`

	// Optimized move averages over the last 5, 10, 25 and 50 runs.
	RollingAvgs map[int]float64 `json:"rolling_averages"`

	Runs []RunStats `json:"runs"`
}

// DateRange represents a date range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RunStats represents one run in trend context.
type RunStats struct {
	SolveID        string `json:"solve_id"`
	Timestamp      string `json:"timestamp"`
	DurationMs     int64  `json:"duration_ms"`
	RawMoves       int    `json:"raw_moves"`
	OptimizedMoves int    `json:"optimized_moves"`
}

// PhaseTrend represents trends for a specific phase.
type PhaseTrend struct {
	PhaseKey       string  `json:"phase_key"`
	AvgMoves       float64 `json:"avg_moves"`
	MinMoves       int     `json:"min_moves"`
	MaxMoves       int     `json:"max_moves"`
	ImprovementPct float64 `json:"improvement_pct"`
}

var rollingWindows = []int{5, 10, 25, 50}

func toRunStats(r RunData) RunStats {
	return RunStats{
		SolveID:        r.SolveID,
		Timestamp:      r.StartedAt.Format(time.RFC3339),
		DurationMs:     r.DurationMs,
		RawMoves:       r.RawMoves,
		OptimizedMoves: r.OptimizedMoves,
	}
}

// AnalyzeTrends analyzes move counts across runs. The input is sorted by
// start time in place.
func AnalyzeTrends(runs []RunData) *TrendReport {
	report := &TrendReport{
		TotalRuns:   len(runs),
		PhaseTrends: make(map[string]PhaseTrend),
		RollingAvgs: make(map[int]float64),
		Runs:        make([]RunStats, 0, len(runs)),
	}

	if len(runs) == 0 {
		return report
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})

	report.DateRange = DateRange{
		Start: runs[0].StartedAt.Format(time.RFC3339),
		End:   runs[len(runs)-1].StartedAt.Format(time.RFC3339),
	}

	var totalRaw, totalOpt, totalDuration int64
	best, worst := 0, 0
	optimized := make([]float64, len(runs))

	for i, r := range runs {
		totalRaw += int64(r.RawMoves)
		totalOpt += int64(r.OptimizedMoves)
		totalDuration += r.DurationMs
		optimized[i] = float64(r.OptimizedMoves)
		report.Runs = append(report.Runs, toRunStats(r))

		if r.OptimizedMoves < runs[best].OptimizedMoves {
			best = i
		}
		if r.OptimizedMoves > runs[worst].OptimizedMoves {
			worst = i
		}
	}

	n := float64(len(runs))
	report.AvgRawMoves = float64(totalRaw) / n
	report.AvgOptimizedMoves = float64(totalOpt) / n
	report.AvgDurationMs = float64(totalDuration) / n
	report.BestRun = toRunStats(runs[best])
	report.WorstRun = toRunStats(runs[worst])

	report.ImprovementPct = quarterImprovement(optimized)
	report.ConsistencyScore = consistency(optimized)

	for _, w := range rollingWindows {
		if len(optimized) >= w {
			report.RollingAvgs[w] = mean(optimized[len(optimized)-w:])
		}
	}

	report.PhaseTrends = analyzePhaseTrends(runs)

	return report
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// quarterImprovement compares the oldest quarter of xs with the newest.
// Fewer than four values yield 0.
func quarterImprovement(xs []float64) float64 {
	if len(xs) < 4 {
		return 0
	}

	q := len(xs) / 4
	first := mean(xs[:q])
	last := mean(xs[len(xs)-q:])
	if first <= 0 {
		return 0
	}
	return (first - last) / first * 100
}

// consistency maps the coefficient of variation of xs onto 0-100, where 100
// means every value is equal.
func consistency(xs []float64) float64 {
	if len(xs) < 2 {
		return 100
	}

	m := mean(xs)
	if m <= 0 {
		return 100
	}
	var sumSquares float64
	for _, x := range xs {
		d := x - m
		sumSquares += d * d
	}
	cv := math.Sqrt(sumSquares/float64(len(xs))) / m

	return math.Max(0, math.Min(100, 100-cv*100))
}

func analyzePhaseTrends(runs []RunData) map[string]PhaseTrend {
	trends := make(map[string]PhaseTrend)

	// runs are in time order, so each series is too
	series := make(map[string][]float64)
	for _, r := range runs {
		for key, moves := range r.PhaseMoves {
			series[key] = append(series[key], float64(moves))
		}
	}

	for key, xs := range series {
		lo, hi := xs[0], xs[0]
		for _, x := range xs {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		trends[key] = PhaseTrend{
			PhaseKey:       key,
			AvgMoves:       mean(xs),
			MinMoves:       int(lo),
			MaxMoves:       int(hi),
			ImprovementPct: quarterImprovement(xs),
		}
	}

	return trends
}
