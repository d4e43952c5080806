package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var (
	trendsLimit int
	trendsJSON  bool
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show how solution lengths change across recent solves",
	Long: `Analyze the most recent solved runs: average and rolling move counts, best
and worst runs, consistency, and per-phase changes between the oldest and the
newest quarter of runs.`,
	RunE: runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().IntVar(&trendsLimit, "limit", 100, "Number of recent solves to analyze")
	trendsCmd.Flags().BoolVar(&trendsJSON, "json", false, "Print the report as JSON")
}

// loadTrendData collects the solved runs among the latest limit solves.
func loadTrendData(db *storage.DB, limit int) ([]analysis.RunData, error) {
	solves, err := storage.NewSolveRepository(db).List(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}

	phaseRepo := storage.NewPhaseRepository(db)
	var runs []analysis.RunData
	for _, s := range solves {
		if s.Status != storage.StatusSolved {
			continue
		}
		segs, err := phaseRepo.GetPhaseSegments(s.SolveID)
		if err != nil {
			return nil, err
		}

		rd := analysis.RunData{
			SolveID:        s.SolveID,
			StartedAt:      s.StartedAt,
			RawMoves:       s.RawMoveCount,
			OptimizedMoves: s.OptimizedMoveCount,
			PhaseMoves:     make(map[string]int, len(segs)),
		}
		if s.DurationMs != nil {
			rd.DurationMs = *s.DurationMs
		}
		for _, seg := range segs {
			rd.PhaseMoves[seg.PhaseKey] = seg.MoveCount
		}
		runs = append(runs, rd)
	}
	return runs, nil
}

func runTrends(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := loadTrendData(db, trendsLimit)
	if err != nil {
		return err
	}
	report := analysis.AnalyzeTrends(runs)

	if trendsJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if report.TotalRuns == 0 {
		fmt.Println("No solved runs recorded yet")
		return nil
	}

	fmt.Println(titleStyle.Render("Solve Trends"))
	fmt.Println()
	fmt.Printf("Runs:          %d (%s to %s)\n", report.TotalRuns, report.DateRange.Start, report.DateRange.End)
	fmt.Printf("Avg moves:     %.1f raw, %.1f optimized\n", report.AvgRawMoves, report.AvgOptimizedMoves)
	fmt.Printf("Best:          %d moves (%s)\n", report.BestRun.OptimizedMoves, shortID(report.BestRun.SolveID))
	fmt.Printf("Worst:         %d moves (%s)\n", report.WorstRun.OptimizedMoves, shortID(report.WorstRun.SolveID))
	fmt.Printf("Improvement:   %+.1f%%\n", report.ImprovementPct)
	fmt.Printf("Consistency:   %.0f/100\n", report.ConsistencyScore)

	for _, w := range []int{5, 10, 25, 50} {
		if avg, ok := report.RollingAvgs[w]; ok {
			fmt.Printf("Last %-3d avg:  %.1f\n", w, avg)
		}
	}
	fmt.Println()

	fmt.Println(underline("Phases"))
	fmt.Printf("  %-24s %8s %6s %6s %8s\n", "Phase", "Avg", "Min", "Max", "Change")
	for _, p := range solver.Phases() {
		tr, ok := report.PhaseTrends[p.String()]
		if !ok {
			continue
		}
		fmt.Printf("  %-24s %8.1f %6d %6d %+7.1f%%\n", p.DisplayName(), tr.AvgMoves, tr.MinMoves, tr.MaxMoves, tr.ImprovementPct)
	}

	return nil
}
