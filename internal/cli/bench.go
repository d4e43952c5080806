package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

var (
	benchCount  int
	benchLength int
	benchSeed   int64
	benchNoSave bool
	benchNGramN int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Solve many random scrambles and report statistics",
	Long: `Solve a batch of random scrambles, verify every solution, and print move
statistics per phase together with the move sequences that recur most across
the optimized solutions.

Examples:
  cubesolver bench -n 100
  cubesolver bench -n 1000 --seed 1 --no-save`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 50, "Number of scrambles to solve")
	benchCmd.Flags().IntVar(&benchLength, "length", 0, "Scramble length (default: scramble_length from config)")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 0, "Random seed (default: time-based)")
	benchCmd.Flags().BoolVar(&benchNoSave, "no-save", false, "Do not record the runs")
	benchCmd.Flags().IntVar(&benchNGramN, "ngram", 8, "Length of recurring sequences to report")
}

// benchStats accumulates results over a batch of solves.
type benchStats struct {
	runs      int
	stuck     int
	invalid   int
	raw       []int
	optimized []int
	phases    map[solver.Phase][]int
	ngrams    map[string]*analysis.NGramReport
	elapsed   time.Duration
}

func newBenchStats() *benchStats {
	return &benchStats{
		phases: make(map[solver.Phase][]int),
		ngrams: make(map[string]*analysis.NGramReport),
	}
}

// add records one successful solve. start is the state before solving.
func (b *benchStats) add(id string, start *cube.Cube, raw, optimized []types.Move, phaseMoves map[solver.Phase]int, ngramN int) {
	b.runs++
	check := start.Clone()
	check.ApplyMoves(optimized)
	if !check.IsSolved() {
		b.invalid++
	}

	b.raw = append(b.raw, len(raw))
	b.optimized = append(b.optimized, len(optimized))
	for p, n := range phaseMoves {
		b.phases[p] = append(b.phases[p], n)
	}
	if ngramN > 0 {
		b.ngrams[id] = analysis.MineNGrams(optimized, ngramN, ngramN, 10)
	}
}

func minMaxAvg(xs []int) (lo, hi int, avg float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	lo, hi = xs[0], xs[0]
	sum := 0
	for _, x := range xs {
		lo = min(lo, x)
		hi = max(hi, x)
		sum += x
	}
	return lo, hi, float64(sum) / float64(len(xs))
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchCount <= 0 {
		return fmt.Errorf("count must be positive")
	}
	n := benchLength
	if n == 0 {
		n = cfg.ScrambleLength
	}
	if n < 0 {
		return fmt.Errorf("length cannot be negative")
	}
	rng := newRand(benchSeed)
	stats := newBenchStats()

	var session *recorder.Session
	if !benchNoSave {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		session = recorder.NewSession(db,
			recorder.WithLogger(log),
			recorder.WithOptimize(cfg.Optimize),
			recorder.WithAppVersion(version),
		)
	}

	began := time.Now()
	for i := 0; i < benchCount; i++ {
		scramble := cube.Scramble(rng, n)
		c := cube.NewSolved()
		c.ApplyMoves(scramble)
		start := c.Clone()

		if session != nil {
			run, err := session.Record(c, scramble, fmt.Sprintf("bench %d/%d", i+1, benchCount))
			if errors.Is(err, solver.ErrStuck) {
				stats.stuck++
				continue
			}
			if err != nil {
				return err
			}
			phaseMoves := make(map[solver.Phase]int)
			for _, seg := range run.Segments {
				if p, ok := solver.ParsePhase(seg.PhaseKey); ok {
					phaseMoves[p] = seg.MoveCount
				}
			}
			stats.add(run.SolveID, start, run.Moves, run.Optimized, phaseMoves, benchNGramN)
			continue
		}

		sol, err := cubesolver.Solve(c, cubesolver.WithOptimize(cfg.Optimize), cubesolver.WithLogger(log))
		if err != nil {
			log.WithError(err).WithField("scramble", formatMoves(scramble, false)).Warn("solve failed")
			stats.stuck++
			continue
		}
		stats.add(fmt.Sprintf("run-%d", i+1), start, sol.Moves, sol.Optimized, sol.PhaseMoves, benchNGramN)
	}
	stats.elapsed = time.Since(began)

	printBench(stats)
	if stats.stuck > 0 || stats.invalid > 0 {
		return fmt.Errorf("%d stuck, %d invalid solutions", stats.stuck, stats.invalid)
	}
	return nil
}

func printBench(b *benchStats) {
	fmt.Println(titleStyle.Render("Benchmark"))
	fmt.Println()
	fmt.Printf("Solved:   %d/%d in %s\n", b.runs-b.invalid, b.runs+b.stuck, formatDuration(b.elapsed))
	if b.runs > 0 {
		fmt.Printf("Per solve: %s\n", formatDuration(b.elapsed/time.Duration(b.runs+b.stuck)))
	}
	if b.stuck > 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Stuck:    %d", b.stuck)))
	}
	if b.invalid > 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Invalid:  %d", b.invalid)))
	}
	fmt.Println()

	fmt.Printf("  %-24s %8s %6s %6s\n", "", "Avg", "Min", "Max")
	lo, hi, avg := minMaxAvg(b.raw)
	fmt.Printf("  %-24s %8.1f %6d %6d\n", "Raw moves", avg, lo, hi)
	lo, hi, avg = minMaxAvg(b.optimized)
	fmt.Printf("  %-24s %8.1f %6d %6d\n", "Optimized moves", avg, lo, hi)
	fmt.Println()

	fmt.Println(underline("Phases"))
	for _, p := range solver.Phases() {
		lo, hi, avg := minMaxAvg(b.phases[p])
		fmt.Printf("  %-24s %8.1f %6d %6d\n", p.DisplayName(), avg, lo, hi)
	}

	if benchNGramN <= 0 || len(b.ngrams) == 0 {
		return
	}
	report := analysis.MineNGramsAcrossSolves(b.ngrams, benchNGramN, benchNGramN, 5)
	if top := report.TopNGrams[benchNGramN]; len(top) > 0 {
		fmt.Println()
		fmt.Println(underline(fmt.Sprintf("Recurring %d-move sequences", benchNGramN)))
		for _, ng := range top {
			fmt.Printf("  %5dx  %s\n", ng.Count, moveStyle.Render(strings.Join(ng.Sequence, " ")))
		}
	}
}
