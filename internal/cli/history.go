package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var (
	listLimit    int
	showStandard bool
	showNet      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent solves",
	Long:  `Display a list of recorded solves with basic statistics.`,
	RunE:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a solve including:
- Solve metadata (status, duration, scramble)
- Phase breakdown with the moves of each phase
- The optimized solution

IDs may be abbreviated. Without an ID the most recent solve is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics over all solves",
	RunE:  runStats,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a recorded solve",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solves to display")

	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showStandard, "standard", false, "Print moves in standard notation")
	showCmd.Flags().BoolVar(&showNet, "net", false, "Print the starting cube net")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Solve a cube with: cubesolver solve --random")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-8s  %-19s  %-8s  %-10s  %6s  %6s  %s\n", "ID", "Started", "Status", "Duration", "Moves", "Opt", "Notes")
	fmt.Println("--------  -------------------  --------  ----------  ------  ------  -----")

	for _, s := range solves {
		duration := "-"
		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}

		notes := ""
		if s.Notes != nil {
			notes = truncate(*s.Notes, 30)
		}

		fmt.Printf("%-8s  %-19s  %-8s  %-10s  %6d  %6d  %s\n",
			shortID(s.SolveID),
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Status,
			duration,
			s.RawMoveCount,
			s.OptimizedMoveCount,
			notes,
		)
	}

	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var id string
	if len(args) > 0 {
		id = args[0]
	}
	run, err := resolveRun(db, id)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Solve Details"))
	fmt.Println()
	fmt.Printf("ID:       %s\n", run.SolveID)
	fmt.Printf("Started:  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Status:   %s\n", run.Status)
	if run.StuckPhase != "" {
		fmt.Printf("Stuck in: %s\n", errorStyle.Render(run.StuckPhase))
	}
	fmt.Printf("Duration: %s\n", formatDuration(run.Duration))
	if len(run.Scramble) > 0 {
		fmt.Printf("Scramble: %s\n", formatMoves(run.Scramble, showStandard))
	}
	if run.Notes != "" {
		fmt.Printf("Notes:    %s\n", run.Notes)
	}
	fmt.Println()

	if showNet {
		fmt.Println(renderNet(run.Start))
	}

	sum := run.Summary()
	fmt.Println(underline("Statistics"))
	fmt.Printf("Moves:      %d\n", sum.TotalMoves)
	fmt.Printf("Optimized:  %d\n", sum.OptimizedMoves)
	fmt.Printf("Efficiency: %.1f%%\n", sum.Efficiency*100)
	fmt.Println()

	if len(run.Segments) > 0 {
		fmt.Println(underline("Phases"))
		for _, p := range sum.PhaseStats {
			fmt.Printf("\n%s (%d moves, %.1f%%)\n", phaseStyle.Render(p.DisplayName), p.MoveCount, p.Share*100)
			if p.MoveCount > 0 {
				printMoves(run.Moves[p.StartIndex:p.EndIndex+1], showStandard, "  ")
			}
		}
		fmt.Println()
	}

	fmt.Println(underline("Optimized Solution"))
	printMoves(run.Optimized, showStandard, "  ")

	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := storage.NewSolveRepository(db).Stats()
	if err != nil {
		return err
	}
	if st.Total == 0 {
		fmt.Println("No finished solves recorded yet")
		return nil
	}

	fmt.Println(titleStyle.Render("Solve Statistics"))
	fmt.Println()
	fmt.Printf("Runs:           %d (%d solved, %d stuck)\n", st.Total, st.Solved, st.Stuck)
	fmt.Printf("Avg moves:      %.1f\n", st.AvgRawMoves)
	fmt.Printf("Avg optimized:  %.1f (min %d, max %d)\n", st.AvgOptimized, st.MinOptimized, st.MaxOptimized)
	fmt.Printf("Avg duration:   %s\n", formatDuration(time.Duration(st.AvgDurationMs*float64(time.Millisecond))))
	fmt.Println()

	avgs, err := storage.NewPhaseRepository(db).GetPhaseAverages()
	if err != nil {
		return err
	}
	fmt.Println(underline("Phases (solved runs)"))
	fmt.Printf("  %-24s %8s %6s %6s\n", "Phase", "Avg", "Min", "Max")
	for _, a := range avgs {
		fmt.Printf("  %-24s %8.1f %6d %6d\n", a.DisplayName, a.AvgMoves, a.MinMoves, a.MaxMoves)
	}

	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := recorder.Resolve(db, args[0])
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("solve not found: %s", args[0])
	}

	if err := storage.NewSolveRepository(db).Delete(run.SolveID); err != nil {
		return err
	}
	fmt.Printf("Deleted solve %s\n", run.SolveID)
	return nil
}
