package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/recorder"
	"github.com/SeamusWaldron/cubesolver/internal/solver"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

var (
	solveScramble string
	solveRandom   bool
	solveLength   int
	solveSeed     int64
	solveNotes    string
	solveNoSave   bool
	solveStandard bool
	solveDescribe bool
	solveNet      bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [flat-state]",
	Short: "Solve a cube",
	Long: `Solve a cube given as a 54-sticker flat string, a scramble, or a random
scramble. The run is recorded to the database unless --no-save is given.

Examples:
  cubesolver solve OOOOOOOOOYYYWWWGGGBBBYYYWWWGGGBBBYYYWWWGGGBBBRRRRRRRRR
  cubesolver solve --scramble "R U Ri F2 x"
  cubesolver solve --random --length 30 --seed 7
  cubesolver solve --random --no-save --standard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveScramble, "scramble", "", "Scramble to apply to a solved cube (tokens or standard notation)")
	solveCmd.Flags().BoolVar(&solveRandom, "random", false, "Solve a random scramble")
	solveCmd.Flags().IntVar(&solveLength, "length", 0, "Random scramble length (default: scramble_length from config)")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "Random seed (default: time-based)")
	solveCmd.Flags().StringVar(&solveNotes, "notes", "", "Notes for this solve")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not record the run")
	solveCmd.Flags().BoolVar(&solveStandard, "standard", false, "Print moves in standard notation")
	solveCmd.Flags().BoolVar(&solveDescribe, "describe", false, "Describe each optimized move in words")
	solveCmd.Flags().BoolVar(&solveNet, "net", false, "Print the starting cube net")
}

// startingCube builds the cube to solve from the command line.
func startingCube(args []string) (*cube.Cube, []types.Move, error) {
	switch {
	case len(args) == 1:
		if solveScramble != "" || solveRandom {
			return nil, nil, fmt.Errorf("give either a flat state, --scramble or --random")
		}
		c, err := cube.New(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid cube state: %w", err)
		}
		return c, nil, nil

	case solveScramble != "":
		moves, err := notation.ParseStandard(solveScramble)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid scramble: %w", err)
		}
		c := cube.NewSolved()
		c.ApplyMoves(moves)
		return c, moves, nil

	case solveRandom:
		n := solveLength
		if n == 0 {
			n = cfg.ScrambleLength
		}
		if n < 0 {
			return nil, nil, fmt.Errorf("length cannot be negative")
		}
		moves := cube.Scramble(newRand(solveSeed), n)
		c := cube.NewSolved()
		c.ApplyMoves(moves)
		return c, moves, nil
	}

	return nil, nil, fmt.Errorf("nothing to solve: give a flat state, --scramble or --random")
}

func runSolve(cmd *cobra.Command, args []string) error {
	c, scramble, err := startingCube(args)
	if err != nil {
		return err
	}

	if len(scramble) > 0 {
		fmt.Printf("Scramble: %s\n", formatMoves(scramble, solveStandard))
	}
	if solveNet {
		fmt.Println(renderNet(c))
	}

	onPhase := func(p solver.Phase, total int) {
		log.WithFields(logrus.Fields{"phase": p.String(), "moves": total}).Info("phase complete")
	}

	if solveNoSave {
		start := time.Now()
		sol, err := cubesolver.Solve(c,
			cubesolver.WithOptimize(cfg.Optimize),
			cubesolver.WithLogger(log),
			cubesolver.WithPhaseCallback(onPhase),
		)
		if err != nil {
			return describeFailure(err)
		}
		counts := make([]phaseCount, 0, len(sol.PhaseMoves))
		for _, p := range solver.Phases() {
			counts = append(counts, phaseCount{p.DisplayName(), sol.PhaseMoves[p]})
		}
		printSolution(sol.Moves, sol.Optimized, counts, time.Since(start))
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session := recorder.NewSession(db,
		recorder.WithLogger(log),
		recorder.WithOptimize(cfg.Optimize),
		recorder.WithAppVersion(version),
		recorder.WithPhaseCallback(onPhase),
	)

	run, err := session.Record(c, scramble, solveNotes)
	if run != nil {
		fmt.Printf("Solve: %s\n", run.SolveID)
	}
	if err != nil {
		return describeFailure(err)
	}

	var counts []phaseCount
	for _, seg := range run.Segments {
		name := seg.PhaseKey
		if p, ok := solver.ParsePhase(seg.PhaseKey); ok {
			name = p.DisplayName()
		}
		counts = append(counts, phaseCount{name, seg.MoveCount})
	}
	printSolution(run.Moves, run.Optimized, counts, run.Duration)

	fmt.Println()
	fmt.Printf("Replay: cubesolver replay %s\n", shortID(run.SolveID))
	return nil
}

type phaseCount struct {
	name  string
	moves int
}

func printSolution(raw, optimized []types.Move, phases []phaseCount, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(titleStyle.Render("Solved"))
	fmt.Printf("Time:      %s\n", formatDuration(elapsed))
	fmt.Printf("Moves:     %d\n", len(raw))
	fmt.Printf("Optimized: %d\n", len(optimized))
	fmt.Println()

	fmt.Println(underline("Phases"))
	for _, p := range phases {
		fmt.Printf("  %-24s %4d\n", p.name, p.moves)
	}
	fmt.Println()

	fmt.Println(underline("Solution"))
	printMoves(optimized, solveStandard, "  ")

	if solveDescribe {
		fmt.Println()
		fmt.Println(underline("Steps"))
		for i, m := range optimized {
			fmt.Printf("  %3d. %-3s %s\n", i+1, m, notation.Describe(m))
		}
	}
}

func describeFailure(err error) error {
	var stuck *solver.StuckError
	if !errors.As(err, &stuck) {
		return err
	}

	fmt.Println(errorStyle.Render(fmt.Sprintf("Stuck in %s: %s", stuck.Phase.DisplayName(), stuck.Reason)))
	fmt.Println(strings.TrimRight(stuck.Snapshot, "\n"))
	return fmt.Errorf("cube could not be solved; check the input state")
}
