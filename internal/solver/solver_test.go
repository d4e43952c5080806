package solver

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"pgregory.net/rapid"

	"github.com/SeamusWaldron/cubesolver/internal/analysis"
	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

func TestSolveSolvedCube(t *testing.T) {
	c := cube.NewSolved()
	res, err := New(c).Solve()
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() {
		t.Error("cube should still be solved")
		t.Log(c.String())
	}
	if len(res.Moves) == 0 {
		t.Error("the method always runs its algorithms, even on a solved cube")
	}
}

func TestSolveRandomScrambles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scramble := rapid.SliceOfN(rapid.SampledFrom(types.QuarterTurns()), 1, 50).Draw(t, "scramble")

		c := cube.NewSolved()
		c.ApplyMoves(scramble)
		start := c.Clone()

		s := New(c)
		res, err := s.Solve()
		if err != nil {
			t.Fatalf("scramble %v: %v", scramble, err)
		}
		if !c.IsSolved() {
			t.Fatalf("scramble %v: cube not solved:\n%s", scramble, c)
		}

		total := 0
		for _, n := range res.PhaseMoves {
			total += n
		}
		if total != len(res.Moves) || len(res.Moves) != len(s.Moves()) {
			t.Fatalf("phase counts %v do not add up to %d moves", res.PhaseMoves, len(res.Moves))
		}

		// the log alone must reproduce the solve, raw or optimized
		replay := start.Clone()
		replay.ApplyMoves(res.Moves)
		if !replay.IsSolved() {
			t.Fatal("replaying the move log does not solve the cube")
		}
		replay = start.Clone()
		replay.ApplyMoves(analysis.OptimizeMoves(res.Moves))
		if !replay.IsSolved() {
			t.Fatal("replaying the optimized log does not solve the cube")
		}
	})
}

func TestSolveWithScrambleRotations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scramble := rapid.SliceOfN(rapid.SampledFrom(types.AllMoves()), 1, 50).Draw(t, "scramble")
		c := cube.NewSolved()
		c.ApplyMoves(scramble)
		if _, err := New(c).Solve(); err != nil {
			t.Fatalf("scramble %v: %v", scramble, err)
		}
		if !c.IsSolved() {
			t.Fatalf("scramble %v: cube not solved", scramble)
		}
	})
}

// Each phase must leave the cube at least at the matching stage, measured
// against the colour that started on the front.
func TestPhasesReachTheirStage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scramble := rapid.SliceOfN(rapid.SampledFrom(types.QuarterTurns()), 1, 50).Draw(t, "scramble")
		c := cube.NewSolved()
		c.ApplyMoves(scramble)
		front := c.FrontColor()

		var failures []string
		cb := func(p Phase, moveCount int) {
			want := cube.DetectedPhase(int(p) + 1)
			if got := c.DetectPhase(front); got < want {
				failures = append(failures, p.String()+" reached only "+got.String())
			}
		}
		if _, err := New(c, WithPhaseCallback(cb)).Solve(); err != nil {
			t.Fatal(err)
		}
		if len(failures) > 0 {
			t.Fatalf("scramble %v: %v", scramble, failures)
		}
	})
}

func TestPhaseCallbackOrder(t *testing.T) {
	c := cube.NewSolved()
	c.Sequence("R U Fi L D B M")

	var phases []Phase
	var counts []int
	s := New(c, WithPhaseCallback(func(p Phase, moveCount int) {
		phases = append(phases, p)
		counts = append(counts, moveCount)
	}))
	res, err := s.Solve()
	if err != nil {
		t.Fatal(err)
	}

	if len(phases) != len(Phases()) {
		t.Fatalf("callbacks = %v", phases)
	}
	for i, p := range Phases() {
		if phases[i] != p {
			t.Errorf("callback %d = %s, want %s", i, phases[i], p)
		}
	}
	if counts[len(counts)-1] != len(res.Moves) {
		t.Errorf("last callback saw %d moves, log has %d", counts[len(counts)-1], len(res.Moves))
	}
}

func TestSolveAnyColourLabels(t *testing.T) {
	c := cube.NewSolved()
	c.Sequence("R U Ri Ui F B L D M E S")
	relabelled := strings.NewReplacer("O", "1", "Y", "2", "W", "3", "G", "4", "B", "5", "R", "6").Replace(c.FlatString())

	rc, err := cube.New(relabelled)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(rc).Solve(); err != nil {
		t.Fatal(err)
	}
	if !rc.IsSolved() {
		t.Error("relabelled cube not solved")
	}
}

func TestTwistedCornerIsStuck(t *testing.T) {
	s := []byte(cube.SolvedFlat)
	// twist the up-front-right corner in place
	s[15], s[8], s[14] = 'O', 'W', 'G'
	c, err := cube.New(string(s))
	if err != nil {
		t.Fatal(err)
	}

	solver := New(c)
	_, err = solver.Solve()
	if !errors.Is(err, ErrStuck) {
		t.Fatalf("err = %v", err)
	}
	var stuck *StuckError
	if !errors.As(err, &stuck) {
		t.Fatal("error should be a *StuckError")
	}
	if stuck.Snapshot == "" || stuck.Reason == "" {
		t.Errorf("stuck error carries no diagnostics: %+v", stuck)
	}
	if len(solver.Moves()) == 0 {
		t.Error("moves made before getting stuck should stay in the log")
	}
}

func TestMissingPieceIsStuck(t *testing.T) {
	s := []byte(cube.SolvedFlat)
	s[5] = 'Z' // the up-right edge no longer carries the up colour
	c, err := cube.New(string(s))
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(c).Solve()
	var stuck *StuckError
	if !errors.As(err, &stuck) {
		t.Fatalf("err = %v", err)
	}
	if stuck.Phase != PhaseSecondLayer {
		t.Errorf("stuck in %s, want %s", stuck.Phase, PhaseSecondLayer)
	}
}

func TestMaxIterationsOption(t *testing.T) {
	cfg := defaultConfig()
	WithMaxIterations(0)(cfg)
	if cfg.maxIterations != DefaultMaxIterations {
		t.Errorf("max iterations = %d", cfg.maxIterations)
	}
	WithMaxIterations(3)(cfg)
	if cfg.maxIterations != 3 {
		t.Errorf("max iterations = %d", cfg.maxIterations)
	}
}

func TestDebugLogging(t *testing.T) {
	l, hook := logrustest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	c := cube.NewSolved()
	c.Sequence("R U")
	res, err := New(c, WithLogger(l)).Solve()
	if err != nil {
		t.Fatal(err)
	}

	var done []logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "phase complete" {
			done = append(done, *e)
		}
	}
	if len(done) != len(Phases()) {
		t.Fatalf("got %d phase lines, want %d", len(done), len(Phases()))
	}

	// moves is the running total, phase_moves the count for that phase
	total := 0
	for i, e := range done {
		p := Phases()[i]
		if e.Data["phase"] != p.String() {
			t.Errorf("line %d phase = %v, want %s", i, e.Data["phase"], p)
		}
		total += res.PhaseMoves[p]
		if e.Data["phase_moves"] != res.PhaseMoves[p] || e.Data["moves"] != total {
			t.Errorf("%s: moves %v, phase_moves %v, want %d and %d",
				p, e.Data["moves"], e.Data["phase_moves"], total, res.PhaseMoves[p])
		}
	}
	if total != len(res.Moves) {
		t.Errorf("final total %d, want %d", total, len(res.Moves))
	}
}

func TestPhaseNames(t *testing.T) {
	for _, p := range Phases() {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v", p.String(), got, ok)
		}
		if p.DisplayName() == "Unknown" {
			t.Errorf("phase %d has no display name", int(p))
		}
	}
	if _, ok := ParsePhase("nope"); ok {
		t.Error("unknown phase parsed")
	}
}
