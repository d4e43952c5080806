package analysis

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/SeamusWaldron/cubesolver/internal/cube"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

func TestOptimizeMovesLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"R", "R"},
		{"R R R", "Ri"},
		{"R Ri", ""},
		{"R R R R", ""},
		{"X R Xi", "R"},
		{"X U Xi", "F"},
		{"Xi F X", "U"},
		{"Y F Yi", "R"},
		{"Z Ri Zi", "Ui"},
		{"X U Xi X", "F X"},
		{"U R Ri Ui", ""},
		{"L L L U", "Li U"},
	}
	for _, tt := range tests {
		got := notation.FormatSequence(OptimizeMoves(notation.MustParseSequence(tt.in)))
		if got != tt.want {
			t.Errorf("OptimizeMoves(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptimizeMovesDoesNotAlias(t *testing.T) {
	in := []types.Move{types.R, types.R, types.R}
	OptimizeMoves(in)
	if !reflect.DeepEqual(in, []types.Move{types.R, types.R, types.R}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestUnrotate(t *testing.T) {
	tests := []struct {
		rot, m, want types.Move
	}{
		{types.X, types.U, types.F},
		{types.X, types.Ui, types.Fi},
		{types.X, types.R, types.R},
		{types.X, types.Y, types.Z},
		{types.Xi, types.F, types.U},
		{types.Y, types.L, types.F},
		{types.Z, types.M, types.E},
		{types.Z, types.Mi, types.Ei},
	}
	for _, tt := range tests {
		if got := Unrotate(tt.rot, tt.m); got != tt.want {
			t.Errorf("Unrotate(%s, %s) = %s, want %s", tt.rot, tt.m, got, tt.want)
		}
	}
}

// Removing a rotation pair must leave the cube exactly where the original
// log did, for every token that can sit between them.
func TestUnrotateMatchesCube(t *testing.T) {
	for _, rot := range types.Rotations() {
		for _, m := range types.AllMoves() {
			want := cube.NewSolved()
			want.ApplyMoves([]types.Move{rot, m, rot.Inverse()})
			got := cube.NewSolved()
			got.Apply(Unrotate(rot, m))
			if !got.Equal(want) {
				t.Errorf("%s %s %s is not %s", rot, m, rot.Inverse(), Unrotate(rot, m))
			}
		}
	}
}

func TestOptimizeMovesPreservesState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		moves := rapid.SliceOfN(rapid.SampledFrom(types.AllMoves()), 0, 80).Draw(t, "moves")
		opt := OptimizeMoves(moves)

		if len(opt) > len(moves) {
			t.Fatalf("optimized log grew from %d to %d", len(moves), len(opt))
		}

		want := cube.NewSolved()
		want.ApplyMoves(moves)
		got := cube.NewSolved()
		got.ApplyMoves(opt)
		if !got.Equal(want) {
			t.Fatalf("%v optimized to %v changes the final state", moves, opt)
		}
	})
}

func TestOptimizeMovesIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// a small alphabet makes rewrites likely
		alphabet := []types.Move{types.R, types.Ri, types.U, types.Ui, types.X, types.Xi, types.Z, types.Zi}
		moves := rapid.SliceOfN(rapid.SampledFrom(alphabet), 0, 60).Draw(t, "moves")
		once := OptimizeMoves(moves)
		twice := OptimizeMoves(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("%v -> %v -> %v", moves, once, twice)
		}
	})
}

func TestOptimizedLogHasNoRewritesLeft(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		moves := rapid.SliceOfN(rapid.SampledFrom(types.AllMoves()), 0, 60).Draw(t, "moves")
		opt := OptimizeMoves(moves)
		for _, rewrite := range []func([]types.Move) ([]types.Move, bool){removeRotation, collapseTriple, cancelPair} {
			if _, changed := rewrite(opt); changed {
				t.Fatalf("%v still rewrites", opt)
			}
		}
	})
}
