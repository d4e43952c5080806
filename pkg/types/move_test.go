package types

import (
	"errors"
	"testing"
)

func TestInverse(t *testing.T) {
	tests := []struct {
		in, want Move
	}{
		{R, Ri}, {Ri, R}, {M, Mi}, {Si, S}, {X, Xi}, {Zi, Z},
	}
	for _, tt := range tests {
		if got := tt.in.Inverse(); got != tt.want {
			t.Errorf("%s.Inverse() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestInverseIsInvolution(t *testing.T) {
	for _, m := range AllMoves() {
		if m.Inverse().Inverse() != m {
			t.Errorf("%s: double inverse = %s", m, m.Inverse().Inverse())
		}
		if !m.Inverse().IsValid() {
			t.Errorf("%s: inverse %s is not a valid move", m, m.Inverse())
		}
	}
}

func TestClassification(t *testing.T) {
	if len(AllMoves()) != 24 {
		t.Fatalf("vocabulary has %d moves", len(AllMoves()))
	}
	for _, m := range Rotations() {
		if !m.IsRotation() {
			t.Errorf("%s should be a rotation", m)
		}
	}
	for _, m := range QuarterTurns() {
		if m.IsRotation() {
			t.Errorf("%s should not be a rotation", m)
		}
	}
	if !Mi.IsSlice() || R.IsSlice() {
		t.Error("slice classification is wrong")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	seen := make(map[uint8]bool)
	for _, m := range AllMoves() {
		tok := m.Token()
		if seen[tok] {
			t.Errorf("%s: duplicate token %d", m, tok)
		}
		seen[tok] = true
		if got := MoveFromToken(tok); got != m {
			t.Errorf("MoveFromToken(%d) = %s, want %s", tok, got, m)
		}
	}
	if Move("Q").Token() != InvalidToken {
		t.Error("unknown move should have InvalidToken")
	}
}

func TestParseMove(t *testing.T) {
	if _, err := ParseMove("Ui"); err != nil {
		t.Errorf("ParseMove(Ui): %v", err)
	}
	_, err := ParseMove("Q2")
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("ParseMove(Q2) err = %v", err)
	}
	var ime *InvalidMoveError
	if !errors.As(err, &ime) || ime.Token != "Q2" {
		t.Errorf("error should name the token, got %v", err)
	}
}

func TestNotation(t *testing.T) {
	tests := map[Move]string{R: "R", Ri: "R'", Mi: "M'", X: "x", Yi: "y'"}
	for m, want := range tests {
		if got := m.Notation(); got != want {
			t.Errorf("%s.Notation() = %q, want %q", m, got, want)
		}
	}
}

func TestInvertSequence(t *testing.T) {
	got := Invert([]Move{R, U, Fi})
	want := []Move{F, Ui, Ri}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Invert = %v, want %v", got, want)
		}
	}
}
