package geom

import (
	"errors"
	"testing"
)

var (
	identity     = MustMatrix(1, 0, 0, 0, 1, 0, 0, 0, 1)
	quarterTurns = []Matrix{XYCW, XYCC, XZCW, XZCC, YZCW, YZCC}
)

func TestVecArithmetic(t *testing.T) {
	a := V(1, -1, 0)
	b := V(0, 1, 1)

	if got := a.Add(b); got != V(1, 0, 1) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(1, -2, -1) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(-2); got != V(-2, 2, 0) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != -1 {
		t.Errorf("Dot = %d", got)
	}
	if got := XAxis.Cross(YAxis); got != ZAxis {
		t.Errorf("X × Y = %v, want Z", got)
	}
	if got := a.Count(0); got != 1 {
		t.Errorf("Count(0) = %d", got)
	}
}

func TestVecWithAndAxisIndex(t *testing.T) {
	v := V(1, 1, 1).With(0, 0)
	if v != V(0, 1, 1) {
		t.Errorf("With = %v", v)
	}
	for _, f := range Faces {
		if f.Component(f.AxisIndex()) == 0 {
			t.Errorf("%v: AxisIndex points at a zero component", f)
		}
	}
	if (Vec{}).AxisIndex() != -1 {
		t.Error("zero vector should have no axis")
	}
}

func TestNewMatrixRejectsWrongSize(t *testing.T) {
	for _, n := range []int{0, 8, 10} {
		_, err := NewMatrix(make([]int, n)...)
		if !errors.Is(err, ErrMatrixSize) {
			t.Errorf("NewMatrix with %d entries: err = %v", n, err)
		}
	}
}

func TestQuarterTurnPairsAreInverse(t *testing.T) {
	pairs := [][2]Matrix{{XYCW, XYCC}, {XZCW, XZCC}, {YZCW, YZCC}}
	for _, p := range pairs {
		if p[0].Mul(p[1]) != identity {
			t.Errorf("%v · %v is not identity", p[0], p[1])
		}
		if p[0].Transpose() != p[1] {
			t.Errorf("transpose of %v should be %v", p[0], p[1])
		}
	}
}

func TestQuarterTurnOrderFour(t *testing.T) {
	for _, m := range quarterTurns {
		r := m.Mul(m).Mul(m).Mul(m)
		if r != identity {
			t.Errorf("%v^4 = %v", m, r)
		}
	}
}

func TestQuarterTurnFixedAxis(t *testing.T) {
	tests := []struct {
		m    Matrix
		axis int
	}{
		{XYCW, 2}, {XYCC, 2},
		{XZCW, 1}, {XZCC, 1},
		{YZCW, 0}, {YZCC, 0},
	}
	for _, tt := range tests {
		if got := tt.m.FixedAxis(); got != tt.axis {
			t.Errorf("%v fixes axis %d, want %d", tt.m, got, tt.axis)
		}
	}
}

func TestApply(t *testing.T) {
	// clockwise about +z sends up to right
	if got := XYCW.Apply(Up); got != Right {
		t.Errorf("XYCW·Up = %v", got)
	}
	if got := YZCW.Apply(Up); got != Back {
		t.Errorf("YZCW·Up = %v", got)
	}
}
