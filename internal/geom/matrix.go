package geom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMatrixSize is returned when a matrix is built from the wrong number of entries.
var ErrMatrixSize = errors.New("geom: matrix requires exactly 9 entries")

// Matrix is a row-major 3x3 integer matrix.
type Matrix [3][3]int

// Quarter-turn rotations, one clockwise/counter-clockwise pair per coordinate
// plane, as seen looking down the positive normal axis.
var (
	XYCW = MustMatrix(0, 1, 0, -1, 0, 0, 0, 0, 1)
	XYCC = MustMatrix(0, -1, 0, 1, 0, 0, 0, 0, 1)
	XZCW = MustMatrix(0, 0, -1, 0, 1, 0, 1, 0, 0)
	XZCC = MustMatrix(0, 0, 1, 0, 1, 0, -1, 0, 0)
	YZCW = MustMatrix(1, 0, 0, 0, 0, 1, 0, -1, 0)
	YZCC = MustMatrix(1, 0, 0, 0, 0, -1, 0, 1, 0)
)

// NewMatrix builds a matrix from 9 row-major entries.
func NewMatrix(entries ...int) (Matrix, error) {
	var m Matrix
	if len(entries) != 9 {
		return m, fmt.Errorf("%w: got %d", ErrMatrixSize, len(entries))
	}
	for i, e := range entries {
		m[i/3][i%3] = e
	}
	return m, nil
}

// MustMatrix is like NewMatrix but panics on error. Intended for constants.
func MustMatrix(entries ...int) Matrix {
	m, err := NewMatrix(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

// Apply returns m·v.
func (m Matrix) Apply(v Vec) Vec {
	return Vec{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns the matrix product m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Transpose returns the transpose of m. For rotations this is the inverse.
func (m Matrix) Transpose() Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// FixedAxis returns the index of the axis a quarter turn leaves in place,
// or -1 if no basis axis is fixed.
func (m Matrix) FixedAxis() int {
	for i := 0; i < 3; i++ {
		e := Vec{}.With(i, 1)
		if m.Apply(e) == e {
			return i
		}
	}
	return -1
}

func (m Matrix) String() string {
	rows := make([]string, 3)
	for i, row := range m {
		rows[i] = fmt.Sprintf("[%d %d %d]", row[0], row[1], row[2])
	}
	return "[" + strings.Join(rows, " ") + "]"
}
