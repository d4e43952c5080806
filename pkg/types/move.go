// Package types contains shared type definitions for the cubesolver application.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Move is a single move token: a face turn, a middle-slice turn or a
// whole-cube rotation. A trailing "i" marks the counter-clockwise variant.
type Move string

// Face turns.
const (
	L  Move = "L"
	Li Move = "Li"
	R  Move = "R"
	Ri Move = "Ri"
	U  Move = "U"
	Ui Move = "Ui"
	D  Move = "D"
	Di Move = "Di"
	F  Move = "F"
	Fi Move = "Fi"
	B  Move = "B"
	Bi Move = "Bi"
)

// Middle-slice turns.
const (
	M  Move = "M"
	Mi Move = "Mi"
	E  Move = "E"
	Ei Move = "Ei"
	S  Move = "S"
	Si Move = "Si"
)

// Whole-cube rotations.
const (
	X  Move = "X"
	Xi Move = "Xi"
	Y  Move = "Y"
	Yi Move = "Yi"
	Z  Move = "Z"
	Zi Move = "Zi"
)

// ErrInvalidMove matches any InvalidMoveError via errors.Is.
var ErrInvalidMove = errors.New("types: invalid move")

// InvalidMoveError names a token that is not part of the move vocabulary.
type InvalidMoveError struct {
	Token string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %q", e.Token)
}

// Is lets errors.Is(err, ErrInvalidMove) match.
func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// allMoves fixes the token order; a move's index here is its Token.
var allMoves = []Move{
	L, Li, R, Ri, U, Ui, D, Di, F, Fi, B, Bi,
	M, Mi, E, Ei, S, Si,
	X, Xi, Y, Yi, Z, Zi,
}

// QuarterTurns returns the 18 face and slice quarter turns.
func QuarterTurns() []Move {
	out := make([]Move, 18)
	copy(out, allMoves[:18])
	return out
}

// FaceTurns returns the 12 outer-face quarter turns.
func FaceTurns() []Move {
	out := make([]Move, 12)
	copy(out, allMoves[:12])
	return out
}

// Rotations returns the 6 whole-cube rotations.
func Rotations() []Move {
	out := make([]Move, 6)
	copy(out, allMoves[18:])
	return out
}

// AllMoves returns every token in the vocabulary.
func AllMoves() []Move {
	out := make([]Move, len(allMoves))
	copy(out, allMoves)
	return out
}

// ParseMove validates a single token.
func ParseMove(s string) (Move, error) {
	m := Move(s)
	if !m.IsValid() {
		return "", &InvalidMoveError{Token: s}
	}
	return m, nil
}

// IsValid reports whether m is part of the vocabulary.
func (m Move) IsValid() bool {
	return m.Token() != InvalidToken
}

// Inverse returns the token that undoes m, toggling the trailing "i".
func (m Move) Inverse() Move {
	if strings.HasSuffix(string(m), "i") {
		return m[:len(m)-1]
	}
	return m + "i"
}

// IsInverse reports whether other undoes m.
func (m Move) IsInverse(other Move) bool {
	return m.Inverse() == other
}

// IsPrime reports whether m is a counter-clockwise variant.
func (m Move) IsPrime() bool {
	return strings.HasSuffix(string(m), "i")
}

// Base returns the clockwise variant of m.
func (m Move) Base() Move {
	if m.IsPrime() {
		return m.Inverse()
	}
	return m
}

// IsRotation reports whether m turns the whole cube.
func (m Move) IsRotation() bool {
	switch m.Base() {
	case X, Y, Z:
		return true
	}
	return false
}

// IsSlice reports whether m turns a middle slice.
func (m Move) IsSlice() bool {
	switch m.Base() {
	case M, E, S:
		return true
	}
	return false
}

// Notation returns the move in standard cube notation (R, R', x, x').
func (m Move) Notation() string {
	base := string(m.Base())
	if m.IsRotation() {
		base = strings.ToLower(base)
	}
	if m.IsPrime() {
		return base + "'"
	}
	return base
}

// InvalidToken is returned by Token for moves outside the vocabulary.
const InvalidToken uint8 = 0xFF

// Token encodes the move as a single byte for compact storage and n-gram
// processing. Tokens are dense in [0, 24).
func (m Move) Token() uint8 {
	for i, v := range allMoves {
		if v == m {
			return uint8(i)
		}
	}
	return InvalidToken
}

// MoveFromToken decodes a token back into a Move. Unknown tokens yield "".
func MoveFromToken(token uint8) Move {
	if int(token) >= len(allMoves) {
		return ""
	}
	return allMoves[token]
}

// Invert returns the inverse of a whole sequence: reversed, each move inverted.
func Invert(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}
