// Package notation converts between move tokens and their textual forms.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubesolver/pkg/types"
)

// ParseSequence parses space-separated move tokens ("L Ri U M Ui B M").
// The first unknown token is reported as a *types.InvalidMoveError.
func ParseSequence(s string) ([]types.Move, error) {
	parts := strings.Fields(s)
	moves := make([]types.Move, 0, len(parts))

	for _, part := range parts {
		move, err := types.ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// MustParseSequence is like ParseSequence but panics on error.
// Intended for fixed algorithm tables.
func MustParseSequence(s string) []types.Move {
	moves, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return moves
}

// ParseNotation parses one move in standard cube notation (R, R', R2, x, M').
// A half turn expands to two quarter turns.
func ParseNotation(s string) ([]types.Move, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, false
	}

	base := types.Move(strings.ToUpper(s[:1]))
	if !base.IsValid() {
		return nil, false
	}
	// lower-case r, l, ... are wide turns, which the vocabulary lacks
	if s[0] >= 'a' && s[0] <= 'z' && !base.IsRotation() {
		return nil, false
	}

	switch s[1:] {
	case "":
		return []types.Move{base}, true
	case "'", "`", "i":
		return []types.Move{base.Inverse()}, true
	case "2", "2'":
		return []types.Move{base, base}, true
	}
	return nil, false
}

// ParseStandard parses a space-separated sequence in either token form or
// standard notation, e.g. "R U' F2 x".
func ParseStandard(s string) ([]types.Move, error) {
	var moves []types.Move
	for _, part := range strings.Fields(s) {
		parsed, ok := ParseNotation(part)
		if !ok {
			return nil, &types.InvalidMoveError{Token: part}
		}
		moves = append(moves, parsed...)
	}
	return moves, nil
}

// FormatSequence formats moves as space-separated tokens, the inverse of
// ParseSequence.
func FormatSequence(moves []types.Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = string(m)
	}

	return strings.Join(parts, " ")
}

// FormatStandard formats moves in standard notation, folding two equal
// adjacent quarter turns into a half turn (R R -> R2).
func FormatStandard(moves []types.Move) string {
	if len(moves) == 0 {
		return ""
	}

	var parts []string
	for i := 0; i < len(moves); i++ {
		if i+1 < len(moves) && moves[i] == moves[i+1] {
			parts = append(parts, strings.TrimSuffix(moves[i].Notation(), "'")+"2")
			i++
			continue
		}
		parts = append(parts, moves[i].Notation())
	}

	return strings.Join(parts, " ")
}
