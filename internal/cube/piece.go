package cube

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubesolver/internal/geom"
)

// Color is a single sticker colour. Any rune can serve as a colour;
// NoColor marks a slot with no sticker.
type Color rune

// NoColor marks an empty colour slot.
const NoColor Color = 0

// Colours of the canonical solved cube.
const (
	Orange Color = 'O'
	Yellow Color = 'Y'
	White  Color = 'W'
	Green  Color = 'G'
	Blue   Color = 'B'
	Red    Color = 'R'
)

func (c Color) String() string {
	if c == NoColor {
		return "-"
	}
	return string(rune(c))
}

// PieceType is derived from how many stickers a piece carries.
type PieceType int

const (
	FacePiece   PieceType = iota + 1 // centre, one sticker
	EdgePiece                        // two stickers
	CornerPiece                      // three stickers
)

func (t PieceType) String() string {
	switch t {
	case FacePiece:
		return "face"
	case EdgePiece:
		return "edge"
	case CornerPiece:
		return "corner"
	default:
		return "unknown"
	}
}

// ErrPieceColors is returned when a piece's stickers don't match its position.
var ErrPieceColors = errors.New("cube: piece must have 1, 2 or 3 colors")

// Piece is one cubie. Its colours are indexed by axis slot (x, y, z): the
// sticker in slot i faces along axis i. The set of non-empty colours is the
// piece's identity and never changes; moves only permute the slots.
type Piece struct {
	pos    geom.Vec
	colors [3]Color
}

// Pos returns the current position, each component in {-1, 0, 1}.
func (p *Piece) Pos() geom.Vec {
	return p.pos
}

// Color returns the sticker in the given axis slot.
func (p *Piece) Color(slot int) Color {
	return p.colors[slot]
}

// Colors returns all three slots, empty ones as NoColor.
func (p *Piece) Colors() [3]Color {
	return p.colors
}

// ColorSet returns the non-empty colours in slot order.
func (p *Piece) ColorSet() []Color {
	set := make([]Color, 0, 3)
	for _, c := range p.colors {
		if c != NoColor {
			set = append(set, c)
		}
	}
	return set
}

// HasColor reports whether c is one of the piece's stickers.
func (p *Piece) HasColor(c Color) bool {
	if c == NoColor {
		return false
	}
	for _, pc := range p.colors {
		if pc == c {
			return true
		}
	}
	return false
}

func (p *Piece) nullCount() int {
	n := 0
	for _, c := range p.colors {
		if c == NoColor {
			n++
		}
	}
	return n
}

// Type derives the piece type from its empty slot count.
func (p *Piece) Type() PieceType {
	switch p.nullCount() {
	case 2:
		return FacePiece
	case 1:
		return EdgePiece
	case 0:
		return CornerPiece
	}
	return 0
}

// validate checks that each nonzero position axis carries exactly one sticker.
func (p *Piece) validate() error {
	if p.Type() == 0 {
		return fmt.Errorf("%w: %v has no stickers", ErrPieceColors, p.pos)
	}
	for i, c := range p.colors {
		if (c == NoColor) != (p.pos.Component(i) == 0) {
			return fmt.Errorf("%w: %v has colors %s", ErrPieceColors, p.pos, p.colorString())
		}
	}
	return nil
}

// Rotate moves the piece by m and remaps its stickers so each keeps facing
// the same way relative to the turned layer.
func (p *Piece) Rotate(m geom.Matrix) {
	after, i, j, moved := swapAxes(p.pos, m)
	p.pos = after
	if !moved {
		return
	}
	p.colors[i], p.colors[j] = p.colors[j], p.colors[i]
}

// swapAxes returns the position of a piece at pos after m and the two colour
// slots the move exchanges. The delta between positions names the plane of
// the turn; a delta along a single axis (a corner, or a centre seen edge-on)
// is completed by adding its own image under m.
func swapAxes(pos geom.Vec, m geom.Matrix) (after geom.Vec, i, j int, moved bool) {
	after = m.Apply(pos)
	rot := after.Sub(pos)
	if rot.IsZero() {
		return after, 0, 0, false
	}
	if rot.Count(0) == 2 {
		rot = rot.Add(m.Apply(rot))
	}
	if rot.Count(0) != 1 {
		panic(fmt.Sprintf("cube: rotating %v by %v gives delta %v spanning no single plane", pos, m, rot))
	}

	i, j = -1, -1
	for k, v := range rot.Components() {
		if v == 0 {
			continue
		}
		if i < 0 {
			i = k
		} else {
			j = k
		}
	}
	return after, i, j, true
}

func (p *Piece) colorString() string {
	var b strings.Builder
	for _, c := range p.colors {
		b.WriteString(c.String())
	}
	return b.String()
}

func (p *Piece) String() string {
	return fmt.Sprintf("(%s, %s, %v)", p.Type(), p.colorString(), p.pos)
}
