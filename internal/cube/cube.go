// Package cube models a 3x3 Rubik's cube as 26 pieces moving in a 3D
// integer coordinate frame.
//
// Pieces are tracked by colour identity: a piece keeps the same set of
// stickers for its whole life, so FindPiece returns the same physical cubie
// no matter how many moves have been applied since.
package cube

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubesolver/internal/geom"
)

// Cube owns exactly 26 pieces: 6 centres, 12 edges and 8 corners. Moves
// permute positions and colour slots; no piece is ever created or removed
// after construction.
type Cube struct {
	pieces [26]Piece
}

// NewSolved returns a cube in the canonical solved state.
func NewSolved() *Cube {
	c, err := New(SolvedFlat)
	if err != nil {
		panic(err)
	}
	return c
}

// Clone returns an independent copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes show the same stickers.
func (c *Cube) Equal(o *Cube) bool {
	return c.FlatString() == o.FlatString()
}

// Pieces returns all 26 pieces. The pointers stay valid for the cube's life.
func (c *Cube) Pieces() []*Piece {
	out := make([]*Piece, len(c.pieces))
	for i := range c.pieces {
		out[i] = &c.pieces[i]
	}
	return out
}

// Selector picks pieces by their current position.
type Selector func(p *Piece) bool

// FaceSelector selects the 9 pieces on the face axis points at.
func FaceSelector(axis geom.Vec) Selector {
	return func(p *Piece) bool {
		return p.pos.Dot(axis) > 0
	}
}

// SliceSelector selects the middle slice spanned by plane, the sum of two
// distinct axis unit vectors: pieces whose remaining coordinate is 0.
func SliceSelector(plane geom.Vec) Selector {
	if plane.Count(0) != 1 {
		panic("cube: slice plane must span exactly two axes")
	}
	axis := 0
	for i, v := range plane.Components() {
		if v == 0 {
			axis = i
		}
	}
	return func(p *Piece) bool {
		return p.pos.Component(axis) == 0
	}
}

// AllPieces selects every piece.
func AllPieces(*Piece) bool {
	return true
}

// Select returns the pieces matching sel.
func (c *Cube) Select(sel Selector) []*Piece {
	var out []*Piece
	for i := range c.pieces {
		if sel(&c.pieces[i]) {
			out = append(out, &c.pieces[i])
		}
	}
	return out
}

// ApplyToSelection rotates every piece matching sel by m. The selection is
// taken before any piece moves.
func (c *Cube) ApplyToSelection(sel Selector, m geom.Matrix) {
	for _, p := range c.Select(sel) {
		p.Rotate(m)
	}
}

// FindPiece returns the piece whose stickers are exactly the given colours,
// or nil if there is none.
func (c *Cube) FindPiece(colors ...Color) *Piece {
	for i := range c.pieces {
		p := &c.pieces[i]
		if p.nullCount() != 3-len(colors) {
			continue
		}
		match := true
		for _, col := range colors {
			if !p.HasColor(col) {
				match = false
				break
			}
		}
		if match {
			return p
		}
	}
	return nil
}

// PieceAt returns the piece currently at pos, or nil.
func (c *Cube) PieceAt(pos geom.Vec) *Piece {
	for i := range c.pieces {
		if c.pieces[i].pos == pos {
			return &c.pieces[i]
		}
	}
	return nil
}

// IsSolved reports whether every face shows a single colour.
func (c *Cube) IsSolved() bool {
	for _, axis := range geom.Faces {
		slot := axis.AxisIndex()
		face := c.Select(FaceSelector(axis))
		for _, p := range face[1:] {
			if p.colors[slot] != face[0].colors[slot] {
				return false
			}
		}
	}
	return true
}

// centerColor reads the colour of the centre piece on a face. Whole-cube
// rotations move centres, so this is never cached.
func (c *Cube) centerColor(axis geom.Vec) Color {
	p := c.PieceAt(axis)
	if p == nil {
		return NoColor
	}
	return p.colors[axis.AxisIndex()]
}

func (c *Cube) LeftColor() Color  { return c.centerColor(geom.Left) }
func (c *Cube) RightColor() Color { return c.centerColor(geom.Right) }
func (c *Cube) UpColor() Color    { return c.centerColor(geom.Up) }
func (c *Cube) DownColor() Color  { return c.centerColor(geom.Down) }
func (c *Cube) FrontColor() Color { return c.centerColor(geom.Front) }
func (c *Cube) BackColor() Color  { return c.centerColor(geom.Back) }

// Colors returns the distinct sticker colours on the cube, sorted.
func (c *Cube) Colors() []Color {
	seen := make(map[Color]bool)
	var out []Color
	for i := range c.pieces {
		for _, col := range c.pieces[i].ColorSet() {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the unfolded net:
//
//	    UUU
//	    UUU
//	    UUU
//	LLL FFF RRR BBB
//	LLL FFF RRR BBB
//	LLL FFF RRR BBB
//	    DDD
//	    DDD
//	    DDD
func (c *Cube) String() string {
	s := []rune(c.FlatString())
	var b strings.Builder

	face := func(start int) {
		for row := 0; row < 3; row++ {
			b.WriteString("    ")
			b.WriteString(string(s[start+row*3 : start+row*3+3]))
			b.WriteString("\n")
		}
	}

	face(0)
	for row := 0; row < 3; row++ {
		start := 9 + row*12
		for f := 0; f < 4; f++ {
			if f > 0 {
				b.WriteString(" ")
			}
			b.WriteString(string(s[start+f*3 : start+f*3+3]))
		}
		b.WriteString("\n")
	}
	face(45)

	return b.String()
}
