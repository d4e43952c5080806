package cube

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubesolver/internal/geom"
)

// SolvedFlat is the flat string of the canonical solved cube.
const SolvedFlat = "OOOOOOOOOYYYWWWGGGBBBYYYWWWGGGBBBYYYWWWGGGBBBRRRRRRRRR"

// ErrLength is returned when a flat string doesn't hold exactly 54 stickers.
var ErrLength = errors.New("cube: flat string must have 54 stickers")

// sticker locates one character of the flat string: the piece at a home
// position and the colour slot it fills.
type sticker struct {
	pos  geom.Vec
	slot int
}

// stickers maps flat string indices to pieces. The string unfolds the cube as
//
//	         0  1  2
//	         3  4  5
//	         6  7  8
//	 9 10 11 12 13 14 15 16 17 18 19 20
//	21 22 23 24 25 26 27 28 29 30 31 32
//	33 34 35 36 37 38 39 40 41 42 43 44
//	        45 46 47
//	        48 49 50
//	        51 52 53
//
// with faces U, then L F R B, then D. The back face is mirrored.
var stickers = [54]sticker{
	// up
	{geom.V(-1, 1, -1), 1}, {geom.V(0, 1, -1), 1}, {geom.V(1, 1, -1), 1},
	{geom.V(-1, 1, 0), 1}, {geom.V(0, 1, 0), 1}, {geom.V(1, 1, 0), 1},
	{geom.V(-1, 1, 1), 1}, {geom.V(0, 1, 1), 1}, {geom.V(1, 1, 1), 1},

	// top row: left, front, right, back
	{geom.V(-1, 1, -1), 0}, {geom.V(-1, 1, 0), 0}, {geom.V(-1, 1, 1), 0},
	{geom.V(-1, 1, 1), 2}, {geom.V(0, 1, 1), 2}, {geom.V(1, 1, 1), 2},
	{geom.V(1, 1, 1), 0}, {geom.V(1, 1, 0), 0}, {geom.V(1, 1, -1), 0},
	{geom.V(1, 1, -1), 2}, {geom.V(0, 1, -1), 2}, {geom.V(-1, 1, -1), 2},

	// middle row
	{geom.V(-1, 0, -1), 0}, {geom.V(-1, 0, 0), 0}, {geom.V(-1, 0, 1), 0},
	{geom.V(-1, 0, 1), 2}, {geom.V(0, 0, 1), 2}, {geom.V(1, 0, 1), 2},
	{geom.V(1, 0, 1), 0}, {geom.V(1, 0, 0), 0}, {geom.V(1, 0, -1), 0},
	{geom.V(1, 0, -1), 2}, {geom.V(0, 0, -1), 2}, {geom.V(-1, 0, -1), 2},

	// bottom row
	{geom.V(-1, -1, -1), 0}, {geom.V(-1, -1, 0), 0}, {geom.V(-1, -1, 1), 0},
	{geom.V(-1, -1, 1), 2}, {geom.V(0, -1, 1), 2}, {geom.V(1, -1, 1), 2},
	{geom.V(1, -1, 1), 0}, {geom.V(1, -1, 0), 0}, {geom.V(1, -1, -1), 0},
	{geom.V(1, -1, -1), 2}, {geom.V(0, -1, -1), 2}, {geom.V(-1, -1, -1), 2},

	// down
	{geom.V(-1, -1, 1), 1}, {geom.V(0, -1, 1), 1}, {geom.V(1, -1, 1), 1},
	{geom.V(-1, -1, 0), 1}, {geom.V(0, -1, 0), 1}, {geom.V(1, -1, 0), 1},
	{geom.V(-1, -1, -1), 1}, {geom.V(0, -1, -1), 1}, {geom.V(1, -1, -1), 1},
}

// New builds a cube from a 54-sticker flat string. Whitespace is ignored,
// so the net printed by String parses back.
func New(flat string) (*Cube, error) {
	s := []rune(strings.Join(strings.Fields(flat), ""))
	if len(s) != len(stickers) {
		return nil, fmt.Errorf("%w: got %d", ErrLength, len(s))
	}

	c := &Cube{}
	index := make(map[geom.Vec]int, len(c.pieces))
	for i, st := range stickers {
		k, ok := index[st.pos]
		if !ok {
			k = len(index)
			index[st.pos] = k
			c.pieces[k].pos = st.pos
		}
		c.pieces[k].colors[st.slot] = Color(s[i])
	}

	for i := range c.pieces {
		if err := c.pieces[i].validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(flat string) *Cube {
	c, err := New(flat)
	if err != nil {
		panic(err)
	}
	return c
}

// FlatString returns the 54-sticker encoding of the cube.
func (c *Cube) FlatString() string {
	var grid [3][3][3]*Piece
	for i := range c.pieces {
		p := &c.pieces[i]
		grid[p.pos.X+1][p.pos.Y+1][p.pos.Z+1] = p
	}

	var b strings.Builder
	for _, st := range stickers {
		p := grid[st.pos.X+1][st.pos.Y+1][st.pos.Z+1]
		b.WriteRune(rune(p.colors[st.slot]))
	}
	return b.String()
}
