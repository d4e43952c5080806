// Package geom provides the integer vector and matrix algebra used to move
// cube pieces around.
//
// Coordinates follow a right-handed frame with the cube centred on the origin:
//
//	-x LEFT   +x RIGHT
//	-y DOWN   +y UP
//	-z BACK   +z FRONT
package geom

import "fmt"

// Vec is an integer 3-vector. Piece positions have components in {-1, 0, 1};
// rotation deltas may fall outside that range.
type Vec struct {
	X, Y, Z int
}

// Axis unit vectors, named by the face they point at.
var (
	Right = Vec{1, 0, 0}
	Left  = Vec{-1, 0, 0}
	Up    = Vec{0, 1, 0}
	Down  = Vec{0, -1, 0}
	Front = Vec{0, 0, 1}
	Back  = Vec{0, 0, -1}

	XAxis = Right
	YAxis = Up
	ZAxis = Front
)

// Faces lists the six face directions in a fixed order.
var Faces = []Vec{Right, Left, Up, Down, Front, Back}

// V is shorthand for Vec{x, y, z}.
func V(x, y, z int) Vec {
	return Vec{x, y, z}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns k * v.
func (v Vec) Scale(k int) Vec {
	return Vec{k * v.X, k * v.Y, k * v.Z}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) int {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Components returns the components in x, y, z order.
func (v Vec) Components() [3]int {
	return [3]int{v.X, v.Y, v.Z}
}

// Component returns component i (0 = x, 1 = y, 2 = z).
func (v Vec) Component(i int) int {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("geom: component index %d out of range", i))
}

// With returns a copy of v with component i set to value.
func (v Vec) With(i, value int) Vec {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("geom: component index %d out of range", i))
	}
	return v
}

// Count returns how many components equal value.
func (v Vec) Count(value int) int {
	n := 0
	for _, c := range v.Components() {
		if c == value {
			n++
		}
	}
	return n
}

// IsZero reports whether every component is zero.
func (v Vec) IsZero() bool {
	return v == Vec{}
}

// AxisIndex returns the index of the first nonzero component, or -1 for the
// zero vector. For a face direction this is the colour slot facing that way.
func (v Vec) AxisIndex() int {
	for i, c := range v.Components() {
		if c != 0 {
			return i
		}
	}
	return -1
}

func (v Vec) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}
