// Package hex implements the cube / offset coordinate system of the board.
package hex

import "fmt"

// Coordinate is a cube coordinate (x, y, z) with x + y + z = 0.
// Only X and Y are stored; Z is derived so the invariant always holds.
type Coordinate struct {
	X, Y int
}

// Offset is a (column, row) pair as used by problem files and the board grid.
type Offset struct {
	Col int `json:"x"`
	Row int `json:"y"`
}

// New returns the cube coordinate (x, y, -x-y).
func New(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Z returns the implicit third cube component.
func (c Coordinate) Z() int {
	return -c.X - c.Y
}

// Add 坐标相加
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{c.X + o.X, c.Y + o.Y}
}

// Sub 坐标相减
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{c.X - o.X, c.Y - o.Y}
}

// Scale multiplies every component by k.
func (c Coordinate) Scale(k int) Coordinate {
	return Coordinate{c.X * k, c.Y * k}
}

// parity 返回非负余数，负数行也能正确往返
func parity(row int) int {
	return row & 1
}

// FromOffset converts a (col, row) offset into cube space:
// x = col - (row + row mod 2) / 2, z = row, y = -x - z.
func FromOffset(o Offset) Coordinate {
	x := o.Col - (o.Row+parity(o.Row))/2
	z := o.Row
	return Coordinate{X: x, Y: -x - z}
}

// Offset converts back: col = x + (z + z mod 2) / 2, row = z.
func (c Coordinate) Offset() Offset {
	z := c.Z()
	return Offset{Col: c.X + (z+parity(z))/2, Row: z}
}

// Rotate rotates the coordinate by one 60° step around the origin.
func (c Coordinate) Rotate(a Angle) Coordinate {
	x, y, z := c.X, c.Y, c.Z()
	switch a {
	case Right:
		// (x,y,z) -> (-z,-x,-y)
		return Coordinate{X: -z, Y: -x}
	case Left:
		// (x,y,z) -> (-y,-z,-x)
		return Coordinate{X: -y, Y: -z}
	}
	panic(fmt.Sprintf("hex: unknown angle %d", a))
}

// RotateAround rotates c by one step of a around pivot.
func (c Coordinate) RotateAround(pivot Coordinate, a Angle) Coordinate {
	return c.Sub(pivot).Rotate(a).Add(pivot)
}

// Step moves c one cell in direction d.
func (c Coordinate) Step(d Direction) Coordinate {
	return c.Add(d.Vector())
}

// Neighbors returns the six adjacent coordinates in Directions order.
func (c Coordinate) Neighbors() [6]Coordinate {
	var out [6]Coordinate
	for i, d := range Directions {
		out[i] = c.Step(d)
	}
	return out
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z())
}

func (o Offset) String() string {
	return fmt.Sprintf("[%d,%d]", o.Col, o.Row)
}
