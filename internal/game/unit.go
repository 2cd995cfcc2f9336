package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hexfall/internal/hex"
)

// Shape is the immutable geometry of a piece: its cells as cube vectors
// relative to the pivot. Many placements share one *Shape.
type Shape struct {
	cells []hex.Coordinate
}

// NewShape builds a shape from offset members and an offset pivot, the form
// used by problem files.
func NewShape(members []hex.Offset, pivot hex.Offset) *Shape {
	if len(members) == 0 {
		panic("game: shape without members")
	}
	p := hex.FromOffset(pivot)
	cells := make([]hex.Coordinate, len(members))
	for i, m := range members {
		cells[i] = hex.FromOffset(m).Sub(p)
	}
	return &Shape{cells: cells}
}

// Size returns the number of cells.
func (s *Shape) Size() int { return len(s.cells) }

// Unit is a placement of a shape on the board. Its identity is the absolute
// pivot plus the absolute cells; which shape object or how many turns
// produced it does not matter.
type Unit struct {
	shape *Shape
	pivot hex.Coordinate
	cells []hex.Coordinate // 绝对坐标，按 (行, x) 排序
}

// Anchor places shape with its pivot at pivot, rotated turns steps clockwise.
func Anchor(shape *Shape, pivot hex.Coordinate, turns int) Unit {
	cells := make([]hex.Coordinate, len(shape.cells))
	for i, rel := range shape.cells {
		for t := 0; t < turns; t++ {
			rel = rel.Rotate(hex.Right)
		}
		cells[i] = rel.Add(pivot)
	}
	sortCells(cells)
	return Unit{shape: shape, pivot: pivot, cells: cells}
}

func sortCells(cells []hex.Coordinate) {
	sort.Slice(cells, func(i, j int) bool {
		zi, zj := cells[i].Z(), cells[j].Z()
		if zi != zj {
			return zi < zj
		}
		return cells[i].X < cells[j].X
	})
}

// Shape returns the shape this unit was built from.
func (u Unit) Shape() *Shape { return u.shape }

// Pivot returns the absolute pivot.
func (u Unit) Pivot() hex.Coordinate { return u.pivot }

// Cells returns a copy of the absolute cells.
func (u Unit) Cells() []hex.Coordinate {
	out := make([]hex.Coordinate, len(u.cells))
	copy(out, u.cells)
	return out
}

// Size returns the number of cells.
func (u Unit) Size() int { return len(u.cells) }

// IsZero reports whether u is the zero Unit (no placement).
func (u Unit) IsZero() bool { return u.shape == nil }

func (u Unit) translate(d hex.Coordinate) Unit {
	cells := make([]hex.Coordinate, len(u.cells))
	for i, c := range u.cells {
		cells[i] = c.Add(d)
	}
	// 平移不改变排序
	return Unit{shape: u.shape, pivot: u.pivot.Add(d), cells: cells}
}

func (u Unit) rotate(a hex.Angle) Unit {
	cells := make([]hex.Coordinate, len(u.cells))
	for i, c := range u.cells {
		cells[i] = c.RotateAround(u.pivot, a)
	}
	sortCells(cells)
	return Unit{shape: u.shape, pivot: u.pivot, cells: cells}
}

// Apply returns the placement after cmd.
func (u Unit) Apply(cmd Command) Unit {
	if cmd.IsMove() {
		return u.translate(cmd.Direction().Vector())
	}
	return u.rotate(cmd.Angle())
}

// Key identifies the absolute placement (pivot and cells).
func (u Unit) Key() string {
	buf := make([]byte, 0, 8*(len(u.cells)+1))
	buf = appendCoord(buf, u.pivot)
	buf = append(buf, '|')
	return string(appendCells(buf, u.cells))
}

// Footprint identifies the occupied cells only.
func (u Unit) Footprint() string {
	return string(appendCells(make([]byte, 0, 8*len(u.cells)), u.cells))
}

func appendCells(buf []byte, cells []hex.Coordinate) []byte {
	for _, c := range cells {
		buf = appendCoord(buf, c)
		buf = append(buf, ';')
	}
	return buf
}

func appendCoord(buf []byte, c hex.Coordinate) []byte {
	buf = strconv.AppendInt(buf, int64(c.X), 10)
	buf = append(buf, ',')
	return strconv.AppendInt(buf, int64(c.Y), 10)
}

// Equal compares absolute placements.
func (u Unit) Equal(o Unit) bool {
	if u.pivot != o.pivot || len(u.cells) != len(o.cells) {
		return false
	}
	for i := range u.cells {
		if u.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Top returns the smallest row of any cell.
func (u Unit) Top() int {
	top := u.cells[0].Offset().Row
	for _, c := range u.cells[1:] {
		if r := c.Offset().Row; r < top {
			top = r
		}
	}
	return top
}

// Left returns the smallest column of any cell.
func (u Unit) Left() int {
	left := u.cells[0].Offset().Col
	for _, c := range u.cells[1:] {
		if col := c.Offset().Col; col < left {
			left = col
		}
	}
	return left
}

// Right returns the largest column of any cell.
func (u Unit) Right() int {
	right := u.cells[0].Offset().Col
	for _, c := range u.cells[1:] {
		if col := c.Offset().Col; col > right {
			right = col
		}
	}
	return right
}

// Width returns Right - Left + 1.
func (u Unit) Width() int {
	w := u.Right() - u.Left() + 1
	if w <= 0 {
		panic(fmt.Sprintf("game: non-positive unit width %d", w))
	}
	return w
}

// Offsets returns the cells in offset coordinates.
func (u Unit) Offsets() []hex.Offset {
	out := make([]hex.Offset, len(u.cells))
	for i, c := range u.cells {
		out[i] = c.Offset()
	}
	return out
}

func (u Unit) String() string {
	parts := make([]string, len(u.cells))
	for i, c := range u.cells {
		parts[i] = c.Offset().String()
	}
	return fmt.Sprintf("pivot=%v cells=%s", u.pivot.Offset(), strings.Join(parts, ""))
}
