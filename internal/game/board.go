package game

import (
	"fmt"
	"strings"

	"hexfall/internal/hex"
)

// row 是一行格子的占用状态。一旦放进 Board 就不再修改，可被多个 Board 共享。
type row []bool

// Board is a persistent hex grid of width × height cells.
// Lock returns a new Board; the receiver stays valid and unchanged, and
// untouched rows are shared between the two.
type Board struct {
	width  int
	height int
	rows   []row
}

// NewBoard creates a board with the given offset cells already filled.
func NewBoard(width, height int, filled []hex.Offset) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("game: invalid board size %dx%d", width, height))
	}
	b := &Board{
		width:  width,
		height: height,
		rows:   make([]row, height),
	}
	for y := range b.rows {
		b.rows[y] = make(row, width)
	}
	for _, o := range filled {
		if !b.validOffset(o) {
			panic(fmt.Sprintf("game: filled cell %v outside %dx%d board", o, width, height))
		}
		b.rows[o.Row][o.Col] = true
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

func (b *Board) validOffset(o hex.Offset) bool {
	return o.Col >= 0 && o.Col < b.width && o.Row >= 0 && o.Row < b.height
}

// IsValid reports whether c lies inside [0,width) × [0,height).
func (b *Board) IsValid(c hex.Coordinate) bool {
	return b.validOffset(c.Offset())
}

// IsFree reports whether the cell at c is empty.
// Calling it with an invalid coordinate is a contract violation.
func (b *Board) IsFree(c hex.Coordinate) bool {
	o := c.Offset()
	if !b.validOffset(o) {
		panic(fmt.Sprintf("game: IsFree on invalid coordinate %v", o))
	}
	return !b.rows[o.Row][o.Col]
}

// Filled reports whether the offset cell is occupied. Out-of-range cells are
// reported as not filled.
func (b *Board) Filled(o hex.Offset) bool {
	if !b.validOffset(o) {
		return false
	}
	return b.rows[o.Row][o.Col]
}

// CheckUnit reports whether every cell of u is on the board and free.
func (b *Board) CheckUnit(u Unit) bool {
	for _, c := range u.cells {
		o := c.Offset()
		if !b.validOffset(o) || b.rows[o.Row][o.Col] {
			return false
		}
	}
	return true
}

// Lock fuses u into the board and clears full rows.
// It returns the new board and the number of rows removed.
// Locking onto an occupied or invalid cell is a contract violation.
func (b *Board) Lock(u Unit) (*Board, int) {
	rows := make([]row, b.height)
	copy(rows, b.rows)

	// 只复制被改动的行（copy-on-write）
	touched := make(map[int]bool, len(u.cells))
	for _, c := range u.cells {
		o := c.Offset()
		if !b.validOffset(o) {
			panic(fmt.Sprintf("game: lock outside board at %v", o))
		}
		if rows[o.Row][o.Col] {
			panic(fmt.Sprintf("game: lock onto occupied cell %v", o))
		}
		if !touched[o.Row] {
			nr := make(row, b.width)
			copy(nr, rows[o.Row])
			rows[o.Row] = nr
			touched[o.Row] = true
		}
		rows[o.Row][o.Col] = true
	}

	kept := make([]row, 0, b.height)
	for _, r := range rows {
		if !r.full() {
			kept = append(kept, r)
		}
	}
	cleared := b.height - len(kept)
	if cleared == 0 {
		return &Board{width: b.width, height: b.height, rows: rows}, 0
	}

	// 顶部补空行
	out := make([]row, 0, b.height)
	empty := make(row, b.width)
	for i := 0; i < cleared; i++ {
		out = append(out, empty)
	}
	out = append(out, kept...)
	return &Board{width: b.width, height: b.height, rows: out}, cleared
}

func (r row) full() bool {
	for _, v := range r {
		if !v {
			return false
		}
	}
	return true
}

func (r row) count() int {
	n := 0
	for _, v := range r {
		if v {
			n++
		}
	}
	return n
}

// PlaceNew spawns shape at the deterministic start position: topmost cell on
// row 0 and horizontally centred, left margin = (width - unitWidth) / 2.
func (b *Board) PlaceNew(shape *Shape) Unit {
	u := Anchor(shape, hex.Coordinate{}, 0)
	// 先对齐到第 0 行，再水平居中
	for top := u.Top(); top > 0; top-- {
		u = u.translate(hex.NorthWest.Vector())
	}
	for top := u.Top(); top < 0; top++ {
		u = u.translate(hex.SouthEast.Vector())
	}
	shift := (b.width-u.Width())/2 - u.Left()
	return u.translate(hex.East.Vector().Scale(shift))
}

// FullRows counts rows with every cell occupied.
func (b *Board) FullRows() int {
	n := 0
	for _, r := range b.rows {
		if r.full() {
			n++
		}
	}
	return n
}

// EmptyTopRows counts contiguous empty rows from the top of the board.
func (b *Board) EmptyTopRows() int {
	n := 0
	for _, r := range b.rows {
		if r.count() != 0 {
			break
		}
		n++
	}
	return n
}

// Holes counts free cells with at most one free neighbour.
// Neighbours off the board do not count as free.
func (b *Board) Holes() int {
	holes := 0
	for y, r := range b.rows {
		for x, filled := range r {
			if filled {
				continue
			}
			c := hex.FromOffset(hex.Offset{Col: x, Row: y})
			free := 0
			for _, n := range c.Neighbors() {
				if b.IsValid(n) && b.IsFree(n) {
					free++
				}
			}
			if free <= 1 {
				holes++
			}
		}
	}
	return holes
}

// RowWeight is the weight of an occupied cell on row y; lower rows weigh more.
func RowWeight(y int) int {
	return (y + 1) * (y + 1)
}

// WeightedFill sums RowWeight over every occupied cell.
func (b *Board) WeightedFill() int {
	sum := 0
	for y, r := range b.rows {
		sum += r.count() * RowWeight(y)
	}
	return sum
}

// FilledCells lists occupied cells in row-major order.
func (b *Board) FilledCells() []hex.Offset {
	var out []hex.Offset
	for y, r := range b.rows {
		for x, filled := range r {
			if filled {
				out = append(out, hex.Offset{Col: x, Row: y})
			}
		}
	}
	return out
}

// String draws the board; '#' filled, '.' free. Odd rows sit half a cell to
// the left of even rows, so even rows are indented.
func (b *Board) String() string {
	return b.Draw(nil)
}

// Draw is like String but overlays the cells of u with '*'.
func (b *Board) Draw(u *Unit) string {
	mark := map[hex.Offset]bool{}
	if u != nil {
		for _, c := range u.cells {
			mark[c.Offset()] = true
		}
	}
	var sb strings.Builder
	for y, r := range b.rows {
		if y%2 == 0 {
			sb.WriteByte(' ')
		}
		for x, filled := range r {
			switch {
			case mark[hex.Offset{Col: x, Row: y}]:
				sb.WriteByte('*')
			case filled:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
			if x < b.width-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
