// Package problem reads puzzle descriptions and turns them into games.
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"hexfall/internal/game"
	"hexfall/internal/hex"
)

// ErrMalformed wraps every validation failure.
var ErrMalformed = errors.New("malformed problem")

// UnitSpec 题目中的一种方块：成员格和旋转中心，均为 offset 坐标
type UnitSpec struct {
	Members []hex.Offset `json:"members"`
	Pivot   hex.Offset   `json:"pivot"`
}

// Problem 题目文件的原样结构
type Problem struct {
	ID           int          `json:"id"`
	Units        []UnitSpec   `json:"units"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Filled       []hex.Offset `json:"filled"`
	SourceLength int          `json:"sourceLength"`
	SourceSeeds  []uint32     `json:"sourceSeeds"`

	shapes []*game.Shape
	board  *game.Board
}

// Load reads and validates the problem file at path.
func Load(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses and validates one problem.
func Decode(r io.Reader) (*Problem, error) {
	var p Problem
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.board = game.NewBoard(p.Width, p.Height, p.Filled)
	p.shapes = make([]*game.Shape, len(p.Units))
	for i, u := range p.Units {
		p.shapes[i] = game.NewShape(u.Members, u.Pivot)
	}
	return &p, nil
}

// validate 检查 NewBoard / NewShape 的前置条件，避免它们 panic
func (p *Problem) validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: problem %d: %s", ErrMalformed, p.ID, fmt.Sprintf(format, args...))
	}
	if p.Width <= 0 || p.Height <= 0 {
		return bad("board %dx%d", p.Width, p.Height)
	}
	in := func(o hex.Offset) bool {
		return o.Col >= 0 && o.Col < p.Width && o.Row >= 0 && o.Row < p.Height
	}
	for _, c := range p.Filled {
		if !in(c) {
			return bad("filled cell %v outside board", c)
		}
	}
	if len(p.Units) == 0 {
		return bad("no units")
	}
	for i, u := range p.Units {
		if len(u.Members) == 0 {
			return bad("unit %d has no members", i)
		}
		seen := make(map[hex.Offset]bool, len(u.Members))
		for _, m := range u.Members {
			if seen[m] {
				return bad("unit %d repeats member %v", i, m)
			}
			seen[m] = true
		}
	}
	if p.SourceLength < 0 {
		return bad("sourceLength %d", p.SourceLength)
	}
	return nil
}

// Shapes returns the unit shapes in problem order.
func (p *Problem) Shapes() []*game.Shape { return p.shapes }

// Board returns the initial board.
func (p *Problem) Board() *game.Board { return p.board }

// Game builds the game for one seed. The shapes and the initial board are
// shared between the games of a problem.
func (p *Problem) Game(seed uint32) game.Game {
	seq := SourceSequence(p.SourceLength, seed)
	source := make([]*game.Shape, len(seq))
	for i, n := range seq {
		source[i] = p.shapes[n%len(p.shapes)]
	}
	return game.Game{Board: p.board, Source: source, Seed: seed}
}

// SourceSequence is the linear congruential generator that picks the units.
func SourceSequence(length int, seed uint32) []int {
	const (
		multiplier = 1103515245
		increment  = 12345
	)
	out := make([]int, length)
	c := seed // uint32 运算自带 mod 2^32
	for i := range out {
		out[i] = int((c & 0x7fffffff) >> 16)
		c = c*multiplier + increment
	}
	return out
}
