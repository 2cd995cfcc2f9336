package game

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned when stepping a finished position.
var ErrGameOver = errors.New("game over")

// Game 一局游戏的不可变输入：初始棋盘、方块序列和种子
type Game struct {
	Board  *Board
	Source []*Shape
	Seed   uint32
}

// Position 是游戏过程中的一个状态快照。每一步都会产生新的 Position，
// 旧的 Position 仍然有效，依次排列即为整局的轨迹。
type Position struct {
	Board     *Board  // 当前棋盘
	Unit      Unit    // 正在下落的方块（Over 时为零值）
	Next      int     // 下一个要生成的 Source 下标
	Score     int     // 累计得分
	LinesPrev int     // 上一次锁定消除的行数
	Last      Command // 最近一次执行的命令
	HasLast   bool    // Last 是否有效
	Over      bool    // 游戏是否结束
}

// Start 生成第一块方块。无法生成时直接返回结束状态。
func Start(g Game) Position {
	p := Position{Board: g.Board}
	return p.spawn(g.Source)
}

// spawn 尝试在 p.Board 上生成 Source[p.Next]
func (p Position) spawn(source []*Shape) Position {
	if p.Next >= len(source) {
		p.Unit = Unit{}
		p.Over = true
		return p
	}
	u := p.Board.PlaceNew(source[p.Next])
	if !p.Board.CheckUnit(u) {
		p.Unit = Unit{}
		p.Over = true
		return p
	}
	p.Unit = u
	p.Next++
	return p
}

// Step 执行一条命令：合法则移动，否则锁定、计分并生成下一块。
// 触发锁定的命令同样记录在 Last 中。
func Step(g Game, p Position, cmd Command) (Position, error) {
	if p.Over {
		return p, ErrGameOver
	}
	if p.Unit.IsZero() {
		return p, fmt.Errorf("step %v: no falling unit", cmd)
	}
	moved := p.Unit.Apply(cmd)
	p.Last, p.HasLast = cmd, true
	if p.Board.CheckUnit(moved) {
		p.Unit = moved
		return p, nil
	}

	board, lines := p.Board.Lock(p.Unit)
	p.Score += MoveScore(p.Unit.Size(), lines, p.LinesPrev)
	p.Board = board
	p.LinesPrev = lines
	return p.spawn(g.Source), nil
}

// Locked reports whether the transition from prev to p locked a unit.
func Locked(prev, p Position) bool {
	return p.Over || p.Next != prev.Next
}
