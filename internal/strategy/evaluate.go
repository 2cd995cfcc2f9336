// file: internal/strategy/evaluate.go
package strategy

import "hexfall/internal/game"

// Weights 静态评估的可调参数
type Weights struct {
	Lines int // 每消除一行的奖励，远大于其它项
	Fill  int // WeightedFill 的系数
	Holes int // 每个孔洞的惩罚
}

// DefaultWeights 消行优先，其次让方块尽量靠下
var DefaultWeights = Weights{
	Lines: 1_000_000,
	Fill:  1,
	Holes: 0,
}

// evaluate 对锁定后的棋盘打分（1 层）。lines 是这次锁定消除的行数。
func (w Weights) evaluate(after *game.Board, lines int) int {
	return lines*w.Lines +
		w.Fill*after.WeightedFill() -
		w.Holes*after.Holes()
}

// scoreOnePly 把 u 锁到 b 上并评分，同时返回锁定后的棋盘
func (w Weights) scoreOnePly(b *game.Board, u game.Unit) (int, *game.Board, int) {
	after, lines := b.Lock(u)
	return w.evaluate(after, lines), after, lines
}
