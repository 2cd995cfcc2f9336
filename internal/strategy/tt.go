// file: internal/strategy/tt.go
package strategy

import "hexfall/internal/game"

// ------------------------------------------------------------
//  Zobrist 键：格子下标经 splitmix64 打散，无需预生成表
// ------------------------------------------------------------

func zobristKey(i int) uint64 {
	z := uint64(i+1) * 0x9e3779b97f4a7c15
	z = (z ^ z>>30) * 0xbf58476d1ce4e5b9
	z = (z ^ z>>27) * 0x94d049bb133111eb
	return z ^ z>>31
}

// hashBoard 计算整盘哈希（已占格 XOR）
func hashBoard(b *game.Board) uint64 {
	var h uint64
	for _, o := range b.FilledCells() {
		h ^= zobristKey(o.Row*b.Width() + o.Col)
	}
	return h
}

// ------------------------------------------------------------
//  置换表：锁定后的棋盘 → 下一块的最佳 1 层分数。
//  形状对称时，不同的 pivot 会锁出同一个棋盘。
// ------------------------------------------------------------

type ttEntry struct {
	score int
	ok    bool // 下一块能否生成
}

type table struct {
	entries map[uint64]ttEntry
	lookups int
	hits    int
}

func newTable() *table {
	return &table{entries: make(map[uint64]ttEntry)}
}

func (t *table) lookup(hash uint64) (ttEntry, bool) {
	t.lookups++
	e, ok := t.entries[hash]
	if ok {
		t.hits++
	}
	return e, ok
}

func (t *table) store(hash uint64, e ttEntry) {
	t.entries[hash] = e
}
