package route

import (
	"container/heap"

	"hexfall/internal/game"
)

// Costs of the weighted search. A phrase edge is cheaper than the sum of its
// commands, which steers the search towards reusing phrases.
type Costs struct {
	Step int // cost of a single command
}

// DefaultCosts 单步代价 10，短语按一半计
var DefaultCosts = Costs{Step: 10}

func (c Costs) phrase(n int) int {
	cost := n * c.Step / 2
	if cost < 1 {
		cost = 1
	}
	return cost
}

// ---- 优先队列 ----

type item struct {
	unit game.Unit
	key  string
	cost int
	seq  int // 入队顺序，代价相同时先进先出
}

type frontier []item

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(item)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}

// weightedPath is a uniform-cost search over the move graph plus one
// shortcut edge per phrase. It returns the path without the lock command.
func weightedPath(source, target game.Unit, b *game.Board, phrases [][]game.Command, costs Costs) ([]game.Command, error) {
	if !b.CheckUnit(source) {
		return nil, ErrNoPath
	}
	srcKey := source.Key()
	targetKey := target.Key()

	dist := map[string]int{srcKey: 0}
	parent := map[string]edge{srcKey: {}}
	exhausted := map[string]bool{}

	pq := &frontier{}
	seq := 0
	push := func(u game.Unit, k string, cost int) {
		heap.Push(pq, item{unit: u, key: k, cost: cost, seq: seq})
		seq++
	}
	relax := func(from string, to game.Unit, cost int, cmds []game.Command) {
		k := to.Key()
		if d, ok := dist[k]; ok && d <= cost {
			return
		}
		dist[k] = cost
		parent[k] = edge{prev: from, cmds: cmds}
		push(to, k, cost)
	}

	push(source, srcKey, 0)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(item)
		if cur.cost > dist[cur.key] {
			continue // 过期条目
		}
		if cur.key == targetKey {
			return reconstruct(parent, srcKey, targetKey), nil
		}

		for _, c := range game.Commands {
			next := cur.unit.Apply(c)
			if !b.CheckUnit(next) {
				continue
			}
			relax(cur.key, next, cur.cost+costs.Step, []game.Command{c})
		}

		if exhausted[cur.key] {
			continue
		}
		for _, ph := range phrases {
			end, ok := walk(cur.unit, ph, b)
			if !ok {
				continue
			}
			relax(cur.key, end, cur.cost+costs.phrase(len(ph)), ph)
		}
		exhausted[cur.key] = true
	}
	return nil, ErrNoPath
}

// walk 依次执行短语中的命令，任何一步越界或碰撞都视为不可用
func walk(u game.Unit, cmds []game.Command, b *game.Board) (game.Unit, bool) {
	for _, c := range cmds {
		u = u.Apply(c)
		if !b.CheckUnit(u) {
			return u, false
		}
	}
	return u, true
}

// validPath replays path from source and checks every placement is valid,
// no footprint repeats and the walk ends exactly on target.
func validPath(source, target game.Unit, path []game.Command, b *game.Board) bool {
	seen := map[string]bool{source.Footprint(): true}
	u := source
	for _, c := range path {
		u = u.Apply(c)
		if !b.CheckUnit(u) {
			return false
		}
		fp := u.Footprint()
		if seen[fp] {
			return false
		}
		seen[fp] = true
	}
	return u.Equal(target)
}
