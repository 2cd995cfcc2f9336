// Package route turns a desired resting placement into a command sequence.
package route

import (
	"errors"
	"fmt"

	"hexfall/internal/game"
)

// ErrNoPath means the target placement cannot be reached from the source.
var ErrNoPath = errors.New("route: no path to target")

// Set is a set of placement keys.
type Set map[string]struct{}

// Has reports whether u is in the set.
func (s Set) Has(u game.Unit) bool {
	_, ok := s[u.Key()]
	return ok
}

// edge 记录如何到达某个节点：前驱节点 key 和走过的命令（单条命令或整段短语）
type edge struct {
	prev string
	cmds []game.Command
}

// BFS finds a shortest command path from source to target over board-valid
// placements. The returned path ends with the lock command of target.
func BFS(source, target game.Unit, b *game.Board) ([]game.Command, error) {
	path, err := bfsPath(source, target, b)
	if err != nil {
		return nil, err
	}
	return withLock(path, target, b), nil
}

func bfsPath(source, target game.Unit, b *game.Board) ([]game.Command, error) {
	if !b.CheckUnit(source) {
		return nil, fmt.Errorf("route: source %v is not on the board", source)
	}
	targetKey := target.Key()
	srcKey := source.Key()

	parent := map[string]edge{srcKey: {}}
	queue := []game.Unit{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curKey := cur.Key()
		if curKey == targetKey {
			return reconstruct(parent, srcKey, targetKey), nil
		}
		for _, c := range game.Commands {
			next := cur.Apply(c)
			if !b.CheckUnit(next) {
				continue
			}
			k := next.Key()
			if _, seen := parent[k]; seen {
				continue
			}
			parent[k] = edge{prev: curKey, cmds: []game.Command{c}}
			queue = append(queue, next)
		}
	}
	return nil, ErrNoPath
}

// Reachable floods the move graph from source and returns every placement
// key it reaches, source included.
func Reachable(source game.Unit, b *game.Board) Set {
	seen := Set{}
	if !b.CheckUnit(source) {
		return seen
	}
	seen[source.Key()] = struct{}{}
	queue := []game.Unit{source}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range game.Commands {
			next := cur.Apply(c)
			if !b.CheckUnit(next) {
				continue
			}
			k := next.Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			queue = append(queue, next)
		}
	}
	return seen
}

// reconstruct 沿 parent 指针回溯出命令序列
func reconstruct(parent map[string]edge, srcKey, dstKey string) []game.Command {
	var chunks [][]game.Command
	for k := dstKey; k != srcKey; {
		e := parent[k]
		chunks = append(chunks, e.cmds)
		k = e.prev
	}
	var path []game.Command
	for i := len(chunks) - 1; i >= 0; i-- {
		path = append(path, chunks[i]...)
	}
	return path
}

// withLock 在路径末尾追加一条使目标位置锁定的命令
func withLock(path []game.Command, target game.Unit, b *game.Board) []game.Command {
	c, ok := game.LockCommand(b, target)
	if !ok {
		panic(fmt.Sprintf("route: target %v is not a resting placement", target))
	}
	return append(path, c)
}
