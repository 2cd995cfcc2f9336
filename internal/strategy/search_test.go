package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexfall/internal/game"
	"hexfall/internal/hex"
	"hexfall/internal/route"
)

func single() *game.Shape {
	return game.NewShape([]hex.Offset{{Col: 0, Row: 0}}, hex.Offset{Col: 0, Row: 0})
}

func bar3() *game.Shape {
	return game.NewShape([]hex.Offset{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}}, hex.Offset{Col: 1, Row: 0})
}

// 三格 "L"：两格横条加右下一格
func hook() *game.Shape {
	return game.NewShape([]hex.Offset{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 1, Row: 1}}, hex.Offset{Col: 0, Row: 0})
}

func TestCandidatesAreValidReachableLockable(t *testing.T) {
	b := game.NewBoard(6, 8, []hex.Offset{{Col: 0, Row: 7}, {Col: 3, Row: 6}, {Col: 4, Row: 7}})
	for _, shape := range []*game.Shape{single(), bar3(), hook()} {
		u := b.PlaceNew(shape)
		s := New()
		cands := s.Candidates(u, b)
		require.NotEmpty(t, cands)

		reach := route.Reachable(u, b)
		keys := map[string]bool{}
		for _, c := range cands {
			assert.True(t, b.CheckUnit(c))
			assert.True(t, reach.Has(c))
			assert.True(t, game.Lockable(b, c))
			assert.False(t, keys[c.Key()], "duplicate %v", c)
			keys[c.Key()] = true

			// 候选必须真的能被路由到
			path, err := route.BFS(u, c, b)
			require.NoError(t, err)
			assert.NotEmpty(t, path)
		}
	}
}

func TestSixOrientationsFindEveryRestingPlacement(t *testing.T) {
	b := game.NewBoard(5, 6, []hex.Offset{{Col: 1, Row: 5}, {Col: 2, Row: 4}})
	u := b.PlaceNew(hook())

	// 从可达集合出发直接枚举所有可锁定位置，与扫描结果比较
	want := 0
	reachable := map[string]game.Unit{}
	var walk func(game.Unit)
	walk = func(x game.Unit) {
		if _, ok := reachable[x.Key()]; ok {
			return
		}
		reachable[x.Key()] = x
		for _, c := range game.Commands {
			if n := x.Apply(c); b.CheckUnit(n) {
				walk(n)
			}
		}
	}
	walk(u)
	for _, x := range reachable {
		if game.Lockable(b, x) {
			want++
		}
	}
	assert.Len(t, New().Candidates(u, b), want)
	assert.LessOrEqual(t, len(New(WithOrientations(3)).Candidates(u, b)), want)
}

func TestBestPositionsSortedDescending(t *testing.T) {
	b := game.NewBoard(6, 8, []hex.Offset{{Col: 0, Row: 7}, {Col: 1, Row: 7}})
	u := b.PlaceNew(bar3())
	for _, next := range []*game.Shape{nil, single()} {
		best := New().BestPositions(u, next, b)
		require.NotEmpty(t, best)
		for i := 1; i < len(best); i++ {
			assert.GreaterOrEqual(t, best[i-1].Score, best[i].Score)
		}
	}
}

func TestBestPositionPrefersClearingRow(t *testing.T) {
	// 底行只差最右两格
	b := game.NewBoard(5, 6, []hex.Offset{
		{Col: 0, Row: 5}, {Col: 1, Row: 5}, {Col: 2, Row: 5},
	})
	shape := game.NewShape([]hex.Offset{{Col: 0, Row: 0}, {Col: 1, Row: 0}}, hex.Offset{Col: 0, Row: 0})
	u := b.PlaceNew(shape)

	best := New().BestPositions(u, nil, b)
	require.NotEmpty(t, best)
	assert.Equal(t, []hex.Offset{{Col: 3, Row: 5}, {Col: 4, Row: 5}}, best[0].Unit.Offsets())
	_, lines := b.Lock(best[0].Unit)
	assert.Equal(t, 1, lines)

	// 两层搜索时，最优解至少在两步内消掉一行
	best = New().BestPositions(u, single(), b)
	require.NotEmpty(t, best)
	assert.GreaterOrEqual(t, best[0].Score, DefaultWeights.Lines)
}

func TestBestPositionPrefersLowRows(t *testing.T) {
	b := game.NewBoard(4, 6, nil)
	u := b.PlaceNew(single())
	best := New(WithLookahead(false)).BestPositions(u, nil, b)
	require.NotEmpty(t, best)
	assert.Equal(t, 5, best[0].Unit.Offsets()[0].Row)
	assert.Equal(t, game.RowWeight(5), best[0].Score)
}

func TestLookaheadSkippedWhenNextCannotSpawn(t *testing.T) {
	// 单行棋盘：放在中间会挡住下一块的出生点
	b := game.NewBoard(3, 1, nil)
	u := b.PlaceNew(single())
	withNext := New().BestPositions(u, single(), b)
	without := New().BestPositions(u, nil, b)
	require.Len(t, withNext, 3)

	middle := func(cs []Candidate) Candidate {
		for _, c := range cs {
			if c.Unit.Offsets()[0] == (hex.Offset{Col: 1, Row: 0}) {
				return c
			}
		}
		t.Fatal("middle placement missing")
		return Candidate{}
	}
	assert.Equal(t, middle(without).Score, middle(withNext).Score)
	assert.Equal(t, game.RowWeight(0), middle(withNext).Score)
}

func TestHolePenalty(t *testing.T) {
	w := Weights{Lines: 0, Fill: 0, Holes: 10}
	// (1,1) 的六个邻居中只有 (2,1) 空着，锁定后变成孔洞
	b := game.NewBoard(4, 3, []hex.Offset{
		{Col: 0, Row: 0}, {Col: 1, Row: 0},
		{Col: 0, Row: 1},
		{Col: 0, Row: 2}, {Col: 1, Row: 2},
	})
	u := game.Anchor(single(), hex.FromOffset(hex.Offset{Col: 2, Row: 1}), 0)
	score, _, lines := w.scoreOnePly(b, u)
	assert.Equal(t, 0, lines)
	assert.Equal(t, -10, score)
}

func TestHashBoard(t *testing.T) {
	a := game.NewBoard(5, 5, []hex.Offset{{Col: 1, Row: 4}, {Col: 3, Row: 2}})
	b := game.NewBoard(5, 5, []hex.Offset{{Col: 3, Row: 2}, {Col: 1, Row: 4}})
	c := game.NewBoard(5, 5, []hex.Offset{{Col: 1, Row: 4}})
	assert.Equal(t, hashBoard(a), hashBoard(b))
	assert.NotEqual(t, hashBoard(a), hashBoard(c))
	assert.Zero(t, hashBoard(game.NewBoard(5, 5, nil)))
}

func TestTableSharesSymmetricPlacements(t *testing.T) {
	// 横向两格：绕 pivot 转 180° 后可以与另一个 pivot 的放置重合
	domino := game.NewShape([]hex.Offset{{Col: 0, Row: 0}, {Col: 1, Row: 0}}, hex.Offset{Col: 0, Row: 0})
	b := game.NewBoard(5, 6, nil)
	u := b.PlaceNew(domino)

	s := New()
	best, tt := s.bestPositions(u, single(), b)
	require.NotEmpty(t, best)
	assert.Positive(t, tt.hits)
	assert.Equal(t, len(best), tt.lookups)

	// 缓存不改变结果
	for _, c := range best {
		want := s.score(c.Unit, single(), b, newTable())
		assert.Equal(t, want, c.Score)
	}
}

func TestLookaheadScoreIsBestFollowUp(t *testing.T) {
	// 底行只差最右两格，横放两格会直接消行
	b := game.NewBoard(5, 6, []hex.Offset{
		{Col: 0, Row: 5}, {Col: 1, Row: 5}, {Col: 2, Row: 5},
	})
	domino := game.NewShape([]hex.Offset{{Col: 0, Row: 0}, {Col: 1, Row: 0}}, hex.Offset{Col: 0, Row: 0})
	u := b.PlaceNew(domino)

	s := New()
	best := s.BestPositions(u, single(), b)
	require.NotEmpty(t, best)

	clearing := 0
	for _, c := range best {
		after, lines := b.Lock(c.Unit)
		spawn := after.PlaceNew(single())
		if !after.CheckUnit(spawn) {
			// 挡住出生点时退回 1 层分数
			one, _, _ := DefaultWeights.scoreOnePly(b, c.Unit)
			assert.Equal(t, one, c.Score)
			continue
		}
		want := math.MinInt
		for _, nc := range s.Candidates(spawn, after) {
			v, _, _ := DefaultWeights.scoreOnePly(after, nc)
			want = max(want, v)
		}
		assert.Equal(t, want, c.Score, "placement %v", c.Unit.Offsets())

		if lines > 0 {
			clearing++
			// 消行后棋盘为空，下一块落到最底行
			assert.Equal(t, game.RowWeight(5), c.Score)
		}
	}
	assert.Positive(t, clearing)

	// 打开 carry lines 后把第一层的消行奖励加回来
	carried := New(WithCarryLines(true)).BestPositions(u, single(), b)
	for _, c := range carried {
		if _, lines := b.Lock(c.Unit); lines > 0 {
			assert.Equal(t, DefaultWeights.Lines+game.RowWeight(5), c.Score)
		}
	}
}
