package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexfall/internal/hex"
)

func TestMoveScore(t *testing.T) {
	assert.Equal(t, 0, MoveScore(0, 0, 0))
	assert.Equal(t, 305, MoveScore(5, 2, 0))
	assert.Equal(t, 335, MoveScore(5, 2, 2))
	assert.Equal(t, 1, MoveScore(1, 0, 0))
}

func TestPowerScore(t *testing.T) {
	assert.Equal(t, 20, PowerScore(10, 0))
	assert.Equal(t, 332, PowerScore(15, 2))
}

// 3x3 空棋盘，单格方块：出生在 (1,0)，左移一次到 (0,0)，再左移触发锁定
func TestSingleCellLockEndToEnd(t *testing.T) {
	g := Game{Board: NewBoard(3, 3, nil), Source: []*Shape{single()}}
	p := Start(g)
	require.False(t, p.Over)
	assert.Equal(t, []hex.Offset{{Col: 1, Row: 0}}, p.Unit.Offsets())
	assert.Equal(t, 1, p.Next)

	p, err := Step(g, p, MoveW)
	require.NoError(t, err)
	assert.Equal(t, []hex.Offset{{Col: 0, Row: 0}}, p.Unit.Offsets())
	assert.Equal(t, 0, p.Score)

	prev := p
	p, err = Step(g, p, MoveW)
	require.NoError(t, err)
	assert.True(t, Locked(prev, p))
	assert.True(t, p.Over, "source exhausted")
	assert.True(t, p.Board.Filled(hex.Offset{Col: 0, Row: 0}))
	assert.Equal(t, 0, p.LinesPrev)
	assert.Equal(t, MoveScore(1, 0, 0), p.Score)
	assert.Equal(t, 1, p.Score)
	assert.Equal(t, MoveW, p.Last)

	_, err = Step(g, p, MoveE)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestStepSpawnsNextAndScoresLines(t *testing.T) {
	// 底行只差 (2,2)
	b := NewBoard(3, 3, []hex.Offset{{Col: 0, Row: 2}, {Col: 1, Row: 2}})
	g := Game{Board: b, Source: []*Shape{single(), single()}}
	p := Start(g)

	// (1,0) -> SE -> (2,1) -> SE -> (2,2)
	var err error
	for _, c := range []Command{MoveSE, MoveSE} {
		p, err = Step(g, p, c)
		require.NoError(t, err)
	}
	require.Equal(t, []hex.Offset{{Col: 2, Row: 2}}, p.Unit.Offsets())

	p, err = Step(g, p, MoveSE)
	require.NoError(t, err)
	assert.False(t, p.Over)
	assert.Equal(t, 1, p.LinesPrev)
	assert.Equal(t, MoveScore(1, 1, 0), p.Score)
	assert.Equal(t, 2, p.Next)
	assert.Empty(t, p.Board.FilledCells())
	assert.Equal(t, []hex.Offset{{Col: 1, Row: 0}}, p.Unit.Offsets())
}

func TestStartOverWhenSpawnBlocked(t *testing.T) {
	g := Game{Board: NewBoard(3, 3, []hex.Offset{{Col: 1, Row: 0}}), Source: []*Shape{single()}}
	p := Start(g)
	assert.True(t, p.Over)
	assert.True(t, p.Unit.IsZero())

	p = Start(Game{Board: NewBoard(3, 3, nil)})
	assert.True(t, p.Over)
}

func TestPositionsAreImmutableTrace(t *testing.T) {
	g := Game{Board: NewBoard(3, 3, nil), Source: []*Shape{single()}}
	p0 := Start(g)
	p1, err := Step(g, p0, MoveW)
	require.NoError(t, err)
	_, err = Step(g, p1, MoveW)
	require.NoError(t, err)

	assert.Equal(t, []hex.Offset{{Col: 1, Row: 0}}, p0.Unit.Offsets())
	assert.Empty(t, p1.Board.FilledCells())
}
