// Package strategy chooses where each falling unit should come to rest.
package strategy

import (
	"math"
	"sort"

	"hexfall/internal/game"
	"hexfall/internal/hex"
	"hexfall/internal/route"
)

// Candidate is a resting placement with its heuristic score.
type Candidate struct {
	Unit  game.Unit
	Score int
}

// Searcher generates and ranks resting placements.
type Searcher struct {
	weights      Weights
	margin       int
	orientations int
	lookahead    bool
	carryLines   bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(s *Searcher) { s.weights = w }
}

// WithMargin sets how many cells beyond the board the pivot scan extends.
func WithMargin(m int) Option {
	return func(s *Searcher) {
		if m >= 0 {
			s.margin = m
		}
	}
}

// WithOrientations sets how many clockwise turns (starting at 0) are tried
// per anchor, between 1 and 6.
func WithOrientations(n int) Option {
	return func(s *Searcher) {
		if n >= 1 && n <= 6 {
			s.orientations = n
		}
	}
}

// WithLookahead enables or disables scoring one extra ply with the next shape.
func WithLookahead(on bool) Option {
	return func(s *Searcher) { s.lookahead = on }
}

// WithCarryLines adds the line bonus of the first lock to the lookahead
// score. Off by default: the lookahead score is only the follow-up's best
// 1-ply score.
func WithCarryLines(on bool) Option {
	return func(s *Searcher) { s.carryLines = on }
}

// New returns a Searcher with margin 3, all six orientations and lookahead on.
func New(opts ...Option) *Searcher {
	s := &Searcher{
		weights:      DefaultWeights,
		margin:       3,
		orientations: 6,
		lookahead:    true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Candidates lists every placement of u's shape that is valid on b,
// reachable from u and lockable, in scan order: rows, then columns, then
// orientation. Placements are deduplicated by absolute position.
func (s *Searcher) Candidates(u game.Unit, b *game.Board) []game.Unit {
	reach := route.Reachable(u, b)
	if len(reach) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []game.Unit
	for row := -s.margin; row < b.Height()+s.margin; row++ {
		for col := -s.margin; col < b.Width()+s.margin; col++ {
			pivot := hex.FromOffset(hex.Offset{Col: col, Row: row})
			for turns := 0; turns < s.orientations; turns++ {
				c := game.Anchor(u.Shape(), pivot, turns)
				if !b.CheckUnit(c) {
					continue
				}
				k := c.Key()
				if seen[k] {
					continue
				}
				seen[k] = true
				if !reach.Has(c) || !game.Lockable(b, c) {
					continue
				}
				out = append(out, c)
			}
		}
	}
	return out
}

// BestPositions ranks the resting placements for u, best first. When next
// is non-nil and lookahead is enabled, each placement is scored by the best
// follow-up placement of next. Ties keep scan order.
func (s *Searcher) BestPositions(u game.Unit, next *game.Shape, b *game.Board) []Candidate {
	out, _ := s.bestPositions(u, next, b)
	return out
}

func (s *Searcher) bestPositions(u game.Unit, next *game.Shape, b *game.Board) ([]Candidate, *table) {
	cands := s.Candidates(u, b)
	tt := newTable()
	out := make([]Candidate, len(cands))
	for i, c := range cands {
		out[i] = Candidate{Unit: c, Score: s.score(c, next, b, tt)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, tt
}

func (s *Searcher) score(c game.Unit, next *game.Shape, b *game.Board, tt *table) int {
	one, after, lines := s.weights.scoreOnePly(b, c)
	if next == nil || !s.lookahead {
		return one
	}
	h := hashBoard(after)
	e, hit := tt.lookup(h)
	if !hit {
		e = s.followUp(after, next)
		tt.store(h, e)
	}
	if !e.ok {
		return one
	}
	if s.carryLines {
		// 第一层消掉的行已经从 after 上移除，单独把奖励加回来
		return lines*s.weights.Lines + e.score
	}
	return e.score
}

// followUp 下一块在 after 上的最佳 1 层分数
func (s *Searcher) followUp(after *game.Board, next *game.Shape) ttEntry {
	spawn := after.PlaceNew(next)
	if !after.CheckUnit(spawn) {
		return ttEntry{}
	}
	best := math.MinInt
	for _, nc := range s.Candidates(spawn, after) {
		v, _, _ := s.weights.scoreOnePly(after, nc)
		if v > best {
			best = v
		}
	}
	if best == math.MinInt {
		return ttEntry{}
	}
	return ttEntry{score: best, ok: true}
}
