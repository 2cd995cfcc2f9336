// Package play drives one game from spawn to game over: for every falling
// unit it picks a resting placement, routes to it and replays the route
// through the state machine.
package play

import (
	"errors"
	"fmt"
	"log"

	"hexfall/internal/game"
	"hexfall/internal/route"
	"hexfall/internal/strategy"
)

var (
	// ErrNoRoute 没有任何候选落点能被路由到，整局无法继续
	ErrNoRoute = errors.New("no routable placement")
	// ErrNoLock 路由的最后一条命令没有触发锁定
	ErrNoLock = errors.New("route did not lock the unit")
)

// Result is the outcome of one game.
type Result struct {
	Commands []game.Command
	Trace    []game.Position // Trace[0] 是开局状态，其后每条命令一个
	Score    int
	Locks    int
}

// Player combines a router and a searcher.
type Player struct {
	router   *route.Router
	searcher *strategy.Searcher
	logger   *log.Logger
	debug    bool
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger; nil keeps log.Default().
func WithLogger(l *log.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDebug logs one line per lock.
func WithDebug(on bool) Option {
	return func(p *Player) { p.debug = on }
}

// New returns a Player. A nil router or searcher gets the defaults.
func New(r *route.Router, s *strategy.Searcher, opts ...Option) *Player {
	p := &Player{router: r, searcher: s, logger: log.Default()}
	for _, o := range opts {
		o(p)
	}
	if p.router == nil {
		p.router = route.New(nil, route.WithLogger(p.logger))
	}
	if p.searcher == nil {
		p.searcher = strategy.New()
	}
	return p
}

// Run plays g to the end.
func (pl *Player) Run(g game.Game) (*Result, error) {
	p := game.Start(g)
	res := &Result{Trace: []game.Position{p}}

	for !p.Over {
		path, target, err := pl.plan(g, p)
		if err != nil {
			res.Score = p.Score
			return res, err
		}
		for i, cmd := range path {
			prev := p
			p, err = game.Step(g, p, cmd)
			if err != nil {
				res.Score = p.Score
				return res, fmt.Errorf("step %d (%v): %w", len(res.Commands), cmd, err)
			}
			res.Commands = append(res.Commands, cmd)
			res.Trace = append(res.Trace, p)

			last := i == len(path)-1
			if game.Locked(prev, p) != last {
				res.Score = p.Score
				return res, fmt.Errorf("unit %v at command %d of %d: %w", target, i+1, len(path), ErrNoLock)
			}
		}
		res.Locks++
		if pl.debug {
			pl.logger.Printf("lock %d: %v, %d cmds, lines=%d score=%d",
				res.Locks, target, len(path), p.LinesPrev, p.Score)
		}
	}
	res.Score = p.Score
	return res, nil
}

// plan 取最优候选中第一个能路由到的
func (pl *Player) plan(g game.Game, p game.Position) ([]game.Command, game.Unit, error) {
	var next *game.Shape
	if p.Next < len(g.Source) {
		next = g.Source[p.Next]
	}
	cands := pl.searcher.BestPositions(p.Unit, next, p.Board)
	for _, c := range cands {
		path, err := pl.router.Route(p.Unit, c.Unit, p.Board)
		if errors.Is(err, route.ErrNoPath) {
			continue
		}
		if err != nil {
			return nil, game.Unit{}, err
		}
		return path, c.Unit, nil
	}
	return nil, game.Unit{}, fmt.Errorf("unit %v, %d candidates: %w", p.Unit, len(cands), ErrNoRoute)
}
