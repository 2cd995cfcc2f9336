package route

import (
	"log"

	"hexfall/internal/game"
)

// Router picks between the phrase-aware weighted search and plain BFS.
type Router struct {
	phrases [][]game.Command
	costs   Costs
	logger  *log.Logger

	// 统计：加权搜索结果被丢弃、回退到 BFS 的次数
	Fallbacks int
}

// Option configures a Router.
type Option func(*Router)

// WithCosts overrides DefaultCosts.
func WithCosts(c Costs) Option {
	return func(r *Router) { r.costs = c }
}

// WithLogger sets the logger used for fallback reports.
func WithLogger(l *log.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// New returns a router for the given phrases (each a literal command
// sequence). With no phrases the router is plain BFS.
func New(phrases [][]game.Command, opts ...Option) *Router {
	r := &Router{costs: DefaultCosts, logger: log.Default()}
	for _, ph := range phrases {
		if len(ph) > 0 {
			r.phrases = append(r.phrases, ph)
		}
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Route returns the commands that move source to target and then lock it.
// Every intermediate placement is valid on b. ErrNoPath if target is not
// reachable.
func (r *Router) Route(source, target game.Unit, b *game.Board) ([]game.Command, error) {
	if len(r.phrases) == 0 {
		return BFS(source, target, b)
	}

	// 短语的每一步都是合法单步，两种搜索的可达集合相同，
	// 所以加权搜索找不到路径时 BFS 也找不到
	path, err := weightedPath(source, target, b, r.phrases, r.costs)
	if err != nil {
		return nil, err
	}
	if validPath(source, target, path, b) {
		return withLock(path, target, b), nil
	}
	// 加权路径出现了重复的落点（位置环），改用 BFS
	r.Fallbacks++
	r.logger.Printf("route: weighted path revisits a footprint, falling back to BFS (%d cmds)", len(path))
	return BFS(source, target, b)
}
