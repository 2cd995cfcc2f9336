package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hexfall/internal/budget"
	"hexfall/internal/config"
	"hexfall/internal/encoding"
	"hexfall/internal/play"
	"hexfall/internal/problem"
	"hexfall/internal/render"
	"hexfall/internal/route"
	"hexfall/internal/solution"
	"hexfall/internal/strategy"
)

type options struct {
	cfg      *config.Config
	workers  int
	debug    bool
	traceDir string
	pngDir   string
	budget   *budget.Budget
	logger   *log.Logger
}

type job struct {
	idx  int
	prob *problem.Problem
	seed uint32
}

// seedResult 一个种子的结果。err 非空时 result 只包含出错前的部分
type seedResult struct {
	problemID int
	seed      uint32
	result    *play.Result
	encoded   string
	power     int
	fallbacks int
	err       error
}

// solveAll 每个种子是独立的一局，用 worker 池并行，结果按输入顺序返回
func solveAll(problems []*problem.Problem, opts options) ([]*seedResult, error) {
	phrases, err := encoding.Phrases(opts.cfg.Phrases)
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{opts.traceDir, opts.pngDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	var jobs []job
	for _, p := range problems {
		for _, s := range p.SourceSeeds {
			jobs = append(jobs, job{idx: len(jobs), prob: p, seed: s})
		}
	}

	workers := opts.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	opts.logger.Printf("%d problems, %d games, %d workers", len(problems), len(jobs), workers)

	results := make([]*seedResult, len(jobs))
	ch := make(chan job, workers*2)
	var wg sync.WaitGroup
	var warnOnce sync.Once
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// 路由器带统计计数，每个 worker 一个
			r := route.New(phrases, route.WithCosts(opts.cfg.Costs()), route.WithLogger(opts.logger))
			s := strategy.New(opts.cfg.SearcherOptions()...)
			pl := play.New(r, s, play.WithLogger(opts.logger), play.WithDebug(opts.debug))
			for j := range ch {
				before := r.Fallbacks
				results[j.idx] = solveOne(pl, j, opts)
				if n := r.Fallbacks - before; n > 0 {
					results[j.idx].fallbacks = n
					opts.logger.Printf("problem %d seed %d: %d routes fell back to BFS", j.prob.ID, j.seed, n)
				}
				if opts.budget != nil {
					if warns := opts.budget.Check(); len(warns) > 0 {
						warnOnce.Do(func() {
							for _, w := range warns {
								opts.logger.Printf("budget: %s", w)
							}
						})
					}
				}
			}
		}()
	}

	// ───── 投任务 ─────
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()
	return results, nil
}

func solveOne(pl *play.Player, j job, opts options) *seedResult {
	g := j.prob.Game(j.seed)
	res, err := pl.Run(g)
	sr := &seedResult{problemID: j.prob.ID, seed: j.seed, result: res, err: err}
	sr.encoded = encoding.Encode(res.Commands, opts.cfg.Phrases)
	sr.power = encoding.PowerScores(sr.encoded, opts.cfg.Phrases)
	if err != nil {
		opts.logger.Printf("problem %d seed %d: %v (keeping %d commands)", j.prob.ID, j.seed, err, len(res.Commands))
	}
	line := fmt.Sprintf("problem %d seed %d: score %d + power %d, %d locks, %d cmds",
		j.prob.ID, j.seed, res.Score, sr.power, res.Locks, len(res.Commands))
	if opts.budget != nil && opts.budget.Time > 0 {
		line += fmt.Sprintf(", %v left", opts.budget.Remaining().Round(time.Millisecond))
	}
	opts.logger.Print(line)

	if opts.traceDir != "" {
		path := filepath.Join(opts.traceDir, solution.FileName(j.prob.ID, j.seed, true))
		tf := solution.NewTrace(j.prob.ID, j.seed, sr.encoded, res.Trace)
		if err := solution.WriteTrace(path, tf); err != nil {
			opts.logger.Printf("trace %s: %v", path, err)
		}
	}
	if opts.pngDir != "" {
		last := res.Trace[len(res.Trace)-1]
		path := filepath.Join(opts.pngDir, fmt.Sprintf("board_%d_%d.png", j.prob.ID, j.seed))
		if err := render.WritePNG(path, last.Board, nil, 12); err != nil {
			opts.logger.Printf("png %s: %v", path, err)
		}
	}
	return sr
}

// exitCode 任一局因无路可走而中断时返回非零
func exitCode(results []*seedResult) int {
	for _, r := range results {
		if errors.Is(r.err, play.ErrNoRoute) {
			return 1
		}
	}
	return 0
}
