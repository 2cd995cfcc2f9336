package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"hexfall/internal/budget"
	"hexfall/internal/config"
	"hexfall/internal/problem"
	"hexfall/internal/solution"
)

// multiFlag 可重复出现的字符串参数
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	// ───── 参数 ─────
	var files, phrases multiFlag
	flag.Var(&files, "f", "题目 JSON 文件（可重复）")
	flag.Var(&phrases, "p", "力量短语（可重复，追加到配置文件中的短语之后）")
	seconds := flag.Int("t", 0, "时间上限（秒），仅告警")
	megabytes := flag.Int("m", 0, "内存上限（MB），仅告警")
	cores := flag.Int("c", runtime.NumCPU(), "并行 worker 数")
	debug := flag.Bool("d", false, "输出逐步轨迹而不是 JSON")
	help := flag.Bool("h", false, "显示帮助")
	cfgPath := flag.String("config", "", "YAML 配置文件（默认读 $"+config.EnvPath+"）")
	traceDir := flag.String("trace", "", "把每局轨迹写到该目录（.json.zst）")
	pngDir := flag.String("png", "", "把每局终局棋盘写成 PNG")
	tag := flag.String("tag", "", "提交标签，默认取配置或随机生成")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "missing -f")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.Phrases = append(cfg.Phrases, phrases...)
	switch {
	case *tag != "":
		cfg.Tag = *tag
	case cfg.Tag == "":
		cfg.Tag = "hexfall-" + uuid.NewString()[:8]
	}

	var problems []*problem.Problem
	for _, path := range files {
		p, err := problem.Load(path)
		if err != nil {
			log.Fatalf("load: %v", err)
		}
		log.Printf("problem %d: %dx%d board, %d shapes, %d seeds",
			p.ID, p.Board().Width(), p.Board().Height(), len(p.Shapes()), len(p.SourceSeeds))
		problems = append(problems, p)
	}

	opts := options{
		cfg:      cfg,
		workers:  *cores,
		debug:    *debug,
		traceDir: *traceDir,
		pngDir:   *pngDir,
		budget:   budget.New(time.Duration(*seconds)*time.Second, *megabytes),
		logger:   log.Default(),
	}
	results, err := solveAll(problems, opts)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	if *debug {
		printTraces(os.Stdout, results)
	} else if err := solution.Write(os.Stdout, solutions(results, cfg.Tag)); err != nil {
		log.Fatalf("write: %v", err)
	}
	// 输出已写完，部分解依然有效；但无路可走说明搜索出了问题
	if code := exitCode(results); code != 0 {
		log.Printf("some games stopped without a routable placement")
		os.Exit(code)
	}
}

func solutions(results []*seedResult, tag string) []solution.Solution {
	out := make([]solution.Solution, len(results))
	for i, r := range results {
		out[i] = solution.Solution{ProblemID: r.problemID, Seed: r.seed, Tag: tag, Solution: r.encoded}
	}
	return out
}

// printTraces 调试输出：每一步的棋盘和得分
func printTraces(w io.Writer, results []*seedResult) {
	for _, r := range results {
		fmt.Fprintf(w, "=== problem %d seed %d: score %d (+%d power) ===\n",
			r.problemID, r.seed, r.result.Score, r.power)
		for i, p := range r.result.Trace {
			cmd := "-"
			if p.HasLast {
				cmd = p.Last.String()
			}
			fmt.Fprintf(w, "step %d %s score=%d\n", i, cmd, p.Score)
			if p.Over {
				fmt.Fprint(w, p.Board.String())
				continue
			}
			u := p.Unit
			fmt.Fprint(w, p.Board.Draw(&u))
		}
		if r.err != nil {
			fmt.Fprintf(w, "stopped: %v\n", r.err)
		}
	}
}
