// cmd/replay/main.go
package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"hexfall/internal/solution"
	"hexfall/internal/ui"
)

func main() {
	pattern := flag.String("in", "traces/*.json*", "轨迹文件（支持通配符，.zst 自动解压）")
	delay := flag.Duration("delay", 150*time.Millisecond, "每步播放间隔")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		if paths, err = filepath.Glob(*pattern); err != nil {
			log.Fatalf("glob %s: %v", *pattern, err)
		}
	}
	if len(paths) == 0 {
		log.Fatalf("no trace files match %s", *pattern)
	}

	var traces []*solution.TraceFile
	for _, p := range paths {
		tf, err := solution.ReadTrace(p)
		if err != nil {
			log.Printf("skip %s: %v", p, err)
			continue
		}
		traces = append(traces, tf)
	}
	log.Printf("loaded %d/%d traces", len(traces), len(paths))

	screen, err := ui.NewReplayScreen(traces, *delay)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetTPS(30)
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("hexfall 回放")
	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal(err)
	}
}
