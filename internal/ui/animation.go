package ui

import (
	"time"

	"hexfall/internal/hex"
)

// Flash 锁定后短暂高亮新占用的格子，亮度随时间线性衰减
type Flash struct {
	Cells    []hex.Offset
	Start    time.Time
	Duration time.Duration

	alpha float64
}

// NewFlash starts a flash at start.
func NewFlash(cells []hex.Offset, start time.Time, d time.Duration) *Flash {
	return &Flash{Cells: cells, Start: start, Duration: d, alpha: 1}
}

// Done updates the fade for now and reports whether it has finished.
func (f *Flash) Done(now time.Time) bool {
	if f.Duration <= 0 {
		f.alpha = 0
		return true
	}
	elapsed := now.Sub(f.Start)
	if elapsed < 0 {
		elapsed = 0
	}
	f.alpha = 1 - float64(elapsed)/float64(f.Duration)
	return f.alpha <= 0
}

// Alpha is the brightness computed by the last Done call, in (0, 1].
func (f *Flash) Alpha() float64 { return f.alpha }
