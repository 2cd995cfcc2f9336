// Package budget tracks the advisory time and memory limits given on the
// command line. Exceeding them is reported, never enforced.
package budget

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Budget 时间和内存上限，零值表示不限制
type Budget struct {
	Time     time.Duration
	MemoryMB int

	start time.Time
	now   func() time.Time
	rss   func() (uint64, error)
}

// New starts the clock.
func New(limit time.Duration, memoryMB int) *Budget {
	b := &Budget{Time: limit, MemoryMB: memoryMB, now: time.Now, rss: processRSS}
	b.start = b.now()
	return b
}

// processRSS 当前进程的常驻内存（字节）
func processRSS() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}

// Elapsed returns the time since New.
func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

// Remaining returns the time left, or a negative duration when over. It is
// zero when there is no time limit.
func (b *Budget) Remaining() time.Duration {
	if b.Time <= 0 {
		return 0
	}
	return b.Time - b.Elapsed()
}

// TimeExceeded reports whether a time limit is set and has passed.
func (b *Budget) TimeExceeded() bool {
	return b.Time > 0 && b.Elapsed() > b.Time
}

// MemoryExceeded reports whether a memory limit is set and the process RSS
// is above it, along with the RSS in megabytes.
func (b *Budget) MemoryExceeded() (bool, float64, error) {
	if b.MemoryMB <= 0 {
		return false, 0, nil
	}
	rss, err := b.rss()
	if err != nil {
		return false, 0, fmt.Errorf("read rss: %w", err)
	}
	mb := float64(rss) / 1024 / 1024
	return mb > float64(b.MemoryMB), mb, nil
}

// Check returns one warning per exceeded limit.
func (b *Budget) Check() []string {
	var warns []string
	if b.TimeExceeded() {
		warns = append(warns, fmt.Sprintf("time limit %v exceeded (%v elapsed)", b.Time, b.Elapsed().Round(time.Millisecond)))
	}
	over, mb, err := b.MemoryExceeded()
	switch {
	case err != nil:
		warns = append(warns, err.Error())
	case over:
		warns = append(warns, fmt.Sprintf("memory limit %d MB exceeded (rss %.1f MB)", b.MemoryMB, mb))
	}
	return warns
}
