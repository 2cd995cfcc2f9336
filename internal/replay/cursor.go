// Package replay steps through recorded games.
package replay

import (
	"hexfall/internal/hex"
	"hexfall/internal/solution"
)

// Cursor 指向若干局轨迹中的某一帧
type Cursor struct {
	traces []*solution.TraceFile
	ti, si int
}

// NewCursor starts at the first step of the first non-empty trace.
// Traces without steps are dropped.
func NewCursor(traces []*solution.TraceFile) *Cursor {
	c := &Cursor{}
	for _, t := range traces {
		if len(t.Steps) > 0 {
			c.traces = append(c.traces, t)
		}
	}
	return c
}

// Empty reports whether there is nothing to show.
func (c *Cursor) Empty() bool { return len(c.traces) == 0 }

// Len returns the number of traces.
func (c *Cursor) Len() int { return len(c.traces) }

// Index returns the trace and step indexes.
func (c *Cursor) Index() (int, int) { return c.ti, c.si }

// Trace returns the current trace, nil when empty.
func (c *Cursor) Trace() *solution.TraceFile {
	if c.Empty() {
		return nil
	}
	return c.traces[c.ti]
}

// Step returns the current step.
func (c *Cursor) Step() solution.Step {
	return c.traces[c.ti].Steps[c.si]
}

// AtEnd reports whether the cursor is on the last step of the last trace.
func (c *Cursor) AtEnd() bool {
	return c.Empty() || (c.ti == len(c.traces)-1 && c.si == len(c.traces[c.ti].Steps)-1)
}

// Next moves one step forward, into the next trace after the last step.
// It returns false at the very end.
func (c *Cursor) Next() bool {
	if c.AtEnd() {
		return false
	}
	if c.si < len(c.traces[c.ti].Steps)-1 {
		c.si++
		return true
	}
	c.ti++
	c.si = 0
	return true
}

// Prev moves one step back, into the last step of the previous trace
// before the first step.
func (c *Cursor) Prev() bool {
	if c.Empty() {
		return false
	}
	if c.si > 0 {
		c.si--
		return true
	}
	if c.ti == 0 {
		return false
	}
	c.ti--
	c.si = len(c.traces[c.ti].Steps) - 1
	return true
}

// NextTrace jumps to the first step of the next trace.
func (c *Cursor) NextTrace() bool {
	if c.ti >= len(c.traces)-1 {
		return false
	}
	c.ti++
	c.si = 0
	return true
}

// PrevTrace jumps to the first step of the previous trace, or to the
// first step of this one when already past it.
func (c *Cursor) PrevTrace() bool {
	if c.Empty() {
		return false
	}
	if c.si > 0 {
		c.si = 0
		return true
	}
	if c.ti == 0 {
		return false
	}
	c.ti--
	return true
}

// NewlyFilled lists the cells filled in the current step that were free in
// the previous one, i.e. what the last lock left behind after clearing.
func (c *Cursor) NewlyFilled() []hex.Offset {
	if c.Empty() || c.si == 0 {
		return nil
	}
	steps := c.traces[c.ti].Steps
	before := make(map[hex.Offset]bool, len(steps[c.si-1].Filled))
	for _, o := range steps[c.si-1].Filled {
		before[o] = true
	}
	var out []hex.Offset
	for _, o := range steps[c.si].Filled {
		if !before[o] {
			out = append(out, o)
		}
	}
	return out
}
