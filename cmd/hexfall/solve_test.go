package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexfall/internal/budget"
	"hexfall/internal/config"
	"hexfall/internal/encoding"
	"hexfall/internal/play"
	"hexfall/internal/problem"
	"hexfall/internal/solution"
)

const sample = `{
  "id": 42,
  "units": [
    {"members": [{"x": 0, "y": 0}], "pivot": {"x": 0, "y": 0}},
    {"members": [{"x": 0, "y": 0}, {"x": 1, "y": 0}, {"x": 2, "y": 0}], "pivot": {"x": 1, "y": 0}}
  ],
  "width": 6,
  "height": 8,
  "filled": [{"x": 0, "y": 7}],
  "sourceLength": 6,
  "sourceSeeds": [0, 17, 99]
}`

func testOptions(t *testing.T) options {
	t.Setenv(config.EnvPath, "")
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Tag = "test"
	cfg.Phrases = []string{"ei!"}
	return options{
		cfg:     cfg,
		workers: 2,
		budget:  budget.New(0, 0),
		logger:  log.New(io.Discard, "", 0),
	}
}

func TestSolveAll(t *testing.T) {
	p, err := problem.Decode(strings.NewReader(sample))
	require.NoError(t, err)

	opts := testOptions(t)
	opts.traceDir = filepath.Join(t.TempDir(), "traces")
	opts.pngDir = filepath.Join(t.TempDir(), "png")
	results, err := solveAll([]*problem.Problem{p}, opts)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		require.NoError(t, r.err)
		assert.Equal(t, p.SourceSeeds[i], r.seed)
		assert.Equal(t, 42, r.problemID)
		assert.Equal(t, 6, r.result.Locks)

		// 编码后的解能还原出同样的命令
		cmds, err := encoding.Decode(r.encoded)
		require.NoError(t, err)
		assert.Equal(t, r.result.Commands, cmds)

		tf, err := solution.ReadTrace(filepath.Join(opts.traceDir, solution.FileName(42, r.seed, true)))
		require.NoError(t, err)
		assert.Len(t, tf.Steps, len(r.result.Trace))
		assert.Equal(t, r.encoded, tf.Solution)

		_, err = os.Stat(filepath.Join(opts.pngDir, "board_42_"+itoa(r.seed)+".png"))
		assert.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, solution.Write(&buf, solutions(results, "test")))
	back, err := solution.Read(&buf)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.Equal(t, "test", back[0].Tag)
}

func TestSolveAllBadPhrase(t *testing.T) {
	opts := testOptions(t)
	opts.cfg.Phrases = []string{"#"}
	_, err := solveAll(nil, opts)
	assert.ErrorIs(t, err, encoding.ErrUnknownSymbol)
}

func TestPrintTraces(t *testing.T) {
	p, err := problem.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	p.SourceSeeds = []uint32{0}
	results, err := solveAll([]*problem.Problem{p}, testOptions(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	printTraces(&buf, results)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "=== problem 42 seed 0"))
	assert.Contains(t, out, "step 0 - score=0")
	assert.Contains(t, out, "*")
}

func TestMultiFlag(t *testing.T) {
	var m multiFlag
	require.NoError(t, m.Set("a.json"))
	require.NoError(t, m.Set("b.json"))
	assert.Equal(t, multiFlag{"a.json", "b.json"}, m)
	assert.Equal(t, "a.json,b.json", m.String())
}

func itoa(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

func TestProgressLineShowsRemainingTime(t *testing.T) {
	p, err := problem.Decode(strings.NewReader(sample))
	require.NoError(t, err)
	p.SourceSeeds = []uint32{17}

	var logs bytes.Buffer
	opts := testOptions(t)
	opts.logger = log.New(&logs, "", 0)
	opts.budget = budget.New(time.Hour, 0)
	_, err = solveAll([]*problem.Problem{p}, opts)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "problem 42 seed 17: score")
	assert.Contains(t, logs.String(), "left")

	// 没有时间上限时不打印
	logs.Reset()
	opts.budget = budget.New(0, 0)
	_, err = solveAll([]*problem.Problem{p}, opts)
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "left")
}

func TestExitCode(t *testing.T) {
	ok := &seedResult{}
	stuck := &seedResult{err: fmt.Errorf("unit x: %w", play.ErrNoRoute)}
	other := &seedResult{err: play.ErrNoLock}

	assert.Zero(t, exitCode(nil))
	assert.Zero(t, exitCode([]*seedResult{ok, other}))
	assert.Equal(t, 1, exitCode([]*seedResult{ok, stuck}))
}
