package solution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"hexfall/internal/game"
	"hexfall/internal/hex"
)

// Step 轨迹中的一帧
type Step struct {
	Filled  []hex.Offset `json:"filled"`
	Unit    []hex.Offset `json:"unit,omitempty"`
	Score   int          `json:"score"`
	Command string       `json:"command,omitempty"` // 到达这一帧的命令，第 0 帧为空
	Over    bool         `json:"over,omitempty"`
}

// TraceFile is a complete game, one step per position.
type TraceFile struct {
	ProblemID int    `json:"problemId"`
	Seed      uint32 `json:"seed"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Solution  string `json:"solution"`
	Steps     []Step `json:"steps"`
}

// NewTrace converts positions into a TraceFile.
func NewTrace(problemID int, seed uint32, encoded string, trace []game.Position) *TraceFile {
	tf := &TraceFile{ProblemID: problemID, Seed: seed, Solution: encoded}
	if len(trace) > 0 {
		tf.Width, tf.Height = trace[0].Board.Width(), trace[0].Board.Height()
	}
	tf.Steps = make([]Step, len(trace))
	for i, p := range trace {
		s := Step{Filled: p.Board.FilledCells(), Score: p.Score, Over: p.Over}
		if !p.Unit.IsZero() {
			s.Unit = p.Unit.Offsets()
		}
		if p.HasLast {
			s.Command = p.Last.String()
		}
		tf.Steps[i] = s
	}
	return tf
}

// FileName is the conventional trace file name for a problem and seed.
func FileName(problemID int, seed uint32, compress bool) string {
	name := fmt.Sprintf("trace_%d_%d.json", problemID, seed)
	if compress {
		name += ".zst"
	}
	return name
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteTrace writes tf to path; a ".zst" suffix selects zstd compression.
func WriteTrace(path string, tf *TraceFile) error {
	data, err := json.Marshal(tf)
	if err != nil {
		return err
	}
	if compressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadTrace reads a file written by WriteTrace.
func ReadTrace(path string) (*TraceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if compressed(path) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	var tf TraceFile
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&tf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &tf, nil
}
