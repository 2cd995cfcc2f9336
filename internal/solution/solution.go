// Package solution writes solution records and game traces.
package solution

import (
	"encoding/json"
	"io"
)

// Solution 一个种子的提交记录
type Solution struct {
	ProblemID int    `json:"problemId"`
	Seed      uint32 `json:"seed"`
	Tag       string `json:"tag"`
	Solution  string `json:"solution"`
}

// Write writes sols as one JSON array. A nil slice is written as [].
func Write(w io.Writer, sols []Solution) error {
	if sols == nil {
		sols = []Solution{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sols)
}

// Read decodes an array written by Write.
func Read(r io.Reader) ([]Solution, error) {
	var sols []Solution
	if err := json.NewDecoder(r).Decode(&sols); err != nil {
		return nil, err
	}
	return sols, nil
}
