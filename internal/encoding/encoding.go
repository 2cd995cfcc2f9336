// Package encoding maps commands to the character alphabet of solutions and
// back, and scores power phrases.
package encoding

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"hexfall/internal/game"
)

// ErrUnknownSymbol is returned by Decode for characters outside the alphabet.
var ErrUnknownSymbol = errors.New("unknown command symbol")

// 每条命令对应的 6 个字符，第一个是默认编码
var symbols = [6]string{
	game.MoveW:       "p'!.03",
	game.MoveE:       "bcefy2",
	game.MoveSW:      "aghij4",
	game.MoveSE:      "lmno 5",
	game.RotateLeft:  "kstuwx",
	game.RotateRight: "dqrvz1",
}

var decodeTable = func() map[rune]game.Command {
	m := make(map[rune]game.Command, 36)
	for _, c := range game.Commands {
		for _, r := range symbols[c] {
			m[r] = c
		}
	}
	return m
}()

// Symbol returns the default character for c.
func Symbol(c game.Command) byte {
	return symbols[c][0]
}

// Decode parses a solution string. Case is ignored, as are tabs and line
// breaks.
func Decode(s string) ([]game.Command, error) {
	out := make([]game.Command, 0, len(s))
	for i, r := range strings.ToLower(s) {
		switch r {
		case '\t', '\n', '\r':
			continue
		}
		c, ok := decodeTable[r]
		if !ok {
			return nil, fmt.Errorf("%w %q at %d", ErrUnknownSymbol, r, i)
		}
		out = append(out, c)
	}
	return out, nil
}

// PhraseCommands decodes one power phrase.
func PhraseCommands(phrase string) ([]game.Command, error) {
	cmds, err := Decode(phrase)
	if err != nil {
		return nil, fmt.Errorf("phrase %q: %w", phrase, err)
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("phrase %q: empty", phrase)
	}
	return cmds, nil
}

// Phrases decodes every phrase, in order, for use by the router.
func Phrases(phrases []string) ([][]game.Command, error) {
	out := make([][]game.Command, 0, len(phrases))
	for _, p := range phrases {
		cmds, err := PhraseCommands(p)
		if err != nil {
			return nil, err
		}
		out = append(out, cmds)
	}
	return out, nil
}

type literal struct {
	text string
	cmds []game.Command
}

// Encode writes cmds as a solution string. Wherever a power phrase spells
// the next commands it is written literally, longest phrase first;
// everything else uses the default character. Phrases that do not decode
// are ignored.
func Encode(cmds []game.Command, phrases []string) string {
	var lits []literal
	for _, p := range phrases {
		pc, err := PhraseCommands(p)
		if err != nil {
			continue
		}
		lits = append(lits, literal{text: strings.ToLower(p), cmds: pc})
	}
	sort.SliceStable(lits, func(i, j int) bool {
		return len(lits[i].cmds) > len(lits[j].cmds)
	})

	var sb strings.Builder
	sb.Grow(len(cmds))
	for i := 0; i < len(cmds); {
		matched := false
		for _, l := range lits {
			if hasPrefix(cmds[i:], l.cmds) {
				sb.WriteString(l.text)
				i += len(l.cmds)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(Symbol(cmds[i]))
			i++
		}
	}
	return sb.String()
}

func hasPrefix(cmds, prefix []game.Command) bool {
	if len(prefix) > len(cmds) {
		return false
	}
	for i, c := range prefix {
		if cmds[i] != c {
			return false
		}
	}
	return true
}

// Count returns how many times phrase occurs in solution, overlapping
// occurrences included, ignoring case.
func Count(solution, phrase string) int {
	s, p := strings.ToLower(solution), strings.ToLower(phrase)
	if p == "" {
		return 0
	}
	n := 0
	for i := 0; i+len(p) <= len(s); i++ {
		if s[i:i+len(p)] == p {
			n++
		}
	}
	return n
}

// PowerScores sums the power score of every phrase used at least once.
func PowerScores(solution string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		if reps := Count(solution, p); reps > 0 {
			total += game.PowerScore(len(p), reps)
		}
	}
	return total
}
