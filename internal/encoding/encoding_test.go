package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hexfall/internal/game"
)

func TestDecodeEveryAlias(t *testing.T) {
	for _, c := range game.Commands {
		for _, r := range symbols[c] {
			got, err := Decode(string(r))
			require.NoError(t, err)
			assert.Equal(t, []game.Command{c}, got, "symbol %q", r)
		}
	}
}

func TestDecodeIgnoresCaseAndBreaks(t *testing.T) {
	got, err := Decode("P\tb\r\nA L")
	require.NoError(t, err)
	assert.Equal(t, []game.Command{game.MoveW, game.MoveE, game.MoveSW, game.MoveSE, game.MoveSE}, got)
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode("pb#")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestEncodeDefaults(t *testing.T) {
	cmds := []game.Command{game.MoveW, game.MoveE, game.MoveSW, game.MoveSE, game.RotateLeft, game.RotateRight}
	s := Encode(cmds, nil)
	assert.Equal(t, "pbalkd", s)

	back, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, cmds, back)
}

func TestEncodePrefersLongestPhrase(t *testing.T) {
	cmds := []game.Command{game.MoveE, game.MoveSW, game.MoveW, game.MoveE, game.MoveSW, game.MoveSE}
	// "ei!" = E SW W，"ei" = E SW
	s := Encode(cmds, []string{"ei", "Ei!", "#bad"})
	assert.Equal(t, "ei!eil", s)

	back, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, cmds, back)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count("ei!pei!", "EI!"))
	assert.Equal(t, 2, Count("aaa", "aa"))
	assert.Zero(t, Count("abc", ""))
	assert.Zero(t, Count("ab", "abc"))
}

func TestPowerScores(t *testing.T) {
	assert.Equal(t, 308, PowerScores("ei!pei!", []string{"ei!", "yuggoth"}))
	assert.Zero(t, PowerScores("ppp", []string{"ei!"}))
}

func TestPhrases(t *testing.T) {
	ph, err := Phrases([]string{"ei!", "Ia! Ia!"})
	require.NoError(t, err)
	require.Len(t, ph, 2)
	assert.Equal(t, []game.Command{game.MoveE, game.MoveSW, game.MoveW}, ph[0])
	assert.Len(t, ph[1], 7)

	_, err = Phrases([]string{""})
	assert.Error(t, err)
	_, err = Phrases([]string{"r'lyeh#"})
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}
