package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	assert.Len(t, Alphabet, 58)
	for _, forbidden := range []string{"0", "O", "I", "l"} {
		assert.NotContains(t, Alphabet, forbidden)
	}
}

func TestNewLengthAndAlphabet(t *testing.T) {
	tok, err := New(12)
	require.NoError(t, err)
	require.Len(t, tok, 12)

	for _, r := range tok {
		assert.True(t, strings.ContainsRune(Alphabet, r), "令牌字符 %q 不在字母表内", r)
	}
}

func TestNewDefaultLength(t *testing.T) {
	tok, err := New(0)
	require.NoError(t, err)
	assert.Len(t, tok, DefaultLength)

	tok, err = New(-3)
	require.NoError(t, err)
	assert.Len(t, tok, DefaultLength)
}

func TestNewTokensDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := New(12)
		require.NoError(t, err)
		assert.False(t, seen[tok], "生成了重复令牌: %s", tok)
		seen[tok] = true
	}
}
