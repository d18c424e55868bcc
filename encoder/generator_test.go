package encoder

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGenerator_Order tests sequential generation of the whole language in
// rank order.
func TestGenerator_Order(t *testing.T) {
	enc, err := New(fixture(t, "(a|b)(a|b)"), 2)
	require.NoError(t, err)

	g, err := NewGenerator(enc, nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(4), g.Remaining().Int64())

	var words []string
	for {
		w, ok := g.Next()
		if !ok {
			break
		}
		words = append(words, string(w))
	}
	require.Equal(t, []string{"aa", "ab", "ba", "bb"}, words)
	require.Equal(t, int64(0), g.Remaining().Int64())

	_, ok := g.Next()
	require.False(t, ok, "exhausted generator must stay exhausted")
}

// TestGenerator_Window tests the start offset and the count bound.
func TestGenerator_Window(t *testing.T) {
	enc, err := New(fixture(t, "(a|b)(a|b)"), 2)
	require.NoError(t, err)

	g, err := NewGenerator(enc, big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, int64(2), g.Remaining().Int64())

	var words []string
	for {
		w, ok := g.Next()
		if !ok {
			break
		}
		words = append(words, string(w))
	}
	require.Equal(t, []string{"ab", "ba"}, words)
}

// TestGenerator_Clamped tests windows that reach past the language end.
func TestGenerator_Clamped(t *testing.T) {
	enc, err := New(fixture(t, "a|b"), 1)
	require.NoError(t, err)

	// Count beyond |L_1| stops at the last word.
	g, err := NewGenerator(enc, big.NewInt(1), big.NewInt(100))
	require.NoError(t, err)
	w, ok := g.Next()
	require.True(t, ok)
	require.Equal(t, "b", string(w))
	_, ok = g.Next()
	require.False(t, ok)

	// Start at or past the end is exhausted from the first call.
	g, err = NewGenerator(enc, big.NewInt(2), nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), g.Remaining().Int64())
	_, ok = g.Next()
	require.False(t, ok)
}

// TestGenerator_InvalidWindow tests rejection of negative bounds.
func TestGenerator_InvalidWindow(t *testing.T) {
	enc, err := New(fixture(t, "a|b"), 1)
	require.NoError(t, err)

	_, err = NewGenerator(enc, big.NewInt(-1), nil)
	require.ErrorIs(t, err, ErrRankOutOfRange)

	_, err = NewGenerator(enc, nil, big.NewInt(-1))
	require.ErrorIs(t, err, ErrRankOutOfRange)
}

// TestGenerator_Independent tests that two generators over one encoder do
// not interfere.
func TestGenerator_Independent(t *testing.T) {
	enc, err := New(fixture(t, "a|b"), 1)
	require.NoError(t, err)

	g1, err := NewGenerator(enc, nil, nil)
	require.NoError(t, err)
	g2, err := NewGenerator(enc, nil, nil)
	require.NoError(t, err)

	w1, ok := g1.Next()
	require.True(t, ok)
	require.Equal(t, "a", string(w1))

	w2, ok := g2.Next()
	require.True(t, ok)
	require.Equal(t, "a", string(w2), "fresh generator must start at rank 0")
}
