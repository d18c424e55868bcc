package encoder

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/regrank/dfa"
)

// fixture compiles pattern through the automaton pipeline and returns its
// FST text; encoder tests consume only the text, never the DFA.
func fixture(t *testing.T, pattern string) string {
	t.Helper()
	d, err := dfa.FromPattern(pattern)
	require.NoError(t, err)
	return d.MarshalFST()
}

// TestNew_Scenarios walks the canonical end-to-end scenarios.
func TestNew_Scenarios(t *testing.T) {
	tests := []struct {
		pattern string
		slice   int
		words   int64
		ranks   map[string]int64
	}{
		{"a", 1, 1, map[string]int64{"a": 0}},
		{"a|b", 1, 2, map[string]int64{"a": 0, "b": 1}},
		{"ab*", 3, 3, map[string]int64{"a": 0, "ab": 1, "abb": 2}},
		{"(a|b)(a|b)", 2, 4, map[string]int64{"aa": 0, "ab": 1, "ba": 2, "bb": 3}},
		{"a+", 4, 4, map[string]int64{"a": 0, "aa": 1, "aaa": 2, "aaaa": 3}},
		{`\(a\)`, 3, 1, map[string]int64{"(a)": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			enc, err := New(fixture(t, tt.pattern), tt.slice)
			require.NoError(t, err)

			total, err := enc.NumWords(0, tt.slice)
			require.NoError(t, err)
			require.Equal(t, tt.words, total.Int64())

			for word, rank := range tt.ranks {
				got, err := enc.Rank([]byte(word))
				require.NoError(t, err, "Rank(%q)", word)
				require.Equal(t, rank, got.Int64(), "Rank(%q)", word)

				back, err := enc.Unrank(big.NewInt(rank))
				require.NoError(t, err, "Unrank(%d)", rank)
				require.Equal(t, []byte(word), back, "Unrank(%d)", rank)
			}
		})
	}
}

// TestNew_Validation exercises the fatal-construction paths over hand-written
// FST blobs.
func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		fst  string
	}{
		{"empty blob", ""},
		{"blank line", "\n0\t1\t97\t97\n1\n"},
		{"too few fields", "0\t1\t97\n"},
		{"too many fields", "0\t1\t97\t97\t97\n"},
		{"bad source", "x\t1\t97\t97\n1\n"},
		{"bad target", "0\ty\t97\t97\n1\n"},
		{"bad label", "0\t1\tz\t97\n1\n"},
		{"label mismatch", "0\t1\t97\t98\n1\n"},
		{"label zero", "0\t1\t0\t0\n1\n"},
		{"label too large", "0\t1\t300\t300\n1\n"},
		{"duplicate transition", "0\t1\t97\t97\n0\t2\t97\t97\n1\n"},
		{"final only", "0\n"},
		{"unreachable final", "0\t1\t97\t97\n1\n5\n"},
		{"no final state", "0\t1\t97\t97\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fst, 4)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidAutomaton)
		})
	}
}

// TestNew_EmptyLanguageWithinSlice tests that a slice shorter than the
// shortest accepted word is rejected at construction.
func TestNew_EmptyLanguageWithinSlice(t *testing.T) {
	_, err := New(fixture(t, "aaa"), 2)
	require.ErrorIs(t, err, ErrInvalidAutomaton)

	enc, err := New(fixture(t, "aaa"), 3)
	require.NoError(t, err)
	w, err := enc.Unrank(big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, []byte("aaa"), w)
}

// TestNew_NegativeSlice tests the length-bound check on construction.
func TestNew_NegativeSlice(t *testing.T) {
	_, err := New(fixture(t, "a"), -1)
	require.ErrorIs(t, err, ErrLengthBound)
}

// TestNew_SparseStateIDs tests an FST whose state ids are non-contiguous;
// states are declared by appearance and id 0 is absent, so the start is the
// smallest source.
func TestNew_SparseStateIDs(t *testing.T) {
	enc, err := New("10\t20\t97\t97\n20\n", 1)
	require.NoError(t, err)
	require.Equal(t, 2, enc.NumStates())

	i, err := enc.Rank([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, int64(0), i.Int64())
}

// TestEncoder_EmptyWord tests the n=0 boundary: |L_0| = 1 iff the start
// state is final, and the empty word ranks to 0.
func TestEncoder_EmptyWord(t *testing.T) {
	enc, err := New(fixture(t, "a*"), 0)
	require.NoError(t, err)

	total, err := enc.NumWords(0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total.Int64())

	i, err := enc.Rank(nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), i.Int64())

	w, err := enc.Unrank(big.NewInt(0))
	require.NoError(t, err)
	require.Empty(t, w)

	// `a` does not accept the empty word, so n=0 leaves the language empty.
	_, err = New(fixture(t, "a"), 0)
	require.ErrorIs(t, err, ErrInvalidAutomaton)
}

// TestRank_NotInLanguage tests rejection of words outside the language.
func TestRank_NotInLanguage(t *testing.T) {
	enc, err := New(fixture(t, "a|b"), 2)
	require.NoError(t, err)

	tests := []struct {
		name string
		word string
	}{
		{"foreign byte", "c"},
		{"too long", "aab"},
		{"dead transition", "aa"},
		{"non-final stop", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Rank([]byte(tt.word))
			require.ErrorIs(t, err, ErrNotInLanguage)
		})
	}
}

// TestUnrank_OutOfRange tests the index bounds.
func TestUnrank_OutOfRange(t *testing.T) {
	enc, err := New(fixture(t, "a|b"), 1)
	require.NoError(t, err)

	_, err = enc.Unrank(big.NewInt(2)) // |L_1| == 2
	require.ErrorIs(t, err, ErrRankOutOfRange)

	_, err = enc.Unrank(big.NewInt(-1))
	require.ErrorIs(t, err, ErrRankOutOfRange)
}

// TestRoundTrip tests rank∘unrank = id and order preservation over entire
// languages.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		slice   int
	}{
		{"(a|b)+", 6},
		{"ab*c?", 5},
		{"(ab|cd)*", 6},
		{"a?b?c?", 3},
		{"(a|b|c|d)(x|y)*", 5},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			enc, err := New(fixture(t, tt.pattern), tt.slice)
			require.NoError(t, err)
			total, err := enc.NumWords(0, tt.slice)
			require.NoError(t, err)

			var prev []byte
			for i := big.NewInt(0); i.Cmp(total) < 0; i.Add(i, big.NewInt(1)) {
				w, err := enc.Unrank(i)
				require.NoError(t, err, "Unrank(%s)", i)

				back, err := enc.Rank(w)
				require.NoError(t, err, "Rank(%q)", w)
				require.Zero(t, back.Cmp(i), "Rank(Unrank(%s)) = %s", i, back)

				if prev != nil || i.Sign() > 0 {
					require.True(t, lessCanonical(prev, w),
						"order violated: %q at %s after %q", w, i, prev)
				}
				prev = w
			}
		})
	}
}

// lessCanonical reports whether a < b in (length, byte-lexicographic) order.
func lessCanonical(a, b []byte) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return string(a) < string(b)
}

// TestNumWords tests the closed-interval semantics and its bounds.
func TestNumWords(t *testing.T) {
	enc, err := New(fixture(t, "(a|b)(a|b)"), 2)
	require.NoError(t, err)

	for _, tt := range []struct {
		lower, upper int
		want         int64
	}{
		{0, 2, 4},
		{2, 2, 4},
		{0, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
	} {
		got, err := enc.NumWords(tt.lower, tt.upper)
		require.NoError(t, err)
		require.Equal(t, tt.want, got.Int64(), "NumWords(%d,%d)", tt.lower, tt.upper)
	}

	for _, tt := range [][2]int{{-1, 0}, {1, 3}, {2, 1}, {0, 5}} {
		_, err := enc.NumWords(tt[0], tt[1])
		require.ErrorIs(t, err, ErrLengthBound, "NumWords(%d,%d)", tt[0], tt[1])
	}
}

// TestSetFixedSlice tests growth, truncation and failure atomicity.
func TestSetFixedSlice(t *testing.T) {
	enc, err := New(fixture(t, "a+"), 2)
	require.NoError(t, err)
	require.Equal(t, 2, enc.FixedSlice())

	// Grow: new lengths become reachable.
	require.NoError(t, enc.SetFixedSlice(4))
	require.Equal(t, 4, enc.FixedSlice())
	total, err := enc.NumWords(0, 4)
	require.NoError(t, err)
	require.Equal(t, int64(4), total.Int64())
	w, err := enc.Unrank(big.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, []byte("aaaa"), w)

	// Shrink: the table truncates and longer words fall out.
	require.NoError(t, enc.SetFixedSlice(1))
	_, err = enc.Rank([]byte("aa"))
	require.ErrorIs(t, err, ErrNotInLanguage)
	total, err = enc.NumWords(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), total.Int64())

	// Shrinking below the shortest word fails and leaves state untouched.
	err = enc.SetFixedSlice(0)
	require.ErrorIs(t, err, ErrInvalidAutomaton)
	require.Equal(t, 1, enc.FixedSlice())
	w, err = enc.Unrank(big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), w)

	// Negative slices are rejected outright.
	require.ErrorIs(t, enc.SetFixedSlice(-3), ErrLengthBound)

	// Regrow after truncation.
	require.NoError(t, enc.SetFixedSlice(3))
	w, err = enc.Unrank(big.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, []byte("aaa"), w)
}

// TestTableRecurrence tests the counting-table invariant
// T[q][i] = Σ_c T[δ(q,c)][i-1] indirectly: |L_n| must equal the brute-force
// count of accepted words.
func TestTableRecurrence(t *testing.T) {
	const pattern = "(a|b)*abb"
	const slice = 7

	d, err := dfa.FromPattern(pattern)
	require.NoError(t, err)
	enc, err := New(d.MarshalFST(), slice)
	require.NoError(t, err)

	count := 0
	var walk func(prefix []byte)
	walk = func(prefix []byte) {
		if d.Accepts(prefix) {
			count++
		}
		if len(prefix) == slice {
			return
		}
		for _, c := range []byte("ab") {
			walk(append(prefix, c))
		}
	}
	walk(nil)

	total, err := enc.NumWords(0, slice)
	require.NoError(t, err)
	require.Equal(t, int64(count), total.Int64())
}

// TestAlphabet tests Σ discovery and ordering.
func TestAlphabet(t *testing.T) {
	enc, err := New(fixture(t, "c|a|b"), 1)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), enc.Alphabet())
}

// TestParseIndex tests the decimal host boundary.
func TestParseIndex(t *testing.T) {
	i, err := ParseIndex("12345678901234567890")
	require.NoError(t, err)
	require.Equal(t, "12345678901234567890", FormatIndex(i))

	for _, bad := range []string{"", "abc", "-5", "12x", "1.5"} {
		_, err := ParseIndex(bad)
		require.ErrorIs(t, err, ErrArithmetic, "ParseIndex(%q)", bad)
	}
}

// TestConcurrentReaders tests that rank and unrank are safe to run in
// parallel against an unmodified encoder.
func TestConcurrentReaders(t *testing.T) {
	enc, err := New(fixture(t, "(a|b)+"), 10)
	require.NoError(t, err)
	total, err := enc.NumWords(0, 10)
	require.NoError(t, err)

	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func(stride int64) {
			for i := big.NewInt(int64(stride)); i.Cmp(total) < 0; i.Add(i, big.NewInt(97)) {
				w, err := enc.Unrank(i)
				if err != nil {
					done <- err
					return
				}
				back, err := enc.Rank(w)
				if err != nil {
					done <- err
					return
				}
				if back.Cmp(i) != 0 {
					done <- errors.New("round trip mismatch under concurrency")
					return
				}
			}
			done <- nil
		}(int64(g))
	}
	for g := 0; g < 8; g++ {
		require.NoError(t, <-done)
	}
}
