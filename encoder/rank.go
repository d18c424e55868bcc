package encoder

import (
	"fmt"
	"math/big"
)

// Rank returns the position of w in canonical order over L_n: words sort by
// length first, then byte-lexicographically. The result is in [0, |L_n|).
//
// Returns ErrNotInLanguage when w is longer than the fixed slice, contains a
// byte outside Σ, falls off a missing transition, or ends in a non-final
// state.
func (e *Encoder) Rank(w []byte) (*big.Int, error) {
	if len(w) > e.fixedSlice {
		return nil, fmt.Errorf("%w: word length %d exceeds fixed slice %d", ErrNotInLanguage, len(w), e.fixedSlice)
	}

	// Offset past every shorter word, then count the smaller siblings at
	// each step of the walk.
	r := sumColumn(e.table, e.start, 0, len(w)-1)
	q := e.start
	for pos, b := range w {
		ci := e.symIndex[b]
		if ci < 0 {
			return nil, fmt.Errorf("%w: byte 0x%02x at offset %d is not in the alphabet", ErrNotInLanguage, b, pos)
		}
		remaining := len(w) - pos
		for smaller := 0; smaller < int(ci); smaller++ {
			dst := e.delta[q][smaller]
			if dst != noTransition {
				r.Add(r, e.table[dst][remaining-1])
			}
		}
		dst := e.delta[q][ci]
		if dst == noTransition {
			return nil, fmt.Errorf("%w: no transition on byte 0x%02x at offset %d", ErrNotInLanguage, b, pos)
		}
		q = int(dst)
	}
	if !e.final[q] {
		return nil, fmt.Errorf("%w: word ends in a non-final state", ErrNotInLanguage)
	}
	return r, nil
}

// Unrank returns the word at position i in canonical order, the inverse of
// Rank. Returns ErrRankOutOfRange unless 0 ≤ i < |L_n|.
func (e *Encoder) Unrank(i *big.Int) ([]byte, error) {
	if i.Sign() < 0 || i.Cmp(e.total) >= 0 {
		return nil, fmt.Errorf("%w: index %s not in [0, %s)", ErrRankOutOfRange, i, e.total)
	}

	// Pick the output length: the smallest L with i < Σ_{ℓ=0..L} T[q0][ℓ],
	// consuming the cumulative counts of shorter words as we go.
	rem := new(big.Int).Set(i)
	length := 0
	for ; rem.Cmp(e.table[e.start][length]) >= 0; length++ {
		rem.Sub(rem, e.table[e.start][length])
	}

	w := make([]byte, 0, length)
	q := e.start
	for steps := length; steps > 0; steps-- {
		advanced := false
		for ci, c := range e.alphabet {
			dst := e.delta[q][ci]
			if dst == noTransition {
				continue
			}
			m := e.table[dst][steps-1]
			if rem.Cmp(m) < 0 {
				w = append(w, c)
				q = int(dst)
				advanced = true
				break
			}
			rem.Sub(rem, m)
		}
		if !advanced {
			return nil, automatonError(0, "counting table corrupt: no symbol available at %d steps", steps)
		}
	}
	if !e.final[q] || rem.Sign() != 0 {
		return nil, automatonError(0, "counting table corrupt: walk ended off a final state")
	}
	return w, nil
}
