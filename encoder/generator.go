package encoder

import (
	"fmt"
	"math/big"
)

// Generator iterates words of the encoder's language in rank order: a
// sequential unrank of start, start+1, …, bounded by a word count.
//
// A Generator reads the encoder's tables but never mutates them, so
// independent generators may share one encoder. Resizing the fixed slice
// while a generator is live invalidates its position.
type Generator struct {
	enc  *Encoder
	next *big.Int
	stop *big.Int
}

// NewGenerator returns a generator positioned at rank start that produces at
// most count words. A nil start begins at rank 0; a nil count runs to the
// end of the language. The window is clamped to |L_n|, so a start at or past
// the end yields an exhausted generator. A negative start or count returns
// ErrRankOutOfRange.
func NewGenerator(e *Encoder, start, count *big.Int) (*Generator, error) {
	if start == nil {
		start = new(big.Int)
	}
	if start.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative generator start %s", ErrRankOutOfRange, start)
	}
	if count != nil && count.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative generator count %s", ErrRankOutOfRange, count)
	}

	stop := new(big.Int).Set(e.total)
	if count != nil {
		if end := new(big.Int).Add(start, count); end.Cmp(stop) < 0 {
			stop = end
		}
	}
	next := new(big.Int).Set(start)
	if next.Cmp(stop) > 0 {
		next.Set(stop)
	}
	return &Generator{enc: e, next: next, stop: stop}, nil
}

// Next returns the next word in rank order, or ok=false once the window is
// exhausted.
func (g *Generator) Next() (w []byte, ok bool) {
	if g.next.Cmp(g.stop) >= 0 {
		return nil, false
	}
	w, err := g.enc.Unrank(g.next)
	if err != nil {
		return nil, false
	}
	g.next.Add(g.next, bigOne)
	return w, true
}

// Remaining returns how many words are left in the window, as a copy.
func (g *Generator) Remaining() *big.Int {
	return new(big.Int).Sub(g.stop, g.next)
}

var bigOne = big.NewInt(1)
