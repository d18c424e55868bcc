// Package encoder implements ranking and unranking over the finite language
// L_n = { w ∈ L : |w| ≤ n } of a DFA, the building block of
// format-transforming encryption.
//
// The encoder consumes the FST text serialization of a DFA rather than any
// in-memory automaton type; the text blob is the contract between automaton
// construction and encoding. From it the encoder derives a sorted alphabet
// Σ, a packed transition matrix δ, and the counting table T, where T[q][i]
// is the number of accepting paths of length exactly i from state q:
//
//	T[q][0] = 1 if q is final, else 0
//	T[q][i] = Σ_{c ∈ Σ, δ(q,c) defined} T[δ(q,c)][i-1]
//
// Rank and Unrank walk T to convert between words and their positions in
// canonical order (shorter words first, ties broken byte-lexicographically).
// The table values grow like |Σ|^i, so all arithmetic is math/big.
//
// Basic usage:
//
//	enc, err := encoder.New(fst, 16)
//	if err != nil {
//	    return err
//	}
//	w, err := enc.Unrank(big.NewInt(42))
//	i, err := enc.Rank(w) // i == 42
//
// An Encoder is immutable after construction except for SetFixedSlice.
// Concurrent Rank/Unrank calls on an unmodified encoder are safe; callers
// that resize the slice must serialize that against readers themselves.
package encoder

import (
	"math/big"
)

// noTransition is the δ sentinel for a missing transition.
const noTransition int32 = -1

// Encoder ranks and unranks the words of a DFA's language up to a fixed
// maximum length (the "fixed slice").
type Encoder struct {
	fixedSlice int
	start      int
	numStates  int

	// alphabet is Σ in ascending byte order; symIndex inverts it
	// (-1 for bytes outside Σ).
	alphabet []byte
	symIndex [256]int16

	// delta is the packed transition matrix: delta[q][ci] is the target of
	// state q on alphabet[ci], or noTransition.
	delta [][]int32
	final []bool

	// Per-state fast path: when every defined transition of q leads to one
	// target, T[q][i] collapses to outDegree[q] * T[target][i-1].
	deltaDense  []bool
	denseTarget []int32
	outDegree   []int

	// table is T; table[q][i] counts accepting paths of length exactly i
	// from q. total caches |L_n| = Σ_{i=0..n} T[start][i].
	table [][]*big.Int
	total *big.Int
}

// New builds an encoder from the FST text form of a DFA and a fixed slice.
//
// The automaton is validated before any table is built: the text must parse,
// δ must be a partial function, every final state must be reachable from the
// start state, and at least one word of length ≤ fixedSlice must be accepted.
// Violations return an error satisfying errors.Is(err, ErrInvalidAutomaton);
// a negative fixedSlice returns ErrLengthBound.
func New(fst string, fixedSlice int) (*Encoder, error) {
	if fixedSlice < 0 {
		return nil, automatonLengthError(fixedSlice)
	}
	a, err := parseFST(fst)
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		fixedSlice: fixedSlice,
		start:      a.start,
		numStates:  len(a.ids),
		alphabet:   a.alphabet,
		final:      a.final,
	}
	for i := range e.symIndex {
		e.symIndex[i] = -1
	}
	for ci, c := range e.alphabet {
		e.symIndex[c] = int16(ci)
	}

	e.delta = make([][]int32, e.numStates)
	for q := range e.delta {
		row := make([]int32, len(e.alphabet))
		for ci := range row {
			row[ci] = noTransition
		}
		e.delta[q] = row
	}
	for _, tr := range a.trans {
		e.delta[tr.src][int(e.symIndex[tr.label])] = int32(tr.dst)
	}
	e.buildDense()

	if err := e.validateReachability(); err != nil {
		return nil, err
	}

	table := e.buildTable(fixedSlice)
	total := sumColumn(table, e.start, 0, fixedSlice)
	if total.Sign() == 0 {
		return nil, automatonError(0, "no word of length at most %d is accepted", fixedSlice)
	}
	e.table = table
	e.total = total
	return e, nil
}

// buildDense records, per state, whether all defined transitions share one
// target, along with that target and the state's out-degree.
func (e *Encoder) buildDense() {
	e.deltaDense = make([]bool, e.numStates)
	e.denseTarget = make([]int32, e.numStates)
	e.outDegree = make([]int, e.numStates)
	for q := 0; q < e.numStates; q++ {
		target := noTransition
		dense := true
		degree := 0
		for _, dst := range e.delta[q] {
			if dst == noTransition {
				continue
			}
			degree++
			if target == noTransition {
				target = dst
			} else if target != dst {
				dense = false
			}
		}
		e.outDegree[q] = degree
		e.denseTarget[q] = target
		e.deltaDense[q] = dense && degree > 0
	}
}

// validateReachability checks that every final state is reachable from the
// start state.
func (e *Encoder) validateReachability() error {
	reached := make([]bool, e.numStates)
	reached[e.start] = true
	queue := []int{e.start}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for _, dst := range e.delta[q] {
			if dst != noTransition && !reached[dst] {
				reached[dst] = true
				queue = append(queue, int(dst))
			}
		}
	}
	for q, f := range e.final {
		if f && !reached[q] {
			return automatonError(0, "final state %d unreachable from start state", q)
		}
	}
	return nil
}

// buildTable computes T for lengths 0..n. Column i depends only on column
// i-1, so rows grow left to right.
func (e *Encoder) buildTable(n int) [][]*big.Int {
	table := make([][]*big.Int, e.numStates)
	for q := range table {
		table[q] = make([]*big.Int, 1, n+1)
		if e.final[q] {
			table[q][0] = big.NewInt(1)
		} else {
			table[q][0] = new(big.Int)
		}
	}
	for i := 1; i <= n; i++ {
		e.extendColumn(table, i)
	}
	return table
}

// extendColumn appends column i to table; every row must already hold
// columns 0..i-1.
func (e *Encoder) extendColumn(table [][]*big.Int, i int) {
	for q := 0; q < e.numStates; q++ {
		count := new(big.Int)
		if e.deltaDense[q] {
			count.Mul(table[e.denseTarget[q]][i-1], big.NewInt(int64(e.outDegree[q])))
		} else {
			for _, dst := range e.delta[q] {
				if dst != noTransition {
					count.Add(count, table[dst][i-1])
				}
			}
		}
		table[q] = append(table[q][:i], count)
	}
}

// sumColumn returns Σ_{i=lo..hi} table[q][i].
func sumColumn(table [][]*big.Int, q, lo, hi int) *big.Int {
	sum := new(big.Int)
	for i := lo; i <= hi; i++ {
		sum.Add(sum, table[q][i])
	}
	return sum
}

// FixedSlice returns the current maximum word length.
func (e *Encoder) FixedSlice() int {
	return e.fixedSlice
}

// NumStates returns the number of DFA states.
func (e *Encoder) NumStates() int {
	return e.numStates
}

// Alphabet returns Σ in ascending byte order as a copy.
func (e *Encoder) Alphabet() []byte {
	return append([]byte(nil), e.alphabet...)
}

// NumWords returns the number of accepted words with length in the closed
// interval [lower, upper]. Bounds outside 0 ≤ lower ≤ upper ≤ FixedSlice()
// return ErrLengthBound.
func (e *Encoder) NumWords(lower, upper int) (*big.Int, error) {
	if lower < 0 || lower > upper || upper > e.fixedSlice {
		return nil, boundsError(lower, upper, e.fixedSlice)
	}
	return sumColumn(e.table, e.start, lower, upper), nil
}

// SetFixedSlice changes the maximum word length to n. Growing extends the
// counting table column by column; shrinking truncates it. The new table and
// cached word count are fully prepared before being installed, so a failed
// call leaves the encoder unchanged. Shrinking below the shortest accepted
// word returns ErrInvalidAutomaton.
func (e *Encoder) SetFixedSlice(n int) error {
	switch {
	case n < 0:
		return automatonLengthError(n)
	case n == e.fixedSlice:
		return nil
	case n < e.fixedSlice:
		total := sumColumn(e.table, e.start, 0, n)
		if total.Sign() == 0 {
			return automatonError(0, "no word of length at most %d is accepted", n)
		}
		for q := range e.table {
			e.table[q] = e.table[q][:n+1]
		}
		e.total = total
	default:
		// Extend copies of the rows, then install the finished table.
		table := make([][]*big.Int, len(e.table))
		for q, row := range e.table {
			table[q] = append(make([]*big.Int, 0, n+1), row...)
		}
		for i := e.fixedSlice + 1; i <= n; i++ {
			e.extendColumn(table, i)
		}
		total := sumColumn(table, e.start, 0, n)
		e.table = table
		e.total = total
	}
	e.fixedSlice = n
	return nil
}
