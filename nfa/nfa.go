// Package nfa provides the ε-NFA built by Thompson's construction.
//
// The NFA is the front half of the ranking pipeline: a pattern compiles to an
// ε-NFA here, then the dfa package determinizes and minimizes it. States live
// in a flat pool and transitions map a byte label to a set of target states.
// The byte value 0 is reserved as the ε label, which restricts the usable
// alphabet to bytes 0x01-0xFF.
//
// Basic usage:
//
//	n, err := nfa.Compile(`(a|b)+`)
//	if err != nil {
//	    return err
//	}
//	closure := n.Closure(n.Init())
package nfa

import (
	"sort"

	"github.com/coregx/regrank/internal/sparse"
)

// StateID identifies a state in the NFA pool.
type StateID uint32

// Epsilon is the reserved transition label for ε-moves.
const Epsilon byte = 0

// state is a single NFA state: a final flag plus a label -> targets map.
type state struct {
	final bool
	trans map[byte][]StateID
}

// NFA is a non-deterministic finite automaton with ε-transitions.
//
// Subset construction needs a set of initial states rather than a single
// start state (a reversed DFA starts in every old final state at once), so
// the initial states are kept as a sorted set.
type NFA struct {
	states []state
	init   []StateID
}

// New returns an empty NFA with no states.
func New() *NFA {
	return &NFA{}
}

// NewPool returns an NFA with n states pre-allocated and no transitions.
func NewPool(n int) *NFA {
	return &NFA{states: make([]state, n)}
}

// AddState appends a fresh non-final state to the pool and returns its id.
func (n *NFA) AddState() StateID {
	n.states = append(n.states, state{})
	return StateID(len(n.states) - 1)
}

// States returns the number of states in the pool.
func (n *NFA) States() int {
	return len(n.states)
}

// SetFinal marks state id as accepting.
func (n *NFA) SetFinal(id StateID) {
	n.states[id].final = true
}

// IsFinal reports whether state id is accepting.
func (n *NFA) IsFinal(id StateID) bool {
	return n.states[id].final
}

// Insert adds the transition src -c-> dst. Duplicate insertions are no-ops.
// Use Epsilon as the label for ε-moves.
func (n *NFA) Insert(src StateID, c byte, dst StateID) {
	s := &n.states[src]
	if s.trans == nil {
		s.trans = make(map[byte][]StateID)
	}
	for _, t := range s.trans[c] {
		if t == dst {
			return
		}
	}
	s.trans[c] = append(s.trans[c], dst)
}

// Targets returns the targets of src on label c. The slice is owned by the
// NFA and must not be mutated.
func (n *NFA) Targets(src StateID, c byte) []StateID {
	return n.states[src].trans[c]
}

// Labels returns the non-ε labels leaving src, in ascending byte order.
func (n *NFA) Labels(src StateID) []byte {
	labels := make([]byte, 0, len(n.states[src].trans))
	for c := range n.states[src].trans {
		if c != Epsilon {
			labels = append(labels, c)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// SetInit replaces the initial state set. The ids are copied, sorted and
// de-duplicated.
func (n *NFA) SetInit(ids []StateID) {
	n.init = normalize(ids)
}

// Init returns the sorted initial state set.
// The slice is owned by the NFA and must not be mutated.
func (n *NFA) Init() []StateID {
	return n.init
}

// Closure returns the ε-closure of ids as a sorted set: every state reachable
// from ids by zero or more ε-moves. Closure is idempotent.
func (n *NFA) Closure(ids []StateID) []StateID {
	seen := sparse.New(uint32(len(n.states)))
	queue := make([]StateID, 0, len(ids))
	for _, id := range ids {
		if !seen.Contains(uint32(id)) {
			seen.Insert(uint32(id))
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range n.states[u].trans[Epsilon] {
			if !seen.Contains(uint32(v)) {
				seen.Insert(uint32(v))
				queue = append(queue, v)
			}
		}
	}
	out := make([]StateID, 0, seen.Len())
	for _, v := range seen.Values() {
		out = append(out, StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AnyFinal reports whether any state in ids is accepting.
func (n *NFA) AnyFinal(ids []StateID) bool {
	for _, id := range ids {
		if n.states[id].final {
			return true
		}
	}
	return false
}

// closeInit ε-closes the initial state set in place.
func (n *NFA) closeInit() {
	n.init = n.Closure(n.init)
}

// normalize returns a sorted, de-duplicated copy of ids.
func normalize(ids []StateID) []StateID {
	out := append([]StateID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	j := 0
	for i, id := range out {
		if i == 0 || id != out[j-1] {
			out[j] = id
			j++
		}
	}
	return out[:j]
}
