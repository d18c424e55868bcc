// Package dfa provides the deterministic half of the ranking pipeline:
// subset construction from an ε-NFA, transition reversal, Brzozowski
// minimization, and the FST text serialization consumed by the encoder.
//
// The DFA is partial: a missing transition means no accepting extension
// exists on that byte. Once minimized, the automaton is canonical up to
// state renumbering, which is what makes the counting table well-defined.
//
// Basic usage:
//
//	d, err := dfa.FromPattern(`(a|b)+`)
//	if err != nil {
//	    return err
//	}
//	fst := d.MarshalFST()
package dfa

import (
	"sort"
)

// StateID identifies a state in the DFA pool.
type StateID uint32

// state is a single DFA state: a final flag plus a label -> target map.
// At most one target exists per (state, byte).
type state struct {
	final bool
	trans map[byte]StateID
}

// DFA is a partial deterministic finite automaton over byte labels.
type DFA struct {
	states []state
	init   StateID
}

// addState appends a fresh non-final state and returns its id.
func (d *DFA) addState() StateID {
	d.states = append(d.states, state{})
	return StateID(len(d.states) - 1)
}

// addTransition inserts src -c-> dst. Construction never produces two
// targets for the same (state, byte); subset construction keys states by
// their NFA subset, so a duplicate insertion here means corrupted state.
func (d *DFA) addTransition(src StateID, c byte, dst StateID) {
	s := &d.states[src]
	if s.trans == nil {
		s.trans = make(map[byte]StateID)
	}
	if _, dup := s.trans[c]; dup {
		panic("dfa: duplicate transition")
	}
	s.trans[c] = dst
}

// States returns the number of states in the pool.
func (d *DFA) States() int {
	return len(d.states)
}

// Start returns the initial state.
func (d *DFA) Start() StateID {
	return d.init
}

// IsFinal reports whether state id is accepting.
func (d *DFA) IsFinal(id StateID) bool {
	return d.states[id].final
}

// Next returns the target of src on label c, or false if the transition is
// absent.
func (d *DFA) Next(src StateID, c byte) (StateID, bool) {
	dst, ok := d.states[src].trans[c]
	return dst, ok
}

// Labels returns the labels leaving src in ascending byte order.
func (d *DFA) Labels(src StateID) []byte {
	labels := make([]byte, 0, len(d.states[src].trans))
	for c := range d.states[src].trans {
		labels = append(labels, c)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// Accepts reports whether the DFA accepts w.
func (d *DFA) Accepts(w []byte) bool {
	q := d.init
	for _, c := range w {
		dst, ok := d.Next(q, c)
		if !ok {
			return false
		}
		q = dst
	}
	return d.states[q].final
}
