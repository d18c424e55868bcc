package dfa

import (
	"github.com/coregx/regrank/nfa"
)

// Reverse builds the reversal of d as an NFA.
//
// Every transition u -c-> v becomes v -c-> u, the initial set becomes the
// old final set (reversal is where subset construction genuinely needs a set
// of start states), and the single final state is the old initial state.
// The reversed automaton recognizes the mirror language of d.
func (d *DFA) Reverse() *nfa.NFA {
	n := nfa.NewPool(len(d.states))
	var init []nfa.StateID
	for i := range d.states {
		src := StateID(i)
		for c, dst := range d.states[i].trans {
			n.Insert(nfa.StateID(dst), c, nfa.StateID(src))
		}
		if d.states[i].final {
			init = append(init, nfa.StateID(src))
		}
	}
	n.SetFinal(nfa.StateID(d.init))
	n.SetInit(init)
	return n
}
