package dfa

import (
	"encoding/binary"

	"github.com/coregx/regrank/nfa"
)

// Determinize converts n to a DFA by subset construction.
//
// DFA state 0 represents the ε-closure of the NFA's initial set; it is final
// iff that closure contains an NFA final state. A worklist then expands each
// subset once: for every non-ε byte the union of NFA targets is ε-closed and
// either found in the subset index or allocated as a new DFA state.
//
// Subsets are looked up by ordered-set equality: the canonical key is the
// sorted member list, encoded as raw bytes. Byte labels are visited in
// ascending order so construction is deterministic.
func Determinize(n *nfa.NFA) *DFA {
	d := &DFA{}
	d.init = d.addState()

	start := n.Init()
	if n.AnyFinal(start) {
		d.states[d.init].final = true
	}

	index := map[string]StateID{subsetKey(start): d.init}
	queue := [][]nfa.StateID{start}

	for len(queue) > 0 {
		subset := queue[0]
		queue = queue[1:]
		u := index[subsetKey(subset)]

		for _, c := range subsetLabels(n, subset) {
			var targets []nfa.StateID
			for _, q := range subset {
				targets = append(targets, n.Targets(q, c)...)
			}
			closure := n.Closure(targets)
			key := subsetKey(closure)
			v, ok := index[key]
			if !ok {
				v = d.addState()
				if n.AnyFinal(closure) {
					d.states[v].final = true
				}
				index[key] = v
				queue = append(queue, closure)
			}
			d.addTransition(u, c, v)
		}
	}
	return d
}

// subsetLabels returns the distinct non-ε labels leaving any state of the
// subset, in ascending byte order.
func subsetLabels(n *nfa.NFA, subset []nfa.StateID) []byte {
	var present [256]bool
	for _, q := range subset {
		for _, c := range n.Labels(q) {
			present[c] = true
		}
	}
	labels := make([]byte, 0, 8)
	for c := 1; c < 256; c++ {
		if present[c] {
			labels = append(labels, byte(c))
		}
	}
	return labels
}

// subsetKey encodes a sorted state set as a canonical map key.
func subsetKey(ids []nfa.StateID) string {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(id))
	}
	return string(buf)
}
