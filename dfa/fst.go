package dfa

import (
	"fmt"
	"strings"
)

// MarshalFST serializes d to the FST text form consumed by the encoder.
//
// The blob is LF-terminated lines, one per record:
//
//	src<TAB>dst<TAB>in<TAB>out    a transition; in and out are the same
//	                              decimal byte label (identity transducer)
//	state                         marks state as final
//
// States appear in id order and labels in ascending byte order, so the
// serialization of a given DFA is deterministic.
func (d *DFA) MarshalFST() string {
	var b strings.Builder
	for i := range d.states {
		for _, c := range d.Labels(StateID(i)) {
			dst := d.states[i].trans[c]
			fmt.Fprintf(&b, "%d\t%d\t%d\t%d\n", i, dst, c, c)
		}
		if d.states[i].final {
			fmt.Fprintf(&b, "%d\n", i)
		}
	}
	return b.String()
}
