package dfa

import (
	"fmt"
	"strings"
)

// MarshalDOT renders d as Graphviz text for debugging. States are circles,
// final states double circles, and a START pseudo-node points at the initial
// state. Nothing in the pipeline consumes this output.
func (d *DFA) MarshalDOT() string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	b.WriteString("  node[shape=circle];\n")
	b.WriteString("  edge[arrowhead=vee];\n")
	b.WriteString("  START[shape=point, color=white];\n")
	for i := range d.states {
		if d.states[i].final {
			fmt.Fprintf(&b, "  %d[shape=doublecircle];\n", i)
		}
	}
	fmt.Fprintf(&b, "  START -> %d [label=start];\n", d.init)
	for i := range d.states {
		for _, c := range d.Labels(StateID(i)) {
			fmt.Fprintf(&b, "  %d -> %d [label=%q];\n", i, d.states[i].trans[c], dotLabel(c))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// dotLabel renders a byte label: bytes 0x21-0x7e other than '"' and '\' as
// themselves, anything else (space included) as a \xNN escape.
func dotLabel(c byte) string {
	if c >= 0x21 && c <= 0x7e && c != '"' && c != '\\' {
		return string(c)
	}
	return fmt.Sprintf("\\x%02x", c)
}
