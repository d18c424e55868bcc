package encoder

import (
	"sort"
	"strconv"
	"strings"
)

// fstTransition is one parsed transition record with dense state indices.
type fstTransition struct {
	src, dst int
	label    byte
}

// fstAutomaton is the intermediate form between the FST text and the
// encoder's packed tables. State ids from the text may be sparse; they are
// mapped onto dense indices 0..numStates-1 in ascending id order.
type fstAutomaton struct {
	ids      []uint64 // sorted distinct external state ids
	trans    []fstTransition
	final    []bool // by dense index
	start    int    // dense index
	alphabet []byte // sorted distinct labels
}

// parseFST parses the FST text form: LF-terminated lines, each either a
// tab-separated transition `src dst in out` (decimal, in == out, label in
// [1,255]) or a bare decimal state id marking that state final. States are
// declared implicitly by any appearance. The start state is state id 0 if it
// appears, otherwise the smallest id appearing as a transition source; text
// without any transition is rejected.
func parseFST(text string) (*fstAutomaton, error) {
	type rawTransition struct {
		src, dst uint64
		label    byte
		line     int
	}
	var (
		raw      []rawTransition
		rawFinal = make(map[uint64]bool)
		seen     = make(map[uint64]bool)
	)

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for li, line := range lines {
		lineno := li + 1
		if line == "" {
			return nil, automatonError(lineno, "empty record")
		}
		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 1:
			id, err := parseStateID(fields[0])
			if err != nil {
				return nil, automatonError(lineno, "bad state id %q", fields[0])
			}
			seen[id] = true
			rawFinal[id] = true
		case 4:
			src, err := parseStateID(fields[0])
			if err != nil {
				return nil, automatonError(lineno, "bad source state %q", fields[0])
			}
			dst, err := parseStateID(fields[1])
			if err != nil {
				return nil, automatonError(lineno, "bad target state %q", fields[1])
			}
			in, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return nil, automatonError(lineno, "bad input label %q", fields[2])
			}
			out, err := strconv.ParseUint(fields[3], 10, 64)
			if err != nil {
				return nil, automatonError(lineno, "bad output label %q", fields[3])
			}
			if in != out {
				return nil, automatonError(lineno, "input label %d differs from output label %d", in, out)
			}
			if in < 1 || in > 255 {
				return nil, automatonError(lineno, "label %d outside byte range 1-255", in)
			}
			seen[src] = true
			seen[dst] = true
			raw = append(raw, rawTransition{src: src, dst: dst, label: byte(in), line: lineno})
		default:
			return nil, automatonError(lineno, "expected 1 or 4 tab-separated fields, got %d", len(fields))
		}
	}

	if len(seen) == 0 {
		return nil, automatonError(0, "no states")
	}

	a := &fstAutomaton{
		ids:   make([]uint64, 0, len(seen)),
		final: make([]bool, len(seen)),
	}
	for id := range seen {
		a.ids = append(a.ids, id)
	}
	sort.Slice(a.ids, func(i, j int) bool { return a.ids[i] < a.ids[j] })
	index := make(map[uint64]int, len(a.ids))
	for i, id := range a.ids {
		index[id] = i
	}
	for id := range rawFinal {
		a.final[index[id]] = true
	}

	// Duplicate (state, label) records make δ relational, not functional.
	var alphabet [256]bool
	dup := make(map[uint64]bool, len(raw))
	for _, r := range raw {
		src := index[r.src]
		key := uint64(src)<<8 | uint64(r.label)
		if dup[key] {
			return nil, automatonError(r.line, "duplicate transition from state %d on label %d", r.src, r.label)
		}
		dup[key] = true
		alphabet[r.label] = true
		a.trans = append(a.trans, fstTransition{src: src, dst: index[r.dst], label: r.label})
	}
	for c := 1; c < 256; c++ {
		if alphabet[c] {
			a.alphabet = append(a.alphabet, byte(c))
		}
	}
	if len(a.alphabet) == 0 {
		return nil, automatonError(0, "no transitions")
	}

	if i, ok := index[0]; ok {
		a.start = i
	} else {
		min := raw[0].src
		for _, r := range raw[1:] {
			if r.src < min {
				min = r.src
			}
		}
		a.start = index[min]
	}
	return a, nil
}

// parseStateID parses a decimal state id.
func parseStateID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
