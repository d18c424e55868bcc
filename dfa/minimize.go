package dfa

import (
	"github.com/coregx/regrank/nfa"
)

// Minimize returns the minimal DFA for d's language via Brzozowski's
// algorithm: reverse, determinize, reverse, determinize. The result is
// canonical up to state renumbering, so two equal-language inputs minimize
// to automata with identical state counts.
func Minimize(d *DFA) *DFA {
	return Determinize(Determinize(d.Reverse()).Reverse())
}

// FromPattern compiles pattern through the full pipeline:
// regex -> ε-NFA -> determinize -> Brzozowski minimization.
func FromPattern(pattern string) (*DFA, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return Minimize(Determinize(n)), nil
}
