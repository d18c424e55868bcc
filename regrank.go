// Package regrank provides a bijective ranking/unranking encoder for regular
// languages, the building block of format-transforming encryption.
//
// Given a pattern R and a length bound n, the encoder enumerates
// L_n(R) = { w ∈ L(R) : |w| ≤ n } in canonical order (length first, then
// byte-lexicographic) and converts both ways between words and positions:
//
//	enc, err := regrank.Compile(`(a|b)+`, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w, _ := enc.Unrank(big.NewInt(1000)) // 1000th word of the language
//	i, _ := enc.Rank(w)                  // back to 1000
//
// The pipeline behind Compile: the pattern compiles to an ε-NFA by
// Thompson's construction (package nfa), is determinized and minimized with
// Brzozowski's algorithm (package dfa), serialized to FST text, and handed
// to the ranking engine (package encoder). The FST text is the contract
// between the automaton layer and the encoder; the encoder never sees an
// in-memory automaton.
//
// Supported syntax is deliberately small: single bytes, `\c` escapes,
// `(...)` groups, `a|b` alternation, and the postfix operators `?`, `*`,
// `+`. No character classes, anchors, repetition counts or captures.
package regrank

import (
	"github.com/coregx/regrank/dfa"
	"github.com/coregx/regrank/encoder"
	"github.com/coregx/regrank/nfa"
)

// Encoder is the ranking engine; see package encoder for its operations.
type Encoder = encoder.Encoder

// Error sentinels re-exported so callers can match the whole pipeline's
// failure taxonomy from one import.
var (
	ErrInvalidRegex     = nfa.ErrInvalidRegex
	ErrInvalidAutomaton = encoder.ErrInvalidAutomaton
	ErrRankOutOfRange   = encoder.ErrRankOutOfRange
	ErrNotInLanguage    = encoder.ErrNotInLanguage
	ErrLengthBound      = encoder.ErrLengthBound
	ErrArithmetic       = encoder.ErrArithmetic
)

// Compile runs the full pipeline from pattern to a ready encoder with the
// given fixed slice (maximum word length).
func Compile(pattern string, fixedSlice int) (*Encoder, error) {
	d, err := dfa.FromPattern(pattern)
	if err != nil {
		return nil, err
	}
	return encoder.New(d.MarshalFST(), fixedSlice)
}

// MustCompile is like Compile but panics on error. It simplifies safe
// initialization of package-level encoders for known-good patterns.
func MustCompile(pattern string, fixedSlice int) *Encoder {
	enc, err := Compile(pattern, fixedSlice)
	if err != nil {
		panic(`regrank: Compile(` + pattern + `): ` + err.Error())
	}
	return enc
}
