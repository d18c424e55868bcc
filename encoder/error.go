package encoder

import (
	"errors"
	"fmt"
)

// Sentinel errors for the encoder's failure taxonomy. Callers match them
// with errors.Is; the concrete errors carry context.
var (
	// ErrInvalidAutomaton indicates the FST text failed to parse or the
	// automaton violates a structural constraint (duplicate transition,
	// unreachable final state, empty language within the length bound).
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrRankOutOfRange indicates an unrank index outside [0, |L_n|).
	ErrRankOutOfRange = errors.New("rank index out of range")

	// ErrNotInLanguage indicates a rank argument the automaton does not
	// accept, or one longer than the fixed slice.
	ErrNotInLanguage = errors.New("word not in language")

	// ErrLengthBound indicates a length outside the current fixed slice.
	ErrLengthBound = errors.New("length bound exceeded")

	// ErrArithmetic indicates a big integer failed to parse at the host
	// boundary.
	ErrArithmetic = errors.New("arithmetic error")
)

// AutomatonError describes an FST record or structural constraint that made
// the automaton unusable. Line is 1-based; 0 means the failure is not tied
// to a single record.
type AutomatonError struct {
	Line int
	Msg  string
}

// Error implements the error interface.
func (e *AutomatonError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid automaton: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("invalid automaton: %s", e.Msg)
}

// Unwrap makes errors.Is(err, ErrInvalidAutomaton) work for AutomatonError
// values.
func (e *AutomatonError) Unwrap() error {
	return ErrInvalidAutomaton
}

// automatonError builds an *AutomatonError for the given record line.
func automatonError(line int, format string, args ...interface{}) error {
	return &AutomatonError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// automatonLengthError reports a fixed slice that is not a valid length.
func automatonLengthError(n int) error {
	return fmt.Errorf("%w: invalid fixed slice %d", ErrLengthBound, n)
}

// boundsError reports a [lower, upper] interval outside the current slice.
func boundsError(lower, upper, n int) error {
	return fmt.Errorf("%w: bounds [%d,%d] outside [0,%d]", ErrLengthBound, lower, upper, n)
}
