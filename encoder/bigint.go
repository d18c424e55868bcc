package encoder

import (
	"fmt"
	"math/big"
)

// ParseIndex parses a non-negative base-10 integer from the host boundary.
// Big integers cross language bindings as decimal strings, so this is the
// only place external text becomes arithmetic. Failures return
// ErrArithmetic.
func ParseIndex(s string) (*big.Int, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a base-10 integer", ErrArithmetic, s)
	}
	if i.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrArithmetic, s)
	}
	return i, nil
}

// FormatIndex emits i as base-10 text for the host boundary.
func FormatIndex(i *big.Int) string {
	return i.Text(10)
}
