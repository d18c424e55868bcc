package nfa

// Compile builds an ε-NFA for pattern via Thompson's construction.
//
// The grammar is deliberately small: single bytes, `\c` escapes, grouping
// with parentheses, alternation `|`, and the postfix operators `?`, `*`, `+`.
// Precedence from highest to lowest: postfix, concatenation, alternation.
// There are no character classes, anchors, repetition counts or captures.
//
// Every sub-pattern is stitched between an entry state s and an exit state t
// with ε-transitions. The top level allocates state 0 (initial) and state 1
// (final), recurses over the whole pattern, then ε-closes the initial set so
// downstream subset construction can start from it directly.
//
// Malformed patterns (empty pattern, unbalanced parentheses, dangling escape,
// postfix operator without an operand, empty group or alternation branch)
// return an error satisfying errors.Is(err, ErrInvalidRegex).
func Compile(pattern string) (*NFA, error) {
	if pattern == "" {
		return nil, parseError(pattern, 0, "empty pattern")
	}
	n := New()
	s := n.AddState()
	t := n.AddState()
	n.SetFinal(t)
	c := &compiler{pattern: pattern, nfa: n}
	if err := c.build(s, t, 0, len(pattern)); err != nil {
		return nil, err
	}
	n.SetInit([]StateID{s})
	n.closeInit()
	return n, nil
}

// compiler carries the pattern and the NFA under construction through the
// recursive descent.
type compiler struct {
	pattern string
	nfa     *NFA
}

// isMeta reports whether b is one of the grammar's metacharacters.
func isMeta(b byte) bool {
	switch b {
	case '\\', '(', ')', '|', '?', '*', '+':
		return true
	}
	return false
}

// build compiles pattern[lo:hi] between entry state s and exit state t.
//
// The shape follows the grammar's precedence in reverse: a top-level `|`
// splits first (alternation binds loosest), then a top-level concatenation
// point, and only then is the remainder a single atom with an optional
// postfix operator or a parenthesized group.
func (c *compiler) build(s, t StateID, lo, hi int) error {
	p := c.pattern
	if hi <= lo {
		return parseError(p, lo, "empty expression")
	}

	// Single-byte atom.
	if hi-lo == 1 {
		b := p[lo]
		if isMeta(b) {
			switch b {
			case '\\':
				return parseError(p, lo, "dangling escape")
			case '(', ')':
				return parseError(p, lo, "unbalanced parenthesis")
			case '|':
				return parseError(p, lo, "alternation without operand")
			default:
				return parseError(p, lo, "postfix operator without operand")
			}
		}
		c.nfa.Insert(s, b, t)
		return nil
	}

	// Escaped-byte atom.
	if hi-lo == 2 && p[lo] == '\\' {
		c.nfa.Insert(s, p[lo+1], t)
		return nil
	}

	// One left-to-right scan records the last top-level `|` and the start of
	// the last top-level atom (the concatenation split point). Escapes and
	// parenthesized groups are skipped as units; postfix operators extend the
	// preceding atom and never start one.
	option := -1
	concat := -1
	depth := 0
	for i := lo; i < hi; i++ {
		switch p[i] {
		case '\\':
			if depth == 0 {
				concat = i
			}
			i++
			if i >= hi {
				return parseError(p, hi-1, "dangling escape")
			}
		case '(':
			if depth == 0 {
				concat = i
			}
			depth++
		case ')':
			if depth == 0 {
				return parseError(p, i, "unbalanced parenthesis")
			}
			depth--
		case '|':
			if depth == 0 {
				option = i
			}
		case '?', '*', '+':
		default:
			if depth == 0 {
				concat = i
			}
		}
	}
	if depth != 0 {
		return parseError(p, hi-1, "unbalanced parenthesis")
	}

	// Alternation: a fresh (entry, exit) pair per branch, ε-stitched to s/t.
	if option >= 0 {
		for _, span := range [2][2]int{{lo, option}, {option + 1, hi}} {
			i0 := c.nfa.AddState()
			i1 := c.nfa.AddState()
			c.nfa.Insert(s, Epsilon, i0)
			c.nfa.Insert(i1, Epsilon, t)
			if err := c.build(i0, i1, span[0], span[1]); err != nil {
				return err
			}
		}
		return nil
	}

	// Concatenation: two halves joined by an ε-bridge.
	if concat > lo {
		i0 := c.nfa.AddState()
		i1 := c.nfa.AddState()
		c.nfa.Insert(i0, Epsilon, i1)
		if err := c.build(s, i0, lo, concat); err != nil {
			return err
		}
		return c.build(i1, t, concat, hi)
	}

	// A single atom, possibly with one postfix operator.
	switch p[hi-1] {
	case '?':
		i0 := c.nfa.AddState()
		i1 := c.nfa.AddState()
		c.nfa.Insert(s, Epsilon, i0)
		c.nfa.Insert(s, Epsilon, t)
		c.nfa.Insert(i1, Epsilon, t)
		return c.build(i0, i1, lo, hi-1)
	case '*':
		i0 := c.nfa.AddState()
		i1 := c.nfa.AddState()
		c.nfa.Insert(s, Epsilon, i0)
		c.nfa.Insert(s, Epsilon, t)
		c.nfa.Insert(i1, Epsilon, i0)
		c.nfa.Insert(i1, Epsilon, t)
		return c.build(i0, i1, lo, hi-1)
	case '+':
		// One mandatory copy of the operand followed by a star segment.
		i0 := c.nfa.AddState()
		i1 := c.nfa.AddState()
		c.nfa.Insert(i0, Epsilon, i1)
		if err := c.build(s, i0, lo, hi-1); err != nil {
			return err
		}
		j0 := c.nfa.AddState()
		j1 := c.nfa.AddState()
		c.nfa.Insert(i1, Epsilon, j0)
		c.nfa.Insert(i1, Epsilon, t)
		c.nfa.Insert(j1, Epsilon, j0)
		c.nfa.Insert(j1, Epsilon, t)
		return c.build(j0, j1, lo, hi-1)
	}

	// Parenthesized group.
	if p[lo] == '(' && p[hi-1] == ')' {
		return c.build(s, t, lo+1, hi-1)
	}
	return parseError(p, lo, "unexpected expression")
}
