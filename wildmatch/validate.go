package wildmatch

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every error returned from Validate.
var ErrMalformed = errors.New("malformed pattern")

// Validate reports whether pattern is structurally valid. A pattern that
// fails validation never matches any text.
//
// The checks follow the same parse as Match: a lone trailing backslash,
// a "**" not bounded by "/" or the pattern ends, an unterminated bracket
// expression, and an empty or unknown [:class:] are all rejected.
func Validate(pattern string) error {
	p := decode(pattern)
	var m matcher
	for pi := 0; pi < len(p); pi++ {
		switch p[pi] {
		case '\\':
			pi++
			if pi == len(p) {
				return fmt.Errorf("%w: trailing backslash", ErrMalformed)
			}

		case '*':
			start := pi
			for pi+1 < len(p) && p[pi+1] == '*' {
				pi++
			}
			if pi == start {
				continue
			}
			if (start > 0 && p[start-1] != '/') || (pi+1 < len(p) && p[pi+1] != '/') {
				return fmt.Errorf("%w: \"**\" at offset %d must be bounded by slashes", ErrMalformed, start)
			}

		case '[':
			end, _, err := m.bracket(p, pi, 0)
			if err != nil {
				return fmt.Errorf("%w: %v at offset %d", ErrMalformed, err, pi)
			}
			pi = end
		}
	}
	return nil
}
