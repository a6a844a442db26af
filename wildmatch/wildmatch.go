// Package wildmatch implements git's wildmatch algorithm: fnmatch(3)-style
// glob matching extended with the "**" wildcard used by .gitignore files.
//
// Supported syntax:
//
//   - "?" matches one character other than "/"
//   - "*" matches any run of characters; with Pathname it stops at "/"
//   - "**" bounded by "/" or the pattern ends matches across directories
//   - "[...]" bracket expressions with ranges, "!" or "^" negation,
//     backslash escapes and POSIX classes such as [:alpha:]
//   - "\x" matches the literal character x
//
// Text is compared by character. Bytes that are not valid UTF-8 are each
// treated as a distinct character, so two different invalid bytes never
// compare equal.
//
// Runs of "**/" are tried against every directory split, so stacking many of
// them against a deep path costs time exponential in the run count. Match has
// no step budget; callers that accept untrusted patterns should bound them.
//
// Malformed patterns are not errors at match time: Match reports AbortAll
// or AbortMalformed and the pattern simply never matches. Validate reports
// the same conditions up front.
package wildmatch

import (
	"unicode"
	"unicode/utf8"
)

// Result is the outcome of a Match call.
type Result int

const (
	// Matched means the text matched the whole pattern.
	Matched Result = iota

	// NoMatch means the text did not match.
	NoMatch

	// AbortAll means the text ran out before the pattern did, or a bracket
	// expression was unterminated or named an unknown class. No other split
	// of the text can match either.
	AbortAll

	// AbortMalformed means a "**" was not bounded by "/" or the ends of the
	// pattern.
	AbortMalformed

	// abortToStarStar unwinds a single "*" that would have to cross a "/"
	// back to the nearest enclosing "**". Match never returns it.
	abortToStarStar
)

func (r Result) String() string {
	switch r {
	case Matched:
		return "MATCH"
	case NoMatch:
		return "NOMATCH"
	case AbortAll:
		return "ABORT_ALL"
	case AbortMalformed:
		return "ABORT_MALFORMED"
	case abortToStarStar:
		return "ABORT_TO_STARSTAR"
	default:
		return "UNKNOWN"
	}
}

// IsMatch reports whether r is Matched.
func (r Result) IsMatch() bool {
	return r == Matched
}

// Flags modify matching behaviour.
type Flags uint8

const (
	// Pathname stops a single "*" and bracket expressions from matching "/".
	Pathname Flags = 1 << iota

	// CaseFold compares characters case-insensitively.
	CaseFold
)

// Match reports how text matches pattern.
func Match(pattern, text string, flags Flags) Result {
	m := matcher{
		pathname: flags&Pathname != 0,
		fold:     flags&CaseFold != 0,
	}
	r := m.dowild(decode(pattern), decode(text))
	if r == abortToStarStar {
		return NoMatch
	}
	return r
}

// invalidBase is where undecodable bytes are placed. Surrogates never come
// out of a successful UTF-8 decode, so each invalid byte keeps its own rune.
const invalidBase rune = 0xDC00

// DecodeRune is utf8.DecodeRuneInString except that an invalid byte b
// decodes to a rune unique to b instead of utf8.RuneError.
func DecodeRune(s string) (rune, int) {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && n == 1 {
		return invalidBase | rune(s[0]), 1
	}
	return r, n
}

func decode(s string) []rune {
	out := make([]rune, 0, len(s))
	for s != "" {
		r, n := DecodeRune(s)
		out = append(out, r)
		s = s[n:]
	}
	return out
}

type matcher struct {
	pathname bool
	fold     bool
}

func (m *matcher) lower(r rune) rune {
	if m.fold {
		return unicode.ToLower(r)
	}
	return r
}

func (m *matcher) dowild(p, text []rune) Result {
	ti := 0
	for pi := 0; pi < len(p); pi, ti = pi+1, ti+1 {
		pch := p[pi]
		if ti == len(text) && pch != '*' {
			return AbortAll
		}

		var tch rune
		if ti < len(text) {
			tch = m.lower(text[ti])
		}

		switch pch {
		case '\\':
			pi++
			if pi == len(p) {
				return NoMatch
			}
			if tch != m.lower(p[pi]) {
				return NoMatch
			}

		case '?':
			if tch == '/' {
				return NoMatch
			}

		case '*':
			matchSlash := !m.pathname
			pi++
			if pi < len(p) && p[pi] == '*' {
				before := pi - 2
				for pi < len(p) && p[pi] == '*' {
					pi++
				}
				if (before >= 0 && p[before] != '/') || (pi < len(p) && p[pi] != '/') {
					return AbortMalformed
				}
				// "**/" may match zero directories.
				if pi < len(p) && m.dowild(p[pi+1:], text[ti:]) == Matched {
					return Matched
				}
				matchSlash = true
			}

			if pi == len(p) {
				// Trailing "**" matches everything; trailing "*" only the
				// rest of the current path component.
				if !matchSlash && indexRune(text[ti:], '/') >= 0 {
					return NoMatch
				}
				return Matched
			}

			if !matchSlash && p[pi] == '/' {
				// "*/" consumes exactly the rest of this component; the
				// slash itself is consumed by the loop.
				slash := indexRune(text[ti:], '/')
				if slash < 0 {
					return NoMatch
				}
				ti += slash
				continue
			}

			return m.star(p[pi:], text[ti:], matchSlash)

		case '[':
			end, matched, err := m.bracket(p, pi, tch)
			if err != nil {
				return AbortAll
			}
			pi = end
			if !matched || (m.pathname && tch == '/') {
				return NoMatch
			}

		default:
			if tch != m.lower(pch) {
				return NoMatch
			}
		}
	}

	if ti == len(text) {
		return Matched
	}
	return NoMatch
}

// star tries every split of text after a star run, shortest first. p is the
// pattern after the stars and is never empty.
func (m *matcher) star(p, text []rune, matchSlash bool) Result {
	for ti := 0; ti < len(text); ti++ {
		tch := m.lower(text[ti])

		// When a literal follows the stars, everything up to its next
		// occurrence must belong to the star, so skip straight there.
		if !isGlobSpecial(p[0]) {
			want := m.lower(p[0])
			for ; ti < len(text); ti++ {
				tch = m.lower(text[ti])
				if tch == want || (!matchSlash && tch == '/') {
					break
				}
			}
			if ti == len(text) || tch != want {
				return NoMatch
			}
		}

		r := m.dowild(p, text[ti:])
		if r != NoMatch {
			if !matchSlash || r != abortToStarStar {
				return r
			}
		} else if !matchSlash && tch == '/' {
			return abortToStarStar
		}
	}
	return AbortAll
}

func isGlobSpecial(r rune) bool {
	switch r {
	case '*', '?', '[', '\\':
		return true
	}
	return false
}

func indexRune(s []rune, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}
