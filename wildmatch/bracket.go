package wildmatch

import (
	"errors"
	"fmt"
	"unicode"
)

var errUnterminatedBracket = errors.New("unterminated bracket expression")

// noPrev marks that the previous bracket member cannot start a range.
const noPrev rune = -1

// bracket parses the bracket expression opening at p[start] and tests tch
// against it. It returns the index of the closing ']' and whether tch is in
// the set, with negation already applied.
func (m *matcher) bracket(p []rune, start int, tch rune) (int, bool, error) {
	pi := start + 1
	if pi == len(p) {
		return 0, false, errUnterminatedBracket
	}

	pch := p[pi]
	negated := pch == '!' || pch == '^'
	if negated {
		pi++
		if pi == len(p) {
			return 0, false, errUnterminatedBracket
		}
		pch = p[pi]
	}

	prev := noPrev
	matched := false
	for {
		switch {
		case pch == '\\':
			pi++
			if pi == len(p) {
				return 0, false, errUnterminatedBracket
			}
			pch = p[pi]
			if tch == m.lower(pch) {
				matched = true
			}

		case pch == '-' && prev != noPrev && pi+1 < len(p) && p[pi+1] != ']':
			pi++
			pch = p[pi]
			if pch == '\\' {
				pi++
				if pi == len(p) {
					return 0, false, errUnterminatedBracket
				}
				pch = p[pi]
			}
			if tch <= pch && tch >= prev {
				matched = true
			} else if m.fold && unicode.IsLower(tch) {
				upper := unicode.ToUpper(tch)
				if upper <= pch && upper >= prev {
					matched = true
				}
			}
			pch = noPrev

		case pch == '[' && pi+1 < len(p) && p[pi+1] == ':':
			s := pi + 2
			end := s
			for end < len(p) && p[end] != ']' {
				end++
			}
			if end == len(p) {
				return 0, false, errUnterminatedBracket
			}
			n := end - s - 1
			if n < 0 || p[end-1] != ':' {
				// No ":]", so the '[' is an ordinary member.
				if tch == '[' {
					matched = true
				}
				break
			}
			name := string(p[s : s+n])
			in, ok := m.class(name, tch)
			if !ok {
				return 0, false, fmt.Errorf("unknown character class [:%s:]", name)
			}
			if in {
				matched = true
			}
			pi = end
			pch = noPrev

		default:
			if tch == m.lower(pch) {
				matched = true
			}
		}

		prev = pch
		pi++
		if pi == len(p) {
			return 0, false, errUnterminatedBracket
		}
		pch = p[pi]
		if pch == ']' {
			break
		}
	}

	return pi, matched != negated, nil
}

// class reports whether r belongs to the named POSIX class. ok is false for
// an unknown name.
func (m *matcher) class(name string, r rune) (in, ok bool) {
	switch name {
	case "alnum":
		return unicode.IsLetter(r) || unicode.IsDigit(r), true
	case "alpha":
		return unicode.IsLetter(r), true
	case "blank":
		return r == ' ' || r == '\t', true
	case "cntrl":
		return unicode.IsControl(r), true
	case "digit":
		return unicode.IsDigit(r), true
	case "graph":
		return unicode.IsPrint(r) && r != ' ', true
	case "lower":
		return unicode.IsLower(r), true
	case "print":
		return unicode.IsPrint(r), true
	case "punct":
		return unicode.IsPunct(r) || unicode.IsSymbol(r), true
	case "space":
		return unicode.IsSpace(r), true
	case "upper":
		return unicode.IsUpper(r) || (m.fold && unicode.IsLower(r)), true
	case "xdigit":
		return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F'), true
	}
	return false, false
}
