package dotignore

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Sriram-PR/go-dotignore/wildmatch"
)

// wildcardChars ends the literal prefix of a pattern. A backslash is
// included because the character after it is not known to be literal text
// until the escape is resolved.
const wildcardChars = `*?[\`

// MatchOptions configures how patterns are compiled and compared.
type MatchOptions struct {
	// CaseFold compares pattern and path case-insensitively.
	CaseFold bool

	// KeepEscapedTrailingSpace keeps a trailing space quoted by a backslash
	// ("foo\ ") instead of trimming it with the rest of the whitespace.
	KeepEscapedTrailingSpace bool
}

// ParseWarning describes a line that could not become a working rule.
type ParseWarning struct {
	Pattern string // The problematic pattern
	Message string // Human-readable warning message
	Line    int    // Line number (1-indexed), zero when loaded without numbers
}

// Matcher tests a single piece of text against a compiled pattern.
type Matcher interface {
	Test(text string) bool
}

// Pattern is a parsed ignore line: the glob text, the flags derived from its
// markers, and the Matcher chosen for its residual text. Patterns are
// immutable.
type Pattern struct {
	original      string
	residual      string
	prefix        string
	negated       bool
	anchored      bool
	dirOnly       bool
	containsSlash bool
	wild          bool
	line          int
	opts          MatchOptions
	matcher       Matcher
	malformed     error
}

// Compile parses a single pattern line. It fails with ErrInvalidPattern when
// nothing is left of the line after trimming and stripping the "!", "/" and
// trailing "/" markers. Structurally invalid globs are not errors: they
// compile into a pattern that never matches, see Malformed.
func Compile(raw string, opts MatchOptions) (*Pattern, error) {
	return compileLine(raw, 0, opts)
}

func compileLine(raw string, line int, opts MatchOptions) (*Pattern, error) {
	text := canonicalText(raw, opts.KeepEscapedTrailingSpace)
	if text == "" {
		return nil, fmt.Errorf("%w: pattern is empty", ErrInvalidPattern)
	}

	p := &Pattern{original: text, line: line, opts: opts}

	residual := text
	if strings.HasPrefix(residual, "!") {
		p.negated = true
		residual = residual[1:]
	}
	if strings.HasPrefix(residual, "/") {
		p.anchored = true
		residual = residual[1:]
	}
	if strings.HasSuffix(residual, "/") {
		p.dirOnly = true
		residual = residual[:len(residual)-1]
	}
	if residual == "" {
		return nil, fmt.Errorf("%w: %q has no text besides markers", ErrInvalidPattern, text)
	}

	p.residual = residual
	p.containsSlash = strings.Contains(residual, "/")

	if i := strings.IndexAny(residual, wildcardChars); i >= 0 {
		p.wild = true
		p.prefix = residual[:i]
	} else {
		p.prefix = residual
	}

	switch err := wildmatch.Validate(residual); {
	case err != nil:
		p.malformed = err
		p.matcher = inertMatcher{}
	case p.wild:
		var flags wildmatch.Flags = wildmatch.Pathname
		if opts.CaseFold {
			flags |= wildmatch.CaseFold
		}
		p.matcher = globMatcher{pattern: residual, flags: flags}
	default:
		p.matcher = literalMatcher{text: residual, fold: opts.CaseFold}
	}

	return p, nil
}

// Original returns the pattern text as supplied, with surrounding whitespace
// trimmed.
func (p *Pattern) Original() string { return p.original }

// Residual returns the glob left after stripping the "!", leading "/" and
// trailing "/" markers.
func (p *Pattern) Residual() string { return p.residual }

// Negated reports a leading "!".
func (p *Pattern) Negated() bool { return p.negated }

// Anchored reports a leading "/".
func (p *Pattern) Anchored() bool { return p.anchored }

// DirectoryOnly reports a trailing "/".
func (p *Pattern) DirectoryOnly() bool { return p.dirOnly }

// ContainsSlash reports whether the residual text contains "/". Such patterns
// match the whole path; others match any single path segment.
func (p *Pattern) ContainsSlash() bool { return p.containsSlash }

// CaseFold reports whether the pattern compares case-insensitively.
func (p *Pattern) CaseFold() bool { return p.opts.CaseFold }

// Line returns the 1-based source line, if the pattern was loaded with one.
func (p *Pattern) Line() (int, bool) { return p.line, p.line > 0 }

// Malformed returns the reason the glob can never match, or nil.
func (p *Pattern) Malformed() error { return p.malformed }

// Matcher returns the strategy chosen for the residual text.
func (p *Pattern) Matcher() Matcher { return p.matcher }

// globMatcher runs the residual text through wildmatch.
type globMatcher struct {
	pattern string
	flags   wildmatch.Flags
}

func (g globMatcher) Test(text string) bool {
	return wildmatch.Match(g.pattern, text, g.flags) == wildmatch.Matched
}

// literalMatcher handles residual text without any glob syntax.
type literalMatcher struct {
	text string
	fold bool
}

func (l literalMatcher) Test(text string) bool {
	return equalText(l.text, text, l.fold)
}

// inertMatcher stands in for a malformed glob.
type inertMatcher struct{}

func (inertMatcher) Test(string) bool { return false }

// equalText compares rune by rune, lowering both sides when fold is set. It
// decodes and folds the same way wildmatch does so literal and glob patterns
// agree, invalid bytes included.
func equalText(a, b string, fold bool) bool {
	if !fold {
		return a == b
	}
	for a != "" && b != "" {
		ra, na := wildmatch.DecodeRune(a)
		rb, nb := wildmatch.DecodeRune(b)
		if unicode.ToLower(ra) != unicode.ToLower(rb) {
			return false
		}
		a, b = a[na:], b[nb:]
	}
	return a == "" && b == ""
}

// hasTextPrefix reports whether s starts with prefix under the given folding.
func hasTextPrefix(s, prefix string, fold bool) bool {
	if !fold {
		return strings.HasPrefix(s, prefix)
	}
	for prefix != "" {
		if s == "" {
			return false
		}
		rs, ns := wildmatch.DecodeRune(s)
		rp, np := wildmatch.DecodeRune(prefix)
		if unicode.ToLower(rs) != unicode.ToLower(rp) {
			return false
		}
		s, prefix = s[ns:], prefix[np:]
	}
	return true
}

// parseLines compiles a batch of lines. Blank and comment lines are skipped.
// With numbered set, each rule keeps its 1-based index in lines, counted
// before any filtering.
func parseLines(lines []string, numbered bool, opts MatchOptions) ([]*Rule, []ParseWarning) {
	var rules []*Rule
	var warnings []ParseWarning

	for i, line := range lines {
		lineNum := 0
		if numbered {
			lineNum = i + 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		p, err := compileLine(line, lineNum, opts)
		if err != nil {
			warnings = append(warnings, ParseWarning{
				Pattern: trimmed,
				Message: "pattern has no text besides markers",
				Line:    lineNum,
			})
			continue
		}
		if p.malformed != nil {
			warnings = append(warnings, ParseWarning{
				Pattern: p.original,
				Message: p.malformed.Error(),
				Line:    lineNum,
			})
		}
		rules = append(rules, &Rule{pattern: p})
	}

	return rules, warnings
}
