package dotignore

import (
	"fmt"
	"strings"
)

// Rule is a compiled pattern ready to be tested against paths. Rules are
// value objects: once built they never change, so lists and their clones
// can share them.
type Rule struct {
	pattern *Pattern
}

// NewRule compiles pattern into a Rule. It fails with ErrInvalidPattern for
// blank input.
func NewRule(pattern string, opts MatchOptions) (*Rule, error) {
	p, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Rule{pattern: p}, nil
}

// Pattern returns the parsed pattern behind the rule.
func (r *Rule) Pattern() *Pattern { return r.pattern }

// Options returns the options the rule was compiled with.
func (r *Rule) Options() MatchOptions { return r.pattern.opts }

// Negated reports whether a match re-includes the path.
func (r *Rule) Negated() bool { return r.pattern.negated }

// Line returns the 1-based source line, if known.
func (r *Rule) Line() (int, bool) { return r.pattern.Line() }

// String returns the original pattern, followed by " (line N)" when the rule
// was loaded with a line number.
func (r *Rule) String() string {
	if n, ok := r.pattern.Line(); ok {
		return fmt.Sprintf("%s (line %d)", r.pattern.original, n)
	}
	return r.pattern.original
}

// Matches reports whether the rule's glob matches path. Negation is not
// applied: a matching "!foo" rule still returns true. isDir must be supplied
// by the caller; it is never inferred from the path.
//
// An empty or whitespace path fails with ErrInvalidArgument.
func (r *Rule) Matches(path string, isDir bool) (bool, error) {
	t, err := newTarget(path)
	if err != nil {
		return false, err
	}
	return r.match(t, isDir), nil
}

func (r *Rule) match(t target, isDir bool) bool {
	p := r.pattern
	if p.malformed != nil {
		return false
	}

	if p.dirOnly && !isDir {
		return false
	}

	fold := p.opts.CaseFold

	if p.anchored && !hasTextPrefix(t.path, p.prefix, fold) {
		return false
	}

	if !p.wild && !p.anchored {
		return hasSegmentSuffix(t.segments, p.residual, fold)
	}

	if p.anchored || p.containsSlash {
		return p.matcher.Test(t.path)
	}

	for _, seg := range t.segments {
		if p.matcher.Test(seg) {
			return true
		}
	}
	return false
}

// hasSegmentSuffix reports whether the path made of segments ends with
// suffix on a segment boundary: "a/test.txt" ends with "test.txt" but
// "a/xtest.txt" does not.
func hasSegmentSuffix(segments []string, suffix string, fold bool) bool {
	n := strings.Count(suffix, "/") + 1
	if len(segments) < n {
		return false
	}
	return equalText(strings.Join(segments[len(segments)-n:], "/"), suffix, fold)
}

// target is a query path in normalized form, split once for per-segment
// matching.
type target struct {
	path     string
	segments []string
}

func newTarget(path string) (target, error) {
	if strings.TrimSpace(path) == "" {
		return target{}, fmt.Errorf("%w: path is empty", ErrInvalidArgument)
	}

	p := strings.TrimLeft(NormalizePath(path), "/")
	if p == "" {
		return target{}, fmt.Errorf("%w: %q names no path below the root", ErrInvalidArgument, path)
	}

	return target{path: p, segments: strings.Split(p, "/")}, nil
}
