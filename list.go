package dotignore

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// MatchResult explains an ignore decision.
type MatchResult struct {
	// Ignored is the final verdict, including the ancestor cascade.
	Ignored bool

	// Matched reports whether any rule matched the path itself.
	Matched bool

	// Negated reports whether the last rule matching the path itself was a
	// negation. When Matched and Negated are both true the path was
	// re-included, though an ignored ancestor may still override that.
	Negated bool

	// Rule is the last rule that matched the path itself, or nil.
	Rule *Rule

	// Line is Rule's source line, or zero.
	Line int

	// Ancestor is the first ignored ancestor directory of a file, or "".
	// When set, it decided Ignored regardless of Rule.
	Ancestor string

	// AncestorRule is the rule that ignored Ancestor.
	AncestorRule *Rule
}

// WarningHandler is called for each parse warning if set.
type WarningHandler func(warning ParseWarning)

// ListOptions configures a List.
type ListOptions struct {
	// Match is applied to every rule added to the list.
	Match MatchOptions

	// Logger receives debug events for loads and removals, a warning for
	// each pattern that can never match, and a trace event per decision.
	// Nil disables logging.
	Logger *zerolog.Logger
}

// List is an ordered set of rules evaluated with last-match-wins semantics.
//
// Thread Safety: List is safe for concurrent use. Queries take a read lock
// and loads or removals take a write lock, so a load is never observed
// half-applied.
type List struct {
	mu       sync.RWMutex
	rules    []*Rule
	warnings []ParseWarning
	handler  WarningHandler
	opts     MatchOptions
	logger   zerolog.Logger
}

// New returns an empty List with default options.
func New() *List {
	return NewWithOptions(ListOptions{})
}

// NewWithOptions returns an empty List with custom options.
func NewWithOptions(opts ListOptions) *List {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "dotignore").Logger()
	}
	return &List{
		opts:   opts.Match,
		logger: logger,
	}
}

// SetWarningHandler sets a callback for parse warnings. While a handler is
// set, warnings go to it instead of being collected.
func (l *List) SetWarningHandler(fn WarningHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = fn
}

// Warnings returns all collected parse warnings.
func (l *List) Warnings() []ParseWarning {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.warnings) == 0 {
		return nil
	}
	result := make([]ParseWarning, len(l.warnings))
	copy(result, l.warnings)
	return result
}

// AddRule compiles and appends a single pattern. Blank patterns, and
// patterns that are nothing but markers such as "!" or "/", fail with
// ErrInvalidPattern. Comment lines are accepted and ignored.
func (l *List) AddRule(pattern string) error {
	if strings.HasPrefix(strings.TrimSpace(pattern), "#") {
		return nil
	}

	r, err := NewRule(pattern, l.opts)
	if err != nil {
		return err
	}

	var warnings []ParseWarning
	if r.pattern.malformed != nil {
		warnings = append(warnings, ParseWarning{
			Pattern: r.pattern.original,
			Message: r.pattern.malformed.Error(),
		})
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = append(l.rules, r)
	l.logger.Debug().Str("pattern", r.pattern.original).Msg("rule added")
	l.report(warnings)
	return nil
}

// AddRules appends rules from in-memory patterns. Rules added this way carry
// no line numbers.
//
// Returns warnings for lines that cannot become working rules, unless a
// WarningHandler is set.
func (l *List) AddRules(patterns ...string) []ParseWarning {
	return l.add(patterns, false, "patterns")
}

// AddLines appends rules from lines of an ignore file. Each rule keeps its
// 1-based index in lines as its line number.
func (l *List) AddLines(lines []string) []ParseWarning {
	return l.add(lines, true, "lines")
}

// AddPatterns appends rules from the content of an ignore file.
//
// Input normalization (applied automatically):
//   - UTF-8 BOM is stripped if present
//   - CRLF and CR line endings are normalized to LF
func (l *List) AddPatterns(content []byte) []ParseWarning {
	if content == nil {
		return nil
	}
	content = normalizeContent(content)
	return l.add(strings.Split(string(content), "\n"), true, "content")
}

// AddReader reads an ignore file from r and appends its rules. Nothing is
// added if reading fails.
func (l *List) AddReader(r io.Reader) ([]ParseWarning, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ignore rules: %w", err)
	}
	return l.AddPatterns(content), nil
}

func (l *List) add(lines []string, numbered bool, source string) []ParseWarning {
	rules, warnings := parseLines(lines, numbered, l.opts)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rules = append(l.rules, rules...)
	l.logger.Debug().
		Str("source", source).
		Int("count", len(rules)).
		Int("warnings", len(warnings)).
		Msg("rules added")

	if l.report(warnings) {
		return nil
	}
	return warnings
}

// report delivers warnings to the handler or collects them, and reports
// whether a handler took them. l.mu must be held.
func (l *List) report(warnings []ParseWarning) bool {
	for _, w := range warnings {
		l.logger.Warn().
			Str("pattern", w.Pattern).
			Int("line", w.Line).
			Str("reason", w.Message).
			Msg("rule can never match")
	}

	if l.handler != nil {
		for _, w := range warnings {
			l.handler(w)
		}
		return true
	}

	l.warnings = append(l.warnings, warnings...)
	return false
}

// RemoveRule removes every rule whose original pattern equals pattern once
// trimmed, and returns how many were removed.
func (l *List) RemoveRule(pattern string) int {
	pattern = canonicalText(pattern, l.opts.KeepEscapedTrailingSpace)

	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.rules)
	l.rules = slices.DeleteFunc(l.rules, func(r *Rule) bool {
		return r.pattern.original == pattern
	})
	removed := before - len(l.rules)

	l.logger.Debug().Str("pattern", pattern).Int("count", removed).Msg("rules removed")
	return removed
}

// Clone returns an independent List with the same rules, options, logger and
// warning handler. Collected warnings are not copied.
func (l *List) Clone() *List {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return &List{
		rules:   slices.Clone(l.rules),
		handler: l.handler,
		opts:    l.opts,
		logger:  l.logger,
	}
}

// Rules returns the rules in evaluation order.
func (l *List) Rules() []*Rule {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.rules)
}

// Len returns the number of rules.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rules)
}

// IsIgnored reports whether path is ignored. isDir tells whether path is a
// directory; the filesystem is never consulted.
//
// A file is ignored when the last rule matching it is not a negation, or when
// any of its ancestor directories is ignored. An ignored directory cannot be
// re-entered by a negation that names something below it.
func (l *List) IsIgnored(path string, isDir bool) (bool, error) {
	res, err := l.explain(path, isDir, nil)
	return res.Ignored, err
}

// IsIgnoredWithTrace is IsIgnored that records every firing rule in trace.
// The trace is keyed by normalized path and includes each ancestor directory
// evaluated for a file. A nil trace records nothing.
func (l *List) IsIgnoredWithTrace(path string, isDir bool, trace *Trace) (bool, error) {
	res, err := l.explain(path, isDir, trace)
	return res.Ignored, err
}

// Explain returns detailed information about why path is or is not ignored.
//
// Result interpretation:
//   - Matched == false, Ancestor == "": no rule applies; path is not ignored
//   - Matched == true, Negated == false: path is ignored by Rule
//   - Matched == true, Negated == true: path was re-included by Rule
//   - Ancestor != "": path is ignored because AncestorRule ignored Ancestor
func (l *List) Explain(path string, isDir bool) (MatchResult, error) {
	return l.explain(path, isDir, nil)
}

func (l *List) explain(path string, isDir bool, trace *Trace) (MatchResult, error) {
	t, err := newTarget(path)
	if err != nil {
		return MatchResult{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	res := l.evaluate(t, isDir, trace)
	if !isDir {
		for i := 1; i < len(t.segments); i++ {
			dir := target{path: strings.Join(t.segments[:i], "/"), segments: t.segments[:i]}
			anc := l.evaluate(dir, true, trace)
			if anc.Ignored {
				res.Ignored = true
				res.Ancestor = dir.path
				res.AncestorRule = anc.Rule
				break
			}
		}
	}

	l.logger.Trace().
		Str("path", t.path).
		Bool("dir", isDir).
		Bool("ignored", res.Ignored).
		Str("ancestor", res.Ancestor).
		Msg("evaluated")

	return res, nil
}

// evaluate runs every rule against t in order; the last match wins.
// l.mu must be held.
func (l *List) evaluate(t target, isDir bool, trace *Trace) MatchResult {
	var res MatchResult
	for _, r := range l.rules {
		if !r.match(t, isDir) {
			continue
		}
		res.Matched = true
		res.Negated = r.pattern.negated
		res.Ignored = !r.pattern.negated
		res.Rule = r
		res.Line = r.pattern.line
		trace.record(t.path, res.Ignored, r)
	}
	return res
}
