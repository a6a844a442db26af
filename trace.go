package dotignore

// Verb says whether a rule that fired ignored or re-included a path.
type Verb int

const (
	Ignored Verb = iota
	Included
)

func (v Verb) String() string {
	if v == Included {
		return "INCLUDED"
	}
	return "IGNORED"
}

// TraceEntry records one rule firing for one path.
type TraceEntry struct {
	Verb Verb
	Rule *Rule
}

// Trace records, per evaluated path, every rule that matched and what it
// decided, in the order the rules fired. A file query records its ancestor
// directories as separate paths.
//
// A Trace is not safe for concurrent use; give each goroutine its own.
type Trace struct {
	order   []string
	entries map[string][]TraceEntry
}

// NewTrace returns an empty Trace.
func NewTrace() *Trace {
	return &Trace{entries: make(map[string][]TraceEntry)}
}

// Paths returns the recorded paths in the order they were first evaluated.
func (t *Trace) Paths() []string {
	if len(t.order) == 0 {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns the entries recorded for path, which is normalized the same
// way query paths are.
func (t *Trace) Entries(path string) []TraceEntry {
	key, err := newTarget(path)
	if err != nil {
		return nil
	}
	entries := t.entries[key.path]
	if len(entries) == 0 {
		return nil
	}
	out := make([]TraceEntry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of recorded paths.
func (t *Trace) Len() int {
	return len(t.order)
}

func (t *Trace) record(path string, ignored bool, r *Rule) {
	if t == nil {
		return
	}
	if t.entries == nil {
		t.entries = make(map[string][]TraceEntry)
	}
	if _, seen := t.entries[path]; !seen {
		t.order = append(t.order, path)
	}
	verb := Ignored
	if !ignored {
		verb = Included
	}
	t.entries[path] = append(t.entries[path], TraceEntry{Verb: verb, Rule: r})
}
