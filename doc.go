// Package dotignore decides whether paths are ignored by a list of
// .gitignore-style rules, with the same precedence, anchoring and wildcard
// behaviour as git.
//
// # Basic Usage
//
//	l := dotignore.New()
//
//	content, _ := os.ReadFile(".gitignore")
//	l.AddPatterns(content)
//
//	ignored, err := l.IsIgnored("node_modules/foo.js", false)
//
// The caller says whether a path is a directory; the filesystem is never
// consulted.
//
// # Precedence
//
// Rules are evaluated in the order they were added and the last matching rule
// wins, so "!keep.log" after "*.log" re-includes keep.log. A file is also
// ignored when any of its ancestor directories is ignored: once "build/" has
// matched, no later rule can re-include "build/keep.txt".
//
// # Supported Syntax
//
//   - Plain names: "debug.log" matches that name at any depth
//   - Leading /: "/debug.log" matches only at the root
//   - Trailing /: "build/" matches directories only
//   - Wildcards: "?", "*" and bracket expressions such as "[a-z]",
//     "[!0-9]" and "[[:alpha:]]"
//   - Double star: "**/logs", "logs/**" and "a/**/b"
//   - Negation: "!important.log"
//   - Escapes: "\!important", "\#hash", "\*"
//
// A pattern with broken glob syntax, such as an unterminated "[" or "a**b",
// is kept as a rule that never matches and reported as a ParseWarning.
//
// # Path Normalization
//
// Query paths are normalized before matching:
//
//   - Surrounding whitespace is trimmed
//   - OS separators become "/"
//   - The colon of a drive marker is dropped ("C:/x" becomes "C/x")
//   - Leading "./", leading "/" and a trailing "/" are removed
//   - Consecutive slashes are collapsed
//
// # Diagnostics
//
// Explain reports the decisive rule for one path. IsIgnoredWithTrace records
// every rule that fired for the path and its ancestors in a Trace.
//
// # Thread Safety
//
// List is safe for concurrent use. For best throughput, load all rules
// before starting concurrent queries.
package dotignore
