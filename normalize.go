package dotignore

import (
	"bytes"
	"path/filepath"
	"strings"
)

// NormalizePath converts a caller-supplied path into the canonical form rules
// are matched against.
//
// Normalization steps (applied in order):
//  1. Trim surrounding whitespace
//  2. Convert OS separators to "/" (backslash is only a separator on Windows)
//  3. Drop the colon of a leading drive marker, so "C:/src" becomes "C/src"
//  4. Collapse consecutive slashes
//  5. Remove leading "./" prefixes
//  6. Remove a trailing slash
//
// A leading "/" is preserved; "." and ".." elements are not resolved.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	p = stripDriveColon(p)

	if strings.Contains(p, "//") {
		var b strings.Builder
		b.Grow(len(p))
		prevSlash := false
		for i := 0; i < len(p); i++ {
			if p[i] == '/' {
				if !prevSlash {
					b.WriteByte('/')
				}
				prevSlash = true
			} else {
				b.WriteByte(p[i])
				prevSlash = false
			}
		}
		p = b.String()
	}

	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}

	return strings.TrimSuffix(p, "/")
}

func stripDriveColon(p string) string {
	if len(p) < 2 || p[1] != ':' || !isASCIILetter(p[0]) {
		return p
	}
	if len(p) > 2 && p[2] != '/' {
		return p
	}
	return p[:1] + p[2:]
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// normalizeContent strips any UTF-8 BOM and converts CRLF and lone CR line
// endings to LF.
func normalizeContent(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	for len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	return content
}

// canonicalText trims a raw pattern line. By default all surrounding
// whitespace goes. With keepEscaped, a trailing space quoted by a backslash
// survives together with its backslash, so the matcher sees "\ " and matches
// a literal space.
func canonicalText(line string, keepEscaped bool) string {
	if !keepEscaped {
		return strings.TrimSpace(line)
	}
	line = strings.TrimLeft(line, " \t\r\n")
	return trimTrailingWhitespace(strings.TrimRight(line, "\r\n"))
}

// trimTrailingWhitespace removes trailing spaces and tabs from a line unless
// the first of them is escaped:
//   - "foo "    → "foo"
//   - "foo\ "   → "foo\ "
//   - "foo\\ "  → "foo\\"
//   - "foo\\\ " → "foo\\\ "
func trimTrailingWhitespace(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}

	if end == len(line) {
		return line
	}

	bs := 0
	for i := end - 1; i >= 0 && line[i] == '\\'; i-- {
		bs++
	}

	if bs%2 == 1 && line[end] == ' ' {
		return line[:end+1]
	}

	return line[:end]
}
