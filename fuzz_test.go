package dotignore

import (
	"strings"
	"testing"
	"unicode"
)

func FuzzCompile(f *testing.F) {
	seeds := []string{
		"*.log", "!important.log", "/build/", "**/temp", "a/**/b", "abc[",
		"[[:alpha:]]", "a**b", `\!x`, `foo\ `, "!", "/", "  ", "日本語/",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		p, err := Compile(raw, MatchOptions{})
		if err != nil {
			return
		}
		if p.Residual() == "" {
			t.Fatalf("empty residual for %q", raw)
		}
		again, err := Compile(p.Original(), MatchOptions{})
		if err != nil {
			t.Fatalf("recompiling %q: %v", p.Original(), err)
		}
		if again.Original() != p.Original() || again.Residual() != p.Residual() {
			t.Fatalf("round trip changed %q", raw)
		}
		if p.Malformed() != nil && p.Matcher().Test(p.Residual()) {
			t.Fatalf("malformed %q matched", raw)
		}
	})
}

func FuzzRuleMatches(f *testing.F) {
	seeds := []struct {
		pattern string
		path    string
	}{
		{"*.log", "a/b.log"},
		{"/root", "root"},
		{"dir/", "x/dir"},
		{"a/**/b", "a/x/y/b"},
		{"[!a-z]", "Q"},
		{"abc[", "abc["},
	}
	for _, s := range seeds {
		f.Add(s.pattern, s.path, false)
	}

	f.Fuzz(func(t *testing.T, pattern, path string, isDir bool) {
		r, err := NewRule(pattern, MatchOptions{})
		if err != nil {
			return
		}
		ok, err := r.Matches(path, isDir)
		if err != nil {
			return
		}
		if ok && r.Pattern().DirectoryOnly() && !isDir {
			t.Fatalf("directory-only %q matched file %q", pattern, path)
		}
		if ok && r.Pattern().Malformed() != nil {
			t.Fatalf("malformed %q matched %q", pattern, path)
		}
	})
}

func FuzzListCascade(f *testing.F) {
	f.Add("build/\n!build/keep.txt\n", "build/keep.txt")
	f.Add("*.log\n!important.log\n", "logs/important.log")
	f.Add("docs/**\n!docs/keep.md\n", "docs/keep.md")

	f.Fuzz(func(t *testing.T, content, path string) {
		if strings.Count(path, "/") > 32 || strings.IndexFunc(path, unicode.IsSpace) >= 0 {
			return
		}
		l := New()
		l.AddPatterns([]byte(content))

		res, err := l.Explain(path, false)
		if err != nil {
			return
		}
		if res.Ancestor != "" && !res.Ignored {
			t.Fatalf("ancestor %q ignored but %q is not", res.Ancestor, path)
		}
		if res.Ancestor != "" {
			dirIgnored, err := l.IsIgnored(res.Ancestor, true)
			if err != nil || !dirIgnored {
				t.Fatalf("reported ancestor %q is not ignored", res.Ancestor)
			}
		}
	})
}
