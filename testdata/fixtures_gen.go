//go:build ignore

// fixtures_gen writes the rule files the list tests load from testdata.
//
//	go run fixtures_gen.go [dir]
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type fixture struct {
	name  string
	lines []string
	eol   string
	bom   bool
}

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	fixtures := []fixture{
		{
			name: "crlf.gitignore",
			eol:  "\r\n",
			lines: []string{
				"# Windows line endings test",
				"*.log",
				"build/",
				"!important.log",
				"",
				"# Nested patterns",
				"**/temp",
				"src/**/test",
			},
		},
		{
			name: "with-bom.gitignore",
			bom:  true,
			lines: []string{
				"# UTF-8 BOM test file",
				"# The BOM (EF BB BF) should be stripped during parsing",
				"",
				"*.log",
				"*.tmp",
				"build/",
				"node_modules/",
				"",
				"# Unicode patterns",
				"日本語.txt",
				"données/",
			},
		},
		{name: "pathological.gitignore", lines: pathological},
		{name: "realistic/large.gitignore", lines: large()},
	}

	for _, f := range fixtures {
		path := filepath.Join(dir, f.name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", path, err)
			os.Exit(1)
		}
		data := f.render()
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d bytes\n", path, len(data))
	}
}

func (f fixture) render() []byte {
	var buf bytes.Buffer
	if f.bom {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}
	eol := f.eol
	if eol == "" {
		eol = "\n"
	}
	for _, line := range f.lines {
		buf.WriteString(line)
		buf.WriteString(eol)
	}
	return buf.Bytes()
}

var pathological = []string{
	"# Pathological patterns for stress testing backtracking",
	"",
	"# Long star runs inside one segment",
	"*a*a*a*a*a*a*a*a*a*a*b",
	"-*-*-*-*-*-*-*-*-*-*-*.tmp",
	"**/*a*b*g*n*t",
	"",
	"# Multiple double-stars",
	"a/**/b/**/c",
	"a/**/b/**/c/**/d",
	"src/**/internal/**/generated/**",
	"",
	"# Bracket expressions and classes",
	"[[:alpha:]]*[[:digit:]]",
	"[!a-z]*.bak",
	"*.[oa]",
	"*.sw[a-p]",
	"",
	"# Malformed, never matches",
	"**a**",
	"logs[",
	"",
	"# Complex combinations",
	"**/node_modules/**/package.json",
	"src/**/test/**/*_test.go",
}

func large() []string {
	lines := []string{"# Large gitignore for benchmark testing", ""}
	lines = append(lines, strings.Fields(`
		*.log *.tmp *.bak *.swp *.swo
		build/ dist/ out/ target/
		node_modules/ vendor/ .venv/
		.git/ .svn/ .hg/
		.idea/ .vscode/ *.sublime-*
		.DS_Store Thumbs.db desktop.ini
		*.pyc *.pyo __pycache__/
		*.class *.jar
		*.o *.a *.so *.dylib
		*.exe *.dll`)...)

	lines = append(lines, "", "# Generated patterns")
	for i := 0; i < 20; i++ {
		for _, prefix := range []string{"", "src/", "lib/", "pkg/", "internal/", "test/"} {
			for _, ext := range []string{".log", ".tmp", ".cache", ".out", ".gen"} {
				lines = append(lines, prefix+"*"+ext)
			}
		}
	}

	lines = append(lines, "", "# Double-star patterns")
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("**/generated%d/", i), fmt.Sprintf("**/.cache%d/", i))
	}

	return append(lines, "",
		"# Negations",
		"!important.log",
		"!.gitkeep",
		"!build/release/",
		"!/[Rr][Ee][Aa][Dd][Mm][Ee].*",
	)
}
