package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/codelens/internal/structure"
)

const tsSrc = `/**
 * Greets people.
 */
export class Greeter {
  greet(name: string): string {
    ...
  }
}`

func TestHighlight_StripsToInput(t *testing.T) {
	out := Highlight(tsSrc, "typescript", "monokai")
	if !strings.Contains(out, "\x1b[") {
		t.Fatal("expected ANSI sequences in highlighted output")
	}
	if got := ansi.Strip(out); got != tsSrc {
		t.Errorf("stripped output differs:\n%q\nwant\n%q", got, tsSrc)
	}
}

func TestLines_SelfContained(t *testing.T) {
	lines := Lines(tsSrc, "typescript", "github-dark")
	if len(lines) != strings.Count(tsSrc, "\n")+1 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, l := range lines {
		if !strings.HasSuffix(l, reset) {
			t.Errorf("line %d not reset: %q", i, l)
		}
	}
	// Line 2 is inside the doc comment and must carry its color.
	if !strings.HasPrefix(lines[1], "\x1b[") {
		t.Errorf("comment continuation lost its style: %q", lines[1])
	}
}

func TestLines_UnknownLanguage(t *testing.T) {
	got := Lines("a\nb", "no-such-language", "monokai")
	if strings.Join(got, "\n") != "a\nb" {
		t.Errorf("unknown language should pass through: %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	block := "\x1b[31mred\nstill red\x1b[0m\nplain"
	got := SplitLines(block)
	want := []string{"\x1b[31mred", "\x1b[31mstill red\x1b[0m", "plain"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	for path, want := range map[string]string{
		"src/index.ts":      "typescript",
		"src/App.tsx":       "tsx",
		"webpack.config.js": "javascript",
		"lib/x.CJS":         "javascript",
		"package.json":      "json",
		"README.md":         "markdown",
		"Makefile":          "text",
	} {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestThemePalette(t *testing.T) {
	p := ThemePalette("github-dark")
	for _, c := range []string{p.Fg, p.Dim, p.Accent} {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("bad color %q in %+v", c, p)
		}
	}
	if got := ThemePalette("no-such-theme"); got.Fg != "#c8c8c8" {
		t.Errorf("unknown theme palette = %+v", got)
	}
}

func TestOutline_StripsToPlain(t *testing.T) {
	o := &structure.Outline{Entries: []structure.Entry{
		{Name: "src", IsDir: true},
		{Name: "greeter.ts", Depth: 1, Level: 2, Content: tsSrc},
		{Name: "empty.ts", Depth: 1},
		{Name: "package.json", Content: "{\n  ...\n}"},
	}}

	colored := Outline(o, "github-dark")
	if colored == o.String() {
		t.Fatal("expected styled output")
	}
	if got := ansi.Strip(colored); got != o.String() {
		t.Errorf("stripped outline differs:\n%s\nwant\n%s", got, o.String())
	}
}
