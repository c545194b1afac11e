package zoom

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

const sample = `import { readFile } from "fs";

/**
 * Greeter says hello.
 *
 * It is documented across several lines.
 */
export class Greeter {
  private name: string;

  constructor(name: string) {
    this.name = name;
  }

  greet(): string {
    if (this.name === "") {
      return "hello, stranger";
    }
    return "hello, " + this.name;
  }
}

function helper() {
  return 1;
}
`

// assertText fails with a unified diff when got differs from want.
func assertText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	t.Fatalf("output mismatch:\n%s", fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits)))
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func TestRender_FunctionAtLevelOne(t *testing.T) {
	got := Render("function foo() {\n  return 1;\n}\n", 1, 4)
	assertText(t, "function foo() {\n  ...\n}", got)
}

func TestRender_ZeroAndNegative(t *testing.T) {
	for _, level := range []int{0, -1, -42} {
		if got := Render(sample, level, 4); got != "" {
			t.Errorf("level %d: got %q, want empty", level, got)
		}
	}
}

func TestRender_FullDetail(t *testing.T) {
	for _, level := range []int{FullDetail, FullDetail + 1, 100} {
		assertText(t, strings.TrimSpace(sample), Render(sample, level, 4))
	}
}

func TestRender_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{
			name:  "top level only",
			level: 1,
			want: `import { readFile } from "fs";
/**
 * Greeter says hello.
 *
 * It is documented across several lines.
 */
export class Greeter {
  ...
}
function helper() {
  ...
}`,
		},
		{
			name:  "members",
			level: 2,
			want: `import { readFile } from "fs";
/**
 * Greeter says hello.
 *
 * It is documented across several lines.
 */
export class Greeter {
  private name: string;
  constructor(name: string) {
    ...
  }
  greet(): string {
    ...
  }
}
function helper() {
  return 1;
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertText(t, tt.want, Render(sample, tt.level, 4))
		})
	}
}

func TestRender_BlockCommentNeverCollapsed(t *testing.T) {
	src := `class A {
  run() {
    /* inline note */
    work();
    /*
      indented
        deeply
    */
    more();
  }
}`
	want := `class A {
  ...
    /* inline note */
  ...
    /*
      indented
        deeply
    */
  ...
}`
	assertText(t, want, Render(src, 1, 4))
}

func TestRender_CommentKeepsBlankLines(t *testing.T) {
	src := "/*\n a\n\n b\n*/\nconst x = 1;"
	assertText(t, src, Render(src, 1, 4))
}

func TestRender_BlankLinesDoNotBreakRuns(t *testing.T) {
	src := "function a() {\n  x();\n\n\n  y();\n}\n\n\nfunction b() {}"
	assertText(t, "function a() {\n  ...\n}\nfunction b() {}", Render(src, 1, 4))
}

func TestRender_Tabs(t *testing.T) {
	src := "function a() {\n\tif (x) {\n\t\ty();\n\t}\n}"
	want := "function a() {\n\tif (x) {\n        ...\n\t}\n}"
	assertText(t, want, Render(src, 2, 4))

	// A non-positive tab width falls back to the default.
	assertText(t, want, Render(src, 2, 0))
}

func TestRender_CRLF(t *testing.T) {
	got := Render("function foo() {\r\n  return 1;\r\n}\r\n", 1, 4)
	assertText(t, "function foo() {\n  ...\n}", got)
}

func TestRender_Monotonic(t *testing.T) {
	prev := -1
	for level := 0; level <= FullDetail+1; level++ {
		n := lineCount(Render(sample, level, 4))
		if n < prev {
			t.Fatalf("level %d has %d lines, fewer than previous level (%d)", level, n, prev)
		}
		prev = n
	}
}

func TestRender_Idempotent(t *testing.T) {
	for level := 1; level <= FullDetail; level++ {
		once := Render(sample, level, 4)
		twice := Render(once, level, 4)
		if once != twice {
			t.Errorf("level %d not idempotent", level)
			assertText(t, once, twice)
		}
	}
}

func TestRender_StateDoesNotLeak(t *testing.T) {
	// Leaves the first call inside an unterminated comment and a collapse run.
	_ = Render("function a() {\n  b();\n/* never closed\n", 1, 4)

	got := Render("x();\n  y();\n  z();", 1, 4)
	assertText(t, "x();\n  ...", got)
}

func TestRender_Concurrent(t *testing.T) {
	want := Render(sample, 1, 4)
	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			if got := Render(sample, 1, 4); got != want {
				errs <- got
			}
			_ = Render(sample, level, 4)
		}(i % 4)
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent render diverged:\n%s", got)
	}
}

func TestIndentation(t *testing.T) {
	tests := []struct {
		line     string
		tabWidth int
		want     int
	}{
		{"foo", 4, 0},
		{"  foo", 4, 2},
		{"\tfoo", 4, 4},
		{"\t  foo", 2, 4},
		{"    ", 4, 4},
	}
	for _, tt := range tests {
		if got := Indentation(tt.line, tt.tabWidth); got != tt.want {
			t.Errorf("Indentation(%q, %d) = %d, want %d", tt.line, tt.tabWidth, got, tt.want)
		}
	}
}
