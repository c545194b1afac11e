package treesitter

import (
	"fmt"
	"sort"
	"strings"
)

// MaxOutlineBytes caps the outline to avoid consuming too much of the LLM
// context window. ~16KB ≈ 4-5K tokens.
const MaxOutlineBytes = 16 * 1024

// FormatOutline produces a compact YAML-like symbol outline, one block per
// file, sorted by path and capped at MaxOutlineBytes.
//
// Example output:
//
//	# Project Symbols
//	src/greeter.ts:
//	  class: Greeter
//	  fn: makeGreeter
//	  var: defaultName
//	  import: ./util
func FormatOutline(snap map[string]*FileSummary) string {
	if len(snap) == 0 {
		return ""
	}

	paths := make([]string, 0, len(snap))
	for p := range snap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("# Project Symbols\n")

	for _, path := range paths {
		text := formatFileCompact(snap[path])
		if text == "" {
			continue
		}
		entry := fmt.Sprintf("%s:\n%s", path, text)
		if b.Len()+len(entry) > MaxOutlineBytes {
			fmt.Fprintf(&b, "# ... truncated (%d files total)\n", len(paths))
			break
		}
		b.WriteString(entry)
	}
	return b.String()
}

// formatFileCompact produces a compact per-file representation.
func formatFileCompact(s *FileSummary) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, g := range []struct {
		label string
		names []string
	}{
		{"class", s.Classes},
		{"fn", s.Functions},
		{"var", s.Variables},
		{"import", s.Modules},
	} {
		if len(g.names) > 0 {
			fmt.Fprintf(&b, "  %s: %s\n", g.label, strings.Join(g.names, ", "))
		}
	}
	return b.String()
}
