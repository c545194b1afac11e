// Package zoom renders reduced-detail views of source text. Lower levels keep
// only shallow lines and fold deeper blocks into "..." markers, so an LLM can see
// the shape of a file without paying for its full contents.
package zoom

import (
	"strings"
)

const (
	// FullDetail is the level at and above which content is returned unchanged.
	FullDetail = 3

	// DefaultTabWidth is used when a caller passes a non-positive tab width.
	DefaultTabWidth = 4

	// Marker replaces a collapsed run of lines.
	Marker = "..."
)

// renderState is the per-call collapse/comment tracking. It must never outlive a
// single Render call.
type renderState struct {
	collapsed bool // a marker was already emitted for the current run
	inComment bool // inside a /* ... */ block
}

// Render returns content at the given zoom level.
//
// Level 0 and below yield "". Levels at or above FullDetail yield the trimmed
// content. In between, a line is kept when its indentation depth is at most
// level-1; deeper runs collapse into a single Marker. Block comments are always
// copied verbatim.
func Render(content string, level, tabWidth int) string {
	if level <= 0 {
		return ""
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if level >= FullDetail {
		return strings.TrimSpace(content)
	}

	lines := strings.Split(content, "\n")
	unit := indentUnit(lines, tabWidth)
	budget := level - 1
	marker := strings.Repeat(" ", unit*(budget+1)) + Marker

	var (
		b  strings.Builder
		st renderState
	)
	emit := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if st.inComment {
			emit(line)
			if strings.Contains(line, "*/") {
				st.inComment = false
			}
			continue
		}

		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "/*") {
			emit(line)
			st.collapsed = false
			st.inComment = !strings.Contains(trimmed[2:], "*/")
			continue
		}

		if Indentation(line, tabWidth)/unit <= budget {
			emit(line)
			st.collapsed = false
			continue
		}

		if !st.collapsed {
			emit(marker)
			st.collapsed = true
		}
	}

	return strings.TrimSpace(b.String())
}

// Indentation returns the number of leading columns of line, with tabs
// expanded to tabWidth spaces.
func Indentation(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	cols := 0
	for _, r := range line {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += tabWidth
		default:
			return cols
		}
	}
	return cols
}

// indentUnit finds the smallest positive indentation among non-blank code
// lines. Comment interiors (" * foo") are ignored since their alignment says
// nothing about block nesting.
func indentUnit(lines []string, tabWidth int) int {
	unit := 0
	inComment := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inComment {
			if strings.Contains(line, "*/") {
				inComment = false
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "/*") {
			inComment = !strings.Contains(trimmed[2:], "*/")
			continue
		}
		if cols := Indentation(line, tabWidth); cols > 0 && (unit == 0 || cols < unit) {
			unit = cols
		}
	}
	if unit == 0 {
		return 1
	}
	return unit
}
