package highlight

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/xonecas/codelens/internal/constants"
	"github.com/xonecas/codelens/internal/structure"
	"github.com/xonecas/codelens/internal/zoom"
)

// Styles holds the lipgloss styles for outline chrome.
type Styles struct {
	Dir    lipgloss.Style
	File   lipgloss.Style
	Marker lipgloss.Style
}

// NewStyles builds outline styles from a Chroma theme's palette.
func NewStyles(theme string) Styles {
	p := ThemePalette(theme)
	return Styles{
		Dir:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		File:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Bold(true),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)),
	}
}

// Outline renders o like (*structure.Outline).String but with directory and
// file headers styled and file content syntax highlighted. Stripping the
// escape codes gives back the plain rendering.
func Outline(o *structure.Outline, theme string) string {
	st := NewStyles(theme)
	var lines []string
	for _, e := range o.Entries {
		indent := strings.Repeat(constants.OutlineIndent, e.Depth)
		if e.IsDir {
			lines = append(lines, indent+st.Dir.Render(e.Name+"/"))
			continue
		}
		lines = append(lines, indent+st.File.Render(e.Name+":"))
		if e.Content == "" {
			continue
		}
		lines = append(lines, Content(e.Content, DetectLanguage(e.Name), theme, indent+constants.OutlineIndent, st)...)
	}
	return strings.Join(lines, "\n")
}

// Content highlights zoomed file content, prefixing every line with indent.
// Collapse markers are dimmed rather than lexed.
func Content(content, language, theme, indent string, st Styles) []string {
	plain := strings.Split(content, "\n")
	colored := Lines(content, language, theme)
	out := make([]string, len(plain))
	for i, line := range plain {
		if trimmed := strings.TrimLeft(line, " "); trimmed == zoom.Marker {
			out[i] = indent + line[:len(line)-len(trimmed)] + st.Marker.Render(trimmed)
			continue
		}
		out[i] = indent + colored[i]
	}
	return out
}
