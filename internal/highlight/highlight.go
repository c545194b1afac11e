// Package highlight colors codelens output for terminals: Chroma for file
// content, lipgloss for outline chrome.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const reset = "\x1b[0m"

// Lines highlights text with the given Chroma language and theme and returns
// one self-contained line per input line: each carries the style state it
// inherits and ends with a reset, so lines can be indented or reordered.
// Unknown languages come back uncolored.
func Lines(text, language, theme string) []string {
	plain := strings.Split(text, "\n")
	lex := lexers.Get(language)
	if lex == nil || text == "" {
		return plain
	}
	lex = chroma.Coalesce(lex)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return plain
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, styles.Get(theme), it); err != nil {
		return plain
	}

	// Lexers may append a trailing newline; keep exactly the input's lines.
	lines := SplitLines(buf.String())
	if len(lines) < len(plain) {
		return plain
	}
	lines = lines[:len(plain)]
	for i := range lines {
		lines[i] += reset
	}
	return lines
}

// Highlight returns text highlighted as a single block.
func Highlight(text, language, theme string) string {
	return strings.Join(Lines(text, language, theme), "\n")
}

// SplitLines splits a highlighted block into per-line strings, propagating
// ANSI style state across lines so each is independently renderable.
func SplitLines(block string) []string {
	lines := strings.Split(block, "\n")
	if len(lines) <= 1 {
		return lines
	}
	var active []string
	for i, line := range lines {
		prefix := strings.Join(active, "")
		active = scanSGR(line, active)
		if i > 0 {
			lines[i] = prefix + line
		}
	}
	return lines
}

// scanSGR updates the active SGR list with the sequences in line. Resets
// clear the list.
func scanSGR(line string, active []string) []string {
	for j := 0; j < len(line); j++ {
		if line[j] != '\x1b' || j+1 >= len(line) || line[j+1] != '[' {
			continue
		}
		k := j + 2
		for k < len(line) && line[k] != 'm' && line[k] != '\x1b' {
			k++
		}
		if k >= len(line) || line[k] != 'm' {
			continue
		}
		params := line[j+2 : k]
		if params == "" || params == "0" {
			active = active[:0]
		} else {
			active = append(active, line[j:k+1])
		}
		j = k
	}
	return active
}

// Palette holds the outline colors derived from a Chroma theme.
type Palette struct {
	Fg     string // theme foreground
	Dim    string // 45% bg→fg, used for the collapse marker
	Accent string // most saturated token color, used for directories
}

// ThemePalette derives a Palette from a Chroma theme name. Unknown themes
// get a neutral gray palette.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil || styles.Registry[theme] == nil {
		return Palette{Fg: "#c8c8c8", Dim: "#5a5a5a", Accent: "#00dfff"}
	}
	entry := sty.Get(chroma.Background)
	bg, fg := "#000000", "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}
	return Palette{
		Fg:     fg,
		Dim:    lerpHex(bg, fg, 0.45),
		Accent: pickAccent(sty, fg),
	}
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for _, tt := range sty.Types() {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGBf(hex)
		mx := max(r, g, b)
		if mx == 0 {
			continue
		}
		if sat := (mx - min(r, g, b)) / mx; sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := hexToRGBf(a)
	br, bg, bb := hexToRGBf(b)
	return fmt.Sprintf("#%02x%02x%02x",
		clampByte(ar+(br-ar)*t),
		clampByte(ag+(bg-ag)*t),
		clampByte(ab+(bb-ab)*t),
	)
}

func hexToRGBf(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])),
		float64(hexByte(hex[3], hex[4])),
		float64(hexByte(hex[5], hex[6]))
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

func clampByte(v float64) int {
	return int(min(max(v, 0), 255) + 0.5)
}
