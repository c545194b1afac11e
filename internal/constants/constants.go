// Package constants holds defaults shared by the CLI and its packages.
package constants

// DefaultSyntaxTheme is the Chroma theme used for highlighted output when
// ui.syntax_theme is not configured. Any Chroma style name works; dark
// terminals do well with github-dark, dracula, nord or monokai, light ones
// with github, solarized-light or vs.
const DefaultSyntaxTheme = "github-dark"

// OutlineIndent is one nesting level in rendered outlines.
const OutlineIndent = "  "
