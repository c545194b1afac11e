package highlight

import (
	"path/filepath"
	"strings"
)

// DetectLanguage returns the Chroma language for a file in a JavaScript or
// TypeScript project, or "text" when there is no better match.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "tsx"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".jsx":
		return "jsx"
	case ".json":
		return "json"
	case ".md", ".mdx":
		return "markdown"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".css":
		return "css"
	case ".html":
		return "html"
	}
	return "text"
}
