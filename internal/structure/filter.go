package structure

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/rs/zerolog/log"
)

// FilterConfig controls which entries of the project tree are rendered.
type FilterConfig struct {
	IncludeTests     bool // keep *.test.*, *.spec.* and __tests__/ files
	IncludeDocs      bool // keep README, CHANGELOG and markdown files
	RespectGitignore bool // apply the root .gitignore

	// Custom, if set, runs before every built-in rule. Returning false drops
	// the entry (and, for a directory, everything under it).
	Custom func(path string, info fs.FileInfo) bool
}

// Never rendered, whatever the config says.
var excludedNames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
}

var excludedDirs = map[string]bool{
	"dist":         true,
	"build":        true,
	"node_modules": true,
	".git":         true,
}

var sourceExts = map[string]bool{
	".ts":   true,
	".tsx":  true,
	".js":   true,
	".jsx":  true,
	".mjs":  true,
	".cjs":  true,
	".json": true,
}

var buildConfigNames = map[string]bool{
	"webpack.config.js": true,
	"webpack.config.ts": true,
}

var docExts = map[string]bool{
	".md":  true,
	".mdx": true,
}

// Filter decides relevance for entries below a single root.
type Filter struct {
	cfg    FilterConfig
	root   string
	ignore gitignore.IgnoreMatcher
}

// NewFilter builds a filter for root. The root .gitignore is read through fsys
// when cfg.RespectGitignore is set; a missing file is not an error.
func NewFilter(root string, cfg FilterConfig, fsys FileSystem) *Filter {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	f := &Filter{cfg: cfg, root: root}
	if !cfg.RespectGitignore {
		return f
	}

	data, err := fsys.ReadFile(filepath.Join(root, ".gitignore"))
	switch {
	case err == nil:
		f.ignore = gitignore.NewGitIgnoreFromReader(root, bytes.NewReader(data))
	case !errors.Is(err, fs.ErrNotExist):
		log.Warn().Err(err).Str("root", root).Msg("structure: ignoring unreadable .gitignore")
	}
	return f
}

// Relevant reports whether the entry at path should appear in the outline.
func (f *Filter) Relevant(path string, info fs.FileInfo) bool {
	if f.cfg.Custom != nil && !f.cfg.Custom(path, info) {
		return false
	}

	name := info.Name()
	isDir := info.IsDir()

	if isDir && excludedDirs[name] {
		return false
	}
	if !isDir && excludedNames[name] {
		return false
	}
	if f.ignore != nil && f.ignore.Match(path, isDir) {
		return false
	}
	if isDir {
		return true
	}

	if isTestFile(f.rel(path)) {
		return f.cfg.IncludeTests
	}
	if isDocFile(name) {
		return f.cfg.IncludeDocs
	}
	return buildConfigNames[name] || sourceExts[strings.ToLower(filepath.Ext(name))]
}

func (f *Filter) rel(path string) string {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func isTestFile(rel string) bool {
	base := filepath.Base(rel)
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	for _, part := range strings.Split(filepath.Dir(rel), "/") {
		if part == "__tests__" {
			return true
		}
	}
	return false
}

func isDocFile(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "readme") || strings.HasPrefix(lower, "changelog") {
		return true
	}
	return docExts[filepath.Ext(lower)]
}
