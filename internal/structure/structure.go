// Package structure renders a project's file tree as an indented outline, with
// each relevant file followed by a zoomed view of its contents.
package structure

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/codelens/internal/constants"
	"github.com/xonecas/codelens/internal/zoom"
)

const (
	// DefaultMaxDepth bounds directory recursion.
	DefaultMaxDepth = 64

	// DefaultMaxFileBytes is the largest file whose content is rendered.
	DefaultMaxFileBytes = 1 << 20

	indentUnit = constants.OutlineIndent
)

// ZoomOverride renders one file at a level other than the walk default.
type ZoomOverride struct {
	Path  string // joined path (root + relative) or slash-separated path relative to root
	Level int
}

// Options configures a walk. The zero value is usable.
type Options struct {
	Filter       FilterConfig
	Overrides    []ZoomOverride
	TabWidth     int   // 0 means zoom.DefaultTabWidth
	MaxDepth     int   // 0 means DefaultMaxDepth
	MaxFileBytes int64 // 0 means DefaultMaxFileBytes
	FS           FileSystem
}

func (o Options) withDefaults() Options {
	if o.TabWidth <= 0 {
		o.TabWidth = zoom.DefaultTabWidth
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxFileBytes <= 0 {
		o.MaxFileBytes = DefaultMaxFileBytes
	}
	if o.FS == nil {
		o.FS = OSFileSystem{}
	}
	return o
}

// Entry is one line group of the outline.
type Entry struct {
	Path    string // root joined with RelPath
	RelPath string // slash-separated, relative to root
	Name    string
	Depth   int // 0 for direct children of root
	IsDir   bool
	Level   int    // zoom level applied (files only)
	Content string // zoomed content (files only)
}

// Outline is the ordered, pre-order result of a walk.
type Outline struct {
	Root    string
	Entries []Entry
}

// String renders the outline: directories as "name/", files as "name:"
// followed by their zoomed content one indent deeper.
func (o *Outline) String() string {
	var b strings.Builder
	for _, e := range o.Entries {
		indent := strings.Repeat(indentUnit, e.Depth)
		if e.IsDir {
			b.WriteString(indent + e.Name + "/\n")
			continue
		}
		b.WriteString(indent + e.Name + ":\n")
		if e.Content == "" {
			continue
		}
		for _, line := range strings.Split(e.Content, "\n") {
			b.WriteString(indent + indentUnit + line + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

// Files returns the file entries in outline order.
func (o *Outline) Files() []Entry {
	var files []Entry
	for _, e := range o.Entries {
		if !e.IsDir {
			files = append(files, e)
		}
	}
	return files
}

// Render walks root and returns the outline text.
func Render(root string, level int, opts Options) (string, error) {
	o, err := Walk(root, level, opts)
	if err != nil {
		return "", err
	}
	return o.String(), nil
}

// Walk traverses root depth-first, keeping relevant entries and zooming every
// file to level (or its override). Only an unreadable root is an error;
// anything below it that cannot be read is logged and skipped.
func Walk(root string, level int, opts Options) (*Outline, error) {
	w := newWalker(root, level, opts, true)
	if err := w.run(); err != nil {
		return nil, err
	}
	return &Outline{Root: root, Entries: w.entries}, nil
}

// ListFiles returns the relevant files under root without reading them.
func ListFiles(root string, opts Options) ([]Entry, error) {
	w := newWalker(root, 0, opts, false)
	if err := w.run(); err != nil {
		return nil, err
	}
	return (&Outline{Entries: w.entries}).Files(), nil
}

type walker struct {
	root        string
	level       int
	opts        Options
	filter      *Filter
	overrides   map[string]int
	readContent bool
	entries     []Entry
}

func newWalker(root string, level int, opts Options, readContent bool) *walker {
	opts = opts.withDefaults()
	return &walker{
		root:        root,
		level:       level,
		opts:        opts,
		filter:      NewFilter(root, opts.Filter, opts.FS),
		overrides:   overrideMap(root, opts.Overrides),
		readContent: readContent,
	}
}

// overrideMap indexes overrides by root-relative slash path, so a file named
// both ways shares one key. The first override for a file wins; later
// duplicates are logged and dropped.
func overrideMap(root string, overrides []ZoomOverride) map[string]int {
	m := make(map[string]int, len(overrides))
	for _, o := range overrides {
		key := overrideKey(root, o.Path)
		if prev, ok := m[key]; ok {
			log.Warn().Str("path", o.Path).Int("kept", prev).Int("ignored", o.Level).Msg("structure: duplicate zoom override")
			continue
		}
		m[key] = o.Level
	}
	return m
}

// overrideKey maps a joined path under root to its root-relative form. Paths
// outside root are taken as already relative.
func overrideKey(root, path string) string {
	path = filepath.Clean(path)
	if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (w *walker) levelFor(rel string) int {
	if lvl, ok := w.overrides[rel]; ok {
		return lvl
	}
	return w.level
}

func (w *walker) run() error {
	entries, err := w.opts.FS.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("read root %s: %w", w.root, err)
	}
	w.visit(w.root, entries, 0)
	return nil
}

func (w *walker) walkDir(dir string, depth int) {
	if depth > w.opts.MaxDepth {
		log.Warn().Str("path", dir).Int("max_depth", w.opts.MaxDepth).Msg("structure: max depth reached, skipping directory")
		return
	}
	entries, err := w.opts.FS.ReadDir(dir)
	if err != nil {
		log.Warn().Err(err).Str("path", dir).Str("reason", skipReason(err)).Msg("structure: skipping directory")
		return
	}
	w.visit(dir, entries, depth)
}

func (w *walker) visit(dir string, entries []fs.DirEntry, depth int) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, de := range entries {
		path := filepath.Join(dir, de.Name())
		info, err := w.stat(path, de)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Str("reason", skipReason(err)).Msg("structure: skipping entry")
			continue
		}
		if de.Type()&fs.ModeSymlink != 0 && info.IsDir() {
			log.Debug().Str("path", path).Msg("structure: not following symlinked directory")
			continue
		}
		if !w.filter.Relevant(path, info) {
			continue
		}

		rel := w.filter.rel(path)
		if info.IsDir() {
			w.entries = append(w.entries, Entry{Path: path, RelPath: rel, Name: de.Name(), Depth: depth, IsDir: true})
			w.walkDir(path, depth+1)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		entry := Entry{Path: path, RelPath: rel, Name: de.Name(), Depth: depth, Level: w.levelFor(rel)}
		if w.readContent {
			content, ok := w.zoomed(path, info, entry.Level)
			if !ok {
				continue
			}
			entry.Content = content
		}
		w.entries = append(w.entries, entry)
	}
}

// stat resolves symlinks so the filter sees the target's kind.
func (w *walker) stat(path string, de fs.DirEntry) (fs.FileInfo, error) {
	if de.Type()&fs.ModeSymlink != 0 {
		return w.opts.FS.Stat(path)
	}
	return de.Info()
}

func (w *walker) zoomed(path string, info fs.FileInfo, level int) (string, bool) {
	if level <= 0 {
		return "", true
	}
	if info.Size() > w.opts.MaxFileBytes {
		log.Debug().Str("path", path).Int64("size", info.Size()).Msg("structure: file too large, listing without content")
		return "", true
	}
	data, err := w.opts.FS.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Str("reason", skipReason(err)).Msg("structure: skipping file")
		return "", false
	}
	return zoom.Render(string(data), level, w.opts.TabWidth), true
}
