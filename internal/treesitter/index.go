package treesitter

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/codelens/internal/structure"
	"golang.org/x/sync/errgroup"
)

// Index holds a project-wide symbol map built from tree-sitter parsing.
type Index struct {
	mu    sync.RWMutex
	files map[string]*FileSummary // relPath -> summary
	root  string
	opts  structure.Options
}

// NewIndex creates an empty index rooted at root. opts selects which files
// are indexed, using the same relevance rules as the structure outline.
func NewIndex(root string, opts structure.Options) *Index {
	if opts.FS == nil {
		opts.FS = structure.OSFileSystem{}
	}
	return &Index{
		files: make(map[string]*FileSummary),
		root:  root,
		opts:  opts,
	}
}

// Build walks the project and summarizes every supported file in parallel.
// Files that fail to read or parse are logged and left out.
func (idx *Index) Build(ctx context.Context) error {
	entries, err := structure.ListFiles(idx.root, idx.opts)
	if err != nil {
		return err
	}

	files := make(map[string]*FileSummary)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, e := range entries {
		if !Supported(e.Path) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := idx.opts.FS.ReadFile(e.Path)
			if err != nil {
				log.Warn().Err(err).Str("path", e.RelPath).Msg("treesitter: skipping unreadable file")
				return nil
			}
			sum, err := Summarize(src)
			if err != nil {
				var perr *ParseError
				if errors.As(err, &perr) {
					log.Warn().Str("path", e.RelPath).Int("line", perr.Line).Int("column", perr.Column).Msg("treesitter: skipping file with syntax errors")
					return nil
				}
				return err
			}
			mu.Lock()
			files[e.RelPath] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	idx.mu.Lock()
	idx.files = files
	idx.mu.Unlock()
	return nil
}

// Files returns the indexed relative paths, sorted.
func (idx *Index) Files() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.sortedPaths()
}

func (idx *Index) sortedPaths() []string {
	paths := make([]string, 0, len(idx.files))
	for p := range idx.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Summary returns the summary for a relative path, or nil.
func (idx *Index) Summary(relPath string) *FileSummary {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.files[relPath]
}

// Snapshot returns a copy of the full index map.
func (idx *Index) Snapshot() map[string]*FileSummary {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[string]*FileSummary, len(idx.files))
	for k, v := range idx.files {
		out[k] = v
	}
	return out
}

// Suggest returns symbols whose name starts with prefix (case-insensitive),
// sorted by name then path. limit <= 0 means no limit.
func (idx *Index) Suggest(prefix string, limit int) []Suggestion {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	prefix = strings.ToLower(prefix)
	var out []Suggestion
	for path, sum := range idx.files {
		for _, s := range sum.Names() {
			if strings.HasPrefix(strings.ToLower(s.Name), prefix) {
				s.Path = path
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Kind < out[j].Kind
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Lookup resolves name to its declaration in the first indexed file (by
// path order) that declares it. It returns nil details and an empty path when
// no file does.
func (idx *Index) Lookup(name string) (*ElementDetails, string, error) {
	idx.mu.RLock()
	var rel string
	for _, p := range idx.sortedPaths() {
		if declares(idx.files[p], name) {
			rel = p
			break
		}
	}
	idx.mu.RUnlock()

	if rel == "" {
		return nil, "", nil
	}
	src, err := idx.opts.FS.ReadFile(filepath.Join(idx.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, rel, err
	}
	d, err := FindDeclaration(name, src)
	return d, rel, err
}

func declares(s *FileSummary, name string) bool {
	for _, group := range [][]string{s.Functions, s.Classes, s.Variables} {
		for _, n := range group {
			if n == name {
				return true
			}
		}
	}
	return false
}
