// Package prompt assembles the project context document: a fixed header,
// project notes, the zoomed structure outline and the symbol outline.
package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xonecas/codelens/internal/structure"
	"github.com/xonecas/codelens/internal/treesitter"
)

//go:embed prompts/context.md
var contextHeader string

// Separator joins the sections of the context document.
const Separator = "\n\n---\n\n"

// NotesFile is the optional per-project notes file included after the header.
const NotesFile = "CODELENS.md"

// Header returns the embedded context header.
func Header() string {
	return strings.TrimSpace(contextHeader)
}

// BuildProjectContext renders root at the given zoom level and appends the
// symbol outline from idx. A nil idx is built on the fly; an empty index
// leaves the symbol section out. Every read goes through opts.FS.
func BuildProjectContext(ctx context.Context, root string, level int, opts structure.Options, idx *treesitter.Index) (string, error) {
	tree, err := structure.Render(root, level, opts)
	if err != nil {
		return "", fmt.Errorf("render structure: %w", err)
	}

	if idx == nil {
		idx = treesitter.NewIndex(root, opts)
		if err := idx.Build(ctx); err != nil {
			return "", fmt.Errorf("build symbol index: %w", err)
		}
	}

	parts := []string{Header()}
	if notes := LoadProjectNotes(root, opts.FS); notes != "" {
		parts = append(parts, notes)
	}
	if tree != "" {
		parts = append(parts, tree)
	}
	if outline := strings.TrimSpace(treesitter.FormatOutline(idx.Snapshot())); outline != "" {
		parts = append(parts, outline)
	}
	return strings.Join(parts, Separator), nil
}

// LoadProjectNotes returns the contents of NotesFile in root, prefixed with
// where it came from, or "" if there is none. A nil fsys reads the local disk.
func LoadProjectNotes(root string, fsys structure.FileSystem) string {
	if fsys == nil {
		fsys = structure.OSFileSystem{}
	}
	path := filepath.Join(root, NotesFile)
	content := readFileIfExists(fsys, path)
	if content == "" {
		return ""
	}
	return fmt.Sprintf("Notes from: %s\n%s", path, content)
}

// readFileIfExists reads a file if it exists, returns empty string otherwise.
func readFileIfExists(fsys structure.FileSystem, path string) string {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
