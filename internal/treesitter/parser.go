package treesitter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ParseError reports source that the TypeScript grammar rejects. It is never
// returned for a declaration that simply does not exist.
type ParseError struct {
	Line    int // 1-indexed
	Column  int // 1-indexed
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Line, e.Column, e.Snippet)
}

var supportedExts = map[string]bool{
	".ts":  true,
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// Supported reports whether path can be parsed with the TypeScript grammar.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// parse builds a syntax tree for src. Trees containing ERROR or MISSING nodes
// are rejected with a *ParseError; callers must Close the returned tree.
func parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	root := tree.RootNode()
	if root.HasError() {
		perr := firstError(root, src)
		tree.Close()
		return nil, perr
	}
	return tree, nil
}

func firstError(root *sitter.Node, src []byte) *ParseError {
	bad := root
	walk(root, func(n *sitter.Node) bool {
		if n.Type() == "ERROR" || n.IsMissing() {
			bad = n
			return false
		}
		return true
	})
	snippet := bad.Content(src)
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		snippet = snippet[:i]
	}
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}
	return &ParseError{
		Line:    int(bad.StartPoint().Row) + 1,
		Column:  int(bad.StartPoint().Column) + 1,
		Snippet: snippet,
	}
}

// walk visits nodes in pre-order until fn returns false.
func walk(root *sitter.Node, fn func(*sitter.Node) bool) {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// declKind maps a node type to the declaration kind it introduces.
func declKind(n *sitter.Node) Kind {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		return KindFunction
	case "class_declaration", "abstract_class_declaration":
		return KindClass
	case "variable_declarator":
		return KindVariable
	case "import_statement":
		return KindModule
	default:
		return KindUnknown
	}
}

// declName returns the bound identifier of a declaration node, or "" when the
// binding is not a plain identifier (e.g. a destructuring pattern).
func declName(n *sitter.Node, src []byte) string {
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	switch name.Type() {
	case "identifier", "type_identifier":
		return name.Content(src)
	default:
		return ""
	}
}

// importSource returns the unquoted module specifier of an import statement.
func importSource(n *sitter.Node, src []byte) string {
	s := n.ChildByFieldName("source")
	if s == nil {
		return ""
	}
	return strings.Trim(s.Content(src), "\"'`")
}

// FindDeclaration returns the first function, class or variable declaration
// named name, in pre-order. It returns nil, nil when there is none and a
// *ParseError when src does not parse.
func FindDeclaration(name string, src []byte) (*ElementDetails, error) {
	tree, err := parse(context.Background(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var found *ElementDetails
	walk(tree.RootNode(), func(n *sitter.Node) bool {
		kind := declKind(n)
		if kind == KindUnknown || kind == KindModule {
			return true
		}
		if declName(n, src) != name {
			return true
		}
		found = &ElementDetails{
			Kind:      kind,
			Name:      name,
			Code:      string(src[n.StartByte():n.EndByte()]),
			StartByte: int(n.StartByte()),
			EndByte:   int(n.EndByte()),
			StartLine: int(n.StartPoint().Row) + 1,
			EndLine:   int(n.EndPoint().Row) + 1,
		}
		return false
	})
	return found, nil
}

// FindInFile reads path from the local disk and looks up name in it. Index
// lookups read through the index FileSystem instead.
func FindInFile(name, path string) (*ElementDetails, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := FindDeclaration(name, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Summarize collects the names a file declares and imports.
func Summarize(src []byte) (*FileSummary, error) {
	tree, err := parse(context.Background(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	sum := sha256.Sum256(src)
	s := &FileSummary{Hash: hex.EncodeToString(sum[:])}
	seen := make(map[Kind]map[string]bool)
	add := func(dst *[]string, k Kind, name string) {
		if name == "" {
			return
		}
		if seen[k] == nil {
			seen[k] = make(map[string]bool)
		}
		if seen[k][name] {
			return
		}
		seen[k][name] = true
		*dst = append(*dst, name)
	}

	walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch k := declKind(n); k {
		case KindFunction:
			add(&s.Functions, k, declName(n, src))
		case KindClass:
			add(&s.Classes, k, declName(n, src))
		case KindVariable:
			add(&s.Variables, k, declName(n, src))
		case KindModule:
			add(&s.Modules, k, importSource(n, src))
		case KindUnknown:
		}
		return true
	})
	return s, nil
}

// SummarizeFile reads path from the local disk and summarizes it.
func SummarizeFile(path string) (*FileSummary, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Summarize(src)
}
