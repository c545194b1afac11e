// Package treesitter provides tree-sitter based parsing of TypeScript sources:
// declaration lookup, per-file symbol summaries and a project-wide symbol
// index used for autocomplete.
package treesitter

// Kind classifies a declaration.
type Kind int

const (
	KindUnknown Kind = iota
	KindFunction
	KindClass
	KindVariable
	KindModule
)

// String returns the label used in outlines and CLI output.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindVariable:
		return "Variable"
	case KindModule:
		return "Module"
	default:
		return "Unknown"
	}
}

// ElementDetails describes one located declaration.
type ElementDetails struct {
	Kind      Kind
	Name      string
	Code      string // exact source text of the declaration
	StartByte int
	EndByte   int
	StartLine int // 1-indexed
	EndLine   int // 1-indexed
}

// FileSummary lists the names declared or imported by one file.
type FileSummary struct {
	Hash      string // sha256 of the source, hex
	Classes   []string
	Functions []string
	Modules   []string // import sources, e.g. "./greeter"
	Variables []string
}

// Names returns every (name, kind) pair in the summary.
func (s *FileSummary) Names() []Suggestion {
	if s == nil {
		return nil
	}
	var out []Suggestion
	add := func(names []string, k Kind) {
		for _, n := range names {
			out = append(out, Suggestion{Name: n, Kind: k})
		}
	}
	add(s.Classes, KindClass)
	add(s.Functions, KindFunction)
	add(s.Variables, KindVariable)
	add(s.Modules, KindModule)
	return out
}

// Suggestion is an autocomplete candidate.
type Suggestion struct {
	Name string
	Kind Kind
	Path string // slash-separated, relative to the index root
}
