package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xonecas/codelens/internal/highlight"
	"github.com/xonecas/codelens/internal/structure"
)

// renderFlags are the outline options shared by tree, symbols, suggest and
// context. Unset flags fall back to the config file.
type renderFlags struct {
	zoom         int
	overrides    []string
	includeTests bool
	includeDocs  bool
	noGitignore  bool
}

func (f *renderFlags) register(cmd *cobra.Command, withZoom bool) {
	if withZoom {
		cmd.Flags().IntVarP(&f.zoom, "zoom", "z", 0, "zoom level for file contents (default from config)")
		cmd.Flags().StringArrayVar(&f.overrides, "override", nil, "per-file zoom as path=level (can be repeated)")
	}
	cmd.Flags().BoolVar(&f.includeTests, "include-tests", false, "include test files")
	cmd.Flags().BoolVar(&f.includeDocs, "include-docs", false, "include documentation files")
	cmd.Flags().BoolVar(&f.noGitignore, "no-gitignore", false, "do not apply the root .gitignore")
}

// options merges the flags over the configured defaults and returns the
// walk options and zoom level.
func (f *renderFlags) options(cmd *cobra.Command, a *app) (structure.Options, int, error) {
	opts := a.cfg.StructureOptions()
	level := a.cfg.Render.Zoom

	flags := cmd.Flags()
	if flags.Changed("zoom") {
		level = f.zoom
	}
	if flags.Changed("include-tests") {
		opts.Filter.IncludeTests = f.includeTests
	}
	if flags.Changed("include-docs") {
		opts.Filter.IncludeDocs = f.includeDocs
	}
	if flags.Changed("no-gitignore") {
		opts.Filter.RespectGitignore = !f.noGitignore
	}

	// Flag overrides come first so they win over configured ones for the same path.
	var overrides []structure.ZoomOverride
	for _, raw := range f.overrides {
		o, err := parseOverride(raw)
		if err != nil {
			return opts, 0, err
		}
		overrides = append(overrides, o)
	}
	opts.Overrides = append(overrides, opts.Overrides...)
	return opts, level, nil
}

func parseOverride(raw string) (structure.ZoomOverride, error) {
	i := strings.LastIndex(raw, "=")
	if i <= 0 {
		return structure.ZoomOverride{}, fmt.Errorf("invalid override %q: want path=level", raw)
	}
	level, err := strconv.Atoi(raw[i+1:])
	if err != nil {
		return structure.ZoomOverride{}, fmt.Errorf("invalid override %q: %w", raw, err)
	}
	return structure.ZoomOverride{Path: raw[:i], Level: level}, nil
}

func newTreeCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "tree [DIR]",
		Short: "Print the project outline with zoomed file contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, level, err := f.options(cmd, a)
			if err != nil {
				return err
			}
			outline, err := structure.Walk(rootArg(args, 0), level, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.useColor(out) {
				fmt.Fprintln(out, highlight.Outline(outline, a.cfg.UI.SyntaxThemeOrDefault()))
				return nil
			}
			fmt.Fprintln(out, outline.String())
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}
