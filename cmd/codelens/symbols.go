package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/xonecas/codelens/internal/treesitter"
)

// buildIndex indexes the directory in args[i] using the render flags.
func buildIndex(cmd *cobra.Command, a *app, f *renderFlags, args []string, i int) (*treesitter.Index, error) {
	opts, _, err := f.options(cmd, a)
	if err != nil {
		return nil, err
	}
	idx := treesitter.NewIndex(rootArg(args, i), opts)
	if err := idx.Build(cmd.Context()); err != nil {
		return nil, err
	}
	return idx, nil
}

func newSymbolsCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "symbols [DIR|FILE]",
		Short: "List the classes, functions, variables and imports of every file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if info, err := os.Stat(rootArg(args, 0)); err == nil && !info.IsDir() {
				sum, err := treesitter.SummarizeFile(args[0])
				if err != nil {
					return err
				}
				snap := map[string]*treesitter.FileSummary{filepath.ToSlash(args[0]): sum}
				fmt.Fprint(cmd.OutOrStdout(), treesitter.FormatOutline(snap))
				return nil
			}
			idx, err := buildIndex(cmd, a, &f, args, 0)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), treesitter.FormatOutline(idx.Snapshot()))
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	var (
		f     renderFlags
		limit int
	)
	cmd := &cobra.Command{
		Use:   "suggest PREFIX [DIR]",
		Short: "List declared names starting with PREFIX",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := buildIndex(cmd, a, &f, args, 1)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetColumnSeparator("")
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("  ")
			for _, s := range idx.Suggest(args[0], limit) {
				table.Append([]string{s.Name, s.Kind.String(), s.Path})
			}
			table.Render()
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum suggestions (0 for all)")
	return cmd
}
