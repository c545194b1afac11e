package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xonecas/codelens/internal/highlight"
	"github.com/xonecas/codelens/internal/treesitter"
)

func newFindCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "find NAME [FILE]",
		Short: "Print the declaration of a function, class or variable",
		Long: `Print the first function, class or variable declaration named NAME.
With FILE only that file is searched; otherwise every TypeScript and
JavaScript file under the current directory is indexed and searched in path
order.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var (
				d    *treesitter.ElementDetails
				path string
				err  error
			)
			if len(args) == 2 {
				path = args[1]
				d, err = treesitter.FindInFile(name, path)
			} else {
				opts, _, oerr := f.options(cmd, a)
				if oerr != nil {
					return oerr
				}
				idx := treesitter.NewIndex(".", opts)
				if err := idx.Build(cmd.Context()); err != nil {
					return err
				}
				d, path, err = idx.Lookup(name)
			}
			if err != nil {
				return err
			}
			if d == nil {
				return fmt.Errorf("no declaration named %q found", name)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s:%d-%d\n", d.Kind, d.Name, filepath.ToSlash(path), d.StartLine, d.EndLine)
			code := d.Code
			if a.useColor(out) {
				code = highlight.Highlight(code, highlight.DetectLanguage(path), a.cfg.UI.SyntaxThemeOrDefault())
			}
			fmt.Fprintln(out, code)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
