package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xonecas/codelens/internal/prompt"
)

func newContextCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "context [DIR]",
		Short: "Print a context document: outline plus symbol list",
		Long: `Print a single document describing the project: a short header, the notes in
CODELENS.md if present, the zoomed outline and the symbol list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, level, err := f.options(cmd, a)
			if err != nil {
				return err
			}
			doc, err := prompt.BuildProjectContext(cmd.Context(), rootArg(args, 0), level, opts, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}
