package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xonecas/codelens/internal/highlight"
	"github.com/xonecas/codelens/internal/zoom"
)

func newZoomCmd(a *app) *cobra.Command {
	var level int
	cmd := &cobra.Command{
		Use:   "zoom FILE",
		Short: "Print one file at a zoom level",
		Long: `Print FILE keeping only lines nested at most LEVEL-1 blocks deep. Deeper runs
collapse into "...". Level 0 prints nothing; level 3 and above print the file
unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("level") {
				level = a.cfg.Render.Zoom
			}
			text := zoom.Render(string(data), level, a.cfg.Render.TabWidth)
			if text == "" {
				return nil
			}

			out := cmd.OutOrStdout()
			if a.useColor(out) {
				theme := a.cfg.UI.SyntaxThemeOrDefault()
				lines := highlight.Content(text, highlight.DetectLanguage(args[0]), theme, "", highlight.NewStyles(theme))
				text = strings.Join(lines, "\n")
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
	cmd.Flags().IntVarP(&level, "level", "l", 1, "zoom level (default from config)")
	return cmd
}
