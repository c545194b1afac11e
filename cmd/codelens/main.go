// Command codelens prints reduced-detail views of JavaScript and TypeScript
// projects: zoomed file outlines, declaration lookups and symbol lists.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xonecas/codelens/internal/config"
	"github.com/xonecas/codelens/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands once the root has loaded
// configuration.
type app struct {
	configPath string
	color      string
	cfg        *config.Config
	logWriter  io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "codelens",
		Short: "Summarize the structure of JavaScript and TypeScript projects",
		Long: `codelens renders a project as an indented outline where every relevant file
is followed by its source at a chosen zoom level: deeper blocks collapse into
"..." while block comments stay whole. It also locates declarations and lists
the symbols each file defines.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/codelens/config.toml)")
	cmd.PersistentFlags().StringVar(&a.color, "color", "", "color output: auto, always or never (default from config)")

	cmd.AddCommand(
		newTreeCmd(a),
		newZoomCmd(a),
		newFindCmd(a),
		newSymbolsCmd(a),
		newSuggestCmd(a),
		newContextCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.color != "" {
		cfg.UI.Color = a.color
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	w, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	a.logWriter = w
	log.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("codelens: starting")
	return nil
}

func (a *app) close() {
	if a.logWriter != nil {
		_ = a.logWriter.Close()
		a.logWriter = nil
	}
}

// useColor reports whether output to w should carry ANSI styling.
func (a *app) useColor(w io.Writer) bool {
	switch a.cfg.UI.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// rootArg returns the directory argument at i, defaulting to ".".
func rootArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "."
}
