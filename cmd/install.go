package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"devkit/internal/command"
	"devkit/internal/config"
	"devkit/internal/environ"
	"devkit/internal/installer"
	"devkit/internal/orchestrator"
	"devkit/internal/prompt"
)

// newInstallCmd installs the given components, or asks interactively when
// none are given.
func newInstallCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "install [component...]",
		Short: "Install toolchain components",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printLogo(out)
			fmt.Fprintln(out)

			inst := installer.New(cfg, environ.New(cfg), command.Exec{}, progressWriter(out))

			var lines prompt.Reader
			if len(args) == 0 {
				r, closeLines := prompt.Open(cmd.InOrStdin(), out)
				defer closeLines()
				lines = r
			}
			return orchestrator.New(inst, lines, out, cfg.DefaultComponents).Install(args)
		},
	}
}

// progressWriter returns out when it is a terminal, so download spinners
// never end up in redirected output.
func progressWriter(out io.Writer) io.Writer {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return f
	}
	return nil
}
