package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"devkit/internal/config"
	"devkit/internal/environ"
)

// newEnvCmds returns the pass-through commands printing activation snippets.
// Trailing arguments are ignored.
func newEnvCmds(opts *options) []*cobra.Command {
	return []*cobra.Command{
		newEnvCmd(opts, "enable", []string{"exec"},
			"Print shell commands that put the toolchain on PATH",
			(*environ.Service).EnableForProcess),
		newEnvCmd(opts, "disable", nil,
			"Print shell commands that take the toolchain off PATH",
			(*environ.Service).DisableForProcess),
		newEnvCmd(opts, "enableps1", []string{"execps1"},
			"Print PowerShell commands that put the toolchain on PATH",
			(*environ.Service).EnableForProfile),
		newEnvCmd(opts, "disableps1", nil,
			"Print PowerShell commands that take the toolchain off PATH",
			(*environ.Service).DisableForProfile),
	}
}

func newEnvCmd(opts *options, use string, aliases []string, short string, snippet func(*environ.Service) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			out, err := snippet(environ.New(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
