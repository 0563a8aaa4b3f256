package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"devkit/internal/command"
	"devkit/internal/config"
	"devkit/internal/diag"
	"devkit/internal/environ"
)

// Set at build time with -ldflags "-X devkit/cmd.Version=... -X devkit/cmd.GitCommit=...".
var (
	Version   = "dev"
	GitCommit = ""
)

// newVersionCmd prints a best-effort report about devkit and the toolchain.
// Probes that fail are left out of the report.
func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print devkit and toolchain versions",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				// stdout carries the report, keep it parseable
				color.New(color.FgHiMagenta).Fprintf(cmd.ErrOrStderr(), "[WARN] %v, using defaults\n", err)
				cfg = config.Default()
			}

			report := diag.Collect(diag.StandardProbes(diag.Sources{
				Build:     diag.Build{Version: buildVersion(), GitCommit: GitCommit},
				Toolchain: environ.New(cfg),
				Runner:    command.Exec{},
				Compiler:  cfg.Compiler,
			})...)

			out, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("failed to render version report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// buildVersion falls back to the module version when no version was linked in.
func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
