package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logo = []string{
	`     _            _    _ _   `,
	`  __| | _____   _| | _(_) |_ `,
	` / _` + "`" + ` |/ _ \ \ / / |/ / | __|`,
	`| (_| |  __/\ V /|   <| | |_ `,
	` \__,_|\___| \_/ |_|\_\_|\__|`,
}

func printLogo(w io.Writer) {
	magenta := color.New(color.FgMagenta)
	for _, line := range logo {
		magenta.Fprintln(w, line)
	}
	color.New(color.FgCyan).Fprintln(w, "       toolchain provisioning")
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `
Usage:
    %s [option]

Option:
    install [component...]    Install toolchain components (interactive without arguments)
    enable | exec             Print shell commands that put the toolchain on PATH
    disable                   Print shell commands that take it off again
    enableps1 | execps1       Same as enable, for PowerShell
    disableps1                Same as disable, for PowerShell
    version                   Print devkit and toolchain versions
    help | --help | -? | /?   Display this help and exit

Flags:
    -c, --config <file>       Configuration file (default ~/.devkit/config.yaml)
        --debug               Enable debug logging
`, filepath.Base(os.Args[0]))
}

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Display usage",
		Run: func(cmd *cobra.Command, args []string) {
			printLogo(cmd.OutOrStdout())
			printHelp(cmd.OutOrStdout())
		},
	}
}
