package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"devkit/internal/config"
	"devkit/internal/logger"
)

// options holds the global flags shared by every subcommand.
type options struct {
	debug      bool   // --debug
	configPath string // --config / -c
}

// helpAliases are accepted in place of `help` as the first argument.
var helpAliases = map[string]bool{"-?": true, "/?": true}

// newRootCmd builds the command tree. Dispatch is an exact match on the
// first argument; anything unknown is reported as an invalid option.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "devkit",
		Short:         "Developer toolchain provisioning",
		Long:          "devkit installs a compiler toolchain and puts it on PATH for the current shell.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		// Initialize the logger based on the debug flag before any subcommand runs.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug)
		},

		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				printLogo(cmd.OutOrStdout())
				printHelp(cmd.OutOrStdout())
				return
			}
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Invalid option %q\n", args[0])
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "Path to configuration file")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printLogo(cmd.OutOrStdout())
		printHelp(cmd.OutOrStdout())
	})
	rootCmd.SetHelpCommand(newHelpCmd())
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newEnvCmds(opts)...)
	rootCmd.AddCommand(newVersionCmd(opts))
	return rootCmd
}

// run executes the command tree for args, writing to stdout and stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 && helpAliases[args[0]] {
		args = append([]string{"help"}, args[1:]...)
	}
	// cobra falls back to os.Args when given nil
	if args == nil {
		args = []string{}
	}

	rootCmd := newRootCmd()
	if len(args) > 0 && unknownFlag(rootCmd, args[0]) {
		color.New(color.FgRed).Fprintf(stderr, "Invalid option %q\n", args[0])
		return nil
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

// unknownFlag reports whether arg is shaped like a flag that the root command
// does not define. cobra would otherwise fail on it before dispatch.
func unknownFlag(rootCmd *cobra.Command, arg string) bool {
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
		return false
	}
	rootCmd.InitDefaultHelpFlag()
	lookup := func(name string) bool {
		return rootCmd.Flags().Lookup(name) != nil || rootCmd.PersistentFlags().Lookup(name) != nil
	}
	if long, ok := strings.CutPrefix(arg, "--"); ok {
		name, _, _ := strings.Cut(long, "=")
		return !lookup(name)
	}
	short := arg[1:2]
	return rootCmd.Flags().ShorthandLookup(short) == nil && rootCmd.PersistentFlags().ShorthandLookup(short) == nil
}

// Execute runs the CLI with the process arguments. A failing command, such
// as an unattended install, exits with status 1.
func Execute() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
