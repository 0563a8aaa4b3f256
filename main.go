package main

import (
	"devkit/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// devkit provisions a developer toolchain:
//   - `install` downloads and extracts toolchain components and runs their setup
//     commands, either for components named on the command line or through an
//     interactive prompt that keeps asking until the user is done
//   - `enable`/`disable` (and the PowerShell variants) print the shell commands
//     that put the toolchain on PATH or take it off again
//   - `version` prints a best-effort report on devkit, the toolchain, the compiler,
//     the shell and the OS, leaving out whatever could not be determined
//
// Error handling strategy:
//   - Problems confined to one unit of work (a token that names no component, a
//     malformed answer, a failed interactive install, a failed diagnostics probe)
//     are reported and the rest carries on
//   - An unattended install failure or an unreadable config ends the process with a
//     non-zero status
func main() {
	cmd.Execute()
}
