package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Colorized printf-style functions for the different log levels, built on fatih/color.
// They print to the terminal (stdout) and are meant for operator diagnostics;
// user-facing prompts and results are written to the command's own writer.

// Info logs informational messages in green color.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// It is replaced by a no-op while the logger is silenced.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It starts out as a no-op so packages can log before Init runs (tests, library use).
var Debug = nop

// debugEnabled mirrors the state Init left Debug in.
var debugEnabled bool

func nop(format string, a ...any) {}

// Init initializes the logger package, specifically enabling or disabling debug logging.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug will be a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	debugEnabled = enableDebug
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = nop
	}
}

// DebugEnabled reports whether debug output is currently active.
func DebugEnabled() bool {
	return debugEnabled
}

// Silence turns off Debug and Warn output and returns a function that puts
// back exactly what was there before. Callers defer the returned function so
// the previous state survives early returns and panics:
//
//	defer logger.Silence()()
func Silence() (restore func()) {
	prevDebug, prevWarn, prevEnabled := Debug, Warn, debugEnabled
	Debug, Warn, debugEnabled = nop, nop, false
	return func() {
		Debug, Warn, debugEnabled = prevDebug, prevWarn, prevEnabled
	}
}
