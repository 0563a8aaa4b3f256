// Package command runs external programs.
package command

import (
	"fmt"
	"os/exec"
	"strings"

	"devkit/internal/logger"
)

// Runner executes a program and returns its combined stdout and stderr.
// A nil env means the current process environment.
type Runner interface {
	Run(env []string, name string, args ...string) ([]byte, error)
}

// Exec runs programs with os/exec. Calls block until the program exits.
type Exec struct{}

// Run implements Runner.
func (Exec) Run(env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = env
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
