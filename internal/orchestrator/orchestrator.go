// Package orchestrator drives component installation, either once from
// command-line tokens or as an interactive prompt loop.
package orchestrator

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"

	"devkit/internal/catalog"
	"devkit/internal/logger"
	"devkit/internal/prompt"
)

// Installer is the component installer the orchestrator delegates to.
type Installer interface {
	InstallableComponents() []catalog.Task
	Install(names []string) error
	Reload() error
}

// selectionPattern accepts one or more word/digit tokens separated by whitespace.
var selectionPattern = regexp.MustCompile(`^(?:\w+\s*)+$`)

type loopState int

const (
	statePrompting loopState = iota
	stateInstalling
	stateReloading
	stateTerminal
)

func (s loopState) String() string {
	switch s {
	case statePrompting:
		return "prompting"
	case stateInstalling:
		return "installing"
	case stateReloading:
		return "reloading"
	default:
		return "terminal"
	}
}

// cycle is the state threaded through the interactive loop.
type cycle struct {
	state     loopState
	defaults  []string // offered when the user just presses ENTER
	selection []string // tokens chosen for the current install attempt
}

// Orchestrator resolves selections and runs install cycles.
type Orchestrator struct {
	installer Installer
	lines     prompt.Reader
	out       io.Writer
	defaults  []string
	red       *color.Color
}

// New returns an Orchestrator. lines is only used in interactive mode and
// may be nil for unattended use. defaults is the initial interactive selection.
func New(installer Installer, lines prompt.Reader, out io.Writer, defaults []string) *Orchestrator {
	return &Orchestrator{
		installer: installer,
		lines:     lines,
		out:       out,
		defaults:  defaults,
		red:       color.New(color.FgRed),
	}
}

// Install runs an unattended install when tokens is non-empty and the
// interactive loop otherwise. Only unattended failures are returned.
func (o *Orchestrator) Install(tokens []string) error {
	if len(tokens) > 0 {
		return o.installOnce(tokens)
	}
	o.interactive()
	return nil
}

func (o *Orchestrator) installOnce(tokens []string) error {
	tasks := catalog.Resolve(o.installer.InstallableComponents(), tokens, o.out)
	logger.Debug("[DEBUG] Unattended install of %v\n", catalog.Names(tasks))
	return o.installer.Install(catalog.Names(tasks))
}

func (o *Orchestrator) interactive() {
	c := cycle{state: statePrompting, defaults: o.defaults}
	for c.state != stateTerminal {
		logger.Debug("[DEBUG] Install loop state: %s\n", c.state)
		switch c.state {
		case statePrompting:
			c = o.prompt(c)
		case stateInstalling:
			c = o.attempt(c)
		case stateReloading:
			c = o.reload(c)
		}
	}
}

func (o *Orchestrator) prompt(c cycle) cycle {
	for _, task := range catalog.SortedByIndex(o.installer.InstallableComponents()) {
		fmt.Fprintf(o.out, "  %2d - %s\n", task.Index, task.Description)
	}
	fmt.Fprintln(o.out)

	question := fmt.Sprintf("Which components shall be installed? If unsure press ENTER [%s] ", strings.Join(c.defaults, ","))
	line, err := o.lines.ReadLine(question)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Error("[ERROR] Failed to read input: %v\n", err)
		}
		return cycle{state: stateTerminal}
	}

	line = strings.TrimSpace(strings.ReplaceAll(line, ",", " "))
	switch {
	case line == "" && len(c.defaults) == 0:
		return cycle{state: stateTerminal}
	case line == "":
		return cycle{state: stateInstalling, defaults: c.defaults, selection: c.defaults}
	case selectionPattern.MatchString(line):
		return cycle{state: stateInstalling, defaults: c.defaults, selection: []string{line}}
	default:
		o.red.Fprintln(o.out, "Please enter a comma or space separated list of the components to be installed")
		return c
	}
}

func (o *Orchestrator) attempt(c cycle) cycle {
	fmt.Fprintln(o.out)
	tasks := catalog.Resolve(o.installer.InstallableComponents(), c.selection, o.out)
	if err := o.installer.Install(catalog.Names(tasks)); err != nil {
		o.red.Fprintf(o.out, "Installation failed: %v\n", err)
	}
	return cycle{state: stateReloading, defaults: c.defaults}
}

// reload refreshes the installer, since component states may have changed,
// and drops the default selection so a bare ENTER ends the session.
func (o *Orchestrator) reload(c cycle) cycle {
	if err := o.installer.Reload(); err != nil {
		o.red.Fprintf(o.out, "Reloading components failed: %v\n", err)
	}
	fmt.Fprintln(o.out)
	return cycle{state: statePrompting}
}
