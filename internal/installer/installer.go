package installer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"devkit/internal/catalog"
	"devkit/internal/command"
	"devkit/internal/config"
	"devkit/internal/environ"
	"devkit/internal/logger"
	"devkit/internal/state"
)

// Installer installs the components listed in the configuration into the
// toolchain root and remembers what it installed in the state file.
type Installer struct {
	cfg      *config.Config
	env      *environ.Service
	runner   command.Runner
	progress io.Writer // spinner output while downloading; nil disables it
	client   *http.Client
	apiBase  string // GitHub API endpoint
	st       *state.State
}

// New returns an Installer with the state file already loaded.
func New(cfg *config.Config, env *environ.Service, runner command.Runner, progress io.Writer) *Installer {
	return &Installer{
		cfg:      cfg,
		env:      env,
		runner:   runner,
		progress: progress,
		client:   http.DefaultClient,
		apiBase:  githubAPI,
		st:       state.LoadState(cfg.StateFile),
	}
}

// InstallableComponents lists every configured component in configuration
// order. Components recorded in the state file are marked as installed.
func (i *Installer) InstallableComponents() []catalog.Task {
	tasks := make([]catalog.Task, 0, len(i.cfg.Components))
	for _, c := range i.cfg.Components {
		desc := c.Description
		if i.st.Installed(c.Name) {
			desc += " (installed)"
		}
		tasks = append(tasks, catalog.Task{Index: c.Index, Name: c.Name, Description: desc})
	}
	return tasks
}

// Install installs the named components one after the other and stops at
// the first failure. Components installed before the failure stay recorded.
func (i *Installer) Install(names []string) error {
	logger.Debug("[DEBUG] Install: %v\n", names)

	for _, name := range names {
		comp, ok := i.cfg.Component(name)
		if !ok {
			return fmt.Errorf("unknown component %q", name)
		}

		logger.Info("[INFO] Installing %s: %s\n", comp.Name, comp.Description)
		source, err := i.installComponent(comp)
		if err != nil {
			return fmt.Errorf("install %s: %w", comp.Name, err)
		}

		i.st.Components[comp.Name] = state.ComponentState{InstalledAt: time.Now().UTC(), Source: source}
		state.SaveState(i.cfg.StateFile, i.st)
		logger.Info("[INFO] Installed %s\n", comp.Name)
	}
	return nil
}

// Reload re-reads the state file so the catalog reflects what is installed now.
func (i *Installer) Reload() error {
	st, err := state.Read(i.cfg.StateFile)
	if err != nil {
		return err
	}
	i.st = st
	return nil
}

// installComponent extracts the component archive, if any, and runs its
// commands. It returns the URL the archive came from.
func (i *Installer) installComponent(comp config.Component) (string, error) {
	var source string
	if comp.HasArchive() {
		url, err := i.archiveURL(comp)
		if err != nil {
			return "", err
		}
		archive, err := i.fetch(url)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(i.cfg.ToolchainRoot, 0755); err != nil {
			return "", fmt.Errorf("cannot create toolchain root: %w", err)
		}
		extracted, err := ExtractArchive(archive, i.cfg.ToolchainRoot, comp.StripTopLevel)
		if err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", archive, err)
		}
		logger.Debug("[DEBUG] Extracted %s to %s\n", archive, extracted)
		source = url
	}

	env := i.env.Environ(os.Environ())
	for _, line := range comp.Commands {
		argv := strings.Fields(line)
		if len(argv) == 0 {
			continue
		}
		output, err := i.runner.Run(env, i.env.LookPath(argv[0]), argv[1:]...)
		logger.Debug("[DEBUG] %s output:\n%s\n", line, output)
		if err != nil {
			return "", fmt.Errorf("%q failed: %w\nOutput: %s", line, err, output)
		}
	}
	return source, nil
}

func (i *Installer) archiveURL(comp config.Component) (string, error) {
	if comp.URL != "" {
		return comp.URL, nil
	}
	return i.releaseAssetURL(comp)
}
