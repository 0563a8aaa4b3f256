// Package environ produces the shell snippets that put the toolchain on (or
// take it off) PATH, and the environment used to run toolchain commands.
package environ

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"devkit/internal/config"
	"devkit/internal/logger"
)

// RootVar is exported by enable and names the active toolchain root.
const RootVar = "DEVKIT_ROOT"

// Service knows where the toolchain lives and how to activate it.
type Service struct {
	root     string
	pathDirs []string
	vars     map[string]string
	getenv   func(string) string
}

// New returns a Service for the toolchain described by cfg.
func New(cfg *config.Config) *Service {
	return &Service{
		root:     cfg.ToolchainRoot,
		pathDirs: cfg.PathDirs,
		vars:     cfg.Env,
		getenv:   os.Getenv,
	}
}

// ResolveInstallationPath returns the toolchain root, or an error when
// nothing is installed there.
func (s *Service) ResolveInstallationPath() (string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return "", fmt.Errorf("toolchain not found at %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("toolchain path %s is not a directory", s.root)
	}
	return s.root, nil
}

// BinDirs returns the absolute directories put on PATH, in priority order.
func (s *Service) BinDirs() []string {
	dirs := make([]string, 0, len(s.pathDirs))
	for _, d := range s.pathDirs {
		dirs = append(dirs, filepath.Join(s.root, filepath.FromSlash(d)))
	}
	return dirs
}

// EnableForProcess returns POSIX shell commands activating the toolchain,
// meant for `eval "$(devkit enable)"`.
func (s *Service) EnableForProcess() (string, error) {
	if _, err := s.ResolveInstallationPath(); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "export %s=%s\n", RootVar, shQuote(s.root))
	for _, k := range s.varNames() {
		fmt.Fprintf(&b, "export %s=%s\n", k, shQuote(s.vars[k]))
	}
	fmt.Fprintf(&b, "export PATH=%s", shQuote(s.activePath()))
	return b.String(), nil
}

// DisableForProcess returns POSIX shell commands undoing EnableForProcess.
func (s *Service) DisableForProcess() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "unset %s\n", RootVar)
	for _, k := range s.varNames() {
		fmt.Fprintf(&b, "unset %s\n", k)
	}
	fmt.Fprintf(&b, "export PATH=%s", shQuote(s.cleanPath()))
	return b.String(), nil
}

// EnableForProfile is the PowerShell variant of EnableForProcess.
func (s *Service) EnableForProfile() (string, error) {
	if _, err := s.ResolveInstallationPath(); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "$env:%s = %s\n", RootVar, psQuote(s.root))
	for _, k := range s.varNames() {
		fmt.Fprintf(&b, "$env:%s = %s\n", k, psQuote(s.vars[k]))
	}
	fmt.Fprintf(&b, "$env:PATH = %s", psQuote(s.activePath()))
	return b.String(), nil
}

// DisableForProfile is the PowerShell variant of DisableForProcess.
func (s *Service) DisableForProfile() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Remove-Item Env:%s -ErrorAction SilentlyContinue\n", RootVar)
	for _, k := range s.varNames() {
		fmt.Fprintf(&b, "Remove-Item Env:%s -ErrorAction SilentlyContinue\n", k)
	}
	fmt.Fprintf(&b, "$env:PATH = %s", psQuote(s.cleanPath()))
	return b.String(), nil
}

// Environ returns base with the toolchain activated, for running
// toolchain programs as child processes.
func (s *Service) Environ(base []string) []string {
	set := map[string]string{RootVar: s.root, "PATH": s.activePath()}
	for k, v := range s.vars {
		set[k] = v
	}

	env := make([]string, 0, len(base)+len(set))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, ok := set[k]; ok {
			continue
		}
		env = append(env, kv)
	}
	for _, k := range sortedKeys(set) {
		env = append(env, k+"="+set[k])
	}
	return env
}

// LookPath finds name in the toolchain bin dirs first and then on PATH.
// When nothing matches, name is returned unchanged.
func (s *Service) LookPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	candidates := []string{name}
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		candidates = append(candidates, name+".exe")
	}
	for _, dir := range s.BinDirs() {
		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
				logger.Debug("[DEBUG] Resolved %s to %s\n", name, p)
				return p
			}
		}
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

func (s *Service) activePath() string {
	parts := append(s.BinDirs(), s.foreignPath()...)
	return strings.Join(parts, string(os.PathListSeparator))
}

func (s *Service) cleanPath() string {
	return strings.Join(s.foreignPath(), string(os.PathListSeparator))
}

// foreignPath returns the current PATH entries that are not toolchain dirs.
func (s *Service) foreignPath() []string {
	own := make(map[string]bool)
	for _, d := range s.BinDirs() {
		own[filepath.Clean(d)] = true
	}
	var kept []string
	for _, p := range filepath.SplitList(s.getenv("PATH")) {
		if p == "" || own[filepath.Clean(p)] {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func (s *Service) varNames() []string {
	return sortedKeys(s.vars)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
