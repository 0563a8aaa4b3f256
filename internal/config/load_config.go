package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// wordPattern matches component names usable as selection tokens.
var wordPattern = regexp.MustCompile(`^\w+$`)

// DefaultPath returns $HOME/.devkit/config.yaml.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".devkit", "config.yaml")
}

// Default returns the configuration used when no config file exists.
// The catalog installs the base system, optionally updates it, and then
// installs the compiler toolchain through the bundled package manager.
func Default() *Config {
	base := filepath.Join(homeDir(), ".devkit")
	return &Config{
		ToolchainRoot:     filepath.Join(base, "toolchain"),
		StateFile:         filepath.Join(base, "state.json"),
		CacheDir:          filepath.Join(base, "cache"),
		PathDirs:          []string{"usr/bin", "ucrt64/bin"},
		Env:               map[string]string{"MSYSTEM": "UCRT64"},
		Compiler:          "gcc",
		DefaultComponents: []string{"1", "3"},
		Components: []Component{
			{
				Index:         1,
				Name:          "base",
				Description:   "Toolchain base installation",
				URL:           "https://repo.msys2.org/distrib/msys2-x86_64-latest.tar.xz",
				StripTopLevel: true,
			},
			{
				Index:       2,
				Name:        "update",
				Description: "Toolchain system update (optional)",
				Commands:    []string{"pacman -Syu --noconfirm"},
			},
			{
				Index:       3,
				Name:        "devtools",
				Description: "Compiler and build tools",
				Commands: []string{
					"pacman -S --needed --noconfirm base-devel mingw-w64-ucrt-x86_64-toolchain",
				},
			},
		},
	}
}

// LoadConfig reads the YAML configuration at configFile on top of Default().
// A missing file is not an error: the defaults are returned as-is.
func LoadConfig(configFile string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	// yaml.v3 merges into existing maps, so decode env from scratch and
	// only fall back to the defaults when the file leaves it out.
	defaultEnv := cfg.Env
	cfg.Env = nil
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", configFile, err)
	}
	if cfg.Env == nil {
		cfg.Env = defaultEnv
	}

	cfg.ToolchainRoot = expandHome(cfg.ToolchainRoot)
	cfg.StateFile = expandHome(cfg.StateFile)
	cfg.CacheDir = expandHome(cfg.CacheDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}
	return cfg, nil
}

// Validate checks the component catalog and fills in missing indices.
// A zero index is replaced by the component's 1-based position.
func (c *Config) Validate() error {
	if c.ToolchainRoot == "" {
		return errors.New("toolchain_root must be set")
	}

	names := make(map[string]bool)
	indices := make(map[int]string)
	for i := range c.Components {
		comp := &c.Components[i]
		if comp.Index == 0 {
			comp.Index = i + 1
		}
		if comp.Index < 0 {
			return fmt.Errorf("component %q: index must be positive, got %d", comp.Name, comp.Index)
		}
		if !wordPattern.MatchString(comp.Name) {
			return fmt.Errorf("component name %q must consist of letters, digits and underscores", comp.Name)
		}
		if names[comp.Name] {
			return fmt.Errorf("duplicate component name %q", comp.Name)
		}
		if other, ok := indices[comp.Index]; ok {
			return fmt.Errorf("components %q and %q share index %d", other, comp.Name, comp.Index)
		}
		names[comp.Name] = true
		indices[comp.Index] = comp.Name
	}
	return nil
}

// Component returns the configured component with the given name.
func (c *Config) Component(name string) (Component, bool) {
	for _, comp := range c.Components {
		if comp.Name == name {
			return comp, true
		}
	}
	return Component{}, false
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
