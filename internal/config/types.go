package config

// Config is the top-level structure loaded from config.yaml.
// It describes where the toolchain lives, which components can be installed
// into it, and what the interactive installer suggests by default.
type Config struct {
	ToolchainRoot     string            `yaml:"toolchain_root"`     // Directory the toolchain is installed into
	StateFile         string            `yaml:"state_file"`         // JSON file recording installed components
	CacheDir          string            `yaml:"cache_dir"`          // Where downloaded archives are kept
	PathDirs          []string          `yaml:"path_dirs"`          // Directories below ToolchainRoot put on PATH, in order
	Env               map[string]string `yaml:"env"`                // Extra variables exported on enable
	Compiler          string            `yaml:"compiler"`           // C compiler queried by `version`
	DefaultComponents []string          `yaml:"default_components"` // Interactive default selection (indices or names)
	Components        []Component       `yaml:"components"`         // Installable components, in display order
}

// Component is one installable unit of the toolchain.
// - Index/Name: selection keys offered to the user.
// - URL or Repo/Tag/Asset: where the archive comes from (a direct link or a GitHub release asset).
// - Commands: run after extraction with the toolchain on PATH (e.g. package manager updates).
type Component struct {
	Index         int      `yaml:"index"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	URL           string   `yaml:"url"`
	Repo          string   `yaml:"repo"`            // GitHub repo, e.g. msys2/msys2-installer
	Tag           string   `yaml:"tag"`             // GitHub release tag
	Asset         string   `yaml:"asset"`           // Substring the release asset name must contain
	StripTopLevel bool     `yaml:"strip_top_level"` // Drop the archive's leading directory on extraction
	Commands      []string `yaml:"commands"`
}

// HasArchive reports whether the component ships files to extract.
func (c Component) HasArchive() bool {
	return c.URL != "" || c.Repo != ""
}
