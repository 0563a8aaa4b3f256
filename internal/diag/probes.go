package diag

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"devkit/internal/command"
)

// ManifestFile is the package manifest shipped at the toolchain root.
const ManifestFile = "components.xml"

// Toolchain locates the installed toolchain.
type Toolchain interface {
	ResolveInstallationPath() (string, error)
}

// Build identifies the running devkit binary.
type Build struct {
	Version   string
	GitCommit string
}

// Sources are the external services the standard probes query.
type Sources struct {
	Build     Build
	Toolchain Toolchain
	Runner    command.Runner
	Compiler  string // defaults to "cc"
	GOOS      string // defaults to runtime.GOOS
}

// StandardProbes returns the probes behind `devkit version`, in report order.
func StandardProbes(src Sources) []Probe {
	compiler := src.Compiler
	if compiler == "" {
		compiler = "cc"
	}
	goos := src.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	return []Probe{
		{Name: "devkit", Run: func() (any, error) { return buildReport(src.Build), nil }},
		Chain("toolchain",
			Value("path", func(*Report) (string, error) {
				return src.Toolchain.ResolveInstallationPath()
			}),
			func(prev *Report) (*Report, error) {
				path, _ := prev.Get("path")
				return readManifest(filepath.Join(path.(string), ManifestFile))
			},
		),
		{Name: "cc", Run: firstLineOf(src.Runner, compiler, "--version")},
		{Name: "sh", Run: firstLineOf(src.Runner, "sh", "--version")},
		{Name: "os", Run: osVersion(src.Runner, goos)},
	}
}

func buildReport(b Build) *Report {
	r := NewReport()
	r.Set("version", b.Version)
	if b.GitCommit != "" {
		r.Set("git_commit", b.GitCommit)
	}
	r.Set("go", runtime.Version())
	r.Set("platform", runtime.GOOS+"/"+runtime.GOARCH)
	return r
}

type manifest struct {
	XMLName  xml.Name `xml:"Packages"`
	Packages []struct {
		Title   string `xml:"Title"`
		Version string `xml:"Version"`
	} `xml:"Package"`
}

// readManifest returns title and version of the first package listed in
// the toolchain's components.xml.
func readManifest(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := xml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(m.Packages) == 0 {
		return nil, fmt.Errorf("%s lists no packages", path)
	}

	r := NewReport()
	r.Set("title", m.Packages[0].Title)
	r.Set("version", m.Packages[0].Version)
	return r, nil
}

func firstLineOf(runner command.Runner, name string, args ...string) func() (any, error) {
	return func() (any, error) {
		out, err := runner.Run(nil, name, args...)
		if err != nil {
			return nil, err
		}
		return firstLine(string(out))
	}
}

func osVersion(runner command.Runner, goos string) func() (any, error) {
	return func() (any, error) {
		var (
			out []byte
			err error
		)
		if goos == "windows" {
			out, err = runner.Run(nil, "cmd", "/c", "ver")
		} else {
			out, err = runner.Run(nil, "uname", "-srm")
		}
		if err != nil {
			return nil, err
		}
		v := strings.TrimSpace(string(out))
		if v == "" {
			return nil, errors.New("empty os version")
		}
		return v, nil
	}
}

func firstLine(s string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("empty output")
	}
	return line, nil
}
