package diag

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner answers commands from a table keyed by the full command line.
type fakeRunner map[string]string

func (f fakeRunner) Run(env []string, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	out, ok := f[key]
	if !ok {
		return nil, errors.New(name + ": not found")
	}
	return []byte(out), nil
}

type fakeToolchain struct {
	path string
	err  error
}

func (f fakeToolchain) ResolveInstallationPath() (string, error) { return f.path, f.err }

const sampleManifest = `<?xml version="1.0"?>
<Packages>
  <Package>
    <Title>MSYS2 64bit</Title>
    <Version>20240113</Version>
  </Package>
</Packages>`

func TestStandardProbesAllSucceed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFile), []byte(sampleManifest), 0644))

	runner := fakeRunner{
		"gcc --version": "gcc (Rev3, Built by MSYS2 project) 13.2.0\nCopyright...\n",
		"sh --version":  "GNU bash, version 5.2.21\nmore\n",
		"uname -srm":    "Linux 6.1.0 x86_64\n",
	}
	report := Collect(StandardProbes(Sources{
		Build:     Build{Version: "1.2.3", GitCommit: "abc123"},
		Toolchain: fakeToolchain{path: root},
		Runner:    runner,
		Compiler:  "gcc",
		GOOS:      "linux",
	})...)

	assert.Equal(t, []string{"devkit", "toolchain", "cc", "sh", "os"}, report.Keys())

	dk, _ := report.Get("devkit")
	assert.Equal(t, []string{"version", "git_commit", "go", "platform"}, dk.(*Report).Keys())

	tc, _ := report.Get("toolchain")
	tcReport := tc.(*Report)
	assert.Equal(t, []string{"path", "title", "version"}, tcReport.Keys())
	title, _ := tcReport.Get("title")
	assert.Equal(t, "MSYS2 64bit", title)

	cc, _ := report.Get("cc")
	assert.Equal(t, "gcc (Rev3, Built by MSYS2 project) 13.2.0", cc)
	sh, _ := report.Get("sh")
	assert.Equal(t, "GNU bash, version 5.2.21", sh)
	osv, _ := report.Get("os")
	assert.Equal(t, "Linux 6.1.0 x86_64", osv)
}

func TestStandardProbesDegrade(t *testing.T) {
	report := Collect(StandardProbes(Sources{
		Build:     Build{Version: "dev"},
		Toolchain: fakeToolchain{err: errors.New("toolchain not found")},
		Runner:    fakeRunner{"cmd /c ver": "\nMicrosoft Windows [Version 10.0.22631]\n"},
		GOOS:      "windows",
	})...)

	assert.Equal(t, []string{"devkit", "os"}, report.Keys())
	osv, _ := report.Get("os")
	assert.Equal(t, "Microsoft Windows [Version 10.0.22631]", osv)

	dk, _ := report.Get("devkit")
	_, hasCommit := dk.(*Report).Get("git_commit")
	assert.False(t, hasCommit)
}

func TestToolchainWithoutManifestKeepsPath(t *testing.T) {
	root := t.TempDir()
	report := Collect(StandardProbes(Sources{
		Toolchain: fakeToolchain{path: root},
		Runner:    fakeRunner{},
	})...)

	tc, ok := report.Get("toolchain")
	require.True(t, ok)
	assert.Equal(t, []string{"path"}, tc.(*Report).Keys())
}

func TestEmptyCommandOutputFails(t *testing.T) {
	report := Collect(StandardProbes(Sources{
		Toolchain: fakeToolchain{err: errors.New("none")},
		Runner:    fakeRunner{"cc --version": "   \n", "sh --version": ""},
		GOOS:      "linux",
	})...)

	assert.Equal(t, []string{"devkit"}, report.Keys())
}

func TestReadManifestRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFile)
	require.NoError(t, os.WriteFile(path, []byte("<Packages></Packages>"), 0644))

	_, err := readManifest(path)
	assert.Error(t, err)
}
