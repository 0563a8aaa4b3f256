package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"devkit/internal/logger"
)

func succeed(name string, v any) Probe {
	return Probe{Name: name, Run: func() (any, error) { return v, nil }}
}

func fail(name string) Probe {
	return Probe{Name: name, Run: func() (any, error) { return "garbage", errors.New(name + " failed") }}
}

func TestCollectSkipsFailedProbes(t *testing.T) {
	report := Collect(succeed("A", "x"), fail("B"), succeed("C", "y"))

	assert.Equal(t, []string{"A", "C"}, report.Keys())
	v, ok := report.Get("A")
	require.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = report.Get("B")
	assert.False(t, ok)
}

func TestCollectKeepsRegistrationOrder(t *testing.T) {
	report := Collect(succeed("z", 1), fail("m"), succeed("a", 2), succeed("k", 3))
	assert.Equal(t, []string{"z", "a", "k"}, report.Keys())
}

func TestExecuteSilencesAndRestoresLogger(t *testing.T) {
	logger.Init(true)
	defer logger.Init(false)

	var during bool
	probe := Probe{Name: "p", Run: func() (any, error) {
		during = logger.DebugEnabled()
		return nil, errors.New("nope")
	}}

	o := Execute(probe)
	assert.False(t, o.OK())
	assert.False(t, during)
	assert.True(t, logger.DebugEnabled())
}

func TestExecuteRestoresLoggerOnPanic(t *testing.T) {
	logger.Init(true)
	defer logger.Init(false)

	var o Outcome
	assert.NotPanics(t, func() {
		o = Execute(Probe{Name: "p", Run: func() (any, error) { panic("boom") }})
	})
	assert.False(t, o.OK())
	assert.EqualError(t, o.Err, "p panicked: boom")
	assert.True(t, logger.DebugEnabled())
}

func TestCollectContinuesAfterPanic(t *testing.T) {
	panicking := Probe{Name: "B", Run: func() (any, error) { panic("boom") }}

	report := Collect(succeed("A", "x"), panicking, succeed("C", "y"))

	assert.Equal(t, []string{"A", "C"}, report.Keys())
}

func TestChainPrerequisiteFailure(t *testing.T) {
	var dependentRan bool
	probe := Chain("toolchain",
		Value("path", func(*Report) (string, error) { return "", errors.New("not installed") }),
		Value("version", func(*Report) (string, error) {
			dependentRan = true
			return "1.0", nil
		}),
	)

	report := Collect(probe, succeed("os", "linux"))

	assert.False(t, dependentRan)
	assert.Equal(t, []string{"os"}, report.Keys())
}

func TestChainLaterFailureKeepsEarlierEntries(t *testing.T) {
	var lastRan bool
	probe := Chain("toolchain",
		Value("path", func(*Report) (string, error) { return "/opt/tc", nil }),
		func(prev *Report) (*Report, error) {
			partial := NewReport()
			partial.Set("title", "half")
			return partial, errors.New("manifest unreadable")
		},
		Value("extra", func(*Report) (string, error) {
			lastRan = true
			return "x", nil
		}),
	)

	report := Collect(probe)
	v, ok := report.Get("toolchain")
	require.True(t, ok)

	group := v.(*Report)
	assert.Equal(t, []string{"path"}, group.Keys())
	assert.False(t, lastRan)
}

func TestChainPassesPreviousEntries(t *testing.T) {
	probe := Chain("g",
		Value("path", func(*Report) (string, error) { return "/root", nil }),
		Value("bin", func(prev *Report) (string, error) {
			p, _ := prev.Get("path")
			return p.(string) + "/bin", nil
		}),
	)

	report := Collect(probe)
	v, _ := report.Get("g")
	bin, _ := v.(*Report).Get("bin")
	assert.Equal(t, "/root/bin", bin)
}

func TestReportYAMLKeepsOrder(t *testing.T) {
	r := NewReport()
	r.Set("zeta", "last-alphabetically")
	nested := NewReport()
	nested.Set("path", "/opt/tc")
	nested.Set("version", "v2.1")
	r.Set("toolchain", nested)
	r.Set("alpha", "first-alphabetically")

	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		"zeta: last-alphabetically\n"+
			"toolchain:\n"+
			"    path: /opt/tc\n"+
			"    version: v2.1\n"+
			"alpha: first-alphabetically\n",
		string(out))
}

func TestReportSetExistingKeepsPosition(t *testing.T) {
	r := NewReport()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, r.Keys())
	v, _ := r.Get("a")
	assert.Equal(t, 3, v)
}
