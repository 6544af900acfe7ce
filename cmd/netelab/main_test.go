package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/netelab"
)

func elaborateFixture(t *testing.T, name string, opts ...netelab.Option) *netelab.Result {
	t.Helper()
	c := &cli{}
	res, err := c.elaborate([]string{filepath.Join("testdata", name)}, opts...)
	require.NoError(t, err)
	return res
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, exitError},
		{"help", []string{"-h"}, exitOK},
		{"unknown", []string{"frobnicate"}, exitError},
		{"version", []string{"version"}, exitOK},
		{"codes", []string{"codes"}, exitOK},
		{"codes json", []string{"codes", "--json"}, exitOK},
		{"eval", []string{"eval", "-D", "W=8", "W-1"}, exitOK},
		{"eval not constant", []string{"eval", "a+1"}, exitError},
		{"elab", []string{"elab", "testdata/counter.v"}, exitOK},
		{"elab missing file", []string{"elab", "testdata/nope.v"}, exitError},
		{"lint clean", []string{"lint", "--quiet", "testdata/counter.v"}, exitOK},
		{"lint failing", []string{"lint", "--quiet", "testdata/broken.v"}, exitFailing},
		{"lint ignored", []string{"lint", "--quiet", "--fail-on", "fatal", "testdata/broken.v"}, exitOK},
		{"lint bad format", []string{"lint", "--format", "xml", "testdata/counter.v"}, exitError},
		{"lint bad level", []string{"lint", "--level", "9", "testdata/counter.v"}, exitError},
		{"dump", []string{"dump", "-o", "", "--compact", "testdata/counter.v"}, exitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}

func TestLintResult(t *testing.T) {
	cfg := lintConfig{level: "strict", failOn: "error"}
	diagCfg, failAt, err := cfg.diagnosticConfig()
	require.NoError(t, err)
	assert.Equal(t, netelab.SeverityError, failAt)

	res := elaborateFixture(t, "broken.v", netelab.WithDiagnosticConfig(diagCfg))
	result := buildLintResult(res, cfg, failAt)
	assert.Equal(t, exitFailing, result.ExitCode)
	assert.Equal(t, 1, result.Summary.Modules)
	assert.Positive(t, result.Summary.ByCode["input-assigned"])
	assert.Positive(t, result.Summary.ByCode["implicit-net"])
	assert.Positive(t, result.Summary.ByCode["not-net-like"])

	for _, d := range result.Diagnostics {
		assert.Equal(t, "broken", d.Module)
		assert.Equal(t, filepath.Join("testdata", "broken.v"), d.File)
	}

	only := buildLintResult(res, lintConfig{only: []string{"implicit-*"}}, failAt)
	for _, d := range only.Diagnostics {
		assert.Equal(t, "implicit-net", d.Code)
	}

	sarif := buildSARIF(result)
	require.Len(t, sarif.Runs, 1)
	assert.Len(t, sarif.Runs[0].Results, len(result.Diagnostics))
	assert.Equal(t, "netelab", sarif.Runs[0].Tool.Driver.Name)
}

func TestDumpOutputValidates(t *testing.T) {
	res := elaborateFixture(t, "counter.v")
	out, err := buildDumpOutput(res, true, true)
	require.NoError(t, err)
	require.Len(t, out.Units, 1)

	u := out.Units[0]
	assert.Equal(t, "incr", u.Name)
	assert.Equal(t, res.Units[0].Design.FingerprintString(), u.Fingerprint)
	assert.NotEmpty(t, u.Netlist.Devices)

	data, err := marshalJSON(out, false)
	require.NoError(t, err)
	var round map[string]any
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Contains(t, round, "units")
}

func TestDumpToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.Equal(t, exitOK, run([]string{"dump", "-o", path, "testdata/counter.v"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "incr"`)
}

func TestMatchGlob(t *testing.T) {
	assert.True(t, matchGlob("*", "anything"))
	assert.True(t, matchGlob("implicit-*", "implicit-net"))
	assert.True(t, matchGlob("*-net", "implicit-net"))
	assert.False(t, matchGlob("width-mismatch", "implicit-net"))
}
