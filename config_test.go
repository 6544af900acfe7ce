package netelab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	pc, err := LoadConfig("testdata/netelab.yaml")
	require.NoError(t, err)

	assert.Equal(t, ImplicitError, pc.ImplicitPolicy())
	assert.Equal(t, []string{".v"}, pc.Extensions)
	assert.Equal(t, []string{"rtl"}, pc.Paths)
	assert.Equal(t, "alu", pc.Top)

	dc := pc.DiagnosticConfig()
	assert.Equal(t, StrictnessStrict, dc.Level)
	assert.Equal(t, SeverityError, dc.FailAt)
	assert.Equal(t, SeverityWarning, dc.Overrides["width-mismatch"])
	assert.False(t, dc.ShouldReport("undriven-input", SeverityInfo))
	assert.True(t, dc.ShouldReport("implicit-net", SeverityWarning))
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig("testdata/nope.yaml")
	require.Error(t, err)
}

func TestParseConfigDefaults(t *testing.T) {
	pc, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, ImplicitWarn, pc.ImplicitPolicy())
	assert.Equal(t, DefaultDiagnosticConfig(), pc.DiagnosticConfig())
}

func TestParseConfigQuiet(t *testing.T) {
	pc, err := ParseConfig(strings.NewReader("strictness: quiet\nignore: [implicit-net]\n"))
	require.NoError(t, err)

	dc := pc.DiagnosticConfig()
	assert.Equal(t, StrictnessQuiet, dc.Level)
	assert.Contains(t, dc.Ignore, "multiple-drivers")
	assert.Contains(t, dc.Ignore, "implicit-net")
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "implicit: warn\n", "field implicit not found"},
		{"bad policy", "implicit_nets: maybe\n", "implicit_nets"},
		{"bad strictness", "strictness: paranoid\n", "strictness"},
		{"bad fail_at", "fail_at: never\n", "fail_at"},
		{"bad override", "overrides:\n  implicit-net: loud\n", "overrides[implicit-net]"},
		{"not a mapping", "- a\n- b\n", "decode project file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
