package netelab

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/netlist"
)

// DefaultConfigFile is the project file name looked up by the CLI.
const DefaultConfigFile = "netelab.yaml"

// ProjectConfig is the decoded form of a netelab.yaml project file.
//
//	implicit_nets: error
//	strictness: strict
//	fail_at: warning
//	ignore: [undriven-input]
//	overrides:
//	  width-mismatch: warning
//	extensions: [.v, .vh]
//	paths: [rtl, lib]
//	top: cpu
type ProjectConfig struct {
	ImplicitNets string            `yaml:"implicit_nets"`
	Strictness   string            `yaml:"strictness"`
	FailAt       string            `yaml:"fail_at"`
	Ignore       []string          `yaml:"ignore"`
	Overrides    map[string]string `yaml:"overrides"`
	Extensions   []string          `yaml:"extensions"`
	Paths        []string          `yaml:"paths"`
	Top          string            `yaml:"top"`

	diag     netlist.DiagnosticConfig
	implicit scope.ImplicitPolicy
}

// LoadConfig reads and validates a project file.
func LoadConfig(path string) (*ProjectConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	pc, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pc, nil
}

// ParseConfig decodes and validates a project file. Unknown keys are
// rejected. An empty document yields the default settings.
func ParseConfig(r io.Reader) (*ProjectConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var pc ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode project file: %w", err)
	}
	if err := pc.resolve(); err != nil {
		return nil, err
	}
	return &pc, nil
}

// resolve turns the textual settings into typed ones.
func (pc *ProjectConfig) resolve() error {
	policy, err := scope.ParseImplicitPolicy(pc.ImplicitNets)
	if err != nil {
		return fmt.Errorf("implicit_nets: %w", err)
	}
	pc.implicit = policy

	pc.diag = netlist.DefaultConfig()
	if pc.Strictness != "" {
		level, err := netlist.ParseStrictness(pc.Strictness)
		if err != nil {
			return fmt.Errorf("strictness: %w", err)
		}
		switch level {
		case netlist.StrictnessStrict:
			pc.diag = netlist.StrictConfig()
		case netlist.StrictnessQuiet:
			pc.diag = netlist.QuietConfig()
		default:
			pc.diag.Level = level
		}
	}
	if pc.FailAt != "" {
		sev, err := netlist.ParseSeverity(pc.FailAt)
		if err != nil {
			return fmt.Errorf("fail_at: %w", err)
		}
		pc.diag.FailAt = sev
	}
	pc.diag.Ignore = append(pc.diag.Ignore, pc.Ignore...)
	if len(pc.Overrides) > 0 {
		pc.diag.Overrides = make(map[string]netlist.Severity, len(pc.Overrides))
		for code, name := range pc.Overrides {
			sev, err := netlist.ParseSeverity(name)
			if err != nil {
				return fmt.Errorf("overrides[%s]: %w", code, err)
			}
			pc.diag.Overrides[code] = sev
		}
	}
	return nil
}

// DiagnosticConfig returns the diagnostic settings of the project file.
func (pc *ProjectConfig) DiagnosticConfig() DiagnosticConfig { return pc.diag }

// ImplicitPolicy returns the implicit net policy of the project file.
func (pc *ProjectConfig) ImplicitPolicy() ImplicitPolicy { return pc.implicit }
