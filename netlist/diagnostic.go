package netlist

import (
	"fmt"
	"slices"
	"strings"
)

// Diagnostic represents an issue found during parsing or elaboration.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "width-mismatch", "implicit-net"
	Message  string
	Module   string // HDL module the diagnostic belongs to
	Line     int    // 1-based line number, 0 if not applicable
	Column   int    // 1-based column, 0 if not applicable
}

// String returns "[severity] module:line:col: message", omitting location
// parts that are zero.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	if d.Module != "" {
		b.WriteString(d.Module)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig struct {
	// Level sets the reporting threshold.
	// Diagnostics with severity > Level are suppressed.
	Level StrictnessLevel

	// FailAt sets the severity threshold for failure.
	// Any reported diagnostic with severity <= FailAt fails the run.
	FailAt Severity

	// Overrides change severity for specific diagnostic codes.
	Overrides map[string]Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports a leading or trailing * (e.g., "implicit-*").
	Ignore []string
}

// DefaultConfig reports errors and warnings and fails on errors.
func DefaultConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessNormal,
		FailAt: SeveritySorry,
	}
}

// StrictConfig reports everything and fails on warnings.
func StrictConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessStrict,
		FailAt: SeverityWarning,
	}
}

// QuietConfig reports errors only and ignores the structural checks.
func QuietConfig() DiagnosticConfig {
	return DiagnosticConfig{
		Level:  StrictnessQuiet,
		FailAt: SeveritySorry,
		Ignore: []string{"multiple-drivers", "undriven-input"},
	}
}

// Severity returns the severity a diagnostic with this code is reported
// at, after overrides.
func (c DiagnosticConfig) Severity(code string, sev Severity) Severity {
	if override, ok := c.Overrides[code]; ok {
		return override
	}
	return sev
}

// ShouldReport returns true if a diagnostic with the given code and
// severity should be reported under this configuration.
//
// The Level controls the threshold:
//   - Level 0 (Strict): report everything
//   - Level 3 (Quiet): report fatal, internal, error and sorry
//   - Level 4 (Normal): also report warnings
//   - Level 6 (Silent): report nothing
func (c DiagnosticConfig) ShouldReport(code string, sev Severity) bool {
	if slices.ContainsFunc(c.Ignore, func(pattern string) bool {
		return matchGlob(pattern, code)
	}) {
		return false
	}

	sev = c.Severity(code, sev)

	if c.Level >= StrictnessSilent {
		return false
	}
	if c.Level == StrictnessStrict {
		return true
	}
	return int(sev) <= int(c.Level)
}

// ShouldFail returns true if a diagnostic with the given severity should
// fail the run.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

// matchGlob performs simple glob matching with a leading or trailing *.
func matchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}
