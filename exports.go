// Package netelab elaborates Verilog modules into structural netlists.
//
// Each module of each source file becomes one Design: a graph of
// signals, primitive devices and junctions built from the module's
// declarations and continuous assignments. Problems in the source are
// collected as diagnostics, never returned as Go errors.
package netelab

import (
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// Type aliases for the public API. The model lives in the netlist package.

// Design is the netlist of one elaborated module.
type Design = netlist.Design

// Signal is a named or temporary vector of pins.
type Signal = netlist.Signal

// Device is a primitive node of a design.
type Device = netlist.Device

// DeviceKind identifies what a device computes.
type DeviceKind = netlist.DeviceKind

// Document is the JSON interchange form of a design.
type Document = netlist.Document

// Severity for diagnostics.
type Severity = netlist.Severity

// Diagnostic represents a parse or elaboration issue.
type Diagnostic = netlist.Diagnostic

// DiagnosticConfig controls strictness and diagnostic filtering.
type DiagnosticConfig = netlist.DiagnosticConfig

// StrictnessLevel defines preset reporting thresholds.
type StrictnessLevel = netlist.StrictnessLevel

// ImplicitPolicy controls what happens when an undeclared name is used
// where a net may be implied.
type ImplicitPolicy = scope.ImplicitPolicy

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo = types.DiagCodeInfo

// Severity constants.
const (
	SeverityFatal    = netlist.SeverityFatal
	SeverityInternal = netlist.SeverityInternal
	SeverityError    = netlist.SeverityError
	SeveritySorry    = netlist.SeveritySorry
	SeverityWarning  = netlist.SeverityWarning
	SeverityInfo     = netlist.SeverityInfo
)

// Strictness levels.
const (
	StrictnessStrict = netlist.StrictnessStrict
	StrictnessQuiet  = netlist.StrictnessQuiet
	StrictnessNormal = netlist.StrictnessNormal
	StrictnessSilent = netlist.StrictnessSilent
)

// Implicit net policies.
const (
	ImplicitOff   = scope.ImplicitOff
	ImplicitWarn  = scope.ImplicitWarn
	ImplicitError = scope.ImplicitError
)

// DefaultDiagnosticConfig reports errors and warnings and fails on errors.
func DefaultDiagnosticConfig() DiagnosticConfig { return netlist.DefaultConfig() }

// StrictDiagnosticConfig reports everything and fails on warnings.
func StrictDiagnosticConfig() DiagnosticConfig { return netlist.StrictConfig() }

// QuietDiagnosticConfig reports errors only.
func QuietDiagnosticConfig() DiagnosticConfig { return netlist.QuietConfig() }

// ParseSeverity accepts a severity name or its number.
func ParseSeverity(s string) (Severity, error) { return netlist.ParseSeverity(s) }

// ParseStrictness accepts a strictness level name.
func ParseStrictness(s string) (StrictnessLevel, error) { return netlist.ParseStrictness(s) }

// ParseImplicitPolicy accepts "off", "warn" or "error".
func ParseImplicitPolicy(s string) (ImplicitPolicy, error) { return scope.ParseImplicitPolicy(s) }

// DiagnosticCodes returns every diagnostic code grouped by phase.
func DiagnosticCodes() []DiagCodeInfo { return types.AllDiagnosticCodes() }
