package types

// Diagnostic codes emitted by the front-end, elaboration and check phases.
// Centralizing these prevents silent breakage from typos in string literals.

// Parser diagnostic codes.
const (
	DiagParseError     = "parse-error"
	DiagInvalidNumber  = "invalid-number"
	DiagUnterminated   = "unterminated"
	DiagUnexpectedChar = "unexpected-character"
)

// Expression lowering diagnostic codes.
const (
	DiagInternalUnsupported = "internal-unsupported"
	DiagNotConstant         = "not-constant"
	DiagRepeatNotConstant   = "repeat-not-constant"
	DiagRepeatZero          = "repeat-zero"
	DiagRepeatLvalue        = "repeat-lvalue"
	DiagConcatOperand       = "concat-operand"
	DiagUnsizedInConcat     = "unsized-in-concat"
	DiagIndexOutOfRange     = "index-out-of-range"
	DiagPartSelectRange     = "part-select-range"
	DiagPartSelectReversed  = "part-select-reversed"
	DiagMemoryNeedsIndex    = "memory-needs-index"
	DiagNotNetLike          = "not-net-like"
	DiagInputAssigned       = "input-assigned"
	DiagUnknownIdentifier   = "unknown-identifier"
	DiagImplicitNet         = "implicit-net"
	DiagRealInNet           = "real-in-net"
	DiagEventInExpr         = "event-in-expression"
	DiagUnknownFunction     = "unknown-function"
	DiagFunctionArity       = "function-arity"
	DiagNotAPort            = "not-a-port"
	DiagWidthMismatch       = "width-mismatch"
	DiagUnknownStrength     = "unknown-strength"
	DiagUnsupportedShift    = "unsupported-shift"
)

// Module driver diagnostic codes.
const (
	DiagParamNotConstant    = "param-not-constant"
	DiagRangeNotConstant    = "range-not-constant"
	DiagDuplicateDecl       = "duplicate-declaration"
	DiagPortUndeclared      = "port-undeclared"
	DiagPortNotInList       = "port-not-in-list"
	DiagTopNotFound         = "top-not-found"
	DiagDuplicateModuleName = "duplicate-module"
)

// Structural check diagnostic codes.
const (
	DiagCombinationalLoop = "combinational-loop"
	DiagMultipleDrivers   = "multiple-drivers"
	DiagUndrivenInput     = "undriven-input"
)

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo struct {
	Code  string
	Phase string
}

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Parser
		{Code: DiagParseError, Phase: "parser"},
		{Code: DiagInvalidNumber, Phase: "parser"},
		{Code: DiagUnterminated, Phase: "parser"},
		{Code: DiagUnexpectedChar, Phase: "parser"},
		// Expression lowering
		{Code: DiagInternalUnsupported, Phase: "elab"},
		{Code: DiagNotConstant, Phase: "elab"},
		{Code: DiagRepeatNotConstant, Phase: "elab"},
		{Code: DiagRepeatZero, Phase: "elab"},
		{Code: DiagRepeatLvalue, Phase: "elab"},
		{Code: DiagConcatOperand, Phase: "elab"},
		{Code: DiagUnsizedInConcat, Phase: "elab"},
		{Code: DiagIndexOutOfRange, Phase: "elab"},
		{Code: DiagPartSelectRange, Phase: "elab"},
		{Code: DiagPartSelectReversed, Phase: "elab"},
		{Code: DiagMemoryNeedsIndex, Phase: "elab"},
		{Code: DiagNotNetLike, Phase: "elab"},
		{Code: DiagInputAssigned, Phase: "elab"},
		{Code: DiagUnknownIdentifier, Phase: "elab"},
		{Code: DiagImplicitNet, Phase: "elab"},
		{Code: DiagRealInNet, Phase: "elab"},
		{Code: DiagEventInExpr, Phase: "elab"},
		{Code: DiagUnknownFunction, Phase: "elab"},
		{Code: DiagFunctionArity, Phase: "elab"},
		{Code: DiagNotAPort, Phase: "elab"},
		{Code: DiagWidthMismatch, Phase: "elab"},
		{Code: DiagUnknownStrength, Phase: "elab"},
		{Code: DiagUnsupportedShift, Phase: "elab"},
		// Module driver
		{Code: DiagParamNotConstant, Phase: "module"},
		{Code: DiagRangeNotConstant, Phase: "module"},
		{Code: DiagDuplicateDecl, Phase: "module"},
		{Code: DiagPortUndeclared, Phase: "module"},
		{Code: DiagPortNotInList, Phase: "module"},
		{Code: DiagTopNotFound, Phase: "module"},
		{Code: DiagDuplicateModuleName, Phase: "module"},
		// Structural checks
		{Code: DiagCombinationalLoop, Phase: "check"},
		{Code: DiagMultipleDrivers, Phase: "check"},
		{Code: DiagUndrivenInput, Phase: "check"},
	}
}
