package netlist

import (
	"fmt"
	"strings"
)

// Severity levels for diagnostics. Lower values are more severe.
type Severity int

const (
	SeverityFatal    Severity = 0 // Cannot continue
	SeverityInternal Severity = 1 // Lowering engine reached a case it does not handle
	SeverityError    Severity = 2 // Design is wrong, elaboration continued
	SeveritySorry    Severity = 3 // Valid construct that is not supported
	SeverityWarning  Severity = 4 // Suspicious but legal
	SeverityInfo     Severity = 5 // Informational notice
)

var severityNames = [...]string{"fatal", "internal", "error", "sorry", "warning", "info"}

func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", s)
}

// IsError reports whether diagnostics of this severity count as errors.
func (s Severity) IsError() bool {
	return s <= SeveritySorry
}

// ParseSeverity accepts a severity name or its number.
func ParseSeverity(s string) (Severity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range severityNames {
		if s == name || s == fmt.Sprint(i) {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// StrictnessLevel defines preset reporting thresholds.
type StrictnessLevel int

const (
	StrictnessStrict StrictnessLevel = 0 // Report everything
	StrictnessQuiet  StrictnessLevel = 3 // Report errors only
	StrictnessNormal StrictnessLevel = 4 // Report errors and warnings
	StrictnessSilent StrictnessLevel = 6 // Report nothing
)

func (l StrictnessLevel) String() string {
	switch l {
	case StrictnessStrict:
		return "strict"
	case StrictnessQuiet:
		return "quiet"
	case StrictnessNormal:
		return "normal"
	case StrictnessSilent:
		return "silent"
	default:
		return fmt.Sprintf("StrictnessLevel(%d)", l)
	}
}

// ParseStrictness accepts a strictness level name.
func ParseStrictness(s string) (StrictnessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return StrictnessStrict, nil
	case "quiet":
		return StrictnessQuiet, nil
	case "normal", "":
		return StrictnessNormal, nil
	case "silent":
		return StrictnessSilent, nil
	}
	return 0, fmt.Errorf("unknown strictness level %q", s)
}

// Dir is the direction of a pin relative to its owner.
type Dir uint8

const (
	DirPassive Dir = iota
	DirInput
	DirOutput
)

func (d Dir) String() string {
	switch d {
	case DirPassive:
		return "passive"
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	default:
		return fmt.Sprintf("Dir(%d)", d)
	}
}

// Strength is a drive strength for output pins.
type Strength uint8

const (
	StrengthHighZ Strength = iota
	StrengthWeak
	StrengthPull
	StrengthStrong
	StrengthSupply
)

var strengthNames = [...]string{"highz", "weak", "pull", "strong", "supply"}

func (s Strength) String() string {
	if int(s) < len(strengthNames) {
		return strengthNames[s]
	}
	return fmt.Sprintf("Strength(%d)", s)
}

// ParseStrength accepts a strength keyword such as "pull" or "strong0".
// A trailing 0 or 1 is ignored.
func ParseStrength(s string) (Strength, bool) {
	s = strings.TrimRight(strings.ToLower(s), "01")
	for i, name := range strengthNames {
		if s == name {
			return Strength(i), true
		}
	}
	return 0, false
}

// Drive holds the strengths an output drives for 0 and for 1.
type Drive struct {
	Zero Strength
	One  Strength
}

// DefaultDrive is strong in both directions.
var DefaultDrive = Drive{Zero: StrengthStrong, One: StrengthStrong}

func (d Drive) String() string {
	return d.Zero.String() + "0," + d.One.String() + "1"
}

// Delays are the rise, fall and decay (turn-off) delays of a device.
type Delays struct {
	Rise  uint64 `json:"rise"`
	Fall  uint64 `json:"fall"`
	Decay uint64 `json:"decay"`
}

// IsZero reports whether every delay is zero.
func (d Delays) IsZero() bool {
	return d.Rise == 0 && d.Fall == 0 && d.Decay == 0
}

// SignalKind identifies how a signal was declared.
type SignalKind uint8

const (
	SignalWire SignalKind = iota
	SignalReg
	SignalImplicit
	SignalTri
	SignalSupply0
	SignalSupply1
)

var signalKindNames = [...]string{"wire", "reg", "implicit", "tri", "supply0", "supply1"}

func (k SignalKind) String() string {
	if int(k) < len(signalKindNames) {
		return signalKindNames[k]
	}
	return fmt.Sprintf("SignalKind(%d)", k)
}

// PortType identifies whether a signal is a module port.
type PortType uint8

const (
	NotAPort PortType = iota
	PortInput
	PortOutput
	PortInout
	PortImplicit
)

var portTypeNames = [...]string{"", "input", "output", "inout", "implicit"}

func (p PortType) String() string {
	if int(p) < len(portTypeNames) {
		return portTypeNames[p]
	}
	return fmt.Sprintf("PortType(%d)", p)
}

// DeviceKind identifies the structural function of a device.
type DeviceKind uint8

const (
	DeviceLogic DeviceKind = iota
	DeviceAddSub
	DeviceCompare
	DeviceMult
	DeviceDivide
	DeviceModulo
	DeviceShift
	DeviceConst
	DeviceMux
	DeviceBufZ
	DeviceCaseCmp
	DeviceRAMPort
	DeviceUserFunc
)

var deviceKindNames = [...]string{
	"logic", "addsub", "compare", "mult", "divide", "modulo", "shift",
	"const", "mux", "bufz", "casecmp", "ramport", "userfunc",
}

func (k DeviceKind) String() string {
	if int(k) < len(deviceKindNames) {
		return deviceKindNames[k]
	}
	return fmt.Sprintf("DeviceKind(%d)", k)
}

// LogicOp is the function of a logic gate.
type LogicOp uint8

const (
	LogicAnd LogicOp = iota
	LogicNand
	LogicOr
	LogicNor
	LogicXor
	LogicXnor
	LogicBuf
	LogicNot
)

var logicOpNames = [...]string{"and", "nand", "or", "nor", "xor", "xnor", "buf", "not"}

func (o LogicOp) String() string {
	if int(o) < len(logicOpNames) {
		return logicOpNames[o]
	}
	return fmt.Sprintf("LogicOp(%d)", o)
}
