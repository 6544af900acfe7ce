// Package ast provides syntax tree types for parsed HDL modules.
package ast

import (
	"slices"

	"github.com/golangsnmp/netelab/internal/types"
)

// Name is a declared identifier with source location.
type Name struct {
	Text string
	Span types.Span
}

// NewName creates a new name.
func NewName(text string, span types.Span) Name {
	return Name{Text: text, Span: span}
}

// File is the result of parsing one source buffer.
type File struct {
	Modules     []*Module
	Diagnostics []types.SpanDiagnostic
}

// HasErrors reports whether any diagnostic has error severity or worse.
func (f *File) HasErrors() bool {
	return slices.ContainsFunc(f.Diagnostics, func(d types.SpanDiagnostic) bool {
		return d.Severity <= types.SeverityError
	})
}

// Module is one module declaration.
type Module struct {
	Name      Name
	Ports     []Name
	Params    []Param
	Decls     []Decl
	Memories  []Memory
	Reals     []Name
	Events    []Name
	Assigns   []Assign
	Functions []Function
	Span      types.Span
}

// NewModule creates an empty module.
func NewModule(name Name, span types.Span) *Module {
	return &Module{Name: name, Span: span}
}

// Direction is the direction of a port declaration.
type Direction int

const (
	DirNone Direction = iota
	DirInput
	DirOutput
	DirInout
)

func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirInout:
		return "inout"
	}
	return "none"
}

// NetKind is the declared kind of a signal.
type NetKind int

const (
	// NetDefault is a port declaration with no net type.
	NetDefault NetKind = iota
	NetWire
	NetReg
	NetTri
	NetSupply0
	NetSupply1
)

// Range is a [Msb:Lsb] range.
type Range struct {
	Msb  Expr
	Lsb  Expr
	Span types.Span
}

// Decl declares one signal. A name may be declared twice, once with a
// direction and once with a net type; the driver merges the two.
type Decl struct {
	Name   Name
	Dir    Direction
	Kind   NetKind
	Signed bool
	Range  *Range
	Init   Expr
	Span   types.Span
}

// Memory declares reg [Width] Name [Words].
type Memory struct {
	Name   Name
	Signed bool
	Width  *Range
	Words  Range
	Span   types.Span
}

// Param is a parameter or localparam. A declared range sizes the value.
type Param struct {
	Name   Name
	Value  Expr
	Signed bool
	Range  *Range
	Local  bool
	Span   types.Span
}

// Assign is one continuous assignment. Strengths holds the strength
// names as written, e.g. "strong0", "weak1". Delays holds up to three
// rise, fall and decay expressions.
type Assign struct {
	Target    Expr
	Value     Expr
	Strengths []Name
	Delays    []Expr
	Span      types.Span
}

// Function declares a function. The body is not kept.
type Function struct {
	Name   Name
	Signed bool
	Range  *Range
	Inputs []Decl
	Span   types.Span
}
