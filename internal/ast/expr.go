package ast

import (
	"strings"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/types"
)

// Expr is an expression. The set of implementations is closed; code that
// switches over expression kinds handles exactly the types in this file.
type Expr interface {
	ExprSpan() types.Span
	expr()
}

// Ident references a declared name, optionally with a bit-select
// (Msb set, Lsb nil) or a part-select (both set). For memories the
// bit-select expression is the word address.
type Ident struct {
	Path []string
	Msb  Expr
	Lsb  Expr
	Span types.Span
}

// Name returns the hierarchical path joined with dots.
func (e *Ident) Name() string { return strings.Join(e.Path, ".") }

// HasSelect reports whether the reference carries an index.
func (e *Ident) HasSelect() bool { return e.Msb != nil }

// IsPartSelect reports whether the reference is a [msb:lsb] select.
func (e *Ident) IsPartSelect() bool { return e.Msb != nil && e.Lsb != nil }

func (e *Ident) ExprSpan() types.Span { return e.Span }
func (*Ident) expr()                  {}

// Number is a numeric literal. Text is the literal as written.
type Number struct {
	Value bitvec.Vector
	Text  string
	Span  types.Span
}

func (e *Number) ExprSpan() types.Span { return e.Span }
func (*Number) expr()                  {}

// String is a string literal with escapes resolved.
type String struct {
	Value string
	Span  types.Span
}

func (e *String) ExprSpan() types.Span { return e.Span }
func (*String) expr()                  {}

// Unary is a prefix operator applied to one operand.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Span    types.Span
}

func (e *Unary) ExprSpan() types.Span { return e.Span }
func (*Unary) expr()                  {}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Span  types.Span
}

func (e *Binary) ExprSpan() types.Span { return e.Span }
func (*Binary) expr()                  {}

// Ternary is cond ? Then : Else.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
	Span types.Span
}

func (e *Ternary) ExprSpan() types.Span { return e.Span }
func (*Ternary) expr()                  {}

// Concat is {a, b, ...} or, with Repeat set, {n{a, b, ...}}.
type Concat struct {
	Repeat Expr
	Parts  []Expr
	Span   types.Span
}

func (e *Concat) ExprSpan() types.Span { return e.Span }
func (*Concat) expr()                  {}

// Call is a function call.
type Call struct {
	Path []string
	Args []Expr
	Span types.Span
}

// Name returns the hierarchical path joined with dots.
func (e *Call) Name() string { return strings.Join(e.Path, ".") }

func (e *Call) ExprSpan() types.Span { return e.Span }
func (*Call) expr()                  {}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryNeg
	UnaryNot    // ~
	UnaryLogNot // !
	UnaryAnd    // &
	UnaryNand   // ~&
	UnaryOr     // |
	UnaryNor    // ~|
	UnaryXor    // ^
	UnaryXnor   // ~^
)

var unaryOpNames = [...]string{"+", "-", "~", "!", "&", "~&", "|", "~|", "^", "~^"}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

// BinaryOp identifies an infix operator.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinXor
	BinNand
	BinNor
	BinXnor
	BinLogAnd
	BinLogOr
	BinEq
	BinNe
	BinCaseEq
	BinCaseNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinShl
	BinShr
	BinArithShl
	BinArithShr
)

var binaryOpNames = [...]string{
	"+", "-", "*", "/", "%", "&", "|", "^", "~&", "~|", "~^", "&&", "||",
	"==", "!=", "===", "!==", "<", "<=", ">", ">=", "<<", ">>", "<<<", ">>>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsRelational reports whether op yields a single truth bit from two
// self-determined operands.
func (op BinaryOp) IsRelational() bool {
	return op >= BinEq && op <= BinGe
}

// IsBitwise reports whether op combines operands bit by bit.
func (op BinaryOp) IsBitwise() bool {
	return op >= BinAnd && op <= BinXnor
}
