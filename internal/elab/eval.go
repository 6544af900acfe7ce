package elab

import (
	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/scope"
)

// EvalConst folds e to a value when every leaf is a literal or a
// parameter. The second result is false when e is not constant. EvalConst
// reports nothing; callers decide whether a non-constant expression is
// an error.
func EvalConst(e ast.Expr, sc Scope) (bitvec.Vector, bool) {
	switch e := e.(type) {
	case *ast.Number:
		return e.Value, true
	case *ast.String:
		return bitvec.FromString(e.Value), true
	case *ast.Ident:
		return evalIdent(e, sc)
	case *ast.Unary:
		return evalUnary(e, sc)
	case *ast.Binary:
		return evalBinary(e, sc)
	case *ast.Ternary:
		cond, ok := EvalConst(e.Cond, sc)
		if !ok {
			return bitvec.Vector{}, false
		}
		switch bitvec.ReduceOr(cond) {
		case bitvec.B1:
			return EvalConst(e.Then, sc)
		case bitvec.B0:
			return EvalConst(e.Else, sc)
		}
		return bitvec.Vector{}, false
	case *ast.Concat:
		return evalConcat(e, sc)
	}
	return bitvec.Vector{}, false
}

func evalIdent(e *ast.Ident, sc Scope) (bitvec.Vector, bool) {
	sym := sc.Lookup(e.Path)
	if sym.Kind != scope.KindParameter {
		return bitvec.Vector{}, false
	}
	v := sym.Value
	if !e.HasSelect() {
		return v, true
	}
	msb, ok := evalIndex(e.Msb, sc)
	if !ok {
		return bitvec.Vector{}, false
	}
	lsb := msb
	if e.IsPartSelect() {
		if lsb, ok = evalIndex(e.Lsb, sc); !ok {
			return bitvec.Vector{}, false
		}
	}
	if lsb > msb {
		msb, lsb = lsb, msb
	}
	if lsb < 0 || msb >= v.Len() {
		return bitvec.Fill(bitvec.Bx, msb-lsb+1, true), true
	}
	bits := v.Bits()[lsb : msb+1]
	return bitvec.FromBits(bits, true), true
}

// evalIndex folds an index expression to a native integer.
func evalIndex(e ast.Expr, sc Scope) (int, bool) {
	v, ok := EvalConst(e, sc)
	if !ok || !v.IsDefined() {
		return 0, false
	}
	return int(v.Int64()), true
}

func evalUnary(e *ast.Unary, sc Scope) (bitvec.Vector, bool) {
	v, ok := EvalConst(e.Operand, sc)
	if !ok {
		return bitvec.Vector{}, false
	}
	switch e.Op {
	case ast.UnaryPlus:
		return v, true
	case ast.UnaryNeg:
		return bitvec.Neg(v), true
	case ast.UnaryNot:
		return bitvec.Not(v), true
	case ast.UnaryLogNot:
		return bitvec.FromBit(bitvec.LogicalNot(v)), true
	case ast.UnaryAnd:
		return bitvec.FromBit(bitvec.ReduceAnd(v)), true
	case ast.UnaryNand:
		return bitvec.FromBit(bitvec.ReduceNand(v)), true
	case ast.UnaryOr:
		return bitvec.FromBit(bitvec.ReduceOr(v)), true
	case ast.UnaryNor:
		return bitvec.FromBit(bitvec.ReduceNor(v)), true
	case ast.UnaryXor:
		return bitvec.FromBit(bitvec.ReduceXor(v)), true
	case ast.UnaryXnor:
		return bitvec.FromBit(bitvec.ReduceXnor(v)), true
	}
	return bitvec.Vector{}, false
}

var constBinary = map[ast.BinaryOp]func(a, b bitvec.Vector) bitvec.Vector{
	ast.BinAdd:      bitvec.Add,
	ast.BinSub:      bitvec.Sub,
	ast.BinMul:      bitvec.Mul,
	ast.BinDiv:      bitvec.Div,
	ast.BinMod:      bitvec.Mod,
	ast.BinAnd:      bitvec.And,
	ast.BinOr:       bitvec.Or,
	ast.BinXor:      bitvec.Xor,
	ast.BinNand:     bitvec.Nand,
	ast.BinNor:      bitvec.Nor,
	ast.BinXnor:     bitvec.Xnor,
	ast.BinShl:      bitvec.ShlBy,
	ast.BinArithShl: bitvec.ShlBy,
	ast.BinShr:      bitvec.ShrBy,
	ast.BinArithShr: bitvec.AshrBy,
}

var constRelational = map[ast.BinaryOp]func(a, b bitvec.Vector) bitvec.Bit{
	ast.BinEq:     bitvec.Eq,
	ast.BinNe:     bitvec.Ne,
	ast.BinCaseEq: bitvec.CaseEq,
	ast.BinCaseNe: bitvec.CaseNe,
	ast.BinLt:     bitvec.Less,
	ast.BinLe:     bitvec.LessEq,
	ast.BinGt:     bitvec.Greater,
	ast.BinGe:     bitvec.GreaterEq,
	ast.BinLogAnd: bitvec.LogicalAnd,
	ast.BinLogOr:  bitvec.LogicalOr,
}

func evalBinary(e *ast.Binary, sc Scope) (bitvec.Vector, bool) {
	a, ok := EvalConst(e.Left, sc)
	if !ok {
		return bitvec.Vector{}, false
	}
	b, ok := EvalConst(e.Right, sc)
	if !ok {
		return bitvec.Vector{}, false
	}
	if fn, ok := constBinary[e.Op]; ok {
		return fn(a, b), true
	}
	if fn, ok := constRelational[e.Op]; ok {
		return bitvec.FromBit(fn(a, b)), true
	}
	return bitvec.Vector{}, false
}

// evalConcat folds a concatenation. Every part must have a definite
// length and the repeat count must be a positive constant.
func evalConcat(e *ast.Concat, sc Scope) (bitvec.Vector, bool) {
	count := 1
	if e.Repeat != nil {
		v, ok := EvalConst(e.Repeat, sc)
		if !ok {
			return bitvec.Vector{}, false
		}
		if count, ok = repeatCount(v); !ok {
			return bitvec.Vector{}, false
		}
	}
	parts := make([]bitvec.Vector, len(e.Parts))
	for i, p := range e.Parts {
		v, ok := EvalConst(p, sc)
		if !ok || !v.HasLen() {
			return bitvec.Vector{}, false
		}
		parts[i] = v
	}
	return bitvec.Repeat(bitvec.Concat(parts...), count), true
}

// MaxRepeat is the largest replication count a concatenation may use.
const MaxRepeat = 1 << 16

// repeatCount converts a folded repeat value to a replication count. The
// value must be defined, not negative when signed, and in [1, MaxRepeat].
func repeatCount(v bitvec.Vector) (int, bool) {
	if !v.IsDefined() || v.Len() == 0 {
		return 0, false
	}
	if v.Signed() && v.MSB() == bitvec.B1 {
		return 0, false
	}
	if bitvec.Greater(v.WithSigned(false), bitvec.FromUint(MaxRepeat, 64)) != bitvec.B0 {
		return 0, false
	}
	n := int(v.Uint64())
	return n, n > 0
}
