package elab

import (
	"log/slog"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// net lowers e. Every expression kind is handled here; the default case
// only triggers if a new kind is added to the syntax tree without a
// lowering.
func (l lowering) net(e ast.Expr, width int, delays netlist.Delays, drive netlist.Drive) *netlist.Signal {
	if l.TraceEnabled() {
		l.Trace("lower", slog.String("expr", exprKind(e)), slog.Int("width", width), slog.Bool("self", l.self))
	}
	switch e := e.(type) {
	case *ast.Binary:
		return l.binary(e, width, delays)
	case *ast.Unary:
		return l.unary(e, width, delays, drive)
	case *ast.Ternary:
		return l.ternary(e, width, delays, drive)
	case *ast.Concat:
		return l.concat(e, delays)
	case *ast.Ident:
		return l.ident(e)
	case *ast.Number:
		return l.number(e, width, drive)
	case *ast.String:
		return l.str(e, width, drive)
	case *ast.Call:
		return l.call(e, delays)
	case nil:
		l.unsupported(types.Synthetic, "missing expression")
		return nil
	}
	l.unsupported(e.ExprSpan(), "unable to elaborate %s as gates", exprKind(e))
	return nil
}

func exprKind(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Binary:
		return "binary " + e.Op.String()
	case *ast.Unary:
		return "unary " + e.Op.String()
	case *ast.Ternary:
		return "ternary"
	case *ast.Concat:
		return "concatenation"
	case *ast.Ident:
		return "identifier " + e.Name()
	case *ast.Number:
		return "number " + e.Text
	case *ast.String:
		return "string"
	case *ast.Call:
		return "call " + e.Name()
	}
	return "expression"
}

// constSignal creates a constant driver for value and returns a wire
// connected to it.
func (l lowering) constSignal(value bitvec.Vector, drive netlist.Drive) *netlist.Signal {
	dev := l.design.NewConst(l.name(), value)
	l.design.SetDrive(dev, drive)
	sig := l.temp(value.Len())
	sig.Kind = netlist.SignalImplicit
	l.design.ConnectBus(sig.Pins(), dev.Group(netlist.GroupO))
	return sig
}

// tieZero drives every pin in pins with constant 0.
func (l lowering) tieZero(pins []netlist.PinID) {
	if len(pins) == 0 {
		return
	}
	dev := l.design.NewConst(l.name(), bitvec.Fill(bitvec.B0, len(pins), true))
	l.design.ConnectBus(pins, dev.Group(netlist.GroupO))
}

// fillZero drives the bits of sig from index from upward with 0.
func (l lowering) fillZero(sig *netlist.Signal, from int) {
	if from < sig.Width() {
		l.tieZero(sig.Pins()[from:])
	}
}

// pad returns sig zero-extended to width, or sig itself when it is
// already at least that wide.
func (l lowering) pad(sig *netlist.Signal, width int) *netlist.Signal {
	if sig.Width() >= width {
		return sig
	}
	out := l.temp(width)
	l.design.ConnectBus(out.Pins(), sig.Pins())
	l.fillZero(out, sig.Width())
	return out
}

// truth reduces sig to one bit that is 1 when any bit of sig is 1.
func (l lowering) truth(sig *netlist.Signal) *netlist.Signal {
	if sig.Width() == 1 {
		return sig
	}
	gate := l.logic(netlist.LogicOr, sig.Width(), netlist.Delays{})
	l.design.ConnectBus(gate.Group(netlist.GroupI), sig.Pins())
	out := l.temp(1)
	out.Kind = netlist.SignalImplicit
	l.design.Connect(out.Pin(0), gate.Pin(netlist.GroupO, 0))
	return out
}

// reduce feeds every bit of sig into one gate and returns its output.
func (l lowering) reduce(op netlist.LogicOp, sig *netlist.Signal, delays netlist.Delays) *netlist.Signal {
	gate := l.logic(op, sig.Width(), delays)
	l.design.ConnectBus(gate.Group(netlist.GroupI), sig.Pins())
	out := l.temp(1)
	l.design.Connect(out.Pin(0), gate.Pin(netlist.GroupO, 0))
	return out
}

// number lowers a literal. A width from the caller wins; otherwise a
// sized literal keeps its size and an unsized non-negative one shrinks
// to the bits its value needs.
func (l lowering) number(e *ast.Number, width int, drive netlist.Drive) *netlist.Signal {
	v := e.Value
	if width > 0 {
		fill := bitvec.B0
		if v.Len() > 0 {
			if top := v.MSB(); top == bitvec.Bx || top == bitvec.Bz {
				fill = top
			}
		}
		bits := bitvec.Fill(fill, width, true).Bits()
		for i := 0; i < width && i < v.Len(); i++ {
			bits[i] = v.Get(i)
		}
		return l.constSignal(bitvec.FromBits(bits, true), drive)
	}
	if v.HasLen() {
		sig := l.constSignal(v, drive)
		sig.Signed = v.Signed()
		return sig
	}

	if l.self {
		l.errorf(types.DiagUnsizedInConcat, e.Span, "no idea how wide to make the unsized constant %s", e.Text)
	}

	if v.Len() > 0 && (!v.Signed() || v.MSB() == bitvec.B0) {
		v = bitvec.Trim(v)
	}
	sig := l.constSignal(v.WithHasLen(true), drive)
	sig.Signed = v.Signed()
	return sig
}

// str lowers a string literal, eight bits per character with the last
// character in the low byte.
func (l lowering) str(e *ast.String, width int, drive netlist.Drive) *netlist.Signal {
	v := bitvec.FromString(e.Value)
	if width == 0 {
		width = max(v.Len(), 8)
	}
	return l.constSignal(bitvec.Resize(v, width), drive)
}

// concat lowers {a, b, ...}. The last part lands in the low bits.
func (l lowering) concat(e *ast.Concat, delays netlist.Delays) *netlist.Signal {
	repeat := 1
	if e.Repeat != nil {
		v, ok := EvalConst(e.Repeat, l.sc)
		if !ok || !v.IsDefined() {
			l.errorf(types.DiagRepeatNotConstant, e.Repeat.ExprSpan(), "unable to evaluate constant repeat expression")
			return nil
		}
		n, ok := repeatCount(v)
		if !ok {
			l.errorf(types.DiagRepeatZero, e.Repeat.ExprSpan(), "invalid repeat value %s (must be 1 to %d)", v, MaxRepeat)
			return nil
		}
		repeat = n
	}

	inner := l.selfDetermined()
	parts := make([]*netlist.Signal, len(e.Parts))
	failed := false
	width := 0
	for i, p := range e.Parts {
		if p == nil {
			l.errorf(types.DiagConcatOperand, e.Span, "empty expressions not allowed in concatenations")
			failed = true
			continue
		}
		if num, ok := p.(*ast.Number); ok && !num.Value.HasLen() {
			l.errorf(types.DiagUnsizedInConcat, num.Span, "number %s with indefinite size in concatenation", num.Text)
			failed = true
			continue
		}
		parts[i] = inner.net(p, 0, delays, netlist.DefaultDrive)
		if parts[i] == nil {
			failed = true
			continue
		}
		width += parts[i].Width()
	}
	if failed {
		for _, s := range parts {
			l.design.Discard(s)
		}
		l.design.CountError()
		return nil
	}

	out := l.temp(width * repeat)
	out.Kind = netlist.SignalImplicit
	pin := 0
	for range repeat {
		for i := len(parts) - 1; i >= 0; i-- {
			for _, p := range parts[i].Pins() {
				l.design.Connect(out.Pin(pin), p)
				pin++
			}
		}
	}
	return out
}

// ternary lowers cond ? a : b as a two-input mux.
func (l lowering) ternary(e *ast.Ternary, width int, delays netlist.Delays, drive netlist.Drive) *netlist.Signal {
	cond := l.net(e.Cond, 0, netlist.Delays{}, netlist.DefaultDrive)
	tru := l.net(e.Then, width, netlist.Delays{}, netlist.DefaultDrive)
	fal := l.net(e.Else, width, netlist.Delays{}, netlist.DefaultDrive)
	if cond == nil || tru == nil || fal == nil {
		l.design.CountError()
		return nil
	}

	iwidth := max(tru.Width(), fal.Width())
	if width == 0 {
		width = iwidth
	}
	sel := l.truth(cond)
	dwidth := min(iwidth, width)

	out := l.temp(width)
	fal = l.pad(fal, dwidth)
	tru = l.pad(tru, dwidth)

	mux := l.design.NewMux(l.name(), dwidth, 2, 1)
	l.design.Connect(mux.Pin(netlist.GroupSel, 0), sel.Pin(0))
	l.design.ConnectBus(mux.Group(netlist.DataGroup(0)), fal.Pins())
	l.design.ConnectBus(mux.Group(netlist.DataGroup(1)), tru.Pins())

	result := mux.Group(netlist.GroupResult)
	if delays.IsZero() {
		l.design.ConnectBus(out.Pins(), result)
	} else {
		tmp := l.temp(dwidth)
		for i := range dwidth {
			buf := l.design.NewBufZ(l.name())
			buf.Delays = delays
			l.design.SetDrive(buf, drive)
			l.design.Connect(result[i], tmp.Pin(i))
			l.design.Connect(tmp.Pin(i), buf.Pin(netlist.GroupI, 0))
			l.design.Connect(out.Pin(i), buf.Pin(netlist.GroupO, 0))
		}
	}
	l.fillZero(out, dwidth)
	return out
}

var reductionOps = map[ast.UnaryOp]netlist.LogicOp{
	ast.UnaryLogNot: netlist.LogicNor,
	ast.UnaryNor:    netlist.LogicNor,
	ast.UnaryAnd:    netlist.LogicAnd,
	ast.UnaryNand:   netlist.LogicNand,
	ast.UnaryOr:     netlist.LogicOr,
	ast.UnaryXor:    netlist.LogicXor,
	ast.UnaryXnor:   netlist.LogicXnor,
}

func (l lowering) unary(e *ast.Unary, width int, delays netlist.Delays, drive netlist.Drive) *netlist.Signal {
	switch e.Op {
	case ast.UnaryPlus:
		return l.net(e.Operand, width, delays, drive)
	case ast.UnaryNeg:
		if v, ok := EvalConst(e.Operand, l.sc); ok {
			if width == 0 {
				width = v.Len()
			}
			neg := bitvec.Sub(bitvec.FromUint(0, width), bitvec.Resize(v, width))
			return l.constSignal(bitvec.Resize(neg.WithSigned(false), width), drive)
		}
	}

	owidth := 0
	if e.Op == ast.UnaryNot || e.Op == ast.UnaryNeg {
		owidth = width
	}
	sub := l.net(e.Operand, owidth, netlist.Delays{}, netlist.DefaultDrive)
	if sub == nil {
		l.design.CountError()
		return nil
	}

	if op, ok := reductionOps[e.Op]; ok {
		return l.reduce(op, sub, delays)
	}
	switch e.Op {
	case ast.UnaryNot:
		out := l.temp(sub.Width())
		for i, p := range sub.Pins() {
			gate := l.logic(netlist.LogicNot, 1, delays)
			l.design.Connect(gate.Pin(netlist.GroupI, 0), p)
			l.design.Connect(gate.Pin(netlist.GroupO, 0), out.Pin(i))
		}
		return out
	case ast.UnaryNeg:
		return l.negate(sub, owidth, delays)
	}
	l.unsupported(e.Span, "unhandled unary operator %s", e.Op)
	return nil
}

// negate builds the two's complement of sig. One and two bit operands
// use gates; wider ones subtract from a zero constant.
func (l lowering) negate(sig *netlist.Signal, width int, delays netlist.Delays) *netlist.Signal {
	if width == 0 {
		width = sig.Width()
	}
	out := l.temp(width)
	sig = l.pad(sig, width)

	switch width {
	case 1:
		buf := l.logic(netlist.LogicBuf, 1, delays)
		l.design.Connect(buf.Pin(netlist.GroupO, 0), out.Pin(0))
		l.design.Connect(buf.Pin(netlist.GroupI, 0), sig.Pin(0))
	case 2:
		buf := l.logic(netlist.LogicBuf, 1, delays)
		l.design.Connect(buf.Pin(netlist.GroupO, 0), out.Pin(0))
		l.design.Connect(buf.Pin(netlist.GroupI, 0), sig.Pin(0))
		xor := l.logic(netlist.LogicXor, 2, delays)
		l.design.Connect(xor.Pin(netlist.GroupO, 0), out.Pin(1))
		l.design.Connect(xor.Pin(netlist.GroupI, 0), sig.Pin(0))
		l.design.Connect(xor.Pin(netlist.GroupI, 1), sig.Pin(1))
	default:
		sub := l.design.NewAddSub(l.name(), width, true)
		sub.Delays = delays
		l.design.ConnectBus(out.Pins(), sub.Group(netlist.GroupResult))
		l.design.ConnectBus(sub.Group(netlist.GroupDataB), sig.Pins())
		zero := l.constSignal(bitvec.FromUint(0, width), netlist.DefaultDrive)
		l.design.ConnectBus(sub.Group(netlist.GroupDataA), zero.Pins())
	}
	return out
}

// call lowers a function call into a UserFunc device. Each argument is
// lowered at the width of its port.
func (l lowering) call(e *ast.Call, delays netlist.Delays) *netlist.Signal {
	fn := l.sc.Function(e.Path)
	if fn == nil {
		l.errorf(types.DiagUnknownFunction, e.Span, "no function %s in this context (%s)", e.Name(), l.sc.Name())
		return nil
	}
	inputs := fn.Inputs()
	if len(e.Args) != len(inputs) {
		l.errorf(types.DiagFunctionArity, e.Span, "function %s takes %d arguments, %d given", e.Name(), len(inputs), len(e.Args))
		return nil
	}

	args := make([]*netlist.Signal, len(inputs))
	failed := false
	for i, port := range inputs {
		args[i] = l.net(e.Args[i], port.Width(), netlist.Delays{}, netlist.DefaultDrive)
		if args[i] == nil {
			failed = true
		}
	}
	if failed {
		return nil
	}

	dev := l.design.NewUserFunc(l.name(), fn)
	dev.Delays = delays
	out := l.temp(fn.Return().Width())
	l.design.ConnectBus(out.Pins(), dev.Group(netlist.GroupRet))
	for i, port := range inputs {
		arg := l.pad(args[i], port.Width())
		l.design.ConnectBus(dev.Group(netlist.ArgGroup(i+1)), arg.Pins())
	}
	return out
}
