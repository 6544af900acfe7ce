package elab

import (
	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

func (l lowering) binary(e *ast.Binary, width int, delays netlist.Delays) *netlist.Signal {
	switch {
	case e.Op == ast.BinMul:
		return l.mul(e, width, delays)
	case e.Op == ast.BinDiv:
		return l.div(e, width, delays)
	case e.Op == ast.BinMod:
		return l.mod(e, width, delays)
	case e.Op == ast.BinAdd, e.Op == ast.BinSub:
		return l.add(e, width, delays)
	case e.Op.IsBitwise():
		return l.bitwise(e, width, delays)
	case e.Op.IsRelational():
		return l.compare(e, delays)
	case e.Op == ast.BinLogAnd, e.Op == ast.BinLogOr:
		return l.logical(e, delays)
	case e.Op == ast.BinShl, e.Op == ast.BinArithShl, e.Op == ast.BinShr, e.Op == ast.BinArithShr:
		return l.shift(e, width, delays)
	}
	l.unsupported(e.Span, "unsupported combinational operator %s", e.Op)
	return nil
}

// operands lowers both sides at width. Both are always attempted so that
// errors in the right operand are reported even when the left fails.
func (l lowering) operands(e *ast.Binary, width int) (a, b *netlist.Signal, ok bool) {
	a = l.net(e.Left, width, netlist.Delays{}, netlist.DefaultDrive)
	b = l.net(e.Right, width, netlist.Delays{}, netlist.DefaultDrive)
	return a, b, a != nil && b != nil
}

// add lowers + and - into an AddSub device as wide as the wider operand.
// When the caller wants more bits, an adder routes its carry out into
// the extra top bit.
func (l lowering) add(e *ast.Binary, lwidth int, delays netlist.Delays) *netlist.Signal {
	a, b, ok := l.operands(e, lwidth)
	if !ok {
		return nil
	}

	width := max(a.Width(), b.Width())
	owidth := width
	if lwidth > owidth {
		owidth = lwidth
		if e.Op == ast.BinAdd {
			width = lwidth - 1
		} else {
			width = lwidth
		}
	}
	a = l.pad(a, width)
	b = l.pad(b, width)

	out := l.temp(owidth)
	dev := l.design.NewAddSub(l.name(), width, e.Op == ast.BinSub)
	dev.Delays = delays
	l.design.ConnectBus(a.Pins(), dev.Group(netlist.GroupDataA))
	l.design.ConnectBus(b.Pins(), dev.Group(netlist.GroupDataB))
	l.design.ConnectBus(out.Pins(), dev.Group(netlist.GroupResult))
	if owidth > width {
		l.design.Connect(out.Pin(width), dev.Pin(netlist.GroupCout, 0))
	}
	return out
}

var bitwiseOps = map[ast.BinaryOp]netlist.LogicOp{
	ast.BinAnd:  netlist.LogicAnd,
	ast.BinOr:   netlist.LogicOr,
	ast.BinXor:  netlist.LogicXor,
	ast.BinNand: netlist.LogicNand,
	ast.BinNor:  netlist.LogicNor,
	ast.BinXnor: netlist.LogicXnor,
}

// bitwise lowers the bitwise operators to one two-input gate per bit.
func (l lowering) bitwise(e *ast.Binary, width int, delays netlist.Delays) *netlist.Signal {
	a, b, ok := l.operands(e, width)
	if !ok {
		return nil
	}
	n := max(a.Width(), b.Width())
	a = l.pad(a, n)
	b = l.pad(b, n)

	op := bitwiseOps[e.Op]
	out := l.temp(n)
	for i := range n {
		gate := l.logic(op, 2, delays)
		l.design.Connect(gate.Pin(netlist.GroupI, 0), a.Pin(i))
		l.design.Connect(gate.Pin(netlist.GroupI, 1), b.Pin(i))
		l.design.Connect(gate.Pin(netlist.GroupO, 0), out.Pin(i))
	}
	return out
}

var compareOutputs = map[ast.BinaryOp]string{
	ast.BinLt: netlist.GroupALB,
	ast.BinGt: netlist.GroupAGB,
	ast.BinLe: netlist.GroupALEB,
	ast.BinGe: netlist.GroupAGEB,
	ast.BinEq: netlist.GroupAEB,
	ast.BinNe: netlist.GroupANEB,
}

// compare lowers the relational and equality operators. The operands are
// self-determined and the result is always one bit.
func (l lowering) compare(e *ast.Binary, delays netlist.Delays) *netlist.Signal {
	a, b, ok := l.operands(e, 0)
	if !ok {
		return nil
	}
	dwidth := max(a.Width(), b.Width())
	signed := a.Signed && b.Signed
	a = l.pad(a, dwidth)
	b = l.pad(b, dwidth)
	out := l.temp(1)

	switch e.Op {
	case ast.BinCaseEq, ast.BinCaseNe:
		op := netlist.LogicAnd
		if e.Op == ast.BinCaseNe {
			op = netlist.LogicNand
		}
		gate := l.logic(op, dwidth, delays)
		l.design.Connect(gate.Pin(netlist.GroupO, 0), out.Pin(0))
		for i := range dwidth {
			cmp := l.design.NewCaseCmp(l.name())
			l.design.Connect(cmp.Pin(netlist.GroupDataA, 0), a.Pin(i))
			l.design.Connect(cmp.Pin(netlist.GroupDataB, 0), b.Pin(i))
			l.design.Connect(cmp.Pin(netlist.GroupO, 0), gate.Pin(netlist.GroupI, i))
			tmp := l.temp(1)
			l.design.Connect(cmp.Pin(netlist.GroupO, 0), tmp.Pin(0))
		}
		return out

	case ast.BinEq, ast.BinNe:
		if dwidth == 1 {
			op := netlist.LogicXnor
			if e.Op == ast.BinNe {
				op = netlist.LogicXor
			}
			gate := l.logic(op, 2, delays)
			l.design.Connect(gate.Pin(netlist.GroupO, 0), out.Pin(0))
			l.design.Connect(gate.Pin(netlist.GroupI, 0), a.Pin(0))
			l.design.Connect(gate.Pin(netlist.GroupI, 1), b.Pin(0))
			return out
		}
	}

	cmp := l.design.NewCompare(l.name(), dwidth)
	cmp.Signed = signed
	cmp.Delays = delays
	l.design.ConnectBus(cmp.Group(netlist.GroupDataA), a.Pins())
	l.design.ConnectBus(cmp.Group(netlist.GroupDataB), b.Pins())
	l.design.Connect(cmp.Pin(compareOutputs[e.Op], 0), out.Pin(0))
	return out
}

// logical lowers && and || over the truth values of the operands.
func (l lowering) logical(e *ast.Binary, delays netlist.Delays) *netlist.Signal {
	a, b, ok := l.operands(e, 0)
	if !ok {
		return nil
	}
	op := netlist.LogicAnd
	if e.Op == ast.BinLogOr {
		op = netlist.LogicOr
	}
	gate := l.logic(op, 2, delays)
	l.design.Connect(gate.Pin(netlist.GroupI, 0), l.truth(a).Pin(0))
	l.design.Connect(gate.Pin(netlist.GroupI, 1), l.truth(b).Pin(0))
	out := l.temp(1)
	l.design.Connect(gate.Pin(netlist.GroupO, 0), out.Pin(0))
	return out
}

// mul folds a product of two constants to a constant driver and
// otherwise builds a Mult device.
func (l lowering) mul(e *ast.Binary, lwidth int, delays netlist.Delays) *netlist.Signal {
	if av, ok := EvalConst(e.Left, l.sc); ok {
		if bv, ok := EvalConst(e.Right, l.sc); ok {
			prod := bitvec.Mul(av, bv)
			if lwidth == 0 {
				lwidth = prod.Len()
			}
			return l.constSignal(bitvec.Resize(prod.WithSigned(false), lwidth), netlist.DefaultDrive)
		}
	}

	a, b, ok := l.operands(e, lwidth)
	if !ok {
		return nil
	}
	rwidth := lwidth
	if rwidth == 0 {
		rwidth = a.Width() + b.Width()
	}
	dev := l.design.NewMult(l.name(), rwidth, a.Width(), b.Width())
	dev.Signed = a.Signed && b.Signed
	dev.Delays = delays
	l.design.ConnectBus(dev.Group(netlist.GroupDataA), a.Pins())
	l.design.ConnectBus(dev.Group(netlist.GroupDataB), b.Pins())
	return l.result(dev, lwidth, rwidth)
}

// div builds a Divide device. The quotient is never wider than the wider
// operand.
func (l lowering) div(e *ast.Binary, lwidth int, delays netlist.Delays) *netlist.Signal {
	a, b, ok := l.operands(e, lwidth)
	if !ok {
		return nil
	}
	return l.divide(a, b, lwidth, delays, false)
}

// mod builds a Modulo device over self-determined operands.
func (l lowering) mod(e *ast.Binary, lwidth int, delays netlist.Delays) *netlist.Signal {
	a, b, ok := l.operands(e, 0)
	if !ok {
		return nil
	}
	return l.divide(a, b, lwidth, delays, true)
}

func (l lowering) divide(a, b *netlist.Signal, lwidth int, delays netlist.Delays, modulo bool) *netlist.Signal {
	widest := max(a.Width(), b.Width())
	rwidth := lwidth
	if rwidth == 0 {
		rwidth = widest
	}
	rwidth = min(rwidth, widest)

	var dev *netlist.Device
	if modulo {
		dev = l.design.NewModulo(l.name(), rwidth, a.Width(), b.Width())
	} else {
		dev = l.design.NewDivide(l.name(), rwidth, a.Width(), b.Width())
	}
	dev.Signed = a.Signed && b.Signed
	dev.Delays = delays
	l.design.ConnectBus(dev.Group(netlist.GroupDataA), a.Pins())
	l.design.ConnectBus(dev.Group(netlist.GroupDataB), b.Pins())
	return l.result(dev, lwidth, rwidth)
}

// result connects the Result group of dev to a new lwidth-bit wire,
// filling the bits above rwidth with 0. An lwidth of 0 takes rwidth.
func (l lowering) result(dev *netlist.Device, lwidth, rwidth int) *netlist.Signal {
	if lwidth == 0 {
		lwidth = rwidth
	}
	out := l.temp(lwidth)
	out.Kind = netlist.SignalImplicit
	l.design.ConnectBus(out.Pins(), dev.Group(netlist.GroupResult))
	l.fillZero(out, rwidth)
	return out
}

// shift lowers << and >>, and >>> which fills with the sign bit of a
// signed operand. A constant distance is pure rewiring; a variable one
// builds a Shift device.
func (l lowering) shift(e *ast.Binary, lwidth int, delays netlist.Delays) *netlist.Signal {
	a := l.net(e.Left, lwidth, netlist.Delays{}, netlist.DefaultDrive)
	if a == nil {
		return nil
	}
	lwidth = max(lwidth, a.Width())
	right := e.Op == ast.BinShr || e.Op == ast.BinArithShr
	signFill := e.Op == ast.BinArithShr && a.Signed

	if dv, ok := EvalConst(e.Right, l.sc); ok {
		if !dv.IsDefined() {
			return l.constSignal(bitvec.Fill(bitvec.Bx, lwidth, true), netlist.DefaultDrive)
		}
		dist := lwidth
		if bitvec.Less(dv.WithSigned(false), bitvec.FromUint(uint64(lwidth), 64)) == bitvec.B1 {
			dist = int(dv.Uint64())
		}
		if dist == 0 {
			return a
		}
		return l.rewire(a, lwidth, dist, right, signFill)
	}

	if signFill {
		l.report(netlist.SeveritySorry, types.DiagUnsupportedShift, e.Span,
			"arithmetic right shift of a signed operand by a variable distance is not supported")
		return nil
	}

	dwid := 0
	for 1<<dwid < lwidth {
		dwid++
	}
	d := l.net(e.Right, dwid, netlist.Delays{}, netlist.DefaultDrive)
	if d == nil {
		return nil
	}

	dev := l.design.NewShift(l.name(), lwidth, d.Width())
	dev.Delays = delays
	out := l.temp(lwidth)
	l.design.ConnectBus(out.Pins(), dev.Group(netlist.GroupResult))
	l.design.ConnectBus(dev.Group(netlist.GroupData), l.pad(a, lwidth).Pins())
	l.design.ConnectBus(dev.Group(netlist.GroupDistance), d.Pins())

	dir := bitvec.FromUint(0, 1)
	if right {
		dir = bitvec.FromUint(1, 1)
	}
	l.design.Connect(dev.Pin(netlist.GroupDirection, 0), l.constSignal(dir, netlist.DefaultDrive).Pin(0))
	return out
}

// rewire returns a width-bit wire holding sig shifted by dist, with the
// vacated bits tied to 0, or to the top bit of sig when signFill is set.
// No shifter is created.
func (l lowering) rewire(sig *netlist.Signal, width, dist int, right, signFill bool) *netlist.Signal {
	out := l.temp(width)
	var vacant []netlist.PinID
	for i := range width {
		src := i - dist
		if right {
			src = i + dist
		}
		if src >= 0 && src < sig.Width() {
			l.design.Connect(out.Pin(i), sig.Pin(src))
		} else {
			vacant = append(vacant, out.Pin(i))
		}
	}
	if signFill {
		for _, p := range vacant {
			l.design.Connect(p, sig.Pin(sig.Width()-1))
		}
		return out
	}
	l.tieZero(vacant)
	return out
}
