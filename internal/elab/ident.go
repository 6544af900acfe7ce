package elab

import (
	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// ident lowers a name reference, with its bit or part select, as an
// expression operand.
func (l lowering) ident(e *ast.Ident) *netlist.Signal {
	sym := l.sc.Lookup(e.Path)

	var sig *netlist.Signal
	switch sym.Kind {
	case scope.KindMemory:
		return l.ram(e, sym.Memory)
	case scope.KindParameter:
		sig = l.constSignal(sym.Value, netlist.DefaultDrive)
		sig.Signed = sym.Value.Signed()
	case scope.KindVariable:
		l.report(netlist.SeveritySorry, types.DiagRealInNet, e.Span, "real variable %s cannot be used in a net expression", e.Name())
		return nil
	case scope.KindEvent:
		l.errorf(types.DiagEventInExpr, e.Span, "named event %s cannot be used in an expression", e.Name())
		return nil
	case scope.KindNet:
		sig = sym.Signal
	default:
		if sig = l.implicitNet(e); sig == nil {
			return nil
		}
	}

	switch {
	case e.IsPartSelect():
		return l.partSelect(e, sig)
	case e.HasSelect():
		if idx, ok := evalIndex(e.Msb, l.sc); ok {
			return l.bitSelect(e, sig, idx)
		}
		return l.bitMux(e, sig)
	}
	return sig
}

// implicitNet declares an undeclared simple name as a one bit net.
func (l lowering) implicitNet(e *ast.Ident) *netlist.Signal {
	if len(e.Path) > 1 {
		l.errorf(types.DiagUnknownIdentifier, e.Span, "unable to bind wire/reg/memory %s in %s", e.Name(), l.sc.Name())
		return nil
	}
	switch l.sc.Implicit() {
	case scope.ImplicitError:
		l.errorf(types.DiagImplicitNet, e.Span, "undeclared identifier %s", e.Name())
	case scope.ImplicitWarn:
		l.report(netlist.SeverityWarning, types.DiagImplicitNet, e.Span, "implicit definition of wire %s", e.Name())
	}
	return l.sc.DeclareImplicit(e.Path[0])
}

// partSelect returns a view of sig[msb:lsb]. Both indices must be
// constant and within the declared range.
func (l lowering) partSelect(e *ast.Ident, sig *netlist.Signal) *netlist.Signal {
	msb, mok := evalIndex(e.Msb, l.sc)
	lsb, lok := evalIndex(e.Lsb, l.sc)
	if !mok || !lok {
		l.errorf(types.DiagNotConstant, e.Span, "part select of %s must have constant bounds", e.Name())
		return nil
	}
	if !sig.ValidBit(msb) || !sig.ValidBit(lsb) {
		l.errorf(types.DiagPartSelectRange, e.Span, "part select %s[%d:%d] is out of range", e.Name(), msb, lsb)
		return sig
	}
	midx, lidx := sig.IndexOf(msb), sig.IndexOf(lsb)
	if midx < lidx {
		l.errorf(types.DiagPartSelectReversed, e.Span, "part select %s[%d:%d] is reversed", e.Name(), msb, lsb)
		midx, lidx = lidx, midx
	}
	return l.design.Subrange(sig, lidx, midx-lidx+1)
}

// bitSelect returns a one bit view of sig[bit]. An out of range index is
// reported and replaced by the lsb.
func (l lowering) bitSelect(e *ast.Ident, sig *netlist.Signal, bit int) *netlist.Signal {
	idx := sig.IndexOf(bit)
	if !sig.ValidBit(bit) {
		l.errorf(types.DiagIndexOutOfRange, e.Span, "index %s[%d] is out of range", e.Name(), bit)
		idx = 0
	}
	return l.design.Subrange(sig, idx, 1)
}

// bitMux lowers sig[expr] with a non-constant index to a one bit wide
// mux selecting among the bits of sig.
func (l lowering) bitMux(e *ast.Ident, sig *netlist.Signal) *netlist.Signal {
	sel := l.contextDetermined().net(e.Msb, 0, netlist.Delays{}, netlist.DefaultDrive)
	if sel == nil {
		return nil
	}
	selWidth := sel.Width()
	size := sig.Width()
	if selWidth < 31 {
		size = min(size, 1<<selWidth)
	}

	var data func(i int) netlist.PinID
	if sig.Msb >= sig.Lsb {
		sel = l.offset(sel, -sig.Lsb)
		data = sig.Pin
	} else {
		sel = l.offset(sel, -sig.Msb)
		data = func(i int) netlist.PinID { return sig.Pin(sig.Width() - 1 - i) }
	}

	mux := l.design.NewMux(l.name(), 1, size, selWidth)
	l.design.ConnectBus(mux.Group(netlist.GroupSel), sel.Pins())
	for i := range size {
		l.design.Connect(mux.Pin(netlist.DataGroup(i), 0), data(i))
	}
	out := l.temp(1)
	l.design.Connect(out.Pin(0), mux.Pin(netlist.GroupResult, 0))
	return out
}

// offset returns sel + k at the width of sel. A zero k returns sel.
func (l lowering) offset(sel *netlist.Signal, k int) *netlist.Signal {
	if k == 0 {
		return sel
	}
	w := sel.Width()
	add := l.design.NewAddSub(l.name(), w, false)
	konst := l.constSignal(bitvec.Resize(bitvec.FromInt(int64(k)), w), netlist.DefaultDrive)
	l.design.ConnectBus(add.Group(netlist.GroupDataA), sel.Pins())
	l.design.ConnectBus(add.Group(netlist.GroupDataB), konst.Pins())
	out := l.temp(w)
	l.design.ConnectBus(out.Pins(), add.Group(netlist.GroupResult))
	return out
}

// ram lowers a memory word read to a RAM read port addressed by the
// index expression.
func (l lowering) ram(e *ast.Ident, mem *netlist.Memory) *netlist.Signal {
	if !e.HasSelect() {
		l.errorf(types.DiagMemoryNeedsIndex, e.Span, "memory %s needs a word index", e.Name())
		return nil
	}
	if e.IsPartSelect() {
		l.report(netlist.SeveritySorry, types.DiagInternalUnsupported, e.Span, "part select of memory %s word", e.Name())
		return nil
	}
	addr := l.contextDetermined().net(e.Msb, 0, netlist.Delays{}, netlist.DefaultDrive)
	if addr == nil {
		return nil
	}
	port := l.design.NewRAMPort(l.name(), mem, addr.Width())
	l.design.ConnectBus(port.Group(netlist.GroupAddress), addr.Pins())
	out := l.temp(mem.Width())
	l.design.ConnectBus(out.Pins(), port.Group(netlist.GroupQ))
	return out
}

// lnet lowers an assignment target.
func (l lowering) lnet(e ast.Expr, implicitOK bool) *netlist.Signal {
	switch e := e.(type) {
	case *ast.Ident:
		return l.lnetIdent(e, implicitOK)
	case *ast.Concat:
		return l.lnetConcat(e, implicitOK)
	case nil:
		l.unsupported(types.Synthetic, "missing assignment target")
		return nil
	}
	l.errorf(types.DiagNotNetLike, e.ExprSpan(), "expression %s is not a valid l-value", exprKind(e))
	return nil
}

// lnetConcat gathers the parts of a concatenated target into one wire.
// The last part lands in the low bits.
func (l lowering) lnetConcat(e *ast.Concat, implicitOK bool) *netlist.Signal {
	if e.Repeat != nil {
		l.report(netlist.SeveritySorry, types.DiagRepeatLvalue, e.Span, "repeat concatenations are not allowed as l-values")
		return nil
	}
	parts := make([]*netlist.Signal, len(e.Parts))
	failed := false
	width := 0
	for i, p := range e.Parts {
		parts[i] = l.lnet(p, implicitOK)
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

	out := l.temp(width)
	out.Kind = netlist.SignalImplicit
	pin := 0
	for i := len(parts) - 1; i >= 0; i-- {
		for _, p := range parts[i].Pins() {
			l.design.Connect(out.Pin(pin), p)
			pin++
		}
	}
	return out
}

func (l lowering) lnetIdent(e *ast.Ident, implicitOK bool) *netlist.Signal {
	sym := l.sc.Lookup(e.Path)

	var sig *netlist.Signal
	switch sym.Kind {
	case scope.KindNet:
		sig = sym.Signal
	case scope.KindNotFound:
		if !implicitOK || len(e.Path) > 1 || l.sc.Implicit() == scope.ImplicitError {
			l.errorf(types.DiagUnknownIdentifier, e.Span, "net %s is not declared in %s", e.Name(), l.sc.Name())
			return nil
		}
		if l.sc.Implicit() == scope.ImplicitWarn {
			l.report(netlist.SeverityWarning, types.DiagImplicitNet, e.Span, "implicit definition of wire %s", e.Name())
		}
		sig = l.sc.DeclareImplicit(e.Path[0])
	default:
		l.errorf(types.DiagNotNetLike, e.Span, "%s %s cannot be driven by a continuous assignment", sym.Kind, e.Name())
		return nil
	}

	if sig.Kind == netlist.SignalReg {
		l.errorf(types.DiagNotNetLike, e.Span, "reg %s cannot be driven by a continuous assignment", e.Name())
		return nil
	}
	if sig.Port == netlist.PortInput {
		l.report(netlist.SeverityWarning, types.DiagInputAssigned, e.Span, "input %s is coerced to inout", e.Name())
		sig.Port = netlist.PortInout
	}
	return l.applySelect(e, sig)
}

// applySelect narrows sig to the select carried by e. Selects on
// targets and ports must be constant.
func (l lowering) applySelect(e *ast.Ident, sig *netlist.Signal) *netlist.Signal {
	switch {
	case e.IsPartSelect():
		return l.partSelect(e, sig)
	case e.HasSelect():
		idx, ok := evalIndex(e.Msb, l.sc)
		if !ok {
			l.errorf(types.DiagNotConstant, e.Span, "bit select of %s must be constant here", e.Name())
			return nil
		}
		return l.bitSelect(e, sig, idx)
	}
	return sig
}

// port resolves a name in a module port list.
func (l lowering) port(id *ast.Ident) *netlist.Signal {
	sym := l.sc.Lookup(id.Path)
	if sym.Kind != scope.KindNet {
		l.errorf(types.DiagUnknownIdentifier, id.Span, "no wire/reg %s in module %s", id.Name(), l.sc.Name())
		return nil
	}
	sig := sym.Signal
	switch sig.Port {
	case netlist.NotAPort:
		l.errorf(types.DiagNotAPort, id.Span, "signal %s in module %s is not a port", id.Name(), l.sc.Name())
		return nil
	case netlist.PortImplicit:
		l.unsupported(id.Span, "implicit port %s in module %s", id.Name(), l.sc.Name())
		return nil
	}
	return l.applySelect(id, sig)
}
