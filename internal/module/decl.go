package module

import (
	"log/slog"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/elab"
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// declInfo is the merged view of every declaration of one signal name.
type declInfo struct {
	name   ast.Name
	dir    ast.Direction
	kind   ast.NetKind
	signed bool
	rng    *ast.Range
	init   ast.Expr
	span   types.Span
	sig    *netlist.Signal
}

func (e *elaborator) params() {
	for _, p := range e.mod.Params {
		v, ok := elab.EvalConst(p.Value, e.sc)
		if !ok {
			e.errorf(types.DiagParamNotConstant, p.Span, "value of parameter %s is not constant", p.Name.Text)
			continue
		}
		if p.Range != nil {
			if msb, lsb, ok := e.rangeOf(p.Range); ok {
				v = bitvec.Resize(v, width(msb, lsb)).WithSigned(p.Signed)
			}
		} else if p.Signed {
			v = v.WithSigned(true)
		}
		if !e.sc.DeclareParam(p.Name.Text, v) {
			e.duplicate(p.Name)
			continue
		}
		if e.TraceEnabled() {
			e.Trace("parameter", slog.String("name", p.Name.Text), slog.String("value", v.String()))
		}
	}
}

// declarations merges the declarations of each name and creates one
// signal per name. A name may carry one direction and one net type.
func (e *elaborator) declarations() {
	for _, d := range e.mod.Decls {
		info, seen := e.decls[d.Name.Text]
		if !seen {
			if e.sc.Lookup([]string{d.Name.Text}).Found() {
				e.duplicate(d.Name)
				continue
			}
			e.decls[d.Name.Text] = &declInfo{
				name:   d.Name,
				dir:    d.Dir,
				kind:   d.Kind,
				signed: d.Signed,
				rng:    d.Range,
				init:   d.Init,
				span:   d.Span,
			}
			e.order = append(e.order, d.Name.Text)
			continue
		}
		if (d.Dir != ast.DirNone && info.dir != ast.DirNone) || (d.Kind != ast.NetDefault && info.kind != ast.NetDefault) {
			e.duplicate(d.Name)
			continue
		}
		if d.Dir != ast.DirNone {
			info.dir = d.Dir
		}
		if d.Kind != ast.NetDefault {
			info.kind = d.Kind
		}
		info.signed = info.signed || d.Signed
		if info.rng == nil {
			info.rng = d.Range
		}
		if d.Init != nil {
			info.init = d.Init
			info.span = d.Span
		}
	}

	for _, name := range e.order {
		info := e.decls[name]
		msb, lsb, _ := e.rangeOf(info.rng)
		sig := e.design.NewSignal(name, signalKind(info.kind), msb, lsb)
		sig.Port = portType(info.dir)
		sig.Signed = info.signed
		info.sig = sig
		e.sc.Declare(name, scope.Symbol{Kind: scope.KindNet, Signal: sig})

		switch info.kind {
		case ast.NetSupply0:
			e.supply(sig, bitvec.B0)
		case ast.NetSupply1:
			e.supply(sig, bitvec.B1)
		}
	}
}

// supply ties every bit of a supply net to a supply-strength constant.
func (e *elaborator) supply(sig *netlist.Signal, b bitvec.Bit) {
	dev := e.design.NewConst(e.sc.LocalSymbol(), bitvec.Fill(b, sig.Width(), true))
	e.design.SetDrive(dev, netlist.Drive{Zero: netlist.StrengthSupply, One: netlist.StrengthSupply})
	e.design.ConnectBus(sig.Pins(), dev.Group(netlist.GroupO))
}

func (e *elaborator) memories() {
	for _, m := range e.mod.Memories {
		msb, lsb, _ := e.rangeOf(m.Width)
		low, high, ok := e.rangeOf(&m.Words)
		if !ok {
			continue
		}
		mem := &netlist.Memory{Name: m.Name.Text, Msb: msb, Lsb: lsb, Low: low, High: high}
		if !e.sc.Declare(m.Name.Text, scope.Symbol{Kind: scope.KindMemory, Memory: mem}) {
			e.duplicate(m.Name)
			continue
		}
		e.design.AddMemory(mem)
	}
}

func (e *elaborator) variables() {
	for _, n := range e.mod.Reals {
		v := &netlist.Variable{Name: n.Text}
		if !e.sc.Declare(n.Text, scope.Symbol{Kind: scope.KindVariable, Variable: v}) {
			e.duplicate(n)
			continue
		}
		e.design.AddVariable(v)
	}
	for _, n := range e.mod.Events {
		ev := &netlist.Event{Name: n.Text}
		if !e.sc.Declare(n.Text, scope.Symbol{Kind: scope.KindEvent, Event: ev}) {
			e.duplicate(n)
			continue
		}
		e.design.AddEvent(ev)
	}
}

// functions registers each function header. The return value is a reg
// named after the function in the function's own scope; inputs follow
// in declaration order.
func (e *elaborator) functions() {
	for _, f := range e.mod.Functions {
		child := e.sc.Child(f.Name.Text)

		msb, lsb, _ := e.rangeOf(f.Range)
		ret := e.design.NewSignal(child.Qualify(f.Name.Text), netlist.SignalReg, msb, lsb)
		ret.Port = netlist.PortOutput
		ret.Signed = f.Signed
		child.Declare(f.Name.Text, scope.Symbol{Kind: scope.KindNet, Signal: ret})

		fn := &netlist.Function{Name: f.Name.Text, Scope: child.Path(), Ports: []*netlist.Signal{ret}}
		for _, in := range f.Inputs {
			msb, lsb, _ := e.rangeOf(in.Range)
			sig := e.design.NewSignal(child.Qualify(in.Name.Text), netlist.SignalReg, msb, lsb)
			sig.Port = netlist.PortInput
			sig.Signed = in.Signed
			if !child.Declare(in.Name.Text, scope.Symbol{Kind: scope.KindNet, Signal: sig}) {
				e.duplicate(in.Name)
				continue
			}
			fn.Ports = append(fn.Ports, sig)
		}

		if !e.sc.DeclareFunction(f.Name.Text, fn) {
			e.duplicate(f.Name)
			continue
		}
		e.design.AddFunction(fn)
		e.Log(slog.LevelDebug, "function",
			slog.String("name", fn.Name),
			slog.Int("inputs", len(fn.Inputs())))
	}
}

// ports binds the module port list. Every listed port needs a direction
// declaration, and every direction declaration needs a listed port.
func (e *elaborator) ports() {
	listed := make(map[string]bool, len(e.mod.Ports))
	for _, p := range e.mod.Ports {
		listed[p.Text] = true
		info := e.decls[p.Text]
		if info == nil || info.dir == ast.DirNone {
			e.errorf(types.DiagPortUndeclared, p.Span, "port %s of module %s has no direction declaration", p.Text, e.mod.Name.Text)
			continue
		}
		e.elab.Port(&ast.Ident{Path: []string{p.Text}, Span: p.Span}, e.sc)
	}
	for _, name := range e.order {
		info := e.decls[name]
		if info.dir != ast.DirNone && !listed[name] {
			e.errorf(types.DiagPortNotInList, info.name.Span, "%s %s is not in the port list of module %s", info.dir, name, e.mod.Name.Text)
		}
	}
}

// assigns lowers net declaration assignments, then the continuous
// assignments in source order.
func (e *elaborator) assigns() {
	for _, name := range e.order {
		info := e.decls[name]
		if info.init == nil {
			continue
		}
		if info.kind == ast.NetReg {
			e.report(netlist.SeveritySorry, types.DiagInternalUnsupported, info.span, "initial value of reg %s is procedural", name)
			continue
		}
		e.elab.Assign(&ast.Assign{
			Target: &ast.Ident{Path: []string{name}, Span: info.name.Span},
			Value:  info.init,
			Span:   info.span,
		}, e.sc)
	}
	for i := range e.mod.Assigns {
		e.elab.Assign(&e.mod.Assigns[i], e.sc)
	}
}

// rangeOf folds a declared range. A nil range is [0:0]. A range that is
// not constant is reported and treated as [0:0].
func (e *elaborator) rangeOf(r *ast.Range) (msb, lsb int, ok bool) {
	if r == nil {
		return 0, 0, true
	}
	mv, mok := elab.EvalConst(r.Msb, e.sc)
	lv, lok := elab.EvalConst(r.Lsb, e.sc)
	if !mok || !lok || !mv.IsDefined() || !lv.IsDefined() {
		e.errorf(types.DiagRangeNotConstant, r.Span, "range bounds must be constant")
		return 0, 0, false
	}
	return int(mv.Int64()), int(lv.Int64()), true
}

func width(msb, lsb int) int {
	if msb >= lsb {
		return msb - lsb + 1
	}
	return lsb - msb + 1
}

func signalKind(k ast.NetKind) netlist.SignalKind {
	switch k {
	case ast.NetReg:
		return netlist.SignalReg
	case ast.NetTri:
		return netlist.SignalTri
	case ast.NetSupply0:
		return netlist.SignalSupply0
	case ast.NetSupply1:
		return netlist.SignalSupply1
	}
	return netlist.SignalWire
}

func portType(d ast.Direction) netlist.PortType {
	switch d {
	case ast.DirInput:
		return netlist.PortInput
	case ast.DirOutput:
		return netlist.PortOutput
	case ast.DirInout:
		return netlist.PortInout
	}
	return netlist.NotAPort
}
