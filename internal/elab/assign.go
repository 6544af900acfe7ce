package elab

import (
	"log/slog"
	"strings"

	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// Assign lowers one continuous assignment into the design. Failures are
// reported; nothing is returned because an assignment produces no value.
func (c *Context) Assign(a *ast.Assign, sc Scope) {
	l := c.lower(sc)

	delays, ok := l.delays(a.Delays)
	if !ok {
		return
	}
	drive := l.drive(a.Strengths)

	lval := l.lnet(a.Target, true)
	if lval == nil {
		return
	}
	rval := l.net(a.Value, lval.Width(), delays, drive)
	if rval == nil {
		return
	}

	switch {
	case rval.Width() < lval.Width():
		rval = l.pad(rval, lval.Width())
	case rval.Width() > lval.Width():
		l.report(netlist.SeverityInfo, types.DiagWidthMismatch, a.Span,
			"%d bit value truncated to %d bit target", rval.Width(), lval.Width())
	}

	if !rval.Local {
		// A named source keeps its identity behind one buffer per bit.
		for i := range lval.Width() {
			buf := c.design.NewBufZ(l.name())
			buf.Delays = delays
			c.design.SetDrive(buf, drive)
			c.design.Connect(buf.Pin(netlist.GroupI, 0), rval.Pin(i))
			c.design.Connect(buf.Pin(netlist.GroupO, 0), lval.Pin(i))
		}
	} else {
		for i := range lval.Width() {
			c.design.Connect(lval.Pin(i), rval.Pin(i))
		}
		if drive != netlist.DefaultDrive {
			l.redrive(rval.Pins()[:lval.Width()], drive)
		}
	}

	if c.TraceEnabled() {
		c.Trace("assign", slog.String("target", lval.String()), slog.Int("width", lval.Width()))
	}
}

// delays folds the delay list of an assignment. One value sets all three
// delays; two set rise and fall with the smaller as decay.
func (l lowering) delays(exprs []ast.Expr) (netlist.Delays, bool) {
	if len(exprs) == 0 {
		return netlist.Delays{}, true
	}
	vals := make([]uint64, len(exprs))
	for i, e := range exprs {
		v, ok := EvalConst(e, l.sc)
		if !ok || !v.IsDefined() {
			l.errorf(types.DiagNotConstant, e.ExprSpan(), "delay expression must be constant")
			return netlist.Delays{}, false
		}
		vals[i] = v.Uint64()
	}
	switch len(vals) {
	case 1:
		return netlist.Delays{Rise: vals[0], Fall: vals[0], Decay: vals[0]}, true
	case 2:
		return netlist.Delays{Rise: vals[0], Fall: vals[1], Decay: min(vals[0], vals[1])}, true
	}
	return netlist.Delays{Rise: vals[0], Fall: vals[1], Decay: vals[2]}, true
}

// drive turns strength keywords into a Drive. A keyword ending in 0
// sets the strength for driving 0; one ending in 1 for driving 1.
func (l lowering) drive(names []ast.Name) netlist.Drive {
	d := netlist.DefaultDrive
	for _, n := range names {
		s, ok := netlist.ParseStrength(n.Text)
		if !ok {
			l.errorf(types.DiagUnknownStrength, n.Span, "unknown drive strength %s", n.Text)
			continue
		}
		switch {
		case strings.HasSuffix(n.Text, "0"):
			d.Zero = s
		case strings.HasSuffix(n.Text, "1"):
			d.One = s
		default:
			d.Zero, d.One = s, s
		}
	}
	return d
}

// redrive applies drive to every device driving one of pins.
func (l lowering) redrive(pins []netlist.PinID, drive netlist.Drive) {
	seen := make(map[*netlist.Device]bool)
	for _, p := range pins {
		for _, drv := range l.design.Drivers(p) {
			dev, _, _ := l.design.PinOwner(drv)
			if dev == nil || seen[dev] {
				continue
			}
			seen[dev] = true
			l.design.SetDrive(dev, drive)
		}
	}
}
