// Package elab lowers expressions into netlist devices.
//
// Lowering walks an expression tree and either folds it to a constant
// driver or builds a small network of devices whose output is returned as
// a signal. A nil signal means the expression could not be lowered; the
// problem has been reported and counted in the design's error total
// before nil is returned, so callers only need to stop using the result.
package elab

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// Scope resolves names for the lowering engine. *scope.Scope implements
// it.
type Scope interface {
	Name() string
	Lookup(path []string) scope.Symbol
	Implicit() scope.ImplicitPolicy
	DeclareImplicit(name string) *netlist.Signal
	LocalSymbol() string
	Function(path []string) *netlist.Function
}

// Context owns the design that lowering builds into. A Context must not
// be shared between goroutines.
type Context struct {
	types.Logger

	design *netlist.Design
	lines  *types.LineTable
}

// NewContext returns a context that builds into design. lines maps
// source spans to positions in diagnostics and may be nil.
func NewContext(design *netlist.Design, lines *types.LineTable, logger *slog.Logger) *Context {
	return &Context{
		Logger: types.Logger{L: types.Component(logger, "elab")},
		design: design,
		lines:  lines,
	}
}

// Design returns the design being built.
func (c *Context) Design() *netlist.Design { return c.design }

// Net lowers e at the requested width, 0 meaning the natural width of
// the expression. delays go on the devices that drive the result, and
// drive sets the strengths of constant drivers.
func (c *Context) Net(e ast.Expr, sc Scope, width int, delays netlist.Delays, drive netlist.Drive) *netlist.Signal {
	return c.lower(sc).net(e, width, delays, drive)
}

// LNet lowers e as the target of a continuous assignment. The target
// must be a net, a select of a net, or a concatenation of those.
// implicitOK allows an undeclared name to become an implicit net.
func (c *Context) LNet(e ast.Expr, sc Scope, implicitOK bool) *netlist.Signal {
	return c.lower(sc).lnet(e, implicitOK)
}

// Port lowers a module port reference. The name must be declared with a
// direction.
func (c *Context) Port(id *ast.Ident, sc Scope) *netlist.Signal {
	return c.lower(sc).port(id)
}

func (c *Context) lower(sc Scope) lowering {
	return lowering{Context: c, sc: sc}
}

// report records a diagnostic positioned at span.
func (c *Context) report(sev netlist.Severity, code string, span types.Span, format string, args ...any) {
	var line, col int
	if !span.IsSynthetic() {
		line, col = c.lines.Position(span.Start)
	}
	c.design.Report(netlist.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

func (c *Context) errorf(code string, span types.Span, format string, args ...any) {
	c.report(netlist.SeverityError, code, span, format, args...)
}

func (c *Context) unsupported(span types.Span, format string, args ...any) {
	c.report(netlist.SeverityInternal, types.DiagInternalUnsupported, span, format, args...)
}

// lowering carries the state of one recursive walk. It is passed by
// value; a callee that needs a different setting takes a modified copy.
type lowering struct {
	*Context
	sc Scope

	// self is set while lowering operands whose width must be
	// determined by the operand alone, such as concatenation parts.
	self bool
}

func (l lowering) selfDetermined() lowering {
	l.self = true
	return l
}

func (l lowering) contextDetermined() lowering {
	l.self = false
	return l
}

func (l lowering) name() string { return l.sc.LocalSymbol() }

// temp creates a local wire of the given width.
func (l lowering) temp(width int) *netlist.Signal {
	return l.design.NewTemp(l.name(), width)
}

func (l lowering) logic(op netlist.LogicOp, inputs int, delays netlist.Delays) *netlist.Device {
	dev := l.design.NewLogic(l.name(), op, inputs)
	dev.Delays = delays
	return dev
}
