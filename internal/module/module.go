// Package module elaborates parsed modules into netlist designs.
//
// Elaboration of one module runs in a fixed order:
//
//   - Parameters, folded to constants in declaration order
//   - Signal declarations, merging a port direction with a net type
//   - Memories, real variables and named events
//   - Function headers, each in a child scope holding its ports
//   - The module port list, bound against the declarations
//   - Net declaration assignments, then continuous assignments
//   - Structural checks over the finished design
//
// Each module gets its own design and scope tree, so modules can be
// elaborated concurrently.
package module

import (
	"fmt"
	"log/slog"

	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/elab"
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// Config controls module elaboration.
type Config struct {
	Diagnostics netlist.DiagnosticConfig
	Implicit    scope.ImplicitPolicy
}

// Elaborate builds the design for mod. lines positions diagnostics and
// may be nil. If logger is nil, logging is disabled.
//
// The returned design always exists; problems in the source are in its
// diagnostics and error count.
func Elaborate(mod *ast.Module, lines *types.LineTable, logger *slog.Logger, cfg Config) *netlist.Design {
	name := mod.Name.Text
	design := netlist.NewDesign(name, cfg.Diagnostics, logger)
	e := &elaborator{
		Logger: types.Logger{L: types.Component(logger, "module")},
		mod:    mod,
		design: design,
		sc:     scope.New(name, design, cfg.Implicit),
		elab:   elab.NewContext(design, lines, logger),
		lines:  lines,
		decls:  make(map[string]*declInfo),
	}

	e.Log(slog.LevelDebug, "elaborating module", slog.String("module", name))

	e.params()
	e.declarations()
	e.memories()
	e.variables()
	e.functions()
	e.ports()
	e.assigns()

	report := design.Check()

	e.Log(slog.LevelDebug, "module complete",
		slog.String("module", name),
		slog.Int("signals", len(design.Signals())),
		slog.Int("devices", len(design.Devices())),
		slog.Int("loops", len(report.Loops)),
		slog.Int("errors", design.Errors()))

	return design
}

// elaborator tracks state while one module is built.
type elaborator struct {
	types.Logger

	mod    *ast.Module
	design *netlist.Design
	sc     *scope.Scope
	elab   *elab.Context
	lines  *types.LineTable

	// decls merges the declarations of each signal name.
	decls map[string]*declInfo
	order []string
}

func (e *elaborator) report(sev netlist.Severity, code string, span types.Span, format string, args ...any) {
	var line, col int
	if !span.IsSynthetic() {
		line, col = e.lines.Position(span.Start)
	}
	e.design.Report(netlist.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

func (e *elaborator) errorf(code string, span types.Span, format string, args ...any) {
	e.report(netlist.SeverityError, code, span, format, args...)
}

// duplicate reports a name declared twice in the module scope.
func (e *elaborator) duplicate(name ast.Name) {
	e.errorf(types.DiagDuplicateDecl, name.Span, "%s is already declared in module %s", name.Text, e.mod.Name.Text)
}
