package module

import (
	"slices"
	"testing"

	"github.com/golangsnmp/netelab/internal/parser"
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/internal/testutil"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

func elaborate(t *testing.T, source []byte) *netlist.Design {
	t.Helper()
	cfg := Config{Diagnostics: netlist.DefaultConfig(), Implicit: scope.ImplicitWarn}
	file := parser.New(source, nil, cfg.Diagnostics).ParseFile()
	testutil.Len(t, file.Diagnostics, 0, "parse diagnostics: %v", file.Diagnostics)
	testutil.Len(t, file.Modules, 1, "modules")
	return Elaborate(file.Modules[0], types.NewLineTable(source), nil, cfg)
}

func codes(d *netlist.Design) []string {
	var out []string
	for _, diag := range d.Diagnostics() {
		out = append(out, diag.Code)
	}
	return out
}

func signal(t *testing.T, d *netlist.Design, name string) *netlist.Signal {
	t.Helper()
	for _, s := range d.Signals() {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no signal %s", name)
	return nil
}

func devices(d *netlist.Design, kind netlist.DeviceKind) int {
	n := 0
	for _, dev := range d.Devices() {
		if dev.Kind == kind {
			n++
		}
	}
	return n
}

func TestElaborateAdder(t *testing.T) {
	d := elaborate(t, testutil.Module("adder(a, b, y)",
		"input [3:0] a, b;",
		"output [4:0] y;",
		"assign y = a + b;",
	))
	testutil.Equal(t, "adder", d.Name)
	testutil.Equal(t, 0, d.Errors(), "errors: %v", d.Diagnostics())
	testutil.Len(t, d.Diagnostics(), 0)

	y := signal(t, d, "y")
	testutil.Equal(t, netlist.PortOutput, y.Port)
	testutil.Equal(t, 5, y.Width())
	testutil.Equal(t, 1, devices(d, netlist.DeviceAddSub))
}

func TestMergedDeclarations(t *testing.T) {
	d := elaborate(t, testutil.Module("m(y)",
		"output [3:0] y;",
		"reg [3:0] y;",
	))
	testutil.Equal(t, 0, d.Errors())
	y := signal(t, d, "y")
	testutil.Equal(t, netlist.SignalReg, y.Kind)
	testutil.Equal(t, netlist.PortOutput, y.Port)
}

func TestParameters(t *testing.T) {
	d := elaborate(t, testutil.Module("m",
		"parameter W = 4, H = W * 2;",
		"wire [W-1:0] w;",
		"wire [H-1:0] h;",
	))
	testutil.Equal(t, 0, d.Errors())
	testutil.Equal(t, 4, signal(t, d, "w").Width())
	testutil.Equal(t, 8, signal(t, d, "h").Width())
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name string
		body []string
		code string
	}{
		{"param not constant", []string{"wire x;", "parameter P = x;"}, types.DiagParamNotConstant},
		{"range not constant", []string{"wire n;", "wire [n:0] w;"}, types.DiagRangeNotConstant},
		{"duplicate wire", []string{"wire a;", "wire a;"}, types.DiagDuplicateDecl},
		{"wire shadows parameter", []string{"parameter a = 1;", "wire a;"}, types.DiagDuplicateDecl},
		{"memory shadows wire", []string{"wire m;", "reg [7:0] m [0:3];"}, types.DiagDuplicateDecl},
		{"duplicate event", []string{"event e;", "real e;"}, types.DiagDuplicateDecl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := elaborate(t, testutil.Module("m", tt.body...))
			testutil.True(t, slices.Contains(codes(d), tt.code), "codes %v", codes(d))
			testutil.Greater(t, d.Errors(), 0)
		})
	}
}

func TestPortBinding(t *testing.T) {
	d := elaborate(t, testutil.Module("m(a, b)",
		"input a;",
		"wire b;",
		"output c;",
	))
	testutil.SliceEqual(t, []string{types.DiagPortUndeclared, types.DiagPortNotInList}, codes(d))

	diag := d.Diagnostics()[0]
	testutil.Equal(t, "m", diag.Module)
	testutil.Equal(t, 1, diag.Line)
}

func TestNetDeclarationAssign(t *testing.T) {
	d := elaborate(t, testutil.Module("m",
		"wire [1:0] w = 2'b10;",
	))
	testutil.Equal(t, 0, d.Errors())
	v, ok := d.ConstValue(signal(t, d, "w"))
	testutil.True(t, ok, "w should be constant")
	testutil.Equal(t, "10", v.Binary())
}

func TestSupplyNets(t *testing.T) {
	d := elaborate(t, testutil.Module("m",
		"supply1 [1:0] vdd;",
		"supply0 gnd;",
	))
	vdd := signal(t, d, "vdd")
	v, ok := d.ConstValue(vdd)
	testutil.True(t, ok)
	testutil.Equal(t, "11", v.Binary())

	drivers := d.Drivers(vdd.Pin(0))
	testutil.Len(t, drivers, 1)
	testutil.Equal(t, netlist.StrengthSupply, d.PinDrive(drivers[0]).One)

	v, ok = d.ConstValue(signal(t, d, "gnd"))
	testutil.True(t, ok)
	testutil.Equal(t, "0", v.Binary())
}

func TestFunctionsAndMemories(t *testing.T) {
	d := elaborate(t, testutil.Module("m(a, y, q)",
		"input [3:0] a;",
		"output [4:0] y;",
		"output [7:0] q;",
		"reg [7:0] mem [0:15];",
		"function [4:0] inc;",
		"  input [3:0] x;",
		"  inc = x + 1;",
		"endfunction",
		"assign y = inc(a);",
		"assign q = mem[a];",
	))
	testutil.Equal(t, 0, d.Errors(), "errors: %v", d.Diagnostics())

	fns := d.Functions()
	testutil.Len(t, fns, 1)
	testutil.Equal(t, "inc", fns[0].Scope)
	testutil.Equal(t, "inc.inc", fns[0].Return().Name)
	testutil.Equal(t, "inc.x", fns[0].Inputs()[0].Name)
	testutil.Equal(t, 1, devices(d, netlist.DeviceUserFunc))

	testutil.Len(t, d.Memories(), 1)
	testutil.Equal(t, 16, d.Memories()[0].Count())
	testutil.Equal(t, 1, devices(d, netlist.DeviceRAMPort))
}

func TestRealsAndEvents(t *testing.T) {
	d := elaborate(t, testutil.Module("m",
		"real r;",
		"event go;",
		"wire w;",
		"assign w = r;",
	))
	testutil.Len(t, d.Variables(), 1)
	testutil.Len(t, d.Events(), 1)
	testutil.SliceEqual(t, []string{types.DiagRealInNet}, codes(d))
}

func TestCombinationalLoopReported(t *testing.T) {
	d := elaborate(t, testutil.Module("m",
		"wire a, b;",
		"assign a = ~b;",
		"assign b = ~a;",
	))
	testutil.True(t, slices.Contains(codes(d), types.DiagCombinationalLoop), "codes %v", codes(d))
	testutil.Equal(t, 0, d.Errors(), "loops are warnings")
}

func TestImplicitNetPolicy(t *testing.T) {
	source := testutil.Module("m", "assign n = 1'b1;")
	file := parser.New(source, nil, netlist.DefaultConfig()).ParseFile()

	warn := Elaborate(file.Modules[0], nil, nil, Config{Diagnostics: netlist.DefaultConfig(), Implicit: scope.ImplicitWarn})
	testutil.SliceEqual(t, []string{types.DiagImplicitNet}, codes(warn))

	off := Elaborate(file.Modules[0], nil, nil, Config{Diagnostics: netlist.DefaultConfig(), Implicit: scope.ImplicitOff})
	testutil.Len(t, off.Diagnostics(), 0)
	testutil.Equal(t, netlist.SignalImplicit, signal(t, off, "n").Kind)
}
