package parser

import (
	"testing"

	"github.com/golangsnmp/netelab/internal/ast"
	"github.com/golangsnmp/netelab/internal/testutil"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

func parseFile(t *testing.T, source []byte) *ast.File {
	t.Helper()
	return New(source, nil, netlist.DefaultConfig()).ParseFile()
}

func parseOne(t *testing.T, source []byte) *ast.Module {
	t.Helper()
	file := parseFile(t, source)
	testutil.Len(t, file.Diagnostics, 0, "diagnostics: %v", file.Diagnostics)
	testutil.Len(t, file.Modules, 1, "modules")
	return file.Modules[0]
}

func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	e, diags := New([]byte(source), nil, netlist.DefaultConfig()).ParseExpression()
	testutil.Len(t, diags, 0, "diagnostics: %v", diags)
	return e
}

func TestParseEmptyModule(t *testing.T) {
	mod := parseOne(t, []byte("module top; endmodule"))
	testutil.Equal(t, "top", mod.Name.Text, "module name")
	testutil.Len(t, mod.Ports, 0, "ports")
	testutil.Len(t, mod.Decls, 0, "decls")
}

func TestParsePortsAndDecls(t *testing.T) {
	mod := parseOne(t, testutil.Module("adder(a, b, y)",
		"input [3:0] a, b;",
		"output signed [4:0] y;",
		"wire [4:0] y;",
		"reg r;",
		"tri t;",
	))
	testutil.Len(t, mod.Ports, 3, "ports")
	testutil.Equal(t, "y", mod.Ports[2].Text, "third port")
	testutil.Len(t, mod.Decls, 6, "decls")

	a := mod.Decls[0]
	testutil.Equal(t, "a", a.Name.Text, "first decl")
	testutil.Equal(t, ast.DirInput, a.Dir, "a direction")
	testutil.Equal(t, ast.NetDefault, a.Kind, "a kind")
	testutil.NotNil(t, a.Range, "a range")

	y := mod.Decls[2]
	testutil.Equal(t, ast.DirOutput, y.Dir, "y direction")
	testutil.True(t, y.Signed, "y signed")

	testutil.Equal(t, ast.NetWire, mod.Decls[3].Kind, "wire kind")
	testutil.Equal(t, ast.NetReg, mod.Decls[4].Kind, "reg kind")
	testutil.Equal(t, ast.NetTri, mod.Decls[5].Kind, "tri kind")
}

func TestParseANSIPorts(t *testing.T) {
	mod := parseOne(t, []byte("module m(input [7:0] a, b, output reg y); endmodule"))
	testutil.Len(t, mod.Ports, 3, "ports")
	testutil.Len(t, mod.Decls, 3, "decls")
	testutil.Equal(t, ast.DirInput, mod.Decls[1].Dir, "b inherits direction")
	testutil.NotNil(t, mod.Decls[1].Range, "b inherits range")
	testutil.Equal(t, ast.DirOutput, mod.Decls[2].Dir, "y direction")
	testutil.Equal(t, ast.NetReg, mod.Decls[2].Kind, "y kind")
	testutil.Nil(t, mod.Decls[2].Range, "y range")
}

func TestParseMemoryIntegerRealEvent(t *testing.T) {
	mod := parseOne(t, testutil.Module("m",
		"reg [7:0] mem [0:15], flag;",
		"integer i;",
		"real r;",
		"event ev;",
	))
	testutil.Len(t, mod.Memories, 1, "memories")
	testutil.Equal(t, "mem", mod.Memories[0].Name.Text, "memory name")
	testutil.NotNil(t, mod.Memories[0].Width, "memory width")
	testutil.Len(t, mod.Decls, 2, "decls")
	testutil.Equal(t, "flag", mod.Decls[0].Name.Text, "flag decl")
	testutil.True(t, mod.Decls[1].Signed, "integer is signed")
	testutil.Equal(t, "31", mod.Decls[1].Range.Msb.(*ast.Number).Text, "integer msb")
	testutil.Len(t, mod.Reals, 1, "reals")
	testutil.Len(t, mod.Events, 1, "events")
}

func TestParseParameters(t *testing.T) {
	mod := parseOne(t, []byte(`module m #(parameter W = 8) (a);
  input [W-1:0] a;
  parameter A = 1, B = A + 1;
  localparam [3:0] C = 2;
endmodule`))
	testutil.Len(t, mod.Params, 4, "params")
	testutil.Equal(t, "W", mod.Params[0].Name.Text, "header param")
	testutil.Equal(t, "B", mod.Params[2].Name.Text, "second body param")
	testutil.True(t, mod.Params[3].Local, "localparam")
	testutil.NotNil(t, mod.Params[3].Range, "localparam range")
}

func TestParseContinuousAssign(t *testing.T) {
	mod := parseOne(t, testutil.Module("m",
		"assign (weak0, strong1) #(1, 2, 3) y = a & b, z = c;",
		"assign #5 w = 1'b0;",
		"wire v = a | b;",
	))
	testutil.Len(t, mod.Assigns, 3, "assigns")
	first := mod.Assigns[0]
	testutil.Len(t, first.Strengths, 2, "strengths")
	testutil.Equal(t, "weak0", first.Strengths[0].Text, "strength0")
	testutil.Len(t, first.Delays, 3, "delays")
	bin, ok := first.Value.(*ast.Binary)
	testutil.True(t, ok, "expected Binary, got %T", first.Value)
	testutil.Equal(t, ast.BinAnd, bin.Op, "op")
	testutil.Len(t, mod.Assigns[1].Delays, 3, "second assign shares delays")
	testutil.Len(t, mod.Assigns[2].Delays, 1, "single delay")
	testutil.NotNil(t, mod.Decls[0].Init, "net declaration assignment")
}

func TestParseFunction(t *testing.T) {
	mod := parseOne(t, testutil.Module("m",
		"function [7:0] add;",
		"  input [7:0] a, b;",
		"  begin add = a + b; end",
		"endfunction",
		"function integer twice; input x; twice = x * 2; endfunction",
	))
	testutil.Len(t, mod.Functions, 2, "functions")
	add := mod.Functions[0]
	testutil.Equal(t, "add", add.Name.Text, "function name")
	testutil.Len(t, add.Inputs, 2, "inputs")
	testutil.Equal(t, "b", add.Inputs[1].Name.Text, "second input")
	testutil.True(t, mod.Functions[1].Signed, "integer function is signed")
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		source string
		op     ast.BinaryOp
	}{
		{"a + b * c", ast.BinAdd},
		{"a * b + c", ast.BinAdd},
		{"a | b & c", ast.BinOr},
		{"a && b || c", ast.BinLogOr},
		{"a == b & c", ast.BinAnd},
		{"a << 1 < b", ast.BinLt},
		{"a - b - c", ast.BinSub},
		{"a ~^ b ^ c", ast.BinXor},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			bin, ok := parseExpr(t, tt.source).(*ast.Binary)
			testutil.True(t, ok, "expected Binary")
			testutil.Equal(t, tt.op, bin.Op, "top operator")
		})
	}
}

func TestParseLeftAssociative(t *testing.T) {
	bin := parseExpr(t, "a - b - c").(*ast.Binary)
	left, ok := bin.Left.(*ast.Binary)
	testutil.True(t, ok, "left operand should be a - b")
	testutil.Equal(t, "a", left.Left.(*ast.Ident).Name(), "innermost left")
	testutil.Equal(t, "c", bin.Right.(*ast.Ident).Name(), "right operand")
}

func TestParseTernaryRightAssociative(t *testing.T) {
	e := parseExpr(t, "s ? a : t ? b : c").(*ast.Ternary)
	_, nested := e.Else.(*ast.Ternary)
	testutil.True(t, nested, "else branch should be a ternary")
}

func TestParseUnary(t *testing.T) {
	tests := []struct {
		source string
		op     ast.UnaryOp
	}{
		{"-a", ast.UnaryNeg},
		{"~a", ast.UnaryNot},
		{"!a", ast.UnaryLogNot},
		{"&a", ast.UnaryAnd},
		{"~&a", ast.UnaryNand},
		{"|a", ast.UnaryOr},
		{"~|a", ast.UnaryNor},
		{"^a", ast.UnaryXor},
		{"~^a", ast.UnaryXnor},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			u, ok := parseExpr(t, tt.source).(*ast.Unary)
			testutil.True(t, ok, "expected Unary")
			testutil.Equal(t, tt.op, u.Op, "operator")
		})
	}
}

func TestParseSelects(t *testing.T) {
	bit := parseExpr(t, "sig[3]").(*ast.Ident)
	testutil.True(t, bit.HasSelect(), "bit select")
	testutil.False(t, bit.IsPartSelect(), "not a part select")

	part := parseExpr(t, "sig[5:2]").(*ast.Ident)
	testutil.True(t, part.IsPartSelect(), "part select")

	hier := parseExpr(t, `top.u1.\net$ `).(*ast.Ident)
	testutil.SliceEqual(t, []string{"top", "u1", "net$"}, hier.Path, "path")
}

func TestParseConcat(t *testing.T) {
	c := parseExpr(t, "{a, b[1], 4'b0010}").(*ast.Concat)
	testutil.Nil(t, c.Repeat, "no repeat")
	testutil.Len(t, c.Parts, 3, "parts")

	r := parseExpr(t, "{3{a, b}}").(*ast.Concat)
	testutil.NotNil(t, r.Repeat, "repeat")
	testutil.Len(t, r.Parts, 2, "repeated parts")

	n := parseExpr(t, "{2{3{a}}}").(*ast.Concat)
	testutil.Len(t, n.Parts, 1, "nested repeat")
	_, ok := n.Parts[0].(*ast.Concat)
	testutil.True(t, ok, "inner repeat kept as a part")
}

func TestParseCall(t *testing.T) {
	c := parseExpr(t, "f(a, b + 1)").(*ast.Call)
	testutil.Equal(t, "f", c.Name(), "callee")
	testutil.Len(t, c.Args, 2, "args")

	empty := parseExpr(t, "g()").(*ast.Call)
	testutil.Len(t, empty.Args, 0, "no args")
}

func TestParseLiterals(t *testing.T) {
	n := parseExpr(t, "8 'hFF").(*ast.Number)
	testutil.Equal(t, 8, n.Value.Len(), "sized literal width")
	testutil.True(t, n.Value.HasLen(), "sized literal has length")

	s := parseExpr(t, `"a\tb\101"`).(*ast.String)
	testutil.Equal(t, "a\tbA", s.Value, "escapes")
}

func TestParseInvalidNumber(t *testing.T) {
	_, diags := New([]byte("4'b102"), nil, netlist.DefaultConfig()).ParseExpression()
	testutil.Len(t, diags, 1, "diagnostics")
	testutil.Equal(t, types.DiagInvalidNumber, diags[0].Code, "code")
}

func TestParseErrorRecovery(t *testing.T) {
	file := parseFile(t, testutil.Module("m(a, y)",
		"input a;",
		"always @(a) begin y = a; end",
		"output y;",
		"assign y = a +;",
		"assign y = ~a;",
	))
	testutil.Len(t, file.Modules, 1, "modules")
	mod := file.Modules[0]
	testutil.Len(t, file.Diagnostics, 2, "diagnostics: %v", file.Diagnostics)
	for _, d := range file.Diagnostics {
		testutil.Equal(t, types.DiagParseError, d.Code, "code")
	}
	testutil.Len(t, mod.Decls, 2, "decls after recovery")
	testutil.Len(t, mod.Assigns, 1, "assigns after recovery")
}

func TestParseMultipleModules(t *testing.T) {
	src := append(testutil.Module("a"), testutil.Module("b")...)
	file := parseFile(t, src)
	testutil.Len(t, file.Diagnostics, 0, "diagnostics")
	testutil.Len(t, file.Modules, 2, "modules")
	testutil.Equal(t, "b", file.Modules[1].Name.Text, "second module")
}

func TestParseMissingEndmodule(t *testing.T) {
	file := parseFile(t, []byte("module a; wire x;\nmodule b; endmodule"))
	testutil.Len(t, file.Modules, 2, "modules")
	testutil.Len(t, file.Diagnostics, 1, "diagnostics")
}

func TestParseSpans(t *testing.T) {
	src := "a + bc"
	e := parseExpr(t, src).(*ast.Binary)
	testutil.Equal(t, types.NewSpan(0, 6), e.Span, "binary span")
	testutil.Equal(t, types.NewSpan(4, 6), e.Right.ExprSpan(), "right span")
}
