package netelab

import (
	"errors"
	"fmt"

	"github.com/golangsnmp/netelab/bitvec"
	"github.com/golangsnmp/netelab/internal/elab"
	"github.com/golangsnmp/netelab/internal/parser"
	"github.com/golangsnmp/netelab/internal/scope"
	"github.com/golangsnmp/netelab/netlist"
)

// ErrNotConstant is returned by Evaluate for expressions that need a
// netlist, such as references to nets.
var ErrNotConstant = errors.New("expression is not constant")

// Param defines a parameter visible to Evaluate.
type Param struct {
	Name string
	Expr string
}

// Evaluate folds a constant expression. Params are declared in order,
// so a parameter may refer to the ones before it.
func Evaluate(expr string, params ...Param) (bitvec.Vector, error) {
	cfg := netlist.DefaultConfig()
	sc := scope.New("eval", netlist.NewDesign("eval", cfg, nil), scope.ImplicitOff)

	for _, p := range params {
		v, err := evalOne(p.Expr, sc, cfg)
		if err != nil {
			return bitvec.Vector{}, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		if !sc.DeclareParam(p.Name, v) {
			return bitvec.Vector{}, fmt.Errorf("parameter %s is defined twice", p.Name)
		}
	}
	return evalOne(expr, sc, cfg)
}

func evalOne(src string, sc *scope.Scope, cfg netlist.DiagnosticConfig) (bitvec.Vector, error) {
	e, diags := parser.New([]byte(src), nil, cfg).ParseExpression()
	for _, d := range diags {
		if netlist.Severity(d.Severity).IsError() {
			return bitvec.Vector{}, fmt.Errorf("%s: %s", d.Code, d.Message)
		}
	}
	v, ok := elab.EvalConst(e, sc)
	if !ok {
		return bitvec.Vector{}, ErrNotConstant
	}
	return v, nil
}
