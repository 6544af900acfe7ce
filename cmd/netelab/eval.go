package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golangsnmp/netelab"
)

const evalUsage = `netelab eval - Fold a constant expression

Usage:
  netelab eval [options] EXPR

Prints the value as a bit pattern, and in decimal when every bit is
known.

Options:
  -D, --define NAME=EXPR   Define a parameter (repeatable, in order)
  -h, --help               Show help

Examples:
  netelab eval "8'hf0 | 8'h0f"
  netelab eval -D W=16 "W*2-1"
  netelab eval "4'b10x1 + 1"
`

func (c *cli) cmdEval(args []string) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, evalUsage) }

	var params []netelab.Param
	define := func(s string) error {
		name, expr, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("expected NAME=EXPR, got %q", s)
		}
		params = append(params, netelab.Param{Name: strings.TrimSpace(name), Expr: expr})
		return nil
	}
	fs.Func("D", "define a parameter", define)
	fs.Func("define", "define a parameter", define)
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, evalUsage)
		return exitOK
	}
	if fs.NArg() == 0 {
		printError("no expression specified")
		fmt.Fprint(os.Stderr, evalUsage)
		return exitError
	}

	v, err := netelab.Evaluate(strings.Join(fs.Args(), " "), params...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	fmt.Printf("value:  %s\n", v)
	fmt.Printf("width:  %d\n", v.Len())
	fmt.Printf("signed: %t\n", v.Signed())
	fmt.Printf("binary: %s\n", v.Binary())
	if dec, ok := v.Decimal(); ok {
		fmt.Printf("decimal: %s\n", dec)
	}
	return exitOK
}
