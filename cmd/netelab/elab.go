package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golangsnmp/netelab"
)

const elabUsage = `netelab elab - Elaborate files and print a summary

Usage:
  netelab elab [options] [FILE|DIR]...

With no arguments, the library search path is used.

Options:
  --top NAME    Only elaborate module NAME
  --stats       Show device counts by kind
  -h, --help    Show help

Examples:
  netelab elab rtl/alu.v
  netelab elab --top cpu rtl/
  netelab elab --stats -vv rtl/alu.v
`

func (c *cli) cmdElab(args []string) int {
	fs := flag.NewFlagSet("elab", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, elabUsage) }

	top := fs.String("top", "", "only elaborate this module")
	stats := fs.Bool("stats", false, "show device counts by kind")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, elabUsage)
		return exitOK
	}

	var opts []netelab.Option
	if *top != "" {
		opts = append(opts, netelab.WithTop(*top))
	}
	res, err := c.elaborate(fs.Args(), opts...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	for _, u := range res.Units {
		printUnit(u, *stats)
	}
	fmt.Printf("Elaborated %d modules (%d errors)\n", len(res.Units), res.Errors())

	diags := res.Diagnostics()
	if len(diags) > 0 {
		fmt.Println()
		fmt.Println("Diagnostics:")
		for _, d := range diags {
			printDiagnostic(d)
		}
	}

	if res.Failed() {
		return exitFailing
	}
	return exitOK
}

func printUnit(u *netelab.Unit, stats bool) {
	d := u.Design
	fmt.Printf("%s (%s)\n", u.Name, u.Path)
	fmt.Printf("  Signals:     %d\n", len(d.Signals()))
	fmt.Printf("  Devices:     %d\n", len(d.Devices()))
	fmt.Printf("  Junctions:   %d\n", len(d.Junctions()))
	fmt.Printf("  Errors:      %d\n", d.Errors())
	fmt.Printf("  Fingerprint: %s\n", d.FingerprintString())

	if !stats {
		return
	}
	counts, kinds := d.DeviceCounts()
	if len(kinds) == 0 {
		return
	}
	fmt.Println("  Devices by kind:")
	for _, kind := range kinds {
		fmt.Printf("    %-10s %d\n", kind+":", counts[kind])
	}
}

func printDiagnostic(d netelab.Diagnostic) {
	prefix := "  " + d.Severity.String() + ": "
	if d.Code != "" {
		prefix += "[" + d.Code + "] "
	}
	switch {
	case d.Module != "" && d.Line > 0:
		fmt.Printf("%s%s:%d:%d: %s\n", prefix, d.Module, d.Line, d.Column, d.Message)
	case d.Module != "":
		fmt.Printf("%s%s: %s\n", prefix, d.Module, d.Message)
	default:
		fmt.Printf("%s%s\n", prefix, d.Message)
	}
}
