package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/golangsnmp/netelab"
	"github.com/golangsnmp/netelab/cmd/internal/cliutil"
	"github.com/golangsnmp/netelab/netlist"
)

const dumpUsage = `netelab dump - Write the netlists as JSON

Usage:
  netelab dump [options] [FILE|DIR]...

Every unit's netlist is checked against the netlist schema before it is
written.

Options:
  --unit NAME     Only dump module NAME
  --compact       Minified JSON (no indentation)
  --no-validate   Skip schema validation
  --no-diags      Omit diagnostics from the output
  -h, --help      Show help

Examples:
  netelab dump rtl/alu.v
  netelab dump --unit alu -o alu.json rtl/
  netelab dump rtl/ | jq '.units[].netlist.devices | length'
`

// DumpOutput is the top-level JSON output for the dump command.
type DumpOutput struct {
	Units       []UnitJSON       `json:"units"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
}

// UnitJSON holds one elaborated module.
type UnitJSON struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Fingerprint string            `json:"fingerprint"`
	Netlist     *netlist.Document `json:"netlist"`
}

// DiagnosticJSON holds a diagnostic message.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Module   string `json:"module,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

func (c *cli) cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, dumpUsage) }

	unit := fs.String("unit", "", "only dump this module")
	compact := fs.Bool("compact", false, "minified JSON")
	noValidate := fs.Bool("no-validate", false, "skip schema validation")
	noDiags := fs.Bool("no-diags", false, "omit diagnostics")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, dumpUsage)
		return exitOK
	}

	var opts []netelab.Option
	if *unit != "" {
		opts = append(opts, netelab.WithTop(*unit))
	}
	res, err := c.elaborate(fs.Args(), opts...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	output, err := buildDumpOutput(res, !*noValidate, !*noDiags)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	data, err := marshalJSON(output, !*compact)
	if err != nil {
		printError("failed to marshal JSON: %v", err)
		return exitError
	}

	out, closeOut, err := cliutil.GetOutput(c.OutputFile)
	if err != nil {
		printError("%v", err)
		return exitError
	}
	defer closeOut()
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		printError("%v", err)
		return exitError
	}

	if res.Failed() {
		return exitFailing
	}
	return exitOK
}

// buildDumpOutput exports every unit, validating each document when
// validate is set.
func buildDumpOutput(res *netelab.Result, validate, diags bool) (*DumpOutput, error) {
	var v *netlist.Validator
	if validate {
		var err error
		if v, err = netlist.NewValidator(); err != nil {
			return nil, err
		}
	}

	output := &DumpOutput{Units: []UnitJSON{}}
	for _, u := range res.Units {
		doc := u.Design.Export()
		if v != nil {
			if err := v.Validate(doc); err != nil {
				return nil, fmt.Errorf("unit %s: %w", u.Name, err)
			}
		}
		output.Units = append(output.Units, UnitJSON{
			Name:        u.Name,
			Path:        u.Path,
			Fingerprint: u.Design.FingerprintString(),
			Netlist:     doc,
		})
	}
	if diags {
		for _, d := range res.Diagnostics() {
			output.Diagnostics = append(output.Diagnostics, DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code,
				Module:   d.Module,
				Line:     d.Line,
				Column:   d.Column,
				Message:  d.Message,
			})
		}
	}
	return output, nil
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
