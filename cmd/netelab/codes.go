package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golangsnmp/netelab"
)

const codesUsage = `netelab codes - List diagnostic codes

Usage:
  netelab codes [options]

Options:
  --json      JSON output
  -h, --help  Show help
`

func (c *cli) cmdCodes(args []string) int {
	fs := flag.NewFlagSet("codes", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, codesUsage) }

	asJSON := fs.Bool("json", false, "JSON output")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, codesUsage)
		return exitOK
	}

	codes := netelab.DiagnosticCodes()
	if *asJSON {
		data, err := marshalJSON(codes, true)
		if err != nil {
			printError("failed to marshal JSON: %v", err)
			return exitError
		}
		fmt.Println(string(data))
		return exitOK
	}

	phase := ""
	for _, info := range codes {
		if info.Phase != phase {
			if phase != "" {
				fmt.Println()
			}
			phase = info.Phase
			fmt.Printf("%s:\n", phase)
		}
		fmt.Printf("  %s\n", info.Code)
	}
	return exitOK
}
