package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golangsnmp/netelab"
)

const pathsUsage = `netelab paths - Show library search paths

Usage:
  netelab paths [options]

Shows the directories searched when no files are given. When -p paths
are specified, shows those. Otherwise the project file's paths are
combined with /etc/netelab/paths, ~/.netelab/paths and NETELAB_PATH.

Options:
  -h, --help   Show help

Examples:
  netelab paths
  NETELAB_PATH=+/opt/cells netelab paths
`

func (c *cli) cmdPaths(args []string) int {
	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, pathsUsage) }

	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, pathsUsage)
		return exitOK
	}

	var paths []string
	if len(c.Paths) > 0 {
		paths = c.Paths
	} else {
		pc, err := c.projectConfig()
		if err != nil {
			printError("%v", err)
			return exitError
		}
		var base []string
		if pc != nil {
			base = pc.Paths
		}
		paths = netelab.SearchPaths(base...)
	}

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no search paths found")
		return exitOK
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return exitOK
}
