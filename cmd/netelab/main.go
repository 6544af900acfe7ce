// Command netelab elaborates Verilog modules into structural netlists.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/golangsnmp/netelab"
	"github.com/golangsnmp/netelab/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK      = 0 // success
	exitError   = 1 // user error or processing failure
	exitFailing = 2 // diagnostics reached the failure threshold
)

const usage = `netelab - structural HDL elaborator

Usage:
  netelab <command> [options] [arguments]

Commands:
  elab    Elaborate files and print a per-module summary
  lint    Report diagnostics
  dump    Write the netlists as JSON
  eval    Fold a constant expression
  codes   List diagnostic codes
  paths   Show library search paths
  version Show version

Common options:
  -c, --config FILE      Project file (default: ./netelab.yaml if present)
  --implicit POLICY      Implicit nets: off, warn, error
  -p, --path DIR         Add a library directory (repeatable)
  -o, --output FILE      Write output to FILE
  -v, --verbose          Enable debug logging
  -vv                    Enable trace logging (implies -v)
  -h, --help             Show help

Arguments are HDL files or directories; directories are searched
recursively for .v and .vl files.

Examples:
  netelab elab rtl/
  netelab lint --implicit error top.v
  netelab dump -o netlist.json rtl/alu.v
  netelab eval -D W=8 "W*2-1"
`

type cli struct {
	cliutil.GlobalFlags
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, cmd, cmdArgs := cliutil.ParseArgs(args)
	c := &cli{GlobalFlags: flags}

	if c.HelpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}
	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	switch cmd {
	case "elab":
		return c.cmdElab(cmdArgs)
	case "lint":
		return c.cmdLint(cmdArgs)
	case "dump":
		return c.cmdDump(cmdArgs)
	case "eval":
		return c.cmdEval(cmdArgs)
	case "codes":
		return c.cmdCodes(cmdArgs)
	case "paths":
		return c.cmdPaths(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.Verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.Verbose >= 2 {
		level = netelab.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// projectConfig loads the -c file, or ./netelab.yaml when it exists.
func (c *cli) projectConfig() (*netelab.ProjectConfig, error) {
	path := c.ConfigFile
	if path == "" {
		if _, err := os.Stat(netelab.DefaultConfigFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, err
		}
		path = netelab.DefaultConfigFile
	}
	return netelab.LoadConfig(path)
}

// buildSources turns file and directory arguments into sources.
func buildSources(args []string) ([]netelab.Source, error) {
	var sources []netelab.Source
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		src, err := netelab.DirTree(arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(files) > 0 {
		src, err := netelab.Files(files...)
		if err != nil {
			return nil, err
		}
		sources = append([]netelab.Source{src}, sources...)
	}
	return sources, nil
}

// elaborate runs the elaborator over args with the global settings
// applied, then extra options.
func (c *cli) elaborate(args []string, extra ...netelab.Option) (*netelab.Result, error) {
	var opts []netelab.Option

	pc, err := c.projectConfig()
	if err != nil {
		return nil, err
	}
	if pc != nil {
		opts = append(opts, netelab.WithProjectConfig(pc))
	}

	sources, err := buildSources(args)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		opts = append(opts, netelab.WithSource(src))
	}
	for _, p := range c.Paths {
		src, err := netelab.DirTree(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot access path %s: %v\n", p, err)
			continue
		}
		opts = append(opts, netelab.WithSource(src))
	}
	if len(sources) == 0 && len(c.Paths) == 0 {
		opts = append(opts, netelab.WithSearchPath())
	}

	if c.Implicit != "" {
		policy, err := netelab.ParseImplicitPolicy(c.Implicit)
		if err != nil {
			return nil, err
		}
		opts = append(opts, netelab.WithImplicitNets(policy))
	}
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, netelab.WithLogger(logger))
	}
	opts = append(opts, extra...)
	return netelab.ElaborateSource(context.Background(), opts...)
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("netelab %s\n", version)
}

func printError(format string, args ...any) {
	cliutil.PrintError(format, args...)
}
