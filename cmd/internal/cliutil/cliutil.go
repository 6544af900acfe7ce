// Package cliutil provides shared CLI utilities for netelab command-line tools.
package cliutil

import (
	"fmt"
	"os"
	"strings"
)

// GlobalFlags holds the flags accepted before or after any subcommand.
type GlobalFlags struct {
	Verbose    int
	ConfigFile string
	Implicit   string
	Paths      []string
	OutputFile string
	HelpFlag   bool
}

// ParseArgs parses global flags and extracts the subcommand from args.
// Flags handled: -v/--verbose, -vv, -c/--config, --implicit,
// -p/--path, -o/--output, -h/--help. Unrecognized flags are passed
// through to the subcommand, together with the following argument when
// the flag is known to take a value.
func ParseArgs(args []string) (flags GlobalFlags, cmd string, cmdArgs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			flags.HelpFlag = true
		case arg == "-v" || arg == "--verbose":
			flags.Verbose = max(flags.Verbose, 1)
		case arg == "-vv":
			flags.Verbose = 2
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				i++
				flags.ConfigFile = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			flags.ConfigFile = arg[len("--config="):]
		case arg == "--implicit":
			if i+1 < len(args) {
				i++
				flags.Implicit = args[i]
			}
		case strings.HasPrefix(arg, "--implicit="):
			flags.Implicit = arg[len("--implicit="):]
		case arg == "-p" || arg == "--path":
			if i+1 < len(args) {
				i++
				flags.Paths = append(flags.Paths, args[i])
			}
		case strings.HasPrefix(arg, "--path="):
			flags.Paths = append(flags.Paths, arg[len("--path="):])
		case arg == "-o" || arg == "--output":
			if i+1 < len(args) {
				i++
				flags.OutputFile = args[i]
			}
		case strings.HasPrefix(arg, "--output="):
			flags.OutputFile = arg[len("--output="):]
		case len(arg) > 1 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
			if takesValue(arg) && i+1 < len(args) {
				i++
				cmdArgs = append(cmdArgs, args[i])
			}
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}
	return
}

// valueFlags are subcommand flags whose value is a separate argument.
// Their value must not be mistaken for the subcommand name.
var valueFlags = map[string]bool{
	"--level":    true,
	"--fail-on":  true,
	"--ignore":   true,
	"--only":     true,
	"--format":   true,
	"--group-by": true,
	"--top":      true,
	"--unit":     true,
	"-D":         true,
	"--define":   true,
}

func takesValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	return valueFlags[arg] || valueFlags["-"+strings.TrimLeft(arg, "-")] || valueFlags["--"+strings.TrimLeft(arg, "-")]
}

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
