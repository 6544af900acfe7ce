package main

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/golangsnmp/netelab"
)

const lintUsage = `netelab lint - Report diagnostics

Usage:
  netelab lint [options] [FILE|DIR]...

Options:
  --level LEVEL   Reporting threshold: strict, normal, quiet, silent or 0-6
                  (default: normal)
  --fail-on SEV   Exit 2 if any diagnostic at SEV or worse (default: sorry)
  --ignore CODE   Ignore diagnostic codes (repeatable, supports globs like "undriven-*")
  --only CODE     Only report these codes (repeatable)
  --format FMT    Output format: text, json, sarif, compact (default: text)
  --group-by KEY  Group output: module, code, severity (default: none)
  --summary       Show summary only (counts by severity)
  --quiet         No output, exit code only
  -h, --help      Show help

Severities:
  0 = fatal       Cannot continue
  1 = internal    Lowering reached an unhandled case
  2 = error       Design is wrong
  3 = sorry       Valid construct that is not supported
  4 = warning     Suspicious but legal
  5 = info        Informational

Examples:
  netelab lint rtl/
  netelab lint --level strict rtl/alu.v           # Include info notices
  netelab lint --fail-on warning rtl/             # Fail on warnings
  netelab lint --ignore "undriven-*" rtl/         # Skip undriven input checks
  netelab lint --format sarif rtl/ > lint.sarif   # SARIF for IDE/CI
`

type lintConfig struct {
	level   string
	failOn  string
	ignore  []string
	only    []string
	format  string
	groupBy string
	summary bool
	quiet   bool
}

type lintResult struct {
	Diagnostics []lintDiagnostic `json:"diagnostics,omitempty"`
	Summary     lintSummary      `json:"summary"`
	ExitCode    int              `json:"-"`
}

type lintDiagnostic struct {
	Severity    string `json:"severity"`
	SeverityNum int    `json:"severity_num"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Module      string `json:"module,omitempty"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
}

type lintSummary struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByCode     map[string]int `json:"by_code,omitempty"`
	Modules    int            `json:"modules"`
}

func (c *cli) cmdLint(args []string) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, lintUsage) }

	cfg := lintConfig{
		level:  "normal",
		failOn: "sorry",
		format: "text",
	}

	fs.StringVar(&cfg.level, "level", cfg.level, "report threshold")
	fs.StringVar(&cfg.failOn, "fail-on", cfg.failOn, "failure threshold")
	fs.Func("ignore", "ignore codes", func(s string) error {
		cfg.ignore = append(cfg.ignore, s)
		return nil
	})
	fs.Func("only", "only report these codes", func(s string) error {
		cfg.only = append(cfg.only, s)
		return nil
	})
	fs.StringVar(&cfg.format, "format", cfg.format, "output format")
	fs.StringVar(&cfg.groupBy, "group-by", cfg.groupBy, "grouping key")
	fs.BoolVar(&cfg.summary, "summary", false, "summary only")
	fs.BoolVar(&cfg.quiet, "quiet", false, "no output")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, lintUsage)
		return exitOK
	}

	switch cfg.format {
	case "text", "json", "sarif", "compact":
	default:
		printError("unknown format: %s", cfg.format)
		return exitError
	}
	switch cfg.groupBy {
	case "", "module", "code", "severity":
	default:
		printError("unknown group-by: %s", cfg.groupBy)
		return exitError
	}

	diagCfg, failAt, err := cfg.diagnosticConfig()
	if err != nil {
		printError("%v", err)
		return exitError
	}
	res, err := c.elaborate(fs.Args(), netelab.WithDiagnosticConfig(diagCfg))
	if err != nil {
		printError("%v", err)
		return exitError
	}
	result := buildLintResult(res, cfg, failAt)

	if !cfg.quiet {
		var err error
		switch cfg.format {
		case "json":
			err = printLintJSON(result)
		case "sarif":
			err = printLintSARIF(result)
		case "compact":
			printLintCompact(result, cfg)
		default:
			printLintText(result, cfg)
		}
		if err != nil {
			printError("output encoding failed: %v", err)
			return exitError
		}
	}
	return result.ExitCode
}

// diagnosticConfig maps the lint flags onto a DiagnosticConfig. Failure
// is decided here, so FailAt is left at fatal.
func (cfg lintConfig) diagnosticConfig() (netelab.DiagnosticConfig, netelab.Severity, error) {
	level, err := parseLevel(cfg.level)
	if err != nil {
		return netelab.DiagnosticConfig{}, 0, err
	}
	failAt, err := netelab.ParseSeverity(cfg.failOn)
	if err != nil {
		return netelab.DiagnosticConfig{}, 0, err
	}
	return netelab.DiagnosticConfig{
		Level:  level,
		FailAt: netelab.SeverityFatal,
		Ignore: cfg.ignore,
	}, failAt, nil
}

func parseLevel(s string) (netelab.StrictnessLevel, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("level %d out of range 0-6", n)
		}
		return netelab.StrictnessLevel(n), nil
	}
	return netelab.ParseStrictness(s)
}

func buildLintResult(res *netelab.Result, cfg lintConfig, failAt netelab.Severity) *lintResult {
	result := &lintResult{
		Summary: lintSummary{
			BySeverity: make(map[string]int),
			ByCode:     make(map[string]int),
			Modules:    len(res.Units),
		},
	}

	files := make(map[string]string, len(res.Units))
	for _, u := range res.Units {
		files[u.Name] = u.Path
	}

	for _, d := range res.Diagnostics() {
		if len(cfg.only) > 0 && !matchesAny(d.Code, cfg.only) {
			continue
		}
		ld := lintDiagnostic{
			Severity:    d.Severity.String(),
			SeverityNum: int(d.Severity),
			Code:        d.Code,
			Message:     d.Message,
			Module:      d.Module,
			Line:        d.Line,
			Column:      d.Column,
		}
		if path, ok := files[d.Module]; ok {
			ld.File = path
		} else {
			ld.File = d.Module
			ld.Module = ""
		}
		result.Diagnostics = append(result.Diagnostics, ld)
		result.Summary.Total++
		result.Summary.BySeverity[ld.Severity]++
		result.Summary.ByCode[d.Code]++

		if d.Severity <= failAt {
			result.ExitCode = exitFailing
		}
	}
	return result
}

func matchesAny(code string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		return matchGlob(p, code)
	})
}

// matchGlob performs simple glob matching with a leading or trailing *.
func matchGlob(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}

func (d lintDiagnostic) location() string {
	where := d.File
	if d.Module != "" && d.File != "" {
		where = d.File + "(" + d.Module + ")"
	}
	if where == "" {
		return ""
	}
	if d.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, d.Line)
		if d.Column > 0 {
			where = fmt.Sprintf("%s:%d", where, d.Column)
		}
	}
	return where
}

func printLintText(result *lintResult, cfg lintConfig) {
	if cfg.summary {
		printLintSummary(result)
		return
	}

	switch cfg.groupBy {
	case "module":
		printLintGrouped(result, func(d lintDiagnostic) string {
			return cmp.Or(d.Module, d.File, "(unknown)")
		})
	case "code":
		printLintGrouped(result, func(d lintDiagnostic) string {
			return cmp.Or(d.Code, "(unknown)")
		})
	case "severity":
		printLintBySeverity(result)
	default:
		for _, d := range result.Diagnostics {
			printLintDiagLine(d, true)
		}
	}

	if result.Summary.Total > 0 {
		fmt.Println()
		printLintSummary(result)
	} else {
		fmt.Printf("No issues found in %d modules\n", result.Summary.Modules)
	}
}

func printLintGrouped(result *lintResult, key func(lintDiagnostic) string) {
	groups := make(map[string][]lintDiagnostic)
	for _, d := range result.Diagnostics {
		k := key(d)
		groups[k] = append(groups[k], d)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		fmt.Printf("\n%s (%d):\n", k, len(groups[k]))
		for _, d := range groups[k] {
			fmt.Printf("  ")
			printLintDiagLine(d, true)
		}
	}
}

func printLintBySeverity(result *lintResult) {
	bySev := make(map[int][]lintDiagnostic)
	for _, d := range result.Diagnostics {
		bySev[d.SeverityNum] = append(bySev[d.SeverityNum], d)
	}
	sevs := make([]int, 0, len(bySev))
	for s := range bySev {
		sevs = append(sevs, s)
	}
	slices.Sort(sevs)

	for _, sev := range sevs {
		diags := bySev[sev]
		fmt.Printf("\n%s (%d):\n", diags[0].Severity, len(diags))
		for _, d := range diags {
			fmt.Printf("  ")
			printLintDiagLine(d, false)
		}
	}
}

func printLintDiagLine(d lintDiagnostic, withSeverity bool) {
	var parts []string
	if withSeverity {
		parts = append(parts, d.Severity+":")
	}
	if d.Code != "" {
		parts = append(parts, "["+d.Code+"]")
	}
	if loc := d.location(); loc != "" {
		parts = append(parts, loc+":")
	}
	parts = append(parts, d.Message)
	fmt.Println(strings.Join(parts, " "))
}

func printLintSummary(result *lintResult) {
	fmt.Printf("Checked %d modules, found %d issues:\n", result.Summary.Modules, result.Summary.Total)
	for sev := netelab.SeverityFatal; sev <= netelab.SeverityInfo; sev++ {
		if count := result.Summary.BySeverity[sev.String()]; count > 0 {
			fmt.Printf("  %-9s %d\n", sev.String()+":", count)
		}
	}
}

func printLintCompact(result *lintResult, cfg lintConfig) {
	if cfg.summary {
		fmt.Printf("%d issues", result.Summary.Total)
		var parts []string
		for _, sev := range []netelab.Severity{netelab.SeverityError, netelab.SeveritySorry, netelab.SeverityWarning} {
			if n := result.Summary.BySeverity[sev.String()]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, sev))
			}
		}
		if len(parts) > 0 {
			fmt.Printf(" (%s)", strings.Join(parts, ", "))
		}
		fmt.Println()
		return
	}

	for _, d := range result.Diagnostics {
		fmt.Printf("%s: %s [%s] %s\n", d.location(), d.Severity, d.Code, d.Message)
	}
}

func printLintJSON(result *lintResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
