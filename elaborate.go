package netelab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/golangsnmp/netelab/internal/module"
	"github.com/golangsnmp/netelab/internal/parser"
	"github.com/golangsnmp/netelab/internal/types"
	"github.com/golangsnmp/netelab/netlist"
)

// sourceFile is one file to elaborate. content is read lazily from src
// when nil.
type sourceFile struct {
	path    string
	src     Source
	content []byte
}

// fileResult is what one worker produces for one file.
type fileResult struct {
	diagnostics []Diagnostic
	units       []unitResult
}

type unitResult struct {
	unit      *Unit
	line, col int
}

// readSources lists the files of every source, dropping paths already
// listed by an earlier source.
func readSources(ctx context.Context, sources []Source, logger *slog.Logger) ([]sourceFile, error) {
	seen := make(map[string]struct{})
	var files []sourceFile
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		paths, err := src.Files()
		if err != nil {
			return nil, fmt.Errorf("list sources: %w", err)
		}
		for _, p := range paths {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			files = append(files, sourceFile{path: p, src: src})
		}
	}
	l := types.Logger{L: logger}
	l.Log(slog.LevelDebug, "sources listed", slog.Int("files", len(files)))
	return files, nil
}

// elaborateFiles parses and elaborates files in parallel, at most one
// worker per CPU. Every module gets its own design, so workers share no
// state; results are merged in file order afterwards.
func elaborateFiles(ctx context.Context, files []sourceFile, cfg config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := types.Logger{L: cfg.logger}
	l.Log(slog.LevelInfo, "parallel elaboration", slog.Int("files", len(files)))

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content := f.content
			if content == nil {
				var err error
				if content, err = readFile(f); err != nil {
					return err
				}
			}
			results[i] = elaborateFile(f.path, content, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := merge(files, results, cfg)
	l.Log(slog.LevelInfo, "parallel elaboration complete",
		slog.Int("units", len(res.Units)),
		slog.Int("errors", res.Errors()))
	return res, nil
}

func readFile(f sourceFile) ([]byte, error) {
	r, err := f.src.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer r.Close() //nolint:errcheck // read-only
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return content, nil
}

// elaborateFile parses one file and elaborates each of its modules.
func elaborateFile(path string, content []byte, cfg config) fileResult {
	lines := types.NewLineTable(content)
	file := parser.New(content, types.Component(cfg.logger, "parser"), cfg.diagConfig).ParseFile()

	var out fileResult
	for _, d := range file.Diagnostics {
		line, col := lines.Position(d.Span.Start)
		out.diagnostics = append(out.diagnostics, Diagnostic{
			Severity: netlist.Severity(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Module:   path,
			Line:     line,
			Column:   col,
		})
	}

	mcfg := module.Config{Diagnostics: cfg.diagConfig, Implicit: cfg.implicit}
	for _, mod := range file.Modules {
		if cfg.top != "" && mod.Name.Text != cfg.top {
			continue
		}
		line, col := lines.Position(mod.Name.Span.Start)
		out.units = append(out.units, unitResult{
			unit: &Unit{
				Name:   mod.Name.Text,
				Path:   path,
				Design: module.Elaborate(mod, lines, cfg.logger, mcfg),
			},
			line: line,
			col:  col,
		})
	}
	return out
}

// merge assembles per-file results in file order. The first module of a
// name wins; later ones are dropped with a duplicate-module error.
func merge(files []sourceFile, results []fileResult, cfg config) *Result {
	res := &Result{config: cfg.diagConfig}
	first := make(map[string]string)
	for i, fr := range results {
		for _, d := range fr.diagnostics {
			res.report(d)
		}
		for _, ur := range fr.units {
			name := ur.unit.Name
			if prev, dup := first[name]; dup {
				res.report(Diagnostic{
					Severity: SeverityError,
					Code:     types.DiagDuplicateModuleName,
					Message:  fmt.Sprintf("module %s is already defined in %s", name, prev),
					Module:   files[i].path,
					Line:     ur.line,
					Column:   ur.col,
				})
				continue
			}
			first[name] = files[i].path
			res.Units = append(res.Units, ur.unit)
		}
	}
	if cfg.top != "" && len(res.Units) == 0 {
		res.report(Diagnostic{
			Severity: SeverityError,
			Code:     types.DiagTopNotFound,
			Message:  fmt.Sprintf("top module %s is not defined in any source", cfg.top),
		})
	}
	return res
}
