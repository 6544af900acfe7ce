package netelab

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoSources is returned when ElaborateSource is called with no sources.
var ErrNoSources = errors.New("no HDL sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item logging (tokens, devices, lowering steps).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures Elaborate and ElaborateSource.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	diagConfig DiagnosticConfig
	implicit   ImplicitPolicy
	sources    []Source
	top        string
	searchPath bool
	project    *ProjectConfig
}

func newConfig(opts []Option) config {
	cfg := config{
		diagConfig: DefaultDiagnosticConfig(),
		implicit:   ImplicitWarn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithDiagnosticConfig sets the diagnostic reporting and failure
// thresholds.
func WithDiagnosticConfig(dc DiagnosticConfig) Option {
	return func(c *config) { c.diagConfig = dc }
}

// WithImplicitNets sets what happens when an undeclared name is used
// where a net may be implied.
func WithImplicitNets(policy ImplicitPolicy) Option {
	return func(c *config) { c.implicit = policy }
}

// WithSource adds a source of HDL files. It may be given more than once.
func WithSource(src Source) Option {
	return func(c *config) {
		if src != nil {
			c.sources = append(c.sources, src)
		}
	}
}

// WithTop restricts the result to the named module. If no source
// declares it, the result carries a top-not-found error.
func WithTop(name string) Option {
	return func(c *config) { c.top = name }
}

// WithSearchPath adds the directories named by the NETELAB_PATH
// environment variable and by the project file's search paths, after
// any explicit source.
func WithSearchPath() Option {
	return func(c *config) { c.searchPath = true }
}

// WithProjectConfig applies a project file loaded with LoadConfig.
// Options given after it override its settings.
func WithProjectConfig(pc *ProjectConfig) Option {
	return func(c *config) {
		if pc == nil {
			return
		}
		c.project = pc
		c.diagConfig = pc.DiagnosticConfig()
		c.implicit = pc.ImplicitPolicy()
		if pc.Top != "" {
			c.top = pc.Top
		}
	}
}

// Elaborate parses and elaborates the modules in one source buffer.
// The returned error covers context cancellation only; problems in the
// source are reported as diagnostics in the result.
//
// Example:
//
//	res, err := netelab.Elaborate(ctx, src,
//	    netelab.WithImplicitNets(netelab.ImplicitError),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics() {
//	    fmt.Println(d)
//	}
func Elaborate(ctx context.Context, src []byte, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	if src == nil {
		src = []byte{}
	}
	return elaborateFiles(ctx, []sourceFile{{path: "<input>", content: src}}, cfg)
}

// ElaborateSource elaborates every HDL file of the configured sources.
// Files are elaborated in parallel, one design per module.
//
// Example:
//
//	src, err := netelab.DirTree("rtl")
//	if err != nil {
//	    return err
//	}
//	res, err := netelab.ElaborateSource(ctx,
//	    netelab.WithSource(src),
//	    netelab.WithLogger(slog.Default()),
//	)
func ElaborateSource(ctx context.Context, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	sources := cfg.sources
	if cfg.searchPath {
		var extra []string
		if cfg.project != nil {
			extra = cfg.project.Paths
		}
		sources = append(sources, discoverSearchSources(extra, cfg.extensions(), cfg.logger)...)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	files, err := readSources(ctx, sources, cfg.logger)
	if err != nil {
		return nil, err
	}
	return elaborateFiles(ctx, files, cfg)
}

func (c config) extensions() []string {
	if c.project != nil && len(c.project.Extensions) > 0 {
		return c.project.Extensions
	}
	return DefaultExtensions
}
