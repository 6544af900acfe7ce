// Package types provides internal types shared across netelab packages.
package types

import (
	"context"
	"log/slog"
	"sort"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item logging (tokens, devices, junctions).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

var ctx = context.Background()

// Logger wraps slog.Logger with nil-safe helpers.
type Logger struct {
	L *slog.Logger
}

// Enabled returns true if logging is enabled at the given level.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(ctx, level)
}

// Log emits a log message if logging is enabled.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.L != nil && l.L.Enabled(ctx, level) {
		l.L.LogAttrs(ctx, level, msg, attrs...)
	}
}

// TraceEnabled returns true if trace-level logging is enabled.
func (l *Logger) TraceEnabled() bool {
	return l.Enabled(LevelTrace)
}

// Trace emits a trace-level log.
func (l *Logger) Trace(msg string, attrs ...slog.Attr) {
	l.Log(LevelTrace, msg, attrs...)
}

// Component returns a logger tagged with a component name, or nil when
// logger is nil.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", name))
}

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span represents a range in source text.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// Synthetic is a span for compiler-generated constructs.
var Synthetic = Span{Start: 0, End: 0}

// NewSpan creates a new span.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// IsSynthetic returns true if this is a synthetic span.
func (s Span) IsSynthetic() bool {
	return s.Start == 0 && s.End == 0
}

// SpanDiagnostic is a message from the lexer or parser (internal use).
// It is converted to netlist.Diagnostic with module name and line/column
// once the parse is complete.
type SpanDiagnostic struct {
	Severity int // netlist.Severity values (0=Fatal, 2=Error, ...)
	Code     string
	Span     Span
	Message  string
}

// Severity constants matching netlist.Severity values.
const (
	SeverityFatal    = 0
	SeverityInternal = 1
	SeverityError    = 2
	SeveritySorry    = 3
	SeverityWarning  = 4
	SeverityInfo     = 5
)

// LineTable maps byte offsets to 1-based line and column numbers.
type LineTable struct {
	starts []ByteOffset
}

// NewLineTable indexes the line starts of source.
func NewLineTable(source []byte) *LineTable {
	starts := []ByteOffset{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineTable{starts: starts}
}

// Position returns the line and column of offset. A nil table or a
// synthetic offset yields 0, 0.
func (t *LineTable) Position(offset ByteOffset) (line, col int) {
	if t == nil {
		return 0, 0
	}
	i := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > offset }) - 1
	return i + 1, int(offset-t.starts[i]) + 1
}
