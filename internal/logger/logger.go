// Package logger builds the zerolog logger shared by cflow commands.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/cflow/internal/model"
)

type contextKey struct{}

// New creates a logger writing to stderr. Terminals get the human-readable
// console format, everything else gets JSON lines. quiet drops info output.
func New(quiet bool) zerolog.Logger {
	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(out, quiet)
}

// NewWithWriter creates a JSON logger on w.
func NewWithWriter(w io.Writer, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// WithContext stores the logger in ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
			return l
		}
	}
	return zerolog.Nop()
}

// Diagnostics logs every diagnostic, at info for informational kinds and
// warn for the rest.
func Diagnostics(l zerolog.Logger, diags model.Diagnostics) {
	for _, d := range diags {
		ev := l.Warn()
		if d.Kind == model.DiagProrated {
			ev = l.Info()
		}
		ev = ev.Str("kind", string(d.Kind)).Str("source", d.Source)
		if d.Row >= 0 {
			ev = ev.Int("row", d.Row)
		}
		if d.Transaction != "" {
			ev = ev.Str("transaction", d.Transaction)
		}
		ev.Msg(d.Message)
	}
}
