// Package logger provides the structured logging wrapper used throughout
// the interpreter. It adapts charmbracelet/log behind a small interface so
// call sites never depend on the concrete logging library.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// LogLevel is the interpreter's own level enum, decoupled from charmlog's.
type LogLevel string

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

// ToCharmlogLevel converts to the underlying library's level type. Unknown
// values default to InfoLevel.
func (l LogLevel) ToCharmlogLevel() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

// Config controls logger construction.
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

func defaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		JSON:       false,
		AddSource:  false,
		TimeFormat: time.Kitchen,
	}
}

// Logger is the interface used across the interpreter. It never leaks the
// underlying charmbracelet type so other packages stay library-agnostic.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

type charmLogger struct {
	l *charmlog.Logger
}

// NewLogger builds a Logger from Config. A nil config uses sane defaults.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = defaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		ReportCaller:    cfg.AddSource,
	}
	if cfg.JSON {
		opts.Formatter = charmlog.JSONFormatter
	}
	l := charmlog.NewWithOptions(out, opts)
	l.SetLevel(cfg.Level.ToCharmlogLevel())
	return &charmLogger{l: l}
}

func (c *charmLogger) Debug(msg string, kv ...any) { c.l.Debug(msg, kv...) }
func (c *charmLogger) Info(msg string, kv ...any)  { c.l.Info(msg, kv...) }
func (c *charmLogger) Warn(msg string, kv ...any)  { c.l.Warn(msg, kv...) }
func (c *charmLogger) Error(msg string, kv ...any) { c.l.Error(msg, kv...) }

func (c *charmLogger) With(kv ...any) Logger {
	return &charmLogger{l: c.l.With(kv...)}
}

type ctxKey struct{}

// LoggerCtxKey is exported so callers may stash a logger under it directly
// if they already hold a context.Context value builder.
var LoggerCtxKey = ctxKey{}

// ContextWithLogger returns a new context carrying l.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

var fallback = NewLogger(nil)

// FromContext returns the logger stashed in ctx, or a process-wide default
// logger when none is present (or the value is of the wrong type / nil).
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return fallback
	}
	l, ok := ctx.Value(LoggerCtxKey).(Logger)
	if !ok || l == nil {
		return fallback
	}
	return l
}
