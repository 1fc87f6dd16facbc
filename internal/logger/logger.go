// Package logger provides structured logging behind a small interface so
// core packages do not depend on a concrete logging backend.
package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Level selects the minimum severity emitted.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Logger is the structured key/value logging interface used across the
// module.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type charmLogger struct {
	inner *charmlog.Logger
}

func (l *charmLogger) Debug(msg string, keyvals ...any) { l.inner.Debug(msg, keyvals...) }
func (l *charmLogger) Info(msg string, keyvals ...any)  { l.inner.Info(msg, keyvals...) }
func (l *charmLogger) Warn(msg string, keyvals ...any)  { l.inner.Warn(msg, keyvals...) }
func (l *charmLogger) Error(msg string, keyvals ...any) { l.inner.Error(msg, keyvals...) }

// New returns a logger writing to w at the given level.
func New(w io.Writer, level Level) Logger {
	return &charmLogger{inner: charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmLevel(level),
	})}
}

// Default returns the standard stderr logger.
func Default(level Level) Logger {
	return New(os.Stderr, level)
}

func charmLevel(level Level) charmlog.Level {
	switch level {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
