// Package logger provides verbose diagnostics for pdfqa.
// Nothing is written unless verbose mode is on (the --verbose flag), so the
// TUI and JSON output stay clean by default.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level prefixes.
const (
	levelDebug = "DEBUG"
	levelInfo  = "INFO"
	levelWarn  = "WARN"
)

// Logger writes verbose-gated, level-prefixed lines.
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	out     io.Writer
}

// New creates a logger writing to w. Verbose mode starts off.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{out: w}
}

// SetVerbose enables or disables output.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// SetOutput replaces the writer. A nil writer restores os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// Debug logs step-level detail.
func (l *Logger) Debug(format string, args ...any) {
	l.logf(levelDebug, format, args...)
}

// Info logs the outcome of an operation.
func (l *Logger) Info(format string, args ...any) {
	l.logf(levelInfo, format, args...)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(format string, args ...any) {
	l.logf(levelWarn, format, args...)
}

// Section starts a titled block, e.g. "=== Index Build ===".
func (l *Logger) Section(name string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.verbose {
		fmt.Fprintf(l.out, "\n=== %s ===\n", name)
	}
}

func (l *Logger) logf(level, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.verbose {
		fmt.Fprintf(l.out, "[%s] %s\n", level, fmt.Sprintf(format, args...))
	}
}

// std is the process-wide logger behind the package functions.
var std = New(os.Stderr)

// Default returns the process-wide logger.
func Default() *Logger { return std }

// SetVerbose enables or disables the process-wide logger.
func SetVerbose(v bool) { std.SetVerbose(v) }

// IsVerbose reports whether the process-wide logger is enabled.
func IsVerbose() bool { return std.IsVerbose() }

// SetOutput redirects the process-wide logger. Useful for testing.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Debug logs to the process-wide logger.
func Debug(format string, args ...any) { std.Debug(format, args...) }

// Info logs to the process-wide logger.
func Info(format string, args ...any) { std.Info(format, args...) }

// Warn logs to the process-wide logger.
func Warn(format string, args ...any) { std.Warn(format, args...) }

// Section starts a block on the process-wide logger.
func Section(name string) { std.Section(name) }
