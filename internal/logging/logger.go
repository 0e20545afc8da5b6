// Package logging provides the leveled logger shared by the blogtools
// commands: coloured lines on stderr, plus an optional plain log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn (or warning), error. Empty means info.
	Level string
	// Output receives console log lines. Defaults to os.Stderr.
	Output io.Writer
	// FileDir, when set, also appends plain log lines to FileDir/blogtools.log
	// so CI runs can be inspected after the fact.
	FileDir string
}

// Logger writes leveled, structured lines to the console and optionally to
// an append-only log file. A nil *Logger discards everything.
type Logger struct {
	console *charmlog.Logger
	file    *charmlog.Logger
	handle  *os.File
}

// New builds a logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{
		console: charmlog.NewWithOptions(out, charmlog.Options{
			Level:  level,
			Prefix: "blogtools",
		}),
	}
	if opts.FileDir == "" {
		return l, nil
	}
	if err := os.MkdirAll(opts.FileDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(opts.FileDir, "blogtools.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	l.handle = f
	l.file = charmlog.NewWithOptions(f, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02T15:04:05Z07:00",
		Formatter:       charmlog.LogfmtFormatter,
	})
	return l, nil
}

// ParseLevel maps a config level name to a log level.
func ParseLevel(name string) (charmlog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return charmlog.DebugLevel, nil
	case "", "info":
		return charmlog.InfoLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "error":
		return charmlog.ErrorLevel, nil
	default:
		return charmlog.InfoLevel, fmt.Errorf("logging: unknown level %q", name)
	}
}

// Close releases the log file handle, if any.
func (l *Logger) Close() error {
	if l == nil || l.handle == nil {
		return nil
	}
	return l.handle.Close()
}

// Debug logs diagnostic detail, hidden unless the level is debug.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.log(charmlog.DebugLevel, msg, keyvals...)
}

// Info logs routine progress.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.log(charmlog.InfoLevel, msg, keyvals...)
}

// Warn logs a recoverable problem, such as a post without an H1.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.log(charmlog.WarnLevel, msg, keyvals...)
}

// Error logs a failure.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.log(charmlog.ErrorLevel, msg, keyvals...)
}

func (l *Logger) log(level charmlog.Level, msg string, keyvals ...any) {
	if l == nil {
		return
	}
	if l.console != nil {
		l.console.Log(level, msg, keyvals...)
	}
	if l.file != nil {
		l.file.Log(level, msg, keyvals...)
	}
}
