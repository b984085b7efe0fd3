// Package diag implements the collector's diagnostic channel: the
// mechanism by which the collector reports its own errors. These
// diagnostics are written through the File Sink, not the pipe, so the
// collector can record its own troubles even though its own stderr may be
// pointed at a null device (see internal/handoff).
//
// Modeled directly on github.com/Data-Corruption/stdx/xlog: a *log.Logger
// per severity, prefixed with the process PID. Unlike xlog, there is no
// separate rotating writer of its own; diag writes through whichever
// *sink.Sink the collector already owns, preserving the invariant that at
// most one current file exists at any instant.
package diag

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger reports the collector's own diagnostics to its current output
// file. The zero value is not valid; construct with New.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

// New constructs a Logger writing through w (ordinarily a *sink.Sink, but
// any io.Writer works).
func New(w io.Writer) *Logger {
	pid := os.Getpid()
	return &Logger{
		info:  log.New(w, fmt.Sprintf("[PID:%d]LOG: ", pid), log.LstdFlags),
		warn:  log.New(w, fmt.Sprintf("[PID:%d]WARNING: ", pid), log.LstdFlags),
		error: log.New(w, fmt.Sprintf("[PID:%d]ERROR: ", pid), log.LstdFlags),
	}
}

// Info reports a routine diagnostic, e.g. "logger shutting down".
func (l *Logger) Info(msg string) {
	_ = l.info.Output(2, msg)
}

// Infof is the formatted form of Info.
func (l *Logger) Infof(format string, v ...any) {
	_ = l.info.Output(2, fmt.Sprintf(format, v...))
}

// Warn reports a non-fatal problem the collector is recovering from, e.g. a
// short write or a rotation failure that left the old file in place.
func (l *Logger) Warn(msg string) {
	_ = l.warn.Output(2, msg)
}

// Warnf is the formatted form of Warn.
func (l *Logger) Warnf(format string, v ...any) {
	_ = l.warn.Output(2, fmt.Sprintf(format, v...))
}

// Error reports a serious problem, e.g. disabling auto-rotation.
func (l *Logger) Error(msg string) {
	_ = l.error.Output(2, msg)
}

// Errorf is the formatted form of Error.
func (l *Logger) Errorf(format string, v ...any) {
	_ = l.error.Output(2, fmt.Sprintf(format, v...))
}
