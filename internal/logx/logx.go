// Package logx provides the debug-only logger shared across holeweave's
// packages: a no-op by default, writing "[DEBUG] ..." lines to a
// configurable writer when enabled.
package logx

import (
	"fmt"
	"io"
	"os"
)

// Logger is a leveled debug logger. The zero value discards everything.
type Logger struct {
	debug func(format string, args ...any)
}

// New builds a Logger. When enabled is false, Debugf is a no-op; writer
// defaults to os.Stderr when nil.
func New(enabled bool, writer io.Writer) *Logger {
	if writer == nil {
		writer = os.Stderr
	}
	if !enabled {
		return &Logger{debug: func(format string, args ...any) {}}
	}
	return &Logger{debug: func(format string, args ...any) {
		fmt.Fprintf(writer, "[DEBUG] "+format+"\n", args...)
	}}
}

// Debugf logs a formatted debug line, or does nothing if the logger is
// disabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || l.debug == nil {
		return
	}
	l.debug(format, args...)
}
