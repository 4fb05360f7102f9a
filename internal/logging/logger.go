// Package logging provides the printf-style logger used across the picker.
package logging

import (
	"fmt"
	"io"
	"log"
)

// Logger is a minimal printf-style logging contract.
type Logger interface {
	Debugf(format string, args ...any)
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Printf(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// StdLogger writes through the standard library logger. Debug lines are
// dropped unless debug is enabled.
type StdLogger struct {
	l     *log.Logger
	debug bool
}

// New returns a StdLogger writing to w with date, time and file:line prefixes.
func New(w io.Writer, debug bool) *StdLogger {
	return &StdLogger{
		l:     log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile),
		debug: debug,
	}
}

// Debugf logs when debug output is enabled.
func (s *StdLogger) Debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_ = s.l.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
}

// Printf always logs.
func (s *StdLogger) Printf(format string, args ...any) {
	_ = s.l.Output(2, fmt.Sprintf(format, args...))
}
