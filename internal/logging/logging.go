// Package logging builds the stdlib *log.Logger instances every
// component in this module logs through, matching the flags and prefix
// convention the rest of the codebase uses, and offers a helper that
// reports whether a file is a terminal. Loggers are always built with
// the same prefix and flags, whatever their destination.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

// Flags is the standard flag set every logger in this module is built
// with: date, time with microsecond precision, no file/line (the
// prefix already names the component).
const Flags = log.LstdFlags | log.Lmicroseconds

// New builds a *log.Logger writing to w, prefixed with "[component] ".
func New(w io.Writer, component string) *log.Logger {
	return log.New(w, "["+component+"] ", Flags)
}

// NewStdout is New(os.Stdout, component), the constructor every cmd/
// entry point reaches for first.
func NewStdout(component string) *log.Logger {
	return New(os.Stdout, component)
}

// IsTerminal reports whether f is attached to an interactive terminal
// (including a Cygwin terminal). No logger in this package changes its
// output based on it.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
