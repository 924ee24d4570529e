// Package logx builds the process logger.
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a timestamped logger writing to w. Dev mode uses the human
// readable console writer at debug level; otherwise JSON lines at info.
func New(w io.Writer, dev bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Default is New on stdout.
func Default(dev bool) zerolog.Logger {
	return New(os.Stdout, dev)
}

// Nop discards everything; used by tests and library defaults.
func Nop() zerolog.Logger { return zerolog.Nop() }
