// Package logging builds the stderr logger used by the csvjson command.
package logging

import (
	"io"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

type syncWriter struct {
	io.Writer
}

func (syncWriter) Sync() error { return nil }

// New returns a logger writing to dst. Debug lines are only emitted when
// debug is set.
func New(dst io.Writer, debug bool) slog.Logger {
	sw, ok := dst.(logger.SyncWriter)
	if !ok {
		sw = syncWriter{dst}
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   sw,
		IncludeDebug: debug,
	})
}

// Nop returns a logger that discards everything.
func Nop() slog.Logger {
	return logger.NewNopLogger()
}
