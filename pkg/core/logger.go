package core

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns the logger used when the caller does not supply one.
// Debug records are only emitted when debug is set.
func NewLogger(debug bool) *log.Logger {
	return newLogger(os.Stderr, debug)
}

// DiscardLogger returns a logger that drops every record
func DiscardLogger() *log.Logger {
	return newLogger(io.Discard, false)
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "condenv",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
