package main

import (
	"fmt"
	"io"
	"log/slog"
)

type logger struct {
	*slog.Logger
}

func newLogger(w io.Writer, verbose bool) logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logger{slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Logf logs a progress message, only shown when running verbosely
func (l logger) Logf(format string, a ...interface{}) {
	if l.Logger == nil {
		return
	}
	l.Debug(fmt.Sprintf(format, a...))
}

// Slog returns the underlying logger, which discards every record if unset
func (l logger) Slog() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Logger
}
