package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/iw2rmb/inkwell/internal/config"
)

// newLogger writes to the configured log file, or to fallback when none is
// set. A nil fallback discards.
func newLogger(c config.Log, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	w, closeFn := fallback, func() error { return nil }
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, f.Close
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), closeFn, nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
