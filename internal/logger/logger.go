// Package logger builds the *slog.Logger instances used across docsearch.
//
// Components accept a *slog.Logger and default to Nop when none is given.
// The CLI picks a handler from its flags: plain text, JSON, or the
// charmbracelet/log handler for colorized terminal output.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type config struct {
	level   slog.Level
	pretty  bool
	json    bool
	source  bool
	writers []io.Writer
}

// New creates a *slog.Logger. Output goes to stderr unless a writer is set,
// since stdout carries command results.
func New(opts ...Option) *slog.Logger {
	cfg := &config{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(cfg)
	}

	var w io.Writer = os.Stderr
	switch len(cfg.writers) {
	case 0:
	case 1:
		w = cfg.writers[0]
	default:
		w = io.MultiWriter(cfg.writers...)
	}

	switch {
	case cfg.pretty:
		h := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(cfg.level),
			ReportTimestamp: true,
			ReportCaller:    cfg.source,
		})
		return slog.New(h)
	case cfg.json:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.source}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.source}))
	}
}

// Nop returns a logger that discards everything
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

// OrNop returns l, or Nop when l is nil
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }
