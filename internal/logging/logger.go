// Package logging configures log/slog for the process and hands out
// request-scoped loggers that carry chi's request id.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup builds the logger for env and installs it as the slog default.
//
// dev (and anything unrecognised) logs human-readable text at DEBUG,
// staging logs JSON at DEBUG, prod logs JSON at INFO.
func Setup(env string) *slog.Logger {
	log := New(os.Stdout, env)
	slog.SetDefault(log)
	return log
}

// New returns a logger for env writing to w.
func New(w io.Writer, env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// FromContext returns the default logger, tagged with request_id when ctx
// came through chi's RequestID middleware.
//
//	log := logging.FromContext(r.Context())
//	log.Info("creating a student")
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With(slog.String("request_id", reqID))
	}

	return logger
}
