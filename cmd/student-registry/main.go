// main is the entry point of the student registry.
//
// STARTUP SEQUENCE:
//  1. Load .env (if present) and the configuration
//  2. Initialise the logger
//  3. Open the SQLite database and create the students table
//  4. Register all HTTP routes
//  5. Serve until SIGINT/SIGTERM, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-registry --config=config/local.yaml
//
// or with no file at all, relying on environment variables and defaults:
//
//	STORAGE_PATH=students.db go run ./cmd/student-registry
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/http/flash"
	"github.com/aanand-mishra/student-registry/internal/http/router"
	"github.com/aanand-mishra/student-registry/internal/logging"
	"github.com/aanand-mishra/student-registry/internal/storage/sqlite"
	"github.com/aanand-mishra/student-registry/internal/students"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// A missing .env is normal; real env vars and the YAML file still apply.
	envLoaded := godotenv.Load() == nil

	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := logging.Setup(cfg.Env)

	log.Info("starting student-registry",
		slog.String("env", cfg.Env),
		slog.Bool("dotenv", envLoaded),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Schema creation runs on every start, whether or not the file existed.
	// Any failure here is fatal.
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.InitSchema(context.Background()); err != nil {
		log.Error("failed to initialise schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	registry := students.New(store)
	flashes := flash.NewStore(cfg.SecretKey)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router.New(registry, flashes),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 5. Serve ──────────────────────────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}
