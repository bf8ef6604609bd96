package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pgha/statusapi/internal/api"
	"github.com/pgha/statusapi/internal/backup"
	"github.com/pgha/statusapi/internal/cluster"
	"github.com/pgha/statusapi/internal/config"
	"github.com/pgha/statusapi/internal/db"
	"github.com/pgha/statusapi/internal/item"
	"github.com/pgha/statusapi/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Debug)

	// The service starts even when the database is unreachable: the
	// status endpoints exist to report on a broken cluster, and /ready
	// communicates the degraded state.
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := db.New(initCtx, cfg)
	cancelInit()
	if err != nil {
		slog.Warn("database pool initialization failed; database endpoints disabled", "error", err)
		pool = nil
	} else {
		slog.Info("database connection pool initialized",
			"host", cfg.DBHost, "database", cfg.DBName,
			"poolMin", cfg.DBPoolMinSize, "poolMax", cfg.DBPoolMaxSize)
	}

	deps := api.RouterDeps{
		AppName:   cfg.AppName,
		Version:   cfg.AppVersion,
		Backups:   backup.NewAggregator(backup.ExecRunner{}),
		Stanza:    cfg.BackupStanza,
		Topology:  cluster.NewClient(cfg.PatroniURL),
		AccessLog: cfg.Debug,
	}
	if pool != nil {
		deps.Pinger = pool
		deps.Repo = item.NewRepository(pool)
		deps.Collector = metrics.NewCollector(pool)
	}

	router := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "name", cfg.AppName, "version", cfg.AppVersion, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// In-flight requests have drained; now release the pool.
	if pool != nil {
		pool.Close()
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
