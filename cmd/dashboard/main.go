package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/adapter/csvsource"
	httpadapter "github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/adapter/http"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/config"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/dashboard"
	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := csvsource.NewLoader(cfg, logger, metrics)
	ctrl := dashboard.New(source, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, ctrl, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Single fire-and-forget load at startup. A failure degrades to an empty
	// dashboard; it never prevents the server from coming up.
	if err := ctrl.Load(ctx); err != nil {
		logger.Error("dataset load error", "error", err)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
