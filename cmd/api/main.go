package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/paoquentinho/storefront/api/routes"
	"github.com/paoquentinho/storefront/internal/app"
	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/instance"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/tracing"
)

const (
	serviceName     = "paoquentinho-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(runCtx, cfg.Tracing, tracing.Options{
		ServiceName: serviceName,
		Environment: cfg.App.Env,
	}, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to init tracing", err)
		os.Exit(1)
	}

	storefront, err := app.New(runCtx, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap storefront", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"storage":  cfg.Storage.NormalizedBackend(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, storefront),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			exitCode = 1
		}
		cancel()
	}

	if err := storefront.Close(); err != nil {
		logg.Error(ctx, "error closing storefront", err)
		exitCode = 1
	}
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := shutdownTracing(flushCtx); err != nil {
		logg.Error(ctx, "tracing shutdown failed", err)
	}
	cancelFlush()
	logg.Info(ctx, "api server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
