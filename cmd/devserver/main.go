package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/espk-mobile/appcore/internal/config"
	"github.com/espk-mobile/appcore/internal/devserver"
	"github.com/espk-mobile/appcore/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	db, err := devserver.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("running without postgres, accounts are in-memory", "error", err)
		db = nil
	} else {
		defer db.Close()
	}

	cache, err := devserver.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("running without redis, login rate limiting disabled", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	srv := devserver.New(cfg, db, cache, logger)

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	logger.Info("dev login server listening", "addr", cfg.Address())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
