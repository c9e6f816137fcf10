package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/skeetstorm/skeetstorm/internal/bluesky"
	"github.com/skeetstorm/skeetstorm/internal/config"
	"github.com/skeetstorm/skeetstorm/internal/domain"
	"github.com/skeetstorm/skeetstorm/internal/httpserver"
	"github.com/skeetstorm/skeetstorm/internal/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up the persistent thread store
	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("create thread store: %w", err)
	}
	defer store.Close()
	logger.Info("opened thread store", "path", cfg.DBPath)

	// Set up the thread service with its upstream collaborators
	resolver := bluesky.NewIdentityResolver(cfg.UserAgent)
	fetcher := bluesky.NewClient(cfg.AppViewURL)
	threads := domain.NewThreadService(resolver, fetcher, store, cfg.CDNURL, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start the HTTP server
	server := httpserver.NewServer(cfg, threads, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("server started", "port", cfg.Port)

	// Wait for shutdown signal
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}
