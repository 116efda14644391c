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

	"github.com/ireporter-ke/ireporter/internal/auth"
	"github.com/ireporter-ke/ireporter/internal/config"
	"github.com/ireporter-ke/ireporter/internal/event"
	"github.com/ireporter-ke/ireporter/internal/service"
	"github.com/ireporter-ke/ireporter/internal/storage"
	"github.com/ireporter-ke/ireporter/internal/storage/memory"
	"github.com/ireporter-ke/ireporter/internal/storage/postgres"
	httpTransport "github.com/ireporter-ke/ireporter/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Run the application
	if err := run(cfg, logger); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var repos *storage.Repositories
	if cfg.DatabaseURL != "" {
		logger.Info("connecting to database")
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		logger.Info("database connected")
		repos = db.Repositories()
	} else {
		logger.Info("using in-memory store, records live for the process lifetime")
		repos = memory.New()
	}

	var hasher auth.Hasher
	if cfg.PasswordHashing == "plain" {
		logger.Warn("plaintext password storage enabled, never use this outside parity tests")
		hasher = auth.NewPlainHasher()
	} else {
		hasher = auth.NewBcryptHasher()
	}

	publisher := event.NewLoggingPublisher(logger)
	defer publisher.Close()

	reportService := service.NewReportService(repos.Reports, publisher)
	accountService := service.NewAccountService(repos.Accounts, repos.Sessions, hasher, publisher)

	errChan := make(chan error, 1)

	httpServer := httpTransport.NewServer(cfg, reportService, accountService, logger)
	go func() {
		logger.Info("starting HTTP server", "addr", httpServer.Addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	logger.Info("shutdown complete")
	return nil
}
