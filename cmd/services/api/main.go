package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/router"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/subjects"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("API service starting...",
		"version", Version, "commit", GitCommit, "build_time", BuildTime)

	logger.Info("Connecting to vitals store", "backend", cfg.Vitals.Backend)
	vitalsStore, err := vitals.NewStore(cfg.Vitals)
	if err != nil {
		logger.Fatal("Failed to connect to vitals store", "error", err)
	}
	defer func() { _ = vitalsStore.Close() }()

	logger.Info("Connecting to subject registry", "backend", cfg.Subjects.Backend)
	subjectStore, err := subjects.NewStore(cfg.Subjects)
	if err != nil {
		logger.Fatal("Failed to connect to subject registry", "error", err)
	}
	defer func() { _ = subjectStore.Close() }()

	logger.Info("Connecting to queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	publisher, err := queue.NewPublisher(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to queue", "error", err)
	}
	defer func() { _ = publisher.Close() }()

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	app := router.New(logger, vitalsStore, subjectStore, publisher, *cfg)

	// Start server in background so shutdown can drain it
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	if err := app.Shutdown(); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("API service stopped")
}
