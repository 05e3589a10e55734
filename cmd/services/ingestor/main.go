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
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/services"
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
	logger.Info("Ingestor service starting...",
		"version", Version, "commit", GitCommit, "build_time", BuildTime)

	logger.Info("Connecting to vitals store", "backend", cfg.Vitals.Backend)
	vitalsStore, err := vitals.NewStore(cfg.Vitals)
	if err != nil {
		logger.Fatal("Failed to connect to vitals store", "error", err)
	}
	defer func() { _ = vitalsStore.Close() }()

	logger.Info("Connecting to queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	subscriber, err := queue.NewSubscriber(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to queue", "error", err)
	}
	defer func() { _ = subscriber.Close() }()

	ingest := services.NewIngestService(logger, vitalsStore, subscriber)
	if err := ingest.Start(); err != nil {
		logger.Fatal("Failed to subscribe to readings topic", "error", err)
	}
	logger.Info("Ingestor consuming", "topic", queue.TopicReadings)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	if err := ingest.Stop(); err != nil {
		logger.Error("Failed to detach from readings topic", "error", err)
	}
	logger.Info("Ingestor service stopped")
}
