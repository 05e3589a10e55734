package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/simulator"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	subjectCount := flag.Int("subjects", 5, "Number of simulated subjects")
	interval := flag.Duration("interval", 30*time.Second, "Cadence between batches")
	dropRate := flag.Float64("drop-rate", 0.05, "Probability a field is missing")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	cfg := config.LoadOrDefault(*configPath)

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("Connecting to queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	publisher, err := queue.NewPublisher(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to queue", "error", err)
	}
	defer func() { _ = publisher.Close() }()

	sim := simulator.New(simulator.Config{
		Subjects: *subjectCount,
		Interval: *interval,
		DropRate: *dropRate,
		Seed:     *seed,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	logger.Info("Simulator running",
		"subjects", *subjectCount,
		"interval", interval.String())
	if err := sim.Run(ctx, publisher); err != nil && err != context.Canceled {
		logger.Fatal("Simulator failed", "error", err)
	}
	logger.Info("Simulator stopped")
}
