package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcrown/tickerdata/internal/api"
	"github.com/lcrown/tickerdata/internal/config"
	"github.com/lcrown/tickerdata/internal/database"
	"github.com/lcrown/tickerdata/internal/pipeline"
	"github.com/lcrown/tickerdata/internal/store"
	"github.com/lcrown/tickerdata/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/ingester.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ingester",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.BaseURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	db, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connected")

	st := store.New(db, logger)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare schema", "error", err)
		os.Exit(1)
	}

	// Create API client
	apiClient := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryCooldown),
	)

	// Run the ingestion pipeline
	p := pipeline.New(pipeline.Config{
		PageSize:           cfg.Ingest.PageSize,
		Concurrency:        cfg.Ingest.Concurrency,
		PersistConcurrency: cfg.Ingest.PersistConcurrency,
		PersistMaxRetries:  cfg.Ingest.PersistMaxRetries,
		PersistCooldown:    cfg.Ingest.PersistCooldown,
	}, apiClient, st, logger)

	sum, err := p.Run(ctx)
	if err != nil {
		logger.Error("ingestion failed",
			"run_id", sum.RunID,
			"stage", sum.Stage,
			"error", err,
		)
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"run_id", sum.RunID,
		"counted", sum.Counted,
		"listed", sum.Listed,
		"enriched", sum.Enriched,
		"persisted", sum.Persisted,
		"duration", sum.Duration,
	)
}
