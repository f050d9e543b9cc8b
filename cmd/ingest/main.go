package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openroles/jobfeed/internal/config"
	"github.com/openroles/jobfeed/internal/feed"
	"github.com/openroles/jobfeed/internal/logger"
	"github.com/openroles/jobfeed/internal/repository"
	"github.com/openroles/jobfeed/internal/service"
	"github.com/openroles/jobfeed/internal/sink"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(logger.DefaultConfig())
	logger.SetDefault(appLogger)

	// Parse command line flags
	inputPath := flag.String("input", "", "Feed input: a local file, directory, archive, or URL")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -input <path-or-url> [-config <file>]")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid configuration")
	}

	// Reconfigure logger from config
	appLogger = logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "jobfeed-ingest",
		Environment: cfg.Log.Environment,
		LogFile:     cfg.Log.File,
	})
	logger.SetDefault(appLogger)

	appLogger.WithFields(logger.Fields{
		"input":   *inputPath,
		"feed_id": cfg.Pipeline.FeedID,
	}).Info("Starting feed ingestion")

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	chatClient := service.NewChatClient(&service.ChatConfig{
		Model:   cfg.AI.Model,
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
	})
	enricher := service.NewEnricher(chatClient, &service.EnrichConfig{
		ClassifyTimeout:    cfg.AI.ClassifyTimeout,
		AttributesTimeout:  cfg.AI.AttributesTimeout,
		BatchSize:          cfg.AI.ClassifyBatchSize,
		DefaultConfidence:  cfg.AI.DefaultConfidence,
		FallbackConfidence: cfg.AI.FallbackConfidence,
	}, appLogger)

	publisher := sink.NewPublishClient(&sink.PublishConfig{
		APIURL: cfg.Publish.APIURL,
		APIKey: cfg.Publish.APIKey,
	})
	confidenceRouter := service.NewRouter(publisher, reviewRepo, cfg.Pipeline.ConfidenceThreshold, appLogger)

	pipeline := service.NewPipeline(
		feed.NewProcessor(appLogger),
		jobRepo,
		enricher,
		confidenceRouter,
		&service.PipelineConfig{FeedID: cfg.Pipeline.FeedID},
		appLogger,
	)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	// Run the pipeline
	result := pipeline.ProcessFeed(ctx, *inputPath)

	appLogger.WithFields(logger.Fields{
		"processed":     result.JobsProcessed,
		"inserted":      result.JobsInserted,
		"closed":        result.JobsClosed,
		"auto_approved": result.JobsAutoApproved,
		"manual_review": result.JobsManualReview,
		"errors":        len(result.Errors),
	}).Info("Ingestion completed")

	if !result.Success {
		for _, msg := range result.Errors {
			appLogger.Error(msg)
		}
		os.Exit(1)
	}
}
